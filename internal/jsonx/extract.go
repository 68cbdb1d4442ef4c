// Package jsonx recovers a JSON payload from free-form model output.
package jsonx

import (
	"cmp"
	"encoding/json"
	"errors"
	"regexp"
	"slices"
	"strings"

	"github.com/tidwall/gjson"
)

// ErrNoJSON is returned when no object or array can be recovered.
var ErrNoJSON = errors.New("no JSON payload found")

var fencePattern = regexp.MustCompile("(?is)```(?:json)?\\s*(.+?)\\s*```")

// Extract returns the first JSON object or array found in s. It tries, in
// order: the whole trimmed string, the interior of a ``` or ```json fence,
// and the first balanced {...} or [...] span. Each strategy fails silently
// to the next.
func Extract(s string) (json.RawMessage, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return nil, ErrNoJSON
	}

	if raw, ok := parse(trimmed); ok {
		return raw, nil
	}

	for _, m := range fencePattern.FindAllStringSubmatch(trimmed, -1) {
		if raw, ok := parse(strings.TrimSpace(m[1])); ok {
			return raw, nil
		}
	}

	for _, sp := range closedSpans(trimmed) {
		if raw, ok := parse(trimmed[sp.start : sp.end+1]); ok {
			return raw, nil
		}
	}

	return nil, ErrNoJSON
}

// parse accepts only objects and arrays; bare scalars are not payloads.
func parse(s string) (json.RawMessage, bool) {
	if s == "" || (s[0] != '{' && s[0] != '[') {
		return nil, false
	}
	if !gjson.Valid(s) {
		return nil, false
	}
	return json.RawMessage(s), true
}

// maxSpanDepth bounds the nesting depth of candidate spans so the parse
// attempts stay linear in the input size.
const maxSpanDepth = 64

type span struct {
	start, end int
}

// closedSpans scans s once and returns every balanced {...} or [...] span,
// ordered by start. Quotes delimit strings only inside an open span. A
// mismatched closer discards every span still open at that point.
func closedSpans(s string) []span {
	type opener struct {
		at    int
		close byte
	}
	var (
		stack    []opener
		spans    []span
		inString bool
		escaped  bool
	)

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = len(stack) > 0
		case '{':
			stack = append(stack, opener{at: i, close: '}'})
		case '[':
			stack = append(stack, opener{at: i, close: ']'})
		case '}', ']':
			if len(stack) == 0 {
				continue
			}
			top := stack[len(stack)-1]
			if top.close != c {
				stack = stack[:0]
				continue
			}
			stack = stack[:len(stack)-1]
			if len(stack) < maxSpanDepth {
				spans = append(spans, span{start: top.at, end: i})
			}
		}
	}

	slices.SortFunc(spans, func(a, b span) int { return cmp.Compare(a.start, b.start) })
	return spans
}
