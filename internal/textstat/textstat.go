// Package textstat implements the small text heuristics shared by the local
// provider and the remote prompt builders: sentence chunking, keyword
// frequency, list normalization and extractive digests.
package textstat

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	minChunkRunes = 12
	maxChunkRunes = 120
)

var (
	wordPattern       = regexp.MustCompile(`[a-z][a-z0-9\-]{3,}`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

var stopWords = map[string]bool{
	"about": true, "after": true, "again": true, "against": true, "because": true,
	"before": true, "between": true, "could": true, "every": true, "first": true,
	"from": true, "have": true, "into": true, "lesson": true, "more": true,
	"other": true, "should": true, "their": true, "there": true, "these": true,
	"those": true, "through": true, "under": true, "using": true, "what": true,
	"when": true, "where": true, "which": true, "while": true, "with": true,
	"your": true, "this": true, "that": true, "they": true, "them": true,
	"were": true, "will": true, "than": true,
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Collapse trims s and folds every whitespace run into a single space.
func Collapse(s string) string {
	return whitespacePattern.ReplaceAllString(strings.TrimSpace(s), " ")
}

// Key is the comparison key used to detect duplicate question texts.
func Key(s string) string {
	return strings.ToLower(Collapse(s))
}

// Unique trims every item, drops empties and removes exact duplicates while
// keeping first-seen order.
func Unique(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		v := strings.TrimSpace(item)
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// Head returns the first n items of list (or all of them).
func Head(list []string, n int) []string {
	if n < 0 {
		n = 0
	}
	if len(list) <= n {
		return list
	}
	return list[:n]
}

// Sentences splits text after '.', '!' or '?' followed by whitespace and
// returns the trimmed, non-empty fragments.
func Sentences(text string) []string {
	runes := []rune(strings.TrimSpace(text))
	var parts []string
	var b strings.Builder
	var prev rune

	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if unicode.IsSpace(r) && isTerminal(prev) {
			parts = append(parts, b.String())
			b.Reset()
			for i+1 < len(runes) && unicode.IsSpace(runes[i+1]) {
				i++
			}
			prev = r
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	parts = append(parts, b.String())

	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

// SentenceChunks returns the distinct sentences of text longer than 12
// runes, each capped at 120 runes.
func SentenceChunks(text string) []string {
	var chunks []string
	for _, s := range Sentences(text) {
		if utf8.RuneCountInString(s) <= minChunkRunes {
			continue
		}
		chunks = append(chunks, Truncate(s, maxChunkRunes))
	}
	return Unique(chunks)
}

// Keywords returns up to limit lowercase tokens of at least four characters
// ordered by frequency, most frequent first. Ties keep first-seen order and
// stop words are skipped.
func Keywords(text string, limit int) []string {
	if limit <= 0 {
		return nil
	}

	type entry struct {
		word  string
		count int
	}
	index := make(map[string]*entry)
	var entries []*entry

	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if stopWords[w] {
			continue
		}
		e, ok := index[w]
		if !ok {
			e = &entry{word: w}
			index[w] = e
			entries = append(entries, e)
		}
		e.count++
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].count > entries[j].count
	})

	out := make([]string, 0, limit)
	for _, e := range entries {
		if len(out) == limit {
			break
		}
		out = append(out, e.word)
	}
	return out
}

// Digest shrinks text to fit budget runes. Text that already fits is
// returned whitespace-collapsed; longer text is cut into chunkSize-rune
// pieces, each reduced to "Chunk N: <two lead sentences> Keywords: ...".
func Digest(text string, budget, chunkSize int) string {
	normalized := Collapse(text)
	if utf8.RuneCountInString(normalized) <= budget {
		return normalized
	}

	if chunkSize <= 0 {
		chunkSize = max(budget, 1)
	}

	runes := []rune(normalized)
	var lines []string
	for start, n := 0, 1; start < len(runes); start, n = start+chunkSize, n+1 {
		end := min(start+chunkSize, len(runes))
		lines = append(lines, fmt.Sprintf("Chunk %d: %s", n, chunkSummary(string(runes[start:end]))))
	}

	return Truncate(strings.Join(lines, "\n"), budget)
}

func chunkSummary(chunk string) string {
	var keywordPart string
	if kw := Keywords(chunk, 6); len(kw) > 0 {
		keywordPart = " Keywords: " + strings.Join(kw, ", ") + "."
	}

	lead := Head(Sentences(chunk), 2)
	if len(lead) > 0 {
		return Truncate(strings.Join(lead, " "), 600) + keywordPart
	}
	return Truncate(strings.TrimSpace(chunk), 350) + keywordPart
}
