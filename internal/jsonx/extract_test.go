package jsonx

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain object", `{"a":1}`, `{"a":1}`},
		{"plain array with padding", "  \n[1, 2]\n ", `[1, 2]`},
		{"json fence", "Sure!\n```json\n{\"a\":1}\n```\nDone.", `{"a":1}`},
		{"uppercase fence tag", "```JSON\n[\"x\"]\n```", `["x"]`},
		{"bare fence", "```\n{\"b\":[1]}\n```", `{"b":[1]}`},
		{"noise around object", `Here you go: {"a":1} hope it helps`, `{"a":1}`},
		{"braces inside strings", `prefix {"t":"a } b { c","n":[1]} suffix`, `{"t":"a } b { c","n":[1]}`},
		{"escaped quote in string", `x {"t":"say \"hi\" }"} y`, `{"t":"say \"hi\" }"}`},
		{"skips unbalanced prefix", `oops { not json [ {"ok":true}`, `{"ok":true}`},
		{"skips invalid first span", `{bad} then {"good":1}`, `{"good":1}`},
		{"mismatched closer", `{"a":[1}} {"b":2}`, `{"b":2}`},
		{"quotes outside spans ignored", `He said "use {x}" then {"a":1}`, `{"a":1}`},
		{"nested valid inside invalid", `{"a": {"b":1} oops}`, `{"b":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Extract(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if string(got) != tt.want {
				t.Fatalf("Extract() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestExtract_NoJSON(t *testing.T) {
	inputs := []string{
		"",
		"   ",
		"I cannot help with that.",
		"42",
		`"just a string"`,
		"{unterminated",
		"```json\nnot json\n```",
	}

	for _, in := range inputs {
		_, err := Extract(in)
		if !errors.Is(err, ErrNoJSON) {
			t.Fatalf("Extract(%q) error = %v, want ErrNoJSON", in, err)
		}
	}
}

func TestExtract_LinearOnUnbalancedInput(t *testing.T) {
	inputs := map[string]string{
		"openers":       "noise " + strings.Repeat("{", 100_000),
		"mixed openers": strings.Repeat("[{", 50_000),
		"deep invalid":  strings.Repeat("[", 50_000) + "x" + strings.Repeat("]", 50_000),
		"open string":   `{"` + strings.Repeat("{", 100_000),
		"closers":       strings.Repeat("}", 100_000),
	}

	for name, in := range inputs {
		t.Run(name, func(t *testing.T) {
			start := time.Now()
			_, err := Extract(in)
			if !errors.Is(err, ErrNoJSON) {
				t.Fatalf("Extract() error = %v, want ErrNoJSON", err)
			}
			if elapsed := time.Since(start); elapsed > 2*time.Second {
				t.Fatalf("Extract() took %s on %d bytes", elapsed, len(in))
			}
		})
	}
}

func TestClosedSpans(t *testing.T) {
	got := closedSpans(`a {"x":[1,2]} [3`)
	want := []span{{start: 2, end: 12}, {start: 7, end: 11}}
	if len(got) != len(want) {
		t.Fatalf("closedSpans() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("closedSpans()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
