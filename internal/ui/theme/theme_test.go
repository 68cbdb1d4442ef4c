package theme

import (
	"strings"
	"testing"

	"github.com/abhisek/studyai/internal/learning"
)

func TestStatusKeepsText(t *testing.T) {
	for _, s := range []learning.Status{learning.StatusSuccess, learning.StatusFallback, learning.StatusFailed, learning.StatusSkipped} {
		if got := Status(s); !strings.Contains(got, string(s)) {
			t.Errorf("Status(%s) = %q, want it to contain the status", s, got)
		}
	}
	if !strings.Contains(Bool(true), "yes") || !strings.Contains(Bool(false), "no") {
		t.Error("Bool lost its text")
	}
}
