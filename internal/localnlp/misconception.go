package localnlp

import "strings"

const (
	fallbackMisconception = "Needs concept reinforcement"
	fallbackConfidence    = 0.35
)

// MisconceptionInput is the normalized answer triple the rules inspect.
// Correct and Student are trimmed and lowercased; RawAnswer is untouched.
type MisconceptionInput struct {
	Question  string
	Correct   string
	Student   string
	RawAnswer string
}

// MisconceptionRule labels an answer. It returns ("", 0) when it does not
// apply.
type MisconceptionRule interface {
	Name() string
	Match(in *MisconceptionInput) (string, float64)
}

// DefaultMisconceptionRules returns the rules in priority order.
func DefaultMisconceptionRules() []MisconceptionRule {
	return []MisconceptionRule{
		noAnswerRule{},
		exactMatchRule{},
		partialMatchRule{},
		confusedConceptsRule{},
	}
}

// RunMisconceptionRules returns the label, confidence and rule name of the
// first matching rule, or the reinforcement fallback when none matches.
func RunMisconceptionRules(rules []MisconceptionRule, in *MisconceptionInput) (string, float64, string) {
	for _, r := range rules {
		if label, conf := r.Match(in); label != "" {
			return label, conf, r.Name()
		}
	}
	return fallbackMisconception, fallbackConfidence, ""
}

type noAnswerRule struct{}

func (noAnswerRule) Name() string { return "no-answer" }

func (noAnswerRule) Match(in *MisconceptionInput) (string, float64) {
	if in.Student == "" {
		return "No answer selected", 0.9
	}
	return "", 0
}

type exactMatchRule struct{}

func (exactMatchRule) Name() string { return "exact-match" }

func (exactMatchRule) Match(in *MisconceptionInput) (string, float64) {
	if in.Student == in.Correct {
		return "Correct understanding", 0.99
	}
	return "", 0
}

// partialMatchRule fires when either answer contains the other.
type partialMatchRule struct{}

func (partialMatchRule) Name() string { return "partial-match" }

func (partialMatchRule) Match(in *MisconceptionInput) (string, float64) {
	if strings.Contains(in.Correct, in.Student) || strings.Contains(in.Student, in.Correct) {
		return "Partially correct but incomplete reasoning", 0.6
	}
	return "", 0
}

type confusedConceptsRule struct{}

func (confusedConceptsRule) Name() string { return "confused-concepts" }

func (confusedConceptsRule) Match(in *MisconceptionInput) (string, float64) {
	if in.Question != "" && in.RawAnswer != "" {
		return "Confused related concepts", 0.5
	}
	return "", 0
}
