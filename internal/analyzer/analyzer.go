// Package analyzer scores prompt quality. The Scorer interface is the
// boundary for SDK-backed analysis; the local heuristic implementation keeps
// the hook useful without network access.
package analyzer

import (
	"strings"
	"unicode"
)

// Score is a 0-100 quality assessment with its component breakdown.
type Score struct {
	Total         int    `json:"total"`
	Context       int    `json:"context"`
	Clarity       int    `json:"clarity"`
	Specificity   int    `json:"specificity"`
	Actionability int    `json:"actionability"`
	Suggestion    string `json:"suggestion"`
}

// Grade buckets the total for display.
func (s Score) Grade() string {
	switch {
	case s.Total >= 85:
		return "excellent"
	case s.Total >= 65:
		return "good"
	case s.Total >= 40:
		return "fair"
	default:
		return "poor"
	}
}

// Scorer produces a Score for a prompt.
type Scorer interface {
	Score(prompt string) Score
}

// Heuristic is a local, dependency-free Scorer.
type Heuristic struct{}

// NewHeuristic returns the local scorer.
func NewHeuristic() *Heuristic {
	return &Heuristic{}
}

var vagueWords = []string{
	"something", "somehow", "stuff", "things", "maybe", "etc",
	"whatever", "anything", "fix it", "doesn't work", "broken",
}

// Score rates a prompt on four 0-25 components and returns their sum plus
// a suggestion targeting the weakest component.
func (h *Heuristic) Score(prompt string) Score {
	trimmed := strings.TrimSpace(prompt)
	words := strings.Fields(trimmed)

	s := Score{
		Context:       scoreContext(trimmed, words),
		Clarity:       scoreClarity(trimmed, words),
		Specificity:   scoreSpecificity(trimmed, words),
		Actionability: scoreActionability(trimmed, words),
	}
	s.Total = s.Context + s.Clarity + s.Specificity + s.Actionability
	s.Suggestion = suggestion(s)
	return s
}

// scoreContext rewards references to concrete locations: paths, symbols,
// code fences.
func scoreContext(prompt string, words []string) int {
	score := 5
	if len(words) >= 15 {
		score += 5
	}
	if strings.Contains(prompt, "/") || strings.Contains(prompt, ".go") ||
		strings.Contains(prompt, ".ts") || strings.Contains(prompt, ".py") {
		score += 8
	}
	if strings.Contains(prompt, "`") || strings.Contains(prompt, "```") {
		score += 7
	}
	return clamp(score)
}

// scoreClarity penalizes vague language and run-on asks.
func scoreClarity(prompt string, words []string) int {
	score := 20
	lower := strings.ToLower(prompt)
	for _, vague := range vagueWords {
		if strings.Contains(lower, vague) {
			score -= 5
		}
	}
	if len(words) > 200 {
		score -= 5
	}
	return clamp(score)
}

// scoreSpecificity rewards numbers, quoted strings, and explicit criteria.
func scoreSpecificity(prompt string, words []string) int {
	score := 8
	if strings.ContainsAny(prompt, "0123456789") {
		score += 5
	}
	if strings.Contains(prompt, "\"") || strings.Contains(prompt, "'") {
		score += 4
	}
	lower := strings.ToLower(prompt)
	for _, marker := range []string{"should", "must", "expect", "instead of", "for example"} {
		if strings.Contains(lower, marker) {
			score += 2
		}
	}
	return clamp(score)
}

// scoreActionability rewards an imperative opening and a concrete verb.
func scoreActionability(prompt string, words []string) int {
	if len(words) == 0 {
		return 0
	}

	score := 10
	first := strings.ToLower(strings.TrimFunc(words[0], func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	switch first {
	case "add", "fix", "remove", "rename", "refactor", "write", "update",
		"implement", "create", "delete", "move", "test", "investigate", "explain":
		score += 10
	}
	if len(words) >= 5 {
		score += 5
	}
	return clamp(score)
}

func suggestion(s Score) string {
	low, text := s.Context, "Mention the files or package the change lives in."
	if s.Clarity < low {
		low, text = s.Clarity, "State one unambiguous ask and drop vague wording."
	}
	if s.Specificity < low {
		low, text = s.Specificity, "Add acceptance criteria or a concrete example."
	}
	if s.Actionability < low {
		text = "Open with the action you want taken."
	}
	return text
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 25 {
		return 25
	}
	return v
}
