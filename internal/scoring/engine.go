// Package scoring grades individual answers and aggregates submissions into
// a weighted percentage score. Choice questions are graded locally and
// deterministically; free-text questions are delegated to the active AI
// provider.
package scoring

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/assessment-engine/internal/types"
)

// AnswerScorer evaluates a free-text answer. The provider.Provider interface
// satisfies it; the engine depends on this narrower contract so tests can
// substitute a fake without standing up a provider.
type AnswerScorer interface {
	ScoreAnswer(ctx context.Context, question types.Question, answerText string, selectedOptions []string) (types.ScoreResult, error)
}

// Engine grades answers against questions. It holds no state beyond the
// scorer used for text questions; concurrent use is safe.
type Engine struct {
	scorer AnswerScorer
}

// NewEngine creates an engine that delegates text grading to the given scorer.
func NewEngine(scorer AnswerScorer) *Engine {
	return &Engine{scorer: scorer}
}

// ScoreAnswer grades one (question, answer) pair. Choice questions never
// reach the provider; text questions propagate provider errors unchanged so
// a backend failure is never mistaken for a zero score.
func (e *Engine) ScoreAnswer(ctx context.Context, question types.Question, answer types.Answer) (types.ScoreResult, error) {
	if question.Type.IsChoice() {
		return ScoreChoice(question, answer.Options), nil
	}

	result, err := e.scorer.ScoreAnswer(ctx, question, answer.Text, answer.Options)
	if err != nil {
		return types.ScoreResult{}, fmt.Errorf("failed to score text answer for question %s: %w", question.ID, err)
	}
	return result, nil
}

// ScoreChoice grades a choice question by exact set equality between the
// selected and correct option values. Order is irrelevant, duplicates
// collapse, and there is no partial credit. A nil selection is an empty set,
// not an error.
func ScoreChoice(question types.Question, selectedOptions []string) types.ScoreResult {
	selected := toSet(selectedOptions)
	correct := toSet(question.CorrectOptions)

	if setsEqual(selected, correct) {
		return types.ScoreResult{
			Score:     1.0,
			Rationale: fmt.Sprintf("The selected options %s match the correct options %s.", formatSet(selected), formatSet(correct)),
			Correct:   true,
		}
	}

	return types.ScoreResult{
		Score:     0.0,
		Rationale: fmt.Sprintf("The selected options %s do not match the correct options %s.", formatSet(selected), formatSet(correct)),
		Correct:   false,
	}
}

func toSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for v := range a {
		if !b[v] {
			return false
		}
	}
	return true
}

// formatSet renders a set in sorted order so rationales are stable.
func formatSet(set map[string]bool) string {
	values := make([]string, 0, len(set))
	for v := range set {
		values = append(values, v)
	}
	sort.Strings(values)
	return "[" + strings.Join(values, ", ") + "]"
}
