package scoring

import (
	"context"
	"math"

	"github.com/jonathan/assessment-engine/internal/types"
)

// CalculateScore computes the weighted overall percentage for a submission.
//
// Each answer whose question id is known contributes its question's weight to
// the denominator and weight*score to the numerator. Answers referencing
// unknown question ids (e.g. orphaned by a regeneration) are silently
// skipped. When no answers match, the result is 0.0 rather than a division
// by zero. The result is rounded to two decimals.
func (e *Engine) CalculateScore(ctx context.Context, questions []types.Question, answers []types.Answer) (float64, error) {
	lookup := make(map[string]types.Question, len(questions))
	for _, q := range questions {
		lookup[q.ID] = q
	}

	var totalWeight, earnedWeight float64
	for _, answer := range answers {
		question, ok := lookup[answer.QuestionID]
		if !ok {
			continue
		}

		weight := float64(question.EffectiveWeight())
		result, err := e.ScoreAnswer(ctx, question, answer)
		if err != nil {
			return 0, err
		}

		totalWeight += weight
		earnedWeight += weight * result.Score
	}

	if totalWeight <= 0 {
		return 0.0, nil
	}

	return round2(100 * earnedWeight / totalWeight), nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
