package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validChoiceQuestion() Question {
	return Question{
		ID:              "q-1",
		Text:            "Which keyword starts a goroutine?",
		Weight:          3,
		SkillCategories: []string{"go"},
		Type:            ChooseOne,
		Options: []QuestionOption{
			{Text: "go", Value: "go"},
			{Text: "run", Value: "run"},
			{Text: "spawn", Value: "spawn"},
		},
		CorrectOptions: []string{"go"},
	}
}

func TestQuestionType_Valid(t *testing.T) {
	assert.True(t, ChooseOne.Valid())
	assert.True(t, ChooseMany.Valid())
	assert.True(t, TextBased.Valid())
	assert.False(t, QuestionType("multiple_choice").Valid())
	assert.False(t, QuestionType("").Valid())
}

func TestQuestionType_IsChoice(t *testing.T) {
	assert.True(t, ChooseOne.IsChoice())
	assert.True(t, ChooseMany.IsChoice())
	assert.False(t, TextBased.IsChoice())
}

func TestQuestion_Validate(t *testing.T) {
	q := validChoiceQuestion()
	require.NoError(t, q.Validate())
}

func TestQuestion_Validate_TextBased(t *testing.T) {
	q := Question{
		ID:              "q-2",
		Text:            "Explain the difference between buffered and unbuffered channels.",
		Weight:          5,
		SkillCategories: []string{"go", "concurrency"},
		Type:            TextBased,
	}
	require.NoError(t, q.Validate())
}

func TestQuestion_Validate_TextBasedWithOptions(t *testing.T) {
	q := validChoiceQuestion()
	q.Type = TextBased

	err := q.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must not carry options")
}

func TestQuestion_Validate_UnknownType(t *testing.T) {
	q := validChoiceQuestion()
	q.Type = "multiple_choice"

	err := q.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown question type")
}

func TestQuestion_Validate_ChoiceWithoutOptions(t *testing.T) {
	q := validChoiceQuestion()
	q.Options = nil
	q.CorrectOptions = nil

	assert.Error(t, q.Validate())
}

func TestQuestion_Validate_ChooseOneMultipleCorrect(t *testing.T) {
	q := validChoiceQuestion()
	q.CorrectOptions = []string{"go", "run"}

	err := q.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one correct option")
}

func TestQuestion_Validate_CorrectOptionNotListed(t *testing.T) {
	q := validChoiceQuestion()
	q.CorrectOptions = []string{"fork"}

	err := q.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not among the option values")
}

func TestQuestion_Validate_WeightOutOfRange(t *testing.T) {
	q := validChoiceQuestion()
	q.Weight = 6

	assert.Error(t, q.Validate())
}

func TestQuestion_EffectiveWeight(t *testing.T) {
	tests := []struct {
		name   string
		weight int
		want   int
	}{
		{name: "in range", weight: 4, want: 4},
		{name: "missing defaults to one", weight: 0, want: 1},
		{name: "negative defaults to one", weight: -2, want: 1},
		{name: "too large defaults to one", weight: 9, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			q := Question{Weight: tc.weight}
			assert.Equal(t, tc.want, q.EffectiveWeight())
		})
	}
}
