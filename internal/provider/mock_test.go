package provider

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGenerateQuestions_OneQuestionPerType(t *testing.T) {
	p := NewMockProviderSeeded(1)
	req := GenerationRequest{
		Title:         "Python Programming",
		QuestionTypes: []types.QuestionType{types.ChooseOne, types.TextBased, types.ChooseMany, types.ChooseOne},
	}

	questions, err := p.GenerateQuestions(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, questions, 4)

	for i, q := range questions {
		assert.Equal(t, req.QuestionTypes[i], q.Type)
	}
}

func TestMockGenerateQuestions_QuestionContract(t *testing.T) {
	p := NewMockProviderSeeded(7)
	req := GenerationRequest{
		Title:         "Software Engineering",
		QuestionTypes: []types.QuestionType{types.ChooseOne, types.ChooseMany, types.TextBased},
	}

	questions, err := p.GenerateQuestions(context.Background(), req)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, q := range questions {
		_, parseErr := uuid.Parse(q.ID)
		assert.NoError(t, parseErr)
		assert.False(t, seen[q.ID], "question ids must be unique")
		seen[q.ID] = true

		assert.NotEmpty(t, q.Text)
		assert.GreaterOrEqual(t, q.Weight, 1)
		assert.LessOrEqual(t, q.Weight, 5)
		assert.NotEmpty(t, q.SkillCategories)

		switch q.Type {
		case types.ChooseOne:
			assert.GreaterOrEqual(t, len(q.Options), 3)
			assert.LessOrEqual(t, len(q.Options), 5)
			assert.Len(t, q.CorrectOptions, 1)
		case types.ChooseMany:
			assert.GreaterOrEqual(t, len(q.Options), 3)
			assert.LessOrEqual(t, len(q.Options), 5)
			assert.GreaterOrEqual(t, len(q.CorrectOptions), 1)
			assert.LessOrEqual(t, len(q.CorrectOptions), 2)
		case types.TextBased:
			assert.Empty(t, q.Options)
			assert.Empty(t, q.CorrectOptions)
		}

		values := make(map[string]bool, len(q.Options))
		for _, opt := range q.Options {
			values[opt.Value] = true
		}
		for _, correct := range q.CorrectOptions {
			assert.True(t, values[correct], "correct option %q must be an option value", correct)
		}
	}
}

func TestMockGenerateQuestions_AdditionalNoteAppended(t *testing.T) {
	p := NewMockProviderSeeded(3)
	req := GenerationRequest{
		Title:          "Data Analysis",
		QuestionTypes:  []types.QuestionType{types.TextBased},
		AdditionalNote: "focus on SQL",
	}

	questions, err := p.GenerateQuestions(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Contains(t, questions[0].Text, "focus on SQL")
}

func TestMockGenerateQuestions_JobContext(t *testing.T) {
	p := NewMockProviderSeeded(3)
	req := GenerationRequest{
		Title:         "Screening Round",
		QuestionTypes: []types.QuestionType{types.TextBased},
		Job: &JobInfo{
			Title:           "Backend Developer",
			Description:     "We build distributed payment systems in Go and need someone comfortable with concurrency, databases, and observability tooling.",
			Seniority:       "senior",
			SkillCategories: []string{"go", "postgres"},
		},
	}

	questions, err := p.GenerateQuestions(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, questions, 1)

	assert.Contains(t, questions[0].Text, "Consider the following job description")
	assert.Contains(t, questions[0].SkillCategories, "go")
}

func TestMockGenerateQuestions_EmptyTypes(t *testing.T) {
	p := NewMockProviderSeeded(1)

	questions, err := p.GenerateQuestions(context.Background(), GenerationRequest{Title: "Anything"})
	require.NoError(t, err)
	assert.Empty(t, questions)
}

func TestMockScoreAnswer_ChoiceCorrect(t *testing.T) {
	p := NewMockProviderSeeded(1)
	question := types.Question{
		ID:   "q1",
		Text: "Pick two",
		Type: types.ChooseMany,
		Options: []types.QuestionOption{
			{Text: "Option a", Value: "a"},
			{Text: "Option b", Value: "b"},
			{Text: "Option c", Value: "c"},
		},
		CorrectOptions: []string{"a", "c"},
	}

	result, err := p.ScoreAnswer(context.Background(), question, "", []string{"c", "a"})
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Score)
	assert.True(t, result.Correct)
}

func TestMockScoreAnswer_BlankText(t *testing.T) {
	p := NewMockProviderSeeded(1)
	question := types.Question{ID: "q1", Text: "Explain garbage collection", Type: types.TextBased}

	result, err := p.ScoreAnswer(context.Background(), question, "   ", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
	assert.Equal(t, "No answer was provided.", result.Rationale)
	assert.False(t, result.Correct)
}

func TestMockScoreAnswer_TextHeuristicHalfIsNotCorrect(t *testing.T) {
	p := NewMockProviderSeeded(1)
	question := types.Question{ID: "q1", Text: "Explain the garbage collector", Type: types.TextBased}

	// Five-plus tokens and a shared token, but under 100 characters: exactly
	// 0.5, which the strict > 0.5 threshold treats as incorrect.
	result, err := p.ScoreAnswer(context.Background(), question, "the collector runs in the background always", nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, result.Score, 1e-9)
	assert.False(t, result.Correct)
}

func TestMockScoreAnswer_TextHeuristicFullMarks(t *testing.T) {
	p := NewMockProviderSeeded(1)
	question := types.Question{ID: "q1", Text: "Explain the garbage collector", Type: types.TextBased}
	answer := "the garbage collector reclaims unreachable memory by tracing live references from the roots and freeing everything it cannot reach during a cycle"

	result, err := p.ScoreAnswer(context.Background(), question, answer, nil)
	require.NoError(t, err)
	assert.InDelta(t, 0.7, result.Score, 1e-9)
	assert.True(t, result.Correct)
	assert.Contains(t, result.Rationale, "0.70")
}

func TestMockScoreAnswer_TextHeuristicShortNoOverlap(t *testing.T) {
	p := NewMockProviderSeeded(1)
	question := types.Question{ID: "q1", Text: "Explain indexing strategies", Type: types.TextBased}

	result, err := p.ScoreAnswer(context.Background(), question, "yes", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
	assert.False(t, result.Correct)
}

func TestMockScoreAnswer_TextDeterministic(t *testing.T) {
	question := types.Question{ID: "q1", Text: "Describe normalization in relational databases", Type: types.TextBased}
	answer := "normalization splits tables so that every fact is stored once, which avoids update anomalies in relational databases"

	first, err := NewMockProviderSeeded(1).ScoreAnswer(context.Background(), question, answer, nil)
	require.NoError(t, err)
	second, err := NewMockProviderSeeded(99).ScoreAnswer(context.Background(), question, answer, nil)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestMockScoreAnswer_UnknownType(t *testing.T) {
	p := NewMockProviderSeeded(1)
	question := types.Question{ID: "q1", Text: "???", Type: types.QuestionType("essay")}

	result, err := p.ScoreAnswer(context.Background(), question, "some answer", nil)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Score)
	assert.False(t, result.Correct)
	assert.Equal(t, "Unable to score this type of question.", result.Rationale)
}

func TestMockEstimateDuration_ScalesWithCount(t *testing.T) {
	p := NewMockProviderSeeded(1)

	estimate, err := p.EstimateDuration(context.Background(), "The assessment has 10 questions")
	require.NoError(t, err)
	assert.Equal(t, "Estimated duration: 30 minutes", estimate)
}

func TestMockEstimateDuration_ClampsLow(t *testing.T) {
	p := NewMockProviderSeeded(1)

	estimate, err := p.EstimateDuration(context.Background(), "The assessment has 1 question")
	require.NoError(t, err)
	assert.Equal(t, "Estimated duration: 5 minutes", estimate)
}

func TestMockEstimateDuration_ClampsHigh(t *testing.T) {
	p := NewMockProviderSeeded(1)

	estimate, err := p.EstimateDuration(context.Background(), "The assessment has 100 questions")
	require.NoError(t, err)
	assert.Equal(t, "Estimated duration: 60 minutes", estimate)
}

func TestMockEstimateDuration_NoCount(t *testing.T) {
	p := NewMockProviderSeeded(1)

	estimate, err := p.EstimateDuration(context.Background(), "Estimate the duration please")
	require.NoError(t, err)
	assert.Equal(t, "Estimated duration: 30 minutes", estimate)
}
