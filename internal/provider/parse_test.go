package provider

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleQuestionsJSON = `[
  {
    "type": "MCQ",
    "prompt": "Which statement creates a slice?",
    "choices": ["make([]int, 0)", "new(int)", "map[string]int{}"],
    "correct_answers": ["make([]int, 0)"],
    "difficulty": "easy",
    "skill": "go"
  },
  {
    "type": "TEXT",
    "prompt": "Explain how channels coordinate goroutines.",
    "difficulty": "hard",
    "skill": "concurrency"
  }
]`

func TestParseQuestions_DirectJSON(t *testing.T) {
	requested := []types.QuestionType{types.ChooseOne, types.TextBased}

	questions, err := parseQuestions(IDGemini, sampleQuestionsJSON, requested)
	require.NoError(t, err)
	require.Len(t, questions, 2)

	mcq := questions[0]
	assert.Equal(t, types.ChooseOne, mcq.Type)
	assert.Equal(t, "Which statement creates a slice?", mcq.Text)
	assert.Equal(t, 1, mcq.Weight)
	assert.Equal(t, []string{"go"}, mcq.SkillCategories)
	require.Len(t, mcq.Options, 3)
	assert.Equal(t, "make([]int, 0)", mcq.Options[0].Value)
	assert.Equal(t, []string{"make([]int, 0)"}, mcq.CorrectOptions)
	_, parseErr := uuid.Parse(mcq.ID)
	assert.NoError(t, parseErr)

	text := questions[1]
	assert.Equal(t, types.TextBased, text.Type)
	assert.Equal(t, 5, text.Weight)
	assert.Equal(t, []string{"concurrency"}, text.SkillCategories)
	assert.Empty(t, text.Options)
}

func TestParseQuestions_FencedJSON(t *testing.T) {
	fenced := "```json\n" + sampleQuestionsJSON + "\n```"
	requested := []types.QuestionType{types.ChooseOne, types.TextBased}

	questions, err := parseQuestions(IDGemini, fenced, requested)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
}

func TestParseQuestions_NotJSON(t *testing.T) {
	_, err := parseQuestions(IDGemini, "Sure! Here are your questions.", []types.QuestionType{types.TextBased})
	require.Error(t, err)

	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, IDGemini, malformed.Provider)
}

func TestParseQuestions_CountMismatch(t *testing.T) {
	requested := []types.QuestionType{types.ChooseOne, types.TextBased, types.ChooseMany}

	_, err := parseQuestions(IDGemini, sampleQuestionsJSON, requested)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "expected 3 questions, got 2")
}

func TestParseQuestions_TypeMismatch(t *testing.T) {
	requested := []types.QuestionType{types.TextBased, types.ChooseOne}

	_, err := parseQuestions(IDGemini, sampleQuestionsJSON, requested)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "expected TEXT, got MCQ")
}

func TestParseQuestions_ChooseOneNeedsSingleAnswer(t *testing.T) {
	payload := `[{"type": "MCQ", "prompt": "Pick one", "choices": ["a", "b"], "correct_answers": ["a", "b"]}]`

	_, err := parseQuestions(IDGemini, payload, []types.QuestionType{types.ChooseOne})
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "exactly one correct answer")
}

func TestParseQuestions_ChooseManyMultipleAnswers(t *testing.T) {
	payload := `[{"type": "MCQ", "prompt": "Pick several", "choices": ["a", "b", "c"], "correct_answers": ["a", "c"]}]`

	questions, err := parseQuestions(IDGemini, payload, []types.QuestionType{types.ChooseMany})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, questions[0].CorrectOptions)
}

func TestParseQuestions_CorrectAnswerNotAChoice(t *testing.T) {
	payload := `[{"type": "MCQ", "prompt": "Pick one", "choices": ["a", "b"], "correct_answers": ["z"]}]`

	_, err := parseQuestions(IDGemini, payload, []types.QuestionType{types.ChooseOne})
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), `"z"`)
}

func TestParseQuestions_MCQWithoutChoices(t *testing.T) {
	payload := `[{"type": "MCQ", "prompt": "Pick one"}]`

	_, err := parseQuestions(IDGemini, payload, []types.QuestionType{types.ChooseOne})
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "without choices")
}

func TestParseQuestions_SchemaRejectsBadDifficulty(t *testing.T) {
	payload := `[{"type": "TEXT", "prompt": "Explain", "difficulty": "impossible"}]`

	_, err := parseQuestions(IDGemini, payload, []types.QuestionType{types.TextBased})
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "wire schema")
}

func TestParseQuestions_MissingSkillDefaultsToGeneral(t *testing.T) {
	payload := `[{"type": "TEXT", "prompt": "Explain caching"}]`

	questions, err := parseQuestions(IDGemini, payload, []types.QuestionType{types.TextBased})
	require.NoError(t, err)
	assert.Equal(t, []string{"general"}, questions[0].SkillCategories)
	assert.Equal(t, 3, questions[0].Weight)
}

func TestParseScore_Valid(t *testing.T) {
	payload := `{"score": 0.85, "rationale": "Thorough and accurate.", "correct": true}`

	result, err := parseScore(IDGemini, payload)
	require.NoError(t, err)
	assert.Equal(t, 0.85, result.Score)
	assert.Equal(t, "Thorough and accurate.", result.Rationale)
	assert.True(t, result.Correct)
}

func TestParseScore_Fenced(t *testing.T) {
	payload := "```json\n{\"score\": 0.4, \"rationale\": \"Partially right.\", \"correct\": false}\n```"

	result, err := parseScore(IDGemini, payload)
	require.NoError(t, err)
	assert.Equal(t, 0.4, result.Score)
	assert.False(t, result.Correct)
}

func TestParseScore_ClampsRange(t *testing.T) {
	high, err := parseScore(IDGemini, `{"score": 1.7, "correct": true}`)
	require.NoError(t, err)
	assert.Equal(t, 1.0, high.Score)

	low, err := parseScore(IDGemini, `{"score": -2, "correct": false}`)
	require.NoError(t, err)
	assert.Equal(t, 0.0, low.Score)
}

func TestParseScore_NotJSON(t *testing.T) {
	_, err := parseScore(IDGemini, "I would give this a 7 out of 10.")
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}

func TestParseScore_MissingScore(t *testing.T) {
	_, err := parseScore(IDGemini, `{"rationale": "no score field"}`)
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "wire schema")
}

func TestNormalizeJSON_PlainFenceWithoutLanguage(t *testing.T) {
	// A bare fence has a four-character prefix, so the fixed seven-character
	// strip cannot rescue it.
	_, err := normalizeJSON(IDGemini, "```\n{\"score\": 1}\n```")
	var malformed *MalformedResponseError
	require.ErrorAs(t, err, &malformed)
}
