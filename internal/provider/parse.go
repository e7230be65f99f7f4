package provider

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/xeipuuv/gojsonschema"
)

// wireQuestion is the JSON shape real backends return for one question.
type wireQuestion struct {
	Type           string   `json:"type"` // "MCQ" | "TEXT"
	Prompt         string   `json:"prompt"`
	Choices        []string `json:"choices,omitempty"`
	CorrectAnswers []string `json:"correct_answers,omitempty"`
	Difficulty     string   `json:"difficulty,omitempty"`
	Skill          string   `json:"skill,omitempty"`
}

// wireScore is the JSON shape real backends return for a scored answer.
type wireScore struct {
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
	Correct   bool    `json:"correct"`
}

// JSON Schemas for the wire payloads. Responses are validated before
// conversion so a structurally bad payload fails loudly instead of producing
// half-formed questions.
const questionsWireSchema = `{
  "type": "array",
  "items": {
    "type": "object",
    "required": ["type", "prompt"],
    "properties": {
      "type": {"enum": ["MCQ", "TEXT"]},
      "prompt": {"type": "string", "minLength": 1},
      "choices": {"type": "array", "items": {"type": "string"}},
      "correct_answers": {"type": "array", "items": {"type": "string"}},
      "difficulty": {"enum": ["easy", "medium", "hard"]},
      "skill": {"type": "string"}
    }
  }
}`

const scoreWireSchema = `{
  "type": "object",
  "required": ["score"],
  "properties": {
    "score": {"type": "number"},
    "rationale": {"type": "string"},
    "correct": {"type": "boolean"}
  }
}`

// normalizeJSON returns valid JSON text from a raw model response. LLMs
// often wrap JSON in a markdown code fence even when instructed not to, so
// on a failed parse the seven-character "```json\n" prefix and three-character
// "```" suffix are stripped and the parse retried exactly once.
func normalizeJSON(providerName, content string) (string, error) {
	trimmed := strings.TrimSpace(content)
	if json.Valid([]byte(trimmed)) {
		return trimmed, nil
	}

	if len(trimmed) > 10 {
		stripped := strings.TrimSpace(trimmed[7 : len(trimmed)-3])
		if json.Valid([]byte(stripped)) {
			return stripped, nil
		}
	}

	return "", &MalformedResponseError{
		Provider: providerName,
		Message:  "response is not valid JSON after code fence removal",
	}
}

// validateWire checks payload against a wire schema.
func validateWire(providerName, schema, payload string) error {
	result, err := gojsonschema.Validate(gojsonschema.NewStringLoader(schema), gojsonschema.NewStringLoader(payload))
	if err != nil {
		return &MalformedResponseError{Provider: providerName, Message: "schema validation failed", Cause: err}
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return &MalformedResponseError{
			Provider: providerName,
			Message:  "response does not match wire schema: " + strings.Join(details, "; "),
		}
	}
	return nil
}

// parseQuestions converts a raw generation response into Questions, assigning
// each position the question type the caller requested.
func parseQuestions(providerName, content string, requested []types.QuestionType) ([]types.Question, error) {
	payload, err := normalizeJSON(providerName, content)
	if err != nil {
		return nil, err
	}
	if err := validateWire(providerName, questionsWireSchema, payload); err != nil {
		return nil, err
	}

	var wire []wireQuestion
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return nil, &MalformedResponseError{Provider: providerName, Message: "failed to decode question array", Cause: err}
	}

	if len(wire) != len(requested) {
		return nil, &MalformedResponseError{
			Provider: providerName,
			Message:  fmt.Sprintf("expected %d questions, got %d", len(requested), len(wire)),
		}
	}

	questions := make([]types.Question, 0, len(wire))
	for i, wq := range wire {
		qType := requested[i]
		if wireType(qType) != wq.Type {
			return nil, &MalformedResponseError{
				Provider: providerName,
				Message:  fmt.Sprintf("question %d: expected %s, got %s", i+1, wireType(qType), wq.Type),
			}
		}

		question := types.Question{
			ID:              uuid.NewString(),
			Text:            wq.Prompt,
			Weight:          weightFromDifficulty(wq.Difficulty),
			SkillCategories: skillOrGeneral(wq.Skill),
			Type:            qType,
		}

		if qType.IsChoice() {
			question.Options, question.CorrectOptions, err = convertChoices(providerName, i, wq, qType)
			if err != nil {
				return nil, err
			}
		}

		questions = append(questions, question)
	}

	return questions, nil
}

// convertChoices maps wire choices to options. Option values are the choice
// texts themselves; correct answers must reference existing choices.
func convertChoices(providerName string, index int, wq wireQuestion, qType types.QuestionType) ([]types.QuestionOption, []string, error) {
	if len(wq.Choices) == 0 {
		return nil, nil, &MalformedResponseError{
			Provider: providerName,
			Message:  fmt.Sprintf("question %d: MCQ without choices", index+1),
		}
	}

	options := make([]types.QuestionOption, 0, len(wq.Choices))
	known := make(map[string]bool, len(wq.Choices))
	for _, choice := range wq.Choices {
		options = append(options, types.QuestionOption{Text: choice, Value: choice})
		known[choice] = true
	}

	if len(wq.CorrectAnswers) == 0 {
		return nil, nil, &MalformedResponseError{
			Provider: providerName,
			Message:  fmt.Sprintf("question %d: MCQ without correct answers", index+1),
		}
	}
	if qType == types.ChooseOne && len(wq.CorrectAnswers) != 1 {
		return nil, nil, &MalformedResponseError{
			Provider: providerName,
			Message:  fmt.Sprintf("question %d: choose_one needs exactly one correct answer, got %d", index+1, len(wq.CorrectAnswers)),
		}
	}
	for _, answer := range wq.CorrectAnswers {
		if !known[answer] {
			return nil, nil, &MalformedResponseError{
				Provider: providerName,
				Message:  fmt.Sprintf("question %d: correct answer %q is not among the choices", index+1, answer),
			}
		}
	}

	return options, wq.CorrectAnswers, nil
}

// parseScore converts a raw scoring response into a ScoreResult, clamping the
// score into [0,1].
func parseScore(providerName, content string) (types.ScoreResult, error) {
	payload, err := normalizeJSON(providerName, content)
	if err != nil {
		return types.ScoreResult{}, err
	}
	if err := validateWire(providerName, scoreWireSchema, payload); err != nil {
		return types.ScoreResult{}, err
	}

	var wire wireScore
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return types.ScoreResult{}, &MalformedResponseError{Provider: providerName, Message: "failed to decode score", Cause: err}
	}

	if wire.Score < 0 {
		wire.Score = 0
	}
	if wire.Score > 1 {
		wire.Score = 1
	}

	return types.ScoreResult{
		Score:     wire.Score,
		Rationale: wire.Rationale,
		Correct:   wire.Correct,
	}, nil
}

func weightFromDifficulty(difficulty string) int {
	switch difficulty {
	case "easy":
		return 1
	case "hard":
		return 5
	default:
		return 3
	}
}

func skillOrGeneral(skill string) []string {
	if strings.TrimSpace(skill) == "" {
		return []string{"general"}
	}
	return []string{skill}
}
