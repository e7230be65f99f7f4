package types

import "github.com/go-playground/validator/v10"

// Answer is an applicant's response to a single question within a submission.
// One answer per question; updates replace the whole answer list rather than
// mutating individual answers.
type Answer struct {
	QuestionID string   `json:"question_id" validate:"required,min=1"`
	Text       string   `json:"text,omitempty" validate:"max=5000"`
	Options    []string `json:"options,omitempty"`
}

// SubmitAnswersRequest represents an applicant's full submission for an
// assessment.
type SubmitAnswersRequest struct {
	Answers []Answer `json:"answers" validate:"required,min=1,dive"`
}

// Validate validates the answer using the validator.
func (a *Answer) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}

// Validate validates the SubmitAnswersRequest using the validator.
func (r *SubmitAnswersRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// ScoreResult is the outcome of grading one (question, answer) pair.
// It is recomputed on demand and never persisted.
type ScoreResult struct {
	Score     float64 `json:"score"`
	Rationale string  `json:"rationale"`
	Correct   bool    `json:"correct"`
}
