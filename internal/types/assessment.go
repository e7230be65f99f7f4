package types

import "github.com/go-playground/validator/v10"

// AssessmentSpec is the assessment context the scoring engine reads.
// The engine only consumes Questions and their weights; the remaining fields
// belong to the persistence layer.
type AssessmentSpec struct {
	Title        string     `json:"title" validate:"required,min=1,max=200"`
	PassingScore int        `json:"passing_score" validate:"required,min=20,max=80"`
	Questions    []Question `json:"questions"`
	Duration     int        `json:"duration,omitempty" validate:"omitempty,min=1"` // seconds
	Active       bool       `json:"active"`
}

// CreateAssessmentRequest is the request to generate a new assessment for a job.
type CreateAssessmentRequest struct {
	Title          string         `json:"title" validate:"required,min=1,max=200"`
	PassingScore   int            `json:"passing_score" validate:"required,min=20,max=80"`
	QuestionTypes  []QuestionType `json:"question_types" validate:"required,min=1,dive,oneof=choose_one choose_many text_based"`
	AdditionalNote string         `json:"additional_note,omitempty" validate:"max=500"`
}

// RegenerateAssessmentRequest is the request to replace an assessment's
// question list wholesale. Previously recorded answers that reference the
// old question ids are orphaned and silently drop out of future scoring.
type RegenerateAssessmentRequest struct {
	QuestionTypes  []QuestionType `json:"question_types" validate:"required,min=1,dive,oneof=choose_one choose_many text_based"`
	AdditionalNote string         `json:"additional_note,omitempty" validate:"max=500"`
}

// Validate validates the AssessmentSpec using the validator.
func (s *AssessmentSpec) Validate() error {
	validate := validator.New()
	return validate.Struct(s)
}

// Validate validates the CreateAssessmentRequest using the validator.
func (r *CreateAssessmentRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RegenerateAssessmentRequest using the validator.
func (r *RegenerateAssessmentRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
