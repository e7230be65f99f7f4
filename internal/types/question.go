// Package types provides type definitions for structured data used throughout the assessment engine.
package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// QuestionType identifies how a question is answered and graded.
type QuestionType string

// Supported question types.
const (
	// ChooseOne is a multiple-choice question with exactly one correct option.
	ChooseOne QuestionType = "choose_one"
	// ChooseMany is a multiple-choice question with one or more correct options.
	ChooseMany QuestionType = "choose_many"
	// TextBased is a free-text question graded by the AI provider.
	TextBased QuestionType = "text_based"
)

// Valid reports whether the question type is one of the supported values.
func (t QuestionType) Valid() bool {
	switch t {
	case ChooseOne, ChooseMany, TextBased:
		return true
	}
	return false
}

// IsChoice reports whether the question type is graded by option comparison.
func (t QuestionType) IsChoice() bool {
	return t == ChooseOne || t == ChooseMany
}

// QuestionOption is a single selectable option of a choice question.
type QuestionOption struct {
	Text  string `json:"text" validate:"required"`
	Value string `json:"value" validate:"required"`
}

// Question is a single assessment item. Questions are created by an AI
// provider during generation and are immutable once stored on an assessment;
// regeneration replaces the whole question list.
type Question struct {
	ID              string           `json:"id" validate:"required"`
	Text            string           `json:"text" validate:"required,min=1,max=1000"`
	Weight          int              `json:"weight" validate:"required,min=1,max=5"`
	SkillCategories []string         `json:"skill_categories" validate:"required,min=1"`
	Type            QuestionType     `json:"type" validate:"required"`
	Options         []QuestionOption `json:"options,omitempty"`
	CorrectOptions  []string         `json:"correct_options,omitempty"`
}

// Validate checks the question against its structural contract: field ranges,
// a known type, and option/correct-option consistency for choice questions.
func (q *Question) Validate() error {
	validate := validator.New()
	if err := validate.Struct(q); err != nil {
		return err
	}

	if !q.Type.Valid() {
		return fmt.Errorf("unknown question type: %q", q.Type)
	}

	if q.Type == TextBased {
		if len(q.Options) > 0 || len(q.CorrectOptions) > 0 {
			return fmt.Errorf("text_based question %s must not carry options", q.ID)
		}
		return nil
	}

	if len(q.Options) == 0 {
		return fmt.Errorf("%s question %s has no options", q.Type, q.ID)
	}
	if len(q.CorrectOptions) == 0 {
		return fmt.Errorf("%s question %s has no correct options", q.Type, q.ID)
	}
	if q.Type == ChooseOne && len(q.CorrectOptions) != 1 {
		return fmt.Errorf("choose_one question %s must have exactly one correct option, got %d", q.ID, len(q.CorrectOptions))
	}

	// Every correct option must reference a value present in the option list.
	values := make(map[string]bool, len(q.Options))
	for _, opt := range q.Options {
		values[opt.Value] = true
	}
	for _, correct := range q.CorrectOptions {
		if !values[correct] {
			return fmt.Errorf("question %s: correct option %q is not among the option values", q.ID, correct)
		}
	}

	return nil
}

// EffectiveWeight returns the question weight, defaulting to 1 when the
// stored value is missing or out of range. Scoring must never fail on a
// malformed weight; validation upstream is the place to reject it.
func (q *Question) EffectiveWeight() int {
	if q.Weight < 1 || q.Weight > 5 {
		return 1
	}
	return q.Weight
}
