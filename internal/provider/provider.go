// Package provider defines the pluggable AI backend abstraction for question
// generation, free-text answer scoring, and duration estimation. Concrete
// backends are swappable through the registry without changing call sites.
package provider

import (
	"context"

	"github.com/jonathan/assessment-engine/internal/types"
)

// JobInfo carries job posting context into question generation so the
// provider can tailor questions to the role.
type JobInfo struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Seniority       string   `json:"seniority"`
	SkillCategories []string `json:"skill_categories"`
}

// GenerationRequest describes the question set a provider must produce.
type GenerationRequest struct {
	Title          string
	QuestionTypes  []types.QuestionType
	AdditionalNote string
	Job            *JobInfo
}

// Provider is the capability contract every AI backend implements.
//
// GenerateQuestions returns exactly one question per requested type, in
// request order, each satisfying the Question contract for its type.
//
// ScoreAnswer grades a single answer: choice questions by direct option
// comparison, text questions by a provider-specific quality evaluation that
// returns a score in [0,1] with a human-readable rationale.
//
// EstimateDuration returns the backend's free-text duration estimate; callers
// parse and clamp it (see the assessment package).
type Provider interface {
	GenerateQuestions(ctx context.Context, req GenerationRequest) ([]types.Question, error)
	ScoreAnswer(ctx context.Context, question types.Question, answerText string, selectedOptions []string) (types.ScoreResult, error)
	EstimateDuration(ctx context.Context, prompt string) (string, error)
}
