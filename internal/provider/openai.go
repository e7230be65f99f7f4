package provider

import (
	"context"

	"github.com/jonathan/assessment-engine/internal/types"
)

// OpenAIProvider is a registered placeholder for the OpenAI backend. Every
// operation fails with NotImplementedError until the integration lands;
// callers must not treat that as a transient failure.
type OpenAIProvider struct{}

func (p *OpenAIProvider) GenerateQuestions(_ context.Context, _ GenerationRequest) ([]types.Question, error) {
	return nil, &NotImplementedError{Provider: IDOpenAI, Operation: "GenerateQuestions"}
}

func (p *OpenAIProvider) ScoreAnswer(_ context.Context, _ types.Question, _ string, _ []string) (types.ScoreResult, error) {
	return types.ScoreResult{}, &NotImplementedError{Provider: IDOpenAI, Operation: "ScoreAnswer"}
}

func (p *OpenAIProvider) EstimateDuration(_ context.Context, _ string) (string, error) {
	return "", &NotImplementedError{Provider: IDOpenAI, Operation: "EstimateDuration"}
}
