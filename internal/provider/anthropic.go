package provider

import (
	"context"

	"github.com/jonathan/assessment-engine/internal/types"
)

// AnthropicProvider is a registered placeholder for the Anthropic backend.
type AnthropicProvider struct{}

func (p *AnthropicProvider) GenerateQuestions(_ context.Context, _ GenerationRequest) ([]types.Question, error) {
	return nil, &NotImplementedError{Provider: IDAnthropic, Operation: "GenerateQuestions"}
}

func (p *AnthropicProvider) ScoreAnswer(_ context.Context, _ types.Question, _ string, _ []string) (types.ScoreResult, error) {
	return types.ScoreResult{}, &NotImplementedError{Provider: IDAnthropic, Operation: "ScoreAnswer"}
}

func (p *AnthropicProvider) EstimateDuration(_ context.Context, _ string) (string, error) {
	return "", &NotImplementedError{Provider: IDAnthropic, Operation: "EstimateDuration"}
}
