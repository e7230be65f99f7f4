// Package assessment orchestrates question generation: it resolves the
// configured AI provider, requests a question set, and turns the provider's
// free-text duration estimate into a bounded duration.
package assessment

import (
	"context"
	"io"

	"github.com/jonathan/assessment-engine/internal/provider"
	"github.com/jonathan/assessment-engine/internal/types"
	"go.uber.org/zap"
)

// GenerateParams describes one generation run.
type GenerateParams struct {
	Title          string
	QuestionTypes  []types.QuestionType
	AdditionalNote string
	Provider       string // empty means the service default
	Job            *provider.JobInfo
}

// GenerationResult is a generated question set plus its estimated duration.
type GenerationResult struct {
	Questions       []types.Question
	DurationSeconds int
	Provider        string
}

// Service generates assessments through a provider registry.
type Service struct {
	registry        *provider.Registry
	defaultProvider string
	log             *zap.Logger
}

// NewService creates a generation service. An empty defaultProvider falls
// back to the registry-wide default.
func NewService(registry *provider.Registry, defaultProvider string, log *zap.Logger) *Service {
	if defaultProvider == "" {
		defaultProvider = provider.DefaultProviderID
	}
	return &Service{registry: registry, defaultProvider: defaultProvider, log: log}
}

// Generate produces one question per requested type and estimates the
// assessment duration. Provider errors propagate with their type intact so
// callers can map them onto their own failure modes.
func (s *Service) Generate(ctx context.Context, params GenerateParams) (*GenerationResult, error) {
	providerID := params.Provider
	if providerID == "" {
		providerID = s.defaultProvider
	}

	p, err := s.registry.Create(ctx, providerID)
	if err != nil {
		return nil, err
	}
	defer s.closeProvider(p, providerID)

	questions, err := p.GenerateQuestions(ctx, provider.GenerationRequest{
		Title:          params.Title,
		QuestionTypes:  params.QuestionTypes,
		AdditionalNote: params.AdditionalNote,
		Job:            params.Job,
	})
	if err != nil {
		return nil, err
	}

	minutes := s.EstimateDurationMinutes(ctx, p, params.Title, questions)

	s.log.Info("generated assessment questions",
		zap.String("provider", providerID),
		zap.String("title", params.Title),
		zap.Int("questions", len(questions)),
		zap.Int("duration_minutes", minutes))

	return &GenerationResult{
		Questions:       questions,
		DurationSeconds: minutes * 60,
		Provider:        providerID,
	}, nil
}

// EstimateDurationMinutes asks the provider for a duration estimate.
// Estimation is best-effort: any provider failure falls back to the
// question-count formula instead of failing the whole generation.
func (s *Service) EstimateDurationMinutes(ctx context.Context, p provider.Provider, title string, questions []types.Question) int {
	prompt := provider.BuildDurationPrompt(title, questions)

	estimate, err := p.EstimateDuration(ctx, prompt)
	if err != nil {
		s.log.Warn("duration estimation failed, using fallback", zap.Error(err))
		estimate = ""
	}

	return ParseDurationEstimate(estimate, len(questions))
}

// closeProvider releases per-request provider resources. Only some backends
// hold a connection, so the io.Closer assertion is optional.
func (s *Service) closeProvider(p provider.Provider, providerID string) {
	if closer, ok := p.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			s.log.Warn("failed to close provider", zap.String("provider", providerID), zap.Error(err))
		}
	}
}
