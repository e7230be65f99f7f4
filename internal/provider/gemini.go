package provider

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/jonathan/assessment-engine/internal/scoring"
	"github.com/jonathan/assessment-engine/internal/types"
	"google.golang.org/api/option"
)

// defaultGeminiModel is used unless GEMINI_MODEL overrides it.
const defaultGeminiModel = "gemini-2.5-flash"

// GeminiProvider implements Provider over the Google Gemini API.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Gemini-backed provider. The API key is read
// from GEMINI_API_KEY.
func NewGeminiProvider(ctx context.Context) (*GeminiProvider, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiProvider{client: client, model: model}, nil
}

// GenerateQuestions asks Gemini for a question set and converts the JSON
// response into Questions.
func (p *GeminiProvider) GenerateQuestions(ctx context.Context, req GenerationRequest) ([]types.Question, error) {
	content, err := p.generateJSON(ctx, generationSystemPrompt, buildGenerationPrompt(req))
	if err != nil {
		return nil, err
	}
	return parseQuestions(IDGemini, content, req.QuestionTypes)
}

// ScoreAnswer grades choice questions locally and free-text answers via the
// Gemini API. Backend failures propagate; they are never mapped to a zero
// score.
func (p *GeminiProvider) ScoreAnswer(ctx context.Context, question types.Question, answerText string, selectedOptions []string) (types.ScoreResult, error) {
	if question.Type.IsChoice() {
		return scoring.ScoreChoice(question, selectedOptions), nil
	}

	if strings.TrimSpace(answerText) == "" {
		return types.ScoreResult{
			Score:     0.0,
			Rationale: "No answer was provided.",
			Correct:   false,
		}, nil
	}

	content, err := p.generateJSON(ctx, scoringSystemPrompt, buildScoringPrompt(question, answerText))
	if err != nil {
		return types.ScoreResult{}, err
	}
	return parseScore(IDGemini, content)
}

// EstimateDuration returns Gemini's free-text duration estimate.
func (p *GeminiProvider) EstimateDuration(ctx context.Context, prompt string) (string, error) {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(0.2)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(durationSystemPrompt)}}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &APICallError{Provider: IDGemini, Message: "duration estimation failed", Cause: err}
	}
	return extractText(resp)
}

// Close releases the underlying API client.
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// generateJSON runs one JSON-mode completion with a system instruction.
func (p *GeminiProvider) generateJSON(ctx context.Context, system, prompt string) (string, error) {
	model := p.client.GenerativeModel(p.model)
	model.SetTemperature(0.2) // low temperature for consistent structured output
	model.ResponseMIMEType = "application/json"
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &APICallError{Provider: IDGemini, Message: "content generation failed", Cause: err}
	}
	return extractText(resp)
}

// extractText extracts the text parts from a Gemini API response.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		return "", &MalformedResponseError{Provider: IDGemini, Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", &MalformedResponseError{Provider: IDGemini, Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return "", &MalformedResponseError{Provider: IDGemini, Message: "no text parts in response"}
	}

	return strings.Join(parts, ""), nil
}
