package provider

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/scoring"
	"github.com/jonathan/assessment-engine/internal/types"
)

// MockProvider is a deterministic/heuristic backend used for tests and local
// development. It generates questions from predefined templates keyed off the
// assessment title and job info, and grades text answers with a fixed
// heuristic that serves as the reference scoring contract.
type MockProvider struct {
	rng *rand.Rand
}

// NewMockProvider creates a mock provider with a time-seeded source for the
// randomized parts of generation (weights, option counts, correct picks).
func NewMockProvider() *MockProvider {
	return NewMockProviderSeeded(time.Now().UnixNano())
}

// NewMockProviderSeeded creates a mock provider with a fixed seed so tests
// can pin generation output.
func NewMockProviderSeeded(seed int64) *MockProvider {
	return &MockProvider{rng: rand.New(rand.NewSource(seed))}
}

// GenerateQuestions produces one question per requested type, in order.
func (p *MockProvider) GenerateQuestions(_ context.Context, req GenerationRequest) ([]types.Question, error) {
	questions := make([]types.Question, 0, len(req.QuestionTypes))

	for i, qType := range req.QuestionTypes {
		question := types.Question{
			ID:              uuid.NewString(),
			Text:            p.questionText(req, qType, i+1),
			Weight:          1 + p.rng.Intn(5),
			SkillCategories: p.skillCategories(req),
			Type:            qType,
		}

		if qType.IsChoice() {
			question.Options = p.choiceOptions(question.Text)
			question.CorrectOptions = p.correctOptions(question.Options, qType)
		}

		questions = append(questions, question)
	}

	return questions, nil
}

// ScoreAnswer grades choice questions by direct comparison and text questions
// with the reference heuristic. The heuristic is a pure function of the
// answer and question text, so repeated calls return the same score.
func (p *MockProvider) ScoreAnswer(_ context.Context, question types.Question, answerText string, selectedOptions []string) (types.ScoreResult, error) {
	if question.Type.IsChoice() {
		return scoring.ScoreChoice(question, selectedOptions), nil
	}

	if question.Type == types.TextBased {
		if strings.TrimSpace(answerText) == "" {
			return types.ScoreResult{
				Score:     0.0,
				Rationale: "No answer was provided.",
				Correct:   false,
			}, nil
		}

		score := evaluateTextAnswer(answerText, question.Text)
		return types.ScoreResult{
			Score:     score,
			Rationale: fmt.Sprintf("The text answer was evaluated with score %.2f.", score),
			Correct:   score > 0.5,
		}, nil
	}

	return types.ScoreResult{
		Score:     0.0,
		Rationale: "Unable to score this type of question.",
		Correct:   false,
	}, nil
}

// EstimateDuration returns a deterministic estimate: three minutes per
// question when the prompt names a question count, clamped to [5, 60].
func (p *MockProvider) EstimateDuration(_ context.Context, prompt string) (string, error) {
	count, ok := firstInt(prompt)
	if !ok {
		return "Estimated duration: 30 minutes", nil
	}

	minutes := count * 3
	if minutes < 5 {
		minutes = 5
	}
	if minutes > 60 {
		minutes = 60
	}
	return fmt.Sprintf("Estimated duration: %d minutes", minutes), nil
}

// evaluateTextAnswer is the reference text-scoring heuristic:
// +0.3 for at least five whitespace-separated tokens, +0.2 when the answer
// shares any lowercase token with the question text, +0.2 when the raw answer
// is longer than 100 characters, capped at 1.0.
func evaluateTextAnswer(answerText, questionText string) float64 {
	score := 0.0

	if len(strings.Fields(answerText)) >= 5 {
		score += 0.3
	}

	questionTokens := tokenSet(questionText)
	answerTokens := tokenSet(answerText)
	for token := range answerTokens {
		if questionTokens[token] {
			score += 0.2
			break
		}
	}

	if len(answerText) > 100 {
		score += 0.2
	}

	if score > 1.0 {
		score = 1.0
	}
	return score
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, token := range strings.Fields(strings.ToLower(text)) {
		set[token] = true
	}
	return set
}

// firstInt extracts the first contiguous digit run from s.
func firstInt(s string) (int, bool) {
	value := 0
	found := false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			value = value*10 + int(r-'0')
			found = true
			continue
		}
		if found {
			break
		}
	}
	return value, found
}

// questionText picks a template based on the assessment title and job info.
func (p *MockProvider) questionText(req GenerationRequest, _ types.QuestionType, number int) string {
	title := req.Title
	combined := strings.ToLower(title)
	var jobDescription string
	var jobSkills []string
	if req.Job != nil {
		combined += " " + strings.ToLower(req.Job.Title)
		jobDescription = req.Job.Description
		jobSkills = req.Job.SkillCategories
	}

	var templates []string
	switch {
	case strings.Contains(combined, "python") || strings.Contains(combined, "programming"):
		templates = []string{
			fmt.Sprintf("What is the correct way to declare a variable in %s?", title),
			fmt.Sprintf("How would you implement a function to solve a problem in %s?", title),
			fmt.Sprintf("Which of the following is a characteristic of %s?", title),
			fmt.Sprintf("What is the time complexity of this operation in %s?", title),
			fmt.Sprintf("What is the output of this %s code?", title),
			fmt.Sprintf("Which %s concept is best suited for this scenario?", title),
		}
	case strings.Contains(combined, "software") || strings.Contains(combined, "engineer"):
		templates = []string{
			fmt.Sprintf("What is the most efficient approach to design a system for %s?", title),
			fmt.Sprintf("Which software development principle applies to %s?", title),
			fmt.Sprintf("How would you optimize the performance of a %s application?", title),
			fmt.Sprintf("What is the best practice for error handling in %s?", title),
			fmt.Sprintf("Which testing methodology is most appropriate for %s?", title),
			fmt.Sprintf("What architectural pattern would you recommend for %s?", title),
		}
	case strings.Contains(combined, "data") || strings.Contains(combined, "analysis"):
		templates = []string{
			fmt.Sprintf("How would you clean and preprocess data for %s?", title),
			fmt.Sprintf("Which statistical method is appropriate for %s?", title),
			fmt.Sprintf("What visualization technique best represents %s?", title),
			fmt.Sprintf("How would you handle missing values in %s?", title),
			fmt.Sprintf("Which machine learning model is suitable for %s?", title),
			fmt.Sprintf("How would you validate the results of %s?", title),
		}
	case len(jobSkills) > 0:
		skills := strings.Join(jobSkills, ", ")
		templates = []string{
			fmt.Sprintf("How would you apply %s skills in this %s role?", skills, title),
			fmt.Sprintf("What challenges might you face using %s in this position?", skills),
			fmt.Sprintf("Which %s techniques are most relevant for this %s?", skills, title),
			fmt.Sprintf("How would you leverage your %s experience in this role?", skills),
			fmt.Sprintf("What %s methodologies would you use for this %s?", skills, title),
			fmt.Sprintf("How do %s skills contribute to success in this position?", skills),
		}
	default:
		templates = []string{
			fmt.Sprintf("What is the fundamental concept behind %s?", title),
			fmt.Sprintf("How would you approach solving a problem in %s?", title),
			fmt.Sprintf("What are the key characteristics of %s?", title),
			fmt.Sprintf("What is the main purpose of %s?", title),
			fmt.Sprintf("How does %s differ from similar concepts?", title),
			fmt.Sprintf("What limitations should be considered in %s?", title),
		}
	}

	// Stride by a prime so consecutive questions get different templates.
	text := templates[(number*7)%len(templates)]

	if req.AdditionalNote != "" {
		text += fmt.Sprintf(" (%s)", req.AdditionalNote)
	}
	if jobDescription != "" {
		text += fmt.Sprintf(" Consider the following job description: %s...", truncate(jobDescription, 100))
	}

	return text
}

// skillCategories derives up to five categories from the title and job info.
func (p *MockProvider) skillCategories(req GenerationRequest) []string {
	combined := strings.ToLower(req.Title)
	var jobSkills []string
	var seniority string
	if req.Job != nil {
		combined += " " + strings.ToLower(req.Job.Title)
		jobSkills = req.Job.SkillCategories
		seniority = req.Job.Seniority
	}

	categories := []string{"general"}
	switch {
	case strings.Contains(combined, "python"):
		categories = append(categories, "python", "programming", "backend")
	case strings.Contains(combined, "javascript") || strings.Contains(combined, "react"):
		categories = append(categories, "javascript", "programming", "frontend")
	case strings.Contains(combined, "data") || strings.Contains(combined, "analysis"):
		categories = append(categories, "data-analysis", "statistics", "visualization")
	case strings.Contains(combined, "devops"):
		categories = append(categories, "devops", "ci/cd", "infrastructure")
	case strings.Contains(combined, "security"):
		categories = append(categories, "security", "cybersecurity", "vulnerability")
	case strings.Contains(combined, "software") || strings.Contains(combined, "engineer"):
		categories = append(categories, "software-engineering", "design-patterns", "algorithms")
	}

	categories = append(categories, jobSkills...)

	switch seniority {
	case "intern":
		categories = append(categories, "learning", "basic-concepts")
	case "junior":
		categories = append(categories, "development", "implementation")
	case "mid":
		categories = append(categories, "problem-solving", "architecture")
	case "senior":
		categories = append(categories, "leadership", "decision-making")
	}

	categories = append(categories, "problem-solving", "critical-thinking")

	return dedupe(categories, 5)
}

// choiceOptions generates three to five options labeled a, b, c, ...
func (p *MockProvider) choiceOptions(questionText string) []types.QuestionOption {
	count := 3 + p.rng.Intn(3)
	lowered := strings.ToLower(questionText)

	var texts []string
	switch {
	case strings.Contains(lowered, "python"):
		texts = []string{
			"This approach uses Python's built-in functions",
			"This solution involves a custom class implementation",
			"This method leverages external libraries",
			"This technique uses recursion",
			"This algorithm has O(n) time complexity",
			"This pattern follows Python best practices",
		}
	case strings.Contains(lowered, "software") || strings.Contains(lowered, "design"):
		texts = []string{
			"This follows the singleton pattern",
			"This implements the observer pattern",
			"This uses the factory method",
			"This applies the decorator pattern",
			"This utilizes microservices architecture",
			"This employs event-driven design",
		}
	default:
		texts = []string{
			"This is the correct approach",
			"This is an alternative method",
			"This is a common misconception",
			"This relates to advanced concepts",
			"This is a basic implementation",
			"This is an outdated approach",
		}
	}

	options := make([]types.QuestionOption, 0, count)
	for i := 0; i < count; i++ {
		letter := string(rune('a' + i))
		options = append(options, types.QuestionOption{
			Text:  fmt.Sprintf("Option %s: %s", letter, texts[(i*11)%len(texts)]),
			Value: letter,
		})
	}
	return options
}

// correctOptions marks exactly one option correct for choose_one and one or
// two for choose_many.
func (p *MockProvider) correctOptions(options []types.QuestionOption, qType types.QuestionType) []string {
	if len(options) == 0 {
		return nil
	}

	if qType == types.ChooseOne {
		return []string{options[p.rng.Intn(len(options))].Value}
	}

	count := 1 + p.rng.Intn(2)
	if count > len(options) {
		count = len(options)
	}
	picked := p.rng.Perm(len(options))[:count]
	values := make([]string, 0, count)
	for _, i := range picked {
		values = append(values, options[i].Value)
	}
	return values
}

func dedupe(values []string, limit int) []string {
	seen := make(map[string]bool, len(values))
	result := make([]string, 0, limit)
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		result = append(result, v)
		if len(result) == limit {
			break
		}
	}
	return result
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
