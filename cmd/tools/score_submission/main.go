// Command score_submission scores a submission offline against an assessment.
// It reads an assessment JSON file (title, passing score, questions) and an
// answers JSON file, runs the scoring engine over them and prints the
// per-answer results, the weighted total and the pass/fail outcome.
//
// Usage:
//
//	go run cmd/tools/score_submission/main.go -assessment assessment.json -answers answers.json
//
// Set AI_PROVIDER to pick the provider used for free-text grading (default:
// mock). The gemini provider requires GEMINI_API_KEY.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonathan/assessment-engine/internal/provider"
	"github.com/jonathan/assessment-engine/internal/scoring"
	"github.com/jonathan/assessment-engine/internal/types"
)

func main() {
	assessmentPath := flag.String("assessment", "", "path to the assessment JSON file")
	answersPath := flag.String("answers", "", "path to the answers JSON file")
	flag.Parse()

	if *assessmentPath == "" || *answersPath == "" {
		fmt.Fprintln(os.Stderr, "ERROR: both -assessment and -answers are required")
		flag.Usage()
		os.Exit(1)
	}

	_ = godotenv.Load()

	var spec types.AssessmentSpec
	if err := readJSON(*assessmentPath, &spec); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read assessment: %v\n", err)
		os.Exit(1)
	}
	if err := spec.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Invalid assessment: %v\n", err)
		os.Exit(1)
	}

	var answers []types.Answer
	if err := readJSON(*answersPath, &answers); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to read answers: %v\n", err)
		os.Exit(1)
	}

	providerID := os.Getenv("AI_PROVIDER")
	if providerID == "" {
		providerID = provider.DefaultProviderID
	}

	ctx := context.Background()

	p, err := provider.NewDefaultRegistry().Create(ctx, providerID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to create provider %q: %v\n", providerID, err)
		os.Exit(1)
	}
	defer func() {
		if closer, ok := p.(io.Closer); ok {
			_ = closer.Close()
		}
	}()

	engine := scoring.NewEngine(p)

	byID := make(map[string]types.Answer, len(answers))
	for _, a := range answers {
		byID[a.QuestionID] = a
	}

	fmt.Printf("Scoring %q: %d answers against %d questions (provider: %s)\n\n",
		spec.Title, len(answers), len(spec.Questions), providerID)

	for i, q := range spec.Questions {
		answer, ok := byID[q.ID]
		if !ok {
			answer = types.Answer{QuestionID: q.ID}
		}

		result, err := engine.ScoreAnswer(ctx, q, answer)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: Failed to score question %s: %v\n", q.ID, err)
			os.Exit(1)
		}

		status := "INCORRECT"
		if result.Correct {
			status = "CORRECT"
		}
		fmt.Printf("Question %d (weight %d): %s\n", i+1, q.EffectiveWeight(), q.Text)
		fmt.Printf("  %s (%.2f): %s\n\n", status, result.Score, result.Rationale)
	}

	total, err := engine.CalculateScore(ctx, spec.Questions, answers)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: Failed to calculate total score: %v\n", err)
		os.Exit(1)
	}

	outcome := "FAIL"
	if total >= float64(spec.PassingScore) {
		outcome = "PASS"
	}
	fmt.Printf("Weighted score: %.2f%% (passing score: %d%%) => %s\n", total, spec.PassingScore, outcome)
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
