package provider

import (
	"fmt"
	"strings"

	"github.com/jonathan/assessment-engine/internal/types"
)

// System instructions for the role-tagged messages sent to real backends.
const (
	generationSystemPrompt = "You generate technical assessment questions."
	scoringSystemPrompt    = "You are an expert at evaluating assessment answers."
	durationSystemPrompt   = "You estimate assessment durations. Respond with only a number representing minutes."
)

// buildGenerationPrompt constructs the user prompt for question generation.
// The response must be a JSON array matching the wire schema in parse.go.
func buildGenerationPrompt(req GenerationRequest) string {
	var mcqCount, textCount int
	for _, t := range req.QuestionTypes {
		if t.IsChoice() {
			mcqCount++
		} else {
			textCount++
		}
	}

	var sb strings.Builder

	sb.WriteString("You are an assessment generator.\n\n")
	fmt.Fprintf(&sb, "Generate EXACTLY %d questions for the following job.\n\n", len(req.QuestionTypes))

	sb.WriteString("Job Information:\n")
	if req.Job != nil {
		fmt.Fprintf(&sb, "- Title: %s\n", req.Job.Title)
		if len(req.Job.SkillCategories) > 0 {
			fmt.Fprintf(&sb, "- Skills: %s\n", strings.Join(req.Job.SkillCategories, ", "))
		}
		if req.Job.Seniority != "" {
			fmt.Fprintf(&sb, "- Seniority: %s\n", req.Job.Seniority)
		}
	} else {
		fmt.Fprintf(&sb, "- Title: %s\n", req.Title)
	}
	if req.AdditionalNote != "" {
		fmt.Fprintf(&sb, "- Additional Note: %s\n", req.AdditionalNote)
	}
	sb.WriteString("\n")

	sb.WriteString("MANDATORY RULES:\n")
	fmt.Fprintf(&sb, "1. Output MUST be a JSON ARRAY with EXACTLY %d objects: %d MCQ and %d TEXT.\n", len(req.QuestionTypes), mcqCount, textCount)
	sb.WriteString("2. The array MUST follow this exact type order:\n")
	for i, t := range req.QuestionTypes {
		fmt.Fprintf(&sb, "   - position %d: %s\n", i+1, wireType(t))
	}
	sb.WriteString("3. Do NOT include explanations or markdown.\n")
	sb.WriteString("4. Follow the schema EXACTLY.\n\n")

	sb.WriteString("Schema for each question:\n\n")
	sb.WriteString(`{
  "type": "MCQ | TEXT",
  "prompt": "string",
  "choices": ["string"],
  "correct_answers": ["string"],
  "difficulty": "easy | medium | hard",
  "skill": "string"
}` + "\n\n")

	sb.WriteString("Rules per type:\n")
	sb.WriteString("- MCQ -> 4 choices; correct_answers lists the text of each correct choice (exactly one for a single-answer question)\n")
	sb.WriteString("- TEXT -> omit choices and correct_answers\n\n")
	sb.WriteString("Return ONLY the JSON array.\n")

	return sb.String()
}

// buildScoringPrompt constructs the user prompt for grading a free-text answer.
func buildScoringPrompt(question types.Question, answerText string) string {
	var sb strings.Builder

	sb.WriteString("Evaluate the following answer to a text-based question:\n\n")
	fmt.Fprintf(&sb, "Question: %s\n", question.Text)
	fmt.Fprintf(&sb, "Answer: %s\n\n", answerText)
	sb.WriteString("Provide a score between 0 and 1, where 1 means completely correct and 0 means completely incorrect.\n")
	sb.WriteString("Also provide a brief rationale for the score.\n\n")
	sb.WriteString("Respond ONLY with JSON in the following format:\n")
	sb.WriteString(`{"score": float, "rationale": "string", "correct": bool}` + "\n")

	return sb.String()
}

// BuildDurationPrompt describes an assessment so a provider can estimate how
// long an applicant needs. Exposed for the assessment service.
func BuildDurationPrompt(title string, questions []types.Question) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "An assessment titled %q contains %d questions:\n", title, len(questions))
	for i, q := range questions {
		fmt.Fprintf(&sb, "%d. [%s] %s\n", i+1, q.Type, q.Text)
	}
	sb.WriteString("\nEstimate how many minutes an applicant needs to complete it. Respond with only the number of minutes.\n")

	return sb.String()
}

func wireType(t types.QuestionType) string {
	if t.IsChoice() {
		return "MCQ"
	}
	return "TEXT"
}
