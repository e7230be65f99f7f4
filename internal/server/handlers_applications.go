package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/db"
	"github.com/jonathan/assessment-engine/internal/scoring"
	"github.com/jonathan/assessment-engine/internal/server/middleware"
	"github.com/jonathan/assessment-engine/internal/types"
	"go.uber.org/zap"
)

// SubmitResponse is returned to an applicant right after submission. The
// answer-level breakdown is reserved for HR review.
type SubmitResponse struct {
	ID     uuid.UUID `json:"id"`
	Score  float64   `json:"score"`
	Passed bool      `json:"passed"`
}

// AnswerReview pairs an answer with its recomputed score for HR review.
type AnswerReview struct {
	QuestionID   string            `json:"question_id"`
	QuestionText string            `json:"question_text"`
	Answer       types.Answer      `json:"answer"`
	Result       types.ScoreResult `json:"result"`
}

// ApplicationDetail is the HR view of one submission.
type ApplicationDetail struct {
	Application *db.Application `json:"application"`
	Reviews     []AnswerReview  `json:"reviews"`
}

// handleSubmitAnswers scores and stores an applicant's submission
func (s *Server) handleSubmitAnswers(w http.ResponseWriter, r *http.Request) {
	assessmentID, ok := parsePathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid assessment ID")
		return
	}

	applicantID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	record, err := s.db.GetAssessmentByID(r.Context(), assessmentID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if record == nil {
		s.errorResponse(w, http.StatusNotFound, "Assessment not found")
		return
	}
	if !record.Active {
		s.errorFrom(w, &ErrAssessmentInactive{AssessmentID: assessmentID})
		return
	}

	existing, err := s.db.GetApplicationByApplicant(r.Context(), assessmentID, applicantID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if existing != nil {
		s.errorFrom(w, &ErrAlreadySubmitted{AssessmentID: assessmentID})
		return
	}

	var req types.SubmitAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	engine, closeEngine, err := s.scoringEngine(r.Context(), record.Provider)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	defer closeEngine()

	score, err := engine.CalculateScore(r.Context(), record.Questions, req.Answers)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	app, err := s.db.CreateApplication(r.Context(), db.CreateApplicationInput{
		AssessmentID: assessmentID,
		ApplicantID:  applicantID,
		Answers:      req.Answers,
		Score:        score,
		Passed:       score >= float64(record.PassingScore),
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.log.Info("application scored",
		zap.String("assessment_id", assessmentID.String()),
		zap.Float64("score", app.Score),
		zap.Bool("passed", app.Passed))

	s.jsonResponse(w, http.StatusCreated, SubmitResponse{
		ID:     app.ID,
		Score:  app.Score,
		Passed: app.Passed,
	})
}

// handleListApplications lists submission summaries for an assessment the HR
// user owns
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	assessmentID, ok := parsePathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid assessment ID")
		return
	}

	if _, _, err := s.requireOwnedAssessment(r, assessmentID); err != nil {
		s.errorFrom(w, err)
		return
	}

	limit := parseQueryInt(r, "limit", 20, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	summaries, total, err := s.db.ListApplicationsByAssessment(r.Context(), assessmentID, limit, offset)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"applications": summaries,
		"count":        total,
		"limit":        limit,
		"offset":       offset,
	})
}

// handleGetApplication returns one submission. The owning HR user gets the
// full per-answer review; the submitting applicant gets score and outcome
// only.
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := parsePathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	app, err := s.db.GetApplicationByID(r.Context(), applicationID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if app == nil {
		s.errorResponse(w, http.StatusNotFound, "Application not found")
		return
	}

	role, err := middleware.GetRole(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if role == string(types.RoleApplicant) {
		userID, err := middleware.GetUserID(r)
		if err != nil || userID != app.ApplicantID {
			s.errorResponse(w, http.StatusNotFound, "Application not found")
			return
		}
		s.jsonResponse(w, http.StatusOK, SubmitResponse{
			ID:     app.ID,
			Score:  app.Score,
			Passed: app.Passed,
		})
		return
	}

	record, _, err := s.requireOwnedAssessment(r, app.AssessmentID)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	reviews, err := s.reviewAnswers(r.Context(), record, app.Answers)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, ApplicationDetail{
		Application: app,
		Reviews:     reviews,
	})
}

// reviewAnswers recomputes per-answer results for HR review. Answers whose
// question was replaced by a regeneration are skipped, matching the
// overall-score semantics.
func (s *Server) reviewAnswers(ctx context.Context, record *db.Assessment, answers []types.Answer) ([]AnswerReview, error) {
	engine, closeEngine, err := s.scoringEngine(ctx, record.Provider)
	if err != nil {
		return nil, err
	}
	defer closeEngine()

	lookup := make(map[string]types.Question, len(record.Questions))
	for _, q := range record.Questions {
		lookup[q.ID] = q
	}

	reviews := make([]AnswerReview, 0, len(answers))
	for _, answer := range answers {
		question, ok := lookup[answer.QuestionID]
		if !ok {
			continue
		}

		result, err := engine.ScoreAnswer(ctx, question, answer)
		if err != nil {
			return nil, err
		}

		reviews = append(reviews, AnswerReview{
			QuestionID:   question.ID,
			QuestionText: question.Text,
			Answer:       answer,
			Result:       result,
		})
	}
	return reviews, nil
}

// scoringEngine builds a scoring engine backed by the named provider. The
// returned cleanup releases the provider when it holds a connection.
func (s *Server) scoringEngine(ctx context.Context, providerID string) (*scoring.Engine, func(), error) {
	if providerID == "" {
		providerID = s.defaultProvider
	}

	p, err := s.registry.Create(ctx, providerID)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if closer, ok := p.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				s.log.Warn("failed to close provider", zap.String("provider", providerID), zap.Error(err))
			}
		}
	}
	return scoring.NewEngine(p), cleanup, nil
}
