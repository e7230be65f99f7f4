package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/assessment"
	"github.com/jonathan/assessment-engine/internal/db"
	"github.com/jonathan/assessment-engine/internal/provider"
	"github.com/jonathan/assessment-engine/internal/server/middleware"
	"github.com/jonathan/assessment-engine/internal/types"
)

// ApplicantQuestion is the question view exposed to applicants. Correct
// options never leave the server on this path.
type ApplicantQuestion struct {
	ID              string                 `json:"id"`
	Text            string                 `json:"text"`
	Weight          int                    `json:"weight"`
	SkillCategories []string               `json:"skill_categories"`
	Type            types.QuestionType     `json:"type"`
	Options         []types.QuestionOption `json:"options,omitempty"`
}

// ApplicantAssessment is the assessment view exposed to applicants.
type ApplicantAssessment struct {
	ID              uuid.UUID           `json:"id"`
	JobID           uuid.UUID           `json:"job_id"`
	Title           string              `json:"title"`
	DurationSeconds int                 `json:"duration_seconds"`
	Questions       []ApplicantQuestion `json:"questions"`
}

// handleCreateAssessment generates an assessment for a job the HR user owns
func (s *Server) handleCreateAssessment(w http.ResponseWriter, r *http.Request) {
	jobID, ok := parsePathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.requireOwnedJob(r, jobID)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	var req types.CreateAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	result, err := s.generator.Generate(r.Context(), assessment.GenerateParams{
		Title:          req.Title,
		QuestionTypes:  req.QuestionTypes,
		AdditionalNote: req.AdditionalNote,
		Provider:       r.URL.Query().Get("provider"),
		Job:            jobInfo(job),
	})
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	stored, err := s.db.CreateAssessment(r.Context(), db.CreateAssessmentInput{
		JobID:           job.ID,
		Title:           req.Title,
		PassingScore:    req.PassingScore,
		DurationSeconds: result.DurationSeconds,
		Provider:        result.Provider,
		Questions:       result.Questions,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, stored)
}

// handleListAssessments lists all assessments for a job the HR user owns
func (s *Server) handleListAssessments(w http.ResponseWriter, r *http.Request) {
	jobID, ok := parsePathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	if _, err := s.requireOwnedJob(r, jobID); err != nil {
		s.errorFrom(w, err)
		return
	}

	assessments, err := s.db.ListAssessmentsByJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]any{
		"assessments": assessments,
		"count":       len(assessments),
	})
}

// handleGetAssessment returns an assessment. HR users who own the parent job
// see the full record; applicants see an active assessment stripped of the
// correct options.
func (s *Server) handleGetAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentID, ok := parsePathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid assessment ID")
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

	role, err := middleware.GetRole(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if role == string(types.RoleHR) {
		if _, err := s.requireOwnedJob(r, record.JobID); err != nil {
			s.errorFrom(w, err)
			return
		}
		s.jsonResponse(w, http.StatusOK, record)
		return
	}

	// Applicants only see active assessments, without answer keys.
	if !record.Active {
		s.errorResponse(w, http.StatusNotFound, "Assessment not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, applicantView(record))
}

// handleRegenerateAssessment replaces an assessment's questions wholesale
func (s *Server) handleRegenerateAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentID, ok := parsePathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid assessment ID")
		return
	}

	record, job, err := s.requireOwnedAssessment(r, assessmentID)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	var req types.RegenerateAssessmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	result, err := s.generator.Generate(r.Context(), assessment.GenerateParams{
		Title:          record.Title,
		QuestionTypes:  req.QuestionTypes,
		AdditionalNote: req.AdditionalNote,
		Provider:       r.URL.Query().Get("provider"),
		Job:            jobInfo(job),
	})
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	updated, err := s.db.ReplaceQuestions(r.Context(), assessmentID, result.Questions, result.DurationSeconds, result.Provider)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if updated == nil {
		s.errorResponse(w, http.StatusNotFound, "Assessment not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// SetActiveRequest toggles whether an assessment accepts submissions
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// handleSetAssessmentActive opens or closes an assessment for submissions
func (s *Server) handleSetAssessmentActive(w http.ResponseWriter, r *http.Request) {
	assessmentID, ok := parsePathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid assessment ID")
		return
	}

	if _, _, err := s.requireOwnedAssessment(r, assessmentID); err != nil {
		s.errorFrom(w, err)
		return
	}

	var req SetActiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := s.db.SetAssessmentActive(r.Context(), assessmentID, req.Active)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !updated {
		s.errorResponse(w, http.StatusNotFound, "Assessment not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]bool{"active": req.Active})
}

// handleDeleteAssessment deletes an assessment the HR user owns
func (s *Server) handleDeleteAssessment(w http.ResponseWriter, r *http.Request) {
	assessmentID, ok := parsePathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid assessment ID")
		return
	}

	if _, _, err := s.requireOwnedAssessment(r, assessmentID); err != nil {
		s.errorFrom(w, err)
		return
	}

	deleted, err := s.db.DeleteAssessment(r.Context(), assessmentID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Assessment not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requireOwnedAssessment loads an assessment and checks ownership of the
// parent job.
func (s *Server) requireOwnedAssessment(r *http.Request, assessmentID uuid.UUID) (*db.Assessment, *db.Job, error) {
	record, err := s.db.GetAssessmentByID(r.Context(), assessmentID)
	if err != nil {
		return nil, nil, err
	}
	if record == nil {
		return nil, nil, &ErrNotFound{Resource: "assessment", ID: assessmentID}
	}

	job, err := s.requireOwnedJob(r, record.JobID)
	if err != nil {
		return nil, nil, err
	}
	return record, job, nil
}

// jobInfo converts a job record into the generation context providers see.
func jobInfo(job *db.Job) *provider.JobInfo {
	return &provider.JobInfo{
		Title:           job.Title,
		Description:     job.Description,
		Seniority:       job.Seniority,
		SkillCategories: job.SkillCategories,
	}
}

// applicantView strips the answer key from an assessment.
func applicantView(record *db.Assessment) ApplicantAssessment {
	questions := make([]ApplicantQuestion, 0, len(record.Questions))
	for _, q := range record.Questions {
		questions = append(questions, ApplicantQuestion{
			ID:              q.ID,
			Text:            q.Text,
			Weight:          q.Weight,
			SkillCategories: q.SkillCategories,
			Type:            q.Type,
			Options:         q.Options,
		})
	}
	return ApplicantAssessment{
		ID:              record.ID,
		JobID:           record.JobID,
		Title:           record.Title,
		DurationSeconds: record.DurationSeconds,
		Questions:       questions,
	}
}
