package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/db"
	"github.com/jonathan/assessment-engine/internal/server/middleware"
	"github.com/jonathan/assessment-engine/internal/types"
)

// ListJobsResponse represents the response for listing job postings
type ListJobsResponse struct {
	Jobs   []db.Job `json:"jobs"`
	Count  int      `json:"count"`
	Limit  int      `json:"limit"`
	Offset int      `json:"offset"`
}

// handleCreateJob creates a job posting owned by the authenticated HR user
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req types.CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	job, err := s.db.CreateJob(r.Context(), db.CreateJobInput{
		CreatedBy:       userID,
		Title:           req.Title,
		Seniority:       req.Seniority,
		Description:     req.Description,
		SkillCategories: req.SkillCategories,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs lists job postings with optional filters and pagination.
// Both roles may browse jobs.
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	limit := parseQueryInt(r, "limit", 20, 100)
	offset := parseQueryInt(r, "offset", 0, 0)

	filters := db.JobFilters{
		Seniority: r.URL.Query().Get("seniority"),
		Limit:     limit,
		Offset:    offset,
	}

	if r.URL.Query().Get("mine") == "true" {
		userID, err := middleware.GetUserID(r)
		if err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
			return
		}
		filters.CreatedBy = userID
	}

	jobs, total, err := s.db.ListJobs(r.Context(), filters)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	s.jsonResponse(w, http.StatusOK, ListJobsResponse{
		Jobs:   jobs,
		Count:  total,
		Limit:  limit,
		Offset: offset,
	})
}

// handleGetJob retrieves a job posting by its ID
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := parsePathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJob applies a partial update to a job the HR user owns
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
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

	var req types.UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validator.Struct(req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, extractValidationErrors(err))
		return
	}

	updated, err := s.db.UpdateJob(r.Context(), job.ID, db.UpdateJobInput{
		Title:           nonEmpty(req.Title),
		Seniority:       nonEmpty(req.Seniority),
		Description:     nonEmpty(req.Description),
		SkillCategories: req.SkillCategories,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if updated == nil {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}

// handleDeleteJob deletes a job the HR user owns
func (s *Server) handleDeleteJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := parsePathUUID(r, "id")
	if !ok {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	if _, err := s.requireOwnedJob(r, jobID); err != nil {
		s.errorFrom(w, err)
		return
	}

	deleted, err := s.db.DeleteJob(r.Context(), jobID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if !deleted {
		s.errorResponse(w, http.StatusNotFound, "Job not found")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requireOwnedJob loads a job and checks that the authenticated user owns it.
func (s *Server) requireOwnedJob(r *http.Request, jobID uuid.UUID) (*db.Job, error) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		return nil, &ErrForbidden{}
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, &ErrNotFound{Resource: "job", ID: jobID}
	}
	if job.CreatedBy != userID {
		return nil, &ErrForbidden{Message: "job belongs to another user"}
	}
	return job, nil
}

// nonEmpty maps an empty string onto nil for COALESCE-style partial updates.
func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
