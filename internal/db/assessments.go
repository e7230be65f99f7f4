package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/assessment-engine/internal/types"
)

const assessmentColumns = `id, job_id, title, passing_score, duration_seconds, provider, questions, active, created_at, updated_at`

// CreateAssessmentInput holds the fields needed to store a generated
// assessment.
type CreateAssessmentInput struct {
	JobID           uuid.UUID
	Title           string
	PassingScore    int
	DurationSeconds int
	Provider        string
	Questions       []types.Question
}

// CreateAssessment inserts an assessment and returns the stored record. New
// assessments start inactive so HR can review the questions before opening
// them to applicants.
func (db *DB) CreateAssessment(ctx context.Context, input CreateAssessmentInput) (*Assessment, error) {
	var a Assessment
	err := db.pool.QueryRow(ctx,
		`INSERT INTO assessments (job_id, title, passing_score, duration_seconds, provider, questions, active)
		 VALUES ($1, $2, $3, $4, $5, $6, false)
		 RETURNING `+assessmentColumns,
		input.JobID, input.Title, input.PassingScore, input.DurationSeconds,
		input.Provider, QuestionsJSON(input.Questions),
	).Scan(&a.ID, &a.JobID, &a.Title, &a.PassingScore, &a.DurationSeconds,
		&a.Provider, &a.Questions, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create assessment: %w", err)
	}
	return &a, nil
}

// GetAssessmentByID retrieves an assessment by ID. Returns nil when none
// matches.
func (db *DB) GetAssessmentByID(ctx context.Context, id uuid.UUID) (*Assessment, error) {
	var a Assessment
	err := db.pool.QueryRow(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.JobID, &a.Title, &a.PassingScore, &a.DurationSeconds,
		&a.Provider, &a.Questions, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get assessment: %w", err)
	}
	return &a, nil
}

// ListAssessmentsByJob retrieves all assessments for a job, newest first.
func (db *DB) ListAssessmentsByJob(ctx context.Context, jobID uuid.UUID) ([]Assessment, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+assessmentColumns+` FROM assessments WHERE job_id = $1 ORDER BY created_at DESC`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}
	defer rows.Close()

	var assessments []Assessment
	for rows.Next() {
		var a Assessment
		if err := rows.Scan(&a.ID, &a.JobID, &a.Title, &a.PassingScore, &a.DurationSeconds,
			&a.Provider, &a.Questions, &a.Active, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan assessment: %w", err)
		}
		assessments = append(assessments, a)
	}
	return assessments, nil
}

// ReplaceQuestions swaps in a regenerated question set. Existing applications
// keep their stored scores; answers referencing replaced questions are simply
// orphaned. Returns nil when no assessment matches.
func (db *DB) ReplaceQuestions(ctx context.Context, id uuid.UUID, questions []types.Question, durationSeconds int, providerID string) (*Assessment, error) {
	var a Assessment
	err := db.pool.QueryRow(ctx,
		`UPDATE assessments
		 SET questions = $2, duration_seconds = $3, provider = $4, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+assessmentColumns,
		id, QuestionsJSON(questions), durationSeconds, providerID,
	).Scan(&a.ID, &a.JobID, &a.Title, &a.PassingScore, &a.DurationSeconds,
		&a.Provider, &a.Questions, &a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to replace questions: %w", err)
	}
	return &a, nil
}

// SetAssessmentActive toggles whether an assessment accepts submissions.
// Returns false when no assessment matches.
func (db *DB) SetAssessmentActive(ctx context.Context, id uuid.UUID, active bool) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`UPDATE assessments SET active = $2, updated_at = NOW() WHERE id = $1`,
		id, active,
	)
	if err != nil {
		return false, fmt.Errorf("failed to set assessment active: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// DeleteAssessment deletes an assessment and its applications via cascade.
func (db *DB) DeleteAssessment(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM assessments WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete assessment: %w", err)
	}
	return result.RowsAffected() > 0, nil
}
