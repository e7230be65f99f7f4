package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/assessment-engine/internal/types"
)

const applicationColumns = `id, assessment_id, applicant_id, answers, score, passed, submitted_at`

// CreateApplicationInput holds a scored submission ready for storage. Only
// the overall percentage is persisted; per-answer results are recomputed on
// demand.
type CreateApplicationInput struct {
	AssessmentID uuid.UUID
	ApplicantID  uuid.UUID
	Answers      []types.Answer
	Score        float64
	Passed       bool
}

// CreateApplication inserts a submission and returns the stored record.
func (db *DB) CreateApplication(ctx context.Context, input CreateApplicationInput) (*Application, error) {
	var app Application
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (assessment_id, applicant_id, answers, score, passed)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+applicationColumns,
		input.AssessmentID, input.ApplicantID, AnswersJSON(input.Answers), input.Score, input.Passed,
	).Scan(&app.ID, &app.AssessmentID, &app.ApplicantID, &app.Answers,
		&app.Score, &app.Passed, &app.SubmittedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &app, nil
}

// GetApplicationByID retrieves an application by ID. Returns nil when none
// matches.
func (db *DB) GetApplicationByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	var app Application
	err := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE id = $1`,
		id,
	).Scan(&app.ID, &app.AssessmentID, &app.ApplicantID, &app.Answers,
		&app.Score, &app.Passed, &app.SubmittedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

// GetApplicationByApplicant retrieves an applicant's submission for an
// assessment, enforcing the one-submission rule. Returns nil when the
// applicant has not submitted yet.
func (db *DB) GetApplicationByApplicant(ctx context.Context, assessmentID, applicantID uuid.UUID) (*Application, error) {
	var app Application
	err := db.pool.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM applications
		 WHERE assessment_id = $1 AND applicant_id = $2`,
		assessmentID, applicantID,
	).Scan(&app.ID, &app.AssessmentID, &app.ApplicantID, &app.Answers,
		&app.Score, &app.Passed, &app.SubmittedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

// ApplicationSummary is a lightweight view of an application for listing.
// Answers are omitted.
type ApplicationSummary struct {
	ID             uuid.UUID `json:"id"`
	ApplicantID    uuid.UUID `json:"applicant_id"`
	ApplicantName  string    `json:"applicant_name"`
	ApplicantEmail string    `json:"applicant_email"`
	Score          float64   `json:"score"`
	Passed         bool      `json:"passed"`
	SubmittedAt    time.Time `json:"submitted_at"`
}

// ListApplicationsByAssessment retrieves submission summaries for an
// assessment, newest first, with the total count ignoring pagination.
func (db *DB) ListApplicationsByAssessment(ctx context.Context, assessmentID uuid.UUID, limit, offset int) ([]ApplicationSummary, int, error) {
	if limit <= 0 {
		limit = 20
	}

	var total int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE assessment_id = $1`,
		assessmentID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT a.id, a.applicant_id, u.first_name || ' ' || u.last_name, u.email,
		        a.score, a.passed, a.submitted_at
		 FROM applications a
		 JOIN users u ON u.id = a.applicant_id
		 WHERE a.assessment_id = $1
		 ORDER BY a.submitted_at DESC
		 LIMIT $2 OFFSET $3`,
		assessmentID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var summaries []ApplicationSummary
	for rows.Next() {
		var s ApplicationSummary
		if err := rows.Scan(&s.ID, &s.ApplicantID, &s.ApplicantName, &s.ApplicantEmail,
			&s.Score, &s.Passed, &s.SubmittedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan application: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, total, nil
}
