package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateJobInput holds the fields needed to create a job posting.
type CreateJobInput struct {
	CreatedBy       uuid.UUID
	Title           string
	Seniority       string
	Description     string
	SkillCategories []string
}

// CreateJob inserts a job posting and returns the stored record.
func (db *DB) CreateJob(ctx context.Context, input CreateJobInput) (*Job, error) {
	var job Job
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (created_by, title, seniority, description, skill_categories)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_by, title, seniority, description, skill_categories, created_at, updated_at`,
		input.CreatedBy, input.Title, input.Seniority, input.Description, StringArray(input.SkillCategories),
	).Scan(&job.ID, &job.CreatedBy, &job.Title, &job.Seniority, &job.Description,
		&job.SkillCategories, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &job, nil
}

// GetJobByID retrieves a job posting by ID. Returns nil when no job matches.
func (db *DB) GetJobByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	var job Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, created_by, title, seniority, description, skill_categories, created_at, updated_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.CreatedBy, &job.Title, &job.Seniority, &job.Description,
		&job.SkillCategories, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// JobFilters holds optional filters for listing jobs
type JobFilters struct {
	CreatedBy uuid.UUID
	Seniority string
	Limit     int
	Offset    int
}

// ListJobs retrieves job postings with optional filters, newest first, along
// with the total count ignoring pagination.
func (db *DB) ListJobs(ctx context.Context, filters JobFilters) ([]Job, int, error) {
	if filters.Limit <= 0 {
		filters.Limit = 20
	}

	where := " WHERE 1=1"
	args := []any{}
	argNum := 1

	if filters.CreatedBy != uuid.Nil {
		where += fmt.Sprintf(" AND created_by = $%d", argNum)
		args = append(args, filters.CreatedBy)
		argNum++
	}
	if filters.Seniority != "" {
		where += fmt.Sprintf(" AND seniority = $%d", argNum)
		args = append(args, filters.Seniority)
		argNum++
	}

	var total int
	if err := db.pool.QueryRow(ctx, "SELECT COUNT(*) FROM jobs"+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	query := `SELECT id, created_by, title, seniority, description, skill_categories, created_at, updated_at
		FROM jobs` + where + fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", argNum, argNum+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var job Job
		if err := rows.Scan(&job.ID, &job.CreatedBy, &job.Title, &job.Seniority, &job.Description,
			&job.SkillCategories, &job.CreatedAt, &job.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, total, nil
}

// UpdateJobInput holds the updatable fields of a job posting. Nil fields are
// left unchanged.
type UpdateJobInput struct {
	Title           *string
	Seniority       *string
	Description     *string
	SkillCategories []string
}

// UpdateJob applies a partial update and returns the updated record. Returns
// nil when no job matches.
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, input UpdateJobInput) (*Job, error) {
	var job Job
	err := db.pool.QueryRow(ctx,
		`UPDATE jobs SET
		   title = COALESCE($2, title),
		   seniority = COALESCE($3, seniority),
		   description = COALESCE($4, description),
		   skill_categories = COALESCE($5, skill_categories),
		   updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, created_by, title, seniority, description, skill_categories, created_at, updated_at`,
		id, input.Title, input.Seniority, input.Description, nullableArray(input.SkillCategories),
	).Scan(&job.ID, &job.CreatedBy, &job.Title, &job.Seniority, &job.Description,
		&job.SkillCategories, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return &job, nil
}

// DeleteJob deletes a job posting and its assessments via cascade.
func (db *DB) DeleteJob(ctx context.Context, id uuid.UUID) (bool, error) {
	result, err := db.pool.Exec(ctx, `DELETE FROM jobs WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete job: %w", err)
	}
	return result.RowsAffected() > 0, nil
}

// nullableArray maps a nil slice onto SQL NULL so COALESCE keeps the stored
// value.
func nullableArray(values []string) any {
	if values == nil {
		return nil
	}
	return StringArray(values)
}
