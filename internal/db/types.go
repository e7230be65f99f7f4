package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/types"
)

// User represents a platform account, either an HR user or an applicant.
type User struct {
	ID           uuid.UUID      `json:"id"`
	FirstName    string         `json:"first_name"`
	LastName     string         `json:"last_name"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-" db:"password_hash"` // Never serialize to JSON
	Role         types.UserRole `json:"role"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// Job represents a job posting owned by an HR user.
type Job struct {
	ID              uuid.UUID   `json:"id"`
	CreatedBy       uuid.UUID   `json:"created_by"`
	Title           string      `json:"title"`
	Seniority       string      `json:"seniority"`
	Description     string      `json:"description"`
	SkillCategories StringArray `json:"skill_categories"` // JSONB array
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// Assessment represents a generated question set attached to a job. The
// questions, correct answers included, live in a JSONB column and are never
// exposed to applicants directly.
type Assessment struct {
	ID              uuid.UUID     `json:"id"`
	JobID           uuid.UUID     `json:"job_id"`
	Title           string        `json:"title"`
	PassingScore    int           `json:"passing_score"`
	DurationSeconds int           `json:"duration_seconds"`
	Provider        string        `json:"provider"`
	Questions       QuestionsJSON `json:"questions"`
	Active          bool          `json:"active"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// Application represents one applicant's submission for an assessment.
type Application struct {
	ID           uuid.UUID   `json:"id"`
	AssessmentID uuid.UUID   `json:"assessment_id"`
	ApplicantID  uuid.UUID   `json:"applicant_id"`
	Answers      AnswersJSON `json:"answers"`
	Score        float64     `json:"score"`
	Passed       bool        `json:"passed"`
	SubmittedAt  time.Time   `json:"submitted_at"`
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	source, ok := src.([]byte)
	if !ok {
		return errors.New("type assertion .([]byte) failed")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}

// QuestionsJSON handles the JSONB question set column.
type QuestionsJSON []types.Question

// Scan implements the Scanner interface for QuestionsJSON
func (q *QuestionsJSON) Scan(src interface{}) error {
	if src == nil {
		*q = nil
		return nil
	}
	source, ok := src.([]byte)
	if !ok {
		return errors.New("type assertion .([]byte) failed")
	}
	return json.Unmarshal(source, q)
}

// Value implements the Valuer interface for QuestionsJSON
func (q QuestionsJSON) Value() (driver.Value, error) {
	if q == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(q)
}

// AnswersJSON handles the JSONB answers column.
type AnswersJSON []types.Answer

// Scan implements the Scanner interface for AnswersJSON
func (a *AnswersJSON) Scan(src interface{}) error {
	if src == nil {
		*a = nil
		return nil
	}
	source, ok := src.([]byte)
	if !ok {
		return errors.New("type assertion .([]byte) failed")
	}
	return json.Unmarshal(source, a)
}

// Value implements the Valuer interface for AnswersJSON
func (a AnswersJSON) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
