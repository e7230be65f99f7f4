package types

import "github.com/go-playground/validator/v10"

// JobSeniority is the experience level a job posting targets.
type JobSeniority string

// Supported seniority levels.
const (
	SeniorityIntern JobSeniority = "intern"
	SeniorityJunior JobSeniority = "junior"
	SeniorityMid    JobSeniority = "mid"
	SenioritySenior JobSeniority = "senior"
)

// CreateJobRequest represents the request to post a new job.
type CreateJobRequest struct {
	Title           string   `json:"title" validate:"required,min=1,max=200"`
	Seniority       string   `json:"seniority" validate:"required,oneof=intern junior mid senior"`
	Description     string   `json:"description" validate:"required,min=1"`
	SkillCategories []string `json:"skill_categories" validate:"required,min=1"`
}

// UpdateJobRequest represents a partial update to a job posting.
type UpdateJobRequest struct {
	Title           string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Seniority       string   `json:"seniority,omitempty" validate:"omitempty,oneof=intern junior mid senior"`
	Description     string   `json:"description,omitempty"`
	SkillCategories []string `json:"skill_categories,omitempty"`
}

// Validate validates the CreateJobRequest using the validator.
func (r *CreateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the UpdateJobRequest using the validator.
func (r *UpdateJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
