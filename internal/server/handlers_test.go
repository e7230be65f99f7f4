package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/assessment-engine/internal/db"
	"github.com/jonathan/assessment-engine/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryInt(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		param    string
		def, max int
		want     int
	}{
		{name: "absent uses default", query: "", param: "limit", def: 20, max: 100, want: 20},
		{name: "valid value", query: "limit=50", param: "limit", def: 20, max: 100, want: 50},
		{name: "capped at max", query: "limit=500", param: "limit", def: 20, max: 100, want: 100},
		{name: "unbounded when max is zero", query: "offset=500", param: "offset", def: 0, max: 0, want: 500},
		{name: "negative uses default", query: "limit=-5", param: "limit", def: 20, max: 100, want: 20},
		{name: "non-numeric uses default", query: "limit=abc", param: "limit", def: 20, max: 100, want: 20},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/jobs?"+tc.query, nil)
			assert.Equal(t, tc.want, parseQueryInt(req, tc.param, tc.def, tc.max))
		})
	}
}

func TestParsePathUUID(t *testing.T) {
	id := uuid.New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		parsed, ok := parsePathUUID(r, "id")
		require.True(t, ok)
		assert.Equal(t, id, parsed)
	})

	req := httptest.NewRequest(http.MethodGet, "/jobs/"+id.String(), nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)
}

func TestParsePathUUID_Invalid(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		parsed, ok := parsePathUUID(r, "id")
		assert.False(t, ok)
		assert.Equal(t, uuid.Nil, parsed)
	})

	req := httptest.NewRequest(http.MethodGet, "/jobs/not-a-uuid", nil)
	mux.ServeHTTP(httptest.NewRecorder(), req)
}

func TestApplicantView_StripsCorrectOptions(t *testing.T) {
	record := &db.Assessment{
		ID:              uuid.New(),
		JobID:           uuid.New(),
		Title:           "Backend Engineer Screen",
		PassingScore:    60,
		DurationSeconds: 1800,
		Provider:        "mock",
		Active:          true,
		Questions: db.QuestionsJSON{
			{
				ID:              uuid.NewString(),
				Text:            "Which statements about slices are true?",
				Weight:          3,
				SkillCategories: []string{"go"},
				Type:            types.ChooseMany,
				Options: []types.QuestionOption{
					{Text: "Slices share backing arrays", Value: "share_backing"},
					{Text: "Slices are fixed length", Value: "fixed_length"},
				},
				CorrectOptions: []string{"share_backing"},
			},
			{
				ID:              uuid.NewString(),
				Text:            "Describe how you would profile a slow request.",
				Weight:          5,
				SkillCategories: []string{"observability"},
				Type:            types.TextBased,
			},
		},
	}

	view := applicantView(record)

	assert.Equal(t, record.ID, view.ID)
	assert.Equal(t, record.JobID, view.JobID)
	assert.Equal(t, "Backend Engineer Screen", view.Title)
	assert.Equal(t, 1800, view.DurationSeconds)
	require.Len(t, view.Questions, 2)

	// Options survive so the applicant can answer choice questions.
	assert.Len(t, view.Questions[0].Options, 2)

	// The serialized view must never leak the answer key.
	payload, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(payload), "correct_options")
}

func TestJobInfo(t *testing.T) {
	job := &db.Job{
		ID:              uuid.New(),
		Title:           "Platform Engineer",
		Description:     "Build and run the deployment platform.",
		Seniority:       "senior",
		SkillCategories: db.StringArray{"go", "kubernetes"},
	}

	info := jobInfo(job)
	assert.Equal(t, "Platform Engineer", info.Title)
	assert.Equal(t, "Build and run the deployment platform.", info.Description)
	assert.Equal(t, "senior", info.Seniority)
	assert.Equal(t, []string{"go", "kubernetes"}, info.SkillCategories)
}
