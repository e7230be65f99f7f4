package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
)

// parseQueryInt parses an integer query parameter with a default and an
// optional maximum (0 means unbounded).
func parseQueryInt(r *http.Request, name string, def, max int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return def
	}
	if max > 0 && value > max {
		return max
	}
	return value
}

// parsePathUUID parses a UUID path segment.
func parsePathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
