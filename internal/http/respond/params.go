package respond

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/clock"
)

// UUIDParam parses a chi URL parameter.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.Validation(name, "invalid id")
	}

	return id, nil
}

// UUIDQuery parses an optional query parameter.
func UUIDQuery(r *http.Request, key string) (*uuid.UUID, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}

	id, err := uuid.Parse(s)
	if err != nil {
		return nil, apperr.Validation(key, "invalid id")
	}

	return &id, nil
}

// DateQuery parses an optional YYYY-MM-DD query parameter.
func DateQuery(r *http.Request, key string) (*time.Time, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return nil, nil
	}

	t, err := clock.ParseDate(s)
	if err != nil {
		return nil, apperr.Validation(key, "expected YYYY-MM-DD")
	}

	return &t, nil
}

func IntQuery(r *http.Request, key string) (int, error) {
	s := r.URL.Query().Get(key)
	if s == "" {
		return 0, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, apperr.Validation(key, "expected a non-negative integer")
	}

	return n, nil
}

// StringQuery returns nil for an absent or empty parameter.
func StringQuery(r *http.Request, key string) *string {
	if s := r.URL.Query().Get(key); s != "" {
		return &s
	}

	return nil
}
