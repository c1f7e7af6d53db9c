package respond_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/toolrent/internal/apperr"
	"github.com/MrJamesThe3rd/toolrent/internal/http/respond"
)

func TestError(t *testing.T) {
	type testCase struct {
		name       string
		err        error
		wantStatus int
		wantBody   map[string]any
	}

	tests := []testCase{
		{
			name:       "validation carries field",
			err:        fmt.Errorf("create loan: %w", apperr.Validation("return_date", "must be after the loan date")),
			wantStatus: http.StatusBadRequest,
			wantBody:   map[string]any{"error": "must be after the loan date", "field": "return_date"},
		},
		{
			name:       "restricted carries counts",
			err:        &apperr.RestrictedError{CustomerID: uuid.Nil, UnpaidFines: 1, OverdueLoans: 0},
			wantStatus: http.StatusUnprocessableEntity,
			wantBody: map[string]any{
				"error":         "customer 00000000-0000-0000-0000-000000000000 is restricted: 1 unpaid fines, 0 overdue loans",
				"unpaid_fines":  float64(1),
				"overdue_loans": float64(0),
			},
		},
		{
			name:       "not found",
			err:        fmt.Errorf("loan: %w", apperr.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   map[string]any{"error": "loan: not found"},
		},
		{
			name:       "conflict",
			err:        fmt.Errorf("loan is not active: %w", apperr.ErrConflict),
			wantStatus: http.StatusConflict,
			wantBody:   map[string]any{"error": "loan is not active: conflict"},
		},
		{
			name:       "unclassified is hidden",
			err:        errors.New("pq: connection refused"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   map[string]any{"error": "internal error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			respond.Error(rec, tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantBody, body)
		})
	}
}

func TestDateQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/?start_date=2025-03-01&end_date=03-2025", nil)

	got, err := respond.DateQuery(r, "start_date")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "2025-03-01", got.Format("2006-01-02"))

	_, err = respond.DateQuery(r, "end_date")
	assert.ErrorIs(t, err, apperr.ErrValidation)

	got, err = respond.DateQuery(r, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}
