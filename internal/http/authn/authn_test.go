package authn_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/toolrent/internal/auth"
	"github.com/MrJamesThe3rd/toolrent/internal/http/authn"
)

const secret = "test-secret"

func token(t *testing.T, roles ...string) string {
	t.Helper()

	c := auth.Claims{PreferredUsername: "ana"}
	c.RealmAccess.Roles = roles
	c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))

	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString([]byte(secret))
	require.NoError(t, err)

	return s
}

func TestAuthenticateAndRequireRole(t *testing.T) {
	v, err := auth.NewVerifier(secret, "", "")
	require.NoError(t, err)

	var seenUser string

	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUser = auth.Username(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	adminOnly := authn.Authenticate(v)(authn.RequireRole(auth.RoleAdmin)(ok))

	type testCase struct {
		name       string
		header     func(t *testing.T) string
		wantStatus int
	}

	tests := []testCase{
		{
			name:       "missing token",
			header:     func(*testing.T) string { return "" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "garbage token",
			header:     func(*testing.T) string { return "Bearer nope" },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "employee on admin route",
			header:     func(t *testing.T) string { return "Bearer " + token(t, "EMPLOYEE") },
			wantStatus: http.StatusForbidden,
		},
		{
			name:       "admin",
			header:     func(t *testing.T) string { return "Bearer " + token(t, "ADMIN") },
			wantStatus: http.StatusNoContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if h := tt.header(t); h != "" {
				req.Header.Set("Authorization", h)
			}

			rec := httptest.NewRecorder()
			adminOnly.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}

	assert.Equal(t, "ana", seenUser)
}

func TestAuthenticate_Disabled(t *testing.T) {
	var roles []auth.Role

	h := authn.Authenticate(nil)(authn.RequireRole(auth.RoleAdmin)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, _ := auth.FromContext(r.Context())
		roles = p.Roles
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.ElementsMatch(t, []auth.Role{auth.RoleAdmin, auth.RoleEmployee}, roles)
}
