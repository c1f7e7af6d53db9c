package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/toolrent/internal/auth"
)

const secret = "test-secret"

func sign(t *testing.T, claims auth.Claims) string {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)

	return token
}

func claimsFor(username string, roles ...string) auth.Claims {
	c := auth.Claims{PreferredUsername: username}
	c.RealmAccess.Roles = roles
	c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(time.Hour))
	c.Issuer = "toolrent"

	return c
}

func TestVerifier_Verify(t *testing.T) {
	v, err := auth.NewVerifier(secret, "", "toolrent")
	require.NoError(t, err)

	type testCase struct {
		name      string
		token     func(t *testing.T) string
		wantUser  string
		wantRoles []auth.Role
		wantErr   error
	}

	tests := []testCase{
		{
			name:      "Admin",
			token:     func(t *testing.T) string { return sign(t, claimsFor("ana", "ADMIN", "offline_access")) },
			wantUser:  "ana",
			wantRoles: []auth.Role{auth.RoleAdmin},
		},
		{
			name:      "Employee",
			token:     func(t *testing.T) string { return sign(t, claimsFor("leo", "EMPLOYEE")) },
			wantUser:  "leo",
			wantRoles: []auth.Role{auth.RoleEmployee},
		},
		{
			name: "Expired",
			token: func(t *testing.T) string {
				c := claimsFor("ana", "ADMIN")
				c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
				return sign(t, c)
			},
			wantErr: auth.ErrExpiredToken,
		},
		{
			name: "WrongIssuer",
			token: func(t *testing.T) string {
				c := claimsFor("ana", "ADMIN")
				c.Issuer = "someone-else"
				return sign(t, c)
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name: "WrongSecret",
			token: func(t *testing.T) string {
				s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claimsFor("ana", "ADMIN")).SignedString([]byte("other"))
				require.NoError(t, err)
				return s
			},
			wantErr: auth.ErrInvalidToken,
		},
		{
			name:    "Garbage",
			token:   func(*testing.T) string { return "not-a-token" },
			wantErr: auth.ErrInvalidToken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := v.Verify(tt.token(t))

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantUser, p.Username)
			assert.Equal(t, tt.wantRoles, p.Roles)
		})
	}
}

func TestNewVerifier_RequiresKey(t *testing.T) {
	_, err := auth.NewVerifier("", "", "")
	assert.Error(t, err)
}

func TestUsername(t *testing.T) {
	assert.Equal(t, auth.SystemUser, auth.Username(context.Background()))

	ctx := auth.WithPrincipal(context.Background(), &auth.Principal{Username: "ana", Roles: []auth.Role{auth.RoleAdmin}})
	assert.Equal(t, "ana", auth.Username(ctx))

	p, ok := auth.FromContext(ctx)
	require.True(t, ok)
	assert.True(t, p.HasAnyRole(auth.RoleEmployee, auth.RoleAdmin))
	assert.False(t, p.HasAnyRole(auth.RoleEmployee))
}
