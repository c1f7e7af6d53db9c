// Package auth turns bearer tokens into a Principal carried on the context.
package auth

import (
	"context"
	"slices"
)

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// SystemUser is recorded as the responsible user when no principal is present.
const SystemUser = "system"

type Principal struct {
	Username string
	Roles    []Role
}

func (p *Principal) HasAnyRole(roles ...Role) bool {
	for _, r := range roles {
		if slices.Contains(p.Roles, r) {
			return true
		}
	}

	return false
}

type principalKey struct{}

func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func FromContext(ctx context.Context) (*Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(*Principal)
	return p, ok && p != nil
}

// Username returns the principal's username, or SystemUser.
func Username(ctx context.Context) string {
	if p, ok := FromContext(ctx); ok && p.Username != "" {
		return p.Username
	}

	return SystemUser
}
