// Package authn authenticates API requests and enforces role-based access.
package authn

import (
	"net/http"
	"strings"

	"github.com/MrJamesThe3rd/toolrent/internal/auth"
	"github.com/MrJamesThe3rd/toolrent/internal/http/respond"
)

type Verifier interface {
	Verify(token string) (*auth.Principal, error)
}

// Authenticate resolves the bearer token into a principal on the request
// context. With a nil verifier every request runs as a local administrator.
func Authenticate(v Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if v == nil {
				p := &auth.Principal{Username: "local", Roles: []auth.Role{auth.RoleAdmin, auth.RoleEmployee}}
				next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))

				return
			}

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				respond.Status(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			p, err := v.Verify(token)
			if err != nil {
				respond.Status(w, http.StatusUnauthorized, err.Error())
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.WithPrincipal(r.Context(), p)))
		})
	}
}

// RequireRole lets the request through when the principal holds any of roles.
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := auth.FromContext(r.Context())
			if !ok {
				respond.Status(w, http.StatusUnauthorized, "not authenticated")
				return
			}

			if !p.HasAnyRole(roles...) {
				respond.Status(w, http.StatusForbidden, "insufficient role")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// Staff is every role allowed to use the counter operations.
var Staff = []auth.Role{auth.RoleAdmin, auth.RoleEmployee}
