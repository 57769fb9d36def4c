package admin

import (
	"context"
	"net/http"

	"github.com/amoria/amoria-api/internal/domain/identity"
	"github.com/amoria/amoria-api/internal/pkg/response"
)

// IdentityResolver resolves a request's session credential
type IdentityResolver interface {
	Resolve(r *http.Request) *identity.Identity
}

type contextKey string

const identityKey contextKey = "admin_identity"

// RequireAdmin gates every privileged route: resolve the caller's
// identity, then evaluate the authorization predicate. A missing session
// and a non-admin identity are rejected with the exact same response so
// the surface exposes no admin-status oracle.
func RequireAdmin(resolver IdentityResolver, authz *Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := resolver.Resolve(r)
			if ident == nil {
				response.Unauthorized(w, "Authentication required")
				return
			}

			if !authz.IsAdmin(r.Context(), ident.ID) {
				response.Unauthorized(w, "Authentication required")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, ident)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetIdentity extracts the authorized admin identity from context
func GetIdentity(ctx context.Context) *identity.Identity {
	if ident, ok := ctx.Value(identityKey).(*identity.Identity); ok {
		return ident
	}
	return nil
}
