package identity

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AccessClaims mirrors the access tokens minted by the main application
type AccessClaims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// Resolver turns a request's session credential into an Identity. It
// accepts either a bearer access token or the opaque session cookie.
// Every failure mode resolves to nil; callers cannot distinguish an
// absent credential from an expired or malformed one.
type Resolver struct {
	sessions   SessionStore
	jwtSecret  []byte
	cookieName string
}

// NewResolver creates an identity resolver
func NewResolver(sessions SessionStore, jwtSecret, cookieName string) *Resolver {
	return &Resolver{
		sessions:   sessions,
		jwtSecret:  []byte(jwtSecret),
		cookieName: cookieName,
	}
}

// Resolve returns the caller's identity, or nil when no valid session
// exists. It never mutates session state.
func (r *Resolver) Resolve(req *http.Request) *Identity {
	if token, ok := bearerToken(req); ok {
		return r.fromAccessToken(token)
	}

	cookie, err := req.Cookie(r.cookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	return r.fromSessionToken(req, cookie.Value)
}

func (r *Resolver) fromAccessToken(token string) *Identity {
	var claims AccessClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		return r.jwtSecret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !parsed.Valid {
		return nil
	}

	if claims.UserID == uuid.Nil {
		// Older tokens carry the user id in the subject only
		id, err := uuid.Parse(claims.Subject)
		if err != nil {
			return nil
		}
		claims.UserID = id
	}

	return &Identity{ID: claims.UserID, Email: claims.Email}
}

func (r *Resolver) fromSessionToken(req *http.Request, token string) *Identity {
	session, err := r.sessions.Get(req.Context(), token)
	if err != nil || session == nil {
		return nil
	}
	return &Identity{ID: session.UserID, Email: session.Email}
}

func bearerToken(req *http.Request) (string, bool) {
	header := req.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.Split(header, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
		return "", false
	}
	return parts[1], true
}
