package identity

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type fakeSessionStore struct {
	sessions map[string]*Session
	err      error
}

func (f *fakeSessionStore) Get(ctx context.Context, token string) (*Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.sessions[token], nil
}

const testSecret = "test-secret"

func signAccessToken(t *testing.T, userID uuid.UUID, email string, ttl time.Duration) string {
	t.Helper()
	claims := AccessClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("signing token: %v", err)
	}
	return token
}

func TestResolve_NoCredential(t *testing.T) {
	r := NewResolver(&fakeSessionStore{}, testSecret, "amoria_session")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if got := r.Resolve(req); got != nil {
		t.Fatalf("expected nil identity, got %+v", got)
	}
}

func TestResolve_BearerToken(t *testing.T) {
	userID := uuid.New()
	r := NewResolver(&fakeSessionStore{}, testSecret, "amoria_session")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signAccessToken(t, userID, "ops@example.com", time.Hour))

	got := r.Resolve(req)
	if got == nil {
		t.Fatal("expected identity, got nil")
	}
	if got.ID != userID {
		t.Errorf("expected id %s, got %s", userID, got.ID)
	}
	if got.Email != "ops@example.com" {
		t.Errorf("expected email ops@example.com, got %q", got.Email)
	}
}

func TestResolve_ExpiredBearerToken(t *testing.T) {
	r := NewResolver(&fakeSessionStore{}, testSecret, "amoria_session")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signAccessToken(t, uuid.New(), "ops@example.com", -time.Hour))

	if got := r.Resolve(req); got != nil {
		t.Fatalf("expected nil for expired token, got %+v", got)
	}
}

func TestResolve_WrongSecret(t *testing.T) {
	r := NewResolver(&fakeSessionStore{}, "other-secret", "amoria_session")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signAccessToken(t, uuid.New(), "ops@example.com", time.Hour))

	if got := r.Resolve(req); got != nil {
		t.Fatalf("expected nil for token signed with wrong secret, got %+v", got)
	}
}

func TestResolve_SessionCookie(t *testing.T) {
	userID := uuid.New()
	store := &fakeSessionStore{sessions: map[string]*Session{
		"tok123": {UserID: userID, Email: "ops@example.com"},
	}}
	r := NewResolver(store, testSecret, "amoria_session")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "amoria_session", Value: "tok123"})

	got := r.Resolve(req)
	if got == nil || got.ID != userID {
		t.Fatalf("expected identity for %s, got %+v", userID, got)
	}
}

func TestResolve_UnknownSessionToken(t *testing.T) {
	r := NewResolver(&fakeSessionStore{sessions: map[string]*Session{}}, testSecret, "amoria_session")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "amoria_session", Value: "nope"})

	if got := r.Resolve(req); got != nil {
		t.Fatalf("expected nil for unknown session, got %+v", got)
	}
}

func TestResolve_SessionStoreErrorSwallowed(t *testing.T) {
	r := NewResolver(&fakeSessionStore{err: errors.New("redis down")}, testSecret, "amoria_session")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "amoria_session", Value: "tok123"})

	if got := r.Resolve(req); got != nil {
		t.Fatalf("expected nil on store error, got %+v", got)
	}
}
