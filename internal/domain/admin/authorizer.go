package admin

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/amoria/amoria-api/internal/domain/identity"
)

// Role claims that grant administrator status
const (
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Authorizer is the single point of truth for privilege. Every moderation
// entry point asks it before executing any mutation. Two independent
// signals are evaluated, either sufficient: membership of the configured
// email allow-list, or an admin role claim on the identity record.
type Authorizer struct {
	repo identity.Repository

	// Raw comma-separated allow-list; normalized on every check so a
	// config change needs no restart coordination and nothing is cached.
	adminEmails string
}

// NewAuthorizer creates the authorization predicate
func NewAuthorizer(repo identity.Repository, adminEmails string) *Authorizer {
	return &Authorizer{repo: repo, adminEmails: adminEmails}
}

// IsAdmin reports whether the identity may perform privileged operations.
// Any lookup failure is fail-closed: the answer is false, never an error.
func (a *Authorizer) IsAdmin(ctx context.Context, id uuid.UUID) bool {
	if id == uuid.Nil {
		return false
	}

	record, err := a.repo.GetByID(ctx, id)
	if err != nil || record == nil {
		return false
	}

	return emailAllowed(record.Email.String, a.adminEmails) || hasAdminRole(record)
}

// emailAllowed checks allow-list membership, case-insensitively and with
// whitespace trimmed per entry
func emailAllowed(email, allowList string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false
	}
	for _, entry := range strings.Split(allowList, ",") {
		if entry = strings.ToLower(strings.TrimSpace(entry)); entry != "" && entry == email {
			return true
		}
	}
	return false
}

// hasAdminRole checks the identity's role claims
func hasAdminRole(record *identity.Record) bool {
	return record.HasRole(RoleAdmin) || record.HasRole(RoleSuperAdmin)
}
