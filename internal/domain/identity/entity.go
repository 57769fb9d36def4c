package identity

import (
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Identity is the resolved caller of one request. It is built fresh per
// request and discarded with it; nothing caches it across requests.
type Identity struct {
	ID    uuid.UUID `json:"id"`
	Email string    `json:"email,omitempty"`
}

// Record is the stored identity as the backing store knows it, including
// the role claims the authorization predicate evaluates.
type Record struct {
	ID    uuid.UUID      `db:"id"`
	Email sql.NullString `db:"email"`
	Roles pq.StringArray `db:"roles"`
}

// HasRole checks if the record carries the given role claim
func (r *Record) HasRole(role string) bool {
	for _, claim := range r.Roles {
		if claim == role {
			return true
		}
	}
	return false
}
