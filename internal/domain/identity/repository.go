package identity

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines identity data access
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates identity repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	query := `SELECT id, email, roles FROM users WHERE id = $1`
	var record Record
	err := r.db.GetContext(ctx, &record, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}
