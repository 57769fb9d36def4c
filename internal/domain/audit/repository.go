package audit

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Filter for listing audit records
type Filter struct {
	Action     *Action
	TargetType *TargetType
	Limit      int
	Offset     int
}

// Repository defines audit trail data access
type Repository interface {
	Insert(ctx context.Context, record *Record) error
	List(ctx context.Context, filter Filter) ([]*Record, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates audit repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, record *Record) error {
	query := `
		INSERT INTO admin_actions (id, admin_id, action, target_type, target_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.AdminID,
		record.Action,
		record.TargetType,
		record.TargetID,
		record.Payload,
		record.CreatedAt,
	)
	return err
}

func (r *repository) List(ctx context.Context, filter Filter) ([]*Record, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter.Action != nil {
		where += fmt.Sprintf(` AND action = $%d`, argPos)
		args = append(args, *filter.Action)
		argPos++
	}
	if filter.TargetType != nil {
		where += fmt.Sprintf(` AND target_type = $%d`, argPos)
		args = append(args, *filter.TargetType)
		argPos++
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM admin_actions`+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM admin_actions` + where + ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argPos)
		args = append(args, filter.Limit)
		argPos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argPos)
		args = append(args, filter.Offset)
	}

	var records []*Record
	if err := r.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, 0, err
	}
	return records, total, nil
}
