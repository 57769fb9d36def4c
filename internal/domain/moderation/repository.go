package moderation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// Repository defines moderation data access. Warn and ban delegate to the
// store's transactional procedures, which own the status transition and
// its atomicity; UpdateReport is a direct conditional update.
type Repository interface {
	ApplyWarn(ctx context.Context, targetID uuid.UUID, reason string) (*ModeratedUser, error)
	ApplyBan(ctx context.Context, targetID uuid.UUID, reason string, hardBan bool) (*ModeratedUser, error)
	UpdateReport(ctx context.Context, reportID uuid.UUID, status ReportStatus, resolution string, resolvedBy uuid.UUID, closedAt time.Time) (*Report, error)
	ListReports(ctx context.Context, filter *ListReportsFilter) ([]*Report, int, error)
}

type repository struct {
	db *sqlx.DB
}

// NewRepository creates moderation repository
func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) ApplyWarn(ctx context.Context, targetID uuid.UUID, reason string) (*ModeratedUser, error) {
	query := `SELECT * FROM admin_warn_user($1, $2)`
	var user ModeratedUser
	if err := r.db.GetContext(ctx, &user, query, targetID, reason); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) ApplyBan(ctx context.Context, targetID uuid.UUID, reason string, hardBan bool) (*ModeratedUser, error) {
	query := `SELECT * FROM admin_ban_user($1, $2, $3)`
	var user ModeratedUser
	if err := r.db.GetContext(ctx, &user, query, targetID, reason, hardBan); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repository) UpdateReport(ctx context.Context, reportID uuid.UUID, status ReportStatus, resolution string, resolvedBy uuid.UUID, closedAt time.Time) (*Report, error) {
	query := `
		UPDATE user_reports
		SET status = $2, resolution = $3, resolved_by = $4, closed_at = $5
		WHERE id = $1
		RETURNING *
	`
	var report Report
	err := r.db.GetContext(ctx, &report, query, reportID, status, resolution, resolvedBy, closedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	return &report, nil
}

func (r *repository) ListReports(ctx context.Context, filter *ListReportsFilter) ([]*Report, int, error) {
	where := ` WHERE 1=1`
	args := []interface{}{}
	argPos := 1

	if filter != nil && filter.Status != "" {
		where += fmt.Sprintf(` AND status = $%d`, argPos)
		args = append(args, filter.Status)
		argPos++
	}

	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM user_reports`+where, args...); err != nil {
		return nil, 0, err
	}

	query := `SELECT * FROM user_reports` + where + ` ORDER BY created_at DESC`
	if filter != nil && filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argPos)
		args = append(args, filter.Limit)
		argPos++
	}
	if filter != nil && filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argPos)
		args = append(args, filter.Offset)
	}

	var reports []*Report
	if err := r.db.SelectContext(ctx, &reports, query, args...); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}
