package moderation

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// UserStatus is the moderation state of a user. Transitions are
// one-directional escalations applied by the store's transactional
// procedures; this service never computes the resulting status itself.
type UserStatus string

const (
	UserStatusActive       UserStatus = "active"
	UserStatusWarned       UserStatus = "warned"
	UserStatusShadowBanned UserStatus = "shadow_banned"
	UserStatusBanned       UserStatus = "banned"
)

// ModeratedUser is the post-transition user row returned by the store's
// procedures. It is the state of record for the mutation.
type ModeratedUser struct {
	ID        uuid.UUID      `db:"id" json:"id"`
	Status    UserStatus     `db:"status" json:"status"`
	WarnCount int            `db:"warn_count" json:"warn_count"`
	BanReason sql.NullString `db:"ban_reason" json:"ban_reason,omitempty"`
	BannedAt  sql.NullTime   `db:"banned_at" json:"banned_at,omitempty"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// ReportStatus is the state of a user report
type ReportStatus string

const (
	ReportStatusOpen     ReportStatus = "open"
	ReportStatusResolved ReportStatus = "resolved"
	ReportStatusClosed   ReportStatus = "closed"
)

// Report is a user report under moderation
type Report struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	ReporterID     uuid.UUID      `db:"reporter_id" json:"reporter_id"`
	ReportedUserID uuid.UUID      `db:"reported_user_id" json:"reported_user_id"`
	Reason         string         `db:"reason" json:"reason"`
	Status         ReportStatus   `db:"status" json:"status"`
	Resolution     sql.NullString `db:"resolution" json:"resolution,omitempty"`
	ResolvedBy     uuid.NullUUID  `db:"resolved_by" json:"resolved_by,omitempty"`
	ClosedAt       sql.NullTime   `db:"closed_at" json:"closed_at,omitempty"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
}
