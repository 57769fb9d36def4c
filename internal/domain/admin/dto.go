package admin

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/amoria/amoria-api/internal/domain/audit"
	"github.com/amoria/amoria-api/internal/domain/moderation"
)

// ModeratedUserResponse represents a moderated user in the API
type ModeratedUserResponse struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	WarnCount int       `json:"warn_count"`
	BanReason *string   `json:"ban_reason,omitempty"`
	BannedAt  *string   `json:"banned_at,omitempty"`
	UpdatedAt string    `json:"updated_at"`
}

// ModeratedUserResponseFromEntity converts entity to response
func ModeratedUserResponseFromEntity(u *moderation.ModeratedUser) *ModeratedUserResponse {
	resp := &ModeratedUserResponse{
		ID:        u.ID,
		Status:    string(u.Status),
		WarnCount: u.WarnCount,
		UpdatedAt: u.UpdatedAt.Format(time.RFC3339),
	}
	if u.BanReason.Valid {
		resp.BanReason = &u.BanReason.String
	}
	if u.BannedAt.Valid {
		s := u.BannedAt.Time.Format(time.RFC3339)
		resp.BannedAt = &s
	}
	return resp
}

// ReportResponse represents a report in the API
type ReportResponse struct {
	ID             uuid.UUID  `json:"id"`
	ReporterID     uuid.UUID  `json:"reporter_id"`
	ReportedUserID uuid.UUID  `json:"reported_user_id"`
	Reason         string     `json:"reason"`
	Status         string     `json:"status"`
	Resolution     *string    `json:"resolution,omitempty"`
	ResolvedBy     *uuid.UUID `json:"resolved_by,omitempty"`
	ClosedAt       *string    `json:"closed_at,omitempty"`
	CreatedAt      string     `json:"created_at"`
}

// ReportResponseFromEntity converts entity to response
func ReportResponseFromEntity(r *moderation.Report) *ReportResponse {
	resp := &ReportResponse{
		ID:             r.ID,
		ReporterID:     r.ReporterID,
		ReportedUserID: r.ReportedUserID,
		Reason:         r.Reason,
		Status:         string(r.Status),
		CreatedAt:      r.CreatedAt.Format(time.RFC3339),
	}
	if r.Resolution.Valid {
		resp.Resolution = &r.Resolution.String
	}
	if r.ResolvedBy.Valid {
		id := r.ResolvedBy.UUID
		resp.ResolvedBy = &id
	}
	if r.ClosedAt.Valid {
		s := r.ClosedAt.Time.Format(time.RFC3339)
		resp.ClosedAt = &s
	}
	return resp
}

// AuditRecordResponse represents an audit entry in the API
type AuditRecordResponse struct {
	ID         uuid.UUID       `json:"id"`
	AdminID    uuid.UUID       `json:"admin_id"`
	Action     string          `json:"action"`
	TargetType string          `json:"target_type"`
	TargetID   uuid.UUID       `json:"target_id"`
	Payload    json.RawMessage `json:"payload,omitempty"`
	CreatedAt  string          `json:"created_at"`
}

// AuditRecordResponseFromEntity converts entity to response
func AuditRecordResponseFromEntity(r *audit.Record) *AuditRecordResponse {
	return &AuditRecordResponse{
		ID:         r.ID,
		AdminID:    r.AdminID,
		Action:     string(r.Action),
		TargetType: string(r.TargetType),
		TargetID:   r.TargetID,
		Payload:    r.Payload,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
}
