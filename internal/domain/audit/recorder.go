package audit

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Recorder appends audit records after successful moderation mutations.
// The insert is best-effort: a failure is logged and swallowed, it never
// turns an already-committed mutation into a caller-visible error.
type Recorder struct {
	repo Repository
}

// NewRecorder creates an audit recorder
func NewRecorder(repo Repository) *Recorder {
	return &Recorder{repo: repo}
}

// Record appends one audit entry. Call it only after the mutation it
// describes has succeeded.
func (r *Recorder) Record(ctx context.Context, adminID uuid.UUID, action Action, targetType TargetType, targetID uuid.UUID, payload map[string]interface{}) {
	var raw json.RawMessage
	if payload != nil {
		raw, _ = json.Marshal(payload)
	}

	record := &Record{
		ID:         uuid.New(),
		AdminID:    adminID,
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		Payload:    raw,
		CreatedAt:  time.Now(),
	}

	if err := r.repo.Insert(ctx, record); err != nil {
		// The mutation already committed; losing this entry is accepted.
		log.Error().
			Err(err).
			Str("action", string(action)).
			Str("admin_id", adminID.String()).
			Str("target_id", targetID.String()).
			Msg("Failed to write audit record")
	}
}
