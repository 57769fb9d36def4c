package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Action is the moderation verb recorded in the trail
type Action string

const (
	ActionWarnUser      Action = "warn_user"
	ActionBanUser       Action = "ban_user"
	ActionShadowBanUser Action = "shadow_ban_user"
	ActionResolveReport Action = "resolve_report"
	ActionCloseReport   Action = "close_report"
)

// TargetType identifies the kind of entity an action was applied to
type TargetType string

const (
	TargetUser   TargetType = "user"
	TargetReport TargetType = "report"
)

// Record is one immutable audit entry. Rows are only ever inserted;
// nothing in this service updates or deletes them.
type Record struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	AdminID    uuid.UUID       `db:"admin_id" json:"admin_id"`
	Action     Action          `db:"action" json:"action"`
	TargetType TargetType      `db:"target_type" json:"target_type"`
	TargetID   uuid.UUID       `db:"target_id" json:"target_id"`
	Payload    json.RawMessage `db:"payload" json:"payload,omitempty"`
	CreatedAt  time.Time       `db:"created_at" json:"created_at"`
}
