package moderation

// Per-verb default resolution texts applied when the admin supplies none.
const (
	DefaultResolveResolution = "Report reviewed and action taken by admin."
	DefaultCloseResolution   = "Report reviewed - no action needed."
)

// WarnUserRequest for POST /admin/users/{id}/warn
type WarnUserRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// BanUserRequest for POST /admin/users/{id}/ban. IsHardBan is a pointer
// on purpose: an omitted flag is a validation error, an explicit false is
// a shadow ban.
type BanUserRequest struct {
	Reason    string `json:"reason" validate:"required,max=500"`
	IsHardBan *bool  `json:"is_hard_ban" validate:"required"`
}

// ReviewReportRequest for PATCH /admin/reports/{id}
type ReviewReportRequest struct {
	Action     string `json:"action" validate:"required,oneof=resolve close"`
	Resolution string `json:"resolution,omitempty" validate:"max=1000"`
}

// ListReportsFilter for the moderation queue
type ListReportsFilter struct {
	Status ReportStatus
	Limit  int
	Offset int
}
