package moderation

import "errors"

var (
	ErrReportNotFound = errors.New("report not found")
)

// ValidationError carries the per-field failures of a rejected request.
// No mutation is attempted once one is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return "validation failed"
}
