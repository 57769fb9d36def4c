package moderation

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/amoria/amoria-api/internal/domain/audit"
	"github.com/amoria/amoria-api/internal/pkg/validator"
)

// Service executes the moderation verbs. Each verb validates its input,
// applies exactly one state transition through the repository, and then
// appends one audit record. The audit write happens only after the
// mutation succeeded and its failure never reaches the caller.
type Service struct {
	repo  Repository
	audit *audit.Recorder
}

// NewService creates moderation service
func NewService(repo Repository, recorder *audit.Recorder) *Service {
	return &Service{repo: repo, audit: recorder}
}

// WarnUser escalates the target to warned status
func (s *Service) WarnUser(ctx context.Context, adminID, targetID uuid.UUID, req *WarnUserRequest) (*ModeratedUser, error) {
	if err := validateRequest(targetID, req); err != nil {
		return nil, err
	}

	user, err := s.repo.ApplyWarn(ctx, targetID, req.Reason)
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, adminID, audit.ActionWarnUser, audit.TargetUser, targetID, map[string]interface{}{
		"reason": req.Reason,
	})

	return user, nil
}

// BanUser escalates the target to banned or shadow_banned status. The
// audit verb records the severity: ban_user for a hard ban,
// shadow_ban_user otherwise.
func (s *Service) BanUser(ctx context.Context, adminID, targetID uuid.UUID, req *BanUserRequest) (*ModeratedUser, error) {
	if err := validateRequest(targetID, req); err != nil {
		return nil, err
	}

	hardBan := *req.IsHardBan
	user, err := s.repo.ApplyBan(ctx, targetID, req.Reason, hardBan)
	if err != nil {
		return nil, err
	}

	action := audit.ActionShadowBanUser
	if hardBan {
		action = audit.ActionBanUser
	}
	s.audit.Record(ctx, adminID, action, audit.TargetUser, targetID, map[string]interface{}{
		"reason":      req.Reason,
		"is_hard_ban": hardBan,
	})

	return user, nil
}

// ReviewReport resolves or closes a report. Both verbs stamp closed_at
// and a resolution text, falling back to a fixed per-verb default.
func (s *Service) ReviewReport(ctx context.Context, adminID, reportID uuid.UUID, req *ReviewReportRequest) (*Report, error) {
	if err := validateRequest(reportID, req); err != nil {
		return nil, err
	}

	var status ReportStatus
	var action audit.Action
	resolution := req.Resolution

	switch req.Action {
	case "resolve":
		status = ReportStatusResolved
		action = audit.ActionResolveReport
		if resolution == "" {
			resolution = DefaultResolveResolution
		}
	case "close":
		status = ReportStatusClosed
		action = audit.ActionCloseReport
		if resolution == "" {
			resolution = DefaultCloseResolution
		}
	}

	report, err := s.repo.UpdateReport(ctx, reportID, status, resolution, adminID, time.Now())
	if err != nil {
		return nil, err
	}

	s.audit.Record(ctx, adminID, action, audit.TargetReport, reportID, map[string]interface{}{
		"action":     req.Action,
		"resolution": resolution,
	})

	return report, nil
}

// ListReports returns the moderation queue
func (s *Service) ListReports(ctx context.Context, filter *ListReportsFilter) ([]*Report, int, error) {
	return s.repo.ListReports(ctx, filter)
}

// validateRequest rejects malformed input before any mutation is
// attempted. A nil target id can only come from a bad URL parameter.
func validateRequest(targetID uuid.UUID, req interface{}) error {
	fields := validator.Validate(req)
	if targetID == uuid.Nil {
		if fields == nil {
			fields = make(map[string]string)
		}
		fields["target_id"] = "This field is required"
	}
	if fields != nil {
		return &ValidationError{Fields: fields}
	}
	return nil
}
