package moderation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/amoria/amoria-api/internal/domain/audit"
)

type fakeRepo struct {
	warnCalls   int
	banCalls    int
	updateCalls int

	lastReason  string
	lastHardBan bool
	lastStatus  ReportStatus
	lastRes     string
	lastClosed  time.Time

	user   *ModeratedUser
	report *Report
	err    error
}

func (f *fakeRepo) ApplyWarn(ctx context.Context, targetID uuid.UUID, reason string) (*ModeratedUser, error) {
	f.warnCalls++
	f.lastReason = reason
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeRepo) ApplyBan(ctx context.Context, targetID uuid.UUID, reason string, hardBan bool) (*ModeratedUser, error) {
	f.banCalls++
	f.lastReason = reason
	f.lastHardBan = hardBan
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func (f *fakeRepo) UpdateReport(ctx context.Context, reportID uuid.UUID, status ReportStatus, resolution string, resolvedBy uuid.UUID, closedAt time.Time) (*Report, error) {
	f.updateCalls++
	f.lastStatus = status
	f.lastRes = resolution
	f.lastClosed = closedAt
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func (f *fakeRepo) ListReports(ctx context.Context, filter *ListReportsFilter) ([]*Report, int, error) {
	return nil, 0, nil
}

type fakeAuditRepo struct {
	records []*audit.Record
	err     error
}

func (f *fakeAuditRepo) Insert(ctx context.Context, record *audit.Record) error {
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, record)
	return nil
}

func (f *fakeAuditRepo) List(ctx context.Context, filter audit.Filter) ([]*audit.Record, int, error) {
	return f.records, len(f.records), nil
}

func newService(repo *fakeRepo, auditRepo *fakeAuditRepo) *Service {
	return NewService(repo, audit.NewRecorder(auditRepo))
}

func boolPtr(b bool) *bool { return &b }

func TestWarnUser_Success(t *testing.T) {
	target := uuid.New()
	admin := uuid.New()
	repo := &fakeRepo{user: &ModeratedUser{ID: target, Status: UserStatusWarned, WarnCount: 1}}
	auditRepo := &fakeAuditRepo{}
	svc := newService(repo, auditRepo)

	user, err := svc.WarnUser(context.Background(), admin, target, &WarnUserRequest{Reason: "spam"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.Status != UserStatusWarned {
		t.Errorf("expected warned status, got %s", user.Status)
	}
	if repo.warnCalls != 1 {
		t.Errorf("expected 1 warn call, got %d", repo.warnCalls)
	}

	if len(auditRepo.records) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(auditRepo.records))
	}
	got := auditRepo.records[0]
	if got.Action != audit.ActionWarnUser || got.TargetType != audit.TargetUser {
		t.Errorf("unexpected audit record: %+v", got)
	}
	if got.AdminID != admin || got.TargetID != target {
		t.Errorf("audit actor/target mismatch: %+v", got)
	}
}

func TestWarnUser_MissingReason(t *testing.T) {
	repo := &fakeRepo{}
	auditRepo := &fakeAuditRepo{}
	svc := newService(repo, auditRepo)

	_, err := svc.WarnUser(context.Background(), uuid.New(), uuid.New(), &WarnUserRequest{})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["reason"]; !ok {
		t.Errorf("expected reason field error, got %v", verr.Fields)
	}
	if repo.warnCalls != 0 {
		t.Error("validation failure must not reach the repository")
	}
	if len(auditRepo.records) != 0 {
		t.Error("validation failure must not write an audit record")
	}
}

func TestWarnUser_NilTarget(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeAuditRepo{})

	_, err := svc.WarnUser(context.Background(), uuid.New(), uuid.Nil, &WarnUserRequest{Reason: "spam"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.warnCalls != 0 {
		t.Error("validation failure must not reach the repository")
	}
}

func TestBanUser_OmittedHardBanFlag(t *testing.T) {
	repo := &fakeRepo{}
	auditRepo := &fakeAuditRepo{}
	svc := newService(repo, auditRepo)

	_, err := svc.BanUser(context.Background(), uuid.New(), uuid.New(), &BanUserRequest{Reason: "scam"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["is_hard_ban"]; !ok {
		t.Errorf("expected is_hard_ban field error, got %v", verr.Fields)
	}
	if repo.banCalls != 0 || len(auditRepo.records) != 0 {
		t.Error("omitted flag must produce no side effects")
	}
}

func TestBanUser_HardBanAuditVerb(t *testing.T) {
	target := uuid.New()
	repo := &fakeRepo{user: &ModeratedUser{ID: target, Status: UserStatusBanned}}
	auditRepo := &fakeAuditRepo{}
	svc := newService(repo, auditRepo)

	_, err := svc.BanUser(context.Background(), uuid.New(), target, &BanUserRequest{Reason: "scam", IsHardBan: boolPtr(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.lastHardBan {
		t.Error("expected hard ban to be passed through")
	}
	if len(auditRepo.records) != 1 || auditRepo.records[0].Action != audit.ActionBanUser {
		t.Fatalf("expected ban_user audit verb, got %+v", auditRepo.records)
	}
}

func TestBanUser_ShadowBanAuditVerb(t *testing.T) {
	target := uuid.New()
	repo := &fakeRepo{user: &ModeratedUser{ID: target, Status: UserStatusShadowBanned}}
	auditRepo := &fakeAuditRepo{}
	svc := newService(repo, auditRepo)

	_, err := svc.BanUser(context.Background(), uuid.New(), target, &BanUserRequest{Reason: "scam", IsHardBan: boolPtr(false)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(auditRepo.records) != 1 || auditRepo.records[0].Action != audit.ActionShadowBanUser {
		t.Fatalf("expected shadow_ban_user audit verb, got %+v", auditRepo.records)
	}
}

func TestBanUser_BackendErrorWritesNoAudit(t *testing.T) {
	repo := &fakeRepo{err: errors.New("procedure failed")}
	auditRepo := &fakeAuditRepo{}
	svc := newService(repo, auditRepo)

	_, err := svc.BanUser(context.Background(), uuid.New(), uuid.New(), &BanUserRequest{Reason: "scam", IsHardBan: boolPtr(true)})
	if err == nil || err.Error() != "procedure failed" {
		t.Fatalf("expected backend error, got %v", err)
	}
	if len(auditRepo.records) != 0 {
		t.Error("backend failure must not write an audit record")
	}
}

func TestReviewReport_ResolveDefaultResolution(t *testing.T) {
	reportID := uuid.New()
	repo := &fakeRepo{report: &Report{ID: reportID, Status: ReportStatusResolved}}
	auditRepo := &fakeAuditRepo{}
	svc := newService(repo, auditRepo)

	_, err := svc.ReviewReport(context.Background(), uuid.New(), reportID, &ReviewReportRequest{Action: "resolve"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastStatus != ReportStatusResolved {
		t.Errorf("expected resolved status, got %s", repo.lastStatus)
	}
	if repo.lastRes != DefaultResolveResolution {
		t.Errorf("expected default resolve resolution, got %q", repo.lastRes)
	}
	if repo.lastClosed.IsZero() {
		t.Error("expected closed_at to be stamped")
	}
	if len(auditRepo.records) != 1 || auditRepo.records[0].Action != audit.ActionResolveReport {
		t.Fatalf("expected resolve_report audit verb, got %+v", auditRepo.records)
	}
}

func TestReviewReport_CloseDefaultResolution(t *testing.T) {
	reportID := uuid.New()
	repo := &fakeRepo{report: &Report{ID: reportID, Status: ReportStatusClosed}}
	auditRepo := &fakeAuditRepo{}
	svc := newService(repo, auditRepo)

	_, err := svc.ReviewReport(context.Background(), uuid.New(), reportID, &ReviewReportRequest{Action: "close"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastStatus != ReportStatusClosed {
		t.Errorf("expected closed status, got %s", repo.lastStatus)
	}
	if repo.lastRes != DefaultCloseResolution {
		t.Errorf("expected default close resolution, got %q", repo.lastRes)
	}
	if len(auditRepo.records) != 1 || auditRepo.records[0].Action != audit.ActionCloseReport {
		t.Fatalf("expected close_report audit verb, got %+v", auditRepo.records)
	}
}

func TestReviewReport_SuppliedResolutionKept(t *testing.T) {
	reportID := uuid.New()
	repo := &fakeRepo{report: &Report{ID: reportID}}
	svc := newService(repo, &fakeAuditRepo{})

	_, err := svc.ReviewReport(context.Background(), uuid.New(), reportID, &ReviewReportRequest{Action: "resolve", Resolution: "banned the reported user"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastRes != "banned the reported user" {
		t.Errorf("expected supplied resolution, got %q", repo.lastRes)
	}
}

func TestReviewReport_UnknownAction(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, &fakeAuditRepo{})

	_, err := svc.ReviewReport(context.Background(), uuid.New(), uuid.New(), &ReviewReportRequest{Action: "escalate"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if repo.updateCalls != 0 {
		t.Error("unknown action must not reach the repository")
	}
}

func TestReviewReport_NotFoundWritesNoAudit(t *testing.T) {
	repo := &fakeRepo{err: ErrReportNotFound}
	auditRepo := &fakeAuditRepo{}
	svc := newService(repo, auditRepo)

	_, err := svc.ReviewReport(context.Background(), uuid.New(), uuid.New(), &ReviewReportRequest{Action: "close"})
	if !errors.Is(err, ErrReportNotFound) {
		t.Fatalf("expected ErrReportNotFound, got %v", err)
	}
	if len(auditRepo.records) != 0 {
		t.Error("missing report must not write an audit record")
	}
}

func TestWarnUser_AuditFailureDoesNotFailMutation(t *testing.T) {
	target := uuid.New()
	repo := &fakeRepo{user: &ModeratedUser{ID: target, Status: UserStatusWarned}}
	auditRepo := &fakeAuditRepo{err: errors.New("audit store down")}
	svc := newService(repo, auditRepo)

	user, err := svc.WarnUser(context.Background(), uuid.New(), target, &WarnUserRequest{Reason: "spam"})
	if err != nil {
		t.Fatalf("audit failure leaked to the caller: %v", err)
	}
	if user == nil || user.Status != UserStatusWarned {
		t.Fatalf("expected committed mutation result, got %+v", user)
	}
}
