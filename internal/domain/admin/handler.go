package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/amoria/amoria-api/internal/domain/audit"
	"github.com/amoria/amoria-api/internal/domain/moderation"
	"github.com/amoria/amoria-api/internal/pkg/response"
)

// Handler exposes the admin surface: one entry point per moderation verb
// plus read access to the moderation queue and the audit trail.
type Handler struct {
	moderation *moderation.Service
	audit      audit.Repository
}

// NewHandler creates admin handler
func NewHandler(mod *moderation.Service, auditRepo audit.Repository) *Handler {
	return &Handler{
		moderation: mod,
		audit:      auditRepo,
	}
}

// WarnUser handles POST /admin/users/{id}/warn
func (h *Handler) WarnUser(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req moderation.WarnUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	adminID := GetIdentity(r.Context()).ID

	user, err := h.moderation.WarnUser(r.Context(), adminID, targetID, &req)
	if err != nil {
		writeModerationError(w, err)
		return
	}

	response.OK(w, ModeratedUserResponseFromEntity(user))
}

// BanUser handles POST /admin/users/{id}/ban
func (h *Handler) BanUser(w http.ResponseWriter, r *http.Request) {
	targetID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid user ID")
		return
	}

	var req moderation.BanUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	adminID := GetIdentity(r.Context()).ID

	user, err := h.moderation.BanUser(r.Context(), adminID, targetID, &req)
	if err != nil {
		writeModerationError(w, err)
		return
	}

	response.OK(w, ModeratedUserResponseFromEntity(user))
}

// ReviewReport handles PATCH /admin/reports/{id}
func (h *Handler) ReviewReport(w http.ResponseWriter, r *http.Request) {
	reportID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid report ID")
		return
	}

	var req moderation.ReviewReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid JSON body")
		return
	}

	adminID := GetIdentity(r.Context()).ID

	report, err := h.moderation.ReviewReport(r.Context(), adminID, reportID, &req)
	if err != nil {
		writeModerationError(w, err)
		return
	}

	response.OK(w, ReportResponseFromEntity(report))
}

// ListReports handles GET /admin/reports
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	filter := &moderation.ListReportsFilter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter.Status = moderation.ReportStatus(status)
	}

	reports, total, err := h.moderation.ListReports(r.Context(), filter)
	if err != nil {
		response.BackendError(w, err.Error())
		return
	}

	items := make([]*ReportResponse, len(reports))
	for i, report := range reports {
		items[i] = ReportResponseFromEntity(report)
	}

	response.WithMeta(w, items, response.Meta{Total: total, Page: page, Limit: limit})
}

// AuditLogs handles GET /admin/audit
func (h *Handler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	page, limit := pagination(r)

	filter := audit.Filter{
		Limit:  limit,
		Offset: (page - 1) * limit,
	}
	if action := r.URL.Query().Get("action"); action != "" {
		a := audit.Action(action)
		filter.Action = &a
	}
	if targetType := r.URL.Query().Get("target_type"); targetType != "" {
		t := audit.TargetType(targetType)
		filter.TargetType = &t
	}

	records, total, err := h.audit.List(r.Context(), filter)
	if err != nil {
		response.BackendError(w, err.Error())
		return
	}

	items := make([]*AuditRecordResponse, len(records))
	for i, record := range records {
		items[i] = AuditRecordResponseFromEntity(record)
	}

	response.WithMeta(w, items, response.Meta{Total: total, Page: page, Limit: limit})
}

// writeModerationError maps executor failures onto the response taxonomy:
// validation failures carry the field set, everything else is a backend
// failure surfaced with the store's message.
func writeModerationError(w http.ResponseWriter, err error) {
	var verr *moderation.ValidationError
	if errors.As(err, &verr) {
		response.ValidationError(w, verr.Fields)
		return
	}
	response.BackendError(w, err.Error())
}

func pagination(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
