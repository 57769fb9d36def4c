package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes returns the admin router. Every route sits behind the
// requireAdmin gate; there are no unauthenticated admin endpoints.
func (h *Handler) Routes(requireAdmin func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(requireAdmin)

	r.Post("/users/{id}/warn", h.WarnUser)
	r.Post("/users/{id}/ban", h.BanUser)

	r.Get("/reports", h.ListReports)
	r.Patch("/reports/{id}", h.ReviewReport)

	r.Get("/audit", h.AuditLogs)

	return r
}
