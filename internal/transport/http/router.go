// Package httptransport assembles the public router. It should delegate to
// domain handlers without embedding business logic so transport concerns
// remain isolated.
package httptransport

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	compliancehandler "canna-gate/internal/compliance/handler"
	ruleshandler "canna-gate/internal/rules/handler"
	"canna-gate/pkg/platform/audit"
	authmw "canna-gate/pkg/platform/middleware/auth"
	"canna-gate/pkg/platform/middleware/metadata"
	requestmw "canna-gate/pkg/platform/middleware/request"
)

// NewRouter wires all endpoints: the versioned compliance API, the
// JWT-guarded admin surface, and the operational endpoints. The audit inbox
// receives security events for rejected admin attempts; nil disables them.
func NewRouter(
	compliance *compliancehandler.Handler,
	admin *ruleshandler.Handler,
	validator authmw.TokenValidator,
	auditInbox chan<- audit.Event,
	logger *slog.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(requestmw.RequestID)
	r.Use(requestmw.RequestTime)
	r.Use(metadata.ClientMetadata)

	r.Route("/v1", func(r chi.Router) {
		compliance.Register(r)
	})

	r.Group(func(r chi.Router) {
		r.Use(authmw.RequireAdmin(validator, logger, auditInbox))
		admin.Register(r)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}
