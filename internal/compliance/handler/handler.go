package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"canna-gate/internal/compliance"
	"canna-gate/pkg/platform/httputil"
	"canna-gate/pkg/requestcontext"
)

// Service defines the interface for compliance operations.
type Service interface {
	CheckCheckout(ctx context.Context, req compliance.CheckoutRequest) (*compliance.Result, error)
}

// Handler wires compliance endpoints to the compliance service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

// New constructs a compliance handler with its dependencies.
func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Register mounts compliance endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/compliance/checkout", h.HandleCheckCheckout)
}

// HandleCheckCheckout handles POST /v1/compliance/checkout requests.
func (h *Handler) HandleCheckCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[CheckCheckoutRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	domainReq := req.ParsedRequest()

	result, err := h.service.CheckCheckout(ctx, domainReq)
	if err != nil {
		h.logger.ErrorContext(ctx, "checkout evaluation failed",
			"request_id", requestID,
			"jurisdiction", domainReq.Jurisdiction,
			"error", err,
		)
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "checkout evaluated",
		"request_id", requestID,
		"jurisdiction", domainReq.Jurisdiction,
		"allowed", result.Allowed,
		"violations", len(result.Violations),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	httputil.WriteJSON(w, http.StatusOK, FromResult(result))
}
