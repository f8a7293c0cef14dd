package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"canna-gate/internal/rules"
	"canna-gate/pkg/platform/audit"
	"canna-gate/pkg/platform/httputil"
	authmw "canna-gate/pkg/platform/middleware/auth"
	"canna-gate/pkg/requestcontext"
)

// Handler exposes the admin rule table surface: inspect the active snapshot
// and trigger an atomic reload.
type Handler struct {
	provider *rules.Provider
	inbox    chan<- audit.Event
	logger   *slog.Logger
}

// New constructs the admin rules handler. The inbox receives operational
// audit events; pass nil to disable.
func New(provider *rules.Provider, inbox chan<- audit.Event, logger *slog.Logger) *Handler {
	return &Handler{
		provider: provider,
		inbox:    inbox,
		logger:   logger,
	}
}

// Register mounts the admin endpoints on an already-authenticated router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/admin/rules", h.HandleSnapshot)
	r.Post("/admin/rules/reload", h.HandleReload)
}

// snapshotResponse summarizes the active rule table.
type snapshotResponse struct {
	Version       string    `json:"version"`
	Jurisdictions int       `json:"jurisdictions"`
	LoadedAt      time.Time `json:"loaded_at"`
	Codes         []string  `json:"codes"`
}

// HandleSnapshot handles GET /admin/rules.
func (h *Handler) HandleSnapshot(w http.ResponseWriter, r *http.Request) {
	table := h.provider.Current()

	codes := make([]string, 0, table.Len())
	for _, code := range table.Codes() {
		codes = append(codes, code.String())
	}

	httputil.WriteJSON(w, http.StatusOK, snapshotResponse{
		Version:       table.Version(),
		Jurisdictions: table.Len(),
		LoadedAt:      table.LoadedAt(),
		Codes:         codes,
	})
}

// reloadResponse reports the snapshot swap.
type reloadResponse struct {
	Version       string `json:"version"`
	Jurisdictions int    `json:"jurisdictions"`
}

// HandleReload handles POST /admin/rules/reload. The swap is wholesale:
// in-flight evaluations keep the snapshot they started with.
func (h *Handler) HandleReload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	actor := authmw.GetAdminSubject(ctx)

	if err := h.provider.Reload(ctx); err != nil {
		h.logger.ErrorContext(ctx, "rule table reload failed",
			"request_id", requestID,
			"actor", actor,
			"error", err,
		)
		h.emit(audit.Event{
			Action:    string(audit.EventRulesReloadError),
			Timestamp: time.Now().UTC(),
			RequestID: requestID,
			ActorID:   actor,
			Reason:    err.Error(),
		})
		httputil.WriteError(w, err)
		return
	}

	table := h.provider.Current()
	h.logger.InfoContext(ctx, "rule table reloaded",
		"request_id", requestID,
		"actor", actor,
		"version", table.Version(),
		"jurisdictions", table.Len(),
	)
	h.emit(audit.Event{
		Action:       string(audit.EventRulesReloaded),
		Timestamp:    time.Now().UTC(),
		RequestID:    requestID,
		ActorID:      actor,
		RulesVersion: table.Version(),
	})

	httputil.WriteJSON(w, http.StatusOK, reloadResponse{
		Version:       table.Version(),
		Jurisdictions: table.Len(),
	})
}

// emit drops the event when the inbox is full; operational audit must never
// block an admin call.
func (h *Handler) emit(event audit.Event) {
	if h.inbox == nil {
		return
	}
	select {
	case h.inbox <- event:
	default:
	}
}
