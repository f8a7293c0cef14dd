package worker

import (
	"context"
	"log/slog"

	audit "canna-gate/pkg/platform/audit"
)

// Worker consumes operational audit events from a channel, persists them,
// and forwards them to an optional sink. Operational events are best-effort:
// a sink failure is logged, never propagated, so rule reload telemetry can
// never block the service.
type Worker struct {
	store  audit.Store
	sink   audit.Sink
	inbox  <-chan audit.Event
	logger *slog.Logger
}

func New(store audit.Store, sink audit.Sink, inbox <-chan audit.Event, logger *slog.Logger) *Worker {
	return &Worker{store: store, sink: sink, inbox: inbox, logger: logger}
}

// Run drains the inbox until the context is canceled.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				w.logger.ErrorContext(ctx, "audit append failed",
					"action", event.Action,
					"error", err,
				)
				continue
			}
			if w.sink != nil {
				if err := w.sink.Publish(ctx, event); err != nil {
					w.logger.WarnContext(ctx, "audit sink publish failed",
						"action", event.Action,
						"error", err,
					)
				}
			}
		}
	}
}
