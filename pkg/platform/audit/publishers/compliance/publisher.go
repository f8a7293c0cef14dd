// Package compliance provides a fail-closed audit publisher for regulatory
// events.
//
// Publisher emits compliance events with synchronous, fail-closed semantics.
// The caller blocks until the write succeeds; if it fails, an error is
// returned and the calling operation MUST fail. A checkout verdict that
// cannot be audited must not be handed to the caller.
//
// Use for: checkout_evaluated.
package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	audit "canna-gate/pkg/platform/audit"
)

// Publisher emits compliance events with fail-closed semantics.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// New creates a compliance publisher. The store should be outbox-backed in
// production for guaranteed delivery.
func New(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Emit synchronously writes a compliance event to the audit store.
// Returns error if persistence fails - the caller MUST fail its operation.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	start := time.Now()

	if event.Action == "" {
		return fmt.Errorf("compliance event requires Action")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	if err := p.store.Append(ctx, event); err != nil {
		if p.metrics != nil {
			p.metrics.IncPersistFailures()
		}
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "CRITICAL: compliance audit failed",
				"action", event.Action,
				"jurisdiction", event.Jurisdiction,
				"error", err,
			)
		}
		return fmt.Errorf("persist compliance event: %w", err)
	}

	if p.metrics != nil {
		p.metrics.ObservePersistLatency(time.Since(start))
	}
	return nil
}
