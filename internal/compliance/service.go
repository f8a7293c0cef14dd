package compliance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"canna-gate/internal/compliance/metrics"
	"canna-gate/internal/compliance/ports"
	"canna-gate/internal/rules"
	"canna-gate/pkg/platform/audit"
	"canna-gate/pkg/platform/middleware/metadata"
	"canna-gate/pkg/requestcontext"
)

// Service wraps the pure engine with the collaborators a deployment needs:
// the rule snapshot provider, the fail-closed audit emitter, metrics, and
// logging. The engine itself stays a pure function.
type Service struct {
	engine   *Engine
	snapshot ports.SnapshotProvider
	auditor  ports.AuditPort
	logger   *slog.Logger
	metrics  *metrics.Metrics
	tracer   trace.Tracer
}

// NewService wires the service. Snapshot provider and logger are required;
// auditor and metrics may be nil in tests.
func NewService(snapshot ports.SnapshotProvider, auditor ports.AuditPort, logger *slog.Logger, m *metrics.Metrics) (*Service, error) {
	if snapshot == nil {
		return nil, fmt.Errorf("rule snapshot provider is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	return &Service{
		engine:   NewEngine(),
		snapshot: snapshot,
		auditor:  auditor,
		logger:   logger,
		metrics:  m,
		tracer:   otel.Tracer("canna-gate/compliance"),
	}, nil
}

// CheckCheckout resolves the rule set for the point-of-sale jurisdiction,
// evaluates the checkout, and audits the verdict. Unknown jurisdictions and
// malformed inputs return errors distinct from a blocked Result: a blocked
// verdict is a normal outcome, a fault halts the transaction entirely.
func (s *Service) CheckCheckout(ctx context.Context, req CheckoutRequest) (*Result, error) {
	start := time.Now()
	asOf := requestcontext.Now(ctx)

	ctx, span := s.tracer.Start(ctx, "compliance.check_checkout",
		trace.WithAttributes(attribute.String("jurisdiction", req.Jurisdiction.String())),
	)
	defer span.End()

	// One snapshot per evaluation: a reload mid-request cannot change the
	// rules this checkout is judged by.
	table := s.snapshot.Current()
	rs, err := table.Lookup(req.Jurisdiction)
	if err != nil {
		var unknown *rules.UnknownJurisdictionError
		if errors.As(err, &unknown) {
			s.logger.ErrorContext(ctx, "jurisdiction missing from rule table",
				"jurisdiction", req.Jurisdiction,
				"rules_version", table.Version(),
			)
			return nil, unknown.AsDomainError()
		}
		return nil, err
	}

	result, err := s.engine.Evaluate(req, rs, asOf)
	if err != nil {
		return nil, err
	}
	result.RulesVersion = table.Version()

	if err := s.emitDecision(ctx, req, &result); err != nil {
		// Fail closed: a verdict that cannot be audited is not handed out.
		return nil, err
	}

	verdict := "blocked"
	if result.Allowed {
		verdict = "allowed"
	}
	s.metrics.IncVerdict(req.Jurisdiction.String(), verdict)
	for _, v := range result.Violations {
		s.metrics.IncViolation(string(v.Kind))
	}
	s.metrics.ObserveEvaluateLatency(time.Since(start))

	span.SetAttributes(
		attribute.Bool("allowed", result.Allowed),
		attribute.Int("violations", len(result.Violations)),
	)

	return &result, nil
}

func (s *Service) emitDecision(ctx context.Context, req CheckoutRequest, result *Result) error {
	if s.auditor == nil {
		return nil
	}

	decision := "blocked"
	if result.Allowed {
		decision = "allowed"
	}
	event := audit.Event{
		Category:     audit.CategoryCompliance,
		Timestamp:    result.EvaluatedAt,
		Action:       string(audit.EventCheckoutEvaluated),
		RequestID:    requestcontext.RequestID(ctx),
		Jurisdiction: req.Jurisdiction,
		Decision:     decision,
		Reason:       kindList(result.Violations),
		RulesVersion: result.RulesVersion,
		ClientIP:     metadata.GetClientIP(ctx),
		UserAgent:    metadata.GetUserAgent(ctx),
	}
	if err := s.auditor.Emit(ctx, event); err != nil {
		return fmt.Errorf("audit checkout decision: %w", err)
	}
	return nil
}
