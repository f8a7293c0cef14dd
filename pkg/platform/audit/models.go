package audit

import (
	"context"
	"time"

	id "canna-gate/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with legal/regulatory significance.
	// Checkout verdicts live here; regulators can ask for them years later.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring.
	// Examples: rejected admin tokens, rule tampering attempts.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers events useful for debugging and operational
	// visibility. These can be sampled with shorter retention.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	Action    string
	// RequestID is the correlation ID from the HTTP request context.
	RequestID string
	// Jurisdiction is the point-of-sale jurisdiction a decision ran against.
	Jurisdiction id.JurisdictionCode
	// Decision is the verdict for checkout evaluations: "allowed"/"blocked".
	Decision string
	// Reason carries the violation kinds behind a blocked verdict.
	Reason string
	// RulesVersion identifies the rule snapshot the decision was made with.
	RulesVersion string
	// ActorID tracks who performed an admin action (rule reloads).
	ActorID string
	// ClientIP and UserAgent identify the calling client when known.
	ClientIP  string
	UserAgent string
}

// AuditEvent names every action this service audits.
type AuditEvent string

const (
	// Compliance events
	EventCheckoutEvaluated AuditEvent = "checkout_evaluated"

	// Operations events
	EventRulesReloaded    AuditEvent = "rules_reloaded"
	EventRulesReloadError AuditEvent = "rules_reload_failed"

	// Security events
	EventAdminAuthFailed AuditEvent = "admin_auth_failed"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventCheckoutEvaluated: CategoryCompliance,
	EventRulesReloaded:     CategoryOperations,
	EventRulesReloadError:  CategoryOperations,
	EventAdminAuthFailed:   CategorySecurity,
}

// Category resolves the category for an event, defaulting to operations for
// unmapped actions so nothing is silently dropped.
func (e AuditEvent) Category() EventCategory {
	if c, ok := eventCategories[e]; ok {
		return c
	}
	return CategoryOperations
}

// Store persists audit events. Implementations decide durability: the
// in-memory store backs tests, the Postgres store writes the outbox.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Emitter is the narrow interface domain services depend on.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Sink forwards persisted events to an external system (Kafka).
type Sink interface {
	Publish(ctx context.Context, event Event) error
}
