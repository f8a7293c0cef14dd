package ports

import (
	"context"

	"canna-gate/pkg/platform/audit"
)

// AuditPort defines the interface for emitting audit events. This matches
// audit.Emitter but is defined here to keep the module's dependencies
// pointing outward through its own ports.
type AuditPort interface {
	Emit(ctx context.Context, event audit.Event) error
}
