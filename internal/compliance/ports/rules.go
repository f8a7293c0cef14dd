package ports

import (
	"canna-gate/internal/rules"
)

// SnapshotProvider hands out the active rule table snapshot. The service
// resolves it once per evaluation so a single checkout never straddles a
// rule reload.
type SnapshotProvider interface {
	Current() *rules.Table
}
