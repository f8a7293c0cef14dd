package rules

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	snapshotEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cannagate_rules_snapshot_entries",
		Help: "Jurisdictions in the active rule table snapshot",
	})
	reloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cannagate_rules_reloads_total",
		Help: "Rule table reloads by result",
	}, []string{"result"})
	snapshotLoadedAt = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "cannagate_rules_snapshot_loaded_timestamp_seconds",
		Help: "Unix time the active rule table snapshot was loaded",
	})
)

// Provider hands out the active rule table snapshot. Reload builds a fresh
// table from the loader and swaps the pointer atomically: an in-flight
// evaluation keeps the snapshot it started with, and no evaluation ever
// observes a half-updated jurisdiction.
type Provider struct {
	loader   Loader
	snapshot atomic.Pointer[Table]
}

// NewProvider loads the initial snapshot eagerly. A service that cannot load
// its rule table must not start.
func NewProvider(ctx context.Context, loader Loader) (*Provider, error) {
	p := &Provider{loader: loader}
	if err := p.Reload(ctx); err != nil {
		return nil, fmt.Errorf("initial rule table load: %w", err)
	}
	return p, nil
}

// Current returns the active snapshot. Never nil after NewProvider succeeds.
func (p *Provider) Current() *Table {
	return p.snapshot.Load()
}

// Reload builds a fresh snapshot and swaps it in wholesale. On failure the
// previous snapshot stays active.
func (p *Provider) Reload(ctx context.Context) error {
	table, err := p.loader.Load(ctx)
	if err != nil {
		reloadsTotal.WithLabelValues("error").Inc()
		return err
	}
	p.snapshot.Store(table)
	snapshotEntries.Set(float64(table.Len()))
	snapshotLoadedAt.Set(float64(table.LoadedAt().Unix()))
	reloadsTotal.WithLabelValues("ok").Inc()
	return nil
}
