package worker_test

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canna-gate/pkg/platform/audit"
	"canna-gate/pkg/platform/audit/store/memory"
	"canna-gate/pkg/platform/audit/worker"
)

type recordingSink struct {
	mu        sync.Mutex
	published []audit.Event
	err       error
}

func (s *recordingSink) Publish(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.published = append(s.published, event)
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.published)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestWorkerRun(t *testing.T) {
	event := audit.Event{
		Category:     audit.CategoryOperations,
		Action:       string(audit.EventRulesReloaded),
		Jurisdiction: "CA",
	}

	t.Run("persists and forwards events", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		sink := &recordingSink{}
		inbox := make(chan audit.Event, 4)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = worker.New(store, sink, inbox, slog.Default()).Run(ctx) }()

		inbox <- event
		waitFor(t, func() bool { return sink.count() == 1 })

		stored, err := store.ListByJurisdiction(context.Background(), "CA")
		require.NoError(t, err)
		assert.Len(t, stored, 1)
	})

	t.Run("sink failure does not stop the worker", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		sink := &recordingSink{err: errors.New("broker down")}
		inbox := make(chan audit.Event, 4)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = worker.New(store, sink, inbox, slog.Default()).Run(ctx) }()

		inbox <- event
		inbox <- event
		waitFor(t, func() bool {
			stored, _ := store.ListByJurisdiction(context.Background(), "CA")
			return len(stored) == 2
		})
		assert.Zero(t, sink.count())
	})

	t.Run("nil sink only persists", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		inbox := make(chan audit.Event, 4)

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		go func() { _ = worker.New(store, nil, inbox, slog.Default()).Run(ctx) }()

		inbox <- event
		waitFor(t, func() bool {
			stored, _ := store.ListByJurisdiction(context.Background(), "CA")
			return len(stored) == 1
		})
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		store := memory.NewInMemoryStore()
		inbox := make(chan audit.Event)

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error, 1)
		go func() { done <- worker.New(store, nil, inbox, slog.Default()).Run(ctx) }()

		cancel()
		select {
		case err := <-done:
			assert.ErrorIs(t, err, context.Canceled)
		case <-time.After(2 * time.Second):
			t.Fatal("worker did not stop")
		}
	})
}
