//go:build integration

package postgres_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canna-gate/pkg/platform/audit"
	"canna-gate/pkg/platform/audit/store/postgres"
	"canna-gate/pkg/testutil/containers"
)

const outboxSchema = `
CREATE TABLE IF NOT EXISTS outbox (
    id             UUID        PRIMARY KEY,
    aggregate_type TEXT        NOT NULL,
    aggregate_id   TEXT        NOT NULL,
    event_type     TEXT        NOT NULL,
    payload        JSONB       NOT NULL,
    created_at     TIMESTAMPTZ NOT NULL
)`

func TestStoreAppend(t *testing.T) {
	ctx := context.Background()
	pg := containers.NewPostgresContainer(t)

	_, err := pg.DB.ExecContext(ctx, outboxSchema)
	require.NoError(t, err)

	store := postgres.New(pg.DB)

	t.Run("writes a jurisdiction-scoped outbox row", func(t *testing.T) {
		require.NoError(t, pg.TruncateTables(ctx, "outbox"))

		event := audit.Event{
			Action:       string(audit.EventCheckoutEvaluated),
			Timestamp:    time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
			RequestID:    "req-1",
			Jurisdiction: "CA",
			Decision:     "blocked",
			Reason:       "category_limit",
			RulesVersion: "2025.2",
		}
		require.NoError(t, store.Append(ctx, event))

		var (
			aggregateType string
			aggregateID   string
			eventType     string
			rawPayload    []byte
		)
		err := pg.DB.QueryRowContext(ctx, `
			SELECT aggregate_type, aggregate_id, event_type, payload FROM outbox
		`).Scan(&aggregateType, &aggregateID, &eventType, &rawPayload)
		require.NoError(t, err)

		assert.Equal(t, "jurisdiction", aggregateType)
		assert.Equal(t, "CA", aggregateID)
		assert.Equal(t, "checkout_evaluated", eventType)

		var payload map[string]any
		require.NoError(t, json.Unmarshal(rawPayload, &payload))
		assert.Equal(t, "compliance", payload["Category"])
		assert.Equal(t, "blocked", payload["Decision"])
		assert.Equal(t, "category_limit", payload["Reason"])
		assert.Equal(t, "2025.2", payload["RulesVersion"])
		assert.NotEmpty(t, payload["ID"])
	})

	t.Run("events without a jurisdiction aggregate by event id", func(t *testing.T) {
		require.NoError(t, pg.TruncateTables(ctx, "outbox"))

		event := audit.Event{
			Action:    string(audit.EventRulesReloaded),
			Timestamp: time.Now().UTC(),
			ActorID:   "ops@example.com",
		}
		require.NoError(t, store.Append(ctx, event))

		var aggregateType, aggregateID string
		err := pg.DB.QueryRowContext(ctx, `
			SELECT aggregate_type, aggregate_id FROM outbox
		`).Scan(&aggregateType, &aggregateID)
		require.NoError(t, err)

		assert.Equal(t, "audit", aggregateType)
		assert.NotEmpty(t, aggregateID)
	})
}
