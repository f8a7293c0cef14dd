package rules_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"canna-gate/internal/rules"
	id "canna-gate/pkg/domain"
)

func writeRuleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestFileLoader(t *testing.T) {
	ctx := context.Background()

	t.Run("loads a valid rule file", func(t *testing.T) {
		path := writeRuleFile(t, `
version: test-2025.1
jurisdictions:
  - code: CA
    legal_status: legal
    min_age: 21
    purchase_limits:
      flower: 28.5
      concentrate: 8
  - code: FL
    legal_status: medical
    min_age: 18
    requires_medical_card: true
    purchase_limits:
      flower: 70
  - code: TX
    legal_status: illegal
    min_age: 21
`)
		table, err := rules.FileLoader{Path: path}.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "test-2025.1", table.Version())
		assert.Equal(t, 3, table.Len())

		ca, err := table.Lookup("CA")
		require.NoError(t, err)
		assert.Equal(t, 28.5, ca.PurchaseLimits[id.CategoryFlower])
	})

	t.Run("content-addresses unversioned files", func(t *testing.T) {
		path := writeRuleFile(t, `
jurisdictions:
  - code: CA
    legal_status: legal
    min_age: 21
`)
		table, err := rules.FileLoader{Path: path}.Load(ctx)
		require.NoError(t, err)
		assert.Contains(t, table.Version(), "file-")
	})

	t.Run("rejects unknown legal status", func(t *testing.T) {
		path := writeRuleFile(t, `
version: v1
jurisdictions:
  - code: CA
    legal_status: recreational
    min_age: 21
`)
		_, err := rules.FileLoader{Path: path}.Load(ctx)
		assert.Error(t, err)
	})

	t.Run("rejects unknown limit category", func(t *testing.T) {
		path := writeRuleFile(t, `
version: v1
jurisdictions:
  - code: CA
    legal_status: legal
    min_age: 21
    purchase_limits:
      vape: 5
`)
		_, err := rules.FileLoader{Path: path}.Load(ctx)
		assert.Error(t, err)
	})

	t.Run("rejects missing file", func(t *testing.T) {
		_, err := rules.FileLoader{Path: "/nonexistent/rules.yaml"}.Load(ctx)
		assert.Error(t, err)
	})

	t.Run("rejects malformed yaml", func(t *testing.T) {
		path := writeRuleFile(t, "jurisdictions: [\n")
		_, err := rules.FileLoader{Path: path}.Load(ctx)
		assert.Error(t, err)
	})
}
