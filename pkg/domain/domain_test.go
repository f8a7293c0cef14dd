package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "canna-gate/pkg/domain"
)

func TestParseJurisdictionCode(t *testing.T) {
	t.Run("accepts two-letter codes case-insensitively", func(t *testing.T) {
		for _, input := range []string{"CA", "ca", " Tx ", "dc"} {
			code, err := id.ParseJurisdictionCode(input)
			require.NoError(t, err, "input %q", input)
			assert.Len(t, code.String(), 2)
			assert.Equal(t, code.String(), string(code))
		}
	})

	t.Run("normalizes to uppercase", func(t *testing.T) {
		code, err := id.ParseJurisdictionCode("fl")
		require.NoError(t, err)
		assert.Equal(t, id.JurisdictionCode("FL"), code)
	})

	t.Run("rejects malformed codes", func(t *testing.T) {
		for _, input := range []string{"", "C", "CAL", "C1", "c-", "  "} {
			_, err := id.ParseJurisdictionCode(input)
			assert.Error(t, err, "input %q", input)
		}
	})
}

func FuzzParseJurisdictionCode(f *testing.F) {
	f.Add("CA")
	f.Add("zz")
	f.Add("")
	f.Add("C@")
	f.Fuzz(func(t *testing.T, input string) {
		code, err := id.ParseJurisdictionCode(input)
		if err != nil {
			return
		}
		if len(code) != 2 {
			t.Fatalf("accepted code %q is not two characters", code)
		}
		for i := 0; i < len(code); i++ {
			if code[i] < 'A' || code[i] > 'Z' {
				t.Fatalf("accepted code %q contains non-uppercase byte", code)
			}
		}
	})
}

func TestParseCategory(t *testing.T) {
	t.Run("accepts canonical categories", func(t *testing.T) {
		for input, want := range map[string]id.Category{
			"flower":      id.CategoryFlower,
			"Concentrate": id.CategoryConcentrate,
			" edible ":    id.CategoryEdible,
			"PLANT":       id.CategoryPlant,
		} {
			got, err := id.ParseCategory(input)
			require.NoError(t, err, "input %q", input)
			assert.Equal(t, want, got)
		}
	})

	t.Run("rejects unknown categories", func(t *testing.T) {
		for _, input := range []string{"", "vape", "preroll"} {
			_, err := id.ParseCategory(input)
			assert.Error(t, err, "input %q", input)
		}
	})

	t.Run("canonical units", func(t *testing.T) {
		assert.Equal(t, "g", id.CategoryFlower.Unit())
		assert.Equal(t, "g", id.CategoryConcentrate.Unit())
		assert.Equal(t, "mg", id.CategoryEdible.Unit())
		assert.Equal(t, "plants", id.CategoryPlant.Unit())
	})
}

func TestParseLegalStatus(t *testing.T) {
	t.Run("accepts supported statuses", func(t *testing.T) {
		for _, input := range []string{"legal", "medical", "illegal", "decriminalized"} {
			status, err := id.ParseLegalStatus(input)
			require.NoError(t, err)
			assert.True(t, status.IsValid())
		}
	})

	t.Run("rejects free text", func(t *testing.T) {
		for _, input := range []string{"", "LEGAL-ISH", "banned", "recreational"} {
			_, err := id.ParseLegalStatus(input)
			assert.Error(t, err, "input %q", input)
		}
	})

	t.Run("sale prohibition covers illegal and decriminalized", func(t *testing.T) {
		assert.True(t, id.StatusIllegal.SaleProhibited())
		assert.True(t, id.StatusDecriminalized.SaleProhibited())
		assert.False(t, id.StatusLegal.SaleProhibited())
		assert.False(t, id.StatusMedical.SaleProhibited())
	})
}
