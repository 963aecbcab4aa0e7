package offer

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	expected := LoanOffer{Bank: "BNP", Amount: 50000, Duration: 15, Rate: 3.5}

	aliasCases := []struct {
		name   string
		record map[string]any
	}{
		{"french short names", map[string]any{"montant": json.Number("50000"), "duree": json.Number("15"), "taux": json.Number("3.5")}},
		{"french loan names", map[string]any{"montant_pret": json.Number("50000"), "duree_pret": json.Number("15"), "taux_pret": json.Number("3.5")}},
		{"english names", map[string]any{"amount": json.Number("50000"), "duration": json.Number("15"), "rate": json.Number("3.5")}},
		{"mixed names", map[string]any{"montant": json.Number("50000"), "duree_pret": json.Number("15"), "rate": json.Number("3.5")}},
		{"float64 values", map[string]any{"amount": 50000.0, "duration": 15.0, "rate": 3.5}},
		{"numeric strings", map[string]any{"amount": " 50000 ", "duration": "15", "rate": "3.5"}},
		{"extra fields ignored", map[string]any{"amount": json.Number("50000"), "duration": json.Number("15"), "rate": json.Number("3.5"), "label": "Prêt perso"}},
	}
	for _, tc := range aliasCases {
		t.Run("normalizes "+tc.name, func(t *testing.T) {
			got, err := Normalize("BNP", tc.record)
			require.NoError(t, err)
			assert.Equal(t, expected, got)
		})
	}

	t.Run("prefers first alias present", func(t *testing.T) {
		got, err := Normalize("SG", map[string]any{
			"amount":  json.Number("100000"),
			"montant": json.Number("50000"),
			"duree":   json.Number("15"),
			"taux":    json.Number("2.9"),
			"rate":    json.Number("9.9"),
		})
		require.NoError(t, err)
		assert.Equal(t, 50000, got.Amount)
		assert.Equal(t, 2.9, got.Rate)
	})

	t.Run("skips null alias and falls through", func(t *testing.T) {
		got, err := Normalize("SG", map[string]any{
			"montant":  nil,
			"amount":   json.Number("50000"),
			"duration": json.Number("15"),
			"rate":     json.Number("2.9"),
		})
		require.NoError(t, err)
		assert.Equal(t, 50000, got.Amount)
	})

	t.Run("truncates fractional amount and duration", func(t *testing.T) {
		got, err := Normalize("SG", map[string]any{
			"amount":   json.Number("50000.9"),
			"duration": json.Number("15.7"),
			"rate":     json.Number("2.95"),
		})
		require.NoError(t, err)
		assert.Equal(t, 50000, got.Amount)
		assert.Equal(t, 15, got.Duration)
		assert.Equal(t, 2.95, got.Rate)
	})

	t.Run("accepts exponent notation", func(t *testing.T) {
		got, err := Normalize("SG", map[string]any{
			"amount":   json.Number("5e4"),
			"duration": json.Number("15"),
			"rate":     json.Number("3"),
		})
		require.NoError(t, err)
		assert.Equal(t, 50000, got.Amount)
		assert.Equal(t, 3.0, got.Rate)
	})

	invalidCases := []struct {
		name   string
		record any
		errMsg string
	}{
		{"non-object record", json.Number("42"), "expected an object"},
		{"missing amount", map[string]any{"duree": json.Number("15"), "taux": json.Number("3")}, "amount is missing"},
		{"missing duration", map[string]any{"montant": json.Number("50000"), "taux": json.Number("3")}, "duration is missing"},
		{"missing rate", map[string]any{"montant": json.Number("50000"), "duree": json.Number("15")}, "rate is missing"},
		{"all aliases null", map[string]any{"montant": nil, "montant_pret": nil, "amount": nil, "duree": json.Number("15"), "taux": json.Number("3")}, "amount is missing"},
		{"non-numeric string", map[string]any{"montant": "fifty thousand", "duree": json.Number("15"), "taux": json.Number("3")}, `amount ("montant") is not numeric`},
		{"empty string", map[string]any{"montant": json.Number("50000"), "duree": "", "taux": json.Number("3")}, "duration"},
		{"boolean rate", map[string]any{"montant": json.Number("50000"), "duree": json.Number("15"), "taux": true}, "rate"},
		{"nested object", map[string]any{"montant": map[string]any{"value": 1}, "duree": json.Number("15"), "taux": json.Number("3")}, "amount"},
		{"amount beyond int range", map[string]any{"montant": "18446744073709601616", "duree": json.Number("15"), "taux": json.Number("3.1")}, "amount (18446744073709601616) is out of range"},
		{"negative amount beyond int range", map[string]any{"montant": json.Number("-18446744073709501616"), "duree": json.Number("15"), "taux": json.Number("3.1")}, "amount"},
		{"duration beyond int range", map[string]any{"montant": json.Number("50000"), "duree": json.Number("18446744073709551631"), "taux": json.Number("3.1")}, "duration"},
		{"float64 amount beyond int range", map[string]any{"amount": 1e30, "duration": 15.0, "rate": 3.1}, "out of range"},
		{"non-numeric first alias does not fall through", map[string]any{"montant": "n/a", "amount": json.Number("50000"), "duree": json.Number("15"), "taux": json.Number("3")}, "not numeric"},
	}
	for _, tc := range invalidCases {
		t.Run("rejects "+tc.name, func(t *testing.T) {
			_, err := Normalize("CARREFOURBANK", tc.record)
			assert.ErrorIs(t, err, ErrInvalidRecord)
			assert.ErrorContains(t, err, tc.errMsg)
		})
	}
}
