package offer

import (
	"loan-offer-service/internal/pkg/apperrors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultSources = []BankSource{
	{Bank: "BNP", Path: "data/BNP.json"},
	{Bank: "CARREFOURBANK", Path: "data/CARREFOURBANK.json"},
	{Bank: "SG", Path: "data/SG.json"},
}

func newTestCatalog(t *testing.T) Catalog {
	t.Helper()
	catalog, err := NewCatalog(defaultSources, []int{50000, 100000, 200000, 500000}, []int{15, 20, 25})
	require.NoError(t, err)
	return catalog
}

func TestNewCatalog(t *testing.T) {
	t.Run("builds catalog from valid settings", func(t *testing.T) {
		catalog := newTestCatalog(t)

		assert.Equal(t, defaultSources, catalog.Sources())
		assert.True(t, catalog.IsAllowedAmount(50000))
		assert.False(t, catalog.IsAllowedAmount(999999))
		assert.True(t, catalog.IsAllowedDuration(25))
		assert.False(t, catalog.IsAllowedDuration(30))
	})

	t.Run("is not affected by later changes to its inputs", func(t *testing.T) {
		sources := []BankSource{{Bank: "BNP", Path: "data/BNP.json"}}
		amounts := []int{50000}
		catalog, err := NewCatalog(sources, amounts, []int{15})
		require.NoError(t, err)

		sources[0].Path = "../../etc/passwd"
		amounts[0] = 1
		catalog.Sources()[0].Bank = "changed"

		assert.Equal(t, "data/BNP.json", catalog.Sources()[0].Path)
		assert.Equal(t, "BNP", catalog.Sources()[0].Bank)
		assert.Equal(t, []int{50000}, catalog.AllowedAmounts())
	})

	tests := []struct {
		name      string
		sources   []BankSource
		amounts   []int
		durations []int
		errMsg    string
	}{
		{"no sources", nil, []int{1}, []int{1}, "at least one bank source"},
		{"empty bank name", []BankSource{{Bank: " ", Path: "a.json"}}, []int{1}, []int{1}, "name cannot be empty"},
		{"empty path", []BankSource{{Bank: "BNP"}}, []int{1}, []int{1}, "path for bank BNP"},
		{"duplicate bank", []BankSource{{Bank: "BNP", Path: "a.json"}, {Bank: "BNP", Path: "b.json"}}, []int{1}, []int{1}, "duplicate bank source"},
		{"no amounts", defaultSources, nil, []int{1}, "allowed amounts"},
		{"no durations", defaultSources, []int{1}, nil, "allowed durations"},
	}
	for _, tt := range tests {
		t.Run("rejects "+tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.sources, tt.amounts, tt.durations)
			assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
			assert.ErrorContains(t, err, tt.errMsg)
		})
	}
}

func TestFilterAndSort(t *testing.T) {
	offers := []LoanOffer{
		{Bank: "BNP", Amount: 50000, Duration: 15, Rate: 3.5},
		{Bank: "BNP", Amount: 100000, Duration: 15, Rate: 1.0},
		{Bank: "CARREFOURBANK", Amount: 50000, Duration: 15, Rate: 2.9},
		{Bank: "CARREFOURBANK", Amount: 50000, Duration: 20, Rate: 0.5},
		{Bank: "SG", Amount: 50000, Duration: 15, Rate: 3.1},
	}

	t.Run("keeps matching offers sorted by rate", func(t *testing.T) {
		result := FilterAndSort(offers, 50000, 15)

		require.Len(t, result, 3)
		assert.Equal(t, []LoanOffer{
			{Bank: "CARREFOURBANK", Amount: 50000, Duration: 15, Rate: 2.9},
			{Bank: "SG", Amount: 50000, Duration: 15, Rate: 3.1},
			{Bank: "BNP", Amount: 50000, Duration: 15, Rate: 3.5},
		}, result)
	})

	t.Run("every result matches and rates never decrease", func(t *testing.T) {
		for _, amount := range []int{50000, 100000} {
			for _, duration := range []int{15, 20} {
				result := FilterAndSort(offers, amount, duration)
				for i, o := range result {
					assert.Equal(t, amount, o.Amount)
					assert.Equal(t, duration, o.Duration)
					if i > 0 {
						assert.LessOrEqual(t, result[i-1].Rate, o.Rate)
					}
				}
			}
		}
	})

	t.Run("equal rates keep source order", func(t *testing.T) {
		tied := []LoanOffer{
			{Bank: "BNP", Amount: 50000, Duration: 15, Rate: 3.0},
			{Bank: "CARREFOURBANK", Amount: 50000, Duration: 15, Rate: 2.0},
			{Bank: "SG", Amount: 50000, Duration: 15, Rate: 3.0},
		}

		result := FilterAndSort(tied, 50000, 15)

		assert.Equal(t, []string{"CARREFOURBANK", "BNP", "SG"}, banks(result))
	})

	t.Run("returns empty slice when nothing matches", func(t *testing.T) {
		result := FilterAndSort(offers, 500000, 25)

		assert.NotNil(t, result)
		assert.Empty(t, result)
	})

	t.Run("does not reorder its input", func(t *testing.T) {
		input := []LoanOffer{
			{Bank: "BNP", Amount: 50000, Duration: 15, Rate: 3.5},
			{Bank: "SG", Amount: 50000, Duration: 15, Rate: 3.1},
		}

		FilterAndSort(input, 50000, 15)

		assert.Equal(t, "BNP", input[0].Bank)
	})
}

func banks(offers []LoanOffer) []string {
	names := make([]string, len(offers))
	for i, o := range offers {
		names[i] = o.Bank
	}
	return names
}
