package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func decPtr(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

// ============================================
// UnitLink Tests
// ============================================

func TestNewUnitLink(t *testing.T) {
	itemID := uuid.New()

	t.Run("creates valid link", func(t *testing.T) {
		link, err := NewUnitLink(itemID, "PCS", "BOX", dec(12))
		require.NoError(t, err)
		assert.Equal(t, "PCS", link.UnitCode)
		assert.Equal(t, "BOX", link.ParentCode)
		assert.True(t, link.Active)
		assert.True(t, link.Factor.Equal(dec(12)))
	})

	t.Run("rejects empty unit code", func(t *testing.T) {
		_, err := NewUnitLink(itemID, "", "BOX", dec(12))
		assert.Error(t, err)
	})

	t.Run("rejects self link", func(t *testing.T) {
		_, err := NewUnitLink(itemID, "BOX", "BOX", dec(12))
		assert.Error(t, err)
	})

	t.Run("rejects non-positive factor", func(t *testing.T) {
		_, err := NewUnitLink(itemID, "PCS", "BOX", decimal.Zero)
		assert.Error(t, err)

		_, err = NewUnitLink(itemID, "PCS", "BOX", dec(-3))
		assert.Error(t, err)
	})
}

func TestUnitLink_Convert(t *testing.T) {
	link, err := NewUnitLink(uuid.New(), "PCS", "BOX", dec(12))
	require.NoError(t, err)

	assert.True(t, link.ConvertToBase(dec(2)).Equal(dec(24)))
	assert.True(t, link.ConvertFromBase(dec(24)).Equal(dec(2)))
}

// ============================================
// DeriveBaseRates Tests
// ============================================

func TestDeriveBaseRates(t *testing.T) {
	t.Run("derives cost and price for positive factor", func(t *testing.T) {
		rates, ok := DeriveBaseRates(decPtr(120), decPtr(144), dec(12))
		require.True(t, ok)
		require.NotNil(t, rates.Cost)
		require.NotNil(t, rates.Price)
		assert.True(t, rates.Cost.Equal(dec(10)))
		assert.True(t, rates.Price.Equal(dec(12)))
	})

	t.Run("skips absent inputs", func(t *testing.T) {
		rates, ok := DeriveBaseRates(decPtr(120), nil, dec(12))
		require.True(t, ok)
		require.NotNil(t, rates.Cost)
		assert.Nil(t, rates.Price)

		rates, ok = DeriveBaseRates(nil, nil, dec(12))
		require.True(t, ok)
		assert.Nil(t, rates.Cost)
		assert.Nil(t, rates.Price)
	})

	t.Run("no-op for zero or negative factor", func(t *testing.T) {
		tests := []struct {
			name   string
			factor decimal.Decimal
		}{
			{"zero", decimal.Zero},
			{"negative", dec(-1)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				rates, ok := DeriveBaseRates(decPtr(120), decPtr(144), tt.factor)
				assert.False(t, ok)
				assert.Nil(t, rates.Cost)
				assert.Nil(t, rates.Price)
			})
		}
	})

	t.Run("quotient property holds for arbitrary factors", func(t *testing.T) {
		for _, f := range []float64{1, 2, 6, 12, 24, 144} {
			factor := dec(f)
			rates, ok := DeriveBaseRates(decPtr(360), nil, factor)
			require.True(t, ok)
			assert.True(t, rates.Cost.Equal(dec(360).Div(factor)))
		}
	})
}
