package catalog

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestItem(t *testing.T) *Item {
	item, err := NewItem("ITM-001", "Widget", uuid.New(), uuid.New(), "BOX", dec(120), dec(150))
	require.NoError(t, err)
	return item
}

func TestNewItem(t *testing.T) {
	t.Run("creates valid item", func(t *testing.T) {
		item := createTestItem(t)
		assert.Equal(t, "ITM-001", item.ItemCode)
		assert.Equal(t, "BOX", item.PrimaryUom)
		assert.Nil(t, item.BaseUom)
		assert.Nil(t, item.AvgCostBase)
		assert.Len(t, item.GetDomainEvents(), 1)
	})

	t.Run("validation failures", func(t *testing.T) {
		tests := []struct {
			name     string
			itemCode string
			itemName string
			uom      string
			cost     decimal.Decimal
			price    decimal.Decimal
		}{
			{"empty code", "", "Widget", "BOX", dec(1), dec(2)},
			{"empty name", "ITM-001", "", "BOX", dec(1), dec(2)},
			{"empty uom", "ITM-001", "Widget", "", dec(1), dec(2)},
			{"negative cost", "ITM-001", "Widget", "BOX", dec(-1), dec(2)},
			{"negative price", "ITM-001", "Widget", "BOX", dec(1), dec(-2)},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				_, err := NewItem(tt.itemCode, tt.itemName, uuid.New(), uuid.New(), tt.uom, tt.cost, tt.price)
				assert.Error(t, err)
			})
		}
	})
}

func TestItem_LinkBaseUnit(t *testing.T) {
	t.Run("links base unit and derives rates", func(t *testing.T) {
		item := createTestItem(t)

		err := item.LinkBaseUnit("PCS", dec(12))
		require.NoError(t, err)

		require.NotNil(t, item.BaseUom)
		assert.Equal(t, "PCS", *item.BaseUom)
		require.NotNil(t, item.AvgCostBase)
		require.NotNil(t, item.SellingPriceBase)
		assert.True(t, item.AvgCostBase.Equal(dec(10)), "120 / 12 should derive base cost 10")
		assert.True(t, item.SellingPriceBase.Equal(dec(12.5)))
		assert.True(t, item.HasBaseUnit())
	})

	t.Run("relinking replaces the active link", func(t *testing.T) {
		item := createTestItem(t)
		require.NoError(t, item.LinkBaseUnit("PCS", dec(12)))
		require.NoError(t, item.LinkBaseUnit("PCS", dec(24)))

		links := 0
		for _, l := range item.UomLinks {
			if l.Active && l.ParentCode == item.PrimaryUom {
				links++
			}
		}
		assert.Equal(t, 1, links)
		assert.True(t, item.AvgCostBase.Equal(dec(5)))
	})

	t.Run("rejects non-positive factor", func(t *testing.T) {
		item := createTestItem(t)
		assert.Error(t, item.LinkBaseUnit("PCS", decimal.Zero))
		assert.Error(t, item.LinkBaseUnit("PCS", dec(-12)))
		assert.Nil(t, item.BaseUom)
	})
}

func TestItem_UnlinkBaseUnit(t *testing.T) {
	item := createTestItem(t)
	require.NoError(t, item.LinkBaseUnit("PCS", dec(12)))

	item.UnlinkBaseUnit()

	assert.Nil(t, item.BaseUom)
	assert.Nil(t, item.AvgCostBase)
	assert.Nil(t, item.SellingPriceBase)
	assert.False(t, item.HasBaseUnit())
}

func TestItem_SetPricing(t *testing.T) {
	t.Run("updates primary rates and rederives base rates", func(t *testing.T) {
		item := createTestItem(t)
		require.NoError(t, item.LinkBaseUnit("PCS", dec(12)))

		err := item.SetPricing(dec(240), dec(300))
		require.NoError(t, err)

		assert.True(t, item.AvgCostPrimary.Equal(dec(240)))
		require.NotNil(t, item.AvgCostBase)
		assert.True(t, item.AvgCostBase.Equal(dec(20)))
		assert.True(t, item.SellingPriceBase.Equal(dec(25)))
	})

	t.Run("leaves base rates alone without a link", func(t *testing.T) {
		item := createTestItem(t)

		err := item.SetPricing(dec(240), dec(300))
		require.NoError(t, err)
		assert.Nil(t, item.AvgCostBase)
	})

	t.Run("rejects negative rates", func(t *testing.T) {
		item := createTestItem(t)
		assert.Error(t, item.SetPricing(dec(-1), dec(1)))
		assert.Error(t, item.SetPricing(dec(1), dec(-1)))
	})
}

func TestItem_SetReorderLevel(t *testing.T) {
	item := createTestItem(t)

	require.NoError(t, item.SetReorderLevel(dec(25)))
	assert.True(t, item.ReorderLevel.Equal(dec(25)))

	assert.Error(t, item.SetReorderLevel(dec(-5)))
}
