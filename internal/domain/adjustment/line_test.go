package adjustment

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

func ledgerRowWithBaseUnit() StockLedgerRow {
	return StockLedgerRow{
		ItemID:              uuid.New(),
		ItemCode:            "ITM-001",
		ItemName:            "Bottled Water 500ml",
		BranchID:            uuid.New(),
		AvgCostPrimary:      dec(90),
		AvgCostBase:         decPtr(7.5),
		SellingPricePrimary: dec(120),
		SellingPriceBase:    decPtr(10),
	}
}

func ledgerRowWithoutBaseUnit() StockLedgerRow {
	return StockLedgerRow{
		ItemID:              uuid.New(),
		ItemCode:            "ITM-002",
		ItemName:            "Display Stand",
		BranchID:            uuid.New(),
		AvgCostPrimary:      dec(50),
		SellingPricePrimary: dec(80),
	}
}

func TestNewLineFromLedger(t *testing.T) {
	adjustmentID := uuid.New()

	t.Run("sales type seeds selling prices only", func(t *testing.T) {
		row := ledgerRowWithBaseUnit()

		line, err := NewLineFromLedger(adjustmentID, row, TypeSale, dec(2), dec(5))

		require.NoError(t, err)
		assert.Equal(t, row.ItemID, line.ItemID)
		assert.Equal(t, "ITM-001", line.ItemCode)
		require.NotNil(t, line.SellingPricePrimary)
		require.NotNil(t, line.SellingPriceBase)
		assert.True(t, line.SellingPricePrimary.Equal(dec(120)))
		assert.True(t, line.SellingPriceBase.Equal(dec(10)))
		assert.Nil(t, line.AvgCostPrimary)
		assert.Nil(t, line.AvgCostBase)
		// 2*120 + 5*10
		assert.True(t, line.LineTotal.Equal(dec(290)))
	})

	t.Run("goods type seeds average costs only", func(t *testing.T) {
		row := ledgerRowWithBaseUnit()

		line, err := NewLineFromLedger(adjustmentID, row, TypeGoodsReceive, dec(3), dec(4))

		require.NoError(t, err)
		require.NotNil(t, line.AvgCostPrimary)
		require.NotNil(t, line.AvgCostBase)
		assert.True(t, line.AvgCostPrimary.Equal(dec(90)))
		assert.True(t, line.AvgCostBase.Equal(dec(7.5)))
		assert.Nil(t, line.SellingPricePrimary)
		assert.Nil(t, line.SellingPriceBase)
		// 3*90 + 4*7.5
		assert.True(t, line.LineTotal.Equal(dec(300)))
	})

	t.Run("item without base unit keeps base rates nil", func(t *testing.T) {
		row := ledgerRowWithoutBaseUnit()

		line, err := NewLineFromLedger(adjustmentID, row, TypeSale, dec(2), decimal.Zero)

		require.NoError(t, err)
		require.NotNil(t, line.SellingPricePrimary)
		assert.Nil(t, line.SellingPriceBase)
		assert.True(t, line.LineTotal.Equal(dec(160)))
	})

	t.Run("rejects base quantity for item without base unit", func(t *testing.T) {
		row := ledgerRowWithoutBaseUnit()

		_, err := NewLineFromLedger(adjustmentID, row, TypeSale, dec(2), dec(1))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no base unit")
	})

	t.Run("rejects negative quantities", func(t *testing.T) {
		row := ledgerRowWithBaseUnit()

		_, err := NewLineFromLedger(adjustmentID, row, TypeSale, dec(-1), decimal.Zero)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "negative")
	})

	t.Run("rejects ledger row without item", func(t *testing.T) {
		row := ledgerRowWithBaseUnit()
		row.ItemID = uuid.Nil

		_, err := NewLineFromLedger(adjustmentID, row, TypeSale, dec(1), decimal.Zero)

		require.Error(t, err)
	})
}

func TestLine_ComputeTotal(t *testing.T) {
	t.Run("sales types use selling prices", func(t *testing.T) {
		line := Line{
			PrimaryQty:          dec(10),
			BaseQty:             dec(25),
			SellingPricePrimary: decPtr(120),
			SellingPriceBase:    decPtr(10),
			AvgCostPrimary:      decPtr(999), // must not contribute
		}

		// 10*120 + 25*10
		assert.True(t, line.ComputeTotal(TypeSale).Equal(dec(1450)))
		assert.True(t, line.ComputeTotal(TypeSalesReturn).Equal(dec(1450)))
	})

	t.Run("goods types use average costs", func(t *testing.T) {
		line := Line{
			PrimaryQty:          dec(10),
			BaseQty:             dec(25),
			AvgCostPrimary:      decPtr(90),
			AvgCostBase:         decPtr(7.5),
			SellingPricePrimary: decPtr(999),
		}

		// 10*90 + 25*7.5
		assert.True(t, line.ComputeTotal(TypeGoodsReceive).Equal(dec(1087.5)))
		assert.True(t, line.ComputeTotal(TypeGoodsReturn).Equal(dec(1087.5)))
	})

	t.Run("missing rates count as zero", func(t *testing.T) {
		line := Line{
			PrimaryQty:          dec(10),
			BaseQty:             dec(25),
			SellingPricePrimary: decPtr(120),
		}

		assert.True(t, line.ComputeTotal(TypeSale).Equal(dec(1200)))
	})

	t.Run("unset type yields zero", func(t *testing.T) {
		line := Line{
			PrimaryQty:          dec(10),
			SellingPricePrimary: decPtr(120),
			AvgCostPrimary:      decPtr(90),
		}

		assert.True(t, line.ComputeTotal(Type("")).IsZero())
	})
}

func TestLine_SetQuantities(t *testing.T) {
	t.Run("updates quantities", func(t *testing.T) {
		line := Line{PrimaryQty: dec(1), BaseQty: dec(2)}

		err := line.SetQuantities(dec(5), dec(6))

		require.NoError(t, err)
		assert.True(t, line.PrimaryQty.Equal(dec(5)))
		assert.True(t, line.BaseQty.Equal(dec(6)))
	})

	t.Run("rejects negative quantities", func(t *testing.T) {
		line := Line{}

		err := line.SetQuantities(decimal.Zero, dec(-3))

		require.Error(t, err)
	})
}

func TestLine_Recompute(t *testing.T) {
	line := Line{
		PrimaryQty:          dec(2),
		SellingPricePrimary: decPtr(120),
	}

	line.Recompute(TypeSale)
	assert.True(t, line.LineTotal.Equal(dec(240)))

	// idempotent for unchanged inputs
	line.Recompute(TypeSale)
	assert.True(t, line.LineTotal.Equal(dec(240)))

	line.PrimaryQty = dec(3)
	line.Recompute(TypeSale)
	assert.True(t, line.LineTotal.Equal(dec(360)))
}
