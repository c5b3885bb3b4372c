package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/retailops/backoffice/internal/domain/catalog"
	csvimport "github.com/retailops/backoffice/internal/infrastructure/import"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const importHeader = "item_code,name,primary_uom,avg_cost,selling_price,base_uom,base_factor\n"

func TestImportService_ImportItems(t *testing.T) {
	t.Run("imports valid rows", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewImportService(repo)

		repo.On("ExistsByItemCode", mock.Anything, mock.Anything).Return(false, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		csv := importHeader +
			"ITM-001,Bottled Water 500ml,case,90,120,bottle,12\n" +
			"ITM-002,Sparkling Water 330ml,case,60,85,,\n"

		result, err := service.ImportItems(context.Background(), strings.NewReader(csv))

		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalRows)
		assert.Equal(t, 2, result.Imported)
		assert.Empty(t, result.Errors)
		repo.AssertNumberOfCalls(t, "Save", 2)
	})

	t.Run("derives base rates from the link factor", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewImportService(repo)

		repo.On("ExistsByItemCode", mock.Anything, "ITM-001").Return(false, nil)
		var saved *catalog.Item
		repo.On("Save", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
			saved = args.Get(1).(*catalog.Item)
		})

		csv := importHeader + "ITM-001,Bottled Water 500ml,case,90,120,bottle,12\n"

		result, err := service.ImportItems(context.Background(), strings.NewReader(csv))

		require.NoError(t, err)
		assert.Equal(t, 1, result.Imported)
		require.NotNil(t, saved)
		require.NotNil(t, saved.BaseUom)
		assert.Equal(t, "bottle", *saved.BaseUom)
		require.NotNil(t, saved.AvgCostBase)
		assert.True(t, saved.AvgCostBase.Equal(dec(7.5)))
		require.NotNil(t, saved.SellingPriceBase)
		assert.True(t, saved.SellingPriceBase.Equal(dec(10)))
	})

	t.Run("rejects whole file when a row is invalid", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewImportService(repo)

		repo.On("ExistsByItemCode", mock.Anything, mock.Anything).Return(false, nil)

		csv := importHeader +
			"ITM-001,Bottled Water 500ml,case,90,120,,\n" +
			"ITM-002,,case,not-a-number,85,,\n"

		result, err := service.ImportItems(context.Background(), strings.NewReader(csv))

		require.NoError(t, err)
		assert.Equal(t, 0, result.Imported)
		assert.Equal(t, 2, result.TotalErrors)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("flags duplicate item codes within the file", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewImportService(repo)

		repo.On("ExistsByItemCode", mock.Anything, mock.Anything).Return(false, nil)

		csv := importHeader +
			"ITM-001,Bottled Water 500ml,case,90,120,,\n" +
			"ITM-001,Duplicate Row,case,90,120,,\n"

		result, err := service.ImportItems(context.Background(), strings.NewReader(csv))

		require.NoError(t, err)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, csvimport.ErrCodeDuplicateInFile, result.Errors[0].Code)
		assert.Equal(t, 3, result.Errors[0].Row)
	})

	t.Run("flags item codes already in the catalog", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewImportService(repo)

		repo.On("ExistsByItemCode", mock.Anything, "ITM-001").Return(true, nil)

		csv := importHeader + "ITM-001,Bottled Water 500ml,case,90,120,,\n"

		result, err := service.ImportItems(context.Background(), strings.NewReader(csv))

		require.NoError(t, err)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, csvimport.ErrCodeDuplicateInDB, result.Errors[0].Code)
	})

	t.Run("requires base_factor when base_uom is given", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewImportService(repo)

		repo.On("ExistsByItemCode", mock.Anything, mock.Anything).Return(false, nil)

		csv := importHeader + "ITM-001,Bottled Water 500ml,case,90,120,bottle,\n"

		result, err := service.ImportItems(context.Background(), strings.NewReader(csv))

		require.NoError(t, err)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "base_factor", result.Errors[0].Column)
	})

	t.Run("reports missing required headers", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewImportService(repo)

		csv := "item_code,name\nITM-001,Bottled Water 500ml\n"

		result, err := service.ImportItems(context.Background(), strings.NewReader(csv))

		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalErrors)
	})

	t.Run("rejects file without data rows", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewImportService(repo)

		_, err := service.ImportItems(context.Background(), strings.NewReader(importHeader))

		assert.ErrorIs(t, err, csvimport.ErrNoDataRows)
	})
}
