package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/catalog"
	"github.com/retailops/backoffice/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockItemRepository is a mock implementation of ItemRepository
type MockItemRepository struct {
	mock.Mock
}

func (m *MockItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindByItemCode(ctx context.Context, itemCode string) (*catalog.Item, error) {
	args := m.Called(ctx, itemCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Item), args.Error(1)
}

func (m *MockItemRepository) FindAll(ctx context.Context, filter shared.Filter) ([]catalog.Item, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.Item), args.Error(1)
}

func (m *MockItemRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) ExistsByItemCode(ctx context.Context, itemCode string) (bool, error) {
	args := m.Called(ctx, itemCode)
	return args.Bool(0), args.Error(1)
}

func dec(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v)
}

func createTestItem(t *testing.T) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem("ITM-001", "Bottled Water 500ml", uuid.New(), uuid.New(), "case", dec(90), dec(120))
	require.NoError(t, err)
	item.ClearDomainEvents()
	return item
}

func TestItemService_Create(t *testing.T) {
	t.Run("creates item", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewItemService(repo, nil)

		repo.On("ExistsByItemCode", mock.Anything, "ITM-001").Return(false, nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(nil)

		resp, err := service.Create(context.Background(), CreateItemRequest{
			ItemCode:     "ITM-001",
			Name:         "Bottled Water 500ml",
			PrimaryUom:   "case",
			AvgCost:      dec(90),
			SellingPrice: dec(120),
		})

		require.NoError(t, err)
		assert.Equal(t, "ITM-001", resp.ItemCode)
		assert.Nil(t, resp.BaseUom)
		assert.Nil(t, resp.AvgCostBase)
		repo.AssertExpectations(t)
	})

	t.Run("rejects duplicate item code", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewItemService(repo, nil)

		repo.On("ExistsByItemCode", mock.Anything, "ITM-001").Return(true, nil)

		_, err := service.Create(context.Background(), CreateItemRequest{
			ItemCode:   "ITM-001",
			Name:       "Bottled Water 500ml",
			PrimaryUom: "case",
		})

		require.Error(t, err)
		var derr *shared.DomainError
		require.ErrorAs(t, err, &derr)
		assert.Equal(t, "ALREADY_EXISTS", derr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestItemService_LinkBaseUnit(t *testing.T) {
	t.Run("derives base rates from factor", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewItemService(repo, nil)
		item := createTestItem(t)

		repo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		repo.On("Save", mock.Anything, item).Return(nil)

		resp, err := service.LinkBaseUnit(context.Background(), item.ID, LinkBaseUnitRequest{
			BaseUom: "bottle",
			Factor:  dec(12),
		})

		require.NoError(t, err)
		require.NotNil(t, resp.BaseUom)
		assert.Equal(t, "bottle", *resp.BaseUom)
		require.NotNil(t, resp.AvgCostBase)
		require.NotNil(t, resp.SellingPriceBase)
		// 90/12 and 120/12
		assert.True(t, resp.AvgCostBase.Equal(dec(7.5)))
		assert.True(t, resp.SellingPriceBase.Equal(dec(10)))
	})

	t.Run("rejects non-positive factor", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewItemService(repo, nil)
		item := createTestItem(t)

		repo.On("FindByID", mock.Anything, item.ID).Return(item, nil)

		_, err := service.LinkBaseUnit(context.Background(), item.ID, LinkBaseUnitRequest{
			BaseUom: "bottle",
			Factor:  decimal.Zero,
		})

		require.Error(t, err)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestItemService_UnlinkBaseUnit(t *testing.T) {
	repo := new(MockItemRepository)
	service := NewItemService(repo, nil)
	item := createTestItem(t)
	require.NoError(t, item.LinkBaseUnit("bottle", dec(12)))

	repo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
	repo.On("Save", mock.Anything, item).Return(nil)

	resp, err := service.UnlinkBaseUnit(context.Background(), item.ID)

	require.NoError(t, err)
	assert.Nil(t, resp.BaseUom)
	assert.Nil(t, resp.AvgCostBase)
	assert.Nil(t, resp.SellingPriceBase)
}

func TestItemService_Update(t *testing.T) {
	t.Run("repricing re-derives base rates", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewItemService(repo, nil)
		item := createTestItem(t)
		require.NoError(t, item.LinkBaseUnit("bottle", dec(12)))

		repo.On("FindByID", mock.Anything, item.ID).Return(item, nil)
		repo.On("Save", mock.Anything, item).Return(nil)

		resp, err := service.Update(context.Background(), item.ID, UpdateItemRequest{
			Name:         "Bottled Water 500ml",
			BrandID:      item.BrandID,
			GroupID:      item.GroupID,
			AvgCost:      dec(96),
			SellingPrice: dec(144),
		})

		require.NoError(t, err)
		require.NotNil(t, resp.AvgCostBase)
		// 96/12 and 144/12
		assert.True(t, resp.AvgCostBase.Equal(dec(8)))
		assert.True(t, resp.SellingPriceBase.Equal(dec(12)))
	})

	t.Run("propagates not found", func(t *testing.T) {
		repo := new(MockItemRepository)
		service := NewItemService(repo, nil)
		id := uuid.New()

		repo.On("FindByID", mock.Anything, id).Return(nil, shared.ErrNotFound)

		_, err := service.Update(context.Background(), id, UpdateItemRequest{Name: "x"})

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
