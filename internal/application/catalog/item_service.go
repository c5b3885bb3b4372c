package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/catalog"
	"github.com/retailops/backoffice/internal/domain/shared"
)

// ItemService provides application services for catalog item maintenance.
// Base-unit rates are always derived from the primary rates and the unit
// link factor; they can never be set directly.
type ItemService struct {
	itemRepo       catalog.ItemRepository
	eventPublisher shared.EventPublisher
}

// NewItemService creates a new ItemService
func NewItemService(itemRepo catalog.ItemRepository, eventPublisher shared.EventPublisher) *ItemService {
	return &ItemService{
		itemRepo:       itemRepo,
		eventPublisher: eventPublisher,
	}
}

// GetByID retrieves an item by ID
func (s *ItemService) GetByID(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// List retrieves a paginated item list
func (s *ItemService) List(ctx context.Context, filter ListFilter) (*shared.Paginated[ItemResponse], error) {
	domainFilter := toDomainFilter(filter)

	total, err := s.itemRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	items, err := s.itemRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}

	result := shared.NewPaginated(ToItemResponses(items), total, domainFilter.Page, domainFilter.PageSize)
	return &result, nil
}

// Create creates a new catalog item
func (s *ItemService) Create(ctx context.Context, req CreateItemRequest) (*ItemResponse, error) {
	exists, err := s.itemRepo.ExistsByItemCode(ctx, req.ItemCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Item code is already in use")
	}

	item, err := catalog.NewItem(req.ItemCode, req.Name, req.BrandID, req.GroupID, req.PrimaryUom, req.AvgCost, req.SellingPrice)
	if err != nil {
		return nil, err
	}
	if err := item.SetReorderLevel(req.ReorderLevel); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)

	response := ToItemResponse(item)
	return &response, nil
}

// Update updates an item's descriptive fields and pricing. A pricing change
// re-derives the base-unit rates from the active link factor.
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, req UpdateItemRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.Update(req.Name, req.BrandID, req.GroupID); err != nil {
		return nil, err
	}
	if err := item.SetPricing(req.AvgCost, req.SellingPrice); err != nil {
		return nil, err
	}
	if err := item.SetReorderLevel(req.ReorderLevel); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, item)

	response := ToItemResponse(item)
	return &response, nil
}

// LinkBaseUnit attaches a base unit to an item and derives its base rates
func (s *ItemService) LinkBaseUnit(ctx context.Context, id uuid.UUID, req LinkBaseUnitRequest) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := item.LinkBaseUnit(req.BaseUom, req.Factor); err != nil {
		return nil, err
	}

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// UnlinkBaseUnit removes an item's base unit and clears its base rates
func (s *ItemService) UnlinkBaseUnit(ctx context.Context, id uuid.UUID) (*ItemResponse, error) {
	item, err := s.itemRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.UnlinkBaseUnit()

	if err := s.itemRepo.Save(ctx, item); err != nil {
		return nil, err
	}

	response := ToItemResponse(item)
	return &response, nil
}

// Delete removes an item from the catalog
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.itemRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.itemRepo.Delete(ctx, id)
}

func (s *ItemService) publishEvents(ctx context.Context, item *catalog.Item) {
	if s.eventPublisher == nil {
		return
	}

	for _, event := range item.GetDomainEvents() {
		_ = s.eventPublisher.Publish(ctx, event)
	}
	item.ClearDomainEvents()
}

func toDomainFilter(filter ListFilter) shared.Filter {
	domainFilter := shared.DefaultFilter()
	if filter.Page > 0 {
		domainFilter.Page = filter.Page
	}
	if filter.PageSize > 0 {
		domainFilter.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		domainFilter.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		domainFilter.OrderDir = filter.OrderDir
	}
	domainFilter.Search = filter.Search
	return domainFilter
}
