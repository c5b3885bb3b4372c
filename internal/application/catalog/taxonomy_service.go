package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/catalog"
	"github.com/retailops/backoffice/internal/domain/shared"
)

// TaxonomyService maintains brands and product groups
type TaxonomyService struct {
	brandRepo catalog.BrandRepository
	groupRepo catalog.ProductGroupRepository
}

// NewTaxonomyService creates a new TaxonomyService
func NewTaxonomyService(brandRepo catalog.BrandRepository, groupRepo catalog.ProductGroupRepository) *TaxonomyService {
	return &TaxonomyService{
		brandRepo: brandRepo,
		groupRepo: groupRepo,
	}
}

// ===================== Brands =====================

// ListBrands retrieves all brands matching the filter
func (s *TaxonomyService) ListBrands(ctx context.Context, filter ListFilter) ([]BrandResponse, error) {
	brands, err := s.brandRepo.FindAll(ctx, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]BrandResponse, len(brands))
	for i := range brands {
		responses[i] = ToBrandResponse(&brands[i])
	}
	return responses, nil
}

// CreateBrand creates a new brand
func (s *TaxonomyService) CreateBrand(ctx context.Context, req CreateBrandRequest) (*BrandResponse, error) {
	exists, err := s.brandRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Brand code is already in use")
	}

	brand, err := catalog.NewBrand(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// RenameBrand renames a brand
func (s *TaxonomyService) RenameBrand(ctx context.Context, id uuid.UUID, req RenameRequest) (*BrandResponse, error) {
	brand, err := s.brandRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := brand.Rename(req.Name); err != nil {
		return nil, err
	}

	if err := s.brandRepo.Save(ctx, brand); err != nil {
		return nil, err
	}

	response := ToBrandResponse(brand)
	return &response, nil
}

// DeleteBrand removes a brand
func (s *TaxonomyService) DeleteBrand(ctx context.Context, id uuid.UUID) error {
	if _, err := s.brandRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.brandRepo.Delete(ctx, id)
}

// ===================== Product Groups =====================

// ListProductGroups retrieves all product groups matching the filter
func (s *TaxonomyService) ListProductGroups(ctx context.Context, filter ListFilter) ([]ProductGroupResponse, error) {
	groups, err := s.groupRepo.FindAll(ctx, toDomainFilter(filter))
	if err != nil {
		return nil, err
	}

	responses := make([]ProductGroupResponse, len(groups))
	for i := range groups {
		responses[i] = ToProductGroupResponse(&groups[i])
	}
	return responses, nil
}

// CreateProductGroup creates a new product group
func (s *TaxonomyService) CreateProductGroup(ctx context.Context, req CreateProductGroupRequest) (*ProductGroupResponse, error) {
	exists, err := s.groupRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product group code is already in use")
	}

	group, err := catalog.NewProductGroup(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	response := ToProductGroupResponse(group)
	return &response, nil
}

// RenameProductGroup renames a product group
func (s *TaxonomyService) RenameProductGroup(ctx context.Context, id uuid.UUID, req RenameRequest) (*ProductGroupResponse, error) {
	group, err := s.groupRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := group.Rename(req.Name); err != nil {
		return nil, err
	}

	if err := s.groupRepo.Save(ctx, group); err != nil {
		return nil, err
	}

	response := ToProductGroupResponse(group)
	return &response, nil
}

// DeleteProductGroup removes a product group
func (s *TaxonomyService) DeleteProductGroup(ctx context.Context, id uuid.UUID) error {
	if _, err := s.groupRepo.FindByID(ctx, id); err != nil {
		return err
	}
	return s.groupRepo.Delete(ctx, id)
}
