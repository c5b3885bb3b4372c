package masterdata

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailops/backoffice/internal/domain/masterdata"
	"github.com/retailops/backoffice/internal/domain/shared"
)

// MasterDataService maintains branches and sales representatives
type MasterDataService struct {
	branchRepo   masterdata.BranchRepository
	salesRepRepo masterdata.SalesRepRepository
}

// NewMasterDataService creates a new MasterDataService
func NewMasterDataService(branchRepo masterdata.BranchRepository, salesRepRepo masterdata.SalesRepRepository) *MasterDataService {
	return &MasterDataService{
		branchRepo:   branchRepo,
		salesRepRepo: salesRepRepo,
	}
}

// ===================== Branches =====================

// ListBranches retrieves all branches
func (s *MasterDataService) ListBranches(ctx context.Context) ([]BranchResponse, error) {
	branches, err := s.branchRepo.FindAll(ctx, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}

	responses := make([]BranchResponse, len(branches))
	for i := range branches {
		responses[i] = ToBranchResponse(&branches[i])
	}
	return responses, nil
}

// CreateBranch creates a new branch
func (s *MasterDataService) CreateBranch(ctx context.Context, req CreateBranchRequest) (*BranchResponse, error) {
	exists, err := s.branchRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Branch code is already in use")
	}

	branch, err := masterdata.NewBranch(req.Code, req.Name)
	if err != nil {
		return nil, err
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	response := ToBranchResponse(branch)
	return &response, nil
}

// RenameBranch renames a branch
func (s *MasterDataService) RenameBranch(ctx context.Context, id uuid.UUID, req RenameRequest) (*BranchResponse, error) {
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := branch.Rename(req.Name); err != nil {
		return nil, err
	}

	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return nil, err
	}

	response := ToBranchResponse(branch)
	return &response, nil
}

// ===================== Sales Representatives =====================

// ListSalesReps retrieves sales reps, optionally narrowed to one branch
func (s *MasterDataService) ListSalesReps(ctx context.Context, branchID *uuid.UUID) ([]SalesRepResponse, error) {
	var (
		reps []masterdata.SalesRep
		err  error
	)
	if branchID != nil && *branchID != uuid.Nil {
		reps, err = s.salesRepRepo.FindByBranch(ctx, *branchID)
	} else {
		reps, err = s.salesRepRepo.FindAll(ctx, shared.DefaultFilter())
	}
	if err != nil {
		return nil, err
	}

	responses := make([]SalesRepResponse, len(reps))
	for i := range reps {
		responses[i] = ToSalesRepResponse(&reps[i])
	}
	return responses, nil
}

// CreateSalesRep creates a new sales representative
func (s *MasterDataService) CreateSalesRep(ctx context.Context, req CreateSalesRepRequest) (*SalesRepResponse, error) {
	exists, err := s.salesRepRepo.ExistsByCode(ctx, req.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Sales rep code is already in use")
	}

	if _, err := s.branchRepo.FindByID(ctx, req.BranchID); err != nil {
		return nil, err
	}

	rep, err := masterdata.NewSalesRep(req.Code, req.Name, req.BranchID)
	if err != nil {
		return nil, err
	}

	if err := s.salesRepRepo.Save(ctx, rep); err != nil {
		return nil, err
	}

	response := ToSalesRepResponse(rep)
	return &response, nil
}
