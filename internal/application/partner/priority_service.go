package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/partner"
	"github.com/wholesale/backend/internal/domain/shared"
)

// PriorityService handles priority tier business operations
type PriorityService struct {
	priorityRepo partner.PriorityRepository
	retailerRepo partner.RetailerRepository
	access       AccessResolver
}

// NewPriorityService creates a new PriorityService
func NewPriorityService(priorityRepo partner.PriorityRepository, retailerRepo partner.RetailerRepository, access AccessResolver) *PriorityService {
	return &PriorityService{
		priorityRepo: priorityRepo,
		retailerRepo: retailerRepo,
		access:       access,
	}
}

// Create creates a new priority tier
func (s *PriorityService) Create(ctx context.Context, req CreatePriorityRequest) (*PriorityResponse, error) {
	priority, err := partner.NewPriority(req.Code, req.Name, req.DiscountPercent)
	if err != nil {
		return nil, err
	}

	exists, err := s.priorityRepo.ExistsByCode(ctx, priority.Code)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("PRIORITY_EXISTS", "A priority tier with this code already exists")
	}

	if req.SortOrder != 0 {
		priority.SetSortOrder(req.SortOrder)
	}
	if req.Description != "" {
		priority.SetDescription(req.Description)
	}

	if err := s.priorityRepo.Save(ctx, priority); err != nil {
		return nil, err
	}

	response := ToPriorityResponse(priority)
	return &response, nil
}

// GetByCode retrieves a priority tier by code
func (s *PriorityService) GetByCode(ctx context.Context, code string) (*PriorityResponse, error) {
	priority, err := s.priorityRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	response := ToPriorityResponse(priority)
	return &response, nil
}

// List retrieves all priority tiers
func (s *PriorityService) List(ctx context.Context, activeOnly bool) ([]PriorityResponse, error) {
	var priorities []partner.Priority
	var err error
	if activeOnly {
		priorities, err = s.priorityRepo.FindActive(ctx)
	} else {
		priorities, err = s.priorityRepo.FindAll(ctx, shared.DefaultFilter())
	}
	if err != nil {
		return nil, err
	}

	responses := make([]PriorityResponse, 0, len(priorities))
	for i := range priorities {
		responses = append(responses, ToPriorityResponse(&priorities[i]))
	}
	return responses, nil
}

// Update updates a priority tier
func (s *PriorityService) Update(ctx context.Context, code string, req UpdatePriorityRequest) (*PriorityResponse, error) {
	priority, err := s.priorityRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	name := priority.Name
	if req.Name != nil {
		name = *req.Name
	}
	discount := priority.DiscountPercent
	if req.DiscountPercent != nil {
		discount = *req.DiscountPercent
	}
	if err := priority.Update(name, discount); err != nil {
		return nil, err
	}
	if req.SortOrder != nil {
		priority.SetSortOrder(*req.SortOrder)
	}
	if req.Description != nil {
		priority.SetDescription(*req.Description)
	}

	if err := s.priorityRepo.Save(ctx, priority); err != nil {
		return nil, err
	}

	response := ToPriorityResponse(priority)
	return &response, nil
}

// Activate reactivates a priority tier
func (s *PriorityService) Activate(ctx context.Context, code string) error {
	priority, err := s.priorityRepo.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	priority.Activate()
	return s.priorityRepo.Save(ctx, priority)
}

// Remove removes a priority tier. Every retailer holding the tier is
// rewritten first, either moved to the reassignment target or simply
// stripped of the code; their catalog access is recomputed from what
// remains, and a retailer left without any tier is deactivated. A
// still-referenced tier without a reassignment target is deactivated
// instead of deleted so historic data keeps resolving.
func (s *PriorityService) Remove(ctx context.Context, code string, req RemovePriorityRequest) (*RemovePriorityResult, error) {
	priority, err := s.priorityRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if req.ReassignTo != "" {
		target, err := s.priorityRepo.FindByCode(ctx, req.ReassignTo)
		if err != nil {
			return nil, err
		}
		if !target.IsActive {
			return nil, shared.NewDomainError("PRIORITY_INACTIVE", "Cannot reassign retailers to an inactive tier")
		}
		if target.Code == priority.Code {
			return nil, shared.NewDomainError("INVALID_REASSIGNMENT", "Cannot reassign a tier to itself")
		}
	}

	holders, err := s.retailerRepo.FindByPriorityCode(ctx, priority.Code)
	if err != nil {
		return nil, err
	}

	for i := range holders {
		retailer := &holders[i]
		codes := make([]string, 0, len(retailer.PriorityCodes))
		for _, c := range retailer.PriorityCodes {
			if c != priority.Code {
				codes = append(codes, c)
			}
		}
		if req.ReassignTo != "" {
			codes = append(codes, req.ReassignTo)
		}
		retailer.ReplacePriorities(codes...)

		// A retailer whose only tier was the removed one must not stay
		// active with an empty membership
		if len(retailer.PriorityCodes) == 0 {
			retailer.Deactivate()
		}

		if err := s.refreshAccess(ctx, retailer); err != nil {
			return nil, err
		}
		if err := s.retailerRepo.Save(ctx, retailer); err != nil {
			return nil, err
		}
	}

	result := &RemovePriorityResult{
		RetailersAffected: len(holders),
		ReassignedTo:      req.ReassignTo,
	}

	if len(holders) > 0 && req.ReassignTo == "" {
		priority.Deactivate()
		if err := s.priorityRepo.Save(ctx, priority); err != nil {
			return nil, err
		}
		result.Deactivated = true
		return result, nil
	}

	if err := s.priorityRepo.Delete(ctx, priority.ID); err != nil {
		return nil, err
	}
	result.Deleted = true
	return result, nil
}

func (s *PriorityService) refreshAccess(ctx context.Context, retailer *partner.Retailer) error {
	ids, err := s.access.ResolveForPriorities(ctx, retailer.PriorityCodes)
	if err != nil {
		return err
	}
	retailer.SetAccessibleCatalogs(ids)
	s.access.InvalidateRetailer(ctx, retailer.ID)
	return nil
}

// AccessResolver recomputes the catalog set visible to a given tier
// membership and invalidates any cached per-retailer copy. Implemented
// by the catalog context.
type AccessResolver interface {
	ResolveForPriorities(ctx context.Context, priorityCodes []string) ([]uuid.UUID, error)
	InvalidateRetailer(ctx context.Context, retailerID uuid.UUID)
}
