package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/partner"
	"github.com/wholesale/backend/internal/domain/shared"
	"github.com/wholesale/backend/internal/domain/shared/valueobject"
)

// RetailerService handles retailer business operations
type RetailerService struct {
	retailerRepo partner.RetailerRepository
	priorityRepo partner.PriorityRepository
	access       AccessResolver
}

// NewRetailerService creates a new RetailerService
func NewRetailerService(retailerRepo partner.RetailerRepository, priorityRepo partner.PriorityRepository, access AccessResolver) *RetailerService {
	return &RetailerService{
		retailerRepo: retailerRepo,
		priorityRepo: priorityRepo,
		access:       access,
	}
}

// Create registers a new retailer. Phone numbers are normalized before
// the uniqueness check so "+91 98765 43210" and "9876543210" collide.
func (s *RetailerService) Create(ctx context.Context, req CreateRetailerRequest) (*RetailerResponse, error) {
	retailer, err := partner.NewRetailer(req.Phone, req.BusinessName)
	if err != nil {
		return nil, err
	}

	exists, err := s.retailerRepo.ExistsByPhone(ctx, retailer.Phone)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("RETAILER_EXISTS", "A retailer with this phone number already exists")
	}

	if req.ContactPerson != "" || req.Email != "" {
		if err := retailer.UpdateProfile(req.BusinessName, req.ContactPerson, req.Email); err != nil {
			return nil, err
		}
	}
	if req.GSTNumber != "" {
		if err := retailer.SetGSTNumber(req.GSTNumber); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		address, err := valueobject.NewAddress(req.Address.Street, req.Address.City, req.Address.State, req.Address.Pincode)
		if err != nil {
			return nil, err
		}
		retailer.SetAddress(address)
	}

	// New retailers hold no tiers, so they start with general access only
	if err := s.refreshAccess(ctx, retailer); err != nil {
		return nil, err
	}

	if err := s.retailerRepo.Save(ctx, retailer); err != nil {
		return nil, err
	}

	response := ToRetailerResponse(retailer)
	return &response, nil
}

// GetByID retrieves a retailer by ID
func (s *RetailerService) GetByID(ctx context.Context, id uuid.UUID) (*RetailerResponse, error) {
	retailer, err := s.retailerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToRetailerResponse(retailer)
	return &response, nil
}

// GetByPhone retrieves a retailer by normalized phone number
func (s *RetailerService) GetByPhone(ctx context.Context, phone string) (*RetailerResponse, error) {
	normalized, err := partner.NormalizePhone(phone)
	if err != nil {
		return nil, err
	}
	retailer, err := s.retailerRepo.FindByPhone(ctx, normalized)
	if err != nil {
		return nil, err
	}
	response := ToRetailerResponse(retailer)
	return &response, nil
}

// List retrieves retailers with filtering and pagination
func (s *RetailerService) List(ctx context.Context, filter RetailerListFilter) ([]RetailerResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.DefaultFilter()
	domainFilter.Page = filter.Page
	domainFilter.PageSize = filter.PageSize
	domainFilter.Search = filter.Keyword
	if filter.ActiveOnly {
		domainFilter.Filters["is_active"] = true
	}

	var retailers []partner.Retailer
	var err error
	if filter.PriorityCode != "" {
		retailers, err = s.retailerRepo.FindByPriorityCode(ctx, filter.PriorityCode)
	} else {
		retailers, err = s.retailerRepo.FindAll(ctx, domainFilter)
	}
	if err != nil {
		return nil, 0, err
	}

	total, err := s.retailerRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]RetailerResponse, 0, len(retailers))
	for i := range retailers {
		responses = append(responses, ToRetailerResponse(&retailers[i]))
	}
	return responses, total, nil
}

// Update updates a retailer's profile
func (s *RetailerService) Update(ctx context.Context, id uuid.UUID, req UpdateRetailerRequest) (*RetailerResponse, error) {
	retailer, err := s.retailerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	businessName := retailer.BusinessName
	if req.BusinessName != nil {
		businessName = *req.BusinessName
	}
	contactPerson := retailer.ContactPerson
	if req.ContactPerson != nil {
		contactPerson = *req.ContactPerson
	}
	email := retailer.Email
	if req.Email != nil {
		email = *req.Email
	}
	if err := retailer.UpdateProfile(businessName, contactPerson, email); err != nil {
		return nil, err
	}

	if req.GSTNumber != nil {
		if err := retailer.SetGSTNumber(*req.GSTNumber); err != nil {
			return nil, err
		}
	}
	if req.Address != nil {
		address, err := valueobject.NewAddress(req.Address.Street, req.Address.City, req.Address.State, req.Address.Pincode)
		if err != nil {
			return nil, err
		}
		retailer.SetAddress(address)
	}

	if err := s.retailerRepo.Save(ctx, retailer); err != nil {
		return nil, err
	}

	response := ToRetailerResponse(retailer)
	return &response, nil
}

// SetPriorities replaces a retailer's full tier membership by hand,
// outside the sheet sync, and recomputes catalog access
func (s *RetailerService) SetPriorities(ctx context.Context, id uuid.UUID, req SetPrioritiesRequest) (*RetailerResponse, error) {
	retailer, err := s.retailerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	for _, code := range req.PriorityCodes {
		if _, err := s.priorityRepo.FindByCode(ctx, code); err != nil {
			return nil, err
		}
	}

	retailer.ReplacePriorities(req.PriorityCodes...)
	if err := s.refreshAccess(ctx, retailer); err != nil {
		return nil, err
	}

	if err := s.retailerRepo.Save(ctx, retailer); err != nil {
		return nil, err
	}

	response := ToRetailerResponse(retailer)
	return &response, nil
}

// RefreshAccess recomputes a single retailer's accessible catalog set.
// Used after catalog access levels change.
func (s *RetailerService) RefreshAccess(ctx context.Context, id uuid.UUID) (*RetailerResponse, error) {
	retailer, err := s.retailerRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.refreshAccess(ctx, retailer); err != nil {
		return nil, err
	}
	if err := s.retailerRepo.Save(ctx, retailer); err != nil {
		return nil, err
	}
	response := ToRetailerResponse(retailer)
	return &response, nil
}

// RefreshAllAccess recomputes access for every active retailer. Called
// after a catalog moves between access levels.
func (s *RetailerService) RefreshAllAccess(ctx context.Context) (int, error) {
	retailers, err := s.retailerRepo.FindActive(ctx)
	if err != nil {
		return 0, err
	}
	for i := range retailers {
		retailer := &retailers[i]
		if err := s.refreshAccess(ctx, retailer); err != nil {
			return i, err
		}
		if err := s.retailerRepo.Save(ctx, retailer); err != nil {
			return i, err
		}
	}
	return len(retailers), nil
}

// Activate reactivates a retailer
func (s *RetailerService) Activate(ctx context.Context, id uuid.UUID) error {
	retailer, err := s.retailerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	retailer.Activate()
	return s.retailerRepo.Save(ctx, retailer)
}

// Deactivate deactivates a retailer; their catalog access goes dark
// immediately because CanViewCatalog checks the active flag
func (s *RetailerService) Deactivate(ctx context.Context, id uuid.UUID) error {
	retailer, err := s.retailerRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	retailer.Deactivate()
	s.access.InvalidateRetailer(ctx, retailer.ID)
	return s.retailerRepo.Save(ctx, retailer)
}

func (s *RetailerService) refreshAccess(ctx context.Context, retailer *partner.Retailer) error {
	ids, err := s.access.ResolveForPriorities(ctx, retailer.PriorityCodes)
	if err != nil {
		return err
	}
	retailer.SetAccessibleCatalogs(ids)
	s.access.InvalidateRetailer(ctx, retailer.ID)
	return nil
}
