package partner

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/wholesale/backend/internal/domain/partner"
	"github.com/wholesale/backend/internal/domain/shared"
	"github.com/wholesale/backend/internal/infrastructure/sheet"
)

type fakePriorityRepo struct {
	byCode map[string]*partner.Priority
}

func newFakePriorityRepo() *fakePriorityRepo {
	return &fakePriorityRepo{byCode: make(map[string]*partner.Priority)}
}

func (r *fakePriorityRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Priority, error) {
	for _, p := range r.byCode {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakePriorityRepo) FindByCode(_ context.Context, code string) (*partner.Priority, error) {
	if p, ok := r.byCode[strings.ToUpper(code)]; ok {
		return p, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakePriorityRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Priority, error) {
	out := make([]partner.Priority, 0, len(r.byCode))
	for _, p := range r.byCode {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakePriorityRepo) FindActive(_ context.Context) ([]partner.Priority, error) {
	var out []partner.Priority
	for _, p := range r.byCode {
		if p.IsActive {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *fakePriorityRepo) Save(_ context.Context, priority *partner.Priority) error {
	r.byCode[priority.Code] = priority
	return nil
}

func (r *fakePriorityRepo) Delete(_ context.Context, id uuid.UUID) error {
	for code, p := range r.byCode {
		if p.ID == id {
			delete(r.byCode, code)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakePriorityRepo) ExistsByCode(_ context.Context, code string) (bool, error) {
	_, ok := r.byCode[strings.ToUpper(code)]
	return ok, nil
}

func (r *fakePriorityRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byCode)), nil
}

type fakeRetailerRepo struct {
	byPhone map[string]*partner.Retailer
}

func newFakeRetailerRepo() *fakeRetailerRepo {
	return &fakeRetailerRepo{byPhone: make(map[string]*partner.Retailer)}
}

func (r *fakeRetailerRepo) FindByID(_ context.Context, id uuid.UUID) (*partner.Retailer, error) {
	for _, ret := range r.byPhone {
		if ret.ID == id {
			return ret, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeRetailerRepo) FindByPhone(_ context.Context, phone string) (*partner.Retailer, error) {
	if ret, ok := r.byPhone[phone]; ok {
		return ret, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeRetailerRepo) FindAll(_ context.Context, _ shared.Filter) ([]partner.Retailer, error) {
	out := make([]partner.Retailer, 0, len(r.byPhone))
	for _, ret := range r.byPhone {
		out = append(out, *ret)
	}
	return out, nil
}

func (r *fakeRetailerRepo) FindActive(_ context.Context) ([]partner.Retailer, error) {
	var out []partner.Retailer
	for _, ret := range r.byPhone {
		if ret.IsActive {
			out = append(out, *ret)
		}
	}
	return out, nil
}

func (r *fakeRetailerRepo) FindByPriorityCode(_ context.Context, code string) ([]partner.Retailer, error) {
	var out []partner.Retailer
	for _, ret := range r.byPhone {
		if ret.PriorityCodes.Contains(code) {
			out = append(out, *ret)
		}
	}
	return out, nil
}

func (r *fakeRetailerRepo) Save(_ context.Context, retailer *partner.Retailer) error {
	clone := *retailer
	r.byPhone[retailer.Phone] = &clone
	return nil
}

func (r *fakeRetailerRepo) Delete(_ context.Context, id uuid.UUID) error {
	for phone, ret := range r.byPhone {
		if ret.ID == id {
			delete(r.byPhone, phone)
			return nil
		}
	}
	return shared.ErrNotFound
}

func (r *fakeRetailerRepo) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	_, ok := r.byPhone[phone]
	return ok, nil
}

func (r *fakeRetailerRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byPhone)), nil
}

// fakeAccess resolves every tier membership to a fixed catalog per
// code plus one general catalog, and records invalidations
type fakeAccess struct {
	generalID    uuid.UUID
	byCode       map[string]uuid.UUID
	invalidated  []uuid.UUID
	resolveCalls int
}

func newFakeAccess() *fakeAccess {
	return &fakeAccess{
		generalID: uuid.New(),
		byCode:    make(map[string]uuid.UUID),
	}
}

func (a *fakeAccess) ResolveForPriorities(_ context.Context, codes []string) ([]uuid.UUID, error) {
	a.resolveCalls++
	out := []uuid.UUID{a.generalID}
	for _, code := range codes {
		if id, ok := a.byCode[code]; ok {
			out = append(out, id)
		}
	}
	return out, nil
}

func (a *fakeAccess) InvalidateRetailer(_ context.Context, retailerID uuid.UUID) {
	a.invalidated = append(a.invalidated, retailerID)
}

type fakeSource struct {
	sheets       []sheet.TierSheet
	sourceErrors []sheet.SourceError
	err          error
}

func (s *fakeSource) Fetch(_ context.Context, _ []string) ([]sheet.TierSheet, []sheet.SourceError, error) {
	return s.sheets, s.sourceErrors, s.err
}
