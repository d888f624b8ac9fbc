package partner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wholesale/backend/internal/domain/partner"
	"github.com/wholesale/backend/internal/domain/shared"
	"github.com/wholesale/backend/internal/domain/shared/valueobject"
	"github.com/wholesale/backend/internal/infrastructure/sheet"
)

// SyncService pulls the external directory sheets and reconciles the
// retailer table against them. Each tier sheet wholly owns its tier's
// membership: a listed retailer's priority set becomes exactly that
// tier, and retailers absent from the sheet lose it. Rows that cannot
// be processed are skipped and reported; a tier whose sheet cannot be
// fetched at all is left untouched for the run.
type SyncService struct {
	retailerRepo partner.RetailerRepository
	priorityRepo partner.PriorityRepository
	source       sheet.Source
	access       AccessResolver
}

// NewSyncService creates a new SyncService
func NewSyncService(retailerRepo partner.RetailerRepository, priorityRepo partner.PriorityRepository, source sheet.Source, access AccessResolver) *SyncService {
	return &SyncService{
		retailerRepo: retailerRepo,
		priorityRepo: priorityRepo,
		source:       source,
		access:       access,
	}
}

// Sync runs one full directory sync across all active tiers
func (s *SyncService) Sync(ctx context.Context) (*SyncReport, error) {
	started := time.Now()

	priorities, err := s.priorityRepo.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	report := &SyncReport{StartedAt: started}
	if len(priorities) == 0 {
		report.FinishedAt = time.Now()
		return report, nil
	}

	codes := make([]string, 0, len(priorities))
	for i := range priorities {
		codes = append(codes, priorities[i].Code)
	}

	sheets, sourceErrors, err := s.source.Fetch(ctx, codes)
	if err != nil {
		return nil, shared.NewDomainError("EXTERNAL_SOURCE_ERROR", fmt.Sprintf("Directory source unavailable: %v", err))
	}
	report.SourceErrors = sourceErrors

	// Tiers are processed strictly in sequence. A listed retailer's
	// priority set is overwritten with the current tier alone: each
	// sheet is the sole owner of its tier's membership, so a phone
	// listed in R1's sheet and then R2's finishes the run holding only
	// R2. A tier whose sheet failed to fetch is absent from sheets and
	// keeps all its members.
	for i := range sheets {
		sh := &sheets[i]
		tr := TierSyncReport{PriorityCode: sh.PriorityCode, RowErrors: sh.RowErrors}

		now := time.Now()
		seen := make(map[string]bool, len(sh.Rows))
		for idx, row := range sh.Rows {
			phone, err := partner.NormalizePhone(row.Phone)
			if err != nil {
				tr.RowErrors = append(tr.RowErrors, sheet.NewRowError(idx+1, "phone", sheet.ErrCodeSheetBadPhone,
					fmt.Sprintf("%q: %v", row.Phone, err)))
				continue
			}
			if seen[phone] {
				tr.RowErrors = append(tr.RowErrors, sheet.NewRowError(idx+1, "phone", sheet.ErrCodeSheetDuplicateRow,
					fmt.Sprintf("%q appears more than once", row.Phone)))
				continue
			}
			seen[phone] = true

			retailer, err := s.retailerRepo.FindByPhone(ctx, phone)
			created := false
			switch {
			case err == nil:
			case errors.Is(err, shared.ErrNotFound):
				retailer, err = partner.NewRetailer(phone, row.BusinessName)
				if err != nil {
					// Incomplete source entry, dropped like a blank row
					continue
				}
				created = true
			default:
				return nil, err
			}
			tr.RowsSeen++

			s.applyRow(retailer, row)
			retailer.ReplacePriorities(sh.PriorityCode)
			if err := s.refreshAccess(ctx, retailer); err != nil {
				return nil, err
			}
			retailer.MarkSynced(row.RowID, now)

			if err := s.retailerRepo.Save(ctx, retailer); err != nil {
				return nil, err
			}
			if created {
				tr.Created++
			} else {
				tr.Updated++
			}
		}

		// Retailers holding this tier but absent from its sheet lose it
		holders, err := s.retailerRepo.FindByPriorityCode(ctx, sh.PriorityCode)
		if err != nil {
			return nil, err
		}
		for j := range holders {
			holder := &holders[j]
			if seen[holder.Phone] {
				continue
			}

			kept := make([]string, 0, len(holder.PriorityCodes))
			for _, c := range holder.PriorityCodes {
				if c != sh.PriorityCode {
					kept = append(kept, c)
				}
			}
			holder.ReplacePriorities(kept...)
			if err := s.refreshAccess(ctx, holder); err != nil {
				return nil, err
			}
			if err := s.retailerRepo.Save(ctx, holder); err != nil {
				return nil, err
			}
			tr.Removed++
		}

		report.Tiers = append(report.Tiers, tr)
		report.TotalCreated += tr.Created
		report.TotalUpdated += tr.Updated
		report.TotalRemoved += tr.Removed
		report.TotalRowsSeen += tr.RowsSeen
	}
	report.FinishedAt = time.Now()

	return report, nil
}

// applyRow copies sheet profile data onto the retailer. Individually
// invalid optional fields are dropped rather than failing the row.
func (s *SyncService) applyRow(retailer *partner.Retailer, row sheet.Row) {
	businessName := row.BusinessName
	if businessName == "" {
		businessName = retailer.BusinessName
	}
	contactPerson := retailer.ContactPerson
	if row.ContactPerson != "" {
		contactPerson = row.ContactPerson
	}
	email := retailer.Email
	if row.Email != "" {
		email = row.Email
	}
	_ = retailer.UpdateProfile(businessName, contactPerson, email)

	if row.GSTNumber != "" {
		_ = retailer.SetGSTNumber(row.GSTNumber)
	}
	if row.City != "" || row.Pincode != "" || row.Street != "" || row.State != "" {
		if address, err := valueobject.NewAddress(row.Street, row.City, row.State, row.Pincode); err == nil {
			retailer.SetAddress(address)
		}
	}
}

func (s *SyncService) refreshAccess(ctx context.Context, retailer *partner.Retailer) error {
	ids, err := s.access.ResolveForPriorities(ctx, retailer.PriorityCodes)
	if err != nil {
		return err
	}
	retailer.SetAccessibleCatalogs(ids)
	s.access.InvalidateRetailer(ctx, retailer.ID)
	return nil
}

