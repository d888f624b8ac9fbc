package catalog

import (
	"sort"

	"github.com/google/uuid"
)

// ResolveAccessibleCatalogs computes the set of catalog IDs a retailer
// may view: every active catalog whose access level matches one of the
// retailer's priority codes, plus every active GENERAL catalog.
//
// The function is pure and total: it never fails, is independent of
// input order, and is idempotent, which makes repeated recomputation
// during directory sync safe. A retailer with no priorities receives
// exactly the GENERAL set.
func ResolveAccessibleCatalogs(priorityCodes []string, catalogs []Catalog) []uuid.UUID {
	codes := make(map[string]struct{}, len(priorityCodes))
	for _, code := range priorityCodes {
		codes[code] = struct{}{}
	}

	ids := make([]uuid.UUID, 0, len(catalogs))
	for i := range catalogs {
		c := &catalogs[i]
		if !c.IsActive {
			continue
		}
		if c.IsGeneral() {
			ids = append(ids, c.ID)
			continue
		}
		if _, ok := codes[c.AccessLevel]; ok {
			ids = append(ids, c.ID)
		}
	}

	// Deterministic ordering so repeated runs produce identical sets
	sort.Slice(ids, func(i, j int) bool {
		return ids[i].String() < ids[j].String()
	})

	return ids
}
