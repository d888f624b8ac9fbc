package cache

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

type memoryEntry struct {
	ids       []uuid.UUID
	expiresAt time.Time
}

// MemoryAccessCache is a process-local access cache used in tests and
// single-node deployments without Redis.
type MemoryAccessCache struct {
	mu      sync.RWMutex
	entries map[uuid.UUID]memoryEntry
	ttl     time.Duration
}

// NewMemoryAccessCache creates a MemoryAccessCache. A zero ttl means
// entries never expire on their own.
func NewMemoryAccessCache(ttl time.Duration) *MemoryAccessCache {
	return &MemoryAccessCache{
		entries: make(map[uuid.UUID]memoryEntry),
		ttl:     ttl,
	}
}

// GetRetailerCatalogs returns the cached catalog set for a retailer
func (c *MemoryAccessCache) GetRetailerCatalogs(_ context.Context, retailerID uuid.UUID) ([]uuid.UUID, bool) {
	c.mu.RLock()
	entry, ok := c.entries[retailerID]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.InvalidateRetailer(context.Background(), retailerID)
		return nil, false
	}
	out := make([]uuid.UUID, len(entry.ids))
	copy(out, entry.ids)
	return out, true
}

// SetRetailerCatalogs stores the catalog set for a retailer
func (c *MemoryAccessCache) SetRetailerCatalogs(_ context.Context, retailerID uuid.UUID, catalogIDs []uuid.UUID) {
	ids := make([]uuid.UUID, len(catalogIDs))
	copy(ids, catalogIDs)

	entry := memoryEntry{ids: ids}
	if c.ttl > 0 {
		entry.expiresAt = time.Now().Add(c.ttl)
	}

	c.mu.Lock()
	c.entries[retailerID] = entry
	c.mu.Unlock()
}

// InvalidateRetailer drops one retailer's entry
func (c *MemoryAccessCache) InvalidateRetailer(_ context.Context, retailerID uuid.UUID) {
	c.mu.Lock()
	delete(c.entries, retailerID)
	c.mu.Unlock()
}

// InvalidateAll drops every entry
func (c *MemoryAccessCache) InvalidateAll(_ context.Context) {
	c.mu.Lock()
	c.entries = make(map[uuid.UUID]memoryEntry)
	c.mu.Unlock()
}
