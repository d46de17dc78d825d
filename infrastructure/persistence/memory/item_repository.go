// Package memory provides an in-memory item repository with the same
// contract as the DynamoDB one, used for tests and local development.
package memory

import (
	"context"
	"sync"
	"time"

	"itemstore-backend/application/ports"
	"itemstore-backend/domain/item"
)

// ItemRepository is a thread-safe in-memory ports.ItemRepository.
type ItemRepository struct {
	mu    sync.RWMutex
	items map[string]item.Item
}

// NewItemRepository creates a new in-memory item repository
func NewItemRepository() *ItemRepository {
	return &ItemRepository{
		items: make(map[string]item.Item),
	}
}

// Save persists a new item unconditionally
func (r *ItemRepository) Save(_ context.Context, it *item.Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[it.ItemID] = *it
	return nil
}

// GetByID reads one item by its identifier
func (r *ItemRepository) GetByID(_ context.Context, itemID string) (*item.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	it, ok := r.items[itemID]
	if !ok {
		return nil, ports.ErrItemNotFound
	}
	copied := it
	return &copied, nil
}

// ListByOwner returns every item belonging to userID
func (r *ItemRepository) ListByOwner(_ context.Context, userID string) ([]item.Item, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := []item.Item{}
	for _, it := range r.items {
		if it.UserID == userID {
			items = append(items, it)
		}
	}
	return items, nil
}

// Update merges the supplied fields under the same ownership condition the
// DynamoDB repository enforces.
func (r *ItemRepository) Update(_ context.Context, itemID, ownerID string, changes item.Changes, updatedAt time.Time) (*item.Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[itemID]
	if !ok || it.UserID != ownerID {
		return nil, ports.ErrConditionFailed
	}

	it.Apply(changes, updatedAt)
	r.items[itemID] = it

	copied := it
	return &copied, nil
}

// Delete removes the item under the ownership condition
func (r *ItemRepository) Delete(_ context.Context, itemID, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	it, ok := r.items[itemID]
	if !ok || it.UserID != ownerID {
		return ports.ErrConditionFailed
	}

	delete(r.items, it.ItemID)
	return nil
}
