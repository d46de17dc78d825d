// Package ports defines the interfaces the application layer depends on.
// Infrastructure supplies the implementations; tests supply fakes.
package ports

import (
	"context"
	"errors"
	"time"

	"itemstore-backend/domain/item"
)

var (
	// ErrItemNotFound is returned when no item with the given identifier exists.
	ErrItemNotFound = errors.New("item not found")

	// ErrConditionFailed is returned when a conditional write is rejected,
	// meaning the item vanished or changed owner between the read and the write.
	ErrConditionFailed = errors.New("conditional write failed")
)

// ItemRepository is the persistence contract for items: single-key
// get/put/update/delete plus an owner-scoped secondary-index query.
type ItemRepository interface {
	// Save persists a new item unconditionally.
	Save(ctx context.Context, it *item.Item) error

	// GetByID reads one item by identifier. Returns ErrItemNotFound when absent.
	GetByID(ctx context.Context, itemID string) (*item.Item, error)

	// ListByOwner returns every item belonging to userID, empty slice when none.
	ListByOwner(ctx context.Context, userID string) ([]item.Item, error)

	// Update merges only the supplied fields into the stored item and sets
	// updatedAt, conditioned on the stored owner still being ownerID. Returns
	// the full post-update item, or ErrConditionFailed when the condition is
	// rejected.
	Update(ctx context.Context, itemID, ownerID string, changes item.Changes, updatedAt time.Time) (*item.Item, error)

	// Delete removes the item, conditioned on the stored owner still being
	// ownerID. Returns ErrConditionFailed when the condition is rejected.
	Delete(ctx context.Context, itemID, ownerID string) error
}

// EventPublisher publishes item lifecycle events to the event bus.
// Publishing is best-effort; a failed publish never fails the operation.
type EventPublisher interface {
	Publish(ctx context.Context, event item.Event) error
}
