// Package item holds the core persisted resource of the system: an item
// owned by exactly one principal.
package item

import (
	"time"

	apperrors "itemstore-backend/pkg/errors"

	"github.com/google/uuid"
)

// Item is the persisted resource. ItemID and UserID are immutable after
// creation; UpdatedAt never precedes CreatedAt.
type Item struct {
	ItemID      string    `json:"itemId"`
	UserID      string    `json:"userId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// New creates an item owned by userID with a generated identifier and both
// timestamps stamped equal.
func New(userID, name, description string, price float64, category string) (*Item, error) {
	if userID == "" {
		return nil, apperrors.NewValidationError("owner is required")
	}
	if name == "" || description == "" || category == "" {
		return nil, apperrors.NewValidationError("All fields are required")
	}
	if price <= 0 {
		return nil, apperrors.NewValidationError("Price must be greater than 0")
	}

	now := time.Now().UTC()
	return &Item{
		ItemID:      uuid.New().String(),
		UserID:      userID,
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// OwnedBy reports whether the item belongs to the given principal.
func (i *Item) OwnedBy(userID string) bool {
	return i.UserID == userID
}

// Changes describes a partial update. Nil fields keep their stored values.
type Changes struct {
	Name        *string
	Description *string
	Price       *float64
	Category    *string
}

// Empty reports whether the change set supplies no fields at all.
func (c Changes) Empty() bool {
	return c.Name == nil && c.Description == nil && c.Price == nil && c.Category == nil
}

// Validate checks the supplied fields against the item invariants.
func (c Changes) Validate() error {
	if c.Empty() {
		return apperrors.NewValidationError("At least one field must be provided for update")
	}
	if c.Price != nil && *c.Price <= 0 {
		return apperrors.NewValidationError("Price must be greater than 0")
	}
	if c.Name != nil && *c.Name == "" {
		return apperrors.NewValidationError("name must not be empty")
	}
	if c.Description != nil && *c.Description == "" {
		return apperrors.NewValidationError("description must not be empty")
	}
	if c.Category != nil && *c.Category == "" {
		return apperrors.NewValidationError("category must not be empty")
	}
	return nil
}

// Apply merges the supplied fields into the item and refreshes UpdatedAt
// unconditionally, independent of which fields changed.
func (i *Item) Apply(c Changes, now time.Time) {
	if c.Name != nil {
		i.Name = *c.Name
	}
	if c.Description != nil {
		i.Description = *c.Description
	}
	if c.Price != nil {
		i.Price = *c.Price
	}
	if c.Category != nil {
		i.Category = *c.Category
	}
	i.UpdatedAt = now.UTC()
}
