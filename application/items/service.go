// Package items implements the five item operations. Each one is the same
// composition: validate, call the repository, shape the result.
package items

import (
	"context"
	"errors"
	"time"

	"itemstore-backend/application/ports"
	"itemstore-backend/domain/item"
	apperrors "itemstore-backend/pkg/errors"
	"itemstore-backend/pkg/utils"

	"go.uber.org/zap"
)

// CreateInput carries the fields of a create request. All are required.
type CreateInput struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description" validate:"required"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category" validate:"required"`
}

// UpdateInput carries a partial update. Absent fields keep stored values.
type UpdateInput struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
}

func (in UpdateInput) changes() item.Changes {
	return item.Changes{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Category:    in.Category,
	}
}

// DeleteResult is the confirmation payload returned by Delete.
type DeleteResult struct {
	Message string `json:"message"`
	ItemID  string `json:"itemId"`
}

// Service orchestrates the item operations against the repository.
type Service struct {
	repo      ports.ItemRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewService creates a new item service
func NewService(repo ports.ItemRepository, publisher ports.EventPublisher, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// Create stores a new item tagged with the caller's identity.
func (s *Service) Create(ctx context.Context, userID string, in CreateInput) (*item.Item, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, apperrors.NewValidationError(err.Error())
	}

	it, err := item.New(userID, in.Name, in.Description, in.Price, in.Category)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, it); err != nil {
		s.logger.Error("Failed to save item",
			zap.String("itemID", it.ItemID),
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("Failed to create item").WithCause(err)
	}

	s.publish(ctx, item.ItemCreated{Item: *it, OccurredAt: it.CreatedAt})

	return it, nil
}

// Get reads one item; the caller must own it.
func (s *Service) Get(ctx context.Context, userID, itemID string) (*item.Item, error) {
	it, err := s.fetchOwned(ctx, userID, itemID)
	if err != nil {
		return nil, err
	}
	return it, nil
}

// List returns every item belonging to the caller, never nil.
func (s *Service) List(ctx context.Context, userID string) ([]item.Item, error) {
	items, err := s.repo.ListByOwner(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list items",
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("Failed to list items").WithCause(err)
	}
	if items == nil {
		items = []item.Item{}
	}
	return items, nil
}

// Update merges the supplied fields into an owned item and refreshes
// updatedAt. The write carries an ownership condition, so a concurrent owner
// change between the read and the write cannot slip through; a rejected
// condition is re-read once to distinguish a vanished item from a hijacked one.
func (s *Service) Update(ctx context.Context, userID, itemID string, in UpdateInput) (*item.Item, error) {
	changes := in.changes()
	if err := changes.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.fetchOwned(ctx, userID, itemID); err != nil {
		return nil, err
	}

	updated, err := s.repo.Update(ctx, itemID, userID, changes, time.Now().UTC())
	if err != nil {
		if errors.Is(err, ports.ErrConditionFailed) {
			return nil, s.reclassifyConditionFailure(ctx, userID, itemID)
		}
		s.logger.Error("Failed to update item",
			zap.String("itemID", itemID),
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("Failed to update item").WithCause(err)
	}

	s.publish(ctx, item.ItemUpdated{Item: *updated, OccurredAt: updated.UpdatedAt})

	return updated, nil
}

// Delete removes an owned item and returns a confirmation payload.
func (s *Service) Delete(ctx context.Context, userID, itemID string) (*DeleteResult, error) {
	if _, err := s.fetchOwned(ctx, userID, itemID); err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, itemID, userID); err != nil {
		if errors.Is(err, ports.ErrConditionFailed) {
			return nil, s.reclassifyConditionFailure(ctx, userID, itemID)
		}
		s.logger.Error("Failed to delete item",
			zap.String("itemID", itemID),
			zap.String("userID", userID),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("Failed to delete item").WithCause(err)
	}

	s.publish(ctx, item.ItemDeleted{ItemID: itemID, UserID: userID, OccurredAt: time.Now().UTC()})

	return &DeleteResult{
		Message: "Item deleted successfully",
		ItemID:  itemID,
	}, nil
}

// fetchOwned reads an item and enforces the ownership check shared by
// get/update/delete.
func (s *Service) fetchOwned(ctx context.Context, userID, itemID string) (*item.Item, error) {
	if itemID == "" {
		return nil, apperrors.NewValidationError("Item ID is required")
	}

	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, ports.ErrItemNotFound) {
			return nil, apperrors.NewNotFoundError("Item")
		}
		s.logger.Error("Failed to read item",
			zap.String("itemID", itemID),
			zap.Error(err),
		)
		return nil, apperrors.NewInternalError("Failed to read item").WithCause(err)
	}

	if !it.OwnedBy(userID) {
		return nil, apperrors.NewForbiddenError("Access denied to this item")
	}

	return it, nil
}

// reclassifyConditionFailure maps a rejected conditional write back onto the
// NotFound/Forbidden taxonomy by re-reading the current state.
func (s *Service) reclassifyConditionFailure(ctx context.Context, userID, itemID string) error {
	it, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, ports.ErrItemNotFound) {
			return apperrors.NewNotFoundError("Item")
		}
		return apperrors.NewInternalError("Failed to read item").WithCause(err)
	}
	if !it.OwnedBy(userID) {
		return apperrors.NewForbiddenError("Access denied to this item")
	}
	return apperrors.NewInternalError("Conditional write failed")
}

func (s *Service) publish(ctx context.Context, event item.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish item event",
			zap.String("eventType", event.EventType()),
			zap.String("itemID", event.AggregateID()),
			zap.Error(err),
		)
	}
}
