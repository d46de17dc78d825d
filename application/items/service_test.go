package items

import (
	"context"
	"errors"
	"testing"
	"time"

	"itemstore-backend/domain/item"
	"itemstore-backend/infrastructure/persistence/memory"
	apperrors "itemstore-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	events []item.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event item.Event) error {
	p.events = append(p.events, event)
	return nil
}

func newTestService() (*Service, *memory.ItemRepository, *recordingPublisher) {
	repo := memory.NewItemRepository()
	publisher := &recordingPublisher{}
	return NewService(repo, publisher, zap.NewNop()), repo, publisher
}

func TestService_Create_Success(t *testing.T) {
	ctx := context.Background()
	svc, _, publisher := newTestService()

	created, err := svc.Create(ctx, "u1", CreateInput{
		Name:        "Pen",
		Description: "Blue ballpoint",
		Price:       2.50,
		Category:    "stationery",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ItemID)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "item.created", publisher.events[0].EventType())
	assert.Equal(t, created.ItemID, publisher.events[0].AggregateID())
}

func TestService_Create_NonPositivePrice(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Create(ctx, "u1", CreateInput{
		Name:        "Pen",
		Description: "Blue",
		Price:       0,
		Category:    "stationery",
	})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestService_Create_MissingFields(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Create(ctx, "u1", CreateInput{Name: "Pen", Price: 1})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestService_Get_Success(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Create(ctx, "u1", CreateInput{
		Name: "Pen", Description: "Blue", Price: 2.50, Category: "stationery",
	})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "u1", created.ItemID)

	require.NoError(t, err)
	assert.Equal(t, created.ItemID, got.ItemID)
	assert.Equal(t, "Pen", got.Name)
}

func TestService_Get_OtherOwnerForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Create(ctx, "u1", CreateInput{
		Name: "Pen", Description: "Blue", Price: 2.50, Category: "stationery",
	})
	require.NoError(t, err)

	_, err = svc.Get(ctx, "u2", created.ItemID)

	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))
	assert.Contains(t, err.Error(), "Access denied to this item")
}

func TestService_Get_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Get(ctx, "u1", "missing-id")

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
	assert.Contains(t, err.Error(), "Item not found")
}

func TestService_Get_MissingID(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Get(ctx, "u1", "")

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "Item ID is required")
}

func TestService_List_ScopedToOwner(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	for i := 0; i < 2; i++ {
		_, err := svc.Create(ctx, "u1", CreateInput{
			Name: "Pen", Description: "Blue", Price: 1, Category: "stationery",
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, "u2", CreateInput{
		Name: "Mug", Description: "Ceramic", Price: 5, Category: "kitchen",
	})
	require.NoError(t, err)

	listU1, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, listU1, 2)

	listU2, err := svc.List(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, listU2, 1)
}

func TestService_List_EmptyIsNotNil(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	list, err := svc.List(ctx, "nobody")

	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestService_Update_PartialMerge(t *testing.T) {
	ctx := context.Background()
	svc, _, publisher := newTestService()

	created, err := svc.Create(ctx, "u1", CreateInput{
		Name: "Pen", Description: "Blue ballpoint", Price: 2.50, Category: "stationery",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "u1", created.ItemID, UpdateInput{Price: floatPtr(3.00)})

	require.NoError(t, err)
	assert.Equal(t, 3.00, updated.Price)
	assert.Equal(t, "Pen", updated.Name)
	assert.Equal(t, "Blue ballpoint", updated.Description)
	assert.False(t, updated.UpdatedAt.Before(created.UpdatedAt))

	require.Len(t, publisher.events, 2)
	assert.Equal(t, "item.updated", publisher.events[1].EventType())
}

func TestService_Update_EmptyChangeSet(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Create(ctx, "u1", CreateInput{
		Name: "Pen", Description: "Blue", Price: 2.50, Category: "stationery",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "u1", created.ItemID, UpdateInput{})

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "At least one field must be provided for update")
}

func TestService_Update_OtherOwnerForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Create(ctx, "u1", CreateInput{
		Name: "Pen", Description: "Blue", Price: 2.50, Category: "stationery",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, "u2", created.ItemID, UpdateInput{Price: floatPtr(3)})

	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))

	// The stored item is untouched.
	got, err := svc.Get(ctx, "u1", created.ItemID)
	require.NoError(t, err)
	assert.Equal(t, 2.50, got.Price)
}

func TestService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	_, err := svc.Update(ctx, "u1", "missing-id", UpdateInput{Price: floatPtr(3)})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestService_Update_ItemVanishesBetweenReadAndWrite(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewItemRepository()
	svc := NewService(&vanishingRepo{ItemRepository: repo}, nil, zap.NewNop())

	it, err := item.New("u1", "Pen", "Blue", 2.50, "stationery")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, it))

	_, err = svc.Update(ctx, "u1", it.ItemID, UpdateInput{Price: floatPtr(3)})

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err), "a rejected condition on a vanished item maps to NotFound")
}

// vanishingRepo deletes the item right before the conditional write, forcing
// the condition-failure path without real concurrency.
type vanishingRepo struct {
	*memory.ItemRepository
}

func (r *vanishingRepo) Update(ctx context.Context, itemID, ownerID string, changes item.Changes, updatedAt time.Time) (*item.Item, error) {
	if err := r.ItemRepository.Delete(ctx, itemID, ownerID); err != nil {
		return nil, err
	}
	return r.ItemRepository.Update(ctx, itemID, ownerID, changes, updatedAt)
}

func TestService_Delete_Success(t *testing.T) {
	ctx := context.Background()
	svc, _, publisher := newTestService()

	created, err := svc.Create(ctx, "u1", CreateInput{
		Name: "Pen", Description: "Blue", Price: 2.50, Category: "stationery",
	})
	require.NoError(t, err)

	result, err := svc.Delete(ctx, "u1", created.ItemID)

	require.NoError(t, err)
	assert.Equal(t, "Item deleted successfully", result.Message)
	assert.Equal(t, created.ItemID, result.ItemID)

	require.Len(t, publisher.events, 2)
	assert.Equal(t, "item.deleted", publisher.events[1].EventType())
}

func TestService_Delete_SecondDeleteNotFound(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Create(ctx, "u1", CreateInput{
		Name: "Pen", Description: "Blue", Price: 2.50, Category: "stationery",
	})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "u1", created.ItemID)
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "u1", created.ItemID)
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestService_Delete_OtherOwnerForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	created, err := svc.Create(ctx, "u1", CreateInput{
		Name: "Pen", Description: "Blue", Price: 2.50, Category: "stationery",
	})
	require.NoError(t, err)

	_, err = svc.Delete(ctx, "u2", created.ItemID)
	require.Error(t, err)
	assert.True(t, apperrors.IsForbidden(err))

	// Still readable by its owner.
	_, err = svc.Get(ctx, "u1", created.ItemID)
	assert.NoError(t, err)
}

func TestService_PublishFailureDoesNotFailOperation(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewItemRepository()
	svc := NewService(repo, failingPublisher{}, zap.NewNop())

	created, err := svc.Create(ctx, "u1", CreateInput{
		Name: "Pen", Description: "Blue", Price: 2.50, Category: "stationery",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, created.ItemID)
}

type failingPublisher struct{}

func (failingPublisher) Publish(context.Context, item.Event) error {
	return errors.New("event bus unavailable")
}
