package item

import (
	"testing"
	"time"

	apperrors "itemstore-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}

func TestNew_Success(t *testing.T) {
	it, err := New("user123", "Pen", "Blue ballpoint", 2.50, "stationery")

	require.NoError(t, err)
	assert.NotEmpty(t, it.ItemID)
	assert.Equal(t, "user123", it.UserID)
	assert.Equal(t, "Pen", it.Name)
	assert.Equal(t, 2.50, it.Price)
	assert.Equal(t, it.CreatedAt, it.UpdatedAt, "creation stamps both timestamps equal")
}

func TestNew_GeneratesUniqueIDs(t *testing.T) {
	a, err := New("user123", "Pen", "Blue", 1, "stationery")
	require.NoError(t, err)
	b, err := New("user123", "Pen", "Blue", 1, "stationery")
	require.NoError(t, err)

	assert.NotEqual(t, a.ItemID, b.ItemID)
}

func TestNew_MissingFields(t *testing.T) {
	tests := []struct {
		name        string
		itemName    string
		description string
		category    string
	}{
		{"missing name", "", "desc", "cat"},
		{"missing description", "Pen", "", "cat"},
		{"missing category", "Pen", "desc", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New("user123", tt.itemName, tt.description, 1, tt.category)

			require.Error(t, err)
			assert.True(t, apperrors.IsValidation(err))
			assert.Contains(t, err.Error(), "All fields are required")
		})
	}
}

func TestNew_NonPositivePrice(t *testing.T) {
	for _, price := range []float64{0, -1} {
		_, err := New("user123", "Pen", "Blue", price, "stationery")

		require.Error(t, err)
		assert.True(t, apperrors.IsValidation(err))
		assert.Contains(t, err.Error(), "Price must be greater than 0")
	}
}

func TestItem_OwnedBy(t *testing.T) {
	it, err := New("user123", "Pen", "Blue", 1, "stationery")
	require.NoError(t, err)

	assert.True(t, it.OwnedBy("user123"))
	assert.False(t, it.OwnedBy("user456"))
}

func TestChanges_Validate_Empty(t *testing.T) {
	err := Changes{}.Validate()

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "At least one field must be provided for update")
}

func TestChanges_Validate_NonPositivePrice(t *testing.T) {
	err := Changes{Price: floatPtr(0)}.Validate()

	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
	assert.Contains(t, err.Error(), "Price must be greater than 0")
}

func TestChanges_Validate_SingleField(t *testing.T) {
	assert.NoError(t, Changes{Price: floatPtr(9.99)}.Validate())
	assert.NoError(t, Changes{Name: strPtr("Pencil")}.Validate())
}

func TestItem_Apply_PartialMerge(t *testing.T) {
	it, err := New("user123", "Pen", "Blue ballpoint", 2.50, "stationery")
	require.NoError(t, err)

	later := it.UpdatedAt.Add(time.Second)
	it.Apply(Changes{Price: floatPtr(3.00)}, later)

	assert.Equal(t, 3.00, it.Price)
	assert.Equal(t, "Pen", it.Name, "absent fields keep stored values")
	assert.Equal(t, "Blue ballpoint", it.Description)
	assert.Equal(t, "stationery", it.Category)
	assert.Equal(t, later, it.UpdatedAt)
}

func TestItem_Apply_RefreshesUpdatedAtWhenValuesIdentical(t *testing.T) {
	it, err := New("user123", "Pen", "Blue", 2.50, "stationery")
	require.NoError(t, err)

	before := it.UpdatedAt
	later := before.Add(time.Second)
	it.Apply(Changes{Price: floatPtr(2.50)}, later)

	assert.True(t, it.UpdatedAt.After(before), "updatedAt refreshes even when the value did not change")
	assert.Equal(t, it.CreatedAt, before)
}
