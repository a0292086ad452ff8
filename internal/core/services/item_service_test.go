package services

import (
	"context"
	"testing"

	"campus-inventory/internal/core/domain"
	"campus-inventory/internal/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemService_Create(t *testing.T) {
	service := NewItemService(newFakeItems())
	ctx := context.Background()

	item, err := service.Create(ctx, &CreateItemInput{Code: " CAM-01 ", Name: "Camera", Category: "av", Quantity: 4})
	require.NoError(t, err)
	assert.Equal(t, "CAM-01", item.Code)
	assert.Equal(t, 4, item.Available)

	_, err = service.Create(ctx, &CreateItemInput{Code: "CAM-01", Name: "Another camera", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrItemAlreadyExists)

	_, err = service.Create(ctx, &CreateItemInput{Code: "", Name: "Nameless"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = service.Create(ctx, &CreateItemInput{Code: "X", Name: "Negative", Quantity: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestItemService_GetAndList(t *testing.T) {
	service := NewItemService(newFakeItems())
	ctx := context.Background()

	for _, in := range []CreateItemInput{
		{Code: "CAM-01", Name: "Camera", Quantity: 1},
		{Code: "MIC-01", Name: "Microphone", Quantity: 2},
		{Code: "CAM-02", Name: "Camera tripod", Quantity: 1},
	} {
		input := in
		_, err := service.Create(ctx, &input)
		require.NoError(t, err)
	}

	items, total, err := service.List(ctx, pagination.New(1, 10, "Camera"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, items, 2)

	item, err := service.Get(ctx, items[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "CAM-01", item.Code)

	_, err = service.Get(ctx, 404)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}
