package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sweetshop/api/internal/models"
	"sweetshop/api/internal/repository"
)

func seedSweet(store *memSweetStore, quantity int) models.Sweet {
	return store.put(models.Sweet{
		ID:       "sweet-1",
		Name:     "Ladoo",
		Category: "Dry",
		Price:    2.99,
		Quantity: quantity,
	})
}

func newTestInventoryService(store *memSweetStore) *InventoryService {
	return NewInventoryService(store, store, nil, zerolog.Nop())
}

func TestPurchaseDecrementsExactly(t *testing.T) {
	store := newMemSweetStore()
	seedSweet(store, 70)
	svc := newTestInventoryService(store)

	result, err := svc.Purchase(context.Background(), "user-1", "sweet-1", 5)
	require.NoError(t, err)

	assert.Equal(t, 65, result.Remaining)
	assert.Equal(t, "Ladoo", result.Purchase.SweetName)
	assert.Equal(t, 5, result.Purchase.Quantity)
	assert.InDelta(t, 2.99, result.Purchase.PriceAtPurchase, 1e-9)
	assert.InDelta(t, 14.95, result.Purchase.TotalAmount, 1e-9)

	sweet, err := store.GetByID(context.Background(), "sweet-1")
	require.NoError(t, err)
	assert.Equal(t, 65, sweet.Quantity)
}

func TestPurchaseWholeStock(t *testing.T) {
	store := newMemSweetStore()
	seedSweet(store, 3)
	svc := newTestInventoryService(store)

	result, err := svc.Purchase(context.Background(), "user-1", "sweet-1", 3)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Remaining)
}

func TestPurchaseInsufficientStock(t *testing.T) {
	store := newMemSweetStore()
	seedSweet(store, 65)
	svc := newTestInventoryService(store)

	_, err := svc.Purchase(context.Background(), "user-1", "sweet-1", 1000)

	var stockErr *repository.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 65, stockErr.Available)

	// Failed purchase must leave stock untouched.
	sweet, err := store.GetByID(context.Background(), "sweet-1")
	require.NoError(t, err)
	assert.Equal(t, 65, sweet.Quantity)
}

func TestPurchaseRejectsNonPositiveQuantity(t *testing.T) {
	store := newMemSweetStore()
	seedSweet(store, 10)
	svc := newTestInventoryService(store)

	for _, quantity := range []int{0, -1, -100} {
		_, err := svc.Purchase(context.Background(), "user-1", "sweet-1", quantity)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "quantity %d", quantity)
	}

	sweet, err := store.GetByID(context.Background(), "sweet-1")
	require.NoError(t, err)
	assert.Equal(t, 10, sweet.Quantity)
}

func TestPurchaseUnknownSweet(t *testing.T) {
	svc := newTestInventoryService(newMemSweetStore())

	_, err := svc.Purchase(context.Background(), "user-1", "missing", 1)
	assert.ErrorIs(t, err, repository.ErrSweetNotFound)
}

func TestRestockAddsExactly(t *testing.T) {
	store := newMemSweetStore()
	seedSweet(store, 65)
	svc := newTestInventoryService(store)

	sweet, err := svc.Restock(context.Background(), "sweet-1", 10)
	require.NoError(t, err)
	assert.Equal(t, 75, sweet.Quantity)
}

func TestRestockRejectsNonPositiveQuantity(t *testing.T) {
	store := newMemSweetStore()
	seedSweet(store, 5)
	svc := newTestInventoryService(store)

	for _, quantity := range []int{0, -3} {
		_, err := svc.Restock(context.Background(), "sweet-1", quantity)

		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr, "quantity %d", quantity)
	}

	sweet, err := store.GetByID(context.Background(), "sweet-1")
	require.NoError(t, err)
	assert.Equal(t, 5, sweet.Quantity)
}

func TestHistoryNewestFirstPerUser(t *testing.T) {
	store := newMemSweetStore()
	seedSweet(store, 100)
	svc := newTestInventoryService(store)
	ctx := context.Background()

	_, err := svc.Purchase(ctx, "alice", "sweet-1", 1)
	require.NoError(t, err)
	_, err = svc.Purchase(ctx, "bob", "sweet-1", 2)
	require.NoError(t, err)
	_, err = svc.Purchase(ctx, "alice", "sweet-1", 3)
	require.NoError(t, err)

	history, err := svc.History(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 3, history[0].Quantity)
	assert.Equal(t, 1, history[1].Quantity)
}
