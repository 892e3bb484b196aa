package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manacart/manacart/internal/storage/models"
)

func testOrder(id, userID string) *models.Order {
	now := time.Now().UTC().Truncate(time.Second)
	return &models.Order{
		ID:        id,
		UserID:    userID,
		Status:    models.OrderStatusPending,
		TotalQty:  12,
		UnitPrice: 1.50,
		Subtotal:  18.00,
		Total:     18.00,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestOrderRepositoryCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	order := testOrder("order-1", "user-1")
	lines := []*models.OrderLine{
		{OrderID: order.ID, CardID: "bolt-1", Name: "Lightning Bolt", Quantity: 4, UnitPrice: 1.50},
		{OrderID: order.ID, CardID: "elves-1", Name: "Llanowar Elves", Quantity: 8, UnitPrice: 1.50},
	}
	require.NoError(t, repo.Create(ctx, order, lines))

	loaded, err := repo.GetByID(ctx, "order-1")
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, models.OrderStatusPending, loaded.Status)
	assert.Equal(t, 12, loaded.TotalQty)
	assert.Equal(t, 18.00, loaded.Total)

	loadedLines, err := repo.GetLines(ctx, "order-1")
	require.NoError(t, err)
	require.Len(t, loadedLines, 2)
	assert.Equal(t, "bolt-1", loadedLines[0].CardID)
}

func TestOrderRepositoryUpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testOrder("order-1", "user-1"), nil))
	require.NoError(t, repo.UpdateStatus(ctx, "order-1", models.OrderStatusPaid))

	loaded, err := repo.GetByID(ctx, "order-1")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, loaded.Status)
}

func TestOrderRepositoryUpdateStatusMissing(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)

	err := repo.UpdateStatus(context.Background(), "nope", models.OrderStatusPaid)
	assert.Error(t, err)
}

func TestOrderRepositoryListByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewOrderRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testOrder("order-1", "user-1"), nil))
	require.NoError(t, repo.Create(ctx, testOrder("order-2", "user-2"), nil))
	require.NoError(t, repo.UpdateStatus(ctx, "order-2", models.OrderStatusPaid))

	pending, err := repo.List(ctx, models.OrderStatusPending, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	all, err := repo.List(ctx, "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
