package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto/internal/models"
)

func snapshot(total int64) models.OrderSnapshot {
	return models.OrderSnapshot{
		Items:      []models.OrderItem{{MenuID: "m1", Name: "Item", Quantity: 1, Price: total}},
		TotalPrice: total,
	}
}

func TestMemoryCreateAssignsFields(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	order, err := store.Create(ctx, CreateOrder{TableID: "T1", CustomerName: "Budi", Snapshot: snapshot(25000)})
	require.NoError(t, err)

	assert.NotEmpty(t, order.ID)
	assert.Equal(t, 1, order.DailyOrderID)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.False(t, order.IsProcessed)
	assert.False(t, order.CreatedAt.IsZero())
	assert.Equal(t, int64(25000), order.TotalPrice)
}

func TestMemoryDailyOrderIDResetsPerDay(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	day1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return day1 })

	o1, err := store.Create(ctx, CreateOrder{TableID: "T1", CustomerName: "A", Snapshot: snapshot(10000)})
	require.NoError(t, err)
	o2, err := store.Create(ctx, CreateOrder{TableID: "T2", CustomerName: "B", Snapshot: snapshot(10000)})
	require.NoError(t, err)
	assert.Equal(t, 1, o1.DailyOrderID)
	assert.Equal(t, 2, o2.DailyOrderID)

	store.SetClock(func() time.Time { return day1.Add(24 * time.Hour) })
	o3, err := store.Create(ctx, CreateOrder{TableID: "T1", CustomerName: "C", Snapshot: snapshot(10000)})
	require.NoError(t, err)
	assert.Equal(t, 1, o3.DailyOrderID, "daily order id must reset on a new day")
}

func TestMemoryGet(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	created, err := store.Create(ctx, CreateOrder{TableID: "T1", CustomerName: "Budi", Snapshot: snapshot(25000)})
	require.NoError(t, err)

	got, err := store.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Len(t, got.Items, 1)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestMemoryListFiltersByStatus(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	o1, err := store.Create(ctx, CreateOrder{TableID: "T1", CustomerName: "A", Snapshot: snapshot(10000)})
	require.NoError(t, err)
	_, err = store.Create(ctx, CreateOrder{TableID: "T2", CustomerName: "B", Snapshot: snapshot(20000)})
	require.NoError(t, err)

	_, err = store.UpdateStatus(ctx, o1.ID, models.StatusPending, models.StatusCompleted, true)
	require.NoError(t, err)

	completed, err := store.List(ctx, Filter{Statuses: []models.OrderStatus{models.StatusCompleted}})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, o1.ID, completed[0].ID)

	all, err := store.List(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestMemoryUpdateStatusCAS(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	order, err := store.Create(ctx, CreateOrder{TableID: "T1", CustomerName: "A", Snapshot: snapshot(10000)})
	require.NoError(t, err)

	updated, err := store.UpdateStatus(ctx, order.ID, models.StatusPending, models.StatusProcessing, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, updated.Status)
	assert.True(t, updated.IsProcessed)

	// A second writer that also observed pending loses the race.
	_, err = store.UpdateStatus(ctx, order.ID, models.StatusPending, models.StatusCancelled, false)
	assert.ErrorIs(t, err, ErrStatusConflict)

	// The stored order is unchanged by the failed swap.
	got, err := store.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusProcessing, got.Status)

	_, err = store.UpdateStatus(ctx, "missing", models.StatusPending, models.StatusCancelled, false)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestMemoryReturnsCopies(t *testing.T) {
	store := NewMemory()
	ctx := context.Background()

	order, err := store.Create(ctx, CreateOrder{TableID: "T1", CustomerName: "A", Snapshot: snapshot(10000)})
	require.NoError(t, err)

	order.Status = models.StatusCancelled
	order.Items[0].Price = 1

	got, err := store.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, got.Status, "mutating a returned order must not affect the store")
	assert.Equal(t, int64(10000), got.Items[0].Price)
}
