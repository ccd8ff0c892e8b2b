package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"resto/internal/models"
)

// Memory is an in-memory OrderStore. It backs tests and local runs
// without PostgreSQL; the compare-and-swap semantics match the
// Postgres implementation.
type Memory struct {
	mu     sync.RWMutex
	orders map[string]*models.Order
	now    func() time.Time
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		orders: make(map[string]*models.Order),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// SetClock overrides the time source. Test hook.
func (m *Memory) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

func cloneOrder(o *models.Order) *models.Order {
	c := *o
	c.Items = append([]models.OrderItem(nil), o.Items...)
	return &c
}

// Create persists a new pending order.
func (m *Memory) Create(ctx context.Context, req CreateOrder) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	createdAt := m.now()

	dailyID := 1
	for _, o := range m.orders {
		if sameDay(o.CreatedAt, createdAt) && o.DailyOrderID >= dailyID {
			dailyID = o.DailyOrderID + 1
		}
	}

	order := &models.Order{
		ID:           uuid.NewString(),
		DailyOrderID: dailyID,
		TableID:      req.TableID,
		CustomerName: req.CustomerName,
		CreatedAt:    createdAt,
		Items:        append([]models.OrderItem(nil), req.Snapshot.Items...),
		TotalPrice:   req.Snapshot.TotalPrice,
		Status:       models.StatusPending,
	}
	m.orders[order.ID] = order

	return cloneOrder(order), nil
}

// Get returns one order.
func (m *Memory) Get(ctx context.Context, id string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	return cloneOrder(order), nil
}

// List returns orders matching the filter, oldest first.
func (m *Memory) List(ctx context.Context, filter Filter) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	wanted := make(map[models.OrderStatus]bool, len(filter.Statuses))
	for _, s := range filter.Statuses {
		wanted[s] = true
	}

	var orders []models.Order
	for _, o := range m.orders {
		if len(wanted) > 0 && !wanted[o.Status] {
			continue
		}
		orders = append(orders, *cloneOrder(o))
	}

	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt.Equal(orders[j].CreatedAt) {
			return orders[i].DailyOrderID < orders[j].DailyOrderID
		}
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})

	return orders, nil
}

// UpdateStatus writes the new status under the store lock, failing
// with ErrStatusConflict when the order moved since the caller read it.
func (m *Memory) UpdateStatus(ctx context.Context, id string, expect, to models.OrderStatus, isProcessed bool) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, ok := m.orders[id]
	if !ok {
		return nil, ErrOrderNotFound
	}
	if order.Status != expect {
		return nil, ErrStatusConflict
	}

	order.Status = to
	order.IsProcessed = isProcessed
	return cloneOrder(order), nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
