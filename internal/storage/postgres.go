package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"resto/internal/config"
	"resto/internal/logger"
	"resto/internal/models"
)

// Postgres is the reference OrderStore backed by a pgx pool.
type Postgres struct {
	Pool   *pgxpool.Pool
	logger *logger.Logger
}

// NewPostgres connects to PostgreSQL with retries.
func NewPostgres(cfg *config.Config, log *logger.Logger) (*Postgres, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 25
	poolConfig.MinConns = 5
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = time.Minute * 30

	var pool *pgxpool.Pool
	maxRetries := 5
	for i := 0; i < maxRetries; i++ {
		pool, err = pgxpool.NewWithConfig(context.Background(), poolConfig)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = pool.Ping(ctx)
			cancel()
			if err == nil {
				break
			}
			pool.Close()
		}

		if i < maxRetries-1 {
			waitTime := time.Duration(i+1) * 2 * time.Second
			log.Error("db_connection_failed",
				fmt.Sprintf("Failed to connect to database, retrying in %v", waitTime),
				"startup", err, nil)
			time.Sleep(waitTime)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	return &Postgres{Pool: pool, logger: log}, nil
}

// Close closes the connection pool.
func (p *Postgres) Close() {
	if p.Pool != nil {
		p.Pool.Close()
	}
}

// Ping tests the database connection.
func (p *Postgres) Ping(ctx context.Context) error {
	return p.Pool.Ping(ctx)
}

// Create persists a new pending order. The daily order id is assigned
// inside the insert transaction so concurrent creates stay sequential.
func (p *Postgres) Create(ctx context.Context, req CreateOrder) (*models.Order, error) {
	tx, err := p.Pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	order := &models.Order{
		ID:           uuid.NewString(),
		TableID:      req.TableID,
		CustomerName: req.CustomerName,
		Items:        req.Snapshot.Items,
		TotalPrice:   req.Snapshot.TotalPrice,
		Status:       models.StatusPending,
	}

	if err := tx.QueryRow(ctx, nextDailyOrderIDSQL).Scan(&order.DailyOrderID); err != nil {
		return nil, fmt.Errorf("failed to assign daily order id: %w", err)
	}

	err = tx.QueryRow(ctx, insertOrderSQL,
		order.ID, order.DailyOrderID, order.TableID, order.CustomerName,
		order.TotalPrice, order.Status).Scan(&order.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert order: %w", err)
	}

	for _, item := range order.Items {
		_, err := tx.Exec(ctx, insertOrderItemSQL,
			order.ID, item.MenuID, item.Name, item.Quantity, item.Price)
		if err != nil {
			return nil, fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return order, nil
}

// Get returns one order with its items.
func (p *Postgres) Get(ctx context.Context, id string) (*models.Order, error) {
	var order models.Order
	err := p.Pool.QueryRow(ctx, getOrderSQL, id).Scan(
		&order.ID,
		&order.DailyOrderID,
		&order.TableID,
		&order.CustomerName,
		&order.TotalPrice,
		&order.Status,
		&order.IsProcessed,
		&order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	if order.Items, err = p.loadItems(ctx, order.ID); err != nil {
		return nil, err
	}
	return &order, nil
}

// List returns orders matching the filter, oldest first.
func (p *Postgres) List(ctx context.Context, filter Filter) ([]models.Order, error) {
	statuses := make([]string, 0, len(filter.Statuses))
	for _, s := range filter.Statuses {
		statuses = append(statuses, string(s))
	}

	rows, err := p.Pool.Query(ctx, listOrdersSQL, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.DailyOrderID,
			&order.TableID,
			&order.CustomerName,
			&order.TotalPrice,
			&order.Status,
			&order.IsProcessed,
			&order.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read orders: %w", err)
	}

	for i := range orders {
		if orders[i].Items, err = p.loadItems(ctx, orders[i].ID); err != nil {
			return nil, err
		}
	}
	return orders, nil
}

// UpdateStatus writes the new status only if the row still carries the
// expected one. Zero rows affected means another writer got there
// first.
func (p *Postgres) UpdateStatus(ctx context.Context, id string, expect, to models.OrderStatus, isProcessed bool) (*models.Order, error) {
	tag, err := p.Pool.Exec(ctx, updateOrderStatusSQL, to, isProcessed, id, expect)
	if err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		if _, err := p.Get(ctx, id); err != nil {
			return nil, err
		}
		return nil, ErrStatusConflict
	}

	return p.Get(ctx, id)
}

func (p *Postgres) loadItems(ctx context.Context, orderID string) ([]models.OrderItem, error) {
	rows, err := p.Pool.Query(ctx, getOrderItemsSQL, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	var items []models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		if err := rows.Scan(&item.MenuID, &item.Name, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
