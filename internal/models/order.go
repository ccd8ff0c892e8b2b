package models

import (
	"fmt"
	"time"
)

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending    OrderStatus = "pending"
	StatusProcessing OrderStatus = "processing"
	StatusCompleted  OrderStatus = "completed"
	StatusCancelled  OrderStatus = "cancelled"
)

// OrderItem is one line of a persisted order. Price is the unit price
// snapshot taken at order time; it is never re-read from the menu.
type OrderItem struct {
	MenuID   string `json:"menu_id" db:"menu_id"`
	Name     string `json:"name" db:"name"`
	Quantity int    `json:"quantity" db:"quantity"`
	Price    int64  `json:"price" db:"price"`
}

// Order is a customer order. Items and TotalPrice are immutable after
// creation; only Status and IsProcessed may change, through the
// lifecycle package.
type Order struct {
	ID           string      `json:"id" db:"id"`
	DailyOrderID int         `json:"daily_order_id" db:"daily_order_id"`
	TableID      string      `json:"table_id" db:"table_id"`
	CustomerName string      `json:"customer_name" db:"customer_name"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	Items        []OrderItem `json:"items"`
	TotalPrice   int64       `json:"total_price" db:"total_price"`
	Status       OrderStatus `json:"status" db:"status"`
	IsProcessed  bool        `json:"is_processed" db:"is_processed"`
}

// OrderSnapshot is the immutable cart result submitted to order creation.
type OrderSnapshot struct {
	Items      []OrderItem `json:"items"`
	TotalPrice int64       `json:"total_price"`
}

// Number returns the human-facing display number, sequential per day.
func (o *Order) Number() string {
	return fmt.Sprintf("ORD_%s_%03d", o.CreatedAt.UTC().Format("20060102"), o.DailyOrderID)
}

// IsTerminal reports whether the status admits no further transitions.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}
