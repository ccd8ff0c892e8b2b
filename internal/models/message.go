package models

import "time"

// OrderMessage is published to the kitchen when a new order is created.
type OrderMessage struct {
	OrderID      string      `json:"order_id"`
	OrderNumber  string      `json:"order_number"`
	TableID      string      `json:"table_id"`
	CustomerName string      `json:"customer_name"`
	Items        []OrderItem `json:"items"`
	TotalPrice   int64       `json:"total_price"`
	CreatedAt    time.Time   `json:"created_at"`
}

// StatusUpdateMessage is broadcast whenever an order changes status.
type StatusUpdateMessage struct {
	OrderID     string    `json:"order_id"`
	OrderNumber string    `json:"order_number"`
	OldStatus   string    `json:"old_status"`
	NewStatus   string    `json:"new_status"`
	ChangedBy   string    `json:"changed_by"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewOrderMessage builds the kitchen message for a freshly created order.
func NewOrderMessage(o *Order) *OrderMessage {
	return &OrderMessage{
		OrderID:      o.ID,
		OrderNumber:  o.Number(),
		TableID:      o.TableID,
		CustomerName: o.CustomerName,
		Items:        o.Items,
		TotalPrice:   o.TotalPrice,
		CreatedAt:    o.CreatedAt,
	}
}

// NewStatusUpdateMessage builds a notification for a status change.
func NewStatusUpdateMessage(o *Order, oldStatus OrderStatus, changedBy string) *StatusUpdateMessage {
	return &StatusUpdateMessage{
		OrderID:     o.ID,
		OrderNumber: o.Number(),
		OldStatus:   string(oldStatus),
		NewStatus:   string(o.Status),
		ChangedBy:   changedBy,
		Timestamp:   time.Now().UTC(),
	}
}
