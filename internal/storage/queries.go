package storage

// Order queries
const (
	insertOrderSQL = `
		INSERT INTO orders (id, daily_order_id, table_id, customer_name, total_price, status, is_processed)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING created_at`

	insertOrderItemSQL = `
		INSERT INTO order_items (order_id, menu_id, name, quantity, price)
		VALUES ($1, $2, $3, $4, $5)`

	nextDailyOrderIDSQL = `
		SELECT COALESCE(MAX(daily_order_id), 0) + 1
		FROM orders
		WHERE created_at::date = CURRENT_DATE`

	getOrderSQL = `
		SELECT id, daily_order_id, table_id, customer_name, total_price, status, is_processed, created_at
		FROM orders WHERE id = $1`

	getOrderItemsSQL = `
		SELECT menu_id, name, quantity, price
		FROM order_items
		WHERE order_id = $1
		ORDER BY id ASC`

	listOrdersSQL = `
		SELECT id, daily_order_id, table_id, customer_name, total_price, status, is_processed, created_at
		FROM orders
		WHERE cardinality($1::text[]) = 0 OR status = ANY($1::text[])
		ORDER BY created_at ASC`

	updateOrderStatusSQL = `
		UPDATE orders SET status = $1, is_processed = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4`
)
