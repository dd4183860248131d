package dbhelper

import (
	"database/sql"

	"github.com/lib/pq"

	"github.com/foodcart/backoffice/database"
	"github.com/foodcart/backoffice/models"
)

// CreateOrder inserts the order and all of its line items inside the
// caller's transaction, so either everything lands or nothing does.
func CreateOrder(tx *sql.Tx, order *models.Order) error {
	err := tx.QueryRow(`
		INSERT INTO orders (firstname, lastname, phone, address, status, payment, comment)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, registered_at`,
		order.Firstname, order.Lastname, order.Phone, order.Address,
		order.Status, order.Payment, order.Comment).
		Scan(&order.ID, &order.RegisteredAt)
	if err != nil {
		return err
	}

	for i := range order.Items {
		item := &order.Items[i]
		item.OrderID = order.ID
		err := tx.QueryRow(`
			INSERT INTO order_items (order_id, product_id, quantity, price)
			VALUES ($1, $2, $3, $4)
			RETURNING id`,
			item.OrderID, item.ProductID, item.Quantity, item.Price).
			Scan(&item.ID)
		if err != nil {
			return err
		}
	}
	return nil
}

// ListOrdersWithItems returns orders newest first with their line
// items attached. When unprocessedOnly is set, completed orders are
// skipped.
func ListOrdersWithItems(unprocessedOnly bool) ([]models.Order, error) {
	query := `
		SELECT id, firstname, lastname, phone, address, status, payment, comment,
			restaurant_id, registered_at, called_at, delivered_at
		FROM orders`
	if unprocessedOnly {
		query += ` WHERE status <> 'completed'`
	}
	query += ` ORDER BY registered_at DESC`

	rows, err := database.FoodCart.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orders []models.Order
	var orderIDs []int64
	byID := make(map[int64]int)
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(&o.ID, &o.Firstname, &o.Lastname, &o.Phone, &o.Address,
			&o.Status, &o.Payment, &o.Comment, &o.RestaurantID,
			&o.RegisteredAt, &o.CalledAt, &o.DeliveredAt); err != nil {
			return nil, err
		}
		byID[o.ID] = len(orders)
		orders = append(orders, o)
		orderIDs = append(orderIDs, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	itemRows, err := database.FoodCart.Query(`
		SELECT id, order_id, product_id, quantity, price
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY id`, pq.Array(orderIDs))
	if err != nil {
		return nil, err
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item models.OrderLineItem
		if err := itemRows.Scan(&item.ID, &item.OrderID, &item.ProductID, &item.Quantity, &item.Price); err != nil {
			return nil, err
		}
		if idx, ok := byID[item.OrderID]; ok {
			orders[idx].Items = append(orders[idx].Items, item)
		}
	}
	return orders, itemRows.Err()
}
