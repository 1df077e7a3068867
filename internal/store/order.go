package store

import (
	"database/sql"
	"fmt"

	"queueless/internal/model"
	"queueless/internal/order"
)

type OrderStore struct {
	db *sql.DB
}

func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

func scanOrder(scanner interface{ Scan(...any) error }) (*model.Order, error) {
	var o model.Order
	err := scanner.Scan(
		&o.ID, &o.TableNumber, &o.CustomerName, &o.Subtotal, &o.Tax, &o.Total,
		&o.PaymentMethod, &o.SpecialInstructions, &o.Status, &o.Timestamp,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

const orderCols = `id, table_number, customer_name, subtotal, tax, total, payment_method, special_instructions, status, timestamp`

// Create appends a new order together with its line items in one transaction.
func (s *OrderStore) Create(o *model.Order) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin order tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO orders (`+orderCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.TableNumber, o.CustomerName, o.Subtotal, o.Tax, o.Total,
		o.PaymentMethod, o.SpecialInstructions, o.Status, o.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.Exec(
			`INSERT INTO order_items (order_id, item_id, name, price, category, quantity) VALUES (?, ?, ?, ?, ?, ?)`,
			o.ID, item.ID, item.Name, item.Price, item.Category, item.Quantity,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order: %w", err)
	}
	return nil
}

func (s *OrderStore) GetByID(id string) (*model.Order, error) {
	row := s.db.QueryRow(`SELECT `+orderCols+` FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := s.loadItems(map[string]*model.Order{o.ID: o}); err != nil {
		return nil, err
	}
	return o, nil
}

// List returns all orders, newest first.
func (s *OrderStore) List() ([]model.Order, error) {
	return s.listWhere(``)
}

// ListByStatus returns orders with the given status, newest first.
func (s *OrderStore) ListByStatus(status model.OrderStatus) ([]model.Order, error) {
	return s.listWhere(`WHERE status = ?`, status)
}

func (s *OrderStore) listWhere(where string, args ...any) ([]model.Order, error) {
	rows, err := s.db.Query(`SELECT `+orderCols+` FROM orders `+where+` ORDER BY timestamp DESC, id DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	byID := make(map[string]*model.Order)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
		byID[o.ID] = &orders[len(orders)-1]
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadItems(byID); err != nil {
		return nil, err
	}
	return orders, nil
}

func (s *OrderStore) loadItems(orders map[string]*model.Order) error {
	if len(orders) == 0 {
		return nil
	}

	rows, err := s.db.Query(`SELECT order_id, item_id, name, price, category, quantity FROM order_items ORDER BY id ASC`)
	if err != nil {
		return fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var orderID string
		var item model.OrderItem
		if err := rows.Scan(&orderID, &item.ID, &item.Name, &item.Price, &item.Category, &item.Quantity); err != nil {
			return fmt.Errorf("scan order item: %w", err)
		}
		if o, ok := orders[orderID]; ok {
			o.Items = append(o.Items, item)
		}
	}
	return rows.Err()
}

// UpdateStatus moves an order to a new status, enforcing the lifecycle. It
// returns order.ErrInvalidTransition (stored status untouched) for moves the
// transition table does not permit, and nil for unknown ids.
func (s *OrderStore) UpdateStatus(id string, next model.OrderStatus) (*model.Order, error) {
	existing, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, nil
	}

	if !order.CanTransition(existing.Status, next) {
		return nil, fmt.Errorf("order %s: %s -> %s: %w", id, existing.Status, next, order.ErrInvalidTransition)
	}

	_, err = s.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, next, id)
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return s.GetByID(id)
}
