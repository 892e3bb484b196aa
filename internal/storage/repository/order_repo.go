package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/manacart/manacart/internal/storage/models"
)

// OrderRepository handles orders and their lines.
type OrderRepository interface {
	// Create inserts a new order with its lines in one transaction.
	Create(ctx context.Context, order *models.Order, lines []*models.OrderLine) error

	// GetByID retrieves an order by ID, or nil when absent.
	GetByID(ctx context.Context, id string) (*models.Order, error)

	// GetLines retrieves an order's lines.
	GetLines(ctx context.Context, orderID string) ([]*models.OrderLine, error)

	// List retrieves orders, optionally filtered by status, newest first.
	List(ctx context.Context, status string, limit int) ([]*models.Order, error)

	// UpdateStatus sets an order's status and bumps updated_at.
	UpdateStatus(ctx context.Context, id, status string) error
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new order repository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, order *models.Order, lines []*models.OrderLine) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin order transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (
			id, user_id, status, total_qty, unit_price, subtotal,
			discount_code, discount_percent, total, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		order.ID, order.UserID, order.Status, order.TotalQty, order.UnitPrice,
		order.Subtotal, order.DiscountCode, order.DiscountPercent, order.Total,
		order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	for _, line := range lines {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO order_lines (order_id, card_id, name, set_code, collector_number, quantity, unit_price)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`,
			order.ID, line.CardID, line.Name, line.SetCode, line.CollectorNumber,
			line.Quantity, line.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("insert order line %s: %w", line.CardID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit order transaction: %w", err)
	}
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*models.Order, error) {
	order := &models.Order{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, status, total_qty, unit_price, subtotal,
		       discount_code, discount_percent, total, created_at, updated_at
		FROM orders WHERE id = ?
	`, id).Scan(
		&order.ID, &order.UserID, &order.Status, &order.TotalQty, &order.UnitPrice,
		&order.Subtotal, &order.DiscountCode, &order.DiscountPercent, &order.Total,
		&order.CreatedAt, &order.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get order by id: %w", err)
	}
	return order, nil
}

func (r *orderRepository) GetLines(ctx context.Context, orderID string) ([]*models.OrderLine, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT order_id, card_id, name, set_code, collector_number, quantity, unit_price
		FROM order_lines WHERE order_id = ?
		ORDER BY id
	`, orderID)
	if err != nil {
		return nil, fmt.Errorf("get order lines: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var lines []*models.OrderLine
	for rows.Next() {
		line := &models.OrderLine{}
		if err := rows.Scan(
			&line.OrderID, &line.CardID, &line.Name, &line.SetCode,
			&line.CollectorNumber, &line.Quantity, &line.UnitPrice,
		); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

func (r *orderRepository) List(ctx context.Context, status string, limit int) ([]*models.Order, error) {
	query := `
		SELECT id, user_id, status, total_qty, unit_price, subtotal,
		       discount_code, discount_percent, total, created_at, updated_at
		FROM orders
	`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC LIMIT ?`
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var orders []*models.Order
	for rows.Next() {
		order := &models.Order{}
		if err := rows.Scan(
			&order.ID, &order.UserID, &order.Status, &order.TotalQty, &order.UnitPrice,
			&order.Subtotal, &order.DiscountCode, &order.DiscountPercent, &order.Total,
			&order.CreatedAt, &order.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, rows.Err()
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id, status string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, status, id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("order not found: %s", id)
	}
	return nil
}
