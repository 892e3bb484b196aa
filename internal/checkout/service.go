// Package checkout turns a constructed deck into a priced order and walks
// it through the payment lifecycle: pending, paid, shipped.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/manacart/manacart/internal/deck"
	"github.com/manacart/manacart/internal/pricing"
	"github.com/manacart/manacart/internal/storage/models"
	"github.com/manacart/manacart/internal/storage/repository"
)

var (
	// ErrOrderNotFound is returned when an order ID matches nothing.
	ErrOrderNotFound = errors.New("order not found")

	// ErrEmptyOrder is returned when a quote or order covers zero cards.
	ErrEmptyOrder = errors.New("order has no cards")

	// ErrInvalidDiscount is returned for unknown, inactive, or expired codes.
	ErrInvalidDiscount = errors.New("discount code is not valid")

	// ErrNotPaid is returned when fulfillment is attempted before payment.
	ErrNotPaid = errors.New("order has not been paid")
)

// Notifier receives order lifecycle events. Notification failures never
// fail the transition that triggered them.
type Notifier interface {
	OrderPaid(ctx context.Context, order *models.Order)
	OrderShipped(ctx context.Context, order *models.Order)
}

// LogNotifier logs lifecycle events. It stands in until a mail or webhook
// notifier is configured.
type LogNotifier struct {
	Logger *slog.Logger
}

func (n *LogNotifier) OrderPaid(_ context.Context, order *models.Order) {
	n.Logger.Info("order paid", "order_id", order.ID, "user_id", order.UserID, "total", order.Total)
}

func (n *LogNotifier) OrderShipped(_ context.Context, order *models.Order) {
	n.Logger.Info("order shipped", "order_id", order.ID, "user_id", order.UserID)
}

// TableProvider returns the tier table in force right now. It is a function
// so that config reloads take effect without restarting the service.
type TableProvider func() *pricing.Table

// Quote is a priced snapshot of a cart before an order exists.
type Quote struct {
	TotalQty        int     `json:"total_qty"`
	UnitPrice       float64 `json:"unit_price"`
	Subtotal        float64 `json:"subtotal"`
	DiscountCode    string  `json:"discount_code,omitempty"`
	DiscountPercent int     `json:"discount_percent,omitempty"`
	Total           float64 `json:"total"`
}

// Service prices carts and manages orders.
type Service struct {
	orders    repository.OrderRepository
	discounts repository.DiscountRepository
	table     TableProvider
	notifier  Notifier
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a checkout service. A nil table provider falls back to
// the default ladder; a nil notifier logs events.
func NewService(orders repository.OrderRepository, discounts repository.DiscountRepository, table TableProvider, notifier Notifier, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if table == nil {
		def := pricing.Default()
		table = func() *pricing.Table { return def }
	}
	if notifier == nil {
		notifier = &LogNotifier{Logger: logger}
	}
	return &Service{
		orders:    orders,
		discounts: discounts,
		table:     table,
		notifier:  notifier,
		logger:    logger,
		now:       time.Now,
	}
}

// Quote prices totalQty cards under the current tier table, applying an
// optional discount code.
func (s *Service) Quote(ctx context.Context, totalQty int, discountCode string) (*Quote, error) {
	if totalQty <= 0 {
		return nil, ErrEmptyOrder
	}

	table := s.table()
	quote := &Quote{
		TotalQty:  totalQty,
		UnitPrice: table.UnitPrice(totalQty),
	}
	quote.Subtotal = pricing.Round2(quote.UnitPrice * float64(totalQty))
	quote.Total = quote.Subtotal

	discountCode = strings.ToUpper(strings.TrimSpace(discountCode))
	if discountCode != "" {
		code, err := s.discounts.GetByCode(ctx, discountCode)
		if err != nil {
			return nil, fmt.Errorf("look up discount code: %w", err)
		}
		if code == nil || !code.Usable(s.now()) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidDiscount, discountCode)
		}
		quote.DiscountCode = code.Code
		quote.DiscountPercent = code.Percent
		quote.Total = pricing.Round2(quote.Subtotal * (100 - float64(code.Percent)) / 100)
	}
	return quote, nil
}

// CreateOrder prices the deck and records a pending order with one line per
// deck entry. The quoted amounts are frozen on the order; later tier table
// changes do not reprice it.
func (s *Service) CreateOrder(ctx context.Context, userID string, d *deck.Deck, discountCode string) (*models.Order, error) {
	quote, err := s.Quote(ctx, d.TotalCards(), discountCode)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	order := &models.Order{
		ID:              uuid.NewString(),
		UserID:          userID,
		Status:          models.OrderStatusPending,
		TotalQty:        quote.TotalQty,
		UnitPrice:       quote.UnitPrice,
		Subtotal:        quote.Subtotal,
		DiscountCode:    quote.DiscountCode,
		DiscountPercent: quote.DiscountPercent,
		Total:           quote.Total,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	entries := d.Entries()
	lines := make([]*models.OrderLine, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, &models.OrderLine{
			OrderID:         order.ID,
			CardID:          e.Card.ID,
			Name:            e.Card.Name,
			SetCode:         e.Card.SetCode,
			CollectorNumber: e.Card.CollectorNumber,
			Quantity:        e.Quantity,
			UnitPrice:       quote.UnitPrice,
		})
	}

	if err := s.orders.Create(ctx, order, lines); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	s.logger.Info("order created", "order_id", order.ID, "user_id", userID,
		"total_qty", order.TotalQty, "total", order.Total)
	return order, nil
}

// GetOrder retrieves an order with its lines.
func (s *Service) GetOrder(ctx context.Context, id string) (*models.Order, []*models.OrderLine, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	lines, err := s.orders.GetLines(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("get order lines: %w", err)
	}
	return order, lines, nil
}

// ConfirmPayment marks a pending order paid. Confirming an order that has
// already moved past pending is a no-op, so payment webhooks can retry
// safely.
func (s *Service) ConfirmPayment(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	if order.Status != models.OrderStatusPending {
		return order, nil
	}

	if err := s.orders.UpdateStatus(ctx, id, models.OrderStatusPaid); err != nil {
		return nil, fmt.Errorf("mark order paid: %w", err)
	}
	order.Status = models.OrderStatusPaid
	s.notifier.OrderPaid(ctx, order)
	return order, nil
}

// Fulfill marks a paid order shipped. Shipped orders are a no-op; pending
// orders are rejected.
func (s *Service) Fulfill(ctx context.Context, id string) (*models.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
	}
	switch order.Status {
	case models.OrderStatusShipped:
		return order, nil
	case models.OrderStatusPending:
		return nil, fmt.Errorf("%w: %s", ErrNotPaid, id)
	}

	if err := s.orders.UpdateStatus(ctx, id, models.OrderStatusShipped); err != nil {
		return nil, fmt.Errorf("mark order shipped: %w", err)
	}
	order.Status = models.OrderStatusShipped
	s.notifier.OrderShipped(ctx, order)
	return order, nil
}

// ListOrders retrieves recent orders, optionally filtered by status.
func (s *Service) ListOrders(ctx context.Context, status string, limit int) ([]*models.Order, error) {
	if limit <= 0 {
		limit = 50
	}
	if status != "" {
		switch status {
		case models.OrderStatusPending, models.OrderStatusPaid, models.OrderStatusShipped:
		default:
			return nil, fmt.Errorf("unknown order status %q", status)
		}
	}
	orders, err := s.orders.List(ctx, status, limit)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
