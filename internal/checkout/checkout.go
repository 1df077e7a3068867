// Package checkout turns a session cart into a persisted order: it validates
// the customer's input, prices the cart, simulates the payment round trip,
// and appends the order plus its staff notification.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"sync"
	"time"

	"queueless/internal/cart"
	"queueless/internal/model"
	"queueless/internal/store"
)

// TaxRate is the fixed tax applied to every order's subtotal.
const TaxRate = 0.10

// ErrEmptyCart is returned when checkout is submitted with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// ValidationError reports a rejected checkout field. Nothing is written when
// one is returned.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var paymentMethods = map[string]bool{
	"card": true,
	"upi":  true,
	"cash": true,
}

// Request carries the customer's checkout form.
type Request struct {
	TableNumber         string `json:"table_number"`
	CustomerName        string `json:"customer_name"`
	SpecialInstructions string `json:"special_instructions"`
	PaymentMethod       string `json:"payment_method"`
}

// Processor validates and prices checkouts, writing the resulting order and
// notification through the stores.
type Processor struct {
	orders        *store.OrderStore
	notifications *store.NotificationStore
	onOrder       func(*model.Order, *model.Notification)
	paymentDelay  time.Duration
	logger        *slog.Logger
}

type Option func(*Processor)

// WithPaymentDelay overrides the simulated payment-gateway latency. Zero
// disables the delay (used by tests).
func WithPaymentDelay(d time.Duration) Option {
	return func(p *Processor) {
		p.paymentDelay = d
	}
}

// WithOrderCallback registers a hook invoked after each successful checkout,
// with the stored order and its notification. The server uses it to broadcast
// over WebSocket and fire staff web-push alerts.
func WithOrderCallback(fn func(*model.Order, *model.Notification)) Option {
	return func(p *Processor) {
		p.onOrder = fn
	}
}

func NewProcessor(orders *store.OrderStore, notifications *store.NotificationStore, logger *slog.Logger, opts ...Option) *Processor {
	p := &Processor{
		orders:        orders,
		notifications: notifications,
		paymentDelay:  2 * time.Second,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Submit places an order from the cart's current contents. On success the
// cart is cleared and the new order returned with status pending. Validation
// failures abort before anything is written.
func (p *Processor) Submit(ctx context.Context, c *cart.Cart, req Request) (*model.Order, error) {
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		return nil, ValidationError{Field: "customer_name", Message: "customer name is required"}
	}
	if !paymentMethods[req.PaymentMethod] {
		return nil, ValidationError{Field: "payment_method", Message: "payment method must be card, upi, or cash"}
	}

	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	// Stand-in for the payment gateway round trip. No capture happens.
	if p.paymentDelay > 0 {
		select {
		case <-time.After(p.paymentDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	var subtotal float64
	orderItems := make([]model.OrderItem, 0, len(items))
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
		orderItems = append(orderItems, model.OrderItem{
			ID:       item.ID,
			Name:     item.Name,
			Price:    item.Price,
			Category: item.Category,
			Quantity: item.Quantity,
		})
	}
	subtotal = round2(subtotal)
	tax := round2(subtotal * TaxRate)
	total := round2(subtotal + tax)

	now := time.Now().UTC()
	o := &model.Order{
		ID:                  newID("ORDER"),
		TableNumber:         req.TableNumber,
		CustomerName:        name,
		Items:               orderItems,
		Subtotal:            subtotal,
		Tax:                 tax,
		Total:               total,
		PaymentMethod:       req.PaymentMethod,
		SpecialInstructions: req.SpecialInstructions,
		Status:              model.OrderPending,
		Timestamp:           now,
	}

	if err := p.orders.Create(o); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	n := &model.Notification{
		ID:          newID("NOTIF"),
		Type:        model.NotificationOrder,
		Title:       "New Order Received",
		Message:     summarize(orderItems, name),
		Time:        "Just now",
		TableNumber: req.TableNumber,
		OrderID:     o.ID,
		Timestamp:   now,
	}
	if err := p.notifications.Create(n); err != nil {
		// The order is already placed; a missing feed entry is not worth
		// failing the customer's checkout over.
		p.logger.Error("create order notification", "order_id", o.ID, "error", err)
	}

	c.Clear()

	if p.onOrder != nil {
		p.onOrder(o, n)
	}
	return o, nil
}

// summarize renders the "2x Cappuccino, 1x Caesar Salad ordered by Alice"
// line shown in the notification feed.
func summarize(items []model.OrderItem, customerName string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}
	return fmt.Sprintf("%s ordered by %s", strings.Join(parts, ", "), customerName)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

var (
	idMu     sync.Mutex
	lastUsed int64
)

// newID builds the time-based ids the dashboard sorts by (ORDER-<unix-ms>,
// NOTIF-<unix-ms>), bumping the millisecond value when two ids would collide.
func newID(prefix string) string {
	idMu.Lock()
	defer idMu.Unlock()

	ms := time.Now().UnixMilli()
	if ms <= lastUsed {
		ms = lastUsed + 1
	}
	lastUsed = ms
	return fmt.Sprintf("%s-%d", prefix, ms)
}
