package checkout

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"queueless/internal/cart"
	"queueless/internal/database"
	"queueless/internal/model"
	"queueless/internal/order"
	"queueless/internal/store"
)

func setupProcessor(t *testing.T, opts ...Option) (*Processor, *store.OrderStore, *store.NotificationStore) {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	orders := store.NewOrderStore(db)
	notifications := store.NewNotificationStore(db)
	opts = append([]Option{WithPaymentDelay(0)}, opts...)
	p := NewProcessor(orders, notifications, slog.Default(), opts...)
	return p, orders, notifications
}

func cartWith(items ...model.CartItem) *cart.Cart {
	c := cart.New()
	for _, item := range items {
		for i := 0; i < item.Quantity; i++ {
			c.Add(item.MenuItem)
		}
	}
	return c
}

func TestSubmitEndToEnd(t *testing.T) {
	p, orders, notifications := setupProcessor(t)

	c := cartWith(
		model.CartItem{MenuItem: model.MenuItem{ID: "1", Name: "Cappuccino", Price: 5.00, Category: "Beverages"}, Quantity: 2},
		model.CartItem{MenuItem: model.MenuItem{ID: "2", Name: "Margherita Pizza", Price: 15.00, Category: "Main Course"}, Quantity: 1},
	)

	o, err := p.Submit(context.Background(), c, Request{
		TableNumber:   "7",
		CustomerName:  "Alice",
		PaymentMethod: "cash",
	})
	require.NoError(t, err)

	assert.Equal(t, 25.00, o.Subtotal)
	assert.Equal(t, 2.50, o.Tax)
	assert.Equal(t, 27.50, o.Total)
	assert.Equal(t, model.OrderPending, o.Status)
	assert.Equal(t, "7", o.TableNumber)
	assert.Equal(t, "cash", o.PaymentMethod)

	stored, err := orders.List()
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, o.ID, stored[0].ID)
	assert.Equal(t, 27.50, stored[0].Total)
	require.Len(t, stored[0].Items, 2)

	feed, err := notifications.List()
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, model.NotificationOrder, feed[0].Type)
	assert.Equal(t, "New Order Received", feed[0].Title)
	assert.Equal(t, o.ID, feed[0].OrderID)
	assert.Equal(t, "2x Cappuccino, 1x Margherita Pizza ordered by Alice", feed[0].Message)
	assert.False(t, feed[0].Read)

	// Cart is cleared after a successful checkout
	assert.Empty(t, c.Items())
}

func TestSubmitRejectsEmptyCustomerName(t *testing.T) {
	p, orders, notifications := setupProcessor(t)

	c := cartWith(model.CartItem{MenuItem: model.MenuItem{ID: "1", Name: "Cappuccino", Price: 5.00}, Quantity: 1})

	for _, name := range []string{"", "   "} {
		_, err := p.Submit(context.Background(), c, Request{CustomerName: name, PaymentMethod: "card"})
		var verr ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "customer_name", verr.Field)
	}

	// Nothing was written and the cart is intact
	stored, err := orders.List()
	require.NoError(t, err)
	assert.Empty(t, stored)

	feed, err := notifications.List()
	require.NoError(t, err)
	assert.Empty(t, feed)

	assert.Equal(t, 1, c.QuantityOf("1"))
}

func TestSubmitRejectsUnknownPaymentMethod(t *testing.T) {
	p, orders, _ := setupProcessor(t)

	c := cartWith(model.CartItem{MenuItem: model.MenuItem{ID: "1", Name: "Cappuccino", Price: 5.00}, Quantity: 1})

	_, err := p.Submit(context.Background(), c, Request{CustomerName: "Alice", PaymentMethod: "cheque"})
	var verr ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "payment_method", verr.Field)

	stored, err := orders.List()
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestSubmitRejectsEmptyCart(t *testing.T) {
	p, _, _ := setupProcessor(t)

	_, err := p.Submit(context.Background(), cart.New(), Request{CustomerName: "Alice", PaymentMethod: "card"})
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestSubmitTaxIsTenPercent(t *testing.T) {
	p, _, _ := setupProcessor(t)

	c := cartWith(model.CartItem{MenuItem: model.MenuItem{ID: "1", Name: "Lava Cake", Price: 7.99}, Quantity: 3})

	o, err := p.Submit(context.Background(), c, Request{CustomerName: "Bob", PaymentMethod: "upi"})
	require.NoError(t, err)

	assert.Equal(t, 23.97, o.Subtotal)
	assert.Equal(t, 2.40, o.Tax) // 2.397 rounded to two decimals
	assert.Equal(t, 26.37, o.Total)
}

func TestSubmitCallbackReceivesOrderAndNotification(t *testing.T) {
	var gotOrder *model.Order
	var gotNotif *model.Notification
	p, _, _ := setupProcessor(t, WithOrderCallback(func(o *model.Order, n *model.Notification) {
		gotOrder, gotNotif = o, n
	}))

	c := cartWith(model.CartItem{MenuItem: model.MenuItem{ID: "1", Name: "Cappuccino", Price: 5.00}, Quantity: 1})

	o, err := p.Submit(context.Background(), c, Request{CustomerName: "Alice", PaymentMethod: "card"})
	require.NoError(t, err)
	require.NotNil(t, gotOrder)
	require.NotNil(t, gotNotif)
	assert.Equal(t, o.ID, gotOrder.ID)
	assert.Equal(t, o.ID, gotNotif.OrderID)
}

func TestSubmittedOrderFollowsLifecycle(t *testing.T) {
	p, orders, _ := setupProcessor(t)

	c := cartWith(model.CartItem{MenuItem: model.MenuItem{ID: "1", Name: "Cappuccino", Price: 5.00}, Quantity: 1})
	o, err := p.Submit(context.Background(), c, Request{CustomerName: "Alice", PaymentMethod: "card"})
	require.NoError(t, err)

	// pending -> preparing -> completed is legal and monotonic
	updated, err := orders.UpdateStatus(o.ID, model.OrderPreparing)
	require.NoError(t, err)
	assert.Equal(t, model.OrderPreparing, updated.Status)

	updated, err = orders.UpdateStatus(o.ID, model.OrderCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, updated.Status)

	// completed is terminal
	_, err = orders.UpdateStatus(o.ID, model.OrderPreparing)
	assert.ErrorIs(t, err, order.ErrInvalidTransition)

	got, err := orders.GetByID(o.ID)
	require.NoError(t, err)
	assert.Equal(t, model.OrderCompleted, got.Status)
}

func TestNewIDsAreUniqueAndTimeBased(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := newID("ORDER")
		assert.Regexp(t, `^ORDER-\d+$`, id)
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}
