// Package cart implements the session-scoped cart: an insertion-ordered
// aggregation of menu item snapshots and quantities, held in memory for the
// life of one browsing session and discarded at checkout.
package cart

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math"
	"sync"
	"time"

	"queueless/internal/model"
)

// Totals summarizes a cart for display: the number of units across all lines
// and the sum of price×quantity.
type Totals struct {
	ItemCount int     `json:"itemCount"`
	Amount    float64 `json:"amount"`
}

// Cart holds one session's selections. An item's quantity is always >= 1;
// decrementing past 1 removes the line entirely.
type Cart struct {
	mu    sync.Mutex
	items []model.CartItem
}

func New() *Cart {
	return &Cart{}
}

// Add records one more unit of the given item, snapshotting the menu item's
// fields on first add.
func (c *Cart) Add(item model.MenuItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == item.ID {
			c.items[i].Quantity++
			return
		}
	}
	c.items = append(c.items, model.CartItem{MenuItem: item, Quantity: 1})
}

// Remove takes one unit of the item out of the cart, dropping the line when
// its quantity would reach zero. Unknown ids are ignored.
func (c *Cart) Remove(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID != itemID {
			continue
		}
		if c.items[i].Quantity > 1 {
			c.items[i].Quantity--
		} else {
			c.items = append(c.items[:i], c.items[i+1:]...)
		}
		return
	}
}

// QuantityOf returns the quantity for the given item id, 0 if absent.
func (c *Cart) QuantityOf(itemID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == itemID {
			return c.items[i].Quantity
		}
	}
	return 0
}

// Items returns a copy of the cart lines in insertion order.
func (c *Cart) Items() []model.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]model.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// Totals computes the current unit count and amount.
func (c *Cart) Totals() Totals {
	c.mu.Lock()
	defer c.mu.Unlock()

	var t Totals
	for i := range c.items {
		t.ItemCount += c.items[i].Quantity
		t.Amount += c.items[i].Price * float64(c.items[i].Quantity)
	}
	t.Amount = round2(t.Amount)
	return t
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	c.items = nil
	c.mu.Unlock()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type registryEntry struct {
	cart     *Cart
	lastSeen time.Time
}

// Registry maps opaque session tokens to live carts. Carts are never
// persisted; an idle session's cart simply ages out.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	ttl     time.Duration
}

const defaultTTL = 4 * time.Hour

func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*registryEntry),
		ttl:     defaultTTL,
	}
}

// NewToken mints a session token for the cart cookie.
func NewToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate cart token: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// Get returns the cart for the given token, creating one on first use.
func (r *Registry) Get(token string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[token]
	if !ok {
		e = &registryEntry{cart: New()}
		r.entries[token] = e
	}
	e.lastSeen = time.Now()
	return e.cart
}

// Drop removes the cart for the given token, if any.
func (r *Registry) Drop(token string) {
	r.mu.Lock()
	delete(r.entries, token)
	r.mu.Unlock()
}

// Cleanup removes carts idle past the registry TTL.
func (r *Registry) Cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-r.ttl)
	for token, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, token)
		}
	}
}
