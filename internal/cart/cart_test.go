package cart

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"queueless/internal/model"
)

func menuItem(id, name string, price float64) model.MenuItem {
	return model.MenuItem{ID: id, Name: name, Price: price, Category: "Test", Available: true}
}

func TestAddIncrementsExisting(t *testing.T) {
	c := New()
	item := menuItem("1", "Cappuccino", 5.00)

	c.Add(item)
	c.Add(item)
	c.Add(item)

	assert.Equal(t, 3, c.QuantityOf("1"))

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "Cappuccino", items[0].Name)
}

func TestRemoveDecrementsAndDropsAtZero(t *testing.T) {
	c := New()
	c.Add(menuItem("1", "Cappuccino", 5.00))
	c.Add(menuItem("1", "Cappuccino", 5.00))

	c.Remove("1")
	assert.Equal(t, 1, c.QuantityOf("1"))

	c.Remove("1")
	assert.Equal(t, 0, c.QuantityOf("1"))
	assert.Empty(t, c.Items())

	// Removing an absent id is a no-op
	c.Remove("1")
	assert.Equal(t, 0, c.QuantityOf("1"))
}

func TestQuantityNeverBelowOneWhilePresent(t *testing.T) {
	c := New()
	adds, removes := 5, 3
	for i := 0; i < adds; i++ {
		c.Add(menuItem("1", "Lemonade", 4.00))
	}
	for i := 0; i < removes; i++ {
		c.Remove("1")
	}

	assert.Equal(t, adds-removes, c.QuantityOf("1"))
	for _, item := range c.Items() {
		assert.GreaterOrEqual(t, item.Quantity, 1)
	}
}

func TestTotals(t *testing.T) {
	c := New()
	assert.Equal(t, Totals{}, c.Totals())

	c.Add(menuItem("1", "Cappuccino", 5.00))
	c.Add(menuItem("1", "Cappuccino", 5.00))
	c.Add(menuItem("2", "Margherita Pizza", 15.00))

	got := c.Totals()
	assert.Equal(t, 3, got.ItemCount)
	assert.Equal(t, 25.00, got.Amount)
}

func TestItemsPreserveInsertionOrder(t *testing.T) {
	c := New()
	c.Add(menuItem("2", "Pizza", 15.00))
	c.Add(menuItem("1", "Cappuccino", 5.00))
	c.Add(menuItem("2", "Pizza", 15.00))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "2", items[0].ID)
	assert.Equal(t, "1", items[1].ID)
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(menuItem("1", "Cappuccino", 5.00))
	c.Clear()
	assert.Empty(t, c.Items())
	assert.Equal(t, Totals{}, c.Totals())
}

func TestRegistryGetCreatesAndReuses(t *testing.T) {
	r := NewRegistry()

	tok, err := NewToken()
	require.NoError(t, err)
	assert.Len(t, tok, 32)

	c := r.Get(tok)
	c.Add(menuItem("1", "Cappuccino", 5.00))

	again := r.Get(tok)
	assert.Equal(t, 1, again.QuantityOf("1"))

	other := r.Get("another-token")
	assert.Equal(t, 0, other.QuantityOf("1"))
}

func TestRegistryCleanupDropsIdleCarts(t *testing.T) {
	r := NewRegistry()
	r.ttl = 10 * time.Millisecond

	c := r.Get("stale")
	c.Add(menuItem("1", "Cappuccino", 5.00))

	time.Sleep(20 * time.Millisecond)
	r.Cleanup()

	fresh := r.Get("stale")
	assert.Equal(t, 0, fresh.QuantityOf("1"))
}

func TestRegistryDrop(t *testing.T) {
	r := NewRegistry()
	r.Get("tok").Add(menuItem("1", "Cappuccino", 5.00))
	r.Drop("tok")
	assert.Equal(t, 0, r.Get("tok").QuantityOf("1"))
}
