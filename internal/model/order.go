package model

import "time"

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderCompleted OrderStatus = "completed"
	OrderCancelled OrderStatus = "cancelled"
)

// OrderItem is the per-line snapshot stored with an order: the menu item's
// identity and price as they were when the customer added it to the cart.
type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Quantity int     `json:"quantity"`
}

type Order struct {
	ID                  string      `json:"id"`
	TableNumber         string      `json:"tableNumber"`
	CustomerName        string      `json:"customerName"`
	Items               []OrderItem `json:"items"`
	Subtotal            float64     `json:"subtotal"`
	Tax                 float64     `json:"tax"`
	Total               float64     `json:"total"`
	PaymentMethod       string      `json:"paymentMethod"`
	SpecialInstructions string      `json:"specialInstructions"`
	Status              OrderStatus `json:"status"`
	Timestamp           time.Time   `json:"timestamp"`
}
