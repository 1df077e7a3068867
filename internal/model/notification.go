package model

import "time"

const (
	NotificationOrder   = "order"
	NotificationPayment = "payment"
	NotificationSystem  = "system"
	NotificationAlert   = "alert"
)

type Notification struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Title       string    `json:"title"`
	Message     string    `json:"message"`
	Time        string    `json:"time"` // relative display time, recomputed on every read
	Read        bool      `json:"read"`
	TableNumber string    `json:"tableNumber,omitempty"`
	OrderID     string    `json:"orderId,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}
