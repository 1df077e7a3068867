package model

import "time"

type MenuItem struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Category    string    `json:"category"`
	Available   bool      `json:"available"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CartItem is a snapshot of a menu item taken at add-to-cart time, plus a
// quantity. Orders embed these snapshots rather than referencing the catalog,
// so later menu edits never rewrite order history.
type CartItem struct {
	MenuItem
	Quantity int `json:"quantity"`
}
