package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"queueless/internal/model"
)

type MenuStore struct {
	db *sql.DB
}

func NewMenuStore(db *sql.DB) *MenuStore {
	return &MenuStore{db: db}
}

func scanMenuItem(scanner interface{ Scan(...any) error }) (*model.MenuItem, error) {
	var m model.MenuItem
	var available int

	err := scanner.Scan(
		&m.ID, &m.Name, &m.Description, &m.Price, &m.Category,
		&available, &m.ImageURL, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	m.Available = available != 0
	return &m, nil
}

const menuItemCols = `id, name, description, price, category, available, image_url, created_at, updated_at`

// ListAvailable returns the customer-facing catalog: available items only,
// oldest first so the seeded ordering is stable.
func (s *MenuStore) ListAvailable() ([]model.MenuItem, error) {
	return s.list(`SELECT ` + menuItemCols + ` FROM menu_items WHERE available = 1 ORDER BY created_at ASC, id ASC`)
}

// ListAll returns every item, for the staff menu editor.
func (s *MenuStore) ListAll() ([]model.MenuItem, error) {
	return s.list(`SELECT ` + menuItemCols + ` FROM menu_items ORDER BY created_at ASC, id ASC`)
}

func (s *MenuStore) list(query string) ([]model.MenuItem, error) {
	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	var items []model.MenuItem
	for rows.Next() {
		m, err := scanMenuItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}
		items = append(items, *m)
	}
	return items, rows.Err()
}

func (s *MenuStore) GetByID(id string) (*model.MenuItem, error) {
	row := s.db.QueryRow(`SELECT `+menuItemCols+` FROM menu_items WHERE id = ?`, id)
	m, err := scanMenuItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get menu item: %w", err)
	}
	return m, nil
}

func (s *MenuStore) Create(name, description string, price float64, category, imageURL string) (*model.MenuItem, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		`INSERT INTO menu_items (id, name, description, price, category, image_url) VALUES (?, ?, ?, ?, ?, ?)`,
		id, name, description, price, category, imageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("insert menu item: %w", err)
	}
	return s.GetByID(id)
}

func (s *MenuStore) Update(id, name, description string, price float64, category, imageURL string) (*model.MenuItem, error) {
	_, err := s.db.Exec(
		`UPDATE menu_items SET name = ?, description = ?, price = ?, category = ?, image_url = ?, updated_at = ? WHERE id = ?`,
		name, description, price, category, imageURL, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update menu item: %w", err)
	}
	return s.GetByID(id)
}

// Upsert inserts the item or replaces an existing row with the same id,
// preserving availability on replace. Used by the CSV bulk import.
func (s *MenuStore) Upsert(item model.MenuItem) (*model.MenuItem, error) {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	available := 0
	if item.Available {
		available = 1
	}
	_, err := s.db.Exec(
		`INSERT INTO menu_items (id, name, description, price, category, available, image_url)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name, description = excluded.description, price = excluded.price,
		   category = excluded.category, image_url = excluded.image_url, updated_at = datetime('now')`,
		item.ID, item.Name, item.Description, item.Price, item.Category, available, item.ImageURL,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert menu item: %w", err)
	}
	return s.GetByID(item.ID)
}

// ToggleAvailability flips the available flag. Returns nil for unknown ids.
func (s *MenuStore) ToggleAvailability(id string) (*model.MenuItem, error) {
	item, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, nil
	}

	next := 1
	if item.Available {
		next = 0
	}
	_, err = s.db.Exec(
		`UPDATE menu_items SET available = ?, updated_at = ? WHERE id = ?`,
		next, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("toggle availability: %w", err)
	}
	return s.GetByID(id)
}

func (s *MenuStore) Delete(id string) error {
	_, err := s.db.Exec(`DELETE FROM menu_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete menu item: %w", err)
	}
	return nil
}

// Categories returns the distinct category labels currently in use, derived
// from the items rather than stored as a first-class entity.
func (s *MenuStore) Categories() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT category FROM menu_items WHERE category != '' ORDER BY category ASC`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}
