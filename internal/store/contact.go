package store

import (
	"database/sql"
	"fmt"

	"queueless/internal/model"
)

type ContactStore struct {
	db *sql.DB
}

func NewContactStore(db *sql.DB) *ContactStore {
	return &ContactStore{db: db}
}

func scanContactMessage(scanner interface{ Scan(...any) error }) (*model.ContactMessage, error) {
	var m model.ContactMessage
	err := scanner.Scan(
		&m.ID, &m.Name, &m.Email, &m.Phone, &m.BusinessName,
		&m.Subject, &m.Message, &m.Status, &m.SubmittedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

const contactCols = `id, name, email, phone, business_name, subject, message, status, submitted_at`

func (s *ContactStore) Create(name, email, phone, businessName, subject, message string) (*model.ContactMessage, error) {
	result, err := s.db.Exec(
		`INSERT INTO contact_messages (name, email, phone, business_name, subject, message) VALUES (?, ?, ?, ?, ?, ?)`,
		name, email, phone, businessName, subject, message,
	)
	if err != nil {
		return nil, fmt.Errorf("insert contact message: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *ContactStore) GetByID(id int64) (*model.ContactMessage, error) {
	row := s.db.QueryRow(`SELECT `+contactCols+` FROM contact_messages WHERE id = ?`, id)
	m, err := scanContactMessage(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get contact message: %w", err)
	}
	return m, nil
}

func (s *ContactStore) List() ([]model.ContactMessage, error) {
	rows, err := s.db.Query(`SELECT ` + contactCols + ` FROM contact_messages ORDER BY submitted_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list contact messages: %w", err)
	}
	defer rows.Close()

	var messages []model.ContactMessage
	for rows.Next() {
		m, err := scanContactMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan contact message: %w", err)
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}
