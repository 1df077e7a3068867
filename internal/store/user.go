package store

import (
	"database/sql"
	"fmt"
	"time"

	"queueless/internal/model"
)

type UserStore struct {
	db *sql.DB
}

func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

func scanUser(scanner interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := scanner.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.BusinessName, &u.OwnerName,
		&u.Phone, &u.BusinessType, &u.NumberOfTables, &u.Plan, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

const userCols = `id, email, password_hash, business_name, owner_name, phone, business_type, number_of_tables, plan, created_at, updated_at`

func (s *UserStore) Create(email, passwordHash, businessName, ownerName, phone, businessType string, numberOfTables int) (*model.User, error) {
	result, err := s.db.Exec(
		`INSERT INTO users (email, password_hash, business_name, owner_name, phone, business_type, number_of_tables) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		email, passwordHash, businessName, ownerName, phone, businessType, numberOfTables,
	)
	if err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("last insert id: %w", err)
	}
	return s.GetByID(id)
}

func (s *UserStore) GetByID(id int64) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE id = ?`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *UserStore) GetByEmail(email string) (*model.User, error) {
	row := s.db.QueryRow(`SELECT `+userCols+` FROM users WHERE email = ?`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

func (s *UserStore) UpdateProfile(id int64, businessName, ownerName, phone, businessType string, numberOfTables int) (*model.User, error) {
	_, err := s.db.Exec(
		`UPDATE users SET business_name = ?, owner_name = ?, phone = ?, business_type = ?, number_of_tables = ?, updated_at = ? WHERE id = ?`,
		businessName, ownerName, phone, businessType, numberOfTables, time.Now().UTC(), id,
	)
	if err != nil {
		return nil, fmt.Errorf("update user profile: %w", err)
	}
	return s.GetByID(id)
}
