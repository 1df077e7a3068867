package model

import "time"

// User is a restaurant operator account together with its business profile.
type User struct {
	ID             int64     `json:"id"`
	Email          string    `json:"email"`
	PasswordHash   string    `json:"-"`
	BusinessName   string    `json:"businessName"`
	OwnerName      string    `json:"ownerName"`
	Phone          string    `json:"phone"`
	BusinessType   string    `json:"businessType"`
	NumberOfTables int       `json:"numberOfTables"`
	Plan           string    `json:"plan"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
