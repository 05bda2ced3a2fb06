package models

import "time"

// Account is the tenant boundary that owns users, categories, expenses and audit logs
type Account struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Category groups expenses of a single account. Names are unique per account.
type Category struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	Icon      string    `json:"icon" db:"icon"`
	AccountID string    `json:"accountId" db:"account_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
