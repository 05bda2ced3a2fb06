package models

import "time"

// Role is the permission level of a user inside its account
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleUser  Role = "USER"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// User represents a member of an account
type User struct {
	ID        string    `json:"id" db:"id" example:"6f1c2a0e-4d3b-4a55-9b61-0c7f1f3f7c11"`
	Name      string    `json:"name" db:"name" example:"Jane Doe"`
	Email     string    `json:"email" db:"email" example:"jane@example.com"`
	Password  string    `json:"-" db:"password"`
	Role      Role      `json:"role" db:"role" example:"ADMIN"`
	AccountID string    `json:"accountId" db:"account_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Sanitized returns a copy of the user without the password hash
func (u User) Sanitized() User {
	u.Password = ""
	return u
}

// UserSummary is the public subset of a user embedded in other records
type UserSummary struct {
	ID    string `json:"id" db:"id"`
	Name  string `json:"name" db:"name"`
	Email string `json:"email" db:"email"`
}
