package domain

import (
	"context"
	"time"
)

// User represents a personal account
type User struct {
	ID           string // UUID
	Email        string // Unique email address within users
	Name         string
	Surname      string
	Age          int
	UsernameID   string // UUID of the identity holding the public handle
	PasswordHash string // Bcrypt hashed password (not returned in API)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SafeUser is the projection of a User returned to clients.
// The password digest never appears here.
type SafeUser struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	UsernameID string `json:"username_id"`
	Name       string `json:"name"`
	Surname    string `json:"surname,omitempty"`
	Age        int    `json:"age"`
}

// Safe returns the client-facing projection of the user.
func (u *User) Safe() SafeUser {
	return SafeUser{
		ID:         u.ID,
		Email:      u.Email,
		UsernameID: u.UsernameID,
		Name:       u.Name,
		Surname:    u.Surname,
		Age:        u.Age,
	}
}

// Business represents a business account
type Business struct {
	ID           string // UUID
	Email        string // Unique email address within businesses
	Name         string
	UsernameID   string // UUID of the identity holding the public handle
	Category     string
	Description  string
	Address      string
	PasswordHash string // Bcrypt hashed password (not returned in API)
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// SafeBusiness is the projection of a Business returned to clients.
type SafeBusiness struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	UsernameID  string `json:"username_id"`
	Email       string `json:"email"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Address     string `json:"address"`
}

// Safe returns the client-facing projection of the business.
func (b *Business) Safe() SafeBusiness {
	return SafeBusiness{
		ID:          b.ID,
		Name:        b.Name,
		UsernameID:  b.UsernameID,
		Email:       b.Email,
		Category:    b.Category,
		Description: b.Description,
		Address:     b.Address,
	}
}

// UserRepository defines data access for users
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// Update applies the given column/value pairs. Returns ErrUpdateFailed
	// when no row was affected.
	Update(ctx context.Context, id string, fields map[string]any) (*User, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}

// BusinessRepository defines data access for businesses
type BusinessRepository interface {
	Create(ctx context.Context, business *Business) error
	GetByID(ctx context.Context, id string) (*Business, error)
	GetByEmail(ctx context.Context, email string) (*Business, error)
	Update(ctx context.Context, id string, fields map[string]any) (*Business, error)
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
