package domain

import (
	"context"
	"time"
)

// Identity is the uniqueness-bearing handle record, decoupled from the
// account profile. A handle is unique across the whole registry regardless
// of which account kind references it.
type Identity struct {
	ID        string    `json:"id"` // UUID
	Handle    string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// IdentityRepository defines data access for the identity registry.
// Lookups return nil (no error) when the record is absent; the schema-level
// UNIQUE constraint on handle is the authoritative conflict signal and
// surfaces as an ErrConflict from Create and UpdateHandle.
type IdentityRepository interface {
	Create(ctx context.Context, handle string) (*Identity, error)
	GetByID(ctx context.Context, id string) (*Identity, error)
	GetByHandle(ctx context.Context, handle string) (*Identity, error)
	UpdateHandle(ctx context.Context, id, handle string) (*Identity, error)
	Delete(ctx context.Context, id string) error
}
