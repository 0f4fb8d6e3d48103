package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/yourorg/vecino/internal/domain"
)

// PostgresIdentityRepository implements domain.IdentityRepository using the
// usernames table.
type PostgresIdentityRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresIdentityRepository creates a new identity repository
func NewPostgresIdentityRepository(db *sql.DB, logger *slog.Logger) *PostgresIdentityRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresIdentityRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new handle. A duplicate handle surfaces as a conflict.
func (r *PostgresIdentityRepository) Create(ctx context.Context, handle string) (*domain.Identity, error) {
	identity := &domain.Identity{
		ID:     uuid.NewString(),
		Handle: handle,
	}

	query := `
		INSERT INTO usernames (id, username)
		VALUES ($1, $2)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, identity.ID, identity.Handle).Scan(&identity.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.NewConflict("El nombre de usuario ya está registrado")
		}
		r.logger.Error("failed to create identity",
			slog.String("handle", handle),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	return identity, nil
}

// GetByID retrieves an identity by id. Returns nil when absent.
func (r *PostgresIdentityRepository) GetByID(ctx context.Context, id string) (*domain.Identity, error) {
	return r.getOne(ctx, `SELECT id, username, created_at FROM usernames WHERE id = $1`, id)
}

// GetByHandle retrieves an identity by handle. Returns nil when absent.
func (r *PostgresIdentityRepository) GetByHandle(ctx context.Context, handle string) (*domain.Identity, error) {
	return r.getOne(ctx, `SELECT id, username, created_at FROM usernames WHERE username = $1`, handle)
}

func (r *PostgresIdentityRepository) getOne(ctx context.Context, query, arg string) (*domain.Identity, error) {
	identity := &domain.Identity{}

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&identity.ID,
		&identity.Handle,
		&identity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get identity: %w", err)
	}

	return identity, nil
}

// UpdateHandle renames an identity. A handle held by another identity
// surfaces as a conflict; an absent id as update-failed.
func (r *PostgresIdentityRepository) UpdateHandle(ctx context.Context, id, handle string) (*domain.Identity, error) {
	identity := &domain.Identity{}

	query := `
		UPDATE usernames
		SET username = $1
		WHERE id = $2
		RETURNING id, username, created_at
	`

	err := r.db.QueryRowContext(ctx, query, handle, id).Scan(
		&identity.ID,
		&identity.Handle,
		&identity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewUpdateFailed("No existe el usuario")
		}
		if isUniqueViolation(err) {
			return nil, domain.NewConflict("El nombre de usuario ya está registrado")
		}
		return nil, fmt.Errorf("failed to update identity: %w", err)
	}

	return identity, nil
}

// Delete removes an identity. Absence is not an error at this layer.
func (r *PostgresIdentityRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM usernames WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete identity: %w", err)
	}
	return nil
}
