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

const businessColumns = `id, email, name, username_id, category, description, address, password_hash, created_at, updated_at`

// PostgresBusinessRepository implements domain.BusinessRepository using PostgreSQL
type PostgresBusinessRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresBusinessRepository creates a new business repository
func NewPostgresBusinessRepository(db *sql.DB, logger *slog.Logger) *PostgresBusinessRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresBusinessRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new business. A duplicate email surfaces as a conflict.
func (r *PostgresBusinessRepository) Create(ctx context.Context, business *domain.Business) error {
	if business.ID == "" {
		business.ID = uuid.NewString()
	}

	query := `
		INSERT INTO businesses (id, email, name, username_id, category, description, address, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		business.ID,
		business.Email,
		business.Name,
		business.UsernameID,
		business.Category,
		business.Description,
		business.Address,
		business.PasswordHash,
	).Scan(&business.CreatedAt, &business.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewConflict("El email o nombre de usuario ya está registrado")
		}
		r.logger.Error("failed to create business",
			slog.String("email", business.Email),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create business: %w", err)
	}

	return nil
}

// GetByID retrieves a business by ID. Returns nil when absent.
func (r *PostgresBusinessRepository) GetByID(ctx context.Context, id string) (*domain.Business, error) {
	return r.getOne(ctx, `SELECT `+businessColumns+` FROM businesses WHERE id = $1`, id)
}

// GetByEmail retrieves a business by email. Returns nil when absent.
func (r *PostgresBusinessRepository) GetByEmail(ctx context.Context, email string) (*domain.Business, error) {
	return r.getOne(ctx, `SELECT `+businessColumns+` FROM businesses WHERE email = $1`, email)
}

func (r *PostgresBusinessRepository) getOne(ctx context.Context, query, arg string) (*domain.Business, error) {
	business := &domain.Business{}

	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&business.ID,
		&business.Email,
		&business.Name,
		&business.UsernameID,
		&business.Category,
		&business.Description,
		&business.Address,
		&business.PasswordHash,
		&business.CreatedAt,
		&business.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get business: %w", err)
	}

	return business, nil
}

// Update applies the given column/value pairs and returns the updated row.
func (r *PostgresBusinessRepository) Update(ctx context.Context, id string, fields map[string]any) (*domain.Business, error) {
	if len(fields) == 0 {
		business, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if business == nil {
			return nil, domain.NewUpdateFailed("No existe el negocio")
		}
		return business, nil
	}

	set, args := buildSetClause(fields)
	args = append(args, id)

	query := fmt.Sprintf(
		`UPDATE businesses SET %s, updated_at = now() WHERE id = $%d RETURNING %s`,
		set, len(args), businessColumns,
	)

	business := &domain.Business{}
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&business.ID,
		&business.Email,
		&business.Name,
		&business.UsernameID,
		&business.Category,
		&business.Description,
		&business.Address,
		&business.PasswordHash,
		&business.CreatedAt,
		&business.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewUpdateFailed("No existe el negocio")
		}
		if isUniqueViolation(err) {
			return nil, domain.NewConflict("El email ya está registrado")
		}
		return nil, fmt.Errorf("failed to update business: %w", err)
	}

	return business, nil
}

// UpdatePassword replaces the stored digest.
func (r *PostgresBusinessRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	result, err := r.db.ExecContext(
		ctx,
		`UPDATE businesses SET password_hash = $1, updated_at = now() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.NewUpdateFailed("Error al cambiar la contraseña")
	}

	return nil
}

// Delete removes a business row.
func (r *PostgresBusinessRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM businesses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete business: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.NewDeleteFailed("No se pudo eliminar el negocio")
	}

	return nil
}
