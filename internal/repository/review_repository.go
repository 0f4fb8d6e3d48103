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

// PostgresReviewRepository implements domain.ReviewRepository using
// PostgreSQL. Writes are upserts on the (user_id, business_id) pair so that
// content and rating can be set independently without clobbering each other.
type PostgresReviewRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresReviewRepository creates a new review repository
func NewPostgresReviewRepository(db *sql.DB, logger *slog.Logger) *PostgresReviewRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewRepository{
		db:     db,
		logger: logger,
	}
}

// UpsertContent sets the free-text content of the user's review.
func (r *PostgresReviewRepository) UpsertContent(ctx context.Context, userID, businessID, content string) (*domain.Review, error) {
	query := `
		INSERT INTO reviews (id, user_id, business_id, content)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, business_id)
		DO UPDATE SET content = EXCLUDED.content, updated_at = now()
		RETURNING id, user_id, business_id, content, rating, created_at, updated_at
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, uuid.NewString(), userID, businessID, content))
}

// UpsertRating sets the numeric rating of the user's review.
func (r *PostgresReviewRepository) UpsertRating(ctx context.Context, userID, businessID string, rating int) (*domain.Review, error) {
	query := `
		INSERT INTO reviews (id, user_id, business_id, rating)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, business_id)
		DO UPDATE SET rating = EXCLUDED.rating, updated_at = now()
		RETURNING id, user_id, business_id, content, rating, created_at, updated_at
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, uuid.NewString(), userID, businessID, rating))
}

func (r *PostgresReviewRepository) scanOne(row *sql.Row) (*domain.Review, error) {
	review := &domain.Review{}
	err := row.Scan(
		&review.ID,
		&review.UserID,
		&review.BusinessID,
		&review.Content,
		&review.Rating,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert review: %w", err)
	}

	return review, nil
}

// DeleteByUser removes all reviews written by a user and returns how many
// rows were removed.
func (r *PostgresReviewRepository) DeleteByUser(ctx context.Context, userID string) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE user_id = $1`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete reviews: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to check rows affected: %w", err)
	}

	return int(rows), nil
}

// List returns all reviews.
func (r *PostgresReviewRepository) List(ctx context.Context) ([]*domain.Review, error) {
	return r.list(ctx, `SELECT id, user_id, business_id, content, rating, created_at, updated_at FROM reviews`)
}

// ListByBusiness returns the reviews of one business.
func (r *PostgresReviewRepository) ListByBusiness(ctx context.Context, businessID string) ([]*domain.Review, error) {
	return r.list(ctx, `SELECT id, user_id, business_id, content, rating, created_at, updated_at FROM reviews WHERE business_id = $1`, businessID)
}

func (r *PostgresReviewRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []*domain.Review{}
	for rows.Next() {
		review := &domain.Review{}
		err := rows.Scan(
			&review.ID,
			&review.UserID,
			&review.BusinessID,
			&review.Content,
			&review.Rating,
			&review.CreatedAt,
			&review.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, review)
	}

	return reviews, rows.Err()
}

// RatingForBusiness aggregates the non-null ratings of one business.
func (r *PostgresReviewRepository) RatingForBusiness(ctx context.Context, businessID string) (*domain.RatingSummary, error) {
	summary := &domain.RatingSummary{BusinessID: businessID}

	var avg sql.NullFloat64
	err := r.db.QueryRowContext(
		ctx,
		`SELECT AVG(rating), COUNT(rating) FROM reviews WHERE business_id = $1 AND rating IS NOT NULL`,
		businessID,
	).Scan(&avg, &summary.Count)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to aggregate rating: %w", err)
	}
	if avg.Valid {
		summary.Rating = avg.Float64
	}

	return summary, nil
}
