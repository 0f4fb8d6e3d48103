package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/yourorg/vecino/internal/domain"
)

// PostgresLikeRepository implements domain.LikeRepository over the user_post
// pair table. The composite primary key catches duplicate likes; clients see
// that as a plain validation failure, not a 409.
type PostgresLikeRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresLikeRepository creates a new like repository
func NewPostgresLikeRepository(db *sql.DB, logger *slog.Logger) *PostgresLikeRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresLikeRepository{
		db:     db,
		logger: logger,
	}
}

// Create records a like. Liking the same post twice is rejected.
func (r *PostgresLikeRepository) Create(ctx context.Context, userID, postID string) error {
	_, err := r.db.ExecContext(
		ctx,
		`INSERT INTO user_post (user_id, post_id) VALUES ($1, $2)`,
		userID, postID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.NewInvalidInput("Ya diste like a este post")
		}
		return fmt.Errorf("failed to create like: %w", err)
	}

	return nil
}

// Delete removes a like. Removing an absent like is not an error.
func (r *PostgresLikeRepository) Delete(ctx context.Context, userID, postID string) error {
	_, err := r.db.ExecContext(
		ctx,
		`DELETE FROM user_post WHERE user_id = $1 AND post_id = $2`,
		userID, postID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete like: %w", err)
	}

	return nil
}

// CountByPost returns the number of likes on a post.
func (r *PostgresLikeRepository) CountByPost(ctx context.Context, postID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM user_post WHERE post_id = $1`,
		postID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count likes: %w", err)
	}

	return count, nil
}
