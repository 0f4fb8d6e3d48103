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

// feedPostQuery joins each post with its business summary plus like and
// comment counts so listings stay a single round trip.
const feedPostQuery = `
	SELECT
		p.id, p.business_id, p.content, p.created_at,
		b.id, b.name, b.category,
		COALESCE(l.likes, 0), COALESCE(c.comments, 0)
	FROM posts p
	JOIN businesses b ON b.id = p.business_id
	LEFT JOIN (
		SELECT post_id, COUNT(*) AS likes FROM user_post GROUP BY post_id
	) l ON l.post_id = p.id
	LEFT JOIN (
		SELECT post_id, COUNT(*) AS comments FROM comments GROUP BY post_id
	) c ON c.post_id = p.id
`

// PostgresPostRepository implements domain.PostRepository using PostgreSQL
type PostgresPostRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresPostRepository creates a new post repository
func NewPostgresPostRepository(db *sql.DB, logger *slog.Logger) *PostgresPostRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPostRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new post.
func (r *PostgresPostRepository) Create(ctx context.Context, post *domain.Post) error {
	if post.ID == "" {
		post.ID = uuid.NewString()
	}

	query := `
		INSERT INTO posts (id, business_id, content)
		VALUES ($1, $2, $3)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(ctx, query, post.ID, post.BusinessID, post.Content).Scan(&post.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create post",
			slog.String("business_id", post.BusinessID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create post: %w", err)
	}

	return nil
}

// GetByID retrieves a post with its counters. Returns nil when absent.
func (r *PostgresPostRepository) GetByID(ctx context.Context, id string) (*domain.FeedPost, error) {
	post := &domain.FeedPost{}

	err := r.db.QueryRowContext(ctx, feedPostQuery+` WHERE p.id = $1`, id).Scan(
		&post.ID,
		&post.BusinessID,
		&post.Content,
		&post.CreatedAt,
		&post.Business.ID,
		&post.Business.Name,
		&post.Business.Category,
		&post.Likes,
		&post.CommentsCount,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get post: %w", err)
	}

	return post, nil
}

// List returns all posts, newest first.
func (r *PostgresPostRepository) List(ctx context.Context) ([]*domain.FeedPost, error) {
	return r.list(ctx, feedPostQuery+` ORDER BY p.created_at DESC`)
}

// ListByBusiness returns the posts of one business, newest first.
func (r *PostgresPostRepository) ListByBusiness(ctx context.Context, businessID string) ([]*domain.FeedPost, error) {
	return r.list(ctx, feedPostQuery+` WHERE p.business_id = $1 ORDER BY p.created_at DESC`, businessID)
}

func (r *PostgresPostRepository) list(ctx context.Context, query string, args ...any) ([]*domain.FeedPost, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	defer rows.Close()

	posts := []*domain.FeedPost{}
	for rows.Next() {
		post := &domain.FeedPost{}
		err := rows.Scan(
			&post.ID,
			&post.BusinessID,
			&post.Content,
			&post.CreatedAt,
			&post.Business.ID,
			&post.Business.Name,
			&post.Business.Category,
			&post.Likes,
			&post.CommentsCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan post: %w", err)
		}
		posts = append(posts, post)
	}

	return posts, rows.Err()
}

// Delete removes a post row.
func (r *PostgresPostRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete post: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.NewDeleteFailed("No se pudo eliminar el post")
	}

	return nil
}
