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

// PostgresCommentRepository implements domain.CommentRepository using PostgreSQL
type PostgresCommentRepository struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresCommentRepository creates a new comment repository
func NewPostgresCommentRepository(db *sql.DB, logger *slog.Logger) *PostgresCommentRepository {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCommentRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new comment.
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	if comment.ID == "" {
		comment.ID = uuid.NewString()
	}

	query := `
		INSERT INTO comments (id, user_id, post_id, content)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		comment.ID,
		comment.UserID,
		comment.PostID,
		comment.Content,
	).Scan(&comment.CreatedAt)
	if err != nil {
		r.logger.Error("failed to create comment",
			slog.String("post_id", comment.PostID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

// Update replaces a comment's content and returns the updated row.
func (r *PostgresCommentRepository) Update(ctx context.Context, id, content string) (*domain.Comment, error) {
	comment := &domain.Comment{}

	query := `
		UPDATE comments
		SET content = $1
		WHERE id = $2
		RETURNING id, user_id, post_id, content, created_at
	`

	err := r.db.QueryRowContext(ctx, query, content, id).Scan(
		&comment.ID,
		&comment.UserID,
		&comment.PostID,
		&comment.Content,
		&comment.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NewUpdateFailed("Error al actualizar comentario")
		}
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}

	return comment, nil
}

// Delete removes a comment row.
func (r *PostgresCommentRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return domain.NewDeleteFailed("No se pudo eliminar el comentario")
	}

	return nil
}

// List returns all comments, newest first.
func (r *PostgresCommentRepository) List(ctx context.Context) ([]*domain.Comment, error) {
	return r.list(ctx, `SELECT id, user_id, post_id, content, created_at FROM comments ORDER BY created_at DESC`)
}

// ListByPost returns the comments of one post, newest first.
func (r *PostgresCommentRepository) ListByPost(ctx context.Context, postID string) ([]*domain.Comment, error) {
	return r.list(ctx, `SELECT id, user_id, post_id, content, created_at FROM comments WHERE post_id = $1 ORDER BY created_at DESC`, postID)
}

func (r *PostgresCommentRepository) list(ctx context.Context, query string, args ...any) ([]*domain.Comment, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	defer rows.Close()

	comments := []*domain.Comment{}
	for rows.Next() {
		comment := &domain.Comment{}
		err := rows.Scan(
			&comment.ID,
			&comment.UserID,
			&comment.PostID,
			&comment.Content,
			&comment.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}
