package service

import (
	"context"
	"log/slog"

	"github.com/yourorg/vecino/internal/domain"
)

// CommentService handles user comments on posts.
type CommentService struct {
	comments domain.CommentRepository
	posts    domain.PostRepository
	users    domain.UserRepository
	logger   *slog.Logger
}

// NewCommentService creates a new comment service
func NewCommentService(
	comments domain.CommentRepository,
	posts domain.PostRepository,
	users domain.UserRepository,
	logger *slog.Logger,
) *CommentService {
	if logger == nil {
		logger = slog.Default()
	}

	return &CommentService{
		comments: comments,
		posts:    posts,
		users:    users,
		logger:   logger,
	}
}

// Create adds a comment by a user on a post. Both sides must exist.
func (s *CommentService) Create(ctx context.Context, userID, postID, content string) (*domain.Comment, error) {
	content = sanitizeText(content)
	if content == "" {
		return nil, domain.NewInvalidInput("Falta proporcionar el contenido")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFound("Usuario no encontrado")
	}

	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.NewNotFound("Post no encontrado")
	}

	comment := &domain.Comment{
		UserID:  userID,
		PostID:  postID,
		Content: content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, err
	}

	return comment, nil
}

// Update replaces a comment's content.
func (s *CommentService) Update(ctx context.Context, id, content string) (*domain.Comment, error) {
	content = sanitizeText(content)
	if content == "" {
		return nil, domain.NewInvalidInput("Falta proporcionar el contenido")
	}

	return s.comments.Update(ctx, id, content)
}

// Delete removes a comment.
func (s *CommentService) Delete(ctx context.Context, id string) error {
	return s.comments.Delete(ctx, id)
}

// List returns all comments, newest first.
func (s *CommentService) List(ctx context.Context) ([]*domain.Comment, error) {
	return s.comments.List(ctx)
}

// ListByPost returns the comments of one post, newest first.
func (s *CommentService) ListByPost(ctx context.Context, postID string) ([]*domain.Comment, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.NewNotFound("Post no encontrado")
	}

	return s.comments.ListByPost(ctx, postID)
}
