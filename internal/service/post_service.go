package service

import (
	"context"
	"log/slog"

	"github.com/yourorg/vecino/internal/domain"
	"github.com/yourorg/vecino/internal/observability/metrics"
)

// PostService handles business posts and their feed projections.
type PostService struct {
	posts      domain.PostRepository
	businesses domain.BusinessRepository
	logger     *slog.Logger
}

// NewPostService creates a new post service
func NewPostService(posts domain.PostRepository, businesses domain.BusinessRepository, logger *slog.Logger) *PostService {
	if logger == nil {
		logger = slog.Default()
	}

	return &PostService{
		posts:      posts,
		businesses: businesses,
		logger:     logger,
	}
}

// Create publishes a post for a business. Content is sanitized and must not
// be blank after sanitization.
func (s *PostService) Create(ctx context.Context, businessID, content string) (*domain.Post, error) {
	content = sanitizeText(content)
	if content == "" {
		return nil, domain.NewInvalidInput("Falta proporcionar el contenido")
	}

	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.NewNotFound("Negocio no encontrado")
	}

	post := &domain.Post{
		BusinessID: businessID,
		Content:    content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	metrics.ObservePostCreated()
	s.logger.Info("post created",
		slog.String("post_id", post.ID),
		slog.String("business_id", businessID),
	)
	return post, nil
}

// Get returns one post with its author summary and counters.
func (s *PostService) Get(ctx context.Context, id string) (*domain.FeedPost, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, domain.NewNotFound("Post no encontrado")
	}

	return post, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]*domain.FeedPost, error) {
	return s.posts.List(ctx)
}

// ListByBusiness returns the posts of one business, newest first.
func (s *PostService) ListByBusiness(ctx context.Context, businessID string) ([]*domain.FeedPost, error) {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.NewNotFound("Negocio no encontrado")
	}

	return s.posts.ListByBusiness(ctx, businessID)
}

// Delete removes a post. Comments and likes cascade at the schema level.
func (s *PostService) Delete(ctx context.Context, id string) error {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return domain.NewNotFound("Post no encontrado")
	}

	return s.posts.Delete(ctx, id)
}
