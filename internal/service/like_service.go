package service

import (
	"context"
	"log/slog"

	"github.com/yourorg/vecino/internal/domain"
)

// LikeService handles likes on posts. A user may like a post once; liking it
// again is rejected, unliking an unliked post is a no-op.
type LikeService struct {
	likes  domain.LikeRepository
	posts  domain.PostRepository
	logger *slog.Logger
}

// NewLikeService creates a new like service
func NewLikeService(likes domain.LikeRepository, posts domain.PostRepository, logger *slog.Logger) *LikeService {
	if logger == nil {
		logger = slog.Default()
	}

	return &LikeService{
		likes:  likes,
		posts:  posts,
		logger: logger,
	}
}

// Like records a like and returns the fresh like count.
func (s *LikeService) Like(ctx context.Context, userID, postID string) (int, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return 0, err
	}

	if err := s.likes.Create(ctx, userID, postID); err != nil {
		return 0, err
	}

	return s.likes.CountByPost(ctx, postID)
}

// Unlike removes a like and returns the fresh like count.
func (s *LikeService) Unlike(ctx context.Context, userID, postID string) (int, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return 0, err
	}

	if err := s.likes.Delete(ctx, userID, postID); err != nil {
		return 0, err
	}

	return s.likes.CountByPost(ctx, postID)
}

// Count returns the number of likes on a post.
func (s *LikeService) Count(ctx context.Context, postID string) (int, error) {
	if err := s.ensurePost(ctx, postID); err != nil {
		return 0, err
	}

	return s.likes.CountByPost(ctx, postID)
}

func (s *LikeService) ensurePost(ctx context.Context, postID string) error {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return err
	}
	if post == nil {
		return domain.NewNotFound("Post no encontrado")
	}

	return nil
}
