package service

import (
	"context"
	"log/slog"

	"github.com/yourorg/vecino/internal/domain"
)

// ReviewService handles user reviews of businesses. Content and rating are
// written independently; both land on the same (user, business) row.
type ReviewService struct {
	reviews    domain.ReviewRepository
	users      domain.UserRepository
	businesses domain.BusinessRepository
	logger     *slog.Logger
}

// NewReviewService creates a new review service
func NewReviewService(
	reviews domain.ReviewRepository,
	users domain.UserRepository,
	businesses domain.BusinessRepository,
	logger *slog.Logger,
) *ReviewService {
	if logger == nil {
		logger = slog.Default()
	}

	return &ReviewService{
		reviews:    reviews,
		users:      users,
		businesses: businesses,
		logger:     logger,
	}
}

// WriteContent sets the free-text content of the user's review of a business.
func (s *ReviewService) WriteContent(ctx context.Context, userID, businessID, content string) (*domain.Review, error) {
	content = sanitizeText(content)
	if content == "" {
		return nil, domain.NewInvalidInput("Falta proporcionar el contenido")
	}

	if err := s.ensurePair(ctx, userID, businessID); err != nil {
		return nil, err
	}

	return s.reviews.UpsertContent(ctx, userID, businessID, content)
}

// WriteRating sets the numeric rating of the user's review of a business.
func (s *ReviewService) WriteRating(ctx context.Context, userID, businessID string, rating int) (*domain.Review, error) {
	if rating < 1 || rating > 5 {
		return nil, domain.NewInvalidInput("La calificación debe estar entre 1 y 5")
	}

	if err := s.ensurePair(ctx, userID, businessID); err != nil {
		return nil, err
	}

	return s.reviews.UpsertRating(ctx, userID, businessID, rating)
}

// DeleteByUser removes all reviews written by a user.
func (s *ReviewService) DeleteByUser(ctx context.Context, userID string) error {
	count, err := s.reviews.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}
	if count == 0 {
		return domain.NewDeleteFailed("No se pudo eliminar la reseña")
	}

	return nil
}

// List returns all reviews.
func (s *ReviewService) List(ctx context.Context) ([]*domain.Review, error) {
	return s.reviews.List(ctx)
}

// ListByBusiness returns the reviews of one business.
func (s *ReviewService) ListByBusiness(ctx context.Context, businessID string) ([]*domain.Review, error) {
	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.NewNotFound("Negocio no encontrado")
	}

	return s.reviews.ListByBusiness(ctx, businessID)
}

func (s *ReviewService) ensurePair(ctx context.Context, userID, businessID string) error {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewNotFound("Usuario no encontrado")
	}

	business, err := s.businesses.GetByID(ctx, businessID)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.NewNotFound("Negocio no encontrado")
	}

	return nil
}
