package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/yourorg/vecino/internal/domain"
)

// IdentityService owns the public-handle registry. Handles are unique across
// the whole registry, regardless of which account kind references them.
type IdentityService struct {
	identities domain.IdentityRepository
	logger     *slog.Logger
}

// NewIdentityService creates a new identity service
func NewIdentityService(identities domain.IdentityRepository, logger *slog.Logger) *IdentityService {
	if logger == nil {
		logger = slog.Default()
	}

	return &IdentityService{
		identities: identities,
		logger:     logger,
	}
}

// Reserve claims a handle and returns the new identity. A taken handle is a
// conflict.
func (s *IdentityService) Reserve(ctx context.Context, handle string) (*domain.Identity, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, domain.NewInvalidInput("Falta proporcionar el nombre de usuario")
	}

	return s.identities.Create(ctx, handle)
}

// FindByID returns the identity with the given id, or NotFound.
func (s *IdentityService) FindByID(ctx context.Context, id string) (*domain.Identity, error) {
	identity, err := s.identities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity == nil {
		return nil, domain.NewNotFound("Nombre de usuario no encontrado")
	}

	return identity, nil
}

// FindByHandle returns the identity holding the given handle, or nil when
// the handle is free.
func (s *IdentityService) FindByHandle(ctx context.Context, handle string) (*domain.Identity, error) {
	return s.identities.GetByHandle(ctx, handle)
}

// Rename changes the handle of an identity. Renaming to the handle the
// identity already holds is a successful no-op; a handle held by a different
// identity is a conflict.
func (s *IdentityService) Rename(ctx context.Context, id, handle string) (*domain.Identity, error) {
	handle = strings.TrimSpace(handle)
	if handle == "" {
		return nil, domain.NewInvalidInput("Falta proporcionar el nombre de usuario")
	}

	current, err := s.identities.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, domain.NewNotFound("Nombre de usuario no encontrado")
	}
	if current.Handle == handle {
		return current, nil
	}

	holder, err := s.identities.GetByHandle(ctx, handle)
	if err != nil {
		return nil, err
	}
	if holder != nil {
		return nil, domain.NewConflict("El nombre de usuario ya está registrado")
	}

	return s.identities.UpdateHandle(ctx, id, handle)
}

// Release frees a handle. Releasing an absent identity is not an error.
func (s *IdentityService) Release(ctx context.Context, id string) error {
	return s.identities.Delete(ctx, id)
}
