package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/vecino/internal/domain"
	"github.com/yourorg/vecino/internal/observability/metrics"
	"github.com/yourorg/vecino/internal/security/audit"
	"github.com/yourorg/vecino/internal/security/auth"
)

// BusinessService handles the lifecycle of business accounts.
type BusinessService struct {
	businesses domain.BusinessRepository
	identities *IdentityService
	reviews    domain.ReviewRepository
	tokens     *auth.TokenManager
	audit      *audit.Logger
	logger     *slog.Logger
	bcryptCost int
}

// NewBusinessService creates a new business service
func NewBusinessService(
	businesses domain.BusinessRepository,
	identities *IdentityService,
	reviews domain.ReviewRepository,
	tokens *auth.TokenManager,
	auditLog *audit.Logger,
	logger *slog.Logger,
	bcryptCost int,
) *BusinessService {
	if logger == nil {
		logger = slog.Default()
	}
	if auditLog == nil {
		auditLog = audit.NewLogger(logger)
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &BusinessService{
		businesses: businesses,
		identities: identities,
		reviews:    reviews,
		tokens:     tokens,
		audit:      auditLog,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// RegisterBusinessInput carries the raw business registration payload.
type RegisterBusinessInput struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Password    any    `json:"password"`
}

// BusinessLoginResult is the login response payload for businesses.
type BusinessLoginResult struct {
	Message  string              `json:"message"`
	Token    string              `json:"token"`
	Business domain.SafeBusiness `json:"business"`
}

// BusinessProfile is the public profile projection of a business.
type BusinessProfile struct {
	domain.SafeBusiness
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Register validates the payload, reserves the handle and creates the
// business account. Same ordering rules as user registration.
func (s *BusinessService) Register(ctx context.Context, input RegisterBusinessInput) (*domain.SafeBusiness, error) {
	safe, err := s.register(ctx, input)
	if err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			metrics.ObserveRegistration("business", "conflict")
		} else {
			metrics.ObserveRegistration("business", "rejected")
		}
		return nil, err
	}

	metrics.ObserveRegistration("business", "created")
	s.audit.Registered("business", safe.ID, safe.Email)
	return safe, nil
}

func (s *BusinessService) register(ctx context.Context, input RegisterBusinessInput) (*domain.SafeBusiness, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, domain.NewInvalidInput("Falta proporcionar el Email")
	}
	if !validEmail(email) {
		return nil, domain.NewInvalidInput("Email inválido")
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewInvalidInput("Proporcione el nombre completo")
	}

	// Categories are free-form, lowercased for consistent filtering.
	category := strings.ToLower(strings.TrimSpace(input.Category))
	if category == "" {
		return nil, domain.NewInvalidInput("Falta proporcionar la categoría")
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, domain.NewInvalidInput("Falta proporcionar el nombre de usuario")
	}

	password, err := coercePassword(input.Password)
	if err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	existing, err := s.businesses.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	taken, err := s.identities.FindByHandle(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil || taken != nil {
		return nil, domain.NewConflict("El email o nombre de usuario ya está registrado")
	}

	identity, err := s.identities.Reserve(ctx, username)
	if err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			return nil, domain.NewConflict("El email o nombre de usuario ya está registrado")
		}
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		s.releaseIdentity(ctx, identity.ID)
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return nil, err
	}

	business := &domain.Business{
		Email:        email,
		Name:         name,
		UsernameID:   identity.ID,
		Category:     category,
		Description:  strings.TrimSpace(input.Description),
		Address:      strings.TrimSpace(input.Address),
		PasswordHash: string(hash),
	}
	if err := s.businesses.Create(ctx, business); err != nil {
		s.releaseIdentity(ctx, identity.ID)
		return nil, err
	}

	safe := business.Safe()
	return &safe, nil
}

// Login verifies credentials and issues a session token.
func (s *BusinessService) Login(ctx context.Context, email string, rawPassword any) (*BusinessLoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.NewInvalidInput("Falta proporcionar el Email")
	}
	password, err := coercePassword(rawPassword)
	if err != nil {
		return nil, err
	}

	business, err := s.businesses.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if business == nil {
		metrics.ObserveLogin("business", "not_found")
		s.audit.LoginFailed("business", email, "unknown email")
		return nil, domain.NewNotFound("Negocio no encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(business.PasswordHash), []byte(password)); err != nil {
		metrics.ObserveLogin("business", "bad_password")
		s.audit.LoginFailed("business", email, "wrong password")
		return nil, domain.NewInvalidCredentials("Contraseña incorrecta")
	}

	handle := ""
	if identity, err := s.identities.FindByID(ctx, business.UsernameID); err == nil {
		handle = identity.Handle
	}

	token, err := s.tokens.Issue(business.ID, business.Email, handle)
	if err != nil {
		s.logger.Error("failed to issue token", slog.String("error", err.Error()))
		return nil, err
	}

	metrics.ObserveLogin("business", "success")
	s.audit.LoginSucceeded("business", business.ID, business.Email)

	return &BusinessLoginResult{
		Message:  "Login exitoso",
		Token:    token,
		Business: business.Safe(),
	}, nil
}

// Get returns the safe projection of a business.
func (s *BusinessService) Get(ctx context.Context, id string) (*domain.SafeBusiness, error) {
	business, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.NewNotFound("Negocio no encontrado")
	}

	safe := business.Safe()
	return &safe, nil
}

// Profile returns the public profile of a business.
func (s *BusinessService) Profile(ctx context.Context, id string) (*BusinessProfile, error) {
	business, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.NewNotFound("Negocio no encontrado")
	}

	profile := &BusinessProfile{SafeBusiness: business.Safe(), CreatedAt: business.CreatedAt}
	if identity, err := s.identities.FindByID(ctx, business.UsernameID); err == nil {
		profile.Username = identity.Handle
	}

	return profile, nil
}

// Rating aggregates the numeric ratings of a business.
func (s *BusinessService) Rating(ctx context.Context, id string) (*domain.RatingSummary, error) {
	business, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.NewNotFound("Negocio no encontrado")
	}

	return s.reviews.RatingForBusiness(ctx, id)
}

// EditBusinessInput carries a partial business update. Fields are untyped so
// a mistyped value never fails the JSON decode; it is simply ignored.
type EditBusinessInput struct {
	Email           any `json:"email"`
	Name            any `json:"name"`
	Category        any `json:"category"`
	Description     any `json:"description"`
	Address         any `json:"address"`
	CurrentPassword any `json:"currentPassword"`
	NewPassword     any `json:"newPassword"`
}

// Edit applies a typed-field-filtered update to the business profile. Absent,
// mistyped or malformed fields are dropped silently, never errors.
func (s *BusinessService) Edit(ctx context.Context, id string, input EditBusinessInput) (*domain.SafeBusiness, error) {
	fields := map[string]any{}

	if email, ok := input.Email.(string); ok {
		if email = strings.TrimSpace(email); validEmail(email) {
			fields["email"] = email
		}
	}
	if name, ok := input.Name.(string); ok {
		if name = strings.TrimSpace(name); name != "" {
			fields["name"] = name
		}
	}
	if category, ok := input.Category.(string); ok {
		if category = strings.ToLower(strings.TrimSpace(category)); category != "" {
			fields["category"] = category
		}
	}
	if description, ok := input.Description.(string); ok {
		fields["description"] = strings.TrimSpace(description)
	}
	if address, ok := input.Address.(string); ok {
		fields["address"] = strings.TrimSpace(address)
	}

	if input.NewPassword != nil {
		if err := s.ChangePassword(ctx, id, input.CurrentPassword, input.NewPassword); err != nil {
			return nil, err
		}
	}

	if len(fields) == 0 {
		return s.Get(ctx, id)
	}

	business, err := s.businesses.Update(ctx, id, fields)
	if err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			return nil, domain.NewConflict("El email o nombre de usuario ya está registrado")
		}
		return nil, err
	}

	safe := business.Safe()
	return &safe, nil
}

// ChangePassword replaces the stored digest under the same ordering rules as
// the user variant.
func (s *BusinessService) ChangePassword(ctx context.Context, id string, rawCurrent, rawNew any) error {
	current, err := coercePassword(rawCurrent)
	if err != nil {
		return err
	}
	next, err := coercePassword(rawNew)
	if err != nil {
		return err
	}

	business, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.NewNotFound("No existe el negocio")
	}

	if current == next {
		return domain.NewInvalidInput("Las contraseñas son iguales")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(business.PasswordHash), []byte(current)); err != nil {
		return domain.NewInvalidCredentials("La contraseña actual no coincide")
	}

	if err := validatePassword(next); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), s.bcryptCost)
	if err != nil {
		s.logger.Error("failed to hash password", slog.String("error", err.Error()))
		return err
	}

	if err := s.businesses.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}

	s.audit.PasswordChanged("business", id)
	return nil
}

// Delete removes the business and releases its handle. Posts and reviews
// cascade at the schema level.
func (s *BusinessService) Delete(ctx context.Context, id string) error {
	business, err := s.businesses.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if business == nil {
		return domain.NewNotFound("No existe el negocio")
	}

	if err := s.businesses.Delete(ctx, id); err != nil {
		return err
	}

	s.releaseIdentity(ctx, business.UsernameID)
	s.audit.AccountDeleted("business", id)
	return nil
}

func (s *BusinessService) releaseIdentity(ctx context.Context, identityID string) {
	if err := s.identities.Release(ctx, identityID); err != nil {
		metrics.IdentityReleaseFailures.Inc()
		s.logger.Error("failed to release username",
			slog.String("username_id", identityID),
			slog.String("error", err.Error()),
		)
	}
}
