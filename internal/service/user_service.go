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

// UserService handles the lifecycle of personal accounts: registration,
// login, profile edits, password changes and deletion.
type UserService struct {
	users      domain.UserRepository
	identities *IdentityService
	tokens     *auth.TokenManager
	audit      *audit.Logger
	logger     *slog.Logger
	bcryptCost int
}

// NewUserService creates a new user service
func NewUserService(
	users domain.UserRepository,
	identities *IdentityService,
	tokens *auth.TokenManager,
	auditLog *audit.Logger,
	logger *slog.Logger,
	bcryptCost int,
) *UserService {
	if logger == nil {
		logger = slog.Default()
	}
	if auditLog == nil {
		auditLog = audit.NewLogger(logger)
	}
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}

	return &UserService{
		users:      users,
		identities: identities,
		tokens:     tokens,
		audit:      auditLog,
		logger:     logger,
		bcryptCost: bcryptCost,
	}
}

// RegisterUserInput carries the raw registration payload. Age and Password
// are untyped because clients send them as either strings or numbers.
type RegisterUserInput struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Age      any    `json:"age"`
	Username string `json:"username"`
	Password any    `json:"password"`
}

// UserLoginResult is the login response payload.
type UserLoginResult struct {
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    domain.SafeUser `json:"user"`
}

// UserProfile is the public profile projection of a user.
type UserProfile struct {
	domain.SafeUser
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Register validates the payload, reserves the handle and creates the
// account. Validation is ordered so the client always sees the first failing
// rule: required fields, email shape, age range, password policy, then
// uniqueness.
func (s *UserService) Register(ctx context.Context, input RegisterUserInput) (*domain.SafeUser, error) {
	safe, err := s.register(ctx, input)
	if err != nil {
		if kind, ok := domain.KindOf(err); ok && kind == domain.KindConflict {
			metrics.ObserveRegistration("user", "conflict")
		} else {
			metrics.ObserveRegistration("user", "rejected")
		}
		return nil, err
	}

	metrics.ObserveRegistration("user", "created")
	s.audit.Registered("user", safe.ID, safe.Email)
	return safe, nil
}

func (s *UserService) register(ctx context.Context, input RegisterUserInput) (*domain.SafeUser, error) {
	email := strings.TrimSpace(input.Email)
	if email == "" {
		return nil, domain.NewInvalidInput("Falta proporcionar el Email")
	}
	if !validEmail(email) {
		return nil, domain.NewInvalidInput("Email inválido")
	}

	// Names are free-form: anything non-blank after trimming is accepted,
	// hyphens, apostrophes and digits included.
	name := strings.TrimSpace(input.Name)
	surname := strings.TrimSpace(input.Surname)
	if name == "" || surname == "" {
		return nil, domain.NewInvalidInput("Proporcione el nombre completo")
	}

	age, err := coerceAge(input.Age)
	if err != nil {
		return nil, err
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

	// Fast-path uniqueness check. The schema constraints remain the
	// authoritative signal; a racing duplicate still surfaces as a conflict
	// from the insert below.
	existing, err := s.users.GetByEmail(ctx, email)
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

	user := &domain.User{
		Email:        email,
		Name:         name,
		Surname:      surname,
		Age:          age,
		UsernameID:   identity.ID,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(ctx, user); err != nil {
		// The handle was reserved for an account that never materialized.
		s.releaseIdentity(ctx, identity.ID)
		return nil, err
	}

	safe := user.Safe()
	return &safe, nil
}

// Login verifies credentials and issues a session token. A missing account
// is reported distinctly from a bad password.
func (s *UserService) Login(ctx context.Context, email string, rawPassword any) (*UserLoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, domain.NewInvalidInput("Falta proporcionar el Email")
	}
	password, err := coercePassword(rawPassword)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		metrics.ObserveLogin("user", "not_found")
		s.audit.LoginFailed("user", email, "unknown email")
		return nil, domain.NewNotFound("Usuario no encontrado")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		metrics.ObserveLogin("user", "bad_password")
		s.audit.LoginFailed("user", email, "wrong password")
		return nil, domain.NewInvalidCredentials("Contraseña incorrecta")
	}

	handle := ""
	if identity, err := s.identities.FindByID(ctx, user.UsernameID); err == nil {
		handle = identity.Handle
	}

	token, err := s.tokens.Issue(user.ID, user.Email, handle)
	if err != nil {
		s.logger.Error("failed to issue token", slog.String("error", err.Error()))
		return nil, err
	}

	metrics.ObserveLogin("user", "success")
	s.audit.LoginSucceeded("user", user.ID, user.Email)

	return &UserLoginResult{
		Message: "Login exitoso",
		Token:   token,
		User:    user.Safe(),
	}, nil
}

// Get returns the safe projection of a user.
func (s *UserService) Get(ctx context.Context, id string) (*domain.SafeUser, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFound("Usuario no encontrado")
	}

	safe := user.Safe()
	return &safe, nil
}

// Profile returns the public profile of a user, including the handle and
// the account age.
func (s *UserService) Profile(ctx context.Context, id string) (*UserProfile, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.NewNotFound("Usuario no encontrado")
	}

	profile := &UserProfile{SafeUser: user.Safe(), CreatedAt: user.CreatedAt}
	if identity, err := s.identities.FindByID(ctx, user.UsernameID); err == nil {
		profile.Username = identity.Handle
	}

	return profile, nil
}

// EditProfileInput carries a partial profile update. Fields are untyped so a
// mistyped value never fails the JSON decode; it is simply ignored. A
// currentPassword/newPassword pair routes through the canonical
// password-change policy.
type EditProfileInput struct {
	Email           any `json:"email"`
	Name            any `json:"name"`
	Surname         any `json:"surname"`
	Age             any `json:"age"`
	CurrentPassword any `json:"currentPassword"`
	NewPassword     any `json:"newPassword"`
}

// EditProfile applies a typed-field-filtered update. Absent, mistyped or
// malformed fields are dropped silently, never errors; only the fields that
// survive the filter reach the database.
func (s *UserService) EditProfile(ctx context.Context, id string, input EditProfileInput) (*domain.SafeUser, error) {
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
	if surname, ok := input.Surname.(string); ok {
		if surname = strings.TrimSpace(surname); surname != "" {
			fields["surname"] = surname
		}
	}
	if input.Age != nil {
		if age, err := coerceAge(input.Age); err == nil {
			fields["age"] = age
		}
	}

	if input.NewPassword != nil {
		if err := s.ChangePassword(ctx, id, input.CurrentPassword, input.NewPassword); err != nil {
			return nil, err
		}
	}

	if len(fields) == 0 {
		return s.Get(ctx, id)
	}

	user, err := s.users.Update(ctx, id, fields)
	if err != nil {
		if domain.IsKind(err, domain.KindConflict) {
			return nil, domain.NewConflict("El email o nombre de usuario ya está registrado")
		}
		return nil, err
	}

	safe := user.Safe()
	return &safe, nil
}

// ChangePassword replaces the stored digest. The literal equality check runs
// before the hash comparison, so a wrong current password that equals the new
// one is still reported as "same password".
func (s *UserService) ChangePassword(ctx context.Context, id string, rawCurrent, rawNew any) error {
	current, err := coercePassword(rawCurrent)
	if err != nil {
		return err
	}
	next, err := coercePassword(rawNew)
	if err != nil {
		return err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewNotFound("No existe el usuario")
	}

	if current == next {
		return domain.NewInvalidInput("Las contraseñas son iguales")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
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

	if err := s.users.UpdatePassword(ctx, id, string(hash)); err != nil {
		return err
	}

	s.audit.PasswordChanged("user", id)
	return nil
}

// Delete removes the account and releases its handle. Content rows cascade
// at the schema level. A failed handle release after the account is gone is
// logged and counted, not surfaced.
func (s *UserService) Delete(ctx context.Context, id string) error {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.NewNotFound("No existe el usuario")
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}

	s.releaseIdentity(ctx, user.UsernameID)
	s.audit.AccountDeleted("user", id)
	return nil
}

func (s *UserService) releaseIdentity(ctx context.Context, identityID string) {
	if err := s.identities.Release(ctx, identityID); err != nil {
		metrics.IdentityReleaseFailures.Inc()
		s.logger.Error("failed to release username",
			slog.String("username_id", identityID),
			slog.String("error", err.Error()),
		)
	}
}
