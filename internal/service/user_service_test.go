package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/yourorg/vecino/internal/domain"
	"github.com/yourorg/vecino/internal/security/auth"
)

func newTestUserService(t *testing.T) (*UserService, *memUserRepo, *memIdentityRepo, *auth.TokenManager) {
	t.Helper()

	users := newMemUserRepo()
	identities := newMemIdentityRepo()
	tokens := auth.NewTokenManager("test-secret", "vecino")
	svc := NewUserService(users, NewIdentityService(identities, nil), tokens, nil, nil, bcrypt.MinCost)
	return svc, users, identities, tokens
}

func validUserInput() RegisterUserInput {
	return RegisterUserInput{
		Email:    "ana@example.com",
		Name:     "Ana",
		Surname:  "Ruiz",
		Age:      float64(30),
		Username: "ana_r",
		Password: "secreta1",
	}
}

func TestRegisterUser(t *testing.T) {
	svc, _, identities, _ := newTestUserService(t)

	user, err := svc.Register(context.Background(), validUserInput())
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	if user.ID == "" {
		t.Error("expected a generated id")
	}
	if user.Email != "ana@example.com" {
		t.Errorf("email = %q, want ana@example.com", user.Email)
	}
	if user.UsernameID == "" {
		t.Error("expected a username_id")
	}

	identity, _ := identities.GetByID(context.Background(), user.UsernameID)
	if identity == nil || identity.Handle != "ana_r" {
		t.Errorf("handle not reserved: %+v", identity)
	}
}

func TestRegisterUserValidationOrder(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*RegisterUserInput)
		wantMsg string
	}{
		{"missing email", func(in *RegisterUserInput) { in.Email = "" }, "Falta proporcionar el Email"},
		{"bad email", func(in *RegisterUserInput) { in.Email = "not-an-email" }, "Email inválido"},
		{"missing name", func(in *RegisterUserInput) { in.Name = "  " }, "Proporcione el nombre completo"},
		{"missing surname", func(in *RegisterUserInput) { in.Surname = "" }, "Proporcione el nombre completo"},
		{"missing age", func(in *RegisterUserInput) { in.Age = nil }, "Falta proporcionar la edad"},
		{"negative age", func(in *RegisterUserInput) { in.Age = float64(-1) }, "Edad inválida"},
		{"age too high", func(in *RegisterUserInput) { in.Age = float64(121) }, "Edad inválida"},
		{"non-numeric age", func(in *RegisterUserInput) { in.Age = "abc" }, "Edad inválida"},
		{"missing password", func(in *RegisterUserInput) { in.Password = nil }, "Falta proporcionar la contraseña"},
		{"short password", func(in *RegisterUserInput) { in.Password = "ab1" }, "La contraseña debe tener al menos 8 caracteres"},
		{"no digit", func(in *RegisterUserInput) { in.Password = "soloLetras" }, "La contraseña debe contener al menos una letra y un número"},
		{"no letter", func(in *RegisterUserInput) { in.Password = float64(12345678) }, "La contraseña debe contener al menos una letra y un número"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _, _ := newTestUserService(t)
			input := validUserInput()
			tt.mutate(&input)

			_, err := svc.Register(context.Background(), input)
			if err == nil {
				t.Fatal("expected an error")
			}
			if err.Error() != tt.wantMsg {
				t.Errorf("error = %q, want %q", err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestRegisterUserAcceptsPunctuatedNames(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	input := validUserInput()
	input.Name = "Anne-Marie"
	input.Surname = "O'Brien"

	user, err := svc.Register(context.Background(), input)
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if user.Name != "Anne-Marie" || user.Surname != "O'Brien" {
		t.Errorf("name = %q %q", user.Name, user.Surname)
	}
}

func TestRegisterUserShortPasswordSkipsRepository(t *testing.T) {
	svc, users, _, _ := newTestUserService(t)

	input := validUserInput()
	input.Password = "ab1"

	if _, err := svc.Register(context.Background(), input); err == nil {
		t.Fatal("expected an error")
	}
	if users.getCalls != 0 {
		t.Errorf("repository was consulted %d times before validation finished", users.getCalls)
	}
}

func TestRegisterUserDuplicate(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validUserInput()); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}

	_, err := svc.Register(ctx, validUserInput())
	if !domain.IsKind(err, domain.KindConflict) {
		t.Fatalf("expected a conflict, got %v", err)
	}
	if err.Error() != "El email o nombre de usuario ya está registrado" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestRegisterUserHandleTakenByOtherAccount(t *testing.T) {
	svc, _, identities, _ := newTestUserService(t)
	ctx := context.Background()

	if _, err := identities.Create(ctx, "ana_r"); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Register(ctx, validUserInput())
	if !domain.IsKind(err, domain.KindConflict) {
		t.Fatalf("expected a conflict, got %v", err)
	}
}

func TestRegisterUserInsertFailureReleasesHandle(t *testing.T) {
	svc, users, identities, _ := newTestUserService(t)
	users.failCreate = true

	if _, err := svc.Register(context.Background(), validUserInput()); err == nil {
		t.Fatal("expected an error")
	}

	holder, _ := identities.GetByHandle(context.Background(), "ana_r")
	if holder != nil {
		t.Error("handle was not released after the insert failed")
	}
}

func TestLoginUser(t *testing.T) {
	svc, _, _, tokens := newTestUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validUserInput())
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.Login(ctx, "ana@example.com", "secreta1")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.Message != "Login exitoso" {
		t.Errorf("message = %q", result.Message)
	}
	if result.User.ID != registered.ID {
		t.Errorf("user id = %q, want %q", result.User.ID, registered.ID)
	}

	claims, err := tokens.Verify(result.Token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if claims.ID != registered.ID || claims.Email != "ana@example.com" || claims.Username != "ana_r" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestLoginUserUnknownEmail(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	_, err := svc.Login(context.Background(), "nadie@example.com", "secreta1")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "Usuario no encontrado" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestLoginUserWrongPassword(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, validUserInput()); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Login(ctx, "ana@example.com", "otraClave1")
	if !domain.IsKind(err, domain.KindInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if err.Error() != "Contraseña incorrecta" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestLoginUserNumericPassword(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	input := validUserInput()
	input.Password = "1234abcd"
	registered, err := svc.Register(ctx, input)
	if err != nil {
		t.Fatal(err)
	}

	// The same characters sent as a string still authenticate.
	result, err := svc.Login(ctx, "ana@example.com", "1234abcd")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if result.User.ID != registered.ID {
		t.Errorf("user id = %q", result.User.ID)
	}
}

func TestChangePasswordEqualPasswordsRejectedFirst(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validUserInput())
	if err != nil {
		t.Fatal(err)
	}

	// The pair is equal but neither matches the stored password. The
	// equality check still wins.
	err = svc.ChangePassword(ctx, registered.ID, "clavemala1", "clavemala1")
	if err == nil || err.Error() != "Las contraseñas son iguales" {
		t.Fatalf("error = %v, want Las contraseñas son iguales", err)
	}
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validUserInput())
	if err != nil {
		t.Fatal(err)
	}

	err = svc.ChangePassword(ctx, registered.ID, "clavemala1", "nueva1234")
	if !domain.IsKind(err, domain.KindInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
	if err.Error() != "La contraseña actual no coincide" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestChangePasswordUnknownUser(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	err := svc.ChangePassword(context.Background(), "missing", "secreta1", "nueva1234")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "No existe el usuario" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestChangePassword(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validUserInput())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.ChangePassword(ctx, registered.ID, "secreta1", "nueva1234"); err != nil {
		t.Fatalf("ChangePassword() error = %v", err)
	}

	if _, err := svc.Login(ctx, "ana@example.com", "nueva1234"); err != nil {
		t.Errorf("login with the new password failed: %v", err)
	}
	if _, err := svc.Login(ctx, "ana@example.com", "secreta1"); err == nil {
		t.Error("login with the old password still works")
	}
}

func TestDeleteUserReleasesHandle(t *testing.T) {
	svc, users, identities, _ := newTestUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validUserInput())
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Delete(ctx, registered.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if user, _ := users.GetByID(ctx, registered.ID); user != nil {
		t.Error("user still present after delete")
	}
	if holder, _ := identities.GetByHandle(ctx, "ana_r"); holder != nil {
		t.Error("handle still reserved after delete")
	}
}

func TestDeleteUserUnknown(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)

	err := svc.Delete(context.Background(), "missing")
	if !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if err.Error() != "No existe el usuario" {
		t.Errorf("error = %q", err.Error())
	}
}

func TestEditProfile(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validUserInput())
	if err != nil {
		t.Fatal(err)
	}

	updated, err := svc.EditProfile(ctx, registered.ID, EditProfileInput{
		Name: "Mariana",
		Age:  "31",
	})
	if err != nil {
		t.Fatalf("EditProfile() error = %v", err)
	}
	if updated.Name != "Mariana" {
		t.Errorf("name = %q", updated.Name)
	}
	if updated.Age != 31 {
		t.Errorf("age = %d, want 31 (coerced from string)", updated.Age)
	}
}

func TestEditProfileDropsMistypedFields(t *testing.T) {
	svc, _, _, _ := newTestUserService(t)
	ctx := context.Background()

	registered, err := svc.Register(ctx, validUserInput())
	if err != nil {
		t.Fatal(err)
	}

	// Malformed email, number-typed name and out-of-range age are all
	// silently dropped; the valid surname still lands.
	updated, err := svc.EditProfile(ctx, registered.ID, EditProfileInput{
		Email:   "nope",
		Name:    float64(42),
		Surname: "Ruiz-Gallardo",
		Age:     float64(999),
	})
	if err != nil {
		t.Fatalf("EditProfile() error = %v", err)
	}
	if updated.Email != registered.Email {
		t.Errorf("email = %q, want unchanged %q", updated.Email, registered.Email)
	}
	if updated.Name != registered.Name {
		t.Errorf("name = %q, want unchanged %q", updated.Name, registered.Name)
	}
	if updated.Age != registered.Age {
		t.Errorf("age = %d, want unchanged %d", updated.Age, registered.Age)
	}
	if updated.Surname != "Ruiz-Gallardo" {
		t.Errorf("surname = %q, want Ruiz-Gallardo", updated.Surname)
	}
}
