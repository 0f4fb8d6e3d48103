package service

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/yourorg/vecino/internal/domain"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func validEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// coercePassword accepts the password as a string or a JSON number. Clients
// historically sent numeric-only passwords unquoted; those are stringified
// rather than rejected.
func coercePassword(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", domain.NewInvalidInput("Falta proporcionar la contraseña")
	case string:
		if v == "" {
			return "", domain.NewInvalidInput("Falta proporcionar la contraseña")
		}
		return v, nil
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatFloat(v, 'f', -1, 64), nil
		}
		return fmt.Sprintf("%v", v), nil
	default:
		return "", domain.NewInvalidInput("Falta proporcionar la contraseña")
	}
}

// coerceAge accepts the age as a JSON number or a numeric string and checks
// the [0, 120] range.
func coerceAge(raw any) (int, error) {
	var age float64
	switch v := raw.(type) {
	case nil:
		return 0, domain.NewInvalidInput("Falta proporcionar la edad")
	case float64:
		age = v
	case string:
		if v == "" {
			return 0, domain.NewInvalidInput("Falta proporcionar la edad")
		}
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, domain.NewInvalidInput("Edad inválida")
		}
		age = parsed
	default:
		return 0, domain.NewInvalidInput("Edad inválida")
	}

	if age != math.Trunc(age) || age < 0 || age > 120 {
		return 0, domain.NewInvalidInput("Edad inválida")
	}
	return int(age), nil
}

// validatePassword enforces the single repo-wide password policy: at least
// eight characters, at least one letter and one digit.
func validatePassword(password string) error {
	if len(password) < 8 {
		return domain.NewInvalidInput("La contraseña debe tener al menos 8 caracteres")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return domain.NewInvalidInput("La contraseña debe contener al menos una letra y un número")
	}

	return nil
}
