package audit

import "log/slog"

// Logger records security-relevant account events as structured log lines.
// Audit lines are plain slog records tagged audit=true so they can be routed
// by the log pipeline without a separate sink.
type Logger struct {
	logger *slog.Logger
}

// NewLogger creates an audit logger.
func NewLogger(logger *slog.Logger) *Logger {
	if logger == nil {
		logger = slog.Default()
	}

	return &Logger{logger: logger.With(slog.Bool("audit", true))}
}

// Registered records a successful account registration.
func (a *Logger) Registered(accountKind, accountID, email string) {
	a.logger.Info("account registered",
		slog.String("kind", accountKind),
		slog.String("account_id", accountID),
		slog.String("email", email),
	)
}

// LoginSucceeded records a successful login.
func (a *Logger) LoginSucceeded(accountKind, accountID, email string) {
	a.logger.Info("login succeeded",
		slog.String("kind", accountKind),
		slog.String("account_id", accountID),
		slog.String("email", email),
	)
}

// LoginFailed records a failed login attempt. The account id may be empty
// when the email did not match any account.
func (a *Logger) LoginFailed(accountKind, email, reason string) {
	a.logger.Warn("login failed",
		slog.String("kind", accountKind),
		slog.String("email", email),
		slog.String("reason", reason),
	)
}

// PasswordChanged records a password change.
func (a *Logger) PasswordChanged(accountKind, accountID string) {
	a.logger.Info("password changed",
		slog.String("kind", accountKind),
		slog.String("account_id", accountID),
	)
}

// AccountDeleted records an account deletion.
func (a *Logger) AccountDeleted(accountKind, accountID string) {
	a.logger.Info("account deleted",
		slog.String("kind", accountKind),
		slog.String("account_id", accountID),
	)
}
