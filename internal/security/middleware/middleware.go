package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"

	"github.com/yourorg/vecino/internal/observability/metrics"
	"github.com/yourorg/vecino/internal/security/auth"
	"github.com/yourorg/vecino/internal/security/ratelimit"
)

type contextKey string

// ClaimsContextKey is the request-context key for verified token claims.
const ClaimsContextKey contextKey = "claims"

// ClaimsFromContext returns the verified claims stored by RequireAuth.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(ClaimsContextKey).(*auth.Claims)
	return claims, ok
}

// Chain holds the dependencies the HTTP middleware needs.
type Chain struct {
	tokens  *auth.TokenManager
	limiter *ratelimit.Limiter
	logger  *slog.Logger
}

// NewChain creates the middleware chain.
func NewChain(tokens *auth.TokenManager, limiter *ratelimit.Limiter, logger *slog.Logger) *Chain {
	if logger == nil {
		logger = slog.Default()
	}

	return &Chain{
		tokens:  tokens,
		limiter: limiter,
		logger:  logger,
	}
}

// RequireAuth rejects requests without a valid bearer token. A missing header
// is 401, a present but invalid or expired token is 403.
func (c *Chain) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			writeAuthError(w, http.StatusUnauthorized, "Token no proporcionado")
			return
		}

		tokenString, err := auth.ExtractToken(header)
		if err != nil {
			writeAuthError(w, http.StatusForbidden, "Token inválido o expirado")
			return
		}

		claims, err := c.tokens.Verify(tokenString)
		if err != nil {
			metrics.TokenVerifications.WithLabelValues("rejected").Inc()
			c.logger.Warn("token rejected",
				slog.String("path", r.URL.Path),
				slog.String("error", err.Error()),
			)
			writeAuthError(w, http.StatusForbidden, "Token inválido o expirado")
			return
		}
		metrics.TokenVerifications.WithLabelValues("accepted").Inc()

		ctx := context.WithValue(r.Context(), ClaimsContextKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RateLimit throttles requests per client IP using the chain's default
// limiter.
func (c *Chain) RateLimit(next http.Handler) http.Handler {
	return RateLimitWith(c.limiter)(next)
}

// RateLimitWith throttles requests per client IP using the given limiter.
// Credential endpoints get a tighter limiter than the general API.
func RateLimitWith(limiter *ratelimit.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow(clientIP(r)) {
				metrics.RateLimitRejections.Inc()
				writeAuthError(w, http.StatusTooManyRequests, "Demasiadas solicitudes, intente más tarde")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// CORS allows the configured frontend origin.
func CORS(frontendURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", frontendURL)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Allow-Credentials", "true")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		return forwarded
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
