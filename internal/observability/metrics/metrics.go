package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vecino_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vecino_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	// Registrations counts completed account registrations by kind (user,
	// business) and result (created, rejected, conflict).
	Registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vecino_registrations_total",
		Help: "Count of registration attempts by account kind and result",
	}, []string{"kind", "result"})

	// Logins counts login attempts by kind and result.
	Logins = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vecino_logins_total",
		Help: "Count of login attempts by account kind and result",
	}, []string{"kind", "result"})

	// TokenVerifications counts bearer token checks by result.
	TokenVerifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vecino_token_verifications_total",
		Help: "Count of bearer token verifications by result",
	}, []string{"result"})

	// RateLimitRejections counts requests rejected by the rate limiter.
	RateLimitRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vecino_rate_limit_rejections_total",
		Help: "Count of requests rejected by the rate limiter",
	})

	// IdentityReleaseFailures counts username rows left behind after an
	// account delete or a failed registration could not release them.
	IdentityReleaseFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vecino_identity_release_failures_total",
		Help: "Count of username rows that could not be released",
	})

	postsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "vecino_posts_created_total",
		Help: "Count of posts created",
	})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveRegistration increments the registration counter.
func ObserveRegistration(kind, result string) {
	Registrations.WithLabelValues(kind, result).Inc()
}

// ObserveLogin increments the login counter.
func ObserveLogin(kind, result string) {
	Logins.WithLabelValues(kind, result).Inc()
}

// ObservePostCreated increments the created-posts counter.
func ObservePostCreated() {
	postsCreated.Inc()
}
