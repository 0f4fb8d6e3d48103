package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/yourorg/vecino/internal/observability/metrics"
	"github.com/yourorg/vecino/internal/security/middleware"
	"github.com/yourorg/vecino/internal/security/ratelimit"
)

// RouterDeps bundles everything the router mounts.
type RouterDeps struct {
	Users       *UserHandler
	Businesses  *BusinessHandler
	Posts       *PostHandler
	Comments    *CommentHandler
	Likes       *LikeHandler
	Reviews     *ReviewHandler
	Usernames   *UsernameHandler
	Profiles    *ProfileHandler
	Health      *HealthHandler
	Chain       *middleware.Chain
	AuthLimiter *ratelimit.Limiter
	FrontendURL string
	Logger      *slog.Logger
}

// NewRouter wires the full HTTP surface.
func NewRouter(deps RouterDeps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(metrics.HTTPMetricsMiddleware)
	r.Use(middleware.CORS(deps.FrontendURL))
	r.Use(deps.Chain.RateLimit)

	r.Get("/healthz", deps.Health.Health)
	r.Get("/readyz", deps.Health.Ready)
	r.Handle("/metrics", promhttp.Handler())

	authLimit := middleware.RateLimitWith(deps.AuthLimiter)

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.With(authLimit).Post("/register", deps.Users.Register)
			r.With(authLimit).Post("/login", deps.Users.Login)
			r.Get("/{userID}", deps.Users.Get)
			r.Put("/updateUser/{userID}", deps.Users.Update)
			r.With(authLimit).Put("/changePassword/{userID}", deps.Users.ChangePassword)
			r.Delete("/delete/{userID}", deps.Users.Delete)
		})

		r.Route("/businesses", func(r chi.Router) {
			r.With(authLimit).Post("/register", deps.Businesses.Register)
			r.With(authLimit).Post("/login", deps.Businesses.Login)
			r.Get("/rating/{businessID}", deps.Businesses.Rating)
			r.Get("/{businessID}", deps.Businesses.Get)
			r.Put("/edit/{businessID}", deps.Businesses.Edit)
			r.With(authLimit).Put("/changePassword/{businessID}", deps.Businesses.ChangePassword)
			r.Delete("/delete/{businessID}", deps.Businesses.Delete)
		})

		r.Route("/posts", func(r chi.Router) {
			r.Get("/", deps.Posts.List)
			r.Get("/business/{businessID}", deps.Posts.ListByBusiness)
			r.Get("/{postID}", deps.Posts.Get)
			r.With(deps.Chain.RequireAuth).Post("/", deps.Posts.Create)
			r.Delete("/{postID}", deps.Posts.Delete)
		})

		r.Route("/comments", func(r chi.Router) {
			r.Get("/allComments", deps.Comments.List)
			r.Get("/getCommentsPost", deps.Comments.ListByPost)
			r.Post("/insertComment/{userID}", deps.Comments.Create)
			r.Put("/updateComment/{commentID}", deps.Comments.Update)
			r.Delete("/deleteComment/{commentID}", deps.Comments.Delete)
		})

		r.Route("/likes", func(r chi.Router) {
			r.Post("/{postID}", deps.Likes.Toggle)
			r.Get("/{postID}", deps.Likes.Count)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", deps.Reviews.List)
			r.Get("/getReviews", deps.Reviews.ListByBusiness)
			r.Post("/insertReview/{userID}", deps.Reviews.InsertReview)
			r.Post("/insertRating/{userID}", deps.Reviews.InsertRating)
			r.Delete("/delete/{userID}", deps.Reviews.Delete)
		})

		r.Route("/username", func(r chi.Router) {
			r.Get("/{usernameID}", deps.Usernames.Get)
			r.Put("/updateUsername/{usernameID}", deps.Usernames.Update)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/business/{businessID}", deps.Profiles.Business)
			r.Put("/business/{businessID}", deps.Profiles.UpdateBusiness)
			r.Get("/{userID}", deps.Profiles.User)
			r.Put("/{userID}", deps.Profiles.UpdateUser)
		})
	})

	return otelhttp.NewHandler(r, "vecino")
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
