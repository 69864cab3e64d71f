package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/q-lng/Christmas-Community/internal/auth"
	"github.com/q-lng/Christmas-Community/pkg/health"
	"github.com/q-lng/Christmas-Community/pkg/middleware"
)

// RouterConfig carries the dependencies needed to assemble the HTTP router.
type RouterConfig struct {
	Logger             *slog.Logger
	Tokens             *auth.JWTManager
	Health             *health.Handler
	AuthHandler        *AuthHandler
	ProfileHandler     *ProfileHandler
	PledgeHandler      *PledgeHandler
	CORSAllowedOrigins []string
	UploadDir          string
}

// NewRouter assembles the service router with the standard middleware chain.
func NewRouter(cfg RouterConfig) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.RequestLogger(cfg.Logger))
	r.Use(middleware.PrometheusMetrics("wishlist"))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Correlation-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health/live", cfg.Health.LivenessHandler())
	r.Get("/health/ready", cfg.Health.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	if cfg.UploadDir != "" {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir)))
		r.With(chimw.NoCache).Get("/uploads/*", fs.ServeHTTP)
	}

	validate := func(token string) (*middleware.Claims, error) {
		claims, err := cfg.Tokens.Validate(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{UserID: claims.UserID}, nil
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.With(ContentTypeJSON).Post("/auth/login", cfg.AuthHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(validate))

			r.Route("/profile", func(r chi.Router) {
				r.Get("/", cfg.ProfileHandler.Get)
				r.With(ContentTypeJSON).Put("/info", cfg.ProfileHandler.UpdateInfo)
				r.With(ContentTypeJSON).Post("/password", cfg.ProfileHandler.ChangePassword)
				r.Post("/picture", cfg.ProfileHandler.UploadPicture)

				r.Get("/pledges", cfg.PledgeHandler.List)
				r.Post("/pledges/{owner}/{itemID}/purchased", cfg.PledgeHandler.TogglePurchased)
			})
		})
	})

	return r
}
