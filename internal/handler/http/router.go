package http

import (
	"log/slog"
	"os"

	"github.com/cmlabs-hris/face-attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/face-attendance-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus"
)

func NewRouter(
	cfg *config.Config,
	JWTService jwt.Service,
	registry *prometheus.Registry,
	kioskLimiter *middleware.RateLimiter,
	authHandler AuthHandler,
	identityHandler IdentityHandler,
	attendanceHandler AttendanceHandler,
	reportHandler ReportHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "face-attendance"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	allowedOrigins := cfg.App.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Handle("/metrics", metrics.Handler(registry))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(kioskLimiter.Handler)
				r.Post("/register", identityHandler.Register)
				r.Post("/verify", identityHandler.Verify)
			})
		})

		r.Route("/attendance", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(kioskLimiter.Handler)
				r.Post("/mark", attendanceHandler.Mark)
			})

			r.Get("/stats/{id}", reportHandler.DailyTotal)
			r.Get("/weekly-stats/{id}", reportHandler.WeeklyBreakdown)

			// Requires admin authentication
			r.Group(func(r chi.Router) {
				r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
				r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
				r.Use(middleware.AdminOnly)
				r.Get("/", attendanceHandler.List)
			})
		})

		// Requires admin authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))
			r.Use(middleware.AdminOnly)

			r.Route("/identities", func(r chi.Router) {
				r.Get("/", identityHandler.List)
				r.Put("/{id}", identityHandler.Update)
			})
		})
	})
	return r
}
