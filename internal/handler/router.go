package handler

import (
	"net/http"
	"regexp"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/emmaworks/family-advisor-api/internal/config"
)

// Local origins are always allowed for development convenience.
var localOriginPattern = regexp.MustCompile(`^http://(localhost|127\.0\.0\.1)(:\d+)?$`)

// NewRouter wires the HTTP routes and middleware.
func NewRouter(
	cfg *config.Config,
	logger *zerolog.Logger,
	authHandler *AuthHandler,
	chatHandler *ChatHandler,
	dashboardHandler *DashboardHandler,
	healthHandler *HealthHandler,
	authMiddleware *AuthMiddleware,
) *chi.Mux {
	r := chi.NewRouter()

	r.Use(requestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return localOriginPattern.MatchString(origin) ||
				(cfg.AllowedOrigin != "" && origin == cfg.AllowedOrigin)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup/parent", authHandler.SignupParent)
		r.Post("/signup/student", authHandler.SignupStudent)
		r.Post("/login", authHandler.Login)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireUser)
			r.Post("/invite", authHandler.GenerateInvite)
		})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/public/dashboard/preview", dashboardHandler.FamilyDashboard)

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.RequireUser)
			r.Get("/colleges/matches", dashboardHandler.CollegeMatches)
			r.Get("/dashboard/family", dashboardHandler.FamilyDashboard)
			r.Post("/chat", chatHandler.Send)
			r.Get("/chat/history", chatHandler.History)
		})
	})

	r.Get("/healthz", healthHandler.Check)

	return r
}
