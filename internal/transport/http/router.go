package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/otp-auth-api/internal/application/auth"
	"github.com/otp-auth-api/internal/application/user"
	"github.com/otp-auth-api/internal/config"
	"github.com/otp-auth-api/internal/transport/http/handler"
	appmiddleware "github.com/otp-auth-api/internal/transport/http/middleware"
)

// NewRouter builds and returns the application router.
func NewRouter(cfg *config.Config, deps *Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "x-access-token"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	authSvc := auth.NewService(auth.ServiceDeps{
		IdentityRepo: deps.IdentityRepo,
		Signer:       deps.JWTProvider,
		Mailer:       deps.Mailer,
		SMSSender:    deps.SMSSender,
	})
	userSvc := user.NewService(deps.IdentityRepo)

	userH := handler.NewUserHandler(authSvc, userSvc)
	healthH := handler.NewHealthHandler()
	guard := appmiddleware.TokenGuard(deps.JWTProvider)

	r.NotFound(handler.NotFound)

	r.Route("/v1", func(r chi.Router) {
		r.Get("/health-check/{action}", healthH.Ping)
		r.Post("/health-check/{action}", healthH.Ping)

		r.Route("/users", func(r chi.Router) {
			// ── Public routes (contact fields validated up front) ────────────
			r.With(appmiddleware.ValidateContact).Post("/sendOTP", userH.SendOTP)
			r.With(appmiddleware.ValidateContact).Post("/login", userH.Login)

			// ── Bearer-guarded routes ────────────────────────────────────────
			r.Group(func(r chi.Router) {
				r.Use(guard)

				r.Get("/", userH.List)
				r.Get("/{id}", userH.Get)
				r.Delete("/{id}", userH.Delete)
			})
		})
	})

	return r
}
