package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"contact-manager/internal/config"
	"contact-manager/internal/handler"
	"contact-manager/internal/middleware"
	"contact-manager/internal/model"
)

type Handlers struct {
	Auth    *handler.AuthHandler
	Contact *handler.ContactHandler
	Audit   *handler.AuditHandler
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

func New(cfg *config.Config, health HealthChecker, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := health.Health(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("database unreachable"))
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
			auth.Get("/search", h.Auth.Search)
			auth.With(authMiddleware.RequireAuth).Get("/me", h.Auth.Me)
		})

		api.Route("/contacts", func(contacts chi.Router) {
			contacts.Use(authMiddleware.RequireAuth)

			contacts.Post("/", h.Contact.Create)
			contacts.Get("/", h.Contact.List)
			contacts.Get("/search", h.Contact.Search)
			contacts.Get("/{id}", h.Contact.Get)
			contacts.With(authMiddleware.RequireRoles(model.RoleAdmin)).Put("/{id}", h.Contact.Update)
			contacts.With(authMiddleware.RequireRoles(model.RoleAdmin)).Delete("/{id}", h.Contact.Delete)
		})

		api.With(authMiddleware.RequireAuth, authMiddleware.RequireRoles(model.RoleAdmin)).
			Get("/audit", h.Audit.List)
	})

	return r
}
