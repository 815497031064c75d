package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"go-task-api/internal/config"
	"go-task-api/internal/handler"
	"go-task-api/internal/middleware"
	"go-task-api/internal/model"
)

type Handlers struct {
	Auth *handler.AuthHandler
	User *handler.UserHandler
	Task *handler.TaskHandler
}

func New(cfg *config.Config, authMiddleware *middleware.AuthMiddleware, h Handlers) http.Handler {
	r := chi.NewRouter()
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimitRPM, cfg.AuthRateLimitRPM)

	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(rateLimitMiddleware.Handler)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api/v1", func(api chi.Router) {
		api.Use(middleware.Timeout(cfg.RequestTimeout))

		api.Route("/auth", func(auth chi.Router) {
			auth.Post("/register", h.Auth.Register)
			auth.Post("/login", h.Auth.Login)
		})

		api.Route("/users", func(users chi.Router) {
			users.Use(authMiddleware.RequireAuth)
			users.Get("/me", h.User.Me)
			users.With(authMiddleware.RequireRoles(model.RoleAdmin)).Get("/", h.User.List)
			users.Get("/{id}", h.User.Get)
			// self-or-admin is enforced in the service layer
			users.Patch("/{id}", h.User.Update)
			users.With(authMiddleware.RequireRoles(model.RoleAdmin)).Delete("/{id}", h.User.Deactivate)
			users.With(authMiddleware.RequireRoles(model.RoleAdmin)).Delete("/{id}/permanent", h.User.Delete)
		})

		api.Route("/tasks", func(tasks chi.Router) {
			tasks.Use(authMiddleware.RequireAuth)
			tasks.Post("/", h.Task.Create)
			tasks.Get("/", h.Task.List)
			// must stay ahead of /{id} or "statistics" is parsed as an id
			tasks.Get("/statistics", h.Task.Statistics)
			tasks.Get("/{id}", h.Task.Get)
			tasks.Patch("/{id}", h.Task.Update)
			tasks.Put("/{id}", h.Task.Update)
			tasks.Delete("/{id}", h.Task.Delete)
		})
	})

	return r
}
