package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/movie-catalog/internal/api/http/handlers"
	"github.com/spec-kit/movie-catalog/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health            *handlers.HealthHandler
	Users             *handlers.UsersHandler
	Movies            *handlers.MoviesHandler
	Sessions          *handlers.SessionsHandler
	SessionMiddleware *auth.SessionMiddleware
}

// RegisterRoutes wires HTTP routes. Movie reads are public; mutations
// and the session listing require an authenticated admin.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	users := app.Group("/api/users")
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Post("/logout", cfg.SessionMiddleware.Handle, cfg.Users.Logout)

	movies := app.Group("/api/movies")
	movies.Get("/", cfg.Movies.List)
	movies.Get("/search", cfg.Movies.Search)
	movies.Get("/:id", cfg.Movies.Get)

	movies.Post("/", cfg.SessionMiddleware.Handle, auth.RequireAdmin(), cfg.Movies.Create)
	movies.Put("/:id", cfg.SessionMiddleware.Handle, auth.RequireAdmin(), cfg.Movies.Update)
	movies.Delete("/:id", cfg.SessionMiddleware.Handle, auth.RequireAdmin(), cfg.Movies.Delete)

	app.Get("/api/sessions", cfg.SessionMiddleware.Handle, auth.RequireAdmin(), cfg.Sessions.List)
}
