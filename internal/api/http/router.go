package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/ideaflow/internal/api/http/handlers"
	"github.com/spec-kit/ideaflow/internal/auth"
	"github.com/spec-kit/ideaflow/internal/domain"
	"github.com/spec-kit/ideaflow/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Customer       *handlers.CustomerHandler
	Developer      *handlers.DeveloperHandler
	Owner          *handlers.OwnerHandler
	Contact        *handlers.ContactHandler
	AuthMiddleware *auth.AuthMiddleware
	RateLimiter    *IPRateLimiter
	Metrics        *observability.Metrics
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics.Handler()))
	}

	limited := func(h fiber.Handler) []fiber.Handler {
		if cfg.RateLimiter == nil {
			return []fiber.Handler{h}
		}
		return []fiber.Handler{cfg.RateLimiter.Handle, h}
	}
	requireAuth := cfg.AuthMiddleware.Handle

	authGroup := app.Group("/auth")
	authGroup.Post("/register", limited(cfg.Auth.Register)...)
	authGroup.Post("/login", limited(cfg.Auth.Login)...)
	authGroup.Post("/logout", requireAuth, cfg.Auth.Logout)
	authGroup.Get("/me", requireAuth, cfg.Auth.Me)

	app.Get("/ideas/statuses", handlers.IdeaStatuses)
	app.Post("/contact", limited(cfg.Contact.Compose)...)

	customer := app.Group("/customer", requireAuth, auth.RequireRole(domain.RoleCustomer))
	customer.Post("/ideas", cfg.Customer.SubmitIdea)
	customer.Get("/ideas", cfg.Customer.ListIdeas)

	developer := app.Group("/developer", requireAuth, auth.RequireRole(domain.RoleDeveloper))
	developer.Get("/ideas", cfg.Developer.ListIdeas)
	developer.Post("/ideas/:id/start", cfg.Developer.Start)
	developer.Post("/ideas/:id/complete", cfg.Developer.Complete)
	developer.Post("/ideas/:id/progress", cfg.Developer.AddProgress)

	owner := app.Group("/owner", requireAuth, auth.RequireRole(domain.RoleOwner))
	owner.Get("/ideas", cfg.Owner.ListIdeas)
	owner.Get("/ideas/stats", cfg.Owner.Stats)
	owner.Get("/ideas/:id", cfg.Owner.GetIdea)
	owner.Post("/ideas/:id/assign", cfg.Owner.Assign)
	owner.Post("/ideas/:id/cancel", cfg.Owner.Cancel)
	owner.Post("/ideas/:id/progress", cfg.Owner.AddProgress)
	owner.Get("/developers", cfg.Owner.ListDevelopers)
	owner.Get("/developers/pending", cfg.Owner.ListPendingDevelopers)
	owner.Post("/developers/pending/:id/approve", cfg.Owner.ApproveDeveloper)
	owner.Post("/developers/pending/:id/reject", cfg.Owner.RejectDeveloper)
}
