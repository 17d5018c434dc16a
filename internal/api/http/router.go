package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/spec-kit/crm-service/internal/api/http/handlers"
	"github.com/spec-kit/crm-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health           *handlers.HealthHandler
	Auth             *handlers.AuthHandler
	Tenants          *handlers.TenantsHandler
	Accounts         *handlers.AccountsHandler
	Contacts         *handlers.ContactsHandler
	Deals            *handlers.DealsHandler
	Leads            *handlers.LeadsHandler
	Activities       *handlers.ActivitiesHandler
	Notes            *handlers.NotesHandler
	AuthMiddleware   *auth.AuthMiddleware
	TenantMiddleware *auth.TenantMiddleware
	Metrics          http.Handler
}

// crudHandler is the route set every CRM resource exposes.
type crudHandler interface {
	List(c *fiber.Ctx) error
	Get(c *fiber.Ctx) error
	Create(c *fiber.Ctx) error
	Update(c *fiber.Ctx) error
	Delete(c *fiber.Ctx) error
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if cfg.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(cfg.Metrics))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Get("/me", cfg.AuthMiddleware.Handle, cfg.Auth.Me)
	authGroup.Post("/logout", cfg.AuthMiddleware.Handle, cfg.Auth.Logout)

	tenants := app.Group("/tenants", cfg.AuthMiddleware.Handle)
	tenants.Get("/", cfg.Tenants.List)
	tenants.Post("/", cfg.Tenants.Create)
	current := tenants.Group("/current", cfg.TenantMiddleware.Handle)
	current.Get("/", cfg.Tenants.Current)
	current.Get("/members", cfg.Tenants.Members)
	current.Post("/members", auth.RequireManager(), cfg.Tenants.AddMember)

	scoped := func(prefix string) fiber.Router {
		return app.Group(prefix, cfg.AuthMiddleware.Handle, cfg.TenantMiddleware.Handle)
	}
	resources := []struct {
		prefix  string
		handler crudHandler
	}{
		{"/accounts", cfg.Accounts},
		{"/contacts", cfg.Contacts},
		{"/deals", cfg.Deals},
		{"/leads", cfg.Leads},
		{"/activities", cfg.Activities},
		{"/notes", cfg.Notes},
	}
	for _, r := range resources {
		group := scoped(r.prefix)
		group.Get("/", r.handler.List)
		group.Post("/", r.handler.Create)
		group.Get("/:id", r.handler.Get)
		group.Patch("/:id", r.handler.Update)
		group.Delete("/:id", r.handler.Delete)
		if r.prefix == "/leads" {
			group.Post("/:id/convert", cfg.Leads.Convert)
		}
	}
}
