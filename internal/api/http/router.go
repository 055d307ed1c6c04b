package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/spec-kit/au-connect/internal/api/http/handlers"
	"github.com/spec-kit/au-connect/internal/auth"
	"github.com/spec-kit/au-connect/internal/observability"
	"github.com/spec-kit/au-connect/internal/service"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Users          *handlers.UsersHandler
	Clubs          *handlers.ClubsHandler
	Events         *handlers.EventsHandler
	Memberships    *handlers.MembershipsHandler
	Registrations  *handlers.RegistrationsHandler
	Dashboard      *handlers.DashboardHandler
	AuthMiddleware *auth.AuthMiddleware
	Metrics        *observability.Metrics
}

// NewRouteConfig builds every handler from the service set.
func NewRouteConfig(svc *service.Services, health *handlers.HealthHandler, metrics *observability.Metrics) RouteConfig {
	return RouteConfig{
		Health:         health,
		Auth:           handlers.NewAuthHandler(svc.Auth),
		Users:          handlers.NewUsersHandler(svc.Users),
		Clubs:          handlers.NewClubsHandler(svc.Clubs, svc.Dashboard, svc.Memberships, svc.Coordinator),
		Events:         handlers.NewEventsHandler(svc.Events, svc.Dashboard, svc.Registrations, svc.Coordinator),
		Memberships:    handlers.NewMembershipsHandler(svc.Memberships),
		Registrations:  handlers.NewRegistrationsHandler(svc.Registrations),
		Dashboard:      handlers.NewDashboardHandler(svc.Dashboard),
		AuthMiddleware: auth.NewAuthMiddleware(svc.Auth.TokenManager()),
		Metrics:        metrics,
	}
}

// NewApp creates the fiber app with middlewares and routes attached.
func NewApp(name string, logger *zap.Logger, timeout time.Duration, cfg RouteConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               name,
		DisableStartupMessage: true,
		ErrorHandler:          ErrorHandler(logger, cfg.Metrics),
	})
	RegisterMiddlewares(app, logger, cfg.Metrics, timeout)
	RegisterRoutes(app, cfg)
	return app
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	if reg := cfg.Metrics.Registry(); reg != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))
	}

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	admin := auth.RequireAdmin()

	protected.Get("/clubs", cfg.Clubs.List)
	protected.Post("/clubs", admin, cfg.Clubs.Create)
	protected.Get("/clubs/:id", cfg.Clubs.Get)
	protected.Put("/clubs/:id", admin, cfg.Clubs.Update)
	protected.Delete("/clubs/:id", admin, cfg.Clubs.Delete)
	protected.Get("/clubs/:id/members", admin, cfg.Clubs.Members)

	protected.Get("/events", cfg.Events.List)
	protected.Post("/events", admin, cfg.Events.Create)
	protected.Get("/events/:id", cfg.Events.Get)
	protected.Put("/events/:id", admin, cfg.Events.Update)
	protected.Delete("/events/:id", admin, cfg.Events.Delete)
	protected.Get("/events/:id/registrants", admin, cfg.Events.Registrants)

	protected.Get("/memberships", cfg.Memberships.List)
	protected.Post("/memberships", cfg.Memberships.Join)
	protected.Delete("/memberships", cfg.Memberships.Leave)
	protected.Delete("/memberships/:id", admin, cfg.Memberships.Remove)

	protected.Get("/registrations", cfg.Registrations.List)
	protected.Post("/registrations", cfg.Registrations.Register)
	protected.Delete("/registrations", cfg.Registrations.Unregister)
	protected.Delete("/registrations/:id", admin, cfg.Registrations.Remove)

	protected.Put("/users/update", cfg.Users.UpdateProfile)
	protected.Get("/users/:id", cfg.Users.Get)

	protected.Get("/dashboard", cfg.Dashboard.Student)
	protected.Get("/admin/overview", admin, cfg.Dashboard.Admin)
}
