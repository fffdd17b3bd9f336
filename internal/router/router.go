package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/edupulse/course-activity-api/internal/config"
	"github.com/edupulse/course-activity-api/internal/handler"
	"github.com/edupulse/course-activity-api/internal/middleware"
	"github.com/edupulse/course-activity-api/internal/models"
	"github.com/edupulse/course-activity-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	UserHandler         *handler.UserHandler
	DepartmentHandler   *handler.DepartmentHandler
	CourseHandler       *handler.CourseHandler
	ActivityHandler     *handler.ActivityHandler
	ReportHandler       *handler.ReportHandler
	DashboardHandler    *handler.DashboardHandler
	ActivityFeedHandler *handler.ActivityFeedHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application. Public routes are
// attached before the authenticated group so they stay reachable without a token.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	api.Get("/metrics", observability.MetricsHandler())

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterPublic(api)
	}
	if deps.DepartmentHandler != nil {
		deps.DepartmentHandler.Register(api.Group("/departments"))
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterExport(api)
	}

	// Use provided JWT middleware, or a no-op if nil
	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	adminOnly := middleware.RequireRole(string(models.RoleAdmin))
	instructorOnly := middleware.RequireRole(string(models.RoleInstructor))

	secured := api.Group("", jwtMiddleware)

	if deps.AuthHandler != nil {
		deps.AuthHandler.RegisterProtected(secured)
	}

	if deps.UserHandler != nil {
		users := secured.Group("/users", adminOnly)
		deps.UserHandler.Register(users)
		if deps.AuthHandler != nil {
			deps.AuthHandler.RegisterAdminCreate(users)
		}
	}

	if deps.CourseHandler != nil {
		deps.CourseHandler.RegisterAdmin(secured.Group("/courses", adminOnly))
		deps.CourseHandler.RegisterInstructor(secured.Group("/instructor/courses", instructorOnly))
	}

	if deps.ActivityHandler != nil {
		deps.ActivityHandler.Register(secured.Group("/activities", instructorOnly))
	}

	if deps.ReportHandler != nil {
		deps.ReportHandler.Register(secured.Group("/reports"))
	}

	if deps.DashboardHandler != nil {
		deps.DashboardHandler.Register(secured, adminOnly, instructorOnly)
	}

	if deps.ActivityFeedHandler != nil {
		deps.ActivityFeedHandler.Register(secured.Group("/dashboard/admin", adminOnly))
	}
}
