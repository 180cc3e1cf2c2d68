package router

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/keith666666666/APEER/internal/config"
	"github.com/keith666666666/APEER/internal/handler"
	"github.com/keith666666666/APEER/internal/middleware"
	"github.com/keith666666666/APEER/internal/models"
	"github.com/keith666666666/APEER/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	EvaluationHandler *handler.EvaluationHandler
	StudentHandler    *handler.StudentHandler
	TeacherHandler    *handler.TeacherHandler
	ActivityHandler   *handler.ActivityHandler
	GroupHandler      *handler.GroupHandler
	RubricHandler     *handler.RubricHandler
	ProfileHandler    *handler.ProfileHandler
	AdminHandler      *handler.AdminHandler
	JWTMiddleware     fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	teacherOnly := middleware.RequireRole(models.RoleTeacher, models.RoleAdmin)

	if deps.EvaluationHandler != nil {
		evaluations := api.Group("/evaluations", jwtMiddleware)
		evaluations.Use(middleware.RateLimit("evaluations", 30, time.Minute))
		deps.EvaluationHandler.Register(evaluations)
	}

	if deps.StudentHandler != nil {
		student := api.Group("/student", jwtMiddleware)
		deps.StudentHandler.Register(student)
	}

	if deps.TeacherHandler != nil {
		teacher := api.Group("/teacher", jwtMiddleware, teacherOnly)
		deps.TeacherHandler.Register(teacher)
	}

	if deps.ActivityHandler != nil {
		activities := api.Group("/activities", jwtMiddleware)
		deps.ActivityHandler.Register(activities, teacherOnly)
	}

	if deps.GroupHandler != nil {
		groups := api.Group("/groups", jwtMiddleware, teacherOnly)
		deps.GroupHandler.Register(groups)
	}

	if deps.RubricHandler != nil {
		rubrics := api.Group("/rubrics", jwtMiddleware)
		deps.RubricHandler.Register(rubrics)
	}

	if deps.ProfileHandler != nil {
		profile := api.Group("/profile", jwtMiddleware)
		deps.ProfileHandler.Register(profile)
	}

	if deps.AdminHandler != nil {
		admin := api.Group("/admin", jwtMiddleware, middleware.RequireRole(models.RoleAdmin))
		deps.AdminHandler.Register(admin)
	}
}
