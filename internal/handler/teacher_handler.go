package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/keith666666666/APEER/internal/service"
	"github.com/keith666666666/APEER/internal/utils"
)

// TeacherHandler exposes class-wide analytics to instructors.
type TeacherHandler struct {
	service service.TeacherService
	logger  zerolog.Logger
}

// NewTeacherHandler constructs the handler.
func NewTeacherHandler(service service.TeacherService, logger zerolog.Logger) *TeacherHandler {
	return &TeacherHandler{
		service: service,
		logger:  logger.With().Str("component", "teacher_handler").Logger(),
	}
}

// Register attaches teacher endpoints to the router group.
func (h *TeacherHandler) Register(router fiber.Router) {
	router.Get("/analytics", h.analytics)
	router.Get("/students", h.students)
}

func (h *TeacherHandler) analytics(c *fiber.Ctx) error {
	analytics, err := h.service.ClassAnalytics(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build class analytics")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build class analytics")
	}

	return utils.SendSuccess(c, "class analytics retrieved", analytics)
}

func (h *TeacherHandler) students(c *fiber.Ctx) error {
	students, err := h.service.StudentList(c.Context())
	if err != nil {
		requestLogger(h.logger, c).Error().Err(err).Msg("failed to build student list")
		return utils.SendError(c, fiber.StatusInternalServerError, "failed to build student list")
	}

	return utils.SendSuccess(c, "students retrieved", students)
}
