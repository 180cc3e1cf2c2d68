package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/service"
	"github.com/keith666666666/APEER/internal/utils"
)

// ActivityHandler wires activity HTTP routes.
type ActivityHandler struct {
	service service.ActivityService
	logger  zerolog.Logger
}

// NewActivityHandler constructs the handler.
func NewActivityHandler(service service.ActivityService, logger zerolog.Logger) *ActivityHandler {
	return &ActivityHandler{
		service: service,
		logger:  logger.With().Str("component", "activity_handler").Logger(),
	}
}

// Register attaches activity endpoints to the router group. Creation is
// gated by the provided guard; reads are open to any authenticated user.
func (h *ActivityHandler) Register(router fiber.Router, createGuard fiber.Handler) {
	router.Get("", h.list)
	router.Get("/active", h.listActive)
	if createGuard != nil {
		router.Post("", createGuard, h.create)
	} else {
		router.Post("", h.create)
	}
}

func (h *ActivityHandler) list(c *fiber.Ctx) error {
	activities, err := h.service.List(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "activities retrieved", activities)
}

func (h *ActivityHandler) listActive(c *fiber.Ctx) error {
	activities, err := h.service.ListActive(c.Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "active activities retrieved", activities)
}

func (h *ActivityHandler) create(c *fiber.Ctx) error {
	var payload dto.CreateActivityRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	activity, err := h.service.Create(c.Context(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "activity created", activity)
}

func (h *ActivityHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err), errors.Is(err, service.ErrInvalidDueDate):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrRubricNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "rubric not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("activity request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
