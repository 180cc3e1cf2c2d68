package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/service"
	"github.com/keith666666666/APEER/internal/utils"
)

// ProfileHandler wires the caller's own profile routes.
type ProfileHandler struct {
	service service.UserService
	logger  zerolog.Logger
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(service service.UserService, logger zerolog.Logger) *ProfileHandler {
	return &ProfileHandler{
		service: service,
		logger:  logger.With().Str("component", "profile_handler").Logger(),
	}
}

// Register attaches profile endpoints to the router group.
func (h *ProfileHandler) Register(router fiber.Router) {
	router.Get("", h.get)
	router.Patch("", h.update)
}

func (h *ProfileHandler) get(c *fiber.Ctx) error {
	email := userEmailFromContext(c)
	if email == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "missing user context")
	}

	profile, err := h.service.Profile(c.Context(), email)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile retrieved", profile)
}

func (h *ProfileHandler) update(c *fiber.Ctx) error {
	email := userEmailFromContext(c)
	if email == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "missing user context")
	}

	var payload dto.UpdateProfileRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	profile, err := h.service.UpdateProfile(c.Context(), email, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "profile updated", profile)
}

func (h *ProfileHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrUserNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "user not found")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("profile request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
