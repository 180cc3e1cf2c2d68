package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/service"
	"github.com/keith666666666/APEER/internal/utils"
)

// AdminHandler wires administrative routes: account status management and
// database seeding.
type AdminHandler struct {
	users  service.UserService
	seeder service.SeedService
	logger zerolog.Logger
}

// NewAdminHandler constructs the handler.
func NewAdminHandler(users service.UserService, seeder service.SeedService, logger zerolog.Logger) *AdminHandler {
	return &AdminHandler{
		users:  users,
		seeder: seeder,
		logger: logger.With().Str("component", "admin_handler").Logger(),
	}
}

// Register attaches admin endpoints to the router group.
func (h *AdminHandler) Register(router fiber.Router) {
	router.Patch("/users/:id/status", h.updateStatus)
	router.Post("/seed", h.seed)
}

func (h *AdminHandler) updateStatus(c *fiber.Ctx) error {
	id, err := parseUintParam(c, "id")
	if err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	}

	var payload dto.UpdateUserStatusRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.UpdateStatus(c.Context(), id, payload)
	if err != nil {
		switch {
		case isValidationError(err):
			return utils.SendError(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrUserNotFound):
			return utils.SendError(c, fiber.StatusNotFound, "user not found")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("status update failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
		}
	}

	return utils.SendSuccess(c, "user status updated", user)
}

func (h *AdminHandler) seed(c *fiber.Ctx) error {
	token := c.Get("X-Seed-Token")

	created, err := h.seeder.Seed(c.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSeedDisabled):
			return utils.SendError(c, fiber.StatusForbidden, "seeding disabled")
		case errors.Is(err, service.ErrSeedUnauthorized):
			return utils.SendError(c, fiber.StatusForbidden, "invalid token")
		default:
			requestLogger(h.logger, c).Error().Err(err).Msg("seed operation failed")
			return utils.SendError(c, fiber.StatusInternalServerError, "seed operation failed")
		}
	}

	return utils.SendSuccess(c, "database seeded", fiber.Map{"users_created": created})
}
