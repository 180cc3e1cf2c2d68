package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/keith666666666/APEER/internal/dto"
	"github.com/keith666666666/APEER/internal/observability"
	"github.com/keith666666666/APEER/internal/service"
	"github.com/keith666666666/APEER/internal/utils"
)

// EvaluationHandler wires evaluation submission routes.
type EvaluationHandler struct {
	service service.EvaluationService
	logger  zerolog.Logger
}

// NewEvaluationHandler constructs the handler.
func NewEvaluationHandler(service service.EvaluationService, logger zerolog.Logger) *EvaluationHandler {
	return &EvaluationHandler{
		service: service,
		logger:  logger.With().Str("component", "evaluation_handler").Logger(),
	}
}

// Register attaches evaluation endpoints to the router group.
func (h *EvaluationHandler) Register(router fiber.Router) {
	router.Post("", h.submit)
	router.Get("/peers", h.peers)
}

func (h *EvaluationHandler) submit(c *fiber.Ctx) error {
	email := userEmailFromContext(c)
	if email == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "missing user context")
	}

	var payload dto.EvaluationSubmissionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid payload")
	}

	response, err := h.service.Submit(c.Context(), email, payload)
	if err != nil {
		return h.handleError(c, err)
	}

	if response.Analysis.IsFlagged {
		observability.FlaggedEvaluations().Inc()
	}

	return utils.SendSuccessWithStatus(c, fiber.StatusCreated, "evaluation submitted", response)
}

func (h *EvaluationHandler) peers(c *fiber.Ctx) error {
	email := userEmailFromContext(c)
	if email == "" {
		return utils.SendError(c, fiber.StatusUnauthorized, "missing user context")
	}

	peers, err := h.service.StudentsToEvaluate(c.Context(), email)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendSuccess(c, "peers retrieved", peers)
}

func (h *EvaluationHandler) handleError(c *fiber.Ctx, err error) error {
	switch {
	case isValidationError(err):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrEvaluatorNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "evaluator not found")
	case errors.Is(err, service.ErrTargetRequired), errors.Is(err, service.ErrActivityRequired):
		return utils.SendError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrTargetNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "target student not found")
	case errors.Is(err, service.ErrActivityNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "activity not found")
	case errors.Is(err, service.ErrAlreadyEvaluated):
		return utils.SendError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, service.ErrStorageUnavailable):
		requestLogger(h.logger, c).Error().Err(err).Msg("submission write failed")
		return utils.SendError(c, fiber.StatusServiceUnavailable, "storage unavailable, please retry")
	default:
		requestLogger(h.logger, c).Error().Err(err).Msg("evaluation request failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "internal server error")
	}
}
