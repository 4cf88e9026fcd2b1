package handlers

import (
	"context"
	"errors"

	"recurring-detector/internal/dto"
	"recurring-detector/internal/models"
	"recurring-detector/internal/service"
	"recurring-detector/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecurringService is the part of service.RecurringService the handlers use.
type RecurringService interface {
	Detect(ctx context.Context, userID uuid.UUID) ([]*models.RecurringTransaction, error)
	List(ctx context.Context, userID uuid.UUID) ([]*models.RecurringTransaction, error)
	UpdateStatus(ctx context.Context, userID, id uuid.UUID, status models.RecurringStatus) error
}

type RecurringHandler struct {
	recurringService RecurringService
	logger           *zap.Logger
}

func NewRecurringHandler(recurringService RecurringService, logger *zap.Logger) *RecurringHandler {
	return &RecurringHandler{
		recurringService: recurringService,
		logger:           logger,
	}
}

// Detect godoc
// @Summary Detect recurring transactions
// @Description Run a detection pass over the caller's transaction history and store the result
// @Tags recurring
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.DetectResponse
// @Failure 401 {object} map[string]string
// @Failure 500 {object} map[string]interface{}
// @Failure 502 {object} map[string]string
// @Router /api/v1/recurring/detect [post]
func (h *RecurringHandler) Detect(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	records, err := h.recurringService.Detect(c.UserContext(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrFetchFailed):
			h.logger.Error("Recurring detection failed to fetch data", zap.Error(err))
			return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
				"error": "Failed to load transaction data",
			})
		case errors.Is(err, service.ErrWriteFailed):
			h.logger.Error("Recurring detection failed to save", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":     "Failed to save recurring transactions",
				"recurring": dto.NewRecurringList(records),
			})
		default:
			h.logger.Error("Recurring detection failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Recurring detection failed",
			})
		}
	}

	return c.JSON(dto.DetectResponse{
		Recurring: dto.NewRecurringList(records),
		Count:     len(records),
	})
}

// List godoc
// @Summary List recurring transactions
// @Description Get the caller's stored recurring transactions ordered by next due date
// @Tags recurring
// @Produce json
// @Security Bearer
// @Success 200 {array} dto.RecurringResponse
// @Failure 401 {object} map[string]string
// @Router /api/v1/recurring [get]
func (h *RecurringHandler) List(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	records, err := h.recurringService.List(c.UserContext(), userID)
	if err != nil {
		h.logger.Error("Failed to list recurring transactions", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to list recurring transactions",
		})
	}

	return c.JSON(dto.NewRecurringList(records))
}

// UpdateStatus godoc
// @Summary Update recurring status
// @Description Mark a recurring transaction active or ignored; the choice survives re-detection
// @Tags recurring
// @Accept json
// @Produce json
// @Param id path string true "Recurring transaction ID"
// @Param request body dto.UpdateStatusRequest true "New status"
// @Security Bearer
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/v1/recurring/{id}/status [patch]
func (h *RecurringHandler) UpdateStatus(c *fiber.Ctx) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid recurring transaction ID",
		})
	}

	var req dto.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	err = h.recurringService.UpdateStatus(c.UserContext(), userID, id, models.RecurringStatus(req.Status))
	switch {
	case err == nil:
		return c.SendStatus(fiber.StatusNoContent)
	case errors.Is(err, service.ErrInvalidStatus):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be active or ignored",
		})
	case errors.Is(err, service.ErrRecordNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Recurring transaction not found",
		})
	default:
		h.logger.Error("Failed to update recurring status", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update status",
		})
	}
}

func getUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userIDStr, ok := c.Locals(middleware.LocalUserID).(string)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return uuid.Nil, err
	}

	return userID, nil
}
