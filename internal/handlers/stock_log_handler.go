package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"stok/internal/services"
)

// StockLogHandler handles HTTP requests for the stock audit log.
type StockLogHandler struct {
	service *services.StockLogService
}

// NewStockLogHandler creates a new StockLogHandler.
func NewStockLogHandler(service *services.StockLogService) *StockLogHandler {
	return &StockLogHandler{
		service: service,
	}
}

// RegisterRoutes registers the stock log routes with the Fiber app.
func (h *StockLogHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/stock-logs", h.HandleGetStockLogs)
}

// HandleGetStockLogs returns every stock log entry, newest first.
func (h *StockLogHandler) HandleGetStockLogs(c *fiber.Ctx) error {
	logs, err := h.service.GetAllLogs()
	if err != nil {
		log.Error().Err(err).Msg("error getting stock logs")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve stock logs",
			"error":   err.Error(),
		})
	}
	return c.JSON(logs)
}
