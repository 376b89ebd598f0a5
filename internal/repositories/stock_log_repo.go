package repositories

import (
	"stok/internal/models"
)

// StockLogRepository defines the interface for stock log data access.
// Logs are append-only: there is no update or delete.
type StockLogRepository interface {
	Create(log *models.StockLog) error
	// GetAll returns every log entry sorted by timestamp descending.
	GetAll() ([]models.StockLog, error)
}
