package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"stok/internal/models"
)

// GORMStockLogRepository is a GORM implementation of StockLogRepository.
type GORMStockLogRepository struct {
	db *gorm.DB
}

// NewGORMStockLogRepository creates a new instance of GORMStockLogRepository.
func NewGORMStockLogRepository(db *gorm.DB) *GORMStockLogRepository {
	return &GORMStockLogRepository{
		db: db,
	}
}

// Create appends a new stock log entry.
func (r *GORMStockLogRepository) Create(log *models.StockLog) error {
	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}
	if err := r.db.Create(log).Error; err != nil {
		return fmt.Errorf("failed to create stock log: %w", err)
	}
	return nil
}

// GetAll retrieves every stock log entry, newest first.
func (r *GORMStockLogRepository) GetAll() ([]models.StockLog, error) {
	var logs []models.StockLog
	if err := r.db.Order("timestamp DESC").Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("failed to get stock logs: %w", err)
	}
	return logs, nil
}
