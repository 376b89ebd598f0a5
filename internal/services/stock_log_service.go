package services

import (
	"stok/internal/models"
	"stok/internal/repositories"
)

// StockLogService handles read access to the stock audit log.
type StockLogService struct {
	repo repositories.StockLogRepository
}

// NewStockLogService creates a new StockLogService.
func NewStockLogService(repo repositories.StockLogRepository) *StockLogService {
	return &StockLogService{
		repo: repo,
	}
}

// GetAllLogs retrieves every stock log entry, newest first.
func (s *StockLogService) GetAllLogs() ([]models.StockLog, error) {
	return s.repo.GetAll()
}
