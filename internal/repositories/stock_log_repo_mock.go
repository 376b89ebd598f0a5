package repositories

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"stok/internal/models"
)

// MockStockLogRepository is an in-memory implementation of StockLogRepository.
type MockStockLogRepository struct {
	logs []models.StockLog
	mu   sync.RWMutex
}

// NewMockStockLogRepository creates a new instance of MockStockLogRepository.
func NewMockStockLogRepository() *MockStockLogRepository {
	return &MockStockLogRepository{}
}

// Create appends a new stock log entry.
func (r *MockStockLogRepository) Create(log *models.StockLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if log.ID == "" {
		log.ID = uuid.New().String()
	}
	if log.Timestamp.IsZero() {
		log.Timestamp = time.Now()
	}
	r.logs = append(r.logs, *log)
	return nil
}

// GetAll returns every stock log entry, newest first.
func (r *MockStockLogRepository) GetAll() ([]models.StockLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	logs := make([]models.StockLog, len(r.logs))
	copy(logs, r.logs)
	sort.Slice(logs, func(i, j int) bool {
		return logs[i].Timestamp.After(logs[j].Timestamp)
	})
	return logs, nil
}
