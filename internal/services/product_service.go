package services

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"stok/internal/models"
	"stok/internal/repositories"
)

// Defaults applied when a listing request carries no (or invalid) paging values.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// Validation errors surfaced to handlers as 400 responses.
var (
	ErrNegativeQuantity = errors.New("quantity cannot be negative")
	ErrInvalidStatus    = errors.New("status must be 'published' or 'draft'")
)

// StockEventPublisher publishes stock update events. Implemented by
// pkg/rabbitmq.Client; may be nil, in which case publishing is skipped.
type StockEventPublisher interface {
	PublishStockUpdated(event map[string]interface{}) error
}

// ProductPage is one page of a product listing.
type ProductPage struct {
	Products   []models.Product `json:"products"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
}

// ProductService handles business logic related to products, including the
// stock update flow that records an audit log entry per general update.
type ProductService struct {
	productRepo  repositories.ProductRepository
	stockLogRepo repositories.StockLogRepository
	publisher    StockEventPublisher
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(productRepo repositories.ProductRepository, stockLogRepo repositories.StockLogRepository, publisher StockEventPublisher) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		stockLogRepo: stockLogRepo,
		publisher:    publisher,
	}
}

// ListProducts retrieves one page of products, optionally filtered by a
// case-insensitive substring match on name or tag. Non-positive page or
// limit values fall back to the defaults.
func (s *ProductService) ListProducts(page, limit int, search string) (*ProductPage, error) {
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	products, total, err := s.productRepo.List(page, limit, search)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &ProductPage{
		Products:   products,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// CreateProduct creates a new product, applying the catalog defaults for
// fields the caller left unset.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if product.Quantity < 0 {
		return ErrNegativeQuantity
	}
	if product.Status == "" {
		product.Status = models.StatusPublished
	}
	if product.Status != models.StatusPublished && product.Status != models.StatusDraft {
		return ErrInvalidStatus
	}
	return s.productRepo.Create(product)
}

// UpdateProduct applies a partial update to a product and records a stock
// log entry capturing the quantity transition:
//
//  1. read the current product; not found means no write happens,
//  2. apply every provided field,
//  3. persist the product,
//  4. append a stock log with the previous and new quantity and the product
//     name captured in step 1.
//
// A log entry is written even when the request did not touch the quantity
// (previous == new, classified as "update"). The two writes are not wrapped
// in a transaction: a failure after step 3 leaves the product updated but
// unlogged, matching the last-write-wins model of the rest of the system.
func (s *ProductService) UpdateProduct(id string, update models.ProductUpdate) (*models.Product, error) {
	if update.Quantity != nil && *update.Quantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if update.SoldQuantity != nil && *update.SoldQuantity < 0 {
		return nil, ErrNegativeQuantity
	}
	if update.Status != nil && *update.Status != models.StatusPublished && *update.Status != models.StatusDraft {
		return nil, ErrInvalidStatus
	}

	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	previousQuantity := product.Quantity
	previousName := product.Name

	update.Apply(product)
	newQuantity := product.Quantity

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}

	logEntry := &models.StockLog{
		ProductID:        product.ID,
		ProductName:      previousName,
		PreviousQuantity: previousQuantity,
		NewQuantity:      newQuantity,
		OperationType:    models.OperationTypeFor(previousQuantity, newQuantity),
	}
	if err := s.stockLogRepo.Create(logEntry); err != nil {
		// The product update already went through at this point.
		return nil, fmt.Errorf("product updated but stock log failed: %w", err)
	}

	s.publishStockUpdated(logEntry)

	return product, nil
}

// publishStockUpdated emits a stock update event. Publishing is best effort:
// failures are logged and do not fail the update.
func (s *ProductService) publishStockUpdated(entry *models.StockLog) {
	if s.publisher == nil {
		return
	}
	event := map[string]interface{}{
		"productId":        entry.ProductID,
		"productName":      entry.ProductName,
		"previousQuantity": entry.PreviousQuantity,
		"newQuantity":      entry.NewQuantity,
		"operationType":    entry.OperationType,
	}
	if err := s.publisher.PublishStockUpdated(event); err != nil {
		log.Warn().Err(err).Str("productId", entry.ProductID).Msg("failed to publish stock update event")
	}
}

// ToggleStatus flips a product's enabled flag. Disabling a product also
// forces its publish status to draft so it disappears from the storefront.
// No stock log entry is written on this path.
func (s *ProductService) ToggleStatus(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.IsEnabled = !product.IsEnabled
	if !product.IsEnabled {
		product.Status = models.StatusDraft
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// SetPublishStatus sets a product's publish status to published or draft.
// No stock log entry is written on this path.
func (s *ProductService) SetPublishStatus(id, status string) (*models.Product, error) {
	if status != models.StatusPublished && status != models.StatusDraft {
		return nil, ErrInvalidStatus
	}

	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.Status = status
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// SetSoldQuantity sets a product's sold counter. No stock log entry is
// written on this path.
func (s *ProductService) SetSoldQuantity(id string, soldQuantity int) (*models.Product, error) {
	if soldQuantity < 0 {
		return nil, ErrNegativeQuantity
	}

	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	product.SoldQuantity = soldQuantity
	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product by its ID. Stock logs referencing the
// product are kept; they carry the denormalized name for exactly this case.
func (s *ProductService) DeleteProduct(id string) error {
	return s.productRepo.Delete(id)
}
