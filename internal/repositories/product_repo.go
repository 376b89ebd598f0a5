package repositories

import (
	"errors"

	"stok/internal/models"
)

// ErrNotFound is returned (wrapped) when an operation references a record
// that does not exist. Handlers match it with errors.Is to pick the HTTP
// status.
var ErrNotFound = errors.New("record not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	// List returns one page of products sorted by creation time descending,
	// plus the total matching count ignoring pagination. A non-empty search
	// filters by case-insensitive substring match on name or tag.
	List(page, limit int, search string) ([]models.Product, int64, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
