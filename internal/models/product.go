package models

import "time"

// Category tags a product can carry. The catalog uses a fixed set.
const (
	TagStationery = "kırtasiye"
	TagCleaning   = "temizlik"
	TagOther      = "diğer"
)

// Publish status values. Draft products are hidden from the storefront.
const (
	StatusPublished = "published"
	StatusDraft     = "draft"
)

// Product represents a stocked item in the catalog.
type Product struct {
	ID           string  `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name         string  `json:"name"`
	Quantity     int     `json:"quantity"`
	Unit         string  `json:"unit"`
	Tag          string  `json:"tag"`
	ImageURL     string  `json:"imageUrl"`
	Price        float64 `json:"price"`
	Status       string  `json:"status"`
	IsEnabled    bool    `json:"isEnabled"`
	SoldQuantity int     `json:"soldQuantity"`
	// Explicit timestamps instead of gorm.Model: products are hard-deleted,
	// so a DeletedAt column (and GORM's soft-delete behavior) must not exist.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ProductUpdate is a partial update to a product. Nil fields are left
// unchanged; the distinction between "absent" and "zero" matters for the
// stock log, which records whether the request touched the quantity.
type ProductUpdate struct {
	Name         *string  `json:"name"`
	Quantity     *int     `json:"quantity"`
	Unit         *string  `json:"unit"`
	Tag          *string  `json:"tag"`
	ImageURL     *string  `json:"imageUrl"`
	Price        *float64 `json:"price"`
	Status       *string  `json:"status"`
	IsEnabled    *bool    `json:"isEnabled"`
	SoldQuantity *int     `json:"soldQuantity"`
}

// Apply copies every provided field onto the product.
func (u ProductUpdate) Apply(p *Product) {
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Quantity != nil {
		p.Quantity = *u.Quantity
	}
	if u.Unit != nil {
		p.Unit = *u.Unit
	}
	if u.Tag != nil {
		p.Tag = *u.Tag
	}
	if u.ImageURL != nil {
		p.ImageURL = *u.ImageURL
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Status != nil {
		p.Status = *u.Status
	}
	if u.IsEnabled != nil {
		p.IsEnabled = *u.IsEnabled
	}
	if u.SoldQuantity != nil {
		p.SoldQuantity = *u.SoldQuantity
	}
}
