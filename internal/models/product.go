package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductStatus string

const (
	ProductActive   ProductStatus = "active"
	ProductInactive ProductStatus = "inactive"
)

// Product.Quantity is the on-hand stock counter. The purchase stock toggle
// is the only writer of this field; it adjusts it inside its own transaction.
type Product struct {
	ID            uint  `gorm:"primaryKey"`
	SubCategoryID *uint `gorm:"index"`
	SubCategory   *SubCategory
	Name          string          `gorm:"size:255;not null"`
	SKU           string          `gorm:"size:255;uniqueIndex;not null"`
	Unit          string          `gorm:"size:16;not null"`
	Quantity      int             `gorm:"not null;default:0"`
	Status        ProductStatus   `gorm:"size:10;not null;default:'active'"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPct   decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	Description   string          `gorm:"size:1000"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
