package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type QuotationStatus string

const (
	QuotationDraft    QuotationStatus = "draft"
	QuotationSent     QuotationStatus = "sent"
	QuotationAccepted QuotationStatus = "accepted"
	QuotationDeclined QuotationStatus = "declined"
)

// Quotation survives deletion of its customer or product; the references
// are weak and become nil.
type Quotation struct {
	ID          uint            `gorm:"primaryKey"`
	CustomerID  *uint           `gorm:"index"`
	Customer    *Customer       `gorm:"constraint:OnDelete:SET NULL"`
	ProductID   *uint           `gorm:"index"`
	Product     *Product        `gorm:"constraint:OnDelete:SET NULL"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Status      QuotationStatus `gorm:"size:10;not null;default:'draft'"`
	Description string          `gorm:"size:1000"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
