package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PurchaseStatus string

const (
	PurchasePending   PurchaseStatus = "pending"
	PurchaseOrdered   PurchaseStatus = "ordered"
	PurchaseReceived  PurchaseStatus = "received"
	PurchaseCancelled PurchaseStatus = "cancelled"
)

type PaymentStatus string

const (
	PaymentUnpaid  PaymentStatus = "unpaid"
	PaymentPartial PaymentStatus = "partial"
	PaymentPaid    PaymentStatus = "paid"
)

// Purchase is one procurement line. DiscountAmount, TaxAmount, LineTotal and
// PaymentStatus are computed on create/update, never taken from the client.
// StockApplied records whether Quantity has been added to the product's
// stock; only the stock toggle flips it. The supplier and product references
// are weak: deleting either leaves the purchase behind, unattributed.
type Purchase struct {
	ID             uint            `gorm:"primaryKey"`
	SupplierID     *uint           `gorm:"index"`
	Supplier       *Supplier       `gorm:"constraint:OnDelete:SET NULL"`
	ProductID      *uint           `gorm:"index"`
	Product        *Product        `gorm:"constraint:OnDelete:SET NULL"`
	Quantity       int             `gorm:"not null"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	DiscountPct    decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	TaxPct         decimal.Decimal `gorm:"type:decimal(5,2);not null;default:0"`
	DiscountAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	LineTotal      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	PaidAmount     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	Status         PurchaseStatus  `gorm:"size:10;not null;default:'pending'"`
	PaymentStatus  PaymentStatus   `gorm:"size:10;not null;default:'unpaid'"`
	StockApplied   bool            `gorm:"not null;default:false"`
	Description    string          `gorm:"size:1000"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
