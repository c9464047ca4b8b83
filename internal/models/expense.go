package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExpenseCategory struct {
	ID          uint    `gorm:"primaryKey"`
	Name        string  `gorm:"size:255;not null"`
	Code        *string `gorm:"size:50;uniqueIndex"`
	Description string  `gorm:"size:1000"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Expense struct {
	ID          uint `gorm:"primaryKey"`
	CategoryID  uint `gorm:"index;not null"`
	Category    ExpenseCategory
	Date        time.Time       `gorm:"index;not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Description string          `gorm:"size:1000"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
