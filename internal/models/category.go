package models

import "time"

type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:255;not null"`
	Code      string `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SubCategory rows are removed together with their parent category.
// Deleting a subcategory is blocked while products still reference it.
type SubCategory struct {
	ID          uint     `gorm:"primaryKey"`
	CategoryID  uint     `gorm:"index;not null"`
	Category    Category `gorm:"constraint:OnDelete:CASCADE"`
	Name        string   `gorm:"size:255;not null"`
	Code        string   `gorm:"size:255;uniqueIndex;not null"`
	Description string   `gorm:"size:1000"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
