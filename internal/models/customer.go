package models

import "time"

type Customer struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:255;not null"`
	Email       string `gorm:"size:255;uniqueIndex;not null"`
	Phone       string `gorm:"size:20;not null"`
	Country     string `gorm:"size:100"`
	City        string `gorm:"size:100"`
	Address     string `gorm:"size:1000"`
	Description string `gorm:"size:1000"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
