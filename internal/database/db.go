package database

import (
	"log"

	"github.com/HamzaFerwana/inventory-management-system/internal/config"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	log.Println("Database connected, migration complete.")
}

// Migrate is shared with the test suite, which runs it against sqlite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.SubCategory{},
		&models.Product{},
		&models.Customer{},
		&models.Supplier{},
		&models.ExpenseCategory{},
		&models.Expense{},
		&models.Quotation{},
		&models.Purchase{},
		&models.AuditLog{},
	)
}
