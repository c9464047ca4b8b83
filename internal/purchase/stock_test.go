package purchase_test

import (
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/HamzaFerwana/inventory-management-system/internal/database"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"
	"github.com/HamzaFerwana/inventory-management-system/internal/purchase"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	// One connection serializes concurrent transactions against sqlite.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	return db
}

func seedPurchase(t *testing.T, db *gorm.DB, productQty, purchaseQty int, applied bool) (*models.Product, *models.Purchase) {
	t.Helper()

	product := &models.Product{
		Name:     "Copper Wire",
		SKU:      "CW-001",
		Unit:     "roll",
		Quantity: productQty,
		Status:   models.ProductActive,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	p := &models.Purchase{
		ProductID:    &product.ID,
		Quantity:     purchaseQty,
		Status:       models.PurchasePending,
		StockApplied: applied,
	}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	return product, p
}

func TestToggleStockAppliesThenReverses(t *testing.T) {
	db := newTestDB(t)
	product, p := seedPurchase(t, db, 5, 3, false)

	appliedNow, err := purchase.ToggleStock(db, p.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !appliedNow {
		t.Fatal("first toggle expected applied")
	}

	var got models.Product
	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if got.Quantity != 8 {
		t.Fatalf("after apply expected quantity 8, got %d", got.Quantity)
	}

	appliedNow, err = purchase.ToggleStock(db, p.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if appliedNow {
		t.Fatal("second toggle expected reversed")
	}

	if err := db.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if got.Quantity != 5 {
		t.Fatalf("after reverse expected quantity back to 5, got %d", got.Quantity)
	}

	var reloaded models.Purchase
	if err := db.First(&reloaded, p.ID).Error; err != nil {
		t.Fatalf("reload purchase: %v", err)
	}
	if reloaded.StockApplied {
		t.Fatal("stock_applied expected false after reverse")
	}
}

func TestToggleStockPurchaseNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := purchase.ToggleStock(db, 9999)
	if !errors.Is(err, purchase.ErrPurchaseNotFound) {
		t.Fatalf("expected ErrPurchaseNotFound, got %v", err)
	}
}

func TestToggleStockNoProductAttached(t *testing.T) {
	db := newTestDB(t)

	p := &models.Purchase{Quantity: 2, Status: models.PurchasePending}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("create purchase: %v", err)
	}

	_, err := purchase.ToggleStock(db, p.ID)
	if !errors.Is(err, purchase.ErrNoProductAttached) {
		t.Fatalf("expected ErrNoProductAttached, got %v", err)
	}
}

func TestToggleStockProductRowGoneLeavesFlagUnset(t *testing.T) {
	db := newTestDB(t)
	product, p := seedPurchase(t, db, 5, 3, false)

	// Product deleted after the purchase was created; the reference dangles.
	if err := db.Delete(&models.Product{}, product.ID).Error; err != nil {
		t.Fatalf("delete product: %v", err)
	}

	_, err := purchase.ToggleStock(db, p.ID)
	if !errors.Is(err, purchase.ErrNoProductAttached) {
		t.Fatalf("expected ErrNoProductAttached, got %v", err)
	}

	var reloaded models.Purchase
	if err := db.First(&reloaded, p.ID).Error; err != nil {
		t.Fatalf("reload purchase: %v", err)
	}
	if reloaded.StockApplied {
		t.Fatal("stock_applied flipped although no product row was updated")
	}
}

func TestToggleStockInsufficientStockLeavesRowsUnchanged(t *testing.T) {
	db := newTestDB(t)
	// Applied purchase of 3, but only 2 left on hand: reversal must fail whole.
	product, p := seedPurchase(t, db, 2, 3, true)

	_, err := purchase.ToggleStock(db, p.ID)
	if !errors.Is(err, purchase.ErrInsufficientStock) {
		t.Fatalf("expected ErrInsufficientStock, got %v", err)
	}

	var gotProduct models.Product
	if err := db.First(&gotProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if gotProduct.Quantity != 2 {
		t.Fatalf("product quantity changed on failed reversal: %d", gotProduct.Quantity)
	}

	var gotPurchase models.Purchase
	if err := db.First(&gotPurchase, p.ID).Error; err != nil {
		t.Fatalf("reload purchase: %v", err)
	}
	if !gotPurchase.StockApplied {
		t.Fatal("stock_applied flipped on failed reversal")
	}
}

func TestToggleStockConcurrent(t *testing.T) {
	db := newTestDB(t)
	product, p := seedPurchase(t, db, 10, 4, false)

	const toggles = 7

	var wg sync.WaitGroup
	errs := make([]error, toggles)
	applied := make([]bool, toggles)
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			applied[i], errs[i] = purchase.ToggleStock(db, p.ID)
		}(i)
	}
	wg.Wait()

	applies, reverses := 0, 0
	for i := 0; i < toggles; i++ {
		if errs[i] != nil {
			t.Fatalf("toggle %d failed: %v", i, errs[i])
		}
		if applied[i] {
			applies++
		} else {
			reverses++
		}
	}

	// Toggles serialize: 7 flips from "not applied" end applied, net one.
	if applies != 4 || reverses != 3 {
		t.Fatalf("expected 4 applies and 3 reverses, got %d/%d", applies, reverses)
	}

	var gotProduct models.Product
	if err := db.First(&gotProduct, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if gotProduct.Quantity != 14 {
		t.Fatalf("expected quantity 14 (one net application), got %d", gotProduct.Quantity)
	}

	var gotPurchase models.Purchase
	if err := db.First(&gotPurchase, p.ID).Error; err != nil {
		t.Fatalf("reload purchase: %v", err)
	}
	if !gotPurchase.StockApplied {
		t.Fatal("expected stock_applied true after an odd number of toggles")
	}
}
