package purchase

import (
	"errors"

	"github.com/HamzaFerwana/inventory-management-system/internal/models"

	"gorm.io/gorm"
)

var (
	ErrPurchaseNotFound  = errors.New("purchase not found")
	ErrNoProductAttached = errors.New("no product attached")
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrStaleToggle: another request flipped the flag between our read and
	// write. The earlier request won; nothing was changed here.
	ErrStaleToggle = errors.New("purchase was toggled concurrently")
)

// ToggleStock applies or reverses the purchase's quantity effect on its
// product's stock, exactly once per direction. The whole read-modify-write
// runs in one transaction; every UPDATE carries a state guard and is checked
// for RowsAffected, so a concurrent toggle on the same purchase loses the
// race and rolls back instead of double-applying. Returns whether the stock
// is applied after the call.
func ToggleStock(db *gorm.DB, purchaseID uint) (bool, error) {
	var appliedNow bool
	err := db.Transaction(func(tx *gorm.DB) error {
		var p models.Purchase
		if err := tx.First(&p, purchaseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPurchaseNotFound
			}
			return err
		}
		if p.ProductID == nil {
			return ErrNoProductAttached
		}

		if !p.StockApplied {
			res := tx.Model(&models.Purchase{}).
				Where("id = ? AND stock_applied = ?", p.ID, false).
				Update("stock_applied", true)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrStaleToggle
			}
			res = tx.Model(&models.Product{}).
				Where("id = ?", *p.ProductID).
				Update("quantity", gorm.Expr("quantity + ?", p.Quantity))
			if res.Error != nil {
				return res.Error
			}
			// Product row deleted between the purchase read and this update;
			// rolling back keeps the flag in sync with the untouched stock.
			if res.RowsAffected == 0 {
				return ErrNoProductAttached
			}
			appliedNow = true
			return nil
		}

		res := tx.Model(&models.Purchase{}).
			Where("id = ? AND stock_applied = ?", p.ID, true).
			Update("stock_applied", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStaleToggle
		}
		// The quantity guard keeps stock from going negative; hitting it
		// rolls back the flag flip above as well.
		res = tx.Model(&models.Product{}).
			Where("id = ? AND quantity >= ?", *p.ProductID, p.Quantity).
			Update("quantity", gorm.Expr("quantity - ?", p.Quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrInsufficientStock
		}
		appliedNow = false
		return nil
	})
	return appliedNow, err
}
