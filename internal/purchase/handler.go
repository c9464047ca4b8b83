package purchase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/HamzaFerwana/inventory-management-system/internal/audit"
	"github.com/HamzaFerwana/inventory-management-system/internal/database"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"
	"github.com/HamzaFerwana/inventory-management-system/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type PurchaseRequest struct {
	SupplierID  *uint           `json:"supplier_id"`
	ProductID   *uint           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	DiscountPct decimal.Decimal `json:"discount_pct"`
	TaxPct      decimal.Decimal `json:"tax_pct"`
	PaidAmount  decimal.Decimal `json:"paid_amount"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
}

type PurchaseResponse struct {
	ID             uint            `json:"id"`
	SupplierID     *uint           `json:"supplier_id"`
	SupplierName   string          `json:"supplier_name,omitempty"`
	ProductID      *uint           `json:"product_id"`
	ProductName    string          `json:"product_name,omitempty"`
	Quantity       int             `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	DiscountPct    decimal.Decimal `json:"discount_pct"`
	TaxPct         decimal.Decimal `json:"tax_pct"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	TaxAmount      decimal.Decimal `json:"tax_amount"`
	LineTotal      decimal.Decimal `json:"line_total"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	Status         string          `json:"status"`
	PaymentStatus  string          `json:"payment_status"`
	StockApplied   bool            `json:"stock_applied"`
	Description    string          `json:"description"`
	CreatedAt      string          `json:"created_at"`
}

func toResponse(p *models.Purchase) PurchaseResponse {
	res := PurchaseResponse{
		ID:             p.ID,
		SupplierID:     p.SupplierID,
		ProductID:      p.ProductID,
		Quantity:       p.Quantity,
		UnitPrice:      p.UnitPrice,
		DiscountPct:    p.DiscountPct,
		TaxPct:         p.TaxPct,
		DiscountAmount: p.DiscountAmount,
		TaxAmount:      p.TaxAmount,
		LineTotal:      p.LineTotal,
		PaidAmount:     p.PaidAmount,
		Status:         string(p.Status),
		PaymentStatus:  string(p.PaymentStatus),
		StockApplied:   p.StockApplied,
		Description:    p.Description,
		CreatedAt:      p.CreatedAt.Format("2006-01-02 15:04"),
	}
	if p.Supplier != nil {
		res.SupplierName = p.Supplier.Name
	}
	if p.Product != nil {
		res.ProductName = p.Product.Name
	}
	return res
}

func validStatus(s string) bool {
	switch models.PurchaseStatus(s) {
	case models.PurchasePending, models.PurchaseOrdered, models.PurchaseReceived, models.PurchaseCancelled:
		return true
	}
	return false
}

// validateRequest collects form-style error messages. Nothing is persisted
// while any are present.
func validateRequest(body *PurchaseRequest) []string {
	var errs []string

	if body.Quantity < 0 {
		errs = append(errs, "Quantity must not be negative.")
	}
	if body.UnitPrice.IsNegative() {
		errs = append(errs, "Unit price must not be negative.")
	}
	if body.DiscountPct.IsNegative() || body.DiscountPct.GreaterThan(hundred) {
		errs = append(errs, "Discount percent must be between 0 and 100.")
	}
	if body.TaxPct.IsNegative() || body.TaxPct.GreaterThan(hundred) {
		errs = append(errs, "Tax percent must be between 0 and 100.")
	}
	if body.PaidAmount.IsNegative() {
		errs = append(errs, "Paid amount must not be negative.")
	}
	body.Status = strings.TrimSpace(body.Status)
	if body.Status == "" {
		body.Status = string(models.PurchasePending)
	}
	if !validStatus(body.Status) {
		errs = append(errs, "Status must be pending, ordered, received or cancelled.")
	}

	if body.SupplierID != nil {
		var count int64
		database.DB.Model(&models.Supplier{}).Where("id = ?", *body.SupplierID).Count(&count)
		if count == 0 {
			errs = append(errs, "Supplier does not exist.")
		}
	}
	if body.ProductID != nil {
		var count int64
		database.DB.Model(&models.Product{}).Where("id = ?", *body.ProductID).Count(&count)
		if count == 0 {
			errs = append(errs, "Product does not exist.")
		}
	}

	return errs
}

// applyComputed fills the calculated fields from the validated input.
// Returns false when paid amount exceeds the computed line total.
func applyComputed(p *models.Purchase, body *PurchaseRequest) bool {
	discount, tax, total := ComputeLineTotals(body.Quantity, body.UnitPrice, body.DiscountPct, body.TaxPct)

	if body.PaidAmount.GreaterThan(total) {
		return false
	}

	p.SupplierID = body.SupplierID
	p.ProductID = body.ProductID
	p.Quantity = body.Quantity
	p.UnitPrice = body.UnitPrice.Round(2)
	p.DiscountPct = body.DiscountPct
	p.TaxPct = body.TaxPct
	p.DiscountAmount = discount
	p.TaxAmount = tax
	p.LineTotal = total
	p.PaidAmount = body.PaidAmount
	p.Status = models.PurchaseStatus(body.Status)
	p.PaymentStatus = PaymentStatusFor(body.PaidAmount, total)
	p.Description = strings.TrimSpace(body.Description)
	return true
}

// GET /api/purchases
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var purchases []models.Purchase
		if err := database.DB.Preload("Supplier").Preload("Product").
			Order("created_at desc").Find(&purchases).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list purchases")
		}

		res := make([]PurchaseResponse, 0, len(purchases))
		for i := range purchases {
			res = append(res, toResponse(&purchases[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/purchases
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := validateRequest(&body); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		var p models.Purchase
		if !applyComputed(&p, &body) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": []string{"Paid amount must not exceed the line total."},
			})
		}

		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create purchase")
		}
		res := toResponse(&p)
		audit.Record(c, "purchase", p.ID, models.AuditActionCreate,
			fmt.Sprintf("Purchase created, total %s", p.LineTotal.StringFixed(2)), nil, res)
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GET /api/purchases/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Purchase
		if err := database.DB.Preload("Supplier").Preload("Product").
			First(&p, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Purchase not found")
		}
		return c.JSON(toResponse(&p))
	}
}

// PUT /api/purchases/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Purchase
		if err := database.DB.First(&p, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Purchase not found")
		}

		var body PurchaseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := validateRequest(&body); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		before := toResponse(&p)
		if !applyComputed(&p, &body) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"errors": []string{"Paid amount must not exceed the line total."},
			})
		}

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update purchase")
		}
		res := toResponse(&p)
		audit.Record(c, "purchase", p.ID, models.AuditActionUpdate, "Purchase updated", before, res)
		return c.JSON(res)
	}
}

// DELETE /api/purchases/:id
// An applied purchase keeps its stock adjustment; delete does not reverse it.
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Purchase
		if err := database.DB.First(&p, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Purchase not found")
		}

		if err := database.DB.Delete(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete purchase")
		}
		audit.Record(c, "purchase", p.ID, models.AuditActionDelete, "Purchase deleted", toResponse(&p), nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// POST /api/purchases/:id/adjust-quantity
func AdjustQuantityHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid purchase id")
		}

		appliedNow, err := ToggleStock(database.DB, uint(id))
		if err != nil {
			switch {
			case errors.Is(err, ErrPurchaseNotFound):
				return fiber.NewError(fiber.StatusNotFound, "Purchase not found")
			case errors.Is(err, ErrNoProductAttached):
				return fiber.NewError(fiber.StatusBadRequest, "No product attached to this purchase")
			case errors.Is(err, ErrInsufficientStock):
				return fiber.NewError(fiber.StatusConflict, "Not enough stock to reverse this purchase")
			case errors.Is(err, ErrStaleToggle):
				return fiber.NewError(fiber.StatusConflict, "Purchase was adjusted by another request")
			default:
				return fiber.NewError(fiber.StatusInternalServerError, "Could not adjust stock")
			}
		}

		action := models.AuditActionReverse
		description := "Purchase stock reversed"
		if appliedNow {
			action = models.AuditActionApply
			description = "Purchase stock applied"
		}
		audit.Record(c, "purchase", uint(id), action, description, nil,
			fiber.Map{"applied_now": appliedNow})

		return c.JSON(fiber.Map{"applied_now": appliedNow})
	}
}

var exportColumns = []report.Column{
	{Field: "ID", Label: "ID"},
	{Field: "Supplier.Name", Label: "Supplier"},
	{Field: "Product.Name", Label: "Product"},
	{Field: "Quantity", Label: "Quantity"},
	{Field: "UnitPrice", Label: "Unit Price"},
	{Field: "DiscountAmount", Label: "Discount"},
	{Field: "TaxAmount", Label: "Tax"},
	{Field: "LineTotal", Label: "Total"},
	{Field: "PaidAmount", Label: "Paid"},
	{Field: "Status", Label: "Status"},
	{Field: "PaymentStatus", Label: "Payment"},
	{Field: "CreatedAt", Label: "Created"},
}

func exportRecords() ([]models.Purchase, error) {
	var purchases []models.Purchase
	if err := database.DB.Preload("Supplier").Preload("Product").
		Order("created_at desc").Find(&purchases).Error; err != nil {
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load purchases")
	}
	return purchases, nil
}

// GET /api/purchases/export/pdf
func ExportPDFHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		purchases, err := exportRecords()
		if err != nil {
			return err
		}
		return report.SendPDF(c, "purchases", "Purchases", exportColumns, purchases)
	}
}

// GET /api/purchases/export/excel
func ExportExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		purchases, err := exportRecords()
		if err != nil {
			return err
		}
		return report.SendExcel(c, "purchases", "Purchases", exportColumns, purchases)
	}
}
