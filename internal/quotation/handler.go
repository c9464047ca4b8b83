package quotation

import (
	"strings"

	"github.com/HamzaFerwana/inventory-management-system/internal/audit"
	"github.com/HamzaFerwana/inventory-management-system/internal/database"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"
	"github.com/HamzaFerwana/inventory-management-system/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type QuotationRequest struct {
	CustomerID  *uint           `json:"customer_id"`
	ProductID   *uint           `json:"product_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
}

type QuotationResponse struct {
	ID           uint            `json:"id"`
	CustomerID   *uint           `json:"customer_id"`
	CustomerName string          `json:"customer_name,omitempty"`
	ProductID    *uint           `json:"product_id"`
	ProductName  string          `json:"product_name,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	Description  string          `json:"description"`
	CreatedAt    string          `json:"created_at"`
}

func toResponse(q *models.Quotation) QuotationResponse {
	res := QuotationResponse{
		ID:          q.ID,
		CustomerID:  q.CustomerID,
		ProductID:   q.ProductID,
		Quantity:    q.Quantity,
		UnitPrice:   q.UnitPrice,
		Total:       q.Total,
		Status:      string(q.Status),
		Description: q.Description,
		CreatedAt:   q.CreatedAt.Format("2006-01-02 15:04"),
	}
	if q.Customer != nil {
		res.CustomerName = q.Customer.Name
	}
	if q.Product != nil {
		res.ProductName = q.Product.Name
	}
	return res
}

func validStatus(s string) bool {
	switch models.QuotationStatus(s) {
	case models.QuotationDraft, models.QuotationSent, models.QuotationAccepted, models.QuotationDeclined:
		return true
	}
	return false
}

func validateQuotation(body *QuotationRequest) []string {
	var errs []string

	body.Description = strings.TrimSpace(body.Description)
	body.Status = strings.TrimSpace(body.Status)
	if body.Status == "" {
		body.Status = string(models.QuotationDraft)
	}

	if body.Quantity < 0 {
		errs = append(errs, "Quantity must not be negative.")
	}
	if body.UnitPrice.IsNegative() {
		errs = append(errs, "Unit price must not be negative.")
	}
	if !validStatus(body.Status) {
		errs = append(errs, "Status must be draft, sent, accepted or declined.")
	}
	if body.CustomerID != nil {
		var count int64
		database.DB.Model(&models.Customer{}).Where("id = ?", *body.CustomerID).Count(&count)
		if count == 0 {
			errs = append(errs, "Customer does not exist.")
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

func apply(q *models.Quotation, body *QuotationRequest) {
	q.CustomerID = body.CustomerID
	q.ProductID = body.ProductID
	q.Quantity = body.Quantity
	q.UnitPrice = body.UnitPrice.Round(2)
	q.Total = body.UnitPrice.Mul(decimal.NewFromInt(int64(body.Quantity))).Round(2)
	q.Status = models.QuotationStatus(body.Status)
	q.Description = body.Description
}

// GET /api/quotations
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var quotations []models.Quotation
		if err := database.DB.Preload("Customer").Preload("Product").
			Order("created_at desc").Find(&quotations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list quotations")
		}

		res := make([]QuotationResponse, 0, len(quotations))
		for i := range quotations {
			res = append(res, toResponse(&quotations[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/quotations
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body QuotationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := validateQuotation(&body); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		var q models.Quotation
		apply(&q, &body)
		if err := database.DB.Create(&q).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create quotation")
		}
		res := toResponse(&q)
		audit.Record(c, "quotation", q.ID, models.AuditActionCreate,
			"Quotation created, total "+q.Total.StringFixed(2), nil, res)
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GET /api/quotations/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q models.Quotation
		if err := database.DB.Preload("Customer").Preload("Product").
			First(&q, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Quotation not found")
		}
		return c.JSON(toResponse(&q))
	}
}

// PUT /api/quotations/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q models.Quotation
		if err := database.DB.First(&q, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Quotation not found")
		}

		var body QuotationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := validateQuotation(&body); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		before := toResponse(&q)
		apply(&q, &body)
		if err := database.DB.Save(&q).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update quotation")
		}
		res := toResponse(&q)
		audit.Record(c, "quotation", q.ID, models.AuditActionUpdate, "Quotation updated", before, res)
		return c.JSON(res)
	}
}

// DELETE /api/quotations/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var q models.Quotation
		if err := database.DB.First(&q, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Quotation not found")
		}

		if err := database.DB.Delete(&q).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete quotation")
		}
		audit.Record(c, "quotation", q.ID, models.AuditActionDelete, "Quotation deleted", toResponse(&q), nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

var exportColumns = []report.Column{
	{Field: "ID", Label: "ID"},
	{Field: "Customer.Name", Label: "Customer"},
	{Field: "Product.Name", Label: "Product"},
	{Field: "Quantity", Label: "Quantity"},
	{Field: "UnitPrice", Label: "Unit Price"},
	{Field: "Total", Label: "Total"},
	{Field: "Status", Label: "Status"},
	{Field: "CreatedAt", Label: "Created"},
}

// GET /api/quotations/export/pdf
func ExportPDFHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var quotations []models.Quotation
		if err := database.DB.Preload("Customer").Preload("Product").
			Order("created_at desc").Find(&quotations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load quotations")
		}
		return report.SendPDF(c, "quotations", "Quotations", exportColumns, quotations)
	}
}

// GET /api/quotations/export/excel
func ExportExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var quotations []models.Quotation
		if err := database.DB.Preload("Customer").Preload("Product").
			Order("created_at desc").Find(&quotations).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load quotations")
		}
		return report.SendExcel(c, "quotations", "Quotations", exportColumns, quotations)
	}
}
