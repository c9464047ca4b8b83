package catalog

import (
	"strings"

	"github.com/HamzaFerwana/inventory-management-system/internal/audit"
	"github.com/HamzaFerwana/inventory-management-system/internal/database"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"
	"github.com/HamzaFerwana/inventory-management-system/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductRequest struct {
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Unit          string          `json:"unit"`
	SubCategoryID *uint           `json:"sub_category_id"`
	Quantity      int             `json:"quantity"`
	Status        string          `json:"status"`
	Price         decimal.Decimal `json:"price"`
	DiscountPct   decimal.Decimal `json:"discount_pct"`
	Description   string          `json:"description"`
}

type ProductResponse struct {
	ID              uint            `json:"id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Unit            string          `json:"unit"`
	SubCategoryID   *uint           `json:"sub_category_id"`
	SubCategoryName string          `json:"sub_category_name,omitempty"`
	Quantity        int             `json:"quantity"`
	Status          string          `json:"status"`
	Price           decimal.Decimal `json:"price"`
	DiscountPct     decimal.Decimal `json:"discount_pct"`
	Description     string          `json:"description"`
}

func productResponse(p *models.Product) ProductResponse {
	res := ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		SKU:           p.SKU,
		Unit:          p.Unit,
		SubCategoryID: p.SubCategoryID,
		Quantity:      p.Quantity,
		Status:        string(p.Status),
		Price:         p.Price,
		DiscountPct:   p.DiscountPct,
		Description:   p.Description,
	}
	if p.SubCategory != nil {
		res.SubCategoryName = p.SubCategory.Name
	}
	return res
}

func validateProduct(body *ProductRequest, excludeID uint) []string {
	var errs []string

	body.Name = strings.TrimSpace(body.Name)
	body.SKU = strings.TrimSpace(body.SKU)
	body.Unit = strings.TrimSpace(body.Unit)
	body.Description = strings.TrimSpace(body.Description)
	body.Status = strings.TrimSpace(body.Status)
	if body.Status == "" {
		body.Status = string(models.ProductActive)
	}

	if body.Name == "" {
		errs = append(errs, "Product name is required.")
	}
	if body.SKU == "" {
		errs = append(errs, "Product SKU is required.")
	}
	if body.Unit == "" {
		errs = append(errs, "Product unit is required.")
	}
	if body.Quantity < 0 {
		errs = append(errs, "Quantity must not be negative.")
	}
	if body.Price.IsNegative() {
		errs = append(errs, "Price must not be negative.")
	}
	if body.DiscountPct.IsNegative() || body.DiscountPct.GreaterThan(decimal.NewFromInt(100)) {
		errs = append(errs, "Discount percent must be between 0 and 100.")
	}
	if body.Status != string(models.ProductActive) && body.Status != string(models.ProductInactive) {
		errs = append(errs, "Status must be active or inactive.")
	}
	if body.SubCategoryID != nil {
		var count int64
		database.DB.Model(&models.SubCategory{}).Where("id = ?", *body.SubCategoryID).Count(&count)
		if count == 0 {
			errs = append(errs, "Subcategory does not exist.")
		}
	}
	if body.SKU != "" {
		q := database.DB.Model(&models.Product{}).Where("sku = ?", body.SKU)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		var count int64
		q.Count(&count)
		if count > 0 {
			errs = append(errs, "Product SKU must be unique.")
		}
	}
	return errs
}

// GET /api/products
func ListProductsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Preload("SubCategory").Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list products")
		}

		res := make([]ProductResponse, 0, len(products))
		for i := range products {
			res = append(res, productResponse(&products[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/products
func CreateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := validateProduct(&body, 0); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		p := models.Product{
			Name:          body.Name,
			SKU:           body.SKU,
			Unit:          body.Unit,
			SubCategoryID: body.SubCategoryID,
			Quantity:      body.Quantity,
			Status:        models.ProductStatus(body.Status),
			Price:         body.Price.Round(2),
			DiscountPct:   body.DiscountPct,
			Description:   body.Description,
		}
		if err := database.DB.Create(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create product")
		}
		res := productResponse(&p)
		audit.Record(c, "product", p.ID, models.AuditActionCreate, "Product "+p.SKU+" created", nil, res)
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GET /api/products/:id
func GetProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Product
		if err := database.DB.Preload("SubCategory").First(&p, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return c.JSON(productResponse(&p))
	}
}

// PUT /api/products/:id
func UpdateProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Product
		if err := database.DB.First(&p, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		var body ProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := validateProduct(&body, p.ID); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		before := productResponse(&p)
		p.Name = body.Name
		p.SKU = body.SKU
		p.Unit = body.Unit
		p.SubCategoryID = body.SubCategoryID
		p.Quantity = body.Quantity
		p.Status = models.ProductStatus(body.Status)
		p.Price = body.Price.Round(2)
		p.DiscountPct = body.DiscountPct
		p.Description = body.Description

		if err := database.DB.Save(&p).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update product")
		}
		res := productResponse(&p)
		audit.Record(c, "product", p.ID, models.AuditActionUpdate, "Product "+p.SKU+" updated", before, res)
		return c.JSON(res)
	}
}

// DELETE /api/products/:id
// Purchases and quotations keep their rows; the product reference is nulled.
func DeleteProductHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var p models.Product
		if err := database.DB.First(&p, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Purchase{}).
				Where("product_id = ?", p.ID).
				Update("product_id", nil).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Quotation{}).
				Where("product_id = ?", p.ID).
				Update("product_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&p).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete product")
		}
		audit.Record(c, "product", p.ID, models.AuditActionDelete, "Product "+p.SKU+" deleted",
			productResponse(&p), nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

var productColumns = []report.Column{
	{Field: "ID", Label: "ID"},
	{Field: "Name", Label: "Name"},
	{Field: "SKU", Label: "SKU"},
	{Field: "SubCategory.Name", Label: "Subcategory"},
	{Field: "Unit", Label: "Unit"},
	{Field: "Quantity", Label: "Quantity"},
	{Field: "Status", Label: "Status"},
	{Field: "Price", Label: "Price"},
	{Field: "DiscountPct", Label: "Discount %"},
}

// GET /api/products/export/pdf
func ExportProductsPDFHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Preload("SubCategory").Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load products")
		}
		return report.SendPDF(c, "products", "Products", productColumns, products)
	}
}

// GET /api/products/export/excel
func ExportProductsExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := database.DB.Preload("SubCategory").Order("name asc").Find(&products).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load products")
		}
		return report.SendExcel(c, "products", "Products", productColumns, products)
	}
}
