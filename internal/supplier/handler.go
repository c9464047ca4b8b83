package supplier

import (
	"strings"

	"github.com/HamzaFerwana/inventory-management-system/internal/audit"
	"github.com/HamzaFerwana/inventory-management-system/internal/database"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"
	"github.com/HamzaFerwana/inventory-management-system/internal/report"
	"github.com/HamzaFerwana/inventory-management-system/internal/validation"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SupplierRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

type SupplierResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

func toResponse(m *models.Supplier) SupplierResponse {
	return SupplierResponse{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		Phone:       m.Phone,
		Country:     m.Country,
		City:        m.City,
		Address:     m.Address,
		Description: m.Description,
	}
}

func (b *SupplierRequest) normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Email = strings.TrimSpace(strings.ToLower(b.Email))
	b.Phone = strings.TrimSpace(b.Phone)
	b.Country = strings.TrimSpace(b.Country)
	b.City = strings.TrimSpace(b.City)
	b.Address = strings.TrimSpace(b.Address)
	b.Description = strings.TrimSpace(b.Description)
}

func emailTaken(email string, excludeID uint) bool {
	q := database.DB.Model(&models.Supplier{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	q.Count(&count)
	return count > 0
}

// GET /api/suppliers
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Order("name asc").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list suppliers")
		}

		res := make([]SupplierResponse, 0, len(suppliers))
		for i := range suppliers {
			res = append(res, toResponse(&suppliers[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/suppliers
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.normalize()

		if errs := validation.Check(body); errs != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}
		if emailTaken(body.Email, 0) {
			return fiber.NewError(fiber.StatusBadRequest, "Supplier email must be unique")
		}

		m := models.Supplier{
			Name:        body.Name,
			Email:       body.Email,
			Phone:       body.Phone,
			Country:     body.Country,
			City:        body.City,
			Address:     body.Address,
			Description: body.Description,
		}
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create supplier")
		}
		res := toResponse(&m)
		audit.Record(c, "supplier", m.ID, models.AuditActionCreate, "Supplier "+m.Email+" created", nil, res)
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GET /api/suppliers/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.Supplier
		if err := database.DB.First(&m, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supplier not found")
		}
		return c.JSON(toResponse(&m))
	}
}

// PUT /api/suppliers/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.Supplier
		if err := database.DB.First(&m, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supplier not found")
		}

		var body SupplierRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.normalize()

		if errs := validation.Check(body); errs != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}
		if emailTaken(body.Email, m.ID) {
			return fiber.NewError(fiber.StatusBadRequest, "Supplier email must be unique")
		}

		before := toResponse(&m)
		m.Name = body.Name
		m.Email = body.Email
		m.Phone = body.Phone
		m.Country = body.Country
		m.City = body.City
		m.Address = body.Address
		m.Description = body.Description

		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update supplier")
		}
		res := toResponse(&m)
		audit.Record(c, "supplier", m.ID, models.AuditActionUpdate, "Supplier "+m.Email+" updated", before, res)
		return c.JSON(res)
	}
}

// DELETE /api/suppliers/:id
// Purchases keep their rows; the supplier reference is nulled.
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.Supplier
		if err := database.DB.First(&m, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Supplier not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Purchase{}).
				Where("supplier_id = ?", m.ID).
				Update("supplier_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&m).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete supplier")
		}
		audit.Record(c, "supplier", m.ID, models.AuditActionDelete, "Supplier "+m.Email+" deleted",
			toResponse(&m), nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

var exportColumns = []report.Column{
	{Field: "ID", Label: "ID"},
	{Field: "Name", Label: "Name"},
	{Field: "Email", Label: "Email"},
	{Field: "Phone", Label: "Phone"},
	{Field: "Country", Label: "Country"},
	{Field: "City", Label: "City"},
	{Field: "CreatedAt", Label: "Created"},
}

// GET /api/suppliers/export/pdf
func ExportPDFHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Order("name asc").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load suppliers")
		}
		return report.SendPDF(c, "suppliers", "Suppliers", exportColumns, suppliers)
	}
}

// GET /api/suppliers/export/excel
func ExportExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var suppliers []models.Supplier
		if err := database.DB.Order("name asc").Find(&suppliers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load suppliers")
		}
		return report.SendExcel(c, "suppliers", "Suppliers", exportColumns, suppliers)
	}
}
