package customer

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

type CustomerRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

type CustomerResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

func toResponse(m *models.Customer) CustomerResponse {
	return CustomerResponse{
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

func (b *CustomerRequest) normalize() {
	b.Name = strings.TrimSpace(b.Name)
	b.Email = strings.TrimSpace(strings.ToLower(b.Email))
	b.Phone = strings.TrimSpace(b.Phone)
	b.Country = strings.TrimSpace(b.Country)
	b.City = strings.TrimSpace(b.City)
	b.Address = strings.TrimSpace(b.Address)
	b.Description = strings.TrimSpace(b.Description)
}

func emailTaken(email string, excludeID uint) bool {
	q := database.DB.Model(&models.Customer{}).Where("email = ?", email)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	var count int64
	q.Count(&count)
	return count > 0
}

// GET /api/customers
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customers []models.Customer
		if err := database.DB.Order("name asc").Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list customers")
		}

		res := make([]CustomerResponse, 0, len(customers))
		for i := range customers {
			res = append(res, toResponse(&customers[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/customers
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.normalize()

		if errs := validation.Check(body); errs != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}
		if emailTaken(body.Email, 0) {
			return fiber.NewError(fiber.StatusBadRequest, "Customer email must be unique")
		}

		m := models.Customer{
			Name:        body.Name,
			Email:       body.Email,
			Phone:       body.Phone,
			Country:     body.Country,
			City:        body.City,
			Address:     body.Address,
			Description: body.Description,
		}
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create customer")
		}
		res := toResponse(&m)
		audit.Record(c, "customer", m.ID, models.AuditActionCreate, "Customer "+m.Email+" created", nil, res)
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GET /api/customers/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.Customer
		if err := database.DB.First(&m, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}
		return c.JSON(toResponse(&m))
	}
}

// PUT /api/customers/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.Customer
		if err := database.DB.First(&m, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		var body CustomerRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.normalize()

		if errs := validation.Check(body); errs != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}
		if emailTaken(body.Email, m.ID) {
			return fiber.NewError(fiber.StatusBadRequest, "Customer email must be unique")
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
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update customer")
		}
		res := toResponse(&m)
		audit.Record(c, "customer", m.ID, models.AuditActionUpdate, "Customer "+m.Email+" updated", before, res)
		return c.JSON(res)
	}
}

// DELETE /api/customers/:id
// Quotations keep their rows; the customer reference is nulled.
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.Customer
		if err := database.DB.First(&m, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Customer not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Quotation{}).
				Where("customer_id = ?", m.ID).
				Update("customer_id", nil).Error; err != nil {
				return err
			}
			return tx.Delete(&m).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete customer")
		}
		audit.Record(c, "customer", m.ID, models.AuditActionDelete, "Customer "+m.Email+" deleted",
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

// GET /api/customers/export/pdf
func ExportPDFHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customers []models.Customer
		if err := database.DB.Order("name asc").Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load customers")
		}
		return report.SendPDF(c, "customers", "Customers", exportColumns, customers)
	}
}

// GET /api/customers/export/excel
func ExportExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var customers []models.Customer
		if err := database.DB.Order("name asc").Find(&customers).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load customers")
		}
		return report.SendExcel(c, "customers", "Customers", exportColumns, customers)
	}
}
