package catalog

import (
	"strings"

	"github.com/HamzaFerwana/inventory-management-system/internal/audit"
	"github.com/HamzaFerwana/inventory-management-system/internal/database"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"
	"github.com/HamzaFerwana/inventory-management-system/internal/report"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CategoryRequest struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

type CategoryResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Code string `json:"code"`
}

func validateCategory(body *CategoryRequest, excludeID uint) []string {
	var errs []string

	body.Name = strings.TrimSpace(body.Name)
	body.Code = strings.TrimSpace(body.Code)

	if body.Name == "" {
		errs = append(errs, "Category name is required.")
	}
	if body.Code == "" {
		errs = append(errs, "Category code is required.")
	}
	if body.Code != "" {
		q := database.DB.Model(&models.Category{}).Where("code = ?", body.Code)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		var count int64
		q.Count(&count)
		if count > 0 {
			errs = append(errs, "Category code must be unique.")
		}
	}
	return errs
}

// GET /api/categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list categories")
		}

		res := make([]CategoryResponse, 0, len(categories))
		for _, cat := range categories {
			res = append(res, CategoryResponse{ID: cat.ID, Name: cat.Name, Code: cat.Code})
		}
		return c.JSON(res)
	}
}

// POST /api/categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := validateCategory(&body, 0); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		cat := models.Category{Name: body.Name, Code: body.Code}
		if err := database.DB.Create(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create category")
		}
		res := CategoryResponse{ID: cat.ID, Name: cat.Name, Code: cat.Code}
		audit.Record(c, "category", cat.ID, models.AuditActionCreate, "Category "+cat.Code+" created", nil, res)
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GET /api/categories/:id
func GetCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		return c.JSON(CategoryResponse{ID: cat.ID, Name: cat.Name, Code: cat.Code})
	}
}

// PUT /api/categories/:id
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		var body CategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := validateCategory(&body, cat.ID); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		before := CategoryResponse{ID: cat.ID, Name: cat.Name, Code: cat.Code}
		cat.Name = body.Name
		cat.Code = body.Code
		if err := database.DB.Save(&cat).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update category")
		}
		res := CategoryResponse{ID: cat.ID, Name: cat.Name, Code: cat.Code}
		audit.Record(c, "category", cat.ID, models.AuditActionUpdate, "Category "+cat.Code+" updated", before, res)
		return c.JSON(res)
	}
}

// DELETE /api/categories/:id
// Subcategories go with their category.
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var cat models.Category
		if err := database.DB.First(&cat, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}

		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("category_id = ?", cat.ID).Delete(&models.SubCategory{}).Error; err != nil {
				return err
			}
			return tx.Delete(&cat).Error
		})
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete category")
		}
		audit.Record(c, "category", cat.ID, models.AuditActionDelete, "Category "+cat.Code+" deleted",
			CategoryResponse{ID: cat.ID, Name: cat.Name, Code: cat.Code}, nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

var categoryColumns = []report.Column{
	{Field: "ID", Label: "ID"},
	{Field: "Name", Label: "Name"},
	{Field: "Code", Label: "Code"},
	{Field: "CreatedAt", Label: "Created"},
}

// GET /api/categories/export/pdf
func ExportCategoriesPDFHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load categories")
		}
		return report.SendPDF(c, "categories", "Categories", categoryColumns, categories)
	}
}

// GET /api/categories/export/excel
func ExportCategoriesExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load categories")
		}
		return report.SendExcel(c, "categories", "Categories", categoryColumns, categories)
	}
}
