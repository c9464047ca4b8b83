package catalog

import (
	"strings"

	"github.com/HamzaFerwana/inventory-management-system/internal/audit"
	"github.com/HamzaFerwana/inventory-management-system/internal/database"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"
	"github.com/HamzaFerwana/inventory-management-system/internal/report"

	"github.com/gofiber/fiber/v2"
)

type SubCategoryRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	CategoryID  uint   `json:"category_id"`
	Description string `json:"description"`
}

type SubCategoryResponse struct {
	ID           uint   `json:"id"`
	Name         string `json:"name"`
	Code         string `json:"code"`
	CategoryID   uint   `json:"category_id"`
	CategoryName string `json:"category_name"`
	Description  string `json:"description"`
}

func subCategoryResponse(s *models.SubCategory) SubCategoryResponse {
	return SubCategoryResponse{
		ID:           s.ID,
		Name:         s.Name,
		Code:         s.Code,
		CategoryID:   s.CategoryID,
		CategoryName: s.Category.Name,
		Description:  s.Description,
	}
}

func validateSubCategory(body *SubCategoryRequest, excludeID uint) []string {
	var errs []string

	body.Name = strings.TrimSpace(body.Name)
	body.Code = strings.TrimSpace(body.Code)
	body.Description = strings.TrimSpace(body.Description)

	if body.Name == "" {
		errs = append(errs, "Subcategory name is required.")
	}
	if body.Code == "" {
		errs = append(errs, "Subcategory code is required.")
	}
	if body.CategoryID == 0 {
		errs = append(errs, "Category is required.")
	} else {
		var count int64
		database.DB.Model(&models.Category{}).Where("id = ?", body.CategoryID).Count(&count)
		if count == 0 {
			errs = append(errs, "Category does not exist.")
		}
	}
	if body.Code != "" {
		q := database.DB.Model(&models.SubCategory{}).Where("code = ?", body.Code)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		var count int64
		q.Count(&count)
		if count > 0 {
			errs = append(errs, "Subcategory code must be unique.")
		}
	}
	return errs
}

// GET /api/subcategories
func ListSubCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var subs []models.SubCategory
		if err := database.DB.Preload("Category").Order("name asc").Find(&subs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list subcategories")
		}

		res := make([]SubCategoryResponse, 0, len(subs))
		for i := range subs {
			res = append(res, subCategoryResponse(&subs[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/subcategories
func CreateSubCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body SubCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := validateSubCategory(&body, 0); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		sub := models.SubCategory{
			Name:        body.Name,
			Code:        body.Code,
			CategoryID:  body.CategoryID,
			Description: body.Description,
		}
		if err := database.DB.Create(&sub).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create subcategory")
		}
		database.DB.Preload("Category").First(&sub, sub.ID)
		res := subCategoryResponse(&sub)
		audit.Record(c, "subcategory", sub.ID, models.AuditActionCreate, "Subcategory "+sub.Code+" created", nil, res)
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GET /api/subcategories/:id
func GetSubCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sub models.SubCategory
		if err := database.DB.Preload("Category").First(&sub, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Subcategory not found")
		}
		return c.JSON(subCategoryResponse(&sub))
	}
}

// PUT /api/subcategories/:id
func UpdateSubCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sub models.SubCategory
		if err := database.DB.First(&sub, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Subcategory not found")
		}

		var body SubCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := validateSubCategory(&body, sub.ID); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		before := subCategoryResponse(&sub)
		sub.Name = body.Name
		sub.Code = body.Code
		sub.CategoryID = body.CategoryID
		sub.Description = body.Description
		if err := database.DB.Save(&sub).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update subcategory")
		}
		database.DB.Preload("Category").First(&sub, sub.ID)
		res := subCategoryResponse(&sub)
		audit.Record(c, "subcategory", sub.ID, models.AuditActionUpdate, "Subcategory "+sub.Code+" updated", before, res)
		return c.JSON(res)
	}
}

// DELETE /api/subcategories/:id
// Blocked while products still reference the subcategory.
func DeleteSubCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sub models.SubCategory
		if err := database.DB.First(&sub, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Subcategory not found")
		}

		var productCount int64
		database.DB.Model(&models.Product{}).Where("sub_category_id = ?", sub.ID).Count(&productCount)
		if productCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Subcategory still has products and cannot be deleted")
		}

		if err := database.DB.Delete(&sub).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete subcategory")
		}
		audit.Record(c, "subcategory", sub.ID, models.AuditActionDelete, "Subcategory "+sub.Code+" deleted",
			subCategoryResponse(&sub), nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

var subCategoryColumns = []report.Column{
	{Field: "ID", Label: "ID"},
	{Field: "Name", Label: "Name"},
	{Field: "Code", Label: "Code"},
	{Field: "Category.Name", Label: "Category"},
	{Field: "Description", Label: "Description"},
	{Field: "CreatedAt", Label: "Created"},
}

// GET /api/subcategories/export/pdf
func ExportSubCategoriesPDFHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var subs []models.SubCategory
		if err := database.DB.Preload("Category").Order("name asc").Find(&subs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load subcategories")
		}
		return report.SendPDF(c, "subcategories", "Subcategories", subCategoryColumns, subs)
	}
}

// GET /api/subcategories/export/excel
func ExportSubCategoriesExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var subs []models.SubCategory
		if err := database.DB.Preload("Category").Order("name asc").Find(&subs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load subcategories")
		}
		return report.SendExcel(c, "subcategories", "Subcategories", subCategoryColumns, subs)
	}
}
