package expense

import (
	"strings"
	"time"

	"github.com/HamzaFerwana/inventory-management-system/internal/audit"
	"github.com/HamzaFerwana/inventory-management-system/internal/database"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"
	"github.com/HamzaFerwana/inventory-management-system/internal/report"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type ExpenseCategoryRequest struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

type ExpenseCategoryResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Code        string `json:"code,omitempty"`
	Description string `json:"description"`
}

type ExpenseRequest struct {
	CategoryID  uint            `json:"category_id"`
	Date        string          `json:"date"` // "2025-12-09"
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type ExpenseResponse struct {
	ID           uint            `json:"id"`
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	Date         string          `json:"date"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
}

func categoryResponse(m *models.ExpenseCategory) ExpenseCategoryResponse {
	res := ExpenseCategoryResponse{
		ID:          m.ID,
		Name:        m.Name,
		Description: m.Description,
	}
	if m.Code != nil {
		res.Code = *m.Code
	}
	return res
}

func expenseResponse(m *models.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:           m.ID,
		CategoryID:   m.CategoryID,
		CategoryName: m.Category.Name,
		Date:         m.Date.Format("2006-01-02"),
		Amount:       m.Amount,
		Description:  m.Description,
	}
}

func validateCategory(body *ExpenseCategoryRequest, excludeID uint) []string {
	var errs []string

	body.Name = strings.TrimSpace(body.Name)
	body.Code = strings.TrimSpace(body.Code)
	body.Description = strings.TrimSpace(body.Description)

	if body.Name == "" {
		errs = append(errs, "Expense category name is required.")
	}
	// Code is optional but unique when present.
	if body.Code != "" {
		q := database.DB.Model(&models.ExpenseCategory{}).Where("code = ?", body.Code)
		if excludeID != 0 {
			q = q.Where("id <> ?", excludeID)
		}
		var count int64
		q.Count(&count)
		if count > 0 {
			errs = append(errs, "Expense category code must be unique.")
		}
	}
	return errs
}

// GET /api/expense-categories
func ListCategoriesHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.ExpenseCategory
		if err := database.DB.Order("name asc").Find(&categories).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expense categories")
		}

		res := make([]ExpenseCategoryResponse, 0, len(categories))
		for i := range categories {
			res = append(res, categoryResponse(&categories[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/expense-categories
func CreateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ExpenseCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := validateCategory(&body, 0); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		m := models.ExpenseCategory{Name: body.Name, Description: body.Description}
		if body.Code != "" {
			m.Code = &body.Code
		}
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create expense category")
		}
		res := categoryResponse(&m)
		audit.Record(c, "expense_category", m.ID, models.AuditActionCreate, "Expense category "+m.Name+" created", nil, res)
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GET /api/expense-categories/:id
func GetCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.ExpenseCategory
		if err := database.DB.First(&m, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense category not found")
		}
		return c.JSON(categoryResponse(&m))
	}
}

// PUT /api/expense-categories/:id
func UpdateCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.ExpenseCategory
		if err := database.DB.First(&m, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense category not found")
		}

		var body ExpenseCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		if errs := validateCategory(&body, m.ID); len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		before := categoryResponse(&m)
		m.Name = body.Name
		m.Description = body.Description
		if body.Code != "" {
			m.Code = &body.Code
		} else {
			m.Code = nil
		}
		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update expense category")
		}
		res := categoryResponse(&m)
		audit.Record(c, "expense_category", m.ID, models.AuditActionUpdate, "Expense category "+m.Name+" updated", before, res)
		return c.JSON(res)
	}
}

// DELETE /api/expense-categories/:id
func DeleteCategoryHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.ExpenseCategory
		if err := database.DB.First(&m, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense category not found")
		}

		var expenseCount int64
		database.DB.Model(&models.Expense{}).Where("category_id = ?", m.ID).Count(&expenseCount)
		if expenseCount > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Expense category still has expenses and cannot be deleted")
		}

		if err := database.DB.Delete(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete expense category")
		}
		audit.Record(c, "expense_category", m.ID, models.AuditActionDelete, "Expense category "+m.Name+" deleted",
			categoryResponse(&m), nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func validateExpense(body *ExpenseRequest) ([]string, time.Time) {
	var errs []string
	var date time.Time

	body.Description = strings.TrimSpace(body.Description)

	if body.CategoryID == 0 {
		errs = append(errs, "Expense category is required.")
	} else {
		var count int64
		database.DB.Model(&models.ExpenseCategory{}).Where("id = ?", body.CategoryID).Count(&count)
		if count == 0 {
			errs = append(errs, "Expense category does not exist.")
		}
	}
	if body.Amount.IsNegative() || body.Amount.IsZero() {
		errs = append(errs, "Amount must be greater than zero.")
	}

	var err error
	date, err = time.Parse("2006-01-02", body.Date)
	if err != nil {
		errs = append(errs, "Date must be in 'YYYY-MM-DD' format.")
	}
	return errs, date
}

// GET /api/expenses
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var expenses []models.Expense
		if err := database.DB.Preload("Category").Order("date desc").Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list expenses")
		}

		res := make([]ExpenseResponse, 0, len(expenses))
		for i := range expenses {
			res = append(res, expenseResponse(&expenses[i]))
		}
		return c.JSON(res)
	}
}

// POST /api/expenses
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		errs, date := validateExpense(&body)
		if len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		m := models.Expense{
			CategoryID:  body.CategoryID,
			Date:        date,
			Amount:      body.Amount.Round(2),
			Description: body.Description,
		}
		if err := database.DB.Create(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create expense")
		}
		database.DB.Preload("Category").First(&m, m.ID)
		res := expenseResponse(&m)
		audit.Record(c, "expense", m.ID, models.AuditActionCreate,
			"Expense of "+m.Amount.StringFixed(2)+" recorded", nil, res)
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// GET /api/expenses/:id
func GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.Expense
		if err := database.DB.Preload("Category").First(&m, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}
		return c.JSON(expenseResponse(&m))
	}
}

// PUT /api/expenses/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.Expense
		if err := database.DB.First(&m, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}

		var body ExpenseRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		errs, date := validateExpense(&body)
		if len(errs) > 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"errors": errs})
		}

		before := expenseResponse(&m)
		m.CategoryID = body.CategoryID
		m.Date = date
		m.Amount = body.Amount.Round(2)
		m.Description = body.Description

		if err := database.DB.Save(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not update expense")
		}
		database.DB.Preload("Category").First(&m, m.ID)
		res := expenseResponse(&m)
		audit.Record(c, "expense", m.ID, models.AuditActionUpdate, "Expense updated", before, res)
		return c.JSON(res)
	}
}

// DELETE /api/expenses/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var m models.Expense
		if err := database.DB.First(&m, "id = ?", c.Params("id")).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Expense not found")
		}

		if err := database.DB.Delete(&m).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not delete expense")
		}
		audit.Record(c, "expense", m.ID, models.AuditActionDelete, "Expense deleted", expenseResponse(&m), nil)
		return c.SendStatus(fiber.StatusNoContent)
	}
}

var exportColumns = []report.Column{
	{Field: "ID", Label: "ID"},
	{Field: "Category.Name", Label: "Category"},
	{Field: "Date", Label: "Date"},
	{Field: "Amount", Label: "Amount"},
	{Field: "Description", Label: "Description"},
}

// GET /api/expenses/export/pdf
func ExportPDFHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var expenses []models.Expense
		if err := database.DB.Preload("Category").Order("date desc").Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load expenses")
		}
		return report.SendPDF(c, "expenses", "Expenses", exportColumns, expenses)
	}
}

// GET /api/expenses/export/excel
func ExportExcelHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var expenses []models.Expense
		if err := database.DB.Preload("Category").Order("date desc").Find(&expenses).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load expenses")
		}
		return report.SendExcel(c, "expenses", "Expenses", exportColumns, expenses)
	}
}
