package catalog_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/HamzaFerwana/inventory-management-system/internal/catalog"
	"github.com/HamzaFerwana/inventory-management-system/internal/database"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Get("/api/categories", catalog.ListCategoriesHandler())
	app.Post("/api/categories", catalog.CreateCategoryHandler())
	app.Delete("/api/categories/:id", catalog.DeleteCategoryHandler())
	app.Delete("/api/subcategories/:id", catalog.DeleteSubCategoryHandler())
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreateCategoryValidation(t *testing.T) {
	app := setupApp(t)

	res, err := app.Test(jsonRequest("POST", "/api/categories", `{"name":"","code":""}`))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "Category name is required.") {
		t.Fatalf("expected name error, got %s", body)
	}

	var count int64
	database.DB.Model(&models.Category{}).Count(&count)
	if count != 0 {
		t.Fatalf("validation failure must not persist, found %d rows", count)
	}
}

func TestCreateCategoryDuplicateCode(t *testing.T) {
	app := setupApp(t)

	res, err := app.Test(jsonRequest("POST", "/api/categories", `{"name":"Electrical","code":"ELEC"}`))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		t.Fatalf("expected 201, got %d", res.StatusCode)
	}

	var logCount int64
	database.DB.Model(&models.AuditLog{}).
		Where("entity_type = ? AND action = ?", "category", models.AuditActionCreate).
		Count(&logCount)
	if logCount != 1 {
		t.Fatalf("create expected one audit log, found %d", logCount)
	}

	res, err = app.Test(jsonRequest("POST", "/api/categories", `{"name":"Electronics","code":"ELEC"}`))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("duplicate code expected 400, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "Category code must be unique.") {
		t.Fatalf("expected uniqueness error, got %s", body)
	}
}

func TestDeleteCategoryCascadesSubCategories(t *testing.T) {
	app := setupApp(t)

	cat := models.Category{Name: "Electrical", Code: "ELEC"}
	if err := database.DB.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	sub := models.SubCategory{Name: "Cables", Code: "CAB", CategoryID: cat.ID}
	if err := database.DB.Create(&sub).Error; err != nil {
		t.Fatalf("seed subcategory: %v", err)
	}

	res, err := app.Test(httptest.NewRequest("DELETE", "/api/categories/1", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusNoContent {
		t.Fatalf("expected 204, got %d", res.StatusCode)
	}

	var subCount int64
	database.DB.Model(&models.SubCategory{}).Count(&subCount)
	if subCount != 0 {
		t.Fatalf("subcategories should be removed with their category, found %d", subCount)
	}
}

func TestDeleteSubCategoryBlockedByProducts(t *testing.T) {
	app := setupApp(t)

	cat := models.Category{Name: "Electrical", Code: "ELEC"}
	if err := database.DB.Create(&cat).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	sub := models.SubCategory{Name: "Cables", Code: "CAB", CategoryID: cat.ID}
	if err := database.DB.Create(&sub).Error; err != nil {
		t.Fatalf("seed subcategory: %v", err)
	}
	product := models.Product{Name: "Coax", SKU: "COAX-1", Unit: "m", SubCategoryID: &sub.ID, Status: models.ProductActive}
	if err := database.DB.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	res, err := app.Test(httptest.NewRequest("DELETE", "/api/subcategories/1", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400 while products reference the subcategory, got %d", res.StatusCode)
	}

	var subCount int64
	database.DB.Model(&models.SubCategory{}).Count(&subCount)
	if subCount != 1 {
		t.Fatal("blocked delete must not remove the subcategory")
	}
}
