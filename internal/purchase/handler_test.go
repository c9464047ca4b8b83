package purchase_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/HamzaFerwana/inventory-management-system/internal/database"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"
	"github.com/HamzaFerwana/inventory-management-system/internal/purchase"

	"github.com/gofiber/fiber/v2"
)

func setupApp(t *testing.T) *fiber.App {
	t.Helper()
	database.DB = newTestDB(t)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Post("/api/purchases", purchase.CreateHandler())
	app.Post("/api/purchases/:id/adjust-quantity", purchase.AdjustQuantityHandler())
	return app
}

func jsonRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCreatePurchaseComputesTotals(t *testing.T) {
	app := setupApp(t)

	res, err := app.Test(jsonRequest("POST", "/api/purchases",
		`{"quantity":3,"unit_price":"10.00","discount_pct":"10","tax_pct":"5","paid_amount":"10.00"}`))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusCreated {
		body, _ := io.ReadAll(res.Body)
		t.Fatalf("expected 201, got %d: %s", res.StatusCode, body)
	}

	var created purchase.PurchaseResponse
	if err := json.NewDecoder(res.Body).Decode(&created); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if created.DiscountAmount.StringFixed(2) != "3.00" {
		t.Fatalf("discount expected 3.00, got %s", created.DiscountAmount)
	}
	if created.TaxAmount.StringFixed(2) != "1.50" {
		t.Fatalf("tax expected 1.50, got %s", created.TaxAmount)
	}
	if created.LineTotal.StringFixed(2) != "28.50" {
		t.Fatalf("total expected 28.50, got %s", created.LineTotal)
	}
	if created.PaymentStatus != string(models.PaymentPartial) {
		t.Fatalf("payment status expected partial, got %s", created.PaymentStatus)
	}
	if created.StockApplied {
		t.Fatal("new purchase must start with stock not applied")
	}
}

func TestCreatePurchaseRejectsOverpayment(t *testing.T) {
	app := setupApp(t)

	res, err := app.Test(jsonRequest("POST", "/api/purchases",
		`{"quantity":1,"unit_price":"10.00","paid_amount":"11.00"}`))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
	body, _ := io.ReadAll(res.Body)
	if !strings.Contains(string(body), "Paid amount must not exceed the line total.") {
		t.Fatalf("expected overpayment error, got %s", body)
	}

	var count int64
	database.DB.Model(&models.Purchase{}).Count(&count)
	if count != 0 {
		t.Fatal("rejected purchase must not be persisted")
	}
}

func TestCreatePurchaseRejectsOutOfRangePercent(t *testing.T) {
	app := setupApp(t)

	res, err := app.Test(jsonRequest("POST", "/api/purchases",
		`{"quantity":1,"unit_price":"10.00","discount_pct":"101"}`))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("expected 400, got %d", res.StatusCode)
	}
}

func TestAdjustQuantityEndpoint(t *testing.T) {
	app := setupApp(t)
	product, _ := seedPurchase(t, database.DB, 5, 3, false)

	res, err := app.Test(httptest.NewRequest("POST", "/api/purchases/1/adjust-quantity", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("expected 200, got %d", res.StatusCode)
	}
	var out struct {
		AppliedNow bool `json:"applied_now"`
	}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !out.AppliedNow {
		t.Fatal("first adjust expected applied_now true")
	}

	var got models.Product
	if err := database.DB.First(&got, product.ID).Error; err != nil {
		t.Fatalf("reload product: %v", err)
	}
	if got.Quantity != 8 {
		t.Fatalf("expected quantity 8, got %d", got.Quantity)
	}
}

func TestAdjustQuantityErrors(t *testing.T) {
	app := setupApp(t)

	res, err := app.Test(httptest.NewRequest("POST", "/api/purchases/42/adjust-quantity", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusNotFound {
		t.Fatalf("missing purchase expected 404, got %d", res.StatusCode)
	}

	orphan := &models.Purchase{Quantity: 2, Status: models.PurchasePending}
	if err := database.DB.Create(orphan).Error; err != nil {
		t.Fatalf("create purchase: %v", err)
	}
	res, err = app.Test(httptest.NewRequest("POST", "/api/purchases/1/adjust-quantity", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("purchase without product expected 400, got %d", res.StatusCode)
	}
}
