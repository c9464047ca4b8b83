package main

import (
	"log"
	"strings"

	"github.com/HamzaFerwana/inventory-management-system/internal/audit"
	"github.com/HamzaFerwana/inventory-management-system/internal/auth"
	"github.com/HamzaFerwana/inventory-management-system/internal/catalog"
	"github.com/HamzaFerwana/inventory-management-system/internal/config"
	"github.com/HamzaFerwana/inventory-management-system/internal/customer"
	"github.com/HamzaFerwana/inventory-management-system/internal/database"
	"github.com/HamzaFerwana/inventory-management-system/internal/expense"
	"github.com/HamzaFerwana/inventory-management-system/internal/purchase"
	"github.com/HamzaFerwana/inventory-management-system/internal/quotation"
	"github.com/HamzaFerwana/inventory-management-system/internal/supplier"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Unexpected error:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unexpected server error",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/register", auth.RegisterHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Post("/auth/logout", auth.LogoutHandler())
	protected.Get("/auth/me", auth.MeHandler())

	// Categories
	protected.Get("/categories", catalog.ListCategoriesHandler())
	protected.Post("/categories", catalog.CreateCategoryHandler())
	protected.Get("/categories/export/pdf", catalog.ExportCategoriesPDFHandler())
	protected.Get("/categories/export/excel", catalog.ExportCategoriesExcelHandler())
	protected.Get("/categories/:id", catalog.GetCategoryHandler())
	protected.Put("/categories/:id", catalog.UpdateCategoryHandler())
	protected.Delete("/categories/:id", catalog.DeleteCategoryHandler())

	// Subcategories
	protected.Get("/subcategories", catalog.ListSubCategoriesHandler())
	protected.Post("/subcategories", catalog.CreateSubCategoryHandler())
	protected.Get("/subcategories/export/pdf", catalog.ExportSubCategoriesPDFHandler())
	protected.Get("/subcategories/export/excel", catalog.ExportSubCategoriesExcelHandler())
	protected.Get("/subcategories/:id", catalog.GetSubCategoryHandler())
	protected.Put("/subcategories/:id", catalog.UpdateSubCategoryHandler())
	protected.Delete("/subcategories/:id", catalog.DeleteSubCategoryHandler())

	// Products
	protected.Get("/products", catalog.ListProductsHandler())
	protected.Post("/products", catalog.CreateProductHandler())
	protected.Get("/products/export/pdf", catalog.ExportProductsPDFHandler())
	protected.Get("/products/export/excel", catalog.ExportProductsExcelHandler())
	protected.Get("/products/:id", catalog.GetProductHandler())
	protected.Put("/products/:id", catalog.UpdateProductHandler())
	protected.Delete("/products/:id", catalog.DeleteProductHandler())

	// Customers
	protected.Get("/customers", customer.ListHandler())
	protected.Post("/customers", customer.CreateHandler())
	protected.Get("/customers/export/pdf", customer.ExportPDFHandler())
	protected.Get("/customers/export/excel", customer.ExportExcelHandler())
	protected.Get("/customers/:id", customer.GetHandler())
	protected.Put("/customers/:id", customer.UpdateHandler())
	protected.Delete("/customers/:id", customer.DeleteHandler())

	// Suppliers
	protected.Get("/suppliers", supplier.ListHandler())
	protected.Post("/suppliers", supplier.CreateHandler())
	protected.Get("/suppliers/export/pdf", supplier.ExportPDFHandler())
	protected.Get("/suppliers/export/excel", supplier.ExportExcelHandler())
	protected.Get("/suppliers/:id", supplier.GetHandler())
	protected.Put("/suppliers/:id", supplier.UpdateHandler())
	protected.Delete("/suppliers/:id", supplier.DeleteHandler())

	// Expense categories
	protected.Get("/expense-categories", expense.ListCategoriesHandler())
	protected.Post("/expense-categories", expense.CreateCategoryHandler())
	protected.Get("/expense-categories/:id", expense.GetCategoryHandler())
	protected.Put("/expense-categories/:id", expense.UpdateCategoryHandler())
	protected.Delete("/expense-categories/:id", expense.DeleteCategoryHandler())

	// Expenses
	protected.Get("/expenses", expense.ListHandler())
	protected.Post("/expenses", expense.CreateHandler())
	protected.Get("/expenses/export/pdf", expense.ExportPDFHandler())
	protected.Get("/expenses/export/excel", expense.ExportExcelHandler())
	protected.Get("/expenses/:id", expense.GetHandler())
	protected.Put("/expenses/:id", expense.UpdateHandler())
	protected.Delete("/expenses/:id", expense.DeleteHandler())

	// Quotations
	protected.Get("/quotations", quotation.ListHandler())
	protected.Post("/quotations", quotation.CreateHandler())
	protected.Get("/quotations/export/pdf", quotation.ExportPDFHandler())
	protected.Get("/quotations/export/excel", quotation.ExportExcelHandler())
	protected.Get("/quotations/:id", quotation.GetHandler())
	protected.Put("/quotations/:id", quotation.UpdateHandler())
	protected.Delete("/quotations/:id", quotation.DeleteHandler())

	// Purchases
	protected.Get("/purchases", purchase.ListHandler())
	protected.Post("/purchases", purchase.CreateHandler())
	protected.Get("/purchases/export/pdf", purchase.ExportPDFHandler())
	protected.Get("/purchases/export/excel", purchase.ExportExcelHandler())
	protected.Get("/purchases/:id", purchase.GetHandler())
	protected.Put("/purchases/:id", purchase.UpdateHandler())
	protected.Delete("/purchases/:id", purchase.DeleteHandler())
	protected.Post("/purchases/:id/adjust-quantity", purchase.AdjustQuantityHandler())

	// Audit trail
	protected.Get("/audit-logs", audit.ListLogsHandler())

	log.Println("Server listening on port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
