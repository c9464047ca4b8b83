package auth_test

import (
	"net/http/httptest"
	"testing"

	"github.com/HamzaFerwana/inventory-management-system/internal/auth"
	"github.com/HamzaFerwana/inventory-management-system/internal/config"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"

	"github.com/gofiber/fiber/v2"
)

func protectedApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Use(auth.JWTMiddleware(cfg))
	app.Get("/ping", func(c *fiber.Ctx) error {
		return c.SendString("pong")
	})
	return app
}

func TestJWTMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "0123456789abcdef0123456789abcdef"}
	app := protectedApp(cfg)

	res, err := app.Test(httptest.NewRequest("GET", "/ping", nil))
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("missing header expected 401, got %d", res.StatusCode)
	}

	user := &models.User{ID: 1, Email: "admin@example.com"}
	token, err := auth.GenerateToken(cfg.JWTSecret, user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	req := httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusOK {
		t.Fatalf("valid token expected 200, got %d", res.StatusCode)
	}

	req = httptest.NewRequest("GET", "/ping", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	res, err = app.Test(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	if res.StatusCode != fiber.StatusUnauthorized {
		t.Fatalf("garbage token expected 401, got %d", res.StatusCode)
	}
}
