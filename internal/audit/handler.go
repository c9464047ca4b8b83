package audit

import (
	"encoding/json"

	"github.com/HamzaFerwana/inventory-management-system/internal/database"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AuditLogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserID      uint               `json:"user_id"`
	UserEmail   string             `json:"user_email"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
	Before      json.RawMessage    `json:"before"`
	After       json.RawMessage    `json:"after"`
}

func toResponse(l *models.AuditLog) AuditLogResponse {
	return AuditLogResponse{
		ID:          l.ID,
		CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
		UserID:      l.UserID,
		UserEmail:   l.UserEmail,
		EntityType:  l.EntityType,
		EntityID:    l.EntityID,
		Action:      l.Action,
		Description: l.Description,
		Before:      json.RawMessage(l.BeforeData),
		After:       json.RawMessage(l.AfterData),
	}
}

// GET /api/audit-logs?entity_type=purchase&entity_id=1&user_id=2&action=create
func ListLogsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.AuditLog{})

		if v := c.Query("entity_type"); v != "" {
			dbq = dbq.Where("entity_type = ?", v)
		}
		if v := c.QueryInt("entity_id"); v > 0 {
			dbq = dbq.Where("entity_id = ?", v)
		}
		if v := c.QueryInt("user_id"); v > 0 {
			dbq = dbq.Where("user_id = ?", v)
		}
		if v := c.Query("action"); v != "" {
			dbq = dbq.Where("action = ?", v)
		}

		var logs []models.AuditLog
		if err := dbq.Order("created_at desc").Find(&logs).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not list audit logs")
		}

		res := make([]AuditLogResponse, 0, len(logs))
		for i := range logs {
			res = append(res, toResponse(&logs[i]))
		}
		return c.JSON(res)
	}
}
