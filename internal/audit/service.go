package audit

import (
	"encoding/json"
	"log"

	"github.com/HamzaFerwana/inventory-management-system/internal/auth"
	"github.com/HamzaFerwana/inventory-management-system/internal/database"
	"github.com/HamzaFerwana/inventory-management-system/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LogOptions struct {
	UserID      uint
	UserEmail   string
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

// WriteLog persists one audit row. An absent snapshot marshals to the JSON
// null so the jsonb columns always hold valid JSON.
func WriteLog(opts LogOptions) error {
	beforeStr := "null"
	afterStr := "null"

	if opts.Before != nil {
		if b, err := json.Marshal(opts.Before); err == nil {
			beforeStr = string(b)
		}
	}
	if opts.After != nil {
		if b, err := json.Marshal(opts.After); err == nil {
			afterStr = string(b)
		}
	}

	entry := models.AuditLog{
		UserID:      opts.UserID,
		UserEmail:   opts.UserEmail,
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  beforeStr,
		AfterData:   afterStr,
	}

	return database.DB.Create(&entry).Error
}

// Record writes a log for the authenticated request. A failed write is
// logged and swallowed; the mutation it describes has already committed.
func Record(c *fiber.Ctx, entityType string, entityID uint, action models.AuditAction, description string, before, after any) {
	userID, _ := c.Locals(auth.CtxUserIDKey).(uint)
	email, _ := c.Locals(auth.CtxEmailKey).(string)

	if err := WriteLog(LogOptions{
		UserID:      userID,
		UserEmail:   email,
		EntityType:  entityType,
		EntityID:    entityID,
		Action:      action,
		Description: description,
		Before:      before,
		After:       after,
	}); err != nil {
		log.Printf("audit log not written: %v", err)
	}
}
