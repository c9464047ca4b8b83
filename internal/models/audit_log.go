package models

import "time"

type AuditAction string

const (
	AuditActionCreate  AuditAction = "create"
	AuditActionUpdate  AuditAction = "update"
	AuditActionDelete  AuditAction = "delete"
	AuditActionApply   AuditAction = "apply"
	AuditActionReverse AuditAction = "reverse"
)

// AuditLog is one row per mutating operation. BeforeData and AfterData hold
// JSON snapshots of the entity around the change; an absent side is the JSON
// null. UserEmail is denormalized so the trail survives user deletion.
type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	UserID    uint   `gorm:"index"`
	UserEmail string `gorm:"size:255"`

	EntityType string `gorm:"size:50;index"`
	EntityID   uint   `gorm:"index"`

	Action      AuditAction `gorm:"size:20"`
	Description string      `gorm:"size:255"`

	BeforeData string `gorm:"type:jsonb"`
	AfterData  string `gorm:"type:jsonb"`
}
