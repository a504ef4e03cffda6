package services

import (
	"encoding/json"
	"fmt"
	"log"

	"file_bridge_app_go/models"

	"gorm.io/gorm"
)

// AuditContext identifies who performed an admin operation
type AuditContext struct {
	Actor     string
	IPAddress string
	UserAgent string
}

// CLIAuditContext is the context of operations run from the admin tool.
var CLIAuditContext = AuditContext{Actor: "cli"}

// AuditEvent describes one operation to record
type AuditEvent struct {
	Action       models.AuditAction
	ResourceType string
	ResourceID   string
	ResourceName string
	Description  string
	OldValues    interface{}
	NewValues    interface{}
}

// RecordAuditEvent writes an audit log entry. Pass a transaction to make
// the entry part of the audited change.
func RecordAuditEvent(db *gorm.DB, ctx AuditContext, ev AuditEvent) error {
	auditLog := models.AuditLog{
		Actor:        ctx.Actor,
		ResourceType: ev.ResourceType,
		ResourceID:   ev.ResourceID,
		ResourceName: ev.ResourceName,
		Action:       ev.Action,
		Description:  ev.Description,
		OldValues:    marshalAuditValues(ev.OldValues),
		NewValues:    marshalAuditValues(ev.NewValues),
		IPAddress:    ctx.IPAddress,
		UserAgent:    ctx.UserAgent,
	}
	if auditLog.Actor == "" {
		auditLog.Actor = "unknown"
	}

	if err := db.Create(&auditLog).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

func marshalAuditValues(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		log.Printf("[AUDIT] Failed to encode values: %v", err)
		return ""
	}
	return string(b)
}

// GetResourceAuditHistory retrieves the audit history for a specific resource
func GetResourceAuditHistory(db *gorm.DB, resourceType, resourceID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}
