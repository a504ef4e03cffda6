package services

import (
	"testing"

	"file_bridge_app_go/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAuditEvent(t *testing.T) {
	db := setupTestDB(t)

	actx := AuditContext{Actor: "admin", IPAddress: "203.0.113.9", UserAgent: "test-agent"}
	err := RecordAuditEvent(db, actx, AuditEvent{
		Action:       models.AuditActionUpdate,
		ResourceType: models.AuditResourceConsultation,
		ResourceID:   "req-1",
		ResourceName: "Jane Doe",
		Description:  "Status changed from new to closed",
		OldValues:    map[string]string{"status": "new"},
		NewValues:    map[string]string{"status": "closed"},
	})
	require.NoError(t, err)

	logs, err := GetResourceAuditHistory(db, models.AuditResourceConsultation, "req-1")
	require.NoError(t, err)
	require.Len(t, logs, 1)

	entry := logs[0]
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "admin", entry.Actor)
	assert.Equal(t, "203.0.113.9", entry.IPAddress)
	assert.Equal(t, "test-agent", entry.UserAgent)
	assert.JSONEq(t, `{"status":"new"}`, entry.OldValues)
	assert.Equal(t, []models.AuditChange{{Field: "status", Old: "new", New: "closed"}}, entry.Changes())
}

func TestRecordAuditEventDefaultsActor(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, RecordAuditEvent(db, AuditContext{}, AuditEvent{
		Action:       models.AuditActionExport,
		ResourceType: models.AuditResourceConsultation,
	}))

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)
	assert.Equal(t, "unknown", entry.Actor)
	assert.Empty(t, entry.OldValues)
}

func TestAuditLogIsImmutable(t *testing.T) {
	db := setupTestDB(t)
	require.NoError(t, RecordAuditEvent(db, CLIAuditContext, AuditEvent{
		Action:       models.AuditActionExport,
		ResourceType: models.AuditResourceConsultation,
		Description:  "original",
	}))

	var entry models.AuditLog
	require.NoError(t, db.First(&entry).Error)

	assert.Error(t, db.Model(&entry).Update("description", "tampered").Error)
	assert.Error(t, db.Delete(&entry).Error)

	var again models.AuditLog
	require.NoError(t, db.First(&again, "id = ?", entry.ID).Error)
	assert.Equal(t, "original", again.Description)
}
