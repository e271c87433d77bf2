package handlers

import (
	"gorm.io/gorm"

	"ventes-app/internal/models"
)

// audit records who touched what. Failures are swallowed: auditing never
// blocks the operation it describes.
func audit(db *gorm.DB, userID uint, entityType string, entityID uint, action string) {
	_ = db.Create(&models.AuditLog{
		UserID:     userID,
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
	}).Error
}
