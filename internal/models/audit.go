package models

import "time"

// Audit logging
type AuditLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `json:"userId"`     // qui a fait la modification
	EntityType string    `json:"entityType"` // ex: "Vente", "User"
	EntityID   uint      `json:"entityId"`
	Action     string    `json:"action"` // create, update, delete, reschedule
	CreatedAt  time.Time `json:"createdAt"`
}
