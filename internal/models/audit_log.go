package models

import "time"

type AuditLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID string `gorm:"size:36;index" json:"user_id"`
	User   *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Entity   string `gorm:"size:50;not null;index:idx_audit_entity" json:"entity"` // "user", "customer", "template", "inspection"
	EntityID string `gorm:"size:64;index:idx_audit_entity" json:"entity_id"`
	Action   string `gorm:"size:50;not null" json:"action"` // "create", "status_change", ...
	Details  string `gorm:"type:text" json:"details"`
}

const (
	EntityUser       = "user"
	EntityCustomer   = "customer"
	EntityTemplate   = "template"
	EntityInspection = "inspection"
)
