package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Equipment is one piece of customer equipment subject to periodic inspection.
type Equipment struct {
	TemplateID        string `json:"template_id,omitempty"`
	EquipmentType     string `json:"equipment_type" validate:"required"`
	SerialNumber      string `json:"serial_number"`
	Capacity          string `json:"capacity"`
	ManufacturingYear string `json:"manufacturing_year"`
	Manufacturer      string `json:"manufacturer,omitempty"`
	Model             string `json:"model,omitempty"`
}

type Customer struct {
	ID            string      `gorm:"type:uuid;primaryKey" json:"id"`
	CompanyName   string      `gorm:"size:255;not null;index" json:"company_name"`
	ContactPerson string      `gorm:"size:255;not null" json:"contact_person"`
	Phone         string      `gorm:"size:50;not null" json:"phone"`
	Email         string      `gorm:"size:255;not null" json:"email"`
	Address       string      `gorm:"type:text;not null" json:"address"`
	Equipments    []Equipment `gorm:"serializer:json;type:jsonb;not null" json:"equipments"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Equipments == nil {
		c.Equipments = []Equipment{}
	}
	return nil
}
