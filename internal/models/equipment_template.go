package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TemplateType string

const (
	TemplateForm   TemplateType = "FORM"
	TemplateReport TemplateType = "REPORT"
)

const InputDropdown = "dropdown"

// TemplateItem is one checklist line. ID is unique across the whole template
// and is the key under which results are stored on an inspection.
type TemplateItem struct {
	ID         int    `json:"id"`
	Text       string `json:"text" validate:"required"`
	InputType  string `json:"input_type"`
	HasComment bool   `json:"has_comment"`
	Required   bool   `json:"required"`
}

type TemplateCategory struct {
	Code  string         `json:"code" validate:"required"`
	Name  string         `json:"name"`
	Items []TemplateItem `json:"items" validate:"dive"`
}

type EquipmentTemplate struct {
	ID            string             `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string             `gorm:"size:255;not null" json:"name"`
	EquipmentType string             `gorm:"size:100;not null;index" json:"equipment_type"`
	TemplateType  TemplateType       `gorm:"type:varchar(10);not null" json:"template_type"`
	Description   string             `gorm:"type:text" json:"description"`
	Categories    []TemplateCategory `gorm:"serializer:json;type:jsonb;not null" json:"categories"`
	IsActive      bool               `gorm:"not null" json:"is_active"`
	CreatedBy     string             `gorm:"size:36" json:"created_by,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func (t *EquipmentTemplate) BeforeCreate(*gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Categories == nil {
		t.Categories = []TemplateCategory{}
	}
	return nil
}

// ItemCount returns the number of checklist items across all categories.
func (t *EquipmentTemplate) ItemCount() int {
	n := 0
	for _, c := range t.Categories {
		n += len(c.Items)
	}
	return n
}
