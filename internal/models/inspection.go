package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InspectionStatus string

const (
	StatusPending       InspectionStatus = "beklemede"
	StatusInProgress    InspectionStatus = "devam_ediyor"
	StatusReportWritten InspectionStatus = "rapor_yazildi"
	StatusApproved      InspectionStatus = "onaylandi"
	StatusRejected      InspectionStatus = "reddedildi"
)

func (s InspectionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusReportWritten, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// OpenStatuses lists every status for which Open is true.
var OpenStatuses = []InspectionStatus{StatusPending, StatusInProgress, StatusReportWritten}

// Open reports whether the inspection is still part of the active workflow.
func (s InspectionStatus) Open() bool {
	return s != StatusApproved && s != StatusRejected
}

// Checklist results.
const (
	ResultSuitable      = "U"
	ResultUnsuitable    = "UD"
	ResultNotApplicable = "U.Y"
)

type EquipmentInfo struct {
	TemplateID        string `json:"template_id,omitempty"`
	EquipmentType     string `json:"equipment_type"`
	SerialNumber      string `json:"serial_number"`
	Capacity          string `json:"capacity"`
	ManufacturingYear string `json:"manufacturing_year"`
	Manufacturer      string `json:"manufacturer,omitempty"`
	Model             string `json:"model,omitempty"`
	InspectionType    string `json:"inspection_type,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// ItemResult is the captured answer for one checklist item.
type ItemResult struct {
	Result  string `json:"result"`
	Comment string `json:"comment,omitempty"`
}

// UnmarshalJSON accepts "value" as an alias of "result".
func (r *ItemResult) UnmarshalJSON(data []byte) error {
	var raw struct {
		Result  string `json:"result"`
		Value   string `json:"value"`
		Comment string `json:"comment"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	r.Result = raw.Result
	if r.Result == "" {
		r.Result = raw.Value
	}
	r.Comment = raw.Comment
	return nil
}

type Inspection struct {
	ID            string           `gorm:"type:uuid;primaryKey" json:"id"`
	CustomerID    string           `gorm:"type:uuid;not null;index" json:"customer_id"`
	InspectorID   string           `gorm:"type:uuid;not null;index" json:"inspector_id"`
	EquipmentInfo EquipmentInfo    `gorm:"serializer:json;type:jsonb;not null" json:"equipment_info"`
	PlannedDate   time.Time        `gorm:"not null" json:"planned_date"`
	Status        InspectionStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedBy     string           `gorm:"size:36" json:"created_by"`

	FormData             map[string]ItemResult `gorm:"serializer:json;type:jsonb;not null" json:"form_data"`
	GeneralInfo          map[string]any        `gorm:"serializer:json;type:jsonb;not null" json:"general_info"`
	CompletionPercentage int                   `gorm:"not null" json:"completion_percentage"`
	SubmittedAt          *time.Time            `json:"submitted_at,omitempty"`

	ApprovalNotes string     `gorm:"type:text" json:"approval_notes,omitempty"`
	ApprovedBy    string     `gorm:"size:36" json:"approved_by,omitempty"`
	ApprovedAt    *time.Time `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (i *Inspection) BeforeCreate(*gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = StatusPending
	}
	if i.FormData == nil {
		i.FormData = map[string]ItemResult{}
	}
	if i.GeneralInfo == nil {
		i.GeneralInfo = map[string]any{}
	}
	return nil
}
