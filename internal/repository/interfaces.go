package repository

import (
	"context"
	"time"

	"royalcert/internal/models"
)

type UserFilter struct {
	Role models.UserRole
}

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, f UserFilter) ([]models.User, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type CustomerRepository interface {
	Create(ctx context.Context, c *models.Customer) error
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	// List orders by company name; query is a case-insensitive substring.
	List(ctx context.Context, query string) ([]models.Customer, error)
	Update(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type TemplateFilter struct {
	EquipmentType string
	TemplateType  models.TemplateType
	Active        *bool
}

type TemplateRepository interface {
	Create(ctx context.Context, t *models.EquipmentTemplate) error
	GetByID(ctx context.Context, id string) (*models.EquipmentTemplate, error)
	List(ctx context.Context, f TemplateFilter) ([]models.EquipmentTemplate, error)
	// FindActiveForm returns the newest active FORM template for the
	// equipment type, compared case-insensitively.
	FindActiveForm(ctx context.Context, equipmentType string) (*models.EquipmentTemplate, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Update(ctx context.Context, t *models.EquipmentTemplate) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type InspectionFilter struct {
	Statuses    []models.InspectionStatus
	CustomerID  string
	InspectorID string
	// SerialNumber matches equipment_info.serial_number exactly.
	SerialNumber  string
	ApprovedSince *time.Time
	// BySubmission orders oldest submission first instead of newest planned
	// date first.
	BySubmission bool
}

type InspectionRepository interface {
	Create(ctx context.Context, i *models.Inspection) error
	GetByID(ctx context.Context, id string) (*models.Inspection, error)
	List(ctx context.Context, f InspectionFilter) ([]models.Inspection, error)
	Count(ctx context.Context, f InspectionFilter) (int64, error)
	// Modify loads the inspection under a row lock, applies fn and saves the
	// result in the same transaction. Nothing is saved when fn fails.
	Modify(ctx context.Context, id string, fn func(*models.Inspection) error) (*models.Inspection, error)
	Delete(ctx context.Context, id string) error
}

type AuditFilter struct {
	Entity   string
	EntityID string
	Limit    int
	// OldestFirst flips the default newest-first order.
	OldestFirst bool
}

type AuditRepository interface {
	Create(ctx context.Context, l *models.AuditLog) error
	List(ctx context.Context, f AuditFilter) ([]models.AuditLog, error)
}
