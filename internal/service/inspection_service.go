package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"royalcert/internal/inspectionform"
	"royalcert/internal/models"
	"royalcert/internal/repository"
)

type CreateInspectionInput struct {
	CustomerID    string               `json:"customer_id" validate:"required"`
	InspectorID   string               `json:"inspector_id" validate:"required"`
	EquipmentInfo models.EquipmentInfo `json:"equipment_info"`
	PlannedDate   string               `json:"planned_date" validate:"required"`
}

// UpdateInspectionInput is a partial update; nil fields are left alone.
type UpdateInspectionInput struct {
	Status        *models.InspectionStatus `json:"status,omitempty"`
	InspectorID   *string                  `json:"inspector_id,omitempty"`
	PlannedDate   *string                  `json:"planned_date,omitempty"`
	EquipmentInfo *models.EquipmentInfo    `json:"equipment_info,omitempty"`
}

type InspectionListFilter struct {
	Status     models.InspectionStatus
	CustomerID string
}

type ApprovalInput struct {
	Action string `json:"action"`
	Notes  string `json:"notes"`
}

type FormInput struct {
	FormData    map[string]models.ItemResult `json:"form_data"`
	GeneralInfo map[string]any               `json:"general_info"`
	IsDraft     bool                         `json:"is_draft"`
}

type InspectionService interface {
	Create(ctx context.Context, actor *models.User, in CreateInspectionInput) (*models.Inspection, error)
	List(ctx context.Context, actor *models.User, f InspectionListFilter) ([]models.Inspection, error)
	PendingApproval(ctx context.Context) ([]models.Inspection, error)
	Get(ctx context.Context, actor *models.User, id string) (*models.Inspection, error)
	Update(ctx context.Context, actor *models.User, id string, in UpdateInspectionInput) (*models.Inspection, error)
	Delete(ctx context.Context, actor *models.User, id string) error
	History(ctx context.Context, actor *models.User, id string) ([]models.AuditLog, error)
	Approve(ctx context.Context, actor *models.User, id string, in ApprovalInput) (*models.Inspection, error)
	Form(ctx context.Context, actor *models.User, id string) (*inspectionform.View, error)
	SaveForm(ctx context.Context, actor *models.User, id string, in FormInput) (*models.Inspection, error)
}

type inspectionService struct {
	inspections repository.InspectionRepository
	customers   repository.CustomerRepository
	users       repository.UserRepository
	templates   repository.TemplateRepository
	audit       AuditService
	now         func() time.Time
}

func NewInspectionService(
	inspections repository.InspectionRepository,
	customers repository.CustomerRepository,
	users repository.UserRepository,
	templates repository.TemplateRepository,
	audit AuditService,
) InspectionService {
	return &inspectionService{
		inspections: inspections,
		customers:   customers,
		users:       users,
		templates:   templates,
		audit:       audit,
		now:         time.Now,
	}
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, &ValidationError{
		Message: "Geçersiz tarih",
		Details: map[string]any{"fields": map[string]any{field: "tarih YYYY-AA-GG veya RFC3339 biçiminde olmalı"}},
	}
}

func (s *inspectionService) checkInspector(ctx context.Context, id string) error {
	u, err := s.users.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrInspectorNotFound
	}
	if err != nil {
		return err
	}
	if !u.IsActive || u.Role != models.RoleInspector {
		return ErrInspectorNotEligible
	}
	return nil
}

// checkDuplicate refuses a second open inspection of the same serial for the
// same customer. skipID excludes the inspection being edited.
func (s *inspectionService) checkDuplicate(ctx context.Context, customerID, serial, skipID string) error {
	serial = strings.TrimSpace(serial)
	if serial == "" {
		return nil
	}
	open, err := s.inspections.List(ctx, repository.InspectionFilter{
		CustomerID:   customerID,
		SerialNumber: serial,
		Statuses:     models.OpenStatuses,
	})
	if err != nil {
		return err
	}
	for _, i := range open {
		if i.ID != skipID {
			return ErrDuplicateOpenInspection
		}
	}
	return nil
}

func (s *inspectionService) Create(ctx context.Context, actor *models.User, in CreateInspectionInput) (*models.Inspection, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	planned, err := parseDate("planned_date", in.PlannedDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.customers.GetByID(ctx, in.CustomerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, err
	}
	if err := s.checkInspector(ctx, in.InspectorID); err != nil {
		return nil, err
	}

	in.EquipmentInfo.SerialNumber = strings.TrimSpace(in.EquipmentInfo.SerialNumber)
	in.EquipmentInfo.EquipmentType = strings.TrimSpace(in.EquipmentInfo.EquipmentType)
	if err := s.checkDuplicate(ctx, in.CustomerID, in.EquipmentInfo.SerialNumber, ""); err != nil {
		return nil, err
	}

	insp := &models.Inspection{
		CustomerID:    in.CustomerID,
		InspectorID:   in.InspectorID,
		EquipmentInfo: in.EquipmentInfo,
		PlannedDate:   planned,
		Status:        models.StatusPending,
		CreatedBy:     actor.ID,
	}
	if err := s.inspections.Create(ctx, insp); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor.ID, models.EntityInspection, insp.ID, "create",
		fmt.Sprintf("Denetim planlandı: %s %s", insp.EquipmentInfo.EquipmentType, insp.EquipmentInfo.SerialNumber))
	return insp, nil
}

func (s *inspectionService) List(ctx context.Context, actor *models.User, f InspectionListFilter) ([]models.Inspection, error) {
	filter := repository.InspectionFilter{CustomerID: f.CustomerID}
	if f.Status != "" {
		if !f.Status.Valid() {
			return nil, ErrInvalidStatus
		}
		filter.Statuses = []models.InspectionStatus{f.Status}
	}
	if actor.Role == models.RoleInspector {
		filter.InspectorID = actor.ID
	}
	return s.inspections.List(ctx, filter)
}

func (s *inspectionService) PendingApproval(ctx context.Context) ([]models.Inspection, error) {
	return s.inspections.List(ctx, repository.InspectionFilter{
		Statuses:     []models.InspectionStatus{models.StatusReportWritten},
		BySubmission: true,
	})
}

// visible hides other inspectors' work from an inspector.
func visible(actor *models.User, insp *models.Inspection) bool {
	return actor.Role != models.RoleInspector || insp.InspectorID == actor.ID
}

func (s *inspectionService) Get(ctx context.Context, actor *models.User, id string) (*models.Inspection, error) {
	insp, err := s.inspections.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInspectionNotFound
	}
	if err != nil {
		return nil, err
	}
	if !visible(actor, insp) {
		return nil, ErrInspectionNotFound
	}
	return insp, nil
}

func canPlan(role models.UserRole) bool {
	return role == models.RoleAdmin || role == models.RolePlanner
}

func clearApproval(insp *models.Inspection) {
	insp.ApprovalNotes = ""
	insp.ApprovedBy = ""
	insp.ApprovedAt = nil
}

func (s *inspectionService) Update(ctx context.Context, actor *models.User, id string, in UpdateInspectionInput) (*models.Inspection, error) {
	current, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	planning := in.InspectorID != nil || in.PlannedDate != nil || in.EquipmentInfo != nil
	if planning && !canPlan(actor.Role) {
		return nil, ErrForbidden
	}
	if in.Status != nil && !in.Status.Valid() {
		return nil, ErrInvalidStatus
	}

	var planned time.Time
	if in.PlannedDate != nil {
		if planned, err = parseDate("planned_date", *in.PlannedDate); err != nil {
			return nil, err
		}
	}
	if in.InspectorID != nil && *in.InspectorID != current.InspectorID {
		if err := s.checkInspector(ctx, *in.InspectorID); err != nil {
			return nil, err
		}
	}
	if in.EquipmentInfo != nil {
		in.EquipmentInfo.SerialNumber = strings.TrimSpace(in.EquipmentInfo.SerialNumber)
		in.EquipmentInfo.EquipmentType = strings.TrimSpace(in.EquipmentInfo.EquipmentType)
		if err := s.checkDuplicate(ctx, current.CustomerID, in.EquipmentInfo.SerialNumber, current.ID); err != nil {
			return nil, err
		}
	} else if in.Status != nil && !current.Status.Open() && in.Status.Open() {
		// reopening must not produce a second open inspection of the serial
		if err := s.checkDuplicate(ctx, current.CustomerID, current.EquipmentInfo.SerialNumber, current.ID); err != nil {
			return nil, err
		}
	}

	var from models.InspectionStatus
	var changes []string
	updated, err := s.inspections.Modify(ctx, id, func(insp *models.Inspection) error {
		from = insp.Status
		if in.Status != nil && *in.Status != insp.Status {
			if !CanChangeStatus(actor.Role, insp.Status, *in.Status) {
				return ErrTransitionNotAllowed
			}
			insp.Status = *in.Status
			now := s.now().UTC()
			switch insp.Status {
			case models.StatusApproved, models.StatusRejected:
				insp.ApprovedBy = actor.ID
				insp.ApprovedAt = &now
			case models.StatusReportWritten:
				insp.SubmittedAt = &now
				clearApproval(insp)
			default:
				clearApproval(insp)
			}
		} else if in.Status != nil {
			return ErrSameStatus
		}
		if in.InspectorID != nil && *in.InspectorID != insp.InspectorID {
			insp.InspectorID = *in.InspectorID
			changes = append(changes, "denetçi")
		}
		if in.PlannedDate != nil {
			insp.PlannedDate = planned
			changes = append(changes, "planlanan tarih")
		}
		if in.EquipmentInfo != nil {
			insp.EquipmentInfo = *in.EquipmentInfo
			changes = append(changes, "ekipman bilgisi")
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInspectionNotFound
		}
		return nil, err
	}

	if updated.Status != from {
		s.audit.Record(ctx, actor.ID, models.EntityInspection, id, "status_change",
			fmt.Sprintf("%s -> %s", from, updated.Status))
	}
	if len(changes) > 0 {
		s.audit.Record(ctx, actor.ID, models.EntityInspection, id, "update",
			"Güncellenen alanlar: "+strings.Join(changes, ", "))
	}
	return updated, nil
}

func (s *inspectionService) Delete(ctx context.Context, actor *models.User, id string) error {
	insp, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if insp.Status != models.StatusPending {
		return ErrInspectionNotDeletable
	}
	if err := s.inspections.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInspectionNotFound
		}
		return err
	}

	s.audit.Record(ctx, actor.ID, models.EntityInspection, id, "delete",
		fmt.Sprintf("Denetim silindi: %s %s", insp.EquipmentInfo.EquipmentType, insp.EquipmentInfo.SerialNumber))
	return nil
}

func (s *inspectionService) History(ctx context.Context, actor *models.User, id string) ([]models.AuditLog, error) {
	if _, err := s.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return s.audit.History(ctx, models.EntityInspection, id)
}

func (s *inspectionService) Approve(ctx context.Context, actor *models.User, id string, in ApprovalInput) (*models.Inspection, error) {
	var next models.InspectionStatus
	switch strings.ToLower(strings.TrimSpace(in.Action)) {
	case "approve":
		next = models.StatusApproved
	case "reject":
		next = models.StatusRejected
	default:
		return nil, ErrInvalidApprovalAction
	}

	updated, err := s.inspections.Modify(ctx, id, func(insp *models.Inspection) error {
		if insp.Status != models.StatusReportWritten {
			return ErrNotAwaitingApproval
		}
		now := s.now().UTC()
		insp.Status = next
		insp.ApprovalNotes = strings.TrimSpace(in.Notes)
		insp.ApprovedBy = actor.ID
		insp.ApprovedAt = &now
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInspectionNotFound
		}
		return nil, err
	}

	details := fmt.Sprintf("%s -> %s", models.StatusReportWritten, next)
	if updated.ApprovalNotes != "" {
		details += ": " + updated.ApprovalNotes
	}
	s.audit.Record(ctx, actor.ID, models.EntityInspection, id, "status_change", details)
	return updated, nil
}

// resolveTemplate prefers the template pinned on the equipment and falls back
// to the active FORM template of the equipment type. A nil result with no
// error means nothing matched.
func (s *inspectionService) resolveTemplate(ctx context.Context, info models.EquipmentInfo) (*models.EquipmentTemplate, error) {
	if info.TemplateID != "" {
		tpl, err := s.templates.GetByID(ctx, info.TemplateID)
		if err == nil {
			return tpl, nil
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}
	if info.EquipmentType == "" {
		return nil, nil
	}
	tpl, err := s.templates.FindActiveForm(ctx, info.EquipmentType)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return tpl, err
}

func (s *inspectionService) Form(ctx context.Context, actor *models.User, id string) (*inspectionform.View, error) {
	insp, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	customerName := ""
	if c, err := s.customers.GetByID(ctx, insp.CustomerID); err == nil {
		customerName = c.CompanyName
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	tpl, err := s.resolveTemplate(ctx, insp.EquipmentInfo)
	if err != nil {
		return nil, err
	}
	view := inspectionform.BuildView(insp, customerName, tpl)
	return &view, nil
}

func (s *inspectionService) SaveForm(ctx context.Context, actor *models.User, id string, in FormInput) (*models.Inspection, error) {
	current, err := s.Get(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if actor.Role != models.RoleAdmin && current.InspectorID != actor.ID {
		return nil, ErrForbidden
	}

	tpl, err := s.resolveTemplate(ctx, current.EquipmentInfo)
	if err != nil {
		return nil, err
	}
	ev, err := inspectionform.Evaluate(tpl, in.FormData)
	if err != nil {
		var invalid *inspectionform.InvalidError
		if errors.As(err, &invalid) {
			return nil, &ValidationError{Message: "Geçersiz form verisi", Details: map[string]any{"items": invalid.Problems}}
		}
		return nil, err
	}
	if !in.IsDraft && len(ev.Missing) > 0 {
		return nil, &ValidationError{
			Message: "Zorunlu kontrol maddeleri doldurulmadı",
			Details: map[string]any{"missing_items": ev.Missing},
		}
	}

	var from models.InspectionStatus
	updated, err := s.inspections.Modify(ctx, id, func(insp *models.Inspection) error {
		if !formEditable(insp.Status) {
			return ErrFormNotEditable
		}
		from = insp.Status
		insp.FormData = ev.FormData
		if in.GeneralInfo != nil {
			insp.GeneralInfo = in.GeneralInfo
		}
		insp.CompletionPercentage = ev.Completion

		if in.IsDraft {
			insp.Status = models.StatusInProgress
			return nil
		}
		now := s.now().UTC()
		insp.Status = models.StatusReportWritten
		insp.SubmittedAt = &now
		clearApproval(insp)
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInspectionNotFound
		}
		return nil, err
	}

	action, details := "form_save", fmt.Sprintf("Form taslak kaydedildi (%%%d)", updated.CompletionPercentage)
	if !in.IsDraft {
		action, details = "form_submit", fmt.Sprintf("Rapor gönderildi (%%%d)", updated.CompletionPercentage)
	}
	s.audit.Record(ctx, actor.ID, models.EntityInspection, id, action, details)
	if updated.Status != from {
		s.audit.Record(ctx, actor.ID, models.EntityInspection, id, "status_change",
			fmt.Sprintf("%s -> %s", from, updated.Status))
	}
	return updated, nil
}
