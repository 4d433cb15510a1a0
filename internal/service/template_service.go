package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"royalcert/internal/models"
	"royalcert/internal/repository"
)

type TemplateInput struct {
	Name          string                    `json:"name" validate:"required"`
	EquipmentType string                    `json:"equipment_type" validate:"required"`
	TemplateType  models.TemplateType       `json:"template_type"`
	Description   string                    `json:"description"`
	Categories    []models.TemplateCategory `json:"categories" validate:"dive"`
	IsActive      *bool                     `json:"is_active,omitempty"`
}

type InitializeResult struct {
	Message string   `json:"message"`
	Created []string `json:"created"`
}

type TemplateService interface {
	Create(ctx context.Context, actor *models.User, in TemplateInput) (*models.EquipmentTemplate, error)
	List(ctx context.Context, f repository.TemplateFilter) ([]models.EquipmentTemplate, error)
	Get(ctx context.Context, id string) (*models.EquipmentTemplate, error)
	Update(ctx context.Context, actor *models.User, id string, in TemplateInput) (*models.EquipmentTemplate, error)
	Delete(ctx context.Context, actor *models.User, id string) error
	// Initialize seeds the built-in checklists, skipping names that exist.
	Initialize(ctx context.Context, actor *models.User) (*InitializeResult, error)
}

type templateService struct {
	templates repository.TemplateRepository
	audit     AuditService
}

func NewTemplateService(templates repository.TemplateRepository, audit AuditService) TemplateService {
	return &templateService{templates: templates, audit: audit}
}

// normalizeTemplate trims the input, applies defaults and assigns ids to
// items that come in with id 0.
func normalizeTemplate(in *TemplateInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.EquipmentType = strings.TrimSpace(in.EquipmentType)
	in.Description = strings.TrimSpace(in.Description)
	if in.TemplateType == "" {
		in.TemplateType = models.TemplateForm
	}
	in.TemplateType = models.TemplateType(strings.ToUpper(string(in.TemplateType)))
	if in.Categories == nil {
		in.Categories = []models.TemplateCategory{}
	}
	for i := range in.Categories {
		in.Categories[i].Code = strings.TrimSpace(in.Categories[i].Code)
		if in.Categories[i].Name == "" {
			in.Categories[i].Name = in.Categories[i].Code
		}
		if in.Categories[i].Items == nil {
			in.Categories[i].Items = []models.TemplateItem{}
		}
		for j := range in.Categories[i].Items {
			in.Categories[i].Items[j].Text = strings.TrimSpace(in.Categories[i].Items[j].Text)
		}
	}

	if err := validateStruct(in); err != nil {
		return err
	}
	if in.TemplateType != models.TemplateForm && in.TemplateType != models.TemplateReport {
		return ErrInvalidTemplateType
	}

	seen := map[int]bool{}
	maxID := 0
	for _, cat := range in.Categories {
		for _, it := range cat.Items {
			if it.ID < 0 {
				return &ValidationError{Message: "Geçersiz madde numarası", Details: map[string]any{"item_id": it.ID}}
			}
			if it.ID == 0 {
				continue
			}
			if seen[it.ID] {
				return &ValidationError{Message: string(ErrDuplicateTemplateIDs), Details: map[string]any{"item_id": it.ID}}
			}
			seen[it.ID] = true
			maxID = max(maxID, it.ID)
		}
	}
	for i := range in.Categories {
		for j := range in.Categories[i].Items {
			it := &in.Categories[i].Items[j]
			if it.ID == 0 {
				maxID++
				it.ID = maxID
			}
			if it.InputType == "" {
				it.InputType = models.InputDropdown
			}
		}
	}
	return nil
}

func (s *templateService) Create(ctx context.Context, actor *models.User, in TemplateInput) (*models.EquipmentTemplate, error) {
	if err := normalizeTemplate(&in); err != nil {
		return nil, err
	}

	t := &models.EquipmentTemplate{
		Name:          in.Name,
		EquipmentType: in.EquipmentType,
		TemplateType:  in.TemplateType,
		Description:   in.Description,
		Categories:    in.Categories,
		IsActive:      in.IsActive == nil || *in.IsActive,
		CreatedBy:     actor.ID,
	}
	if err := s.templates.Create(ctx, t); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor.ID, models.EntityTemplate, t.ID, "create",
		fmt.Sprintf("Template oluşturuldu: %s (%d madde)", t.Name, t.ItemCount()))
	return t, nil
}

func (s *templateService) List(ctx context.Context, f repository.TemplateFilter) ([]models.EquipmentTemplate, error) {
	f.TemplateType = models.TemplateType(strings.ToUpper(string(f.TemplateType)))
	return s.templates.List(ctx, f)
}

func (s *templateService) Get(ctx context.Context, id string) (*models.EquipmentTemplate, error) {
	t, err := s.templates.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTemplateNotFound
	}
	return t, err
}

func (s *templateService) Update(ctx context.Context, actor *models.User, id string, in TemplateInput) (*models.EquipmentTemplate, error) {
	if err := normalizeTemplate(&in); err != nil {
		return nil, err
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	t.Name = in.Name
	t.EquipmentType = in.EquipmentType
	t.TemplateType = in.TemplateType
	t.Description = in.Description
	t.Categories = in.Categories
	if in.IsActive != nil {
		t.IsActive = *in.IsActive
	}
	if err := s.templates.Update(ctx, t); err != nil {
		return nil, err
	}

	s.audit.Record(ctx, actor.ID, models.EntityTemplate, t.ID, "update",
		fmt.Sprintf("Template güncellendi: %s (%d madde)", t.Name, t.ItemCount()))
	return t, nil
}

func (s *templateService) Delete(ctx context.Context, actor *models.User, id string) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.templates.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTemplateNotFound
		}
		return err
	}

	s.audit.Record(ctx, actor.ID, models.EntityTemplate, id, "delete", "Template silindi: "+t.Name)
	return nil
}

func (s *templateService) Initialize(ctx context.Context, actor *models.User) (*InitializeResult, error) {
	created := []string{}
	for _, preset := range builtinTemplates() {
		exists, err := s.templates.ExistsByName(ctx, preset.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}
		if _, err := s.Create(ctx, actor, preset); err != nil {
			return nil, fmt.Errorf("create %s template: %w", preset.Name, err)
		}
		created = append(created, preset.Name)
	}

	msg := "Tüm hazır template'ler zaten mevcut"
	if len(created) > 0 {
		msg = fmt.Sprintf("%d template oluşturuldu", len(created))
	}
	return &InitializeResult{Message: msg, Created: created}, nil
}
