package repository

import (
	"context"
	"errors"

	"royalcert/internal/models"

	"gorm.io/gorm"
)

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

func (r *templateRepository) Create(ctx context.Context, t *models.EquipmentTemplate) error {
	return translate(r.db.WithContext(ctx).Create(t).Error)
}

func (r *templateRepository) GetByID(ctx context.Context, id string) (*models.EquipmentTemplate, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var t models.EquipmentTemplate
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *templateRepository) List(ctx context.Context, f TemplateFilter) ([]models.EquipmentTemplate, error) {
	q := r.db.WithContext(ctx).Order("name asc")
	if f.EquipmentType != "" {
		q = q.Where("LOWER(equipment_type) = LOWER(?)", f.EquipmentType)
	}
	if f.TemplateType != "" {
		q = q.Where("template_type = ?", f.TemplateType)
	}
	if f.Active != nil {
		q = q.Where("is_active = ?", *f.Active)
	}
	templates := []models.EquipmentTemplate{}
	if err := q.Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

func (r *templateRepository) FindActiveForm(ctx context.Context, equipmentType string) (*models.EquipmentTemplate, error) {
	var t models.EquipmentTemplate
	err := r.db.WithContext(ctx).
		Where("LOWER(equipment_type) = LOWER(?)", equipmentType).
		Where("template_type = ? AND is_active = ?", models.TemplateForm, true).
		Order("updated_at desc").
		First(&t).Error
	if err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *templateRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var t models.EquipmentTemplate
	err := r.db.WithContext(ctx).Select("id").Where("name = ?", name).First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *templateRepository) Update(ctx context.Context, t *models.EquipmentTemplate) error {
	return translate(r.db.WithContext(ctx).Save(t).Error)
}

func (r *templateRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.EquipmentTemplate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *templateRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.EquipmentTemplate{}).Count(&n).Error
	return n, err
}
