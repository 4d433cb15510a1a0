package repository

import (
	"context"

	"royalcert/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type inspectionRepository struct {
	db *gorm.DB
}

func NewInspectionRepository(db *gorm.DB) InspectionRepository {
	return &inspectionRepository{db: db}
}

func (r *inspectionRepository) Create(ctx context.Context, i *models.Inspection) error {
	return translate(r.db.WithContext(ctx).Create(i).Error)
}

func (r *inspectionRepository) GetByID(ctx context.Context, id string) (*models.Inspection, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var i models.Inspection
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&i).Error; err != nil {
		return nil, translate(err)
	}
	return &i, nil
}

func (r *inspectionRepository) filtered(ctx context.Context, f InspectionFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Inspection{})
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}
	if (f.CustomerID != "" && !validID(f.CustomerID)) || (f.InspectorID != "" && !validID(f.InspectorID)) {
		return q.Where("1 = 0")
	}
	if f.CustomerID != "" {
		q = q.Where("customer_id = ?", f.CustomerID)
	}
	if f.InspectorID != "" {
		q = q.Where("inspector_id = ?", f.InspectorID)
	}
	if f.SerialNumber != "" {
		q = q.Where("equipment_info->>'serial_number' = ?", f.SerialNumber)
	}
	if f.ApprovedSince != nil {
		q = q.Where("approved_at >= ?", *f.ApprovedSince)
	}
	return q
}

func (r *inspectionRepository) List(ctx context.Context, f InspectionFilter) ([]models.Inspection, error) {
	q := r.filtered(ctx, f)
	if f.BySubmission {
		q = q.Order("submitted_at asc NULLS LAST").Order("created_at asc")
	} else {
		q = q.Order("planned_date desc").Order("created_at desc")
	}
	out := []models.Inspection{}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *inspectionRepository) Count(ctx context.Context, f InspectionFilter) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Count(&n).Error
	return n, err
}

func (r *inspectionRepository) Modify(ctx context.Context, id string, fn func(*models.Inspection) error) (*models.Inspection, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var out models.Inspection
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).
			First(&out).Error; err != nil {
			return err
		}
		if err := fn(&out); err != nil {
			return err
		}
		return tx.Save(&out).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &out, nil
}

func (r *inspectionRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrNotFound
	}
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Inspection{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
