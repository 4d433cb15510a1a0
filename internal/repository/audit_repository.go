package repository

import (
	"context"

	"royalcert/internal/models"

	"gorm.io/gorm"
)

type auditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Create(ctx context.Context, l *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *auditRepository) List(ctx context.Context, f AuditFilter) ([]models.AuditLog, error) {
	q := r.db.WithContext(ctx).Preload("User")
	if f.OldestFirst {
		q = q.Order("created_at asc").Order("id asc")
	} else {
		q = q.Order("created_at desc").Order("id desc")
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if f.EntityID != "" {
		q = q.Where("entity_id = ?", f.EntityID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}
	logs := []models.AuditLog{}
	if err := q.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
