package service

import (
	"context"

	"royalcert/internal/logging"
	"royalcert/internal/models"
	"royalcert/internal/repository"

	"go.uber.org/zap"
)

const auditListLimit = 200

type AuditService interface {
	// Record never fails the calling operation; write errors are logged.
	Record(ctx context.Context, userID, entity, entityID, action, details string)
	List(ctx context.Context, entity string) ([]models.AuditLog, error)
	History(ctx context.Context, entity, entityID string) ([]models.AuditLog, error)
}

type auditService struct {
	repo repository.AuditRepository
}

func NewAuditService(repo repository.AuditRepository) AuditService {
	return &auditService{repo: repo}
}

func (s *auditService) Record(ctx context.Context, userID, entity, entityID, action, details string) {
	entry := models.AuditLog{
		UserID:   userID,
		Entity:   entity,
		EntityID: entityID,
		Action:   action,
		Details:  details,
	}
	if err := s.repo.Create(ctx, &entry); err != nil {
		logging.Log.Error("failed to write audit log",
			zap.String("entity", entity),
			zap.String("entity_id", entityID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

func (s *auditService) List(ctx context.Context, entity string) ([]models.AuditLog, error) {
	return s.repo.List(ctx, repository.AuditFilter{Entity: entity, Limit: auditListLimit})
}

func (s *auditService) History(ctx context.Context, entity, entityID string) ([]models.AuditLog, error) {
	return s.repo.List(ctx, repository.AuditFilter{Entity: entity, EntityID: entityID, OldestFirst: true})
}
