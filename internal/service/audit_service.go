package service

import (
	"context"
	"time"

	"hepatotrack/internal/domain/entity"
	"hepatotrack/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type AuditService interface {
	LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{}) error
	LogEvent(ctx context.Context, action string, metadata entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action with the stored value.
func (s *auditService) LogCreate(ctx context.Context, action string, entityName string, entityID string, newValue interface{}) error {
	auditLog := &entity.AuditLog{
		Action:     action,
		EntityName: entityName,
		EntityID:   entityID,
		CreatedAt:  time.Now().UTC(),
		Metadata: entity.JSON{
			"new_value": newValue,
		},
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

// LogEvent logs an action that does not create a record, such as an export.
func (s *auditService) LogEvent(ctx context.Context, action string, metadata entity.JSON) error {
	auditLog := &entity.AuditLog{
		Action:    action,
		Metadata:  metadata,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
