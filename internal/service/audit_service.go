package service

import (
	"context"

	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService appends to the audit trail. The portal data is already
// written when these are called, so a failure is logged and not returned.
type AuditService interface {
	LogCreate(ctx context.Context, actor *entity.Session, action, entityName, entityID string, newValue interface{})
	LogUpdate(ctx context.Context, actor *entity.Session, action, entityName, entityID string, oldValue, newValue interface{})
	LogDelete(ctx context.Context, actor *entity.Session, action, entityName, entityID string, oldValue interface{})
}

type auditService struct {
	db        *gorm.DB
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(db *gorm.DB, log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		db:        db,
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, actor *entity.Session, action, entityName, entityID string, newValue interface{}) {
	s.record(ctx, actor, action, entityName, entityID, entity.JSON{
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, actor *entity.Session, action, entityName, entityID string, oldValue, newValue interface{}) {
	s.record(ctx, actor, action, entityName, entityID, entity.JSON{
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, actor *entity.Session, action, entityName, entityID string, oldValue interface{}) {
	s.record(ctx, actor, action, entityName, entityID, entity.JSON{
		"old_value": oldValue,
		"new_value": nil,
	})
}

func (s *auditService) record(ctx context.Context, actor *entity.Session, action, entityName, entityID string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		Action:   action,
		Entity:   entityName,
		EntityID: entityID,
		Metadata: metadata,
	}
	if actor != nil {
		auditLog.ActorID = actor.UserID()
		auditLog.ActorRole = string(actor.Role())
	}

	if err := s.auditRepo.Create(s.db.WithContext(ctx), auditLog); err != nil {
		s.log.Warnf("Failed to create audit log for %s %s: %+v", action, entityID, err)
	}
}
