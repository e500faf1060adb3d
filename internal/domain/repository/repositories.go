package repository

import (
	"context"
	"time"

	"swasthya-portal/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Collection[entity.User]
	// FindByEmail matches the email exactly, case included.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

type InventoryRepository interface {
	Collection[entity.InventoryItem]
	// AdjustStock adds delta to the stock of a medicine. It returns
	// ErrInsufficientStock, leaving the stock untouched, when the result would
	// be negative.
	AdjustStock(ctx context.Context, id string, delta int) (*entity.InventoryItem, error)
}

type AppointmentRepository interface {
	Collection[entity.Appointment]
}

type PrescriptionRepository interface {
	Collection[entity.Prescription]
}

type OrderRepository interface {
	Collection[entity.Order]
}

type ConsultationRepository interface {
	Collection[entity.Consultation]
}

type FeedbackRepository interface {
	Collection[entity.Feedback]
}

type DocumentRepository interface {
	Collection[entity.Document]
}

type HealthReportRepository interface {
	Collection[entity.HealthReport]
}

type ConversationNoteRepository interface {
	Collection[entity.ConversationNote]
}

type SymptomCheckRepository interface {
	Collection[entity.SymptomCheck]
}

type SafetyCheckRepository interface {
	Collection[entity.SafetyCheck]
}

type MessageRepository interface {
	Collection[entity.Message]
}

// SentimentRepository stores analyses as one map keyed by feedback id
type SentimentRepository interface {
	FindAll(ctx context.Context) (map[string]entity.SentimentAnalysis, error)
	Save(ctx context.Context, analysis entity.SentimentAnalysis) error
}

type HealthIDRepository interface {
	FindByUserID(ctx context.Context, userID string) (*entity.HealthID, error)
	// SaveIfAbsent stores healthID unless the user already has one, and
	// returns whichever is stored.
	SaveIfAbsent(ctx context.Context, healthID *entity.HealthID) (*entity.HealthID, error)
}

type SessionRepository interface {
	Save(ctx context.Context, session *entity.Session, ttl time.Duration) error
	// Find returns nil, nil when the session expired or was revoked.
	Find(ctx context.Context, userID, tokenID string) (*entity.Session, error)
	// RefreshUser rewrites the user copy of every live session of user.
	RefreshUser(ctx context.Context, user entity.User) error
	Delete(ctx context.Context, userID, tokenID string) error
	DeleteAllForUser(ctx context.Context, userID string) error
	SaveRefreshToken(ctx context.Context, userID, tokenID string, ttl time.Duration) error
	// ConsumeRefreshToken deletes the refresh token and reports whether it existed.
	ConsumeRefreshToken(ctx context.Context, userID, tokenID string) (bool, error)
}

type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	FindRecent(db *gorm.DB, limit int) ([]entity.AuditLog, error)
	FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error)
}
