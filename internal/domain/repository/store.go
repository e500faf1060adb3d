package repository

import (
	"context"
	"errors"
)

// Storage keys. Values are JSON documents.
const (
	KeyUsers              = "swasthya_users"
	KeyCurrentUser        = "swasthya_current_user"
	KeyAppointments       = "swasthya_appointments"
	KeyMessages           = "swasthya_messages"
	KeyPrescriptions      = "swasthya_prescriptions"
	KeyInventory          = "swasthya_inventory"
	KeyConsultations      = "swasthya_consultations"
	KeyFeedbacks          = "swasthya_feedbacks"
	KeyOrders             = "swasthya_orders"
	KeyDocuments          = "swasthya_documents"
	KeyHealthReports      = "swasthya_health_reports"
	KeyConversationNotes  = "swasthya_conversation_notes"
	KeySymptomChecks      = "swasthya_symptom_checks"
	KeySafetyChecks       = "swasthya_safety_checks"
	KeySentimentAnalyses  = "swasthya_sentiment_analyses"
	KeyHealthIDPrefix     = "health_id_"
	KeyRefreshTokenPrefix = "refresh_token"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateEmail    = errors.New("email already registered")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// Store is the key-value storage accessor. There are no transactions:
// concurrent writers of the same key are last-write-wins.
type Store interface {
	// Read decodes the value at key into dest. found is false when the key is absent.
	Read(ctx context.Context, key string, dest any) (found bool, err error)
	Write(ctx context.Context, key string, value any) error
	// WriteIfAbsent writes value only when key does not exist yet.
	WriteIfAbsent(ctx context.Context, key string, value any) (written bool, err error)
	Exists(ctx context.Context, key string) (bool, error)
	Delete(ctx context.Context, keys ...string) error
}

// Record is anything stored in a collection
type Record interface {
	GetID() string
}

// Collection is a JSON array stored under a single key and rewritten as a
// whole on every mutation.
type Collection[T Record] interface {
	FindAll(ctx context.Context) ([]T, error)
	// FindByID returns nil, nil when no record has the id.
	FindByID(ctx context.Context, id string) (*T, error)
	Create(ctx context.Context, item T) error
	// Update applies fn to the record with the id and persists the result.
	// Nothing is written when fn returns an error.
	Update(ctx context.Context, id string, fn func(*T) error) (*T, error)
	Delete(ctx context.Context, id string) error
}
