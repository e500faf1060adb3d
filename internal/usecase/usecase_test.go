package usecase_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"swasthya-portal/internal/domain/entity"
	domainRepo "swasthya-portal/internal/domain/repository"
	"swasthya-portal/internal/infrastructure/ai"
	"swasthya-portal/internal/repository"
	"swasthya-portal/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// noopAudit drops every audit entry
type noopAudit struct{}

func (noopAudit) LogCreate(context.Context, *entity.Session, string, string, string, interface{}) {}

func (noopAudit) LogUpdate(context.Context, *entity.Session, string, string, string, interface{}, interface{}) {
}

func (noopAudit) LogDelete(context.Context, *entity.Session, string, string, string, interface{}) {}

type offlineAI struct{}

func (offlineAI) Complete(context.Context, ai.Request) (string, error) {
	return "", errors.New("ai unavailable")
}

type env struct {
	log    *logrus.Logger
	client *redis.Client

	users         domainRepo.UserRepository
	sessions      domainRepo.SessionRepository
	appointments  domainRepo.AppointmentRepository
	prescriptions domainRepo.PrescriptionRepository
	inventory     domainRepo.InventoryRepository
	orders        domainRepo.OrderRepository
	consultations domainRepo.ConsultationRepository
	feedbacks     domainRepo.FeedbackRepository
	sentiments    domainRepo.SentimentRepository
	documents     domainRepo.DocumentRepository
	reports       domainRepo.HealthReportRepository
	notes         domainRepo.ConversationNoteRepository
	symptoms      domainRepo.SymptomCheckRepository
	safetyChecks  domainRepo.SafetyCheckRepository
	messages      domainRepo.MessageRepository
	healthIDs     domainRepo.HealthIDRepository

	audit     service.AuditService
	assistant service.AssistantService
}

// newEnv returns repositories over a fresh miniredis holding the demo data
func newEnv(t *testing.T) *env {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	locker := repository.NewKeyLocker(log)
	t.Cleanup(locker.Stop)
	store := repository.NewRedisStore(client)

	require.NoError(t, repository.SeedDefaults(context.Background(), store, log, bcrypt.MinCost))

	return &env{
		log:           log,
		client:        client,
		users:         repository.NewUserRepository(store, locker),
		sessions:      repository.NewSessionRepository(client),
		appointments:  repository.NewAppointmentRepository(store, locker),
		prescriptions: repository.NewPrescriptionRepository(store, locker),
		inventory:     repository.NewInventoryRepository(store, locker),
		orders:        repository.NewOrderRepository(store, locker),
		consultations: repository.NewConsultationRepository(store, locker),
		feedbacks:     repository.NewFeedbackRepository(store, locker),
		sentiments:    repository.NewSentimentRepository(store, locker),
		documents:     repository.NewDocumentRepository(store, locker),
		reports:       repository.NewHealthReportRepository(store, locker),
		notes:         repository.NewConversationNoteRepository(store, locker),
		symptoms:      repository.NewSymptomCheckRepository(store, locker),
		safetyChecks:  repository.NewSafetyCheckRepository(store, locker),
		messages:      repository.NewMessageRepository(store, locker),
		healthIDs:     repository.NewHealthIDRepository(store),
		audit:         noopAudit{},
		assistant:     service.NewAssistantService(offlineAI{}, log),
	}
}

// sessionFor builds a session for a seeded user
func (e *env) sessionFor(t *testing.T, id string) *entity.Session {
	t.Helper()
	user, err := e.users.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, user)
	return &entity.Session{User: user.WithoutPassword(), TokenID: "test-" + id}
}
