package repository_test

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"swasthya-portal/internal/domain/entity"
	domainRepo "swasthya-portal/internal/domain/repository"
	"swasthya-portal/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	mr     *miniredis.Miniredis
	client *redis.Client
	store  domainRepo.Store
	locker *repository.KeyLocker
	log    *logrus.Logger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	log := logrus.New()
	log.SetOutput(io.Discard)

	locker := repository.NewKeyLocker(log)
	t.Cleanup(locker.Stop)

	return &fixture{
		mr:     mr,
		client: client,
		store:  repository.NewRedisStore(client),
		locker: locker,
		log:    log,
	}
}

func TestRedisStore_ReadMissingKey(t *testing.T) {
	f := newFixture(t)

	var users []entity.User
	found, err := f.store.Read(context.Background(), domainRepo.KeyUsers, &users)
	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, users)
}

func TestRedisStore_WriteIfAbsentKeepsExisting(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	written, err := f.store.WriteIfAbsent(ctx, "k", []string{"first"})
	require.NoError(t, err)
	require.True(t, written)

	written, err = f.store.WriteIfAbsent(ctx, "k", []string{"second"})
	require.NoError(t, err)
	require.False(t, written)

	var got []string
	_, err = f.store.Read(ctx, "k", &got)
	require.NoError(t, err)
	require.Equal(t, []string{"first"}, got)
}

func TestRedisStore_CorruptValue(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.mr.Set(domainRepo.KeyUsers, "{not json"))

	var users []entity.User
	_, err := f.store.Read(context.Background(), domainRepo.KeyUsers, &users)
	require.Error(t, err)
}

func TestRedisStore_RoundTripsRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	added := time.Date(2025, 3, 14, 9, 30, 15, 250, time.FixedZone("IST", 5*3600+1800))
	inventory := []entity.InventoryItem{
		{ID: "M001", Name: "Paracetamol 500mg", Stock: 500, Price: decimal.RequireFromString("10.25"), ExpiryDate: "2026-12-31", AddedBy: "PH001", AddedDate: added},
		{ID: "M002", Name: "Amoxicillin 250mg", Stock: 0, Price: decimal.NewFromInt(50), ExpiryDate: "2026-06-30", UpdatedDate: added.Add(time.Hour)},
	}
	require.NoError(t, f.store.Write(ctx, domainRepo.KeyInventory, inventory))

	var gotInventory []entity.InventoryItem
	found, err := f.store.Read(ctx, domainRepo.KeyInventory, &gotInventory)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, gotInventory, len(inventory))
	for i, want := range inventory {
		got := gotInventory[i]
		require.True(t, want.Price.Equal(got.Price), "price of %s", want.ID)
		require.True(t, want.AddedDate.Equal(got.AddedDate), "addedDate of %s", want.ID)
		require.True(t, want.UpdatedDate.Equal(got.UpdatedDate), "updatedDate of %s", want.ID)
		got.Price, got.AddedDate, got.UpdatedDate = want.Price, want.AddedDate, want.UpdatedDate
		require.Equal(t, want, got)
	}

	prescriptions := []entity.Prescription{{
		ID: "RX-1", PatientID: "P001", PatientName: "Amit Patel", DoctorID: "D001", DoctorName: "Dr. Rajesh Kumar",
		Medicines: []entity.MedicineLine{
			{Name: "Paracetamol", Dosage: "500mg", Frequency: "Twice daily", Duration: "5 days"},
			{Name: "Ibuprofen", Dosage: "400mg", Frequency: "As needed", Duration: "3 days"},
		},
		Notes:     "After meals",
		IssuedAt:  added,
		Digest:    "abc123",
		Signature: "def456",
	}}
	require.NoError(t, f.store.Write(ctx, domainRepo.KeyPrescriptions, prescriptions))

	var gotPrescriptions []entity.Prescription
	found, err = f.store.Read(ctx, domainRepo.KeyPrescriptions, &gotPrescriptions)
	require.NoError(t, err)
	require.True(t, found)
	require.Len(t, gotPrescriptions, 1)
	require.True(t, prescriptions[0].IssuedAt.Equal(gotPrescriptions[0].IssuedAt))
	gotPrescriptions[0].IssuedAt = prescriptions[0].IssuedAt
	require.Equal(t, prescriptions, gotPrescriptions)
}

func TestUserRepository_CreateRejectsDuplicateEmail(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewUserRepository(f.store, f.locker)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, entity.User{ID: "P1", Email: "a@test.com", Role: entity.RolePatient}))
	err := repo.Create(ctx, entity.User{ID: "D1", Email: "a@test.com", Role: entity.RoleDoctor})
	require.ErrorIs(t, err, domainRepo.ErrDuplicateEmail)

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	found, err := repo.FindByEmail(ctx, "A@test.com")
	require.NoError(t, err)
	require.Nil(t, found)
}

func TestCollection_UpdateFailureWritesNothing(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewAppointmentRepository(f.store, f.locker)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, entity.Appointment{ID: "APT1", Reason: "checkup"}))

	_, err := repo.Update(ctx, "APT1", func(a *entity.Appointment) error {
		a.Reason = "changed"
		return domainRepo.ErrNotFound
	})
	require.Error(t, err)

	got, err := repo.FindByID(ctx, "APT1")
	require.NoError(t, err)
	require.Equal(t, "checkup", got.Reason)

	_, err = repo.Update(ctx, "missing", func(*entity.Appointment) error { return nil })
	require.ErrorIs(t, err, domainRepo.ErrNotFound)
}

func TestCollection_Delete(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewDocumentRepository(f.store, f.locker)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, entity.Document{ID: "DOC1"}))
	require.NoError(t, repo.Create(ctx, entity.Document{ID: "DOC2"}))
	require.NoError(t, repo.Delete(ctx, "DOC1"))
	require.ErrorIs(t, repo.Delete(ctx, "DOC1"), domainRepo.ErrNotFound)

	docs, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 1)
	require.Equal(t, "DOC2", docs[0].ID)
}

func TestCollection_ConcurrentCreatesAreNotLost(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewMessageRepository(f.store, f.locker)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Create(ctx, entity.Message{ID: string(rune('a' + i))})
		}(i)
	}
	wg.Wait()

	messages, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 20)
}

func TestInventoryRepository_AdjustStock(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewInventoryRepository(f.store, f.locker)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, entity.InventoryItem{ID: "M001", Stock: 10, Price: decimal.NewFromInt(10)}))

	item, err := repo.AdjustStock(ctx, "M001", -4)
	require.NoError(t, err)
	require.Equal(t, 6, item.Stock)

	_, err = repo.AdjustStock(ctx, "M001", -7)
	require.ErrorIs(t, err, domainRepo.ErrInsufficientStock)

	stored, err := repo.FindByID(ctx, "M001")
	require.NoError(t, err)
	require.Equal(t, 6, stored.Stock)

	_, err = repo.AdjustStock(ctx, "M404", 1)
	require.ErrorIs(t, err, domainRepo.ErrNotFound)
}

func TestSessionRepository_StripsPassword(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewSessionRepository(f.client)
	ctx := context.Background()

	session := &entity.Session{
		User:    entity.User{ID: "P001", Email: "patient@test.com", Password: "hash", Role: entity.RolePatient},
		TokenID: "tok1",
	}
	require.NoError(t, repo.Save(ctx, session, time.Hour))
	require.Equal(t, "hash", session.User.Password)

	got, err := repo.Find(ctx, "P001", "tok1")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Empty(t, got.User.Password)
	require.True(t, f.mr.Exists(domainRepo.KeyCurrentUser+":P001:tok1"))

	missing, err := repo.Find(ctx, "P001", "other")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestSessionRepository_RefreshUserAndRevoke(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewSessionRepository(f.client)
	ctx := context.Background()

	user := entity.User{ID: "D001", Name: "Dr. Old", Role: entity.RoleDoctor}
	require.NoError(t, repo.Save(ctx, &entity.Session{User: user, TokenID: "t1"}, time.Hour))
	require.NoError(t, repo.Save(ctx, &entity.Session{User: user, TokenID: "t2"}, time.Hour))
	require.NoError(t, repo.SaveRefreshToken(ctx, "D001", "r1", time.Hour))

	user.Name = "Dr. New"
	require.NoError(t, repo.RefreshUser(ctx, user))

	got, err := repo.Find(ctx, "D001", "t2")
	require.NoError(t, err)
	require.Equal(t, "Dr. New", got.User.Name)
	require.True(t, f.mr.TTL(domainRepo.KeyCurrentUser+":D001:t2") > 0)

	require.NoError(t, repo.DeleteAllForUser(ctx, "D001"))

	got, err = repo.Find(ctx, "D001", "t1")
	require.NoError(t, err)
	require.Nil(t, got)

	ok, err := repo.ConsumeRefreshToken(ctx, "D001", "r1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSessionRepository_ConsumeRefreshTokenOnce(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewSessionRepository(f.client)
	ctx := context.Background()

	require.NoError(t, repo.SaveRefreshToken(ctx, "P001", "r1", time.Hour))

	ok, err := repo.ConsumeRefreshToken(ctx, "P001", "r1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.ConsumeRefreshToken(ctx, "P001", "r1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestHealthIDRepository_SaveIfAbsentKeepsFirst(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewHealthIDRepository(f.store)
	ctx := context.Background()

	first, err := repo.SaveIfAbsent(ctx, &entity.HealthID{UserID: "P001", HID: "HID-1"})
	require.NoError(t, err)
	require.Equal(t, "HID-1", first.HID)

	second, err := repo.SaveIfAbsent(ctx, &entity.HealthID{UserID: "P001", HID: "HID-2"})
	require.NoError(t, err)
	require.Equal(t, "HID-1", second.HID)

	missing, err := repo.FindByUserID(ctx, "P404")
	require.NoError(t, err)
	require.Nil(t, missing)
}

func TestSentimentRepository_SaveReplacesByFeedbackID(t *testing.T) {
	f := newFixture(t)
	repo := repository.NewSentimentRepository(f.store, f.locker)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, entity.SentimentAnalysis{FeedbackID: "FB1", Sentiment: "Neutral"}))
	require.NoError(t, repo.Save(ctx, entity.SentimentAnalysis{FeedbackID: "FB1", Sentiment: "Positive"}))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Positive", all["FB1"].Sentiment)
}

func TestSentimentRepository_SaveOverStoredNull(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.mr.Set(domainRepo.KeySentimentAnalyses, "null"))

	repo := repository.NewSentimentRepository(f.store, f.locker)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, entity.SentimentAnalysis{FeedbackID: "FB1", Sentiment: "Negative"}))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, "Negative", all["FB1"].Sentiment)
}

func TestSeedDefaults_Idempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, repository.SeedDefaults(ctx, f.store, f.log, bcrypt.MinCost))

	users := repository.NewUserRepository(f.store, f.locker)
	doctor, err := users.FindByEmail(ctx, "doctor@test.com")
	require.NoError(t, err)
	require.NotNil(t, doctor)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(doctor.Password), []byte("doctor123")))

	inventory := repository.NewInventoryRepository(f.store, f.locker)
	_, err = inventory.AdjustStock(ctx, "M001", -20)
	require.NoError(t, err)

	require.NoError(t, repository.SeedDefaults(ctx, f.store, f.log, bcrypt.MinCost))

	item, err := inventory.FindByID(ctx, "M001")
	require.NoError(t, err)
	require.Equal(t, 480, item.Stock)

	all, err := users.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 6)
}
