package service_test

import (
	"context"
	"errors"
	"testing"

	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func mockDB(t *testing.T) *gorm.DB {
	t.Helper()
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
	require.NoError(t, err)
	return db
}

type recordingAuditRepo struct {
	logs []*entity.AuditLog
	err  error
}

func (r *recordingAuditRepo) Create(_ *gorm.DB, log *entity.AuditLog) error {
	r.logs = append(r.logs, log)
	return r.err
}

func (r *recordingAuditRepo) FindRecent(*gorm.DB, int) ([]entity.AuditLog, error) { return nil, nil }

func (r *recordingAuditRepo) FindByID(*gorm.DB, int64) (*entity.AuditLog, error) { return nil, nil }

func TestAuditService_RecordsActor(t *testing.T) {
	repo := &recordingAuditRepo{}
	audit := service.NewAuditService(mockDB(t), quietLogger(), repo)
	actor := &entity.Session{User: entity.User{ID: "PH001", Role: entity.RolePharmacist}}

	audit.LogUpdate(context.Background(), actor, entity.AuditActionOrderComplete, "order", "ORD001", "pending", "completed")

	require.Len(t, repo.logs, 1)
	log := repo.logs[0]
	assert.Equal(t, "PH001", log.ActorID)
	assert.Equal(t, string(entity.RolePharmacist), log.ActorRole)
	assert.Equal(t, "pending", log.Metadata["old_value"])
	assert.Equal(t, "completed", log.Metadata["new_value"])
}

func TestAuditService_SwallowsFailures(t *testing.T) {
	repo := &recordingAuditRepo{err: errors.New("db down")}
	audit := service.NewAuditService(mockDB(t), quietLogger(), repo)

	assert.NotPanics(t, func() {
		audit.LogCreate(context.Background(), nil, entity.AuditActionUserRegister, "user", "P003", nil)
	})
	require.Len(t, repo.logs, 1)
	assert.Empty(t, repo.logs[0].ActorID)
}
