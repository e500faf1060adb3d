package repository_test

import (
	"testing"
	"time"

	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestAuditLogRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewAuditLogRepository()

	mock.ExpectQuery(`INSERT INTO "audit_logs"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))

	log := &entity.AuditLog{
		ActorID:  "A001",
		Action:   entity.AuditActionUserToggle,
		Entity:   "user",
		EntityID: "P001",
		Metadata: entity.JSON{"new_value": "inactive"},
	}
	require.NoError(t, repo.Create(db, log))
	require.Equal(t, int64(7), log.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepository_FindRecent(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewAuditLogRepository()

	now := time.Now()
	mock.ExpectQuery(`SELECT \* FROM "audit_logs" ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "action", "entity", "entity_id", "created_at"}).
			AddRow(2, entity.AuditActionOrderCreate, "order", "ORD-2", now).
			AddRow(1, entity.AuditActionUserLogin, "user", "P001", now.Add(-time.Minute)))

	logs, err := repo.FindRecent(db, 10)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	require.Equal(t, int64(2), logs[0].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditLogRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewAuditLogRepository()

	mock.ExpectQuery(`SELECT \* FROM "audit_logs" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	log, err := repo.FindByID(db, 99)
	require.NoError(t, err)
	require.Nil(t, log)
	require.NoError(t, mock.ExpectationsWereMet())
}
