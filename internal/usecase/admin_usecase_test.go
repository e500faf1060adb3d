package usecase_test

import (
	"context"
	"testing"
	"time"

	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/usecase"

	"github.com/stretchr/testify/require"
)

func newAdminUsecase(e *env) usecase.AdminUsecase {
	return usecase.NewAdminUsecase(e.log, e.users, e.sessions, e.appointments, e.consultations, e.feedbacks, e.sentiments, e.assistant, e.audit)
}

func TestAdminUsecase_ToggleTwiceRestoresUser(t *testing.T) {
	e := newEnv(t)
	admin := newAdminUsecase(e)
	actor := e.sessionFor(t, "A001")
	ctx := context.Background()

	before, err := e.users.FindByID(ctx, "D002")
	require.NoError(t, err)

	require.NoError(t, e.sessions.Save(ctx, &entity.Session{User: *before, TokenID: "live"}, time.Hour))

	off, err := admin.ToggleUserStatus(ctx, actor, "D002")
	require.NoError(t, err)
	require.False(t, off.Active)

	revoked, err := e.sessions.Find(ctx, "D002", "live")
	require.NoError(t, err)
	require.Nil(t, revoked)

	on, err := admin.ToggleUserStatus(ctx, actor, "D002")
	require.NoError(t, err)
	require.True(t, on.Active)

	after, err := e.users.FindByID(ctx, "D002")
	require.NoError(t, err)
	require.True(t, after.Active)
	require.Equal(t, before.Name, after.Name)
	require.Equal(t, before.Email, after.Email)
	require.Equal(t, before.Password, after.Password)
	require.Equal(t, before.Specialization, after.Specialization)
	require.True(t, before.CreatedAt.Equal(after.CreatedAt))
}

func TestAdminUsecase_CannotDeactivateSelf(t *testing.T) {
	e := newEnv(t)
	admin := newAdminUsecase(e)

	_, err := admin.ToggleUserStatus(context.Background(), e.sessionFor(t, "A001"), "A001")
	require.ErrorIs(t, err, usecase.ErrCannotDeactivateSelf)

	_, err = admin.ToggleUserStatus(context.Background(), e.sessionFor(t, "A001"), "X404")
	require.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestAdminUsecase_UpdateUserRejectsTakenEmail(t *testing.T) {
	e := newEnv(t)
	admin := newAdminUsecase(e)
	actor := e.sessionFor(t, "A001")
	ctx := context.Background()

	_, err := admin.UpdateUser(ctx, actor, "P002", &dto.UpdateUserRequest{Email: "patient@test.com"})
	require.ErrorIs(t, err, usecase.ErrEmailAlreadyExists)

	updated, err := admin.UpdateUser(ctx, actor, "P002", &dto.UpdateUserRequest{Name: "Sneha G.", Specialization: "ignored"})
	require.NoError(t, err)
	require.Equal(t, "Sneha G.", updated.Name)
	require.Empty(t, updated.Specialization)
}

func TestAdminUsecase_ListUsersFilters(t *testing.T) {
	e := newEnv(t)
	admin := newAdminUsecase(e)
	ctx := context.Background()

	doctors, err := admin.ListUsers(ctx, "doctor", "")
	require.NoError(t, err)
	require.Equal(t, 2, doctors.Total)

	found, err := admin.ListUsers(ctx, "", "SHARMA")
	require.NoError(t, err)
	require.Equal(t, 1, found.Total)
	require.Equal(t, "D002", found.Users[0].ID)
}

func TestAdminUsecase_Statistics(t *testing.T) {
	e := newEnv(t)
	admin := newAdminUsecase(e)

	stats, err := admin.Statistics(context.Background())
	require.NoError(t, err)
	require.Equal(t, 6, stats.TotalUsers)
	require.Equal(t, 2, stats.Doctors)
	require.Equal(t, 2, stats.Patients)
	require.Equal(t, 1, stats.Pharmacists)
	require.Equal(t, 1, stats.Admins)
	require.Equal(t, 6, stats.ActiveUsers)
}

func TestAdminUsecase_SentimentFallbackIsStored(t *testing.T) {
	e := newEnv(t)
	admin := newAdminUsecase(e)
	ctx := context.Background()

	require.NoError(t, e.feedbacks.Create(ctx, entity.Feedback{ID: "FB1", PatientID: "P001", Rating: 1, Comments: "Long wait", Date: time.Now()}))
	require.NoError(t, e.feedbacks.Create(ctx, entity.Feedback{ID: "FB2", PatientID: "P002", Rating: 4, Date: time.Now()}))

	analysis, err := admin.AnalyzeSentiment(ctx, "FB1")
	require.NoError(t, err)
	require.Equal(t, "Negative", analysis.Sentiment)
	require.True(t, analysis.Fallback)
	require.True(t, analysis.ActionRequired)

	all, err := admin.ListSentiments(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	_, err = admin.AnalyzeSentiment(ctx, "FB404")
	require.ErrorIs(t, err, usecase.ErrFeedbackNotFound)

	stats, err := admin.FeedbackStats(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, stats.Total)
	require.Equal(t, 2.5, stats.AverageRating)
	require.Len(t, stats.Distribution, 5)
	require.Equal(t, 5, stats.Distribution[0].Rating)
}
