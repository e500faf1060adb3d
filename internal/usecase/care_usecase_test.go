package usecase_test

import (
	"context"
	"strings"
	"testing"

	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/service"
	"swasthya-portal/internal/usecase"

	"github.com/stretchr/testify/require"
)

func TestCareUsecase_SymptomCheckFallback(t *testing.T) {
	e := newEnv(t)
	care := usecase.NewCareUsecase(e.log, e.users, e.reports, e.notes, e.symptoms, e.assistant)

	check, err := care.CheckSymptoms(context.Background(), e.sessionFor(t, "P001"), &dto.SymptomCheckRequest{
		Symptoms: "fever and cough", Severity: "moderate", Duration: "2-weeks",
	})
	require.NoError(t, err)
	require.True(t, check.Fallback)
	require.Equal(t, service.TriageFallback("moderate", "2-weeks"), check.Analysis)
}

func TestCareUsecase_HealthReportDownload(t *testing.T) {
	e := newEnv(t)
	care := usecase.NewCareUsecase(e.log, e.users, e.reports, e.notes, e.symptoms, e.assistant)
	owner := e.sessionFor(t, "P001")
	ctx := context.Background()

	report, err := care.GenerateHealthReport(ctx, owner, &dto.HealthReportRequest{ConversationSummary: "Discussed headaches"})
	require.NoError(t, err)
	require.True(t, report.Fallback)

	filename, body, err := care.DownloadHealthReport(ctx, owner, report.ID)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(filename, "health-report-"))
	require.Contains(t, body, "Amit Patel")

	_, _, err = care.DownloadHealthReport(ctx, e.sessionFor(t, "P002"), report.ID)
	require.ErrorIs(t, err, usecase.ErrHealthReportNotFound)

	_, err = care.AddNote(ctx, owner, &dto.ConversationNoteRequest{Content: "Ask about MRI"})
	require.NoError(t, err)
	notes, err := care.Notes(ctx, owner)
	require.NoError(t, err)
	require.Len(t, notes, 1)
}
