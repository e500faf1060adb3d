package usecase_test

import (
	"context"
	"testing"

	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/usecase"

	"github.com/stretchr/testify/require"
)

func newPatientUsecase(e *env) usecase.PatientUsecase {
	return usecase.NewPatientUsecase(e.log, e.users, e.appointments, e.prescriptions, e.consultations, e.feedbacks, e.documents, e.audit)
}

func newDoctorUsecase(e *env) usecase.DoctorUsecase {
	return usecase.NewDoctorUsecase(e.log, e.users, e.appointments, e.consultations, e.assistant, e.audit)
}

func TestPatientUsecase_CancelKeepsAppointment(t *testing.T) {
	e := newEnv(t)
	patients := newPatientUsecase(e)
	session := e.sessionFor(t, "P001")
	ctx := context.Background()

	booked, err := patients.ScheduleAppointment(ctx, session, &dto.ScheduleAppointmentRequest{
		DoctorID: "D001", Date: "2030-03-10", Time: "10:30", Type: "consultation", Reason: "chest pain",
	})
	require.NoError(t, err)
	require.Equal(t, "scheduled", booked.Status)
	require.Equal(t, "Dr. Rajesh Kumar", booked.DoctorName)

	cancelled, err := patients.CancelAppointment(ctx, session, booked.ID)
	require.NoError(t, err)
	require.Equal(t, "cancelled", cancelled.Status)

	list, err := patients.Appointments(ctx, session)
	require.NoError(t, err)
	require.Equal(t, 1, list.Total)
	require.Equal(t, "cancelled", list.Appointments[0].Status)

	_, err = patients.CancelAppointment(ctx, session, booked.ID)
	require.ErrorIs(t, err, usecase.ErrAppointmentNotScheduled)
}

func TestPatientUsecase_AppointmentsOfOthersAreHidden(t *testing.T) {
	e := newEnv(t)
	patients := newPatientUsecase(e)
	ctx := context.Background()

	booked, err := patients.ScheduleAppointment(ctx, e.sessionFor(t, "P001"), &dto.ScheduleAppointmentRequest{
		DoctorID: "D002", Date: "2030-03-10", Time: "09:00", Type: "follow-up",
	})
	require.NoError(t, err)

	_, err = patients.CancelAppointment(ctx, e.sessionFor(t, "P002"), booked.ID)
	require.ErrorIs(t, err, usecase.ErrAppointmentNotFound)

	_, err = patients.ScheduleAppointment(ctx, e.sessionFor(t, "P001"), &dto.ScheduleAppointmentRequest{
		DoctorID: "P002", Date: "2030-03-10", Time: "09:00", Type: "follow-up",
	})
	require.ErrorIs(t, err, usecase.ErrDoctorNotFound)

	_, err = patients.ScheduleAppointment(ctx, e.sessionFor(t, "P001"), &dto.ScheduleAppointmentRequest{
		DoctorID: "D001", Date: "2030-02-30", Time: "09:00", Type: "follow-up",
	})
	require.ErrorIs(t, err, usecase.ErrInvalidDateTime)
}

func TestDoctorUsecase_CompleteAppointment(t *testing.T) {
	e := newEnv(t)
	patients := newPatientUsecase(e)
	doctors := newDoctorUsecase(e)
	ctx := context.Background()

	booked, err := patients.ScheduleAppointment(ctx, e.sessionFor(t, "P002"), &dto.ScheduleAppointmentRequest{
		DoctorID: "D002", Date: "2030-05-01", Time: "14:00", Type: "checkup",
	})
	require.NoError(t, err)

	_, err = doctors.CompleteAppointment(ctx, e.sessionFor(t, "D001"), booked.ID)
	require.ErrorIs(t, err, usecase.ErrAppointmentNotFound)

	done, err := doctors.CompleteAppointment(ctx, e.sessionFor(t, "D002"), booked.ID)
	require.NoError(t, err)
	require.Equal(t, "completed", done.Status)
	require.Equal(t, "success", done.Badge)

	summary, err := doctors.SummarizeNotes(ctx, &dto.SummarizeNotesRequest{Notes: "BP 140/90"})
	require.NoError(t, err)
	require.True(t, summary.Fallback)
}

func TestPatientUsecase_Documents(t *testing.T) {
	e := newEnv(t)
	patients := newPatientUsecase(e)
	owner := e.sessionFor(t, "P001")
	ctx := context.Background()

	doc, err := patients.UploadDocument(ctx, owner, &dto.DocumentRequest{Name: "blood-test.pdf", Category: "lab", Size: 2048})
	require.NoError(t, err)

	require.ErrorIs(t, patients.DeleteDocument(ctx, e.sessionFor(t, "P002"), doc.ID), usecase.ErrDocumentNotFound)
	require.NoError(t, patients.DeleteDocument(ctx, owner, doc.ID))

	docs, err := patients.Documents(ctx, owner)
	require.NoError(t, err)
	require.Empty(t, docs)
}
