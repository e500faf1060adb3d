package usecase

import (
	"context"
	"time"

	"swasthya-portal/internal/converter"
	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/domain/repository"
	"swasthya-portal/internal/service"

	"github.com/sirupsen/logrus"
)

type DoctorUsecase interface {
	Appointments(ctx context.Context, session *entity.Session) (*dto.AppointmentListResponse, error)
	AddAppointment(ctx context.Context, session *entity.Session, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	CompleteAppointment(ctx context.Context, session *entity.Session, id string) (*dto.AppointmentResponse, error)
	Patients(ctx context.Context, search string) (*dto.UserListResponse, error)
	Analytics(ctx context.Context, session *entity.Session) (*dto.DoctorAnalyticsResponse, error)
	SummarizeNotes(ctx context.Context, req *dto.SummarizeNotesRequest) (*dto.AIResultResponse, error)
}

type doctorUsecase struct {
	log              *logrus.Logger
	userRepo         repository.UserRepository
	appointmentRepo  repository.AppointmentRepository
	consultationRepo repository.ConsultationRepository
	assistant        service.AssistantService
	auditService     service.AuditService
}

func NewDoctorUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	consultationRepo repository.ConsultationRepository,
	assistant service.AssistantService,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		log:              log,
		userRepo:         userRepo,
		appointmentRepo:  appointmentRepo,
		consultationRepo: consultationRepo,
		assistant:        assistant,
		auditService:     auditService,
	}
}

// Appointments returns the doctor's own appointments sorted by date
func (u *doctorUsecase) Appointments(ctx context.Context, session *entity.Session) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	own := filterAppointments(appointments, func(a *entity.Appointment) bool {
		return a.DoctorID == session.UserID()
	})
	sortAppointments(own)

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(own),
		Total:        len(own),
	}, nil
}

func (u *doctorUsecase) AddAppointment(ctx context.Context, session *entity.Session, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	dateTime, err := parseAppointmentTime(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	patient, err := findUserWithRole(ctx, u.userRepo, req.PatientID, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	now := time.Now()
	appointment := entity.Appointment{
		ID:          entity.NewID(entity.PrefixAppointment),
		DoctorID:    session.UserID(),
		DoctorName:  session.User.Name,
		PatientID:   patient.ID,
		PatientName: patient.Name,
		DateTime:    dateTime,
		Type:        req.Type,
		Notes:       req.Notes,
		Status:      entity.AppointmentStatusScheduled,
		CreatedAt:   now,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, session, entity.AuditActionAppointmentCreate, "appointment", appointment.ID, appointment)

	return converter.AppointmentToResponse(&appointment), nil
}

func (u *doctorUsecase) CompleteAppointment(ctx context.Context, session *entity.Session, id string) (*dto.AppointmentResponse, error) {
	updated, err := transitionAppointment(ctx, u.appointmentRepo, id,
		func(a *entity.Appointment) bool { return a.DoctorID == session.UserID() },
		(*entity.Appointment).Complete,
	)
	if err != nil {
		if err != ErrAppointmentNotFound && err != ErrAppointmentNotScheduled {
			u.log.Warnf("Failed to complete appointment %s: %+v", id, err)
		}
		return nil, err
	}

	u.auditService.LogUpdate(ctx, session, entity.AuditActionAppointmentComplete, "appointment", id,
		map[string]string{"status": string(entity.AppointmentStatusScheduled)},
		map[string]string{"status": string(updated.Status)},
	)

	return converter.AppointmentToResponse(updated), nil
}

func (u *doctorUsecase) Patients(ctx context.Context, search string) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, err
	}

	patients := make([]entity.User, 0, len(users))
	for _, user := range users {
		if user.Role != entity.RolePatient {
			continue
		}
		if search != "" && !containsFold(user.Name, search) && !containsFold(user.Email, search) && !containsFold(user.ID, search) {
			continue
		}
		patients = append(patients, user)
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(patients),
		Total: len(patients),
	}, nil
}

func (u *doctorUsecase) Analytics(ctx context.Context, session *entity.Session) (*dto.DoctorAnalyticsResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}
	consultations, err := u.consultationRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find consultations: %+v", err)
		return nil, err
	}

	analytics := &dto.DoctorAnalyticsResponse{}
	patients := make(map[string]struct{})
	for _, a := range appointments {
		if a.DoctorID != session.UserID() {
			continue
		}
		patients[a.PatientID] = struct{}{}
		switch a.Status {
		case entity.AppointmentStatusScheduled:
			analytics.PendingAppointments++
		case entity.AppointmentStatusCompleted:
			analytics.CompletedAppointments++
		}
	}
	for _, c := range consultations {
		if c.DoctorID == session.UserID() {
			patients[c.PatientID] = struct{}{}
			analytics.TotalConsultations++
		}
	}
	analytics.TotalPatients = len(patients)

	return analytics, nil
}

func (u *doctorUsecase) SummarizeNotes(ctx context.Context, req *dto.SummarizeNotesRequest) (*dto.AIResultResponse, error) {
	result := u.assistant.SummarizeNotes(ctx, req.Notes)
	return &dto.AIResultResponse{Text: result.Text, Fallback: result.Fallback}, nil
}
