package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"swasthya-portal/internal/converter"
	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/domain/repository"
	"swasthya-portal/internal/service"

	"github.com/sirupsen/logrus"
)

var (
	ErrDocumentNotFound = errors.New("document not found")
)

type PatientUsecase interface {
	Appointments(ctx context.Context, session *entity.Session) (*dto.AppointmentListResponse, error)
	Doctors(ctx context.Context) (*dto.UserListResponse, error)
	ScheduleAppointment(ctx context.Context, session *entity.Session, req *dto.ScheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, session *entity.Session, id string) (*dto.AppointmentResponse, error)

	SubmitFeedback(ctx context.Context, session *entity.Session, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error)
	MyFeedback(ctx context.Context, session *entity.Session) ([]dto.FeedbackResponse, error)

	UploadDocument(ctx context.Context, session *entity.Session, req *dto.DocumentRequest) (*dto.DocumentResponse, error)
	Documents(ctx context.Context, session *entity.Session) ([]dto.DocumentResponse, error)
	DeleteDocument(ctx context.Context, session *entity.Session, id string) error

	Analytics(ctx context.Context, session *entity.Session) (*dto.PatientAnalyticsResponse, error)
}

type patientUsecase struct {
	log              *logrus.Logger
	userRepo         repository.UserRepository
	appointmentRepo  repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
	consultationRepo repository.ConsultationRepository
	feedbackRepo     repository.FeedbackRepository
	documentRepo     repository.DocumentRepository
	auditService     service.AuditService
}

func NewPatientUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	appointmentRepo repository.AppointmentRepository,
	prescriptionRepo repository.PrescriptionRepository,
	consultationRepo repository.ConsultationRepository,
	feedbackRepo repository.FeedbackRepository,
	documentRepo repository.DocumentRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		log:              log,
		userRepo:         userRepo,
		appointmentRepo:  appointmentRepo,
		prescriptionRepo: prescriptionRepo,
		consultationRepo: consultationRepo,
		feedbackRepo:     feedbackRepo,
		documentRepo:     documentRepo,
		auditService:     auditService,
	}
}

func (u *patientUsecase) Appointments(ctx context.Context, session *entity.Session) (*dto.AppointmentListResponse, error) {
	own, err := u.ownAppointments(ctx, session)
	if err != nil {
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(own),
		Total:        len(own),
	}, nil
}

// Doctors lists the active doctors a patient can book
func (u *patientUsecase) Doctors(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, err
	}

	doctors := make([]entity.User, 0)
	for _, user := range users {
		if user.Role == entity.RoleDoctor && user.Active {
			doctors = append(doctors, user)
		}
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(doctors),
		Total: len(doctors),
	}, nil
}

func (u *patientUsecase) ScheduleAppointment(ctx context.Context, session *entity.Session, req *dto.ScheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	dateTime, err := parseAppointmentTime(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	doctor, err := findUserWithRole(ctx, u.userRepo, req.DoctorID, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.Active {
		return nil, ErrDoctorNotFound
	}

	appointment := entity.Appointment{
		ID:          entity.NewID(entity.PrefixAppointment),
		DoctorID:    doctor.ID,
		DoctorName:  doctor.Name,
		PatientID:   session.UserID(),
		PatientName: session.User.Name,
		DateTime:    dateTime,
		Type:        req.Type,
		Reason:      req.Reason,
		Status:      entity.AppointmentStatusScheduled,
		CreatedAt:   time.Now(),
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, session, entity.AuditActionAppointmentCreate, "appointment", appointment.ID, appointment)

	return converter.AppointmentToResponse(&appointment), nil
}

// CancelAppointment cancels one of the patient's scheduled appointments. The
// record is kept with status cancelled.
func (u *patientUsecase) CancelAppointment(ctx context.Context, session *entity.Session, id string) (*dto.AppointmentResponse, error) {
	updated, err := transitionAppointment(ctx, u.appointmentRepo, id,
		func(a *entity.Appointment) bool { return a.PatientID == session.UserID() },
		(*entity.Appointment).Cancel,
	)
	if err != nil {
		if err != ErrAppointmentNotFound && err != ErrAppointmentNotScheduled {
			u.log.Warnf("Failed to cancel appointment %s: %+v", id, err)
		}
		return nil, err
	}

	u.auditService.LogUpdate(ctx, session, entity.AuditActionAppointmentCancel, "appointment", id,
		map[string]string{"status": string(entity.AppointmentStatusScheduled)},
		map[string]string{"status": string(updated.Status)},
	)

	return converter.AppointmentToResponse(updated), nil
}

func (u *patientUsecase) SubmitFeedback(ctx context.Context, session *entity.Session, req *dto.FeedbackRequest) (*dto.FeedbackResponse, error) {
	feedback := entity.Feedback{
		ID:          entity.NewID(entity.PrefixFeedback),
		PatientID:   session.UserID(),
		PatientName: session.User.Name,
		Type:        entity.FeedbackType(req.Type),
		Rating:      req.Rating,
		Comments:    req.Comments,
		Date:        time.Now(),
	}

	if err := u.feedbackRepo.Create(ctx, feedback); err != nil {
		u.log.Warnf("Failed to create feedback: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, session, entity.AuditActionFeedbackSubmit, "feedback", feedback.ID, feedback)

	return converter.FeedbackToResponse(&feedback), nil
}

func (u *patientUsecase) MyFeedback(ctx context.Context, session *entity.Session) ([]dto.FeedbackResponse, error) {
	feedbacks, err := u.feedbackRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find feedbacks: %+v", err)
		return nil, err
	}

	own := make([]entity.Feedback, 0)
	for _, f := range feedbacks {
		if f.PatientID == session.UserID() {
			own = append(own, f)
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].Date.After(own[j].Date) })

	return converter.FeedbacksToResponses(own), nil
}

func (u *patientUsecase) UploadDocument(ctx context.Context, session *entity.Session, req *dto.DocumentRequest) (*dto.DocumentResponse, error) {
	document := entity.Document{
		ID:         entity.NewID(entity.PrefixDocument),
		PatientID:  session.UserID(),
		Name:       req.Name,
		Category:   req.Category,
		Size:       req.Size,
		MimeType:   req.MimeType,
		Notes:      req.Notes,
		UploadedAt: time.Now(),
	}

	if err := u.documentRepo.Create(ctx, document); err != nil {
		u.log.Warnf("Failed to create document: %+v", err)
		return nil, err
	}

	return converter.DocumentToResponse(&document), nil
}

func (u *patientUsecase) Documents(ctx context.Context, session *entity.Session) ([]dto.DocumentResponse, error) {
	documents, err := u.documentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find documents: %+v", err)
		return nil, err
	}

	own := make([]entity.Document, 0)
	for _, d := range documents {
		if d.PatientID == session.UserID() {
			own = append(own, d)
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].UploadedAt.After(own[j].UploadedAt) })

	return converter.DocumentsToResponses(own), nil
}

// DeleteDocument removes one of the patient's own documents
func (u *patientUsecase) DeleteDocument(ctx context.Context, session *entity.Session, id string) error {
	document, err := u.documentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find document %s: %+v", id, err)
		return err
	}
	if document == nil || document.PatientID != session.UserID() {
		return ErrDocumentNotFound
	}

	if err := u.documentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrDocumentNotFound
		}
		u.log.Warnf("Failed to delete document %s: %+v", id, err)
		return err
	}
	return nil
}

func (u *patientUsecase) Analytics(ctx context.Context, session *entity.Session) (*dto.PatientAnalyticsResponse, error) {
	own, err := u.ownAppointments(ctx, session)
	if err != nil {
		return nil, err
	}
	prescriptions, err := u.prescriptionRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions: %+v", err)
		return nil, err
	}
	consultations, err := u.consultationRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find consultations: %+v", err)
		return nil, err
	}

	now := time.Now()
	analytics := &dto.PatientAnalyticsResponse{TotalAppointments: len(own)}

	// own is sorted by date, so the first future one is the next appointment
	for i := range own {
		a := &own[i]
		switch a.Status {
		case entity.AppointmentStatusCompleted:
			analytics.CompletedAppointments++
			if analytics.LastCheckup == nil || a.DateTime.After(*analytics.LastCheckup) {
				last := a.DateTime
				analytics.LastCheckup = &last
			}
		case entity.AppointmentStatusScheduled:
			if a.DateTime.After(now) {
				analytics.UpcomingAppointments++
				if analytics.NextAppointment == nil {
					analytics.NextAppointment = converter.AppointmentToResponse(a)
				}
			}
		}
	}

	for _, p := range prescriptions {
		if p.PatientID == session.UserID() {
			analytics.TotalPrescriptions++
		}
	}
	for _, c := range consultations {
		if c.PatientID == session.UserID() {
			analytics.TotalConsultations++
		}
	}

	return analytics, nil
}

func (u *patientUsecase) ownAppointments(ctx context.Context, session *entity.Session) ([]entity.Appointment, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	own := filterAppointments(appointments, func(a *entity.Appointment) bool {
		return a.PatientID == session.UserID()
	})
	sortAppointments(own)
	return own, nil
}
