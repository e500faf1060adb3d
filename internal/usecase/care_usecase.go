package usecase

import (
	"context"
	"errors"
	"fmt"
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
	ErrHealthReportNotFound = errors.New("health report not found")
)

// CareUsecase holds the patient self-care tools: AI health reports,
// conversation notes and the symptom checker.
type CareUsecase interface {
	GenerateHealthReport(ctx context.Context, session *entity.Session, req *dto.HealthReportRequest) (*dto.HealthReportResponse, error)
	HealthReports(ctx context.Context, session *entity.Session) ([]dto.HealthReportResponse, error)
	DownloadHealthReport(ctx context.Context, session *entity.Session, id string) (filename string, body string, err error)
	AddNote(ctx context.Context, session *entity.Session, req *dto.ConversationNoteRequest) (*dto.ConversationNoteResponse, error)
	Notes(ctx context.Context, session *entity.Session) ([]dto.ConversationNoteResponse, error)
	CheckSymptoms(ctx context.Context, session *entity.Session, req *dto.SymptomCheckRequest) (*dto.SymptomCheckResponse, error)
}

type careUsecase struct {
	log              *logrus.Logger
	userRepo         repository.UserRepository
	healthReportRepo repository.HealthReportRepository
	noteRepo         repository.ConversationNoteRepository
	symptomCheckRepo repository.SymptomCheckRepository
	assistant        service.AssistantService
}

func NewCareUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	healthReportRepo repository.HealthReportRepository,
	noteRepo repository.ConversationNoteRepository,
	symptomCheckRepo repository.SymptomCheckRepository,
	assistant service.AssistantService,
) CareUsecase {
	return &careUsecase{
		log:              log,
		userRepo:         userRepo,
		healthReportRepo: healthReportRepo,
		noteRepo:         noteRepo,
		symptomCheckRepo: symptomCheckRepo,
		assistant:        assistant,
	}
}

func (u *careUsecase) GenerateHealthReport(ctx context.Context, session *entity.Session, req *dto.HealthReportRequest) (*dto.HealthReportResponse, error) {
	patient, err := u.currentUser(ctx, session)
	if err != nil {
		return nil, err
	}

	result := u.assistant.HealthReport(ctx, *patient, req.ConversationSummary)
	report := entity.HealthReport{
		ID:                  entity.NewID(entity.PrefixHealthReport),
		PatientID:           session.UserID(),
		ConversationSummary: req.ConversationSummary,
		Content:             result.Text,
		Fallback:            result.Fallback,
		GeneratedAt:         time.Now(),
	}

	if err := u.healthReportRepo.Create(ctx, report); err != nil {
		u.log.Warnf("Failed to save health report: %+v", err)
		return nil, err
	}

	return converter.HealthReportToResponse(&report), nil
}

// HealthReports lists the patient's reports, newest first
func (u *careUsecase) HealthReports(ctx context.Context, session *entity.Session) ([]dto.HealthReportResponse, error) {
	reports, err := u.healthReportRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find health reports: %+v", err)
		return nil, err
	}

	own := make([]entity.HealthReport, 0)
	for _, r := range reports {
		if r.PatientID == session.UserID() {
			own = append(own, r)
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].GeneratedAt.After(own[j].GeneratedAt) })

	return converter.HealthReportsToResponses(own), nil
}

func (u *careUsecase) DownloadHealthReport(ctx context.Context, session *entity.Session, id string) (string, string, error) {
	report, err := u.healthReportRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find health report %s: %+v", id, err)
		return "", "", err
	}
	if report == nil || report.PatientID != session.UserID() {
		return "", "", ErrHealthReportNotFound
	}

	patient, err := u.currentUser(ctx, session)
	if err != nil {
		return "", "", err
	}

	filename := fmt.Sprintf("health-report-%s.txt", report.GeneratedAt.Format("2006-01-02"))
	return filename, converter.HealthReportText(patient, report), nil
}

func (u *careUsecase) AddNote(ctx context.Context, session *entity.Session, req *dto.ConversationNoteRequest) (*dto.ConversationNoteResponse, error) {
	note := entity.ConversationNote{
		ID:        entity.NewID(entity.PrefixNote),
		PatientID: session.UserID(),
		Title:     req.Title,
		Content:   req.Content,
		CreatedAt: time.Now(),
	}

	if err := u.noteRepo.Create(ctx, note); err != nil {
		u.log.Warnf("Failed to save conversation note: %+v", err)
		return nil, err
	}

	return &converter.ConversationNotesToResponses([]entity.ConversationNote{note})[0], nil
}

func (u *careUsecase) Notes(ctx context.Context, session *entity.Session) ([]dto.ConversationNoteResponse, error) {
	notes, err := u.noteRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find conversation notes: %+v", err)
		return nil, err
	}

	own := make([]entity.ConversationNote, 0)
	for _, n := range notes {
		if n.PatientID == session.UserID() {
			own = append(own, n)
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].CreatedAt.After(own[j].CreatedAt) })

	return converter.ConversationNotesToResponses(own), nil
}

// CheckSymptoms runs the AI symptom checker. When the AI is unavailable the
// saved result carries the local triage advice and the fallback flag.
func (u *careUsecase) CheckSymptoms(ctx context.Context, session *entity.Session, req *dto.SymptomCheckRequest) (*dto.SymptomCheckResponse, error) {
	patient, err := u.currentUser(ctx, session)
	if err != nil {
		return nil, err
	}

	result := u.assistant.TriageSymptoms(ctx, *patient, req.Symptoms, req.Severity, req.Duration)
	check := entity.SymptomCheck{
		ID:        entity.NewID(entity.PrefixSymptomCheck),
		PatientID: session.UserID(),
		Symptoms:  req.Symptoms,
		Severity:  req.Severity,
		Duration:  req.Duration,
		Analysis:  result.Text,
		Fallback:  result.Fallback,
		CheckedAt: time.Now(),
	}

	if err := u.symptomCheckRepo.Create(ctx, check); err != nil {
		u.log.Warnf("Failed to save symptom check: %+v", err)
		return nil, err
	}

	return converter.SymptomCheckToResponse(&check), nil
}

// currentUser reloads the session user so prompts see the latest profile
func (u *careUsecase) currentUser(ctx context.Context, session *entity.Session) (*entity.User, error) {
	user, err := u.userRepo.FindByID(ctx, session.UserID())
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", session.UserID(), err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
