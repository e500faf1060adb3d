package usecase

import (
	"context"
	"errors"
	"math"
	"sort"

	"swasthya-portal/internal/converter"
	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/domain/repository"
	"swasthya-portal/internal/service"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const recentFeedbackLimit = 10

var (
	ErrFeedbackNotFound     = errors.New("feedback not found")
	ErrCannotDeactivateSelf = errors.New("you cannot deactivate your own account")
)

type AdminUsecase interface {
	ListUsers(ctx context.Context, role, search string) (*dto.UserListResponse, error)
	GetUser(ctx context.Context, id string) (*dto.UserResponse, error)
	UpdateUser(ctx context.Context, actor *entity.Session, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error)
	ToggleUserStatus(ctx context.Context, actor *entity.Session, id string) (*dto.UserResponse, error)
	Statistics(ctx context.Context) (*dto.StatisticsResponse, error)
	FeedbackStats(ctx context.Context) (*dto.FeedbackStatsResponse, error)
	AnalyzeSentiment(ctx context.Context, feedbackID string) (*dto.SentimentResponse, error)
	ListSentiments(ctx context.Context) ([]dto.SentimentResponse, error)
}

type adminUsecase struct {
	log              *logrus.Logger
	userRepo         repository.UserRepository
	sessionRepo      repository.SessionRepository
	appointmentRepo  repository.AppointmentRepository
	consultationRepo repository.ConsultationRepository
	feedbackRepo     repository.FeedbackRepository
	sentimentRepo    repository.SentimentRepository
	assistant        service.AssistantService
	auditService     service.AuditService
}

func NewAdminUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	sessionRepo repository.SessionRepository,
	appointmentRepo repository.AppointmentRepository,
	consultationRepo repository.ConsultationRepository,
	feedbackRepo repository.FeedbackRepository,
	sentimentRepo repository.SentimentRepository,
	assistant service.AssistantService,
	auditService service.AuditService,
) AdminUsecase {
	return &adminUsecase{
		log:              log,
		userRepo:         userRepo,
		sessionRepo:      sessionRepo,
		appointmentRepo:  appointmentRepo,
		consultationRepo: consultationRepo,
		feedbackRepo:     feedbackRepo,
		sentimentRepo:    sentimentRepo,
		assistant:        assistant,
		auditService:     auditService,
	}
}

// ListUsers filters by role (empty for all) and by a case-insensitive match
// of search on name, email or id.
func (u *adminUsecase) ListUsers(ctx context.Context, role, search string) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, err
	}

	filtered := make([]entity.User, 0, len(users))
	for _, user := range users {
		if role != "" && string(user.Role) != role {
			continue
		}
		if search != "" && !containsFold(user.Name, search) && !containsFold(user.Email, search) && !containsFold(user.ID, search) {
			continue
		}
		filtered = append(filtered, user)
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(filtered),
		Total: len(filtered),
	}, nil
}

func (u *adminUsecase) GetUser(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", id, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return converter.UserToResponse(user), nil
}

func (u *adminUsecase) UpdateUser(ctx context.Context, actor *entity.Session, id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	var before entity.User
	updated, err := u.userRepo.Update(ctx, id, func(user *entity.User) error {
		if req.Email != "" && req.Email != user.Email {
			// Runs under the users key lock, so the check cannot race a register
			other, err := u.userRepo.FindByEmail(ctx, req.Email)
			if err != nil {
				return err
			}
			if other != nil && other.ID != user.ID {
				return repository.ErrDuplicateEmail
			}
		}

		before = user.WithoutPassword()
		userFields{
			Name:             req.Name,
			Email:            req.Email,
			Phone:            req.Phone,
			Specialization:   req.Specialization,
			Experience:       req.Experience,
			About:            req.About,
			LicenseNo:        req.LicenseNo,
			Age:              req.Age,
			BloodGroup:       req.BloodGroup,
			Gender:           req.Gender,
			MedicalHistory:   req.MedicalHistory,
			Allergies:        req.Allergies,
			EmergencyContact: req.EmergencyContact,
		}.applyTo(user)
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrUserNotFound
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user %s: %+v", id, err)
		return nil, err
	}

	if err := u.sessionRepo.RefreshUser(ctx, *updated); err != nil {
		u.log.Warnf("Failed to refresh sessions of %s: %+v", id, err)
	}

	safe := updated.WithoutPassword()
	u.auditService.LogUpdate(ctx, actor, entity.AuditActionUserUpdate, "user", id, before, safe)

	return converter.UserToResponse(&safe), nil
}

// ToggleUserStatus flips the active flag and nothing else. A deactivated
// user loses every open session.
func (u *adminUsecase) ToggleUserStatus(ctx context.Context, actor *entity.Session, id string) (*dto.UserResponse, error) {
	if actor.UserID() == id {
		return nil, ErrCannotDeactivateSelf
	}

	updated, err := u.userRepo.Update(ctx, id, func(user *entity.User) error {
		user.Active = !user.Active
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		u.log.Warnf("Failed to toggle status of user %s: %+v", id, err)
		return nil, err
	}

	if !updated.Active {
		if err := u.sessionRepo.DeleteAllForUser(ctx, id); err != nil {
			u.log.Warnf("Failed to revoke sessions of %s: %+v", id, err)
		}
	} else if err := u.sessionRepo.RefreshUser(ctx, *updated); err != nil {
		u.log.Warnf("Failed to refresh sessions of %s: %+v", id, err)
	}

	u.auditService.LogUpdate(ctx, actor, entity.AuditActionUserToggle, "user", id,
		map[string]bool{"active": !updated.Active},
		map[string]bool{"active": updated.Active},
	)

	safe := updated.WithoutPassword()
	return converter.UserToResponse(&safe), nil
}

func (u *adminUsecase) Statistics(ctx context.Context) (*dto.StatisticsResponse, error) {
	var (
		users         []entity.User
		appointments  []entity.Appointment
		consultations []entity.Consultation
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = u.userRepo.FindAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		appointments, err = u.appointmentRepo.FindAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		consultations, err = u.consultationRepo.FindAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load statistics: %+v", err)
		return nil, err
	}

	stats := &dto.StatisticsResponse{
		TotalUsers:         len(users),
		TotalAppointments:  len(appointments),
		TotalConsultations: len(consultations),
	}
	for _, user := range users {
		switch user.Role {
		case entity.RoleAdmin:
			stats.Admins++
		case entity.RoleDoctor:
			stats.Doctors++
		case entity.RolePatient:
			stats.Patients++
		case entity.RolePharmacist:
			stats.Pharmacists++
		}
		if user.Active {
			stats.ActiveUsers++
		}
	}
	return stats, nil
}

func (u *adminUsecase) FeedbackStats(ctx context.Context) (*dto.FeedbackStatsResponse, error) {
	feedbacks, err := u.feedbackRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find feedbacks: %+v", err)
		return nil, err
	}

	counts := make(map[int]int, 5)
	sum := 0
	for _, f := range feedbacks {
		counts[f.Rating]++
		sum += f.Rating
	}

	stats := &dto.FeedbackStatsResponse{
		Total:        len(feedbacks),
		Distribution: make([]dto.RatingCount, 0, 5),
	}
	if len(feedbacks) > 0 {
		stats.AverageRating = math.Round(float64(sum)/float64(len(feedbacks))*10) / 10
	}
	for rating := 5; rating >= 1; rating-- {
		stats.Distribution = append(stats.Distribution, dto.RatingCount{Rating: rating, Count: counts[rating]})
	}

	sort.SliceStable(feedbacks, func(i, j int) bool {
		return feedbacks[i].Date.After(feedbacks[j].Date)
	})
	if len(feedbacks) > recentFeedbackLimit {
		feedbacks = feedbacks[:recentFeedbackLimit]
	}
	stats.Recent = converter.FeedbacksToResponses(feedbacks)

	return stats, nil
}

// AnalyzeSentiment labels one feedback with the AI and stores the result
// keyed by feedback id. It never fails because of the AI service.
func (u *adminUsecase) AnalyzeSentiment(ctx context.Context, feedbackID string) (*dto.SentimentResponse, error) {
	feedback, err := u.feedbackRepo.FindByID(ctx, feedbackID)
	if err != nil {
		u.log.Warnf("Failed to find feedback %s: %+v", feedbackID, err)
		return nil, err
	}
	if feedback == nil {
		return nil, ErrFeedbackNotFound
	}

	analysis := u.assistant.AnalyzeSentiment(ctx, *feedback)
	if err := u.sentimentRepo.Save(ctx, analysis); err != nil {
		u.log.Warnf("Failed to save sentiment of %s: %+v", feedbackID, err)
		return nil, err
	}

	return converter.SentimentToResponse(&analysis), nil
}

func (u *adminUsecase) ListSentiments(ctx context.Context) ([]dto.SentimentResponse, error) {
	analyses, err := u.sentimentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find sentiment analyses: %+v", err)
		return nil, err
	}

	responses := make([]dto.SentimentResponse, 0, len(analyses))
	for _, analysis := range analyses {
		responses = append(responses, *converter.SentimentToResponse(&analysis))
	}
	sort.Slice(responses, func(i, j int) bool {
		return responses[i].AnalyzedAt.After(responses[j].AnalyzedAt)
	})
	return responses, nil
}
