package usecase

import (
	"context"
	"errors"
	"net/url"
	"sort"
	"strings"
	"time"

	"swasthya-portal/config"
	"swasthya-portal/internal/converter"
	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/domain/repository"
	"swasthya-portal/internal/service"

	"github.com/sirupsen/logrus"
)

const voiceAgentBaseURL = "https://elevenlabs.io/app/talk-to"

var (
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrConsultationEnded    = errors.New("consultation already ended")
	ErrInvalidCallState     = errors.New("consultation is not waiting for media")
	ErrInvalidPeer          = errors.New("consultation peer must be a doctor for patients and a patient for doctors")
	ErrNotParticipant       = errors.New("not a participant of this consultation")
)

type ConsultationUsecase interface {
	Config() *dto.VideoConfigResponse
	Start(ctx context.Context, session *entity.Session, req *dto.StartConsultationRequest) (*dto.ConsultationResponse, error)
	ReportMedia(ctx context.Context, session *entity.Session, id string, req *dto.MediaReportRequest) (*dto.ConsultationResponse, error)
	SetControls(ctx context.Context, session *entity.Session, id string, req *dto.CallControlsRequest) (*dto.ConsultationResponse, error)
	End(ctx context.Context, session *entity.Session, id string) (*dto.ConsultationResponse, error)
	History(ctx context.Context, session *entity.Session) ([]dto.ConsultationResponse, error)
}

type consultationUsecase struct {
	log              *logrus.Logger
	userRepo         repository.UserRepository
	consultationRepo repository.ConsultationRepository
	auditService     service.AuditService
	iceServers       []string
	voiceAgentURL    string
}

func NewConsultationUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	consultationRepo repository.ConsultationRepository,
	auditService service.AuditService,
	videoConfig config.VideoConfig,
) ConsultationUsecase {
	return &consultationUsecase{
		log:              log,
		userRepo:         userRepo,
		consultationRepo: consultationRepo,
		auditService:     auditService,
		iceServers:       videoConfig.ICEServers,
		voiceAgentURL:    VoiceAgentURL(videoConfig.VoiceAgentID),
	}
}

// VoiceAgentURL builds the voice assistant link. agent may be a bare agent id
// or a full URL carrying one.
func VoiceAgentURL(agent string) string {
	agent = strings.TrimSpace(agent)
	if agent == "" {
		agent = config.DefaultVoiceAgentID
	}

	if u, err := url.Parse(agent); err == nil && u.Scheme != "" && u.Host != "" {
		if id := u.Query().Get("agent_id"); id != "" {
			agent = id
		} else if segment := strings.Trim(u.Path, "/"); segment != "" {
			agent = segment[strings.LastIndex(segment, "/")+1:]
		}
	}

	return voiceAgentBaseURL + "?" + url.Values{"agent_id": {agent}}.Encode()
}

func (u *consultationUsecase) Config() *dto.VideoConfigResponse {
	servers := make([]string, len(u.iceServers))
	copy(servers, u.iceServers)

	return &dto.VideoConfigResponse{
		ICEServers:    servers,
		VoiceAgentURL: u.voiceAgentURL,
	}
}

func (u *consultationUsecase) Start(ctx context.Context, session *entity.Session, req *dto.StartConsultationRequest) (*dto.ConsultationResponse, error) {
	var peerRole entity.Role
	switch session.Role() {
	case entity.RolePatient:
		peerRole = entity.RoleDoctor
	case entity.RoleDoctor:
		peerRole = entity.RolePatient
	default:
		return nil, ErrInvalidPeer
	}

	peer, err := findUserWithRole(ctx, u.userRepo, req.PeerID, peerRole)
	if err != nil {
		u.log.Warnf("Failed to find consultation peer %s: %+v", req.PeerID, err)
		return nil, err
	}
	if peer == nil {
		return nil, ErrInvalidPeer
	}

	mode := entity.CallMode(req.Mode)
	if mode == "" {
		mode = entity.CallModeWebRTC
	}

	consultation := entity.Consultation{
		ID:            entity.NewID(entity.PrefixConsultation),
		Mode:          mode,
		State:         entity.CallStateRequestingMedia,
		MicEnabled:    true,
		CameraEnabled: true,
		StartTime:     time.Now(),
		Status:        entity.ConsultationStatusActive,
	}
	if session.Role() == entity.RoleDoctor {
		consultation.DoctorID, consultation.DoctorName = session.UserID(), session.User.Name
		consultation.PatientID, consultation.PatientName = peer.ID, peer.Name
	} else {
		consultation.DoctorID, consultation.DoctorName = peer.ID, peer.Name
		consultation.PatientID, consultation.PatientName = session.UserID(), session.User.Name
	}

	if err := u.consultationRepo.Create(ctx, consultation); err != nil {
		u.log.Warnf("Failed to create consultation: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, session, entity.AuditActionConsultationStart, "consultation", consultation.ID, map[string]string{
		"doctor_id":  consultation.DoctorID,
		"patient_id": consultation.PatientID,
		"mode":       string(consultation.Mode),
	})

	return converter.ConsultationToResponse(&consultation), nil
}

// ReportMedia records the outcome of the camera/microphone request
func (u *consultationUsecase) ReportMedia(ctx context.Context, session *entity.Session, id string, req *dto.MediaReportRequest) (*dto.ConsultationResponse, error) {
	var requested entity.CallMode
	updated, err := u.mutate(ctx, session, id, func(c *entity.Consultation) error {
		if c.State != entity.CallStateRequestingMedia {
			return ErrInvalidCallState
		}
		requested = c.Mode
		c.MediaResult(req.Granted)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if requested != updated.Mode {
		u.log.Infof("Consultation %s media denied, running in simulation mode", id)
	}
	return converter.ConsultationToResponse(updated), nil
}

func (u *consultationUsecase) SetControls(ctx context.Context, session *entity.Session, id string, req *dto.CallControlsRequest) (*dto.ConsultationResponse, error) {
	updated, err := u.mutate(ctx, session, id, func(c *entity.Consultation) error {
		if req.Mic != nil {
			c.MicEnabled = *req.Mic
		}
		if req.Camera != nil {
			c.CameraEnabled = *req.Camera
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return converter.ConsultationToResponse(updated), nil
}

func (u *consultationUsecase) End(ctx context.Context, session *entity.Session, id string) (*dto.ConsultationResponse, error) {
	updated, err := u.mutate(ctx, session, id, func(c *entity.Consultation) error {
		c.End(time.Now())
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.auditService.LogUpdate(ctx, session, entity.AuditActionConsultationEnd, "consultation", id,
		map[string]string{"status": string(entity.ConsultationStatusActive)},
		map[string]string{"status": string(updated.Status), "duration": updated.Duration()},
	)
	return converter.ConsultationToResponse(updated), nil
}

// History returns the consultations the session user took part in, newest first
func (u *consultationUsecase) History(ctx context.Context, session *entity.Session) ([]dto.ConsultationResponse, error) {
	consultations, err := u.consultationRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find consultations: %+v", err)
		return nil, err
	}

	own := make([]entity.Consultation, 0)
	for i := range consultations {
		if consultations[i].IsParticipant(session.UserID()) {
			own = append(own, consultations[i])
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].StartTime.After(own[j].StartTime) })

	return converter.ConsultationsToResponses(own), nil
}

// mutate applies change to a consultation the session user takes part in.
// Ended consultations cannot change.
func (u *consultationUsecase) mutate(ctx context.Context, session *entity.Session, id string, change func(*entity.Consultation) error) (*entity.Consultation, error) {
	updated, err := u.consultationRepo.Update(ctx, id, func(c *entity.Consultation) error {
		if !c.IsParticipant(session.UserID()) {
			return ErrNotParticipant
		}
		if c.IsEnded() {
			return ErrConsultationEnded
		}
		return change(c)
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrConsultationNotFound
		case errors.Is(err, ErrNotParticipant), errors.Is(err, ErrConsultationEnded), errors.Is(err, ErrInvalidCallState):
			return nil, err
		}
		u.log.Warnf("Failed to update consultation %s: %+v", id, err)
		return nil, err
	}
	return updated, nil
}
