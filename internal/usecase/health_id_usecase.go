package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"swasthya-portal/internal/converter"
	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrInvalidHealthID = errors.New("invalid health id")
)

// HealthIDUsecase manages the digital health card and the emergency data
// shown from it.
type HealthIDUsecase interface {
	GetOrCreate(ctx context.Context, session *entity.Session) (*dto.HealthIDResponse, error)
	Scan(ctx context.Context, qrCode string) (*dto.HealthIDPayloadResponse, error)
	Emergency(ctx context.Context, session *entity.Session) (*dto.EmergencyResponse, error)
}

type healthIDUsecase struct {
	log          *logrus.Logger
	userRepo     repository.UserRepository
	healthIDRepo repository.HealthIDRepository
}

func NewHealthIDUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	healthIDRepo repository.HealthIDRepository,
) HealthIDUsecase {
	return &healthIDUsecase{
		log:          log,
		userRepo:     userRepo,
		healthIDRepo: healthIDRepo,
	}
}

func (u *healthIDUsecase) GetOrCreate(ctx context.Context, session *entity.Session) (*dto.HealthIDResponse, error) {
	healthID, _, err := u.getOrCreate(ctx, session)
	if err != nil {
		return nil, err
	}
	return converter.HealthIDToResponse(healthID), nil
}

// Scan decodes a QR payload back into the card data
func (u *healthIDUsecase) Scan(ctx context.Context, qrCode string) (*dto.HealthIDPayloadResponse, error) {
	payload, err := DecodeHealthIDPayload(qrCode)
	if err != nil {
		u.log.Debugf("Rejected health id scan: %v", err)
		return nil, ErrInvalidHealthID
	}
	return converter.HealthIDPayloadToResponse(payload), nil
}

func (u *healthIDUsecase) Emergency(ctx context.Context, session *entity.Session) (*dto.EmergencyResponse, error) {
	healthID, user, err := u.getOrCreate(ctx, session)
	if err != nil {
		return nil, err
	}

	return &dto.EmergencyResponse{
		HealthID:         healthID.HID,
		QRCode:           healthID.QRCode,
		Name:             user.Name,
		Age:              user.Age,
		Phone:            user.Phone,
		BloodGroup:       user.BloodGroup,
		Allergies:        user.Allergies,
		MedicalHistory:   user.MedicalHistory,
		EmergencyContact: user.EmergencyContact,
	}, nil
}

// EncodeHealthIDPayload renders the QR content: base64 of the payload JSON
func EncodeHealthIDPayload(payload *entity.HealthIDPayload) (string, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

func DecodeHealthIDPayload(qrCode string) (*entity.HealthIDPayload, error) {
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(qrCode))
	if err != nil {
		return nil, err
	}

	var payload entity.HealthIDPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, err
	}
	if payload.HID == "" {
		return nil, ErrInvalidHealthID
	}
	return &payload, nil
}

func (u *healthIDUsecase) getOrCreate(ctx context.Context, session *entity.Session) (*entity.HealthID, *entity.User, error) {
	user, err := u.userRepo.FindByID(ctx, session.UserID())
	if err != nil {
		u.log.Warnf("Failed to find user %s: %+v", session.UserID(), err)
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	existing, err := u.healthIDRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		u.log.Warnf("Failed to find health id of %s: %+v", user.ID, err)
		return nil, nil, err
	}
	if existing != nil {
		return existing, user, nil
	}

	hid := entity.NewID(entity.PrefixHealthID)
	qrCode, err := EncodeHealthIDPayload(&entity.HealthIDPayload{
		HID:       hid,
		Name:      user.Name,
		Age:       user.Age,
		BloodType: user.BloodGroup,
		Allergies: user.Allergies,
		Emergency: user.EmergencyContact,
	})
	if err != nil {
		u.log.Warnf("Failed to encode health id payload: %+v", err)
		return nil, nil, err
	}

	// A concurrent request may have created one already; keep whichever won
	stored, err := u.healthIDRepo.SaveIfAbsent(ctx, &entity.HealthID{
		HID:       hid,
		UserID:    user.ID,
		QRCode:    qrCode,
		CreatedAt: time.Now(),
	})
	if err != nil {
		u.log.Warnf("Failed to save health id of %s: %+v", user.ID, err)
		return nil, nil, err
	}
	return stored, user, nil
}
