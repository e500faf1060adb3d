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
	"swasthya-portal/pkg/signature"

	"github.com/sirupsen/logrus"
)

var (
	ErrPrescriptionNotFound = errors.New("prescription not found")
)

type PrescriptionUsecase interface {
	Issue(ctx context.Context, session *entity.Session, req *dto.IssuePrescriptionRequest) (*dto.PrescriptionResponse, error)
	DoctorPrescriptions(ctx context.Context, session *entity.Session) ([]dto.PrescriptionResponse, error)
	PatientPrescriptions(ctx context.Context, session *entity.Session) ([]dto.PrescriptionResponse, error)
	All(ctx context.Context) ([]dto.PrescriptionResponse, error)
	Verify(ctx context.Context, id string) (*dto.PrescriptionVerificationResponse, error)
	SafetyCheck(ctx context.Context, session *entity.Session, prescriptionID string) (*dto.SafetyCheckResponse, error)
}

type prescriptionUsecase struct {
	log              *logrus.Logger
	userRepo         repository.UserRepository
	prescriptionRepo repository.PrescriptionRepository
	safetyCheckRepo  repository.SafetyCheckRepository
	signer           *signature.Signer
	assistant        service.AssistantService
	auditService     service.AuditService
}

func NewPrescriptionUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	prescriptionRepo repository.PrescriptionRepository,
	safetyCheckRepo repository.SafetyCheckRepository,
	signer *signature.Signer,
	assistant service.AssistantService,
	auditService service.AuditService,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		log:              log,
		userRepo:         userRepo,
		prescriptionRepo: prescriptionRepo,
		safetyCheckRepo:  safetyCheckRepo,
		signer:           signer,
		assistant:        assistant,
		auditService:     auditService,
	}
}

// Issue stores a new prescription sealed with a digest and an HMAC signature
func (u *prescriptionUsecase) Issue(ctx context.Context, session *entity.Session, req *dto.IssuePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	patient, err := findUserWithRole(ctx, u.userRepo, req.PatientID, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	prescription := entity.Prescription{
		ID:          entity.NewID(entity.PrefixPrescription),
		PatientID:   patient.ID,
		PatientName: patient.Name,
		DoctorID:    session.UserID(),
		DoctorName:  session.User.Name,
		Medicines:   converter.MedicineLinesFromRequest(req.Medicines),
		Notes:       req.Notes,
		IssuedAt:    time.Now().UTC().Truncate(time.Second),
	}

	prescription.Digest, prescription.Signature, err = u.signer.Sign(prescription.SignedContent())
	if err != nil {
		u.log.Warnf("Failed to sign prescription: %+v", err)
		return nil, err
	}

	if err := u.prescriptionRepo.Create(ctx, prescription); err != nil {
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, session, entity.AuditActionPrescriptionIssue, "prescription", prescription.ID, map[string]string{
		"patient_id": prescription.PatientID,
		"hash":       prescription.Digest,
	})

	return converter.PrescriptionToResponse(&prescription), nil
}

func (u *prescriptionUsecase) DoctorPrescriptions(ctx context.Context, session *entity.Session) ([]dto.PrescriptionResponse, error) {
	return u.list(ctx, func(p *entity.Prescription) bool { return p.DoctorID == session.UserID() })
}

func (u *prescriptionUsecase) PatientPrescriptions(ctx context.Context, session *entity.Session) ([]dto.PrescriptionResponse, error) {
	return u.list(ctx, func(p *entity.Prescription) bool { return p.PatientID == session.UserID() })
}

// All is the pharmacist view of every prescription
func (u *prescriptionUsecase) All(ctx context.Context) ([]dto.PrescriptionResponse, error) {
	return u.list(ctx, func(*entity.Prescription) bool { return true })
}

// Verify reports whether a prescription still matches its digest and
// signature. Unsigned prescriptions are reported as not valid.
func (u *prescriptionUsecase) Verify(ctx context.Context, id string) (*dto.PrescriptionVerificationResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find prescription %s: %+v", id, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}

	result := &dto.PrescriptionVerificationResponse{
		PrescriptionID: prescription.ID,
		Signed:         prescription.Signature != "",
		Hash:           prescription.Digest,
	}
	if !result.Signed {
		return result, nil
	}

	result.Valid, err = u.signer.Verify(prescription.SignedContent(), prescription.Digest, prescription.Signature)
	if err != nil {
		u.log.Warnf("Failed to verify prescription %s: %+v", id, err)
		return nil, err
	}
	if !result.Valid {
		u.log.Warnf("Prescription %s failed signature verification", id)
	}
	return result, nil
}

// SafetyCheck asks the AI to review one of the patient's prescriptions. The
// result, or the fallback notice, is saved.
func (u *prescriptionUsecase) SafetyCheck(ctx context.Context, session *entity.Session, prescriptionID string) (*dto.SafetyCheckResponse, error) {
	prescription, err := u.prescriptionRepo.FindByID(ctx, prescriptionID)
	if err != nil {
		u.log.Warnf("Failed to find prescription %s: %+v", prescriptionID, err)
		return nil, err
	}
	if prescription == nil || prescription.PatientID != session.UserID() {
		return nil, ErrPrescriptionNotFound
	}

	patient, err := u.userRepo.FindByID(ctx, session.UserID())
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", session.UserID(), err)
		return nil, err
	}
	if patient == nil {
		patient = &session.User
	}

	result := u.assistant.PrescriptionSafety(ctx, *patient, *prescription)
	check := entity.SafetyCheck{
		ID:             entity.NewID(entity.PrefixSafetyCheck),
		PatientID:      session.UserID(),
		PrescriptionID: prescription.ID,
		Analysis:       result.Text,
		Fallback:       result.Fallback,
		CheckedAt:      time.Now(),
	}
	if err := u.safetyCheckRepo.Create(ctx, check); err != nil {
		u.log.Warnf("Failed to save safety check: %+v", err)
		return nil, err
	}

	return converter.SafetyCheckToResponse(&check), nil
}

func (u *prescriptionUsecase) list(ctx context.Context, keep func(*entity.Prescription) bool) ([]dto.PrescriptionResponse, error) {
	prescriptions, err := u.prescriptionRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find prescriptions: %+v", err)
		return nil, err
	}

	out := make([]entity.Prescription, 0, len(prescriptions))
	for i := range prescriptions {
		if keep(&prescriptions[i]) {
			out = append(out, prescriptions[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].IssuedAt.After(out[j].IssuedAt) })

	return converter.PrescriptionsToResponses(out), nil
}
