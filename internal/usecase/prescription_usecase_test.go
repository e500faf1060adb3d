package usecase_test

import (
	"context"
	"testing"

	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/usecase"
	"swasthya-portal/pkg/signature"

	"github.com/stretchr/testify/require"
)

func newPrescriptionUsecase(t *testing.T, e *env) usecase.PrescriptionUsecase {
	signer, err := signature.NewSigner("rx-test-secret")
	require.NoError(t, err)
	return usecase.NewPrescriptionUsecase(e.log, e.users, e.prescriptions, e.safetyChecks, signer, e.assistant, e.audit)
}

func TestPrescriptionUsecase_IssueAndVerify(t *testing.T) {
	e := newEnv(t)
	prescriptions := newPrescriptionUsecase(t, e)
	ctx := context.Background()

	issued, err := prescriptions.Issue(ctx, e.sessionFor(t, "D001"), &dto.IssuePrescriptionRequest{
		PatientID: "P002",
		Medicines: []dto.MedicineLineRequest{{Name: "Ibuprofen 400mg", Dosage: "1 tablet", Frequency: "Twice daily", Duration: "3 days"}},
	})
	require.NoError(t, err)
	require.True(t, issued.Signed)

	result, err := prescriptions.Verify(ctx, issued.ID)
	require.NoError(t, err)
	require.True(t, result.Valid)

	_, err = e.prescriptions.Update(ctx, issued.ID, func(p *entity.Prescription) error {
		p.Medicines[0].Name = "Ibuprofen 800mg"
		return nil
	})
	require.NoError(t, err)

	result, err = prescriptions.Verify(ctx, issued.ID)
	require.NoError(t, err)
	require.True(t, result.Signed)
	require.False(t, result.Valid)
}

func TestPrescriptionUsecase_UnsignedSeedIsNotValid(t *testing.T) {
	e := newEnv(t)
	prescriptions := newPrescriptionUsecase(t, e)

	result, err := prescriptions.Verify(context.Background(), "RX001")
	require.NoError(t, err)
	require.False(t, result.Signed)
	require.False(t, result.Valid)

	_, err = prescriptions.Verify(context.Background(), "RX404")
	require.ErrorIs(t, err, usecase.ErrPrescriptionNotFound)
}

func TestPrescriptionUsecase_SafetyCheckOnlyForOwner(t *testing.T) {
	e := newEnv(t)
	prescriptions := newPrescriptionUsecase(t, e)
	ctx := context.Background()

	_, err := prescriptions.SafetyCheck(ctx, e.sessionFor(t, "P002"), "RX001")
	require.ErrorIs(t, err, usecase.ErrPrescriptionNotFound)

	check, err := prescriptions.SafetyCheck(ctx, e.sessionFor(t, "P001"), "RX001")
	require.NoError(t, err)
	require.True(t, check.Fallback)

	_, err = prescriptions.Issue(ctx, e.sessionFor(t, "D001"), &dto.IssuePrescriptionRequest{
		PatientID: "D002",
		Medicines: []dto.MedicineLineRequest{{Name: "x", Dosage: "x", Frequency: "x", Duration: "x"}},
	})
	require.ErrorIs(t, err, usecase.ErrPatientNotFound)
}
