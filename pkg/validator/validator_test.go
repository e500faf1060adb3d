package validator_test

import (
	"testing"

	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/pkg/validator"

	"github.com/stretchr/testify/require"
)

func validRegistration() dto.RegisterRequest {
	return dto.RegisterRequest{
		Name:            "Amit Patel",
		Email:           "amit@test.com",
		Phone:           "+91-9876543220",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		Role:            "patient",
		Age:             35,
	}
}

func TestValidator_RegisterRequest(t *testing.T) {
	v := validator.NewValidator()

	req := validRegistration()
	require.NoError(t, v.Validate(&req))

	req.Phone = "12345"
	req.ConfirmPassword = "other"
	err := v.Validate(&req)
	require.Error(t, err)

	errs := v.FormatValidationErrors(err)
	require.Equal(t, "phone must be a valid phone number", errs["phone"])
	require.Equal(t, "confirm_password does not match", errs["confirm_password"])
}

func TestValidator_RoleSpecificFields(t *testing.T) {
	v := validator.NewValidator()

	req := validRegistration()
	req.Role = "doctor"
	err := v.Validate(&req)
	require.Error(t, err)
	require.Contains(t, v.FormatValidationErrors(err), "specialization")

	req.Specialization = "Cardiologist"
	require.NoError(t, v.Validate(&req))
}
