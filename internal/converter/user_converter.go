package converter

import (
	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO. The password
// hash is never part of the response.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:               user.ID,
		Email:            user.Email,
		Name:             user.Name,
		Role:             string(user.Role),
		Phone:            user.Phone,
		Active:           user.Active,
		Specialization:   user.Specialization,
		Experience:       user.Experience,
		About:            user.About,
		LicenseNo:        user.LicenseNo,
		Age:              user.Age,
		BloodGroup:       user.BloodGroup,
		Gender:           user.Gender,
		MedicalHistory:   user.MedicalHistory,
		Allergies:        user.Allergies,
		EmergencyContact: user.EmergencyContact,
		CreatedAt:        user.CreatedAt,
	}
}

// UsersToResponses converts a slice of User entities to UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
