package dto

import "time"

// Request DTOs

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RegisterRequest registers a doctor, patient or pharmacist. Role specific
// fields are required only for their role.
type RegisterRequest struct {
	Name            string `json:"name" validate:"required,min=2"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,phone"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"required,oneof=doctor patient pharmacist"`

	Specialization string `json:"specialization" validate:"required_if=Role doctor"`
	Experience     int    `json:"experience" validate:"gte=0,lte=80"`
	About          string `json:"about"`
	LicenseNo      string `json:"license_no" validate:"required_if=Role pharmacist"`

	Age              int    `json:"age" validate:"required_if=Role patient,gte=0,lte=150"`
	BloodGroup       string `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Gender           string `json:"gender" validate:"omitempty,oneof=male female other"`
	MedicalHistory   string `json:"medical_history"`
	Allergies        string `json:"allergies"`
	EmergencyContact string `json:"emergency_contact"`
}

// UpdateProfileRequest carries the fields to change. Empty fields are left as they are.
type UpdateProfileRequest struct {
	Name             string `json:"name" validate:"omitempty,min=2"`
	Phone            string `json:"phone" validate:"omitempty,phone"`
	Specialization   string `json:"specialization"`
	Experience       int    `json:"experience" validate:"gte=0,lte=80"`
	About            string `json:"about"`
	LicenseNo        string `json:"license_no"`
	Age              int    `json:"age" validate:"gte=0,lte=150"`
	BloodGroup       string `json:"blood_group" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Gender           string `json:"gender" validate:"omitempty,oneof=male female other"`
	MedicalHistory   string `json:"medical_history"`
	Allergies        string `json:"allergies"`
	EmergencyContact string `json:"emergency_contact"`
}

// Response DTOs

type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	ExpiresIn    int64         `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

type UserResponse struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Phone  string `json:"phone,omitempty"`
	Active bool   `json:"active"`

	Specialization   string `json:"specialization,omitempty"`
	Experience       int    `json:"experience,omitempty"`
	About            string `json:"about,omitempty"`
	LicenseNo        string `json:"license_no,omitempty"`
	Age              int    `json:"age,omitempty"`
	BloodGroup       string `json:"blood_group,omitempty"`
	Gender           string `json:"gender,omitempty"`
	MedicalHistory   string `json:"medical_history,omitempty"`
	Allergies        string `json:"allergies,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

type UserListResponse struct {
	Users []UserResponse `json:"users"`
	Total int            `json:"total"`
}
