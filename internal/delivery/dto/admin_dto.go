package dto

import "time"

// UpdateUserRequest is the admin edit form. Id, role and password are not editable.
type UpdateUserRequest struct {
	Name             string `json:"name" validate:"omitempty,min=2"`
	Email            string `json:"email" validate:"omitempty,email"`
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

type StatisticsResponse struct {
	TotalUsers         int `json:"total_users"`
	Admins             int `json:"admins"`
	Doctors            int `json:"doctors"`
	Patients           int `json:"patients"`
	Pharmacists        int `json:"pharmacists"`
	ActiveUsers        int `json:"active_users"`
	TotalAppointments  int `json:"total_appointments"`
	TotalConsultations int `json:"total_consultations"`
}

type RatingCount struct {
	Rating int `json:"rating"`
	Count  int `json:"count"`
}

type FeedbackStatsResponse struct {
	Total         int                `json:"total"`
	AverageRating float64            `json:"average_rating"`
	Distribution  []RatingCount      `json:"distribution"`
	Recent        []FeedbackResponse `json:"recent"`
}

type SentimentResponse struct {
	FeedbackID     string    `json:"feedback_id"`
	Sentiment      string    `json:"sentiment"`
	Tone           string    `json:"tone"`
	Topics         []string  `json:"topics"`
	Urgency        string    `json:"urgency"`
	ActionRequired bool      `json:"action_required"`
	Fallback       bool      `json:"fallback,omitempty"`
	AnalyzedAt     time.Time `json:"analyzed_at"`
}
