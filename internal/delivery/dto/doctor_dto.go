package dto

import "time"

// Request DTOs

type MedicineLineRequest struct {
	Name      string `json:"name" validate:"required"`
	Dosage    string `json:"dosage" validate:"required"`
	Frequency string `json:"frequency" validate:"required"`
	Duration  string `json:"duration" validate:"required"`
}

type IssuePrescriptionRequest struct {
	PatientID string                `json:"patient_id" validate:"required"`
	Medicines []MedicineLineRequest `json:"medicines" validate:"required,min=1,dive"`
	Notes     string                `json:"notes"`
}

type SummarizeNotesRequest struct {
	Notes string `json:"notes" validate:"required"`
}

// Response DTOs

type MedicineLineResponse struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

type PrescriptionResponse struct {
	ID          string                 `json:"id"`
	PatientID   string                 `json:"patient_id"`
	PatientName string                 `json:"patient_name"`
	DoctorID    string                 `json:"doctor_id"`
	DoctorName  string                 `json:"doctor_name"`
	Medicines   []MedicineLineResponse `json:"medicines"`
	Notes       string                 `json:"notes,omitempty"`
	Date        time.Time              `json:"date"`
	Hash        string                 `json:"hash,omitempty"`
	Signed      bool                   `json:"signed"`
}

type PrescriptionVerificationResponse struct {
	PrescriptionID string `json:"prescription_id"`
	Signed         bool   `json:"signed"`
	Valid          bool   `json:"valid"`
	Hash           string `json:"hash,omitempty"`
}

type DoctorAnalyticsResponse struct {
	TotalPatients         int `json:"total_patients"`
	TotalConsultations    int `json:"total_consultations"`
	PendingAppointments   int `json:"pending_appointments"`
	CompletedAppointments int `json:"completed_appointments"`
}

// AIResultResponse is generated text. Fallback is set when the AI service
// was unavailable and a local answer was used instead.
type AIResultResponse struct {
	Text     string `json:"text"`
	Fallback bool   `json:"fallback"`
}
