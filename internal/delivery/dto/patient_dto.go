package dto

import "time"

// Request DTOs

type FeedbackRequest struct {
	Type     string `json:"type" validate:"required,oneof=general doctor pharmacist platform"`
	Rating   int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comments string `json:"comments" validate:"required"`
}

// DocumentRequest describes an uploaded file. Only the metadata is stored.
type DocumentRequest struct {
	Name     string `json:"name" validate:"required"`
	Category string `json:"category" validate:"required"`
	Size     int64  `json:"size" validate:"gte=0"`
	MimeType string `json:"mime_type"`
	Notes    string `json:"notes"`
}

type HealthReportRequest struct {
	ConversationSummary string `json:"conversation_summary" validate:"required"`
}

type ConversationNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content" validate:"required"`
}

type SymptomCheckRequest struct {
	Symptoms string `json:"symptoms" validate:"required"`
	Severity string `json:"severity" validate:"required,oneof=mild moderate severe"`
	Duration string `json:"duration" validate:"required"`
}

type PlaceOrderRequest struct {
	MedicineID string `json:"medicine_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gte=1"`
}

// Response DTOs

type FeedbackResponse struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	Type        string    `json:"type"`
	Rating      int       `json:"rating"`
	Comments    string    `json:"comments"`
	Date        time.Time `json:"date"`
}

type DocumentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

type HealthReportResponse struct {
	ID                  string    `json:"id"`
	ConversationSummary string    `json:"conversation_summary"`
	Content             string    `json:"content"`
	Fallback            bool      `json:"fallback"`
	GeneratedAt         time.Time `json:"generated_at"`
}

type ConversationNoteResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type SymptomCheckResponse struct {
	ID        string    `json:"id"`
	Symptoms  string    `json:"symptoms"`
	Severity  string    `json:"severity"`
	Duration  string    `json:"duration"`
	Analysis  string    `json:"analysis"`
	Fallback  bool      `json:"fallback"`
	CheckedAt time.Time `json:"checked_at"`
}

type SafetyCheckResponse struct {
	ID             string    `json:"id"`
	PrescriptionID string    `json:"prescription_id"`
	Analysis       string    `json:"analysis"`
	Fallback       bool      `json:"fallback"`
	CheckedAt      time.Time `json:"checked_at"`
}

type PatientAnalyticsResponse struct {
	TotalAppointments     int                  `json:"total_appointments"`
	UpcomingAppointments  int                  `json:"upcoming_appointments"`
	CompletedAppointments int                  `json:"completed_appointments"`
	TotalPrescriptions    int                  `json:"total_prescriptions"`
	TotalConsultations    int                  `json:"total_consultations"`
	LastCheckup           *time.Time           `json:"last_checkup,omitempty"`
	NextAppointment       *AppointmentResponse `json:"next_appointment,omitempty"`
}

// EmergencyResponse is the data shown in emergency mode, also when offline.
type EmergencyResponse struct {
	HealthID         string `json:"health_id"`
	QRCode           string `json:"qr_code"`
	Name             string `json:"name"`
	Age              int    `json:"age,omitempty"`
	Phone            string `json:"phone,omitempty"`
	BloodGroup       string `json:"blood_group,omitempty"`
	Allergies        string `json:"allergies,omitempty"`
	MedicalHistory   string `json:"medical_history,omitempty"`
	EmergencyContact string `json:"emergency_contact,omitempty"`
}
