package dto

import "time"

// Request DTOs

type StartConsultationRequest struct {
	PeerID string `json:"peer_id" validate:"required"`
	Mode   string `json:"mode" validate:"omitempty,oneof=webrtc simulation"`
}

// MediaReportRequest tells whether the browser granted camera and microphone
type MediaReportRequest struct {
	Granted bool `json:"granted"`
}

type CallControlsRequest struct {
	Mic    *bool `json:"mic"`
	Camera *bool `json:"camera"`
}

// Response DTOs

type ConsultationResponse struct {
	ID            string     `json:"id"`
	DoctorID      string     `json:"doctor_id"`
	DoctorName    string     `json:"doctor_name"`
	PatientID     string     `json:"patient_id"`
	PatientName   string     `json:"patient_name"`
	Mode          string     `json:"mode"`
	State         string     `json:"state"`
	MicEnabled    bool       `json:"mic_enabled"`
	CameraEnabled bool       `json:"camera_enabled"`
	StartTime     time.Time  `json:"start_time"`
	EndTime       *time.Time `json:"end_time,omitempty"`
	Duration      string     `json:"duration"`
	Status        string     `json:"status"`
	Badge         string     `json:"badge"`
}

type VideoConfigResponse struct {
	ICEServers    []string `json:"ice_servers"`
	VoiceAgentURL string   `json:"voice_agent_url"`
}

// Health id

type HealthIDResponse struct {
	HID       string    `json:"hid"`
	UserID    string    `json:"user_id"`
	QRCode    string    `json:"qr_code"`
	CreatedAt time.Time `json:"created_at"`
}

type ScanHealthIDRequest struct {
	QRCode string `json:"qr_code" validate:"required"`
}

type HealthIDPayloadResponse struct {
	HID       string `json:"hid"`
	Name      string `json:"name"`
	Age       int    `json:"age,omitempty"`
	BloodType string `json:"blood_group,omitempty"`
	Allergies string `json:"allergies,omitempty"`
	Emergency string `json:"emergency_contact,omitempty"`
}

// Messaging

type SendMessageRequest struct {
	ToID string `json:"to_id" validate:"required"`
	Body string `json:"body" validate:"required,max=2000"`
}

type MessageResponse struct {
	ID       string    `json:"id"`
	FromID   string    `json:"from_id"`
	FromName string    `json:"from_name"`
	ToID     string    `json:"to_id"`
	ToName   string    `json:"to_name"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sent_at"`
	Incoming bool      `json:"incoming"`
}
