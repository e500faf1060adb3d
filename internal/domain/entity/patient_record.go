package entity

import "time"

// Document is metadata of a file uploaded by a patient
type Document struct {
	ID         string    `json:"id"`
	PatientID  string    `json:"patientId"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mimeType,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	UploadedAt time.Time `json:"uploadedAt"`
}

func (d Document) GetID() string { return d.ID }

type HealthReport struct {
	ID                  string    `json:"id"`
	PatientID           string    `json:"patientId"`
	ConversationSummary string    `json:"conversationSummary"`
	Content             string    `json:"content"`
	Fallback            bool      `json:"fallback,omitempty"`
	GeneratedAt         time.Time `json:"generatedAt"`
}

func (r HealthReport) GetID() string { return r.ID }

type ConversationNote struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	Title     string    `json:"title,omitempty"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

func (n ConversationNote) GetID() string { return n.ID }

type SymptomCheck struct {
	ID        string    `json:"id"`
	PatientID string    `json:"patientId"`
	Symptoms  string    `json:"symptoms"`
	Severity  string    `json:"severity"`
	Duration  string    `json:"duration"`
	Analysis  string    `json:"analysis"`
	Fallback  bool      `json:"fallback,omitempty"`
	CheckedAt time.Time `json:"timestamp"`
}

func (s SymptomCheck) GetID() string { return s.ID }

type SafetyCheck struct {
	ID             string    `json:"id"`
	PatientID      string    `json:"patientId"`
	PrescriptionID string    `json:"prescriptionId"`
	Analysis       string    `json:"analysis"`
	Fallback       bool      `json:"fallback,omitempty"`
	CheckedAt      time.Time `json:"timestamp"`
}

func (s SafetyCheck) GetID() string { return s.ID }

// Message between two portal users
type Message struct {
	ID       string    `json:"id"`
	FromID   string    `json:"fromId"`
	FromName string    `json:"fromName"`
	ToID     string    `json:"toId"`
	ToName   string    `json:"toName"`
	Body     string    `json:"body"`
	SentAt   time.Time `json:"sentAt"`
}

func (m Message) GetID() string { return m.ID }
