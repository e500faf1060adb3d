package entity

import "time"

type FeedbackType string

const (
	FeedbackTypeGeneral    FeedbackType = "general"
	FeedbackTypeDoctor     FeedbackType = "doctor"
	FeedbackTypePharmacist FeedbackType = "pharmacist"
	FeedbackTypePlatform   FeedbackType = "platform"
)

// Feedback left by a patient
type Feedback struct {
	ID          string       `json:"id"`
	PatientID   string       `json:"patientId"`
	PatientName string       `json:"patientName"`
	Type        FeedbackType `json:"type"`
	Rating      int          `json:"rating"`
	Comments    string       `json:"comments"`
	Date        time.Time    `json:"date"`
}

func (f Feedback) GetID() string { return f.ID }

// SentimentAnalysis is the AI annotation of a feedback, stored keyed by
// feedback id.
type SentimentAnalysis struct {
	FeedbackID     string    `json:"feedbackId"`
	Sentiment      string    `json:"sentiment"`
	Tone           string    `json:"tone"`
	Topics         []string  `json:"topics"`
	Urgency        string    `json:"urgency"`
	ActionRequired bool      `json:"actionRequired"`
	Raw            string    `json:"raw,omitempty"`
	Fallback       bool      `json:"fallback,omitempty"`
	AnalyzedAt     time.Time `json:"analyzedAt"`
}
