package entity

import "time"

// MedicineLine is one line item of a prescription
type MedicineLine struct {
	Name      string `json:"name"`
	Dosage    string `json:"dosage"`
	Frequency string `json:"frequency"`
	Duration  string `json:"duration"`
}

// Prescription issued by a doctor. Digest and Signature are filled in when
// the prescription is signed.
type Prescription struct {
	ID          string         `json:"id"`
	PatientID   string         `json:"patientId"`
	PatientName string         `json:"patientName"`
	DoctorID    string         `json:"doctorId"`
	DoctorName  string         `json:"doctorName"`
	Medicines   []MedicineLine `json:"medicines"`
	Notes       string         `json:"notes,omitempty"`
	IssuedAt    time.Time      `json:"date"`
	Digest      string         `json:"hash,omitempty"`
	Signature   string         `json:"signature,omitempty"`
}

func (p Prescription) GetID() string { return p.ID }

// SignedContent is the part of a prescription covered by its signature.
type SignedContent struct {
	ID        string         `json:"id"`
	PatientID string         `json:"patientId"`
	DoctorID  string         `json:"doctorId"`
	Medicines []MedicineLine `json:"medicines"`
	IssuedAt  time.Time      `json:"date"`
}

func (p *Prescription) SignedContent() SignedContent {
	return SignedContent{
		ID:        p.ID,
		PatientID: p.PatientID,
		DoctorID:  p.DoctorID,
		Medicines: p.Medicines,
		IssuedAt:  p.IssuedAt.UTC(),
	}
}
