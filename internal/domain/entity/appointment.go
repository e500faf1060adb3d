package entity

import "time"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment between a doctor and a patient. Names are denormalized at
// creation time.
type Appointment struct {
	ID          string            `json:"id"`
	DoctorID    string            `json:"doctorId"`
	DoctorName  string            `json:"doctorName"`
	PatientID   string            `json:"patientId"`
	PatientName string            `json:"patientName"`
	DateTime    time.Time         `json:"dateTime"`
	Type        string            `json:"type"`
	Reason      string            `json:"reason,omitempty"`
	Notes       string            `json:"notes,omitempty"`
	Status      AppointmentStatus `json:"status"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt,omitempty"`
}

func (a Appointment) GetID() string { return a.ID }

// IsScheduled checks if appointment is still open
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// Complete changes appointment status to completed
func (a *Appointment) Complete(now time.Time) {
	a.Status = AppointmentStatusCompleted
	a.UpdatedAt = now
}

// Cancel changes appointment status to cancelled
func (a *Appointment) Cancel(now time.Time) {
	a.Status = AppointmentStatusCancelled
	a.UpdatedAt = now
}
