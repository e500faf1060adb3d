package dto

import "time"

// Request DTOs

// CreateAppointmentRequest is used by a doctor booking one of their patients
type CreateAppointmentRequest struct {
	PatientID string `json:"patient_id" validate:"required"`
	Date      string `json:"date" validate:"required,ymd"`
	Time      string `json:"time" validate:"required,hm"`
	Type      string `json:"type" validate:"required"`
	Notes     string `json:"notes"`
}

// ScheduleAppointmentRequest is used by a patient booking a doctor
type ScheduleAppointmentRequest struct {
	DoctorID string `json:"doctor_id" validate:"required"`
	Date     string `json:"date" validate:"required,ymd"`
	Time     string `json:"time" validate:"required,hm"`
	Type     string `json:"type" validate:"required"`
	Reason   string `json:"reason"`
}

// Response DTOs

type AppointmentResponse struct {
	ID          string    `json:"id"`
	DoctorID    string    `json:"doctor_id"`
	DoctorName  string    `json:"doctor_name"`
	PatientID   string    `json:"patient_id"`
	PatientName string    `json:"patient_name"`
	DateTime    time.Time `json:"date_time"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Type        string    `json:"type"`
	Reason      string    `json:"reason,omitempty"`
	Notes       string    `json:"notes,omitempty"`
	Status      string    `json:"status"`
	Badge       string    `json:"badge"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
