package entity

import (
	"fmt"
	"time"
)

type ConsultationStatus string

const (
	ConsultationStatusActive    ConsultationStatus = "active"
	ConsultationStatusCompleted ConsultationStatus = "completed"
)

// CallState is the state of the video call shim:
// idle -> requesting-media -> connected -> ended.
type CallState string

const (
	CallStateIdle            CallState = "idle"
	CallStateRequestingMedia CallState = "requesting-media"
	CallStateConnected       CallState = "connected"
	CallStateEnded           CallState = "ended"
)

// CallMode selects real peer media or the simulated placeholder stream
type CallMode string

const (
	CallModeWebRTC     CallMode = "webrtc"
	CallModeSimulation CallMode = "simulation"
)

const durationInProgress = "In Progress"

// Consultation is one video consultation between a doctor and a patient
type Consultation struct {
	ID            string             `json:"id"`
	DoctorID      string             `json:"doctorId"`
	DoctorName    string             `json:"doctorName"`
	PatientID     string             `json:"patientId"`
	PatientName   string             `json:"patientName"`
	Mode          CallMode           `json:"mode"`
	State         CallState          `json:"state"`
	MicEnabled    bool               `json:"micEnabled"`
	CameraEnabled bool               `json:"cameraEnabled"`
	StartTime     time.Time          `json:"startTime"`
	EndTime       *time.Time         `json:"endTime,omitempty"`
	Status        ConsultationStatus `json:"status"`
}

func (c Consultation) GetID() string { return c.ID }

// IsParticipant reports whether userID is the doctor or the patient of the call
func (c *Consultation) IsParticipant(userID string) bool {
	return c.DoctorID == userID || c.PatientID == userID
}

func (c *Consultation) IsEnded() bool {
	return c.State == CallStateEnded
}

// MediaResult moves a requesting-media call to connected. A denied media
// request in webrtc mode downgrades the call to simulation.
func (c *Consultation) MediaResult(granted bool) {
	if c.Mode == CallModeWebRTC && !granted {
		c.Mode = CallModeSimulation
	}
	c.State = CallStateConnected
}

// End marks the call as ended at now
func (c *Consultation) End(now time.Time) {
	c.EndTime = &now
	c.State = CallStateEnded
	c.Status = ConsultationStatusCompleted
	c.MicEnabled = false
	c.CameraEnabled = false
}

// Duration renders (end - start) in whole minutes, rounded down, or "In Progress".
func (c *Consultation) Duration() string {
	if c.EndTime == nil {
		return durationInProgress
	}
	minutes := int(c.EndTime.Sub(c.StartTime) / time.Minute)
	return fmt.Sprintf("%d minutes", minutes)
}
