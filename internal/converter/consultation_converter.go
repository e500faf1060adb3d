package converter

import (
	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
)

func ConsultationToResponse(c *entity.Consultation) *dto.ConsultationResponse {
	if c == nil {
		return nil
	}

	return &dto.ConsultationResponse{
		ID:            c.ID,
		DoctorID:      c.DoctorID,
		DoctorName:    c.DoctorName,
		PatientID:     c.PatientID,
		PatientName:   c.PatientName,
		Mode:          string(c.Mode),
		State:         string(c.State),
		MicEnabled:    c.MicEnabled,
		CameraEnabled: c.CameraEnabled,
		StartTime:     c.StartTime,
		EndTime:       c.EndTime,
		Duration:      c.Duration(),
		Status:        string(c.Status),
		Badge:         string(entity.ConsultationBadge(c.Status)),
	}
}

func ConsultationsToResponses(consultations []entity.Consultation) []dto.ConsultationResponse {
	responses := make([]dto.ConsultationResponse, len(consultations))
	for i := range consultations {
		responses[i] = *ConsultationToResponse(&consultations[i])
	}
	return responses
}

func HealthIDToResponse(h *entity.HealthID) *dto.HealthIDResponse {
	if h == nil {
		return nil
	}

	return &dto.HealthIDResponse{
		HID:       h.HID,
		UserID:    h.UserID,
		QRCode:    h.QRCode,
		CreatedAt: h.CreatedAt,
	}
}

func HealthIDPayloadToResponse(p *entity.HealthIDPayload) *dto.HealthIDPayloadResponse {
	if p == nil {
		return nil
	}

	return &dto.HealthIDPayloadResponse{
		HID:       p.HID,
		Name:      p.Name,
		Age:       p.Age,
		BloodType: p.BloodType,
		Allergies: p.Allergies,
		Emergency: p.Emergency,
	}
}

// MessagesToResponses renders an inbox for userID; Incoming marks messages
// addressed to them.
func MessagesToResponses(messages []entity.Message, userID string) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i, m := range messages {
		responses[i] = dto.MessageResponse{
			ID:       m.ID,
			FromID:   m.FromID,
			FromName: m.FromName,
			ToID:     m.ToID,
			ToName:   m.ToName,
			Body:     m.Body,
			SentAt:   m.SentAt,
			Incoming: m.ToID == userID,
		}
	}
	return responses
}
