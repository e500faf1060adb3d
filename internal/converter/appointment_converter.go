package converter

import (
	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
)

const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:          appointment.ID,
		DoctorID:    appointment.DoctorID,
		DoctorName:  appointment.DoctorName,
		PatientID:   appointment.PatientID,
		PatientName: appointment.PatientName,
		DateTime:    appointment.DateTime,
		Date:        appointment.DateTime.Format(dateLayout),
		Time:        appointment.DateTime.Format(clockLayout),
		Type:        appointment.Type,
		Reason:      appointment.Reason,
		Notes:       appointment.Notes,
		Status:      string(appointment.Status),
		Badge:       string(entity.AppointmentBadge(appointment.Status)),
	}
}

func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
