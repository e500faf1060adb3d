package converter

import (
	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
)

func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	medicines := make([]dto.MedicineLineResponse, len(prescription.Medicines))
	for i, m := range prescription.Medicines {
		medicines[i] = dto.MedicineLineResponse{
			Name:      m.Name,
			Dosage:    m.Dosage,
			Frequency: m.Frequency,
			Duration:  m.Duration,
		}
	}

	return &dto.PrescriptionResponse{
		ID:          prescription.ID,
		PatientID:   prescription.PatientID,
		PatientName: prescription.PatientName,
		DoctorID:    prescription.DoctorID,
		DoctorName:  prescription.DoctorName,
		Medicines:   medicines,
		Notes:       prescription.Notes,
		Date:        prescription.IssuedAt,
		Hash:        prescription.Digest,
		Signed:      prescription.Signature != "",
	}
}

func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		responses[i] = *PrescriptionToResponse(&prescriptions[i])
	}
	return responses
}

// MedicineLinesFromRequest converts the prescription form lines
func MedicineLinesFromRequest(lines []dto.MedicineLineRequest) []entity.MedicineLine {
	medicines := make([]entity.MedicineLine, len(lines))
	for i, l := range lines {
		medicines[i] = entity.MedicineLine{
			Name:      l.Name,
			Dosage:    l.Dosage,
			Frequency: l.Frequency,
			Duration:  l.Duration,
		}
	}
	return medicines
}
