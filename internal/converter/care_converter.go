package converter

import (
	"fmt"
	"strings"

	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
)

const reportDisclaimer = "DISCLAIMER: This report was generated with AI assistance for informational purposes only. " +
	"It is not a medical diagnosis. Consult a qualified healthcare professional for medical advice."

func FeedbackToResponse(f *entity.Feedback) *dto.FeedbackResponse {
	if f == nil {
		return nil
	}

	return &dto.FeedbackResponse{
		ID:          f.ID,
		PatientID:   f.PatientID,
		PatientName: f.PatientName,
		Type:        string(f.Type),
		Rating:      f.Rating,
		Comments:    f.Comments,
		Date:        f.Date,
	}
}

func FeedbacksToResponses(feedbacks []entity.Feedback) []dto.FeedbackResponse {
	responses := make([]dto.FeedbackResponse, len(feedbacks))
	for i := range feedbacks {
		responses[i] = *FeedbackToResponse(&feedbacks[i])
	}
	return responses
}

func SentimentToResponse(s *entity.SentimentAnalysis) *dto.SentimentResponse {
	if s == nil {
		return nil
	}

	topics := s.Topics
	if topics == nil {
		topics = []string{}
	}
	return &dto.SentimentResponse{
		FeedbackID:     s.FeedbackID,
		Sentiment:      s.Sentiment,
		Tone:           s.Tone,
		Topics:         topics,
		Urgency:        s.Urgency,
		ActionRequired: s.ActionRequired,
		Fallback:       s.Fallback,
		AnalyzedAt:     s.AnalyzedAt,
	}
}

func DocumentToResponse(d *entity.Document) *dto.DocumentResponse {
	if d == nil {
		return nil
	}

	return &dto.DocumentResponse{
		ID:         d.ID,
		Name:       d.Name,
		Category:   d.Category,
		Size:       d.Size,
		MimeType:   d.MimeType,
		Notes:      d.Notes,
		UploadedAt: d.UploadedAt,
	}
}

func DocumentsToResponses(documents []entity.Document) []dto.DocumentResponse {
	responses := make([]dto.DocumentResponse, len(documents))
	for i := range documents {
		responses[i] = *DocumentToResponse(&documents[i])
	}
	return responses
}

func HealthReportToResponse(r *entity.HealthReport) *dto.HealthReportResponse {
	if r == nil {
		return nil
	}

	return &dto.HealthReportResponse{
		ID:                  r.ID,
		ConversationSummary: r.ConversationSummary,
		Content:             r.Content,
		Fallback:            r.Fallback,
		GeneratedAt:         r.GeneratedAt,
	}
}

func HealthReportsToResponses(reports []entity.HealthReport) []dto.HealthReportResponse {
	responses := make([]dto.HealthReportResponse, len(reports))
	for i := range reports {
		responses[i] = *HealthReportToResponse(&reports[i])
	}
	return responses
}

// HealthReportText renders a report as the plain text download, with the
// patient header on top and the disclaimer at the end.
func HealthReportText(patient *entity.User, report *entity.HealthReport) string {
	var b strings.Builder
	b.WriteString("SWASTHYABANDHU HEALTH REPORT\n")
	b.WriteString(strings.Repeat("=", 40) + "\n\n")
	fmt.Fprintf(&b, "Patient: %s\n", patient.Name)
	fmt.Fprintf(&b, "Patient ID: %s\n", patient.ID)
	if patient.Age > 0 {
		fmt.Fprintf(&b, "Age: %d\n", patient.Age)
	}
	if patient.BloodGroup != "" {
		fmt.Fprintf(&b, "Blood Group: %s\n", patient.BloodGroup)
	}
	fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04"))
	b.WriteString("CONVERSATION SUMMARY\n")
	b.WriteString(report.ConversationSummary + "\n\n")
	b.WriteString("REPORT\n")
	b.WriteString(report.Content + "\n\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	b.WriteString(reportDisclaimer + "\n")
	return b.String()
}

func ConversationNotesToResponses(notes []entity.ConversationNote) []dto.ConversationNoteResponse {
	responses := make([]dto.ConversationNoteResponse, len(notes))
	for i, n := range notes {
		responses[i] = dto.ConversationNoteResponse{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
		}
	}
	return responses
}

func SymptomCheckToResponse(s *entity.SymptomCheck) *dto.SymptomCheckResponse {
	if s == nil {
		return nil
	}

	return &dto.SymptomCheckResponse{
		ID:        s.ID,
		Symptoms:  s.Symptoms,
		Severity:  s.Severity,
		Duration:  s.Duration,
		Analysis:  s.Analysis,
		Fallback:  s.Fallback,
		CheckedAt: s.CheckedAt,
	}
}

func SafetyCheckToResponse(s *entity.SafetyCheck) *dto.SafetyCheckResponse {
	if s == nil {
		return nil
	}

	return &dto.SafetyCheckResponse{
		ID:             s.ID,
		PrescriptionID: s.PrescriptionID,
		Analysis:       s.Analysis,
		Fallback:       s.Fallback,
		CheckedAt:      s.CheckedAt,
	}
}
