package handler

import (
	"encoding/json"
	"net/http"

	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/usecase"
	"swasthya-portal/pkg/response"
	"swasthya-portal/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	appointments, err := h.patientUsecase.Appointments(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments.Appointments, &response.Meta{Total: appointments.Total})
}

func (h *PatientHandler) Doctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.patientUsecase.Doctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Doctors retrieved successfully", doctors.Users, &response.Meta{Total: doctors.Total})
}

func (h *PatientHandler) ScheduleAppointment(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.ScheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.patientUsecase.ScheduleAppointment(r.Context(), session, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateTime:
			response.BadRequest(w, err.Error())
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to schedule appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment scheduled successfully", appointment)
}

func (h *PatientHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	appointment, err := h.patientUsecase.CancelAppointment(r.Context(), session, mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotScheduled:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *PatientHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	feedback, err := h.patientUsecase.SubmitFeedback(r.Context(), session, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to submit feedback")
		return
	}

	response.Success(w, http.StatusCreated, "Thank you for your feedback", feedback)
}

func (h *PatientHandler) MyFeedback(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	feedbacks, err := h.patientUsecase.MyFeedback(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback retrieved successfully", feedbacks)
}

func (h *PatientHandler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.DocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	document, err := h.patientUsecase.UploadDocument(r.Context(), session, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to upload document")
		return
	}

	response.Success(w, http.StatusCreated, "Document uploaded successfully", document)
}

func (h *PatientHandler) Documents(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	documents, err := h.patientUsecase.Documents(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get documents")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Documents retrieved successfully", documents, &response.Meta{Total: len(documents)})
}

func (h *PatientHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	if err := h.patientUsecase.DeleteDocument(r.Context(), session, mux.Vars(r)["id"]); err != nil {
		switch err {
		case usecase.ErrDocumentNotFound:
			response.NotFound(w, "Document not found")
		default:
			response.InternalServerError(w, "Failed to delete document")
		}
		return
	}

	response.Success(w, http.StatusOK, "Document deleted successfully", nil)
}

func (h *PatientHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	analytics, err := h.patientUsecase.Analytics(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get analytics")
		return
	}

	response.Success(w, http.StatusOK, "Analytics retrieved successfully", analytics)
}
