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

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) Appointments(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	appointments, err := h.doctorUsecase.Appointments(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments.Appointments, &response.Meta{Total: appointments.Total})
}

func (h *DoctorHandler) AddAppointment(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.doctorUsecase.AddAppointment(r.Context(), session, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateTime:
			response.BadRequest(w, err.Error())
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to add appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment added successfully", appointment)
}

func (h *DoctorHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	appointment, err := h.doctorUsecase.CompleteAppointment(r.Context(), session, mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentNotScheduled:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to complete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment marked as completed", appointment)
}

func (h *DoctorHandler) Patients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.doctorUsecase.Patients(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Patients retrieved successfully", patients.Users, &response.Meta{Total: patients.Total})
}

func (h *DoctorHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	analytics, err := h.doctorUsecase.Analytics(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get analytics")
		return
	}

	response.Success(w, http.StatusOK, "Analytics retrieved successfully", analytics)
}

func (h *DoctorHandler) SummarizeNotes(w http.ResponseWriter, r *http.Request) {
	var req dto.SummarizeNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	summary, err := h.doctorUsecase.SummarizeNotes(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to summarize notes")
		return
	}

	response.Success(w, http.StatusOK, "Notes summarized", summary)
}
