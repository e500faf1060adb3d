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

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
	}
}

func (h *PrescriptionHandler) Issue(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.IssuePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.prescriptionUsecase.Issue(r.Context(), session, &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to issue prescription")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Prescription issued successfully", prescription)
}

func (h *PrescriptionHandler) DoctorPrescriptions(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	prescriptions, err := h.prescriptionUsecase.DoctorPrescriptions(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get prescriptions")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions, &response.Meta{Total: len(prescriptions)})
}

func (h *PrescriptionHandler) PatientPrescriptions(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	prescriptions, err := h.prescriptionUsecase.PatientPrescriptions(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get prescriptions")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions, &response.Meta{Total: len(prescriptions)})
}

func (h *PrescriptionHandler) All(w http.ResponseWriter, r *http.Request) {
	prescriptions, err := h.prescriptionUsecase.All(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get prescriptions")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions, &response.Meta{Total: len(prescriptions)})
}

func (h *PrescriptionHandler) Verify(w http.ResponseWriter, r *http.Request) {
	result, err := h.prescriptionUsecase.Verify(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "Prescription not found")
		default:
			response.InternalServerError(w, "Failed to verify prescription")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription verified", result)
}

func (h *PrescriptionHandler) SafetyCheck(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	check, err := h.prescriptionUsecase.SafetyCheck(r.Context(), session, mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "Prescription not found")
		default:
			response.InternalServerError(w, "Failed to check prescription safety")
		}
		return
	}

	response.Success(w, http.StatusOK, "Safety check completed", check)
}
