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

type ConsultationHandler struct {
	consultationUsecase usecase.ConsultationUsecase
	validator           *validator.CustomValidator
}

func NewConsultationHandler(consultationUsecase usecase.ConsultationUsecase, validator *validator.CustomValidator) *ConsultationHandler {
	return &ConsultationHandler{
		consultationUsecase: consultationUsecase,
		validator:           validator,
	}
}

// Config returns the ICE servers and the voice assistant link
func (h *ConsultationHandler) Config(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Video configuration retrieved successfully", h.consultationUsecase.Config())
}

func (h *ConsultationHandler) Start(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.StartConsultationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	consultation, err := h.consultationUsecase.Start(r.Context(), session, &req)
	if err != nil {
		writeConsultationError(w, err, "Failed to start consultation")
		return
	}

	response.Success(w, http.StatusCreated, "Consultation started", consultation)
}

func (h *ConsultationHandler) ReportMedia(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.MediaReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	consultation, err := h.consultationUsecase.ReportMedia(r.Context(), session, mux.Vars(r)["id"], &req)
	if err != nil {
		writeConsultationError(w, err, "Failed to update consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation connected", consultation)
}

func (h *ConsultationHandler) SetControls(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.CallControlsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	consultation, err := h.consultationUsecase.SetControls(r.Context(), session, mux.Vars(r)["id"], &req)
	if err != nil {
		writeConsultationError(w, err, "Failed to update call controls")
		return
	}

	response.Success(w, http.StatusOK, "Call controls updated", consultation)
}

func (h *ConsultationHandler) End(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	consultation, err := h.consultationUsecase.End(r.Context(), session, mux.Vars(r)["id"])
	if err != nil {
		writeConsultationError(w, err, "Failed to end consultation")
		return
	}

	response.Success(w, http.StatusOK, "Consultation ended", consultation)
}

func (h *ConsultationHandler) History(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	consultations, err := h.consultationUsecase.History(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get consultation history")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Consultation history retrieved successfully", consultations, &response.Meta{Total: len(consultations)})
}

func writeConsultationError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrConsultationNotFound:
		response.NotFound(w, "Consultation not found")
	case usecase.ErrInvalidPeer:
		response.BadRequest(w, err.Error())
	case usecase.ErrNotParticipant:
		response.Forbidden(w, err.Error())
	case usecase.ErrConsultationEnded, usecase.ErrInvalidCallState:
		response.Conflict(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
