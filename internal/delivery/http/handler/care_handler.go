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

// CareHandler serves the patient AI tools
type CareHandler struct {
	careUsecase usecase.CareUsecase
	validator   *validator.CustomValidator
}

func NewCareHandler(careUsecase usecase.CareUsecase, validator *validator.CustomValidator) *CareHandler {
	return &CareHandler{
		careUsecase: careUsecase,
		validator:   validator,
	}
}

func (h *CareHandler) GenerateHealthReport(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.HealthReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	report, err := h.careUsecase.GenerateHealthReport(r.Context(), session, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to generate health report")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Health report generated", report)
}

func (h *CareHandler) HealthReports(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	reports, err := h.careUsecase.HealthReports(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get health reports")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Health reports retrieved successfully", reports, &response.Meta{Total: len(reports)})
}

// DownloadHealthReport answers with a plain text attachment
func (h *CareHandler) DownloadHealthReport(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	filename, body, err := h.careUsecase.DownloadHealthReport(r.Context(), session, mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrHealthReportNotFound:
			response.NotFound(w, "Health report not found")
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to download health report")
		}
		return
	}

	response.Attachment(w, filename, body)
}

func (h *CareHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.ConversationNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	note, err := h.careUsecase.AddNote(r.Context(), session, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to save note")
		return
	}

	response.Success(w, http.StatusCreated, "Note saved", note)
}

func (h *CareHandler) Notes(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	notes, err := h.careUsecase.Notes(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get notes")
		return
	}

	response.Success(w, http.StatusOK, "Notes retrieved successfully", notes)
}

func (h *CareHandler) CheckSymptoms(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.SymptomCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.careUsecase.CheckSymptoms(r.Context(), session, &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to check symptoms")
		}
		return
	}

	response.Success(w, http.StatusOK, "Symptom analysis completed", result)
}
