package handler

import (
	"encoding/json"
	"net/http"

	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/usecase"
	"swasthya-portal/pkg/response"
	"swasthya-portal/pkg/validator"
)

type HealthIDHandler struct {
	healthIDUsecase usecase.HealthIDUsecase
	validator       *validator.CustomValidator
}

func NewHealthIDHandler(healthIDUsecase usecase.HealthIDUsecase, validator *validator.CustomValidator) *HealthIDHandler {
	return &HealthIDHandler{
		healthIDUsecase: healthIDUsecase,
		validator:       validator,
	}
}

func (h *HealthIDHandler) GetOrCreate(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	healthID, err := h.healthIDUsecase.GetOrCreate(r.Context(), session)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get health id")
		}
		return
	}

	response.Success(w, http.StatusOK, "Health id retrieved successfully", healthID)
}

func (h *HealthIDHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req dto.ScanHealthIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	payload, err := h.healthIDUsecase.Scan(r.Context(), req.QRCode)
	if err != nil {
		switch err {
		case usecase.ErrInvalidHealthID:
			response.BadRequest(w, "Invalid health id")
		default:
			response.InternalServerError(w, "Failed to scan health id")
		}
		return
	}

	response.Success(w, http.StatusOK, "Health id scanned successfully", payload)
}

func (h *HealthIDHandler) Emergency(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	info, err := h.healthIDUsecase.Emergency(r.Context(), session)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get emergency information")
		}
		return
	}

	response.Success(w, http.StatusOK, "Emergency information retrieved successfully", info)
}
