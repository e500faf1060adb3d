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

type AdminHandler struct {
	adminUsecase usecase.AdminUsecase
	validator    *validator.CustomValidator
}

func NewAdminHandler(adminUsecase usecase.AdminUsecase, validator *validator.CustomValidator) *AdminHandler {
	return &AdminHandler{
		adminUsecase: adminUsecase,
		validator:    validator,
	}
}

// ListUsers supports ?role= and ?search= filters
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	users, err := h.adminUsecase.ListUsers(r.Context(), query.Get("role"), query.Get("search"))
	if err != nil {
		response.InternalServerError(w, "Failed to get users")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Users retrieved successfully", users.Users, &response.Meta{Total: users.Total})
}

func (h *AdminHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.adminUsecase.GetUser(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}

func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.adminUsecase.UpdateUser(r.Context(), session, mux.Vars(r)["id"], &req)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already registered")
		default:
			response.InternalServerError(w, "Failed to update user")
		}
		return
	}

	response.Success(w, http.StatusOK, "User updated successfully", user)
}

func (h *AdminHandler) ToggleUserStatus(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	user, err := h.adminUsecase.ToggleUserStatus(r.Context(), session, mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrCannotDeactivateSelf:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update user status")
		}
		return
	}

	response.Success(w, http.StatusOK, "User status updated successfully", user)
}

func (h *AdminHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminUsecase.Statistics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get statistics")
		return
	}

	response.Success(w, http.StatusOK, "Statistics retrieved successfully", stats)
}

func (h *AdminHandler) FeedbackStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminUsecase.FeedbackStats(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get feedback statistics")
		return
	}

	response.Success(w, http.StatusOK, "Feedback statistics retrieved successfully", stats)
}

func (h *AdminHandler) AnalyzeSentiment(w http.ResponseWriter, r *http.Request) {
	analysis, err := h.adminUsecase.AnalyzeSentiment(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		switch err {
		case usecase.ErrFeedbackNotFound:
			response.NotFound(w, "Feedback not found")
		default:
			response.InternalServerError(w, "Failed to analyze feedback")
		}
		return
	}

	response.Success(w, http.StatusOK, "Feedback analyzed successfully", analysis)
}

func (h *AdminHandler) ListSentiments(w http.ResponseWriter, r *http.Request) {
	analyses, err := h.adminUsecase.ListSentiments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get sentiment analyses")
		return
	}

	response.Success(w, http.StatusOK, "Sentiment analyses retrieved successfully", analyses)
}
