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

type PharmacyHandler struct {
	pharmacyUsecase usecase.PharmacyUsecase
	validator       *validator.CustomValidator
}

func NewPharmacyHandler(pharmacyUsecase usecase.PharmacyUsecase, validator *validator.CustomValidator) *PharmacyHandler {
	return &PharmacyHandler{
		pharmacyUsecase: pharmacyUsecase,
		validator:       validator,
	}
}

func (h *PharmacyHandler) Inventory(w http.ResponseWriter, r *http.Request) {
	inventory, err := h.pharmacyUsecase.Inventory(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		response.InternalServerError(w, "Failed to get inventory")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Inventory retrieved successfully", inventory.Medicines, &response.Meta{Total: inventory.Total})
}

func (h *PharmacyHandler) AddMedicine(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.CreateMedicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medicine, err := h.pharmacyUsecase.AddMedicine(r.Context(), session, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidPrice:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to add medicine")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medicine added successfully", medicine)
}

func (h *PharmacyHandler) UpdateMedicine(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.UpdateMedicineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	medicine, err := h.pharmacyUsecase.UpdateMedicine(r.Context(), session, mux.Vars(r)["id"], &req)
	if err != nil {
		switch err {
		case usecase.ErrMedicineNotFound:
			response.NotFound(w, "Medicine not found")
		case usecase.ErrInvalidPrice:
			response.BadRequest(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update medicine")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medicine updated successfully", medicine)
}

func (h *PharmacyHandler) DeleteMedicine(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	if err := h.pharmacyUsecase.DeleteMedicine(r.Context(), session, mux.Vars(r)["id"]); err != nil {
		switch err {
		case usecase.ErrMedicineNotFound:
			response.NotFound(w, "Medicine not found")
		default:
			response.InternalServerError(w, "Failed to delete medicine")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medicine deleted successfully", nil)
}

func (h *PharmacyHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.pharmacyUsecase.CreateOrder(r.Context(), session, &req)
	if err != nil {
		writeOrderError(w, err, "Failed to create order")
		return
	}

	response.Success(w, http.StatusCreated, "Order created successfully", order)
}

// PlaceOrder is the patient side of ordering
func (h *PharmacyHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.pharmacyUsecase.PlaceOrder(r.Context(), session, &req)
	if err != nil {
		writeOrderError(w, err, "Failed to place order")
		return
	}

	response.Success(w, http.StatusCreated, "Order placed successfully", order)
}

func (h *PharmacyHandler) CompleteOrder(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	order, err := h.pharmacyUsecase.CompleteOrder(r.Context(), session, mux.Vars(r)["id"])
	if err != nil {
		writeOrderError(w, err, "Failed to complete order")
		return
	}

	response.Success(w, http.StatusOK, "Order completed successfully", order)
}

func (h *PharmacyHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	order, err := h.pharmacyUsecase.CancelOrder(r.Context(), session, mux.Vars(r)["id"])
	if err != nil {
		writeOrderError(w, err, "Failed to cancel order")
		return
	}

	response.Success(w, http.StatusOK, "Order cancelled successfully", order)
}

func (h *PharmacyHandler) Orders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.pharmacyUsecase.Orders(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get orders")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Orders retrieved successfully", orders, &response.Meta{Total: len(orders)})
}

func (h *PharmacyHandler) MyOrders(w http.ResponseWriter, r *http.Request) {
	session, ok := currentSession(w, r)
	if !ok {
		return
	}

	orders, err := h.pharmacyUsecase.PatientOrders(r.Context(), session)
	if err != nil {
		response.InternalServerError(w, "Failed to get orders")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Orders retrieved successfully", orders, &response.Meta{Total: len(orders)})
}

func (h *PharmacyHandler) Patients(w http.ResponseWriter, r *http.Request) {
	patients, err := h.pharmacyUsecase.Patients(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Patients retrieved successfully", patients.Users, &response.Meta{Total: patients.Total})
}

func (h *PharmacyHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	feedbacks, err := h.pharmacyUsecase.Feedback(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get feedback")
		return
	}

	response.Success(w, http.StatusOK, "Feedback retrieved successfully", feedbacks)
}

func (h *PharmacyHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics, err := h.pharmacyUsecase.Analytics(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get analytics")
		return
	}

	response.Success(w, http.StatusOK, "Analytics retrieved successfully", analytics)
}

func writeOrderError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrPatientNotFound:
		response.NotFound(w, "Patient not found")
	case usecase.ErrMedicineNotFound:
		response.NotFound(w, "Medicine not found")
	case usecase.ErrOrderNotFound:
		response.NotFound(w, "Order not found")
	case usecase.ErrInsufficientStock, usecase.ErrOrderNotPending:
		response.Conflict(w, err.Error())
	default:
		response.InternalServerError(w, fallback)
	}
}
