package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateMedicineRequest struct {
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Stock       int             `json:"stock" validate:"gte=0"`
	Price       decimal.Decimal `json:"price"`
	ExpiryDate  string          `json:"expiry_date" validate:"required,ymd"`
}

// UpdateMedicineRequest changes only the fields that are present
type UpdateMedicineRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Stock       *int             `json:"stock" validate:"omitempty,gte=0"`
	Price       *decimal.Decimal `json:"price"`
	ExpiryDate  string           `json:"expiry_date" validate:"omitempty,ymd"`
}

type CreateOrderRequest struct {
	PatientID  string `json:"patient_id" validate:"required"`
	MedicineID string `json:"medicine_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,gte=1"`
}

// Response DTOs

type StatusResponse struct {
	Label string `json:"label"`
	Badge string `json:"badge"`
}

type MedicineResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description,omitempty"`
	Stock        int             `json:"stock"`
	Price        decimal.Decimal `json:"price"`
	ExpiryDate   string          `json:"expiry_date"`
	DaysToExpiry *int            `json:"days_to_expiry,omitempty"`
	StockStatus  StatusResponse  `json:"stock_status"`
	ExpiryStatus StatusResponse  `json:"expiry_status"`
	AddedBy      string          `json:"added_by,omitempty"`
	AddedDate    time.Time       `json:"added_date"`
	UpdatedDate  time.Time       `json:"updated_date,omitempty"`
}

type MedicineListResponse struct {
	Medicines []MedicineResponse `json:"medicines"`
	Total     int                `json:"total"`
}

type OrderResponse struct {
	ID           string          `json:"id"`
	PatientID    string          `json:"patient_id"`
	PatientName  string          `json:"patient_name"`
	MedicineID   string          `json:"medicine_id"`
	MedicineName string          `json:"medicine_name"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Total        decimal.Decimal `json:"total"`
	Status       string          `json:"status"`
	Badge        string          `json:"badge"`
	OrderDate    time.Time       `json:"order_date"`
}

type PharmacyAnalyticsResponse struct {
	TotalMedicines  int             `json:"total_medicines"`
	LowStock        int             `json:"low_stock"`
	ExpiringSoon    int             `json:"expiring_soon"`
	PendingOrders   int             `json:"pending_orders"`
	CompletedOrders int             `json:"completed_orders"`
	Revenue         decimal.Decimal `json:"revenue"`
}
