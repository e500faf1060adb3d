package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus represents the status of a medicine order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order of a medicine for a patient
type Order struct {
	ID           string          `json:"id"`
	PatientID    string          `json:"patientId"`
	PatientName  string          `json:"patientName"`
	MedicineID   string          `json:"medicineId"`
	MedicineName string          `json:"medicineName"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Total        decimal.Decimal `json:"total"`
	Status       OrderStatus     `json:"status"`
	CreatedBy    string          `json:"createdBy,omitempty"`
	OrderDate    time.Time       `json:"orderDate"`
	UpdatedAt    time.Time       `json:"updatedAt,omitempty"`
}

func (o Order) GetID() string { return o.ID }

func (o *Order) IsPending() bool {
	return o.Status == OrderStatusPending
}

func (o *Order) Complete(now time.Time) {
	o.Status = OrderStatusCompleted
	o.UpdatedAt = now
}

func (o *Order) Cancel(now time.Time) {
	o.Status = OrderStatusCancelled
	o.UpdatedAt = now
}
