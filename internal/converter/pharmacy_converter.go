package converter

import (
	"time"

	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
)

// MedicineToResponse renders an inventory item with its stock and expiry
// status as of now.
func MedicineToResponse(item *entity.InventoryItem, now time.Time) *dto.MedicineResponse {
	if item == nil {
		return nil
	}

	response := &dto.MedicineResponse{
		ID:           item.ID,
		Name:         item.Name,
		Description:  item.Description,
		Stock:        item.Stock,
		Price:        item.Price,
		ExpiryDate:   item.ExpiryDate,
		StockStatus:  statusToResponse(item.StockLevel()),
		ExpiryStatus: statusToResponse(item.ExpiryLevel(now)),
		AddedBy:      item.AddedBy,
		AddedDate:    item.AddedDate,
		UpdatedDate:  item.UpdatedDate,
	}
	if days, ok := item.DaysToExpiry(now); ok {
		response.DaysToExpiry = &days
	}
	return response
}

func MedicinesToResponses(items []entity.InventoryItem, now time.Time) []dto.MedicineResponse {
	responses := make([]dto.MedicineResponse, len(items))
	for i := range items {
		responses[i] = *MedicineToResponse(&items[i], now)
	}
	return responses
}

func OrderToResponse(order *entity.Order) *dto.OrderResponse {
	if order == nil {
		return nil
	}

	return &dto.OrderResponse{
		ID:           order.ID,
		PatientID:    order.PatientID,
		PatientName:  order.PatientName,
		MedicineID:   order.MedicineID,
		MedicineName: order.MedicineName,
		Quantity:     order.Quantity,
		UnitPrice:    order.UnitPrice,
		Total:        order.Total,
		Status:       string(order.Status),
		Badge:        string(entity.OrderBadge(order.Status)),
		OrderDate:    order.OrderDate,
	}
}

func OrdersToResponses(orders []entity.Order) []dto.OrderResponse {
	responses := make([]dto.OrderResponse, len(orders))
	for i := range orders {
		responses[i] = *OrderToResponse(&orders[i])
	}
	return responses
}

func statusToResponse(level entity.StockLevel) dto.StatusResponse {
	return dto.StatusResponse{
		Label: level.Label,
		Badge: string(level.Badge),
	}
}
