package usecase_test

import (
	"context"
	"testing"

	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newPharmacyUsecase(e *env) usecase.PharmacyUsecase {
	return usecase.NewPharmacyUsecase(e.log, e.users, e.inventory, e.orders, e.feedbacks, e.audit)
}

func stockOf(t *testing.T, e *env, id string) int {
	t.Helper()
	item, err := e.inventory.FindByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, item)
	return item.Stock
}

func TestPharmacyUsecase_CreateOrderReservesStock(t *testing.T) {
	e := newEnv(t)
	pharmacy := newPharmacyUsecase(e)
	ctx := context.Background()

	order, err := pharmacy.CreateOrder(ctx, e.sessionFor(t, "PH001"), &dto.CreateOrderRequest{
		PatientID: "P001", MedicineID: "M001", Quantity: 20,
	})
	require.NoError(t, err)
	require.Equal(t, "pending", order.Status)
	require.Equal(t, "Amit Patel", order.PatientName)
	require.True(t, decimal.NewFromInt(200).Equal(order.Total))
	require.Equal(t, 480, stockOf(t, e, "M001"))
}

func TestPharmacyUsecase_InsufficientStockLeavesInventory(t *testing.T) {
	e := newEnv(t)
	pharmacy := newPharmacyUsecase(e)
	ctx := context.Background()

	before, err := e.orders.FindAll(ctx)
	require.NoError(t, err)

	_, err = pharmacy.CreateOrder(ctx, e.sessionFor(t, "PH001"), &dto.CreateOrderRequest{
		PatientID: "P001", MedicineID: "M003", Quantity: 251,
	})
	require.ErrorIs(t, err, usecase.ErrInsufficientStock)
	require.Equal(t, 250, stockOf(t, e, "M003"))

	after, err := e.orders.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))
}

func TestPharmacyUsecase_CreateOrderValidatesReferences(t *testing.T) {
	e := newEnv(t)
	pharmacy := newPharmacyUsecase(e)
	session := e.sessionFor(t, "PH001")
	ctx := context.Background()

	_, err := pharmacy.CreateOrder(ctx, session, &dto.CreateOrderRequest{PatientID: "D001", MedicineID: "M001", Quantity: 1})
	require.ErrorIs(t, err, usecase.ErrPatientNotFound)

	_, err = pharmacy.CreateOrder(ctx, session, &dto.CreateOrderRequest{PatientID: "P001", MedicineID: "M404", Quantity: 1})
	require.ErrorIs(t, err, usecase.ErrMedicineNotFound)
}

func TestPharmacyUsecase_CancelRestoresStockAndKeepsOrder(t *testing.T) {
	e := newEnv(t)
	pharmacy := newPharmacyUsecase(e)
	session := e.sessionFor(t, "PH001")
	ctx := context.Background()

	order, err := pharmacy.CreateOrder(ctx, session, &dto.CreateOrderRequest{PatientID: "P002", MedicineID: "M002", Quantity: 30})
	require.NoError(t, err)
	require.Equal(t, 270, stockOf(t, e, "M002"))

	cancelled, err := pharmacy.CancelOrder(ctx, session, order.ID)
	require.NoError(t, err)
	require.Equal(t, "cancelled", cancelled.Status)
	require.Equal(t, 300, stockOf(t, e, "M002"))

	stored, err := e.orders.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)

	_, err = pharmacy.CompleteOrder(ctx, session, order.ID)
	require.ErrorIs(t, err, usecase.ErrOrderNotPending)

	_, err = pharmacy.CancelOrder(ctx, session, "ORD-404")
	require.ErrorIs(t, err, usecase.ErrOrderNotFound)
}

func TestPharmacyUsecase_PlaceOrderForSelf(t *testing.T) {
	e := newEnv(t)
	pharmacy := newPharmacyUsecase(e)
	patient := e.sessionFor(t, "P002")
	ctx := context.Background()

	order, err := pharmacy.PlaceOrder(ctx, patient, &dto.PlaceOrderRequest{MedicineID: "M001", Quantity: 2})
	require.NoError(t, err)
	require.Equal(t, "P002", order.PatientID)

	mine, err := pharmacy.PatientOrders(ctx, patient)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, order.ID, mine[0].ID)
}

func TestPharmacyUsecase_AnalyticsCountsRevenueOfCompletedOrders(t *testing.T) {
	e := newEnv(t)
	pharmacy := newPharmacyUsecase(e)
	session := e.sessionFor(t, "PH001")
	ctx := context.Background()

	_, err := pharmacy.CompleteOrder(ctx, session, "ORD001")
	require.NoError(t, err)

	analytics, err := pharmacy.Analytics(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, analytics.TotalMedicines)
	require.Equal(t, 0, analytics.PendingOrders)
	require.Equal(t, 1, analytics.CompletedOrders)
	require.True(t, decimal.NewFromInt(100).Equal(analytics.Revenue))
}

func TestPharmacyUsecase_MedicineLifecycle(t *testing.T) {
	e := newEnv(t)
	pharmacy := newPharmacyUsecase(e)
	session := e.sessionFor(t, "PH001")
	ctx := context.Background()

	_, err := pharmacy.AddMedicine(ctx, session, &dto.CreateMedicineRequest{Name: "Cetirizine", Price: decimal.NewFromInt(-1), ExpiryDate: "2030-01-01"})
	require.ErrorIs(t, err, usecase.ErrInvalidPrice)

	added, err := pharmacy.AddMedicine(ctx, session, &dto.CreateMedicineRequest{
		Name: "Cetirizine 10mg", Stock: 20, Price: decimal.RequireFromString("4.50"), ExpiryDate: "2030-01-01",
	})
	require.NoError(t, err)
	require.Equal(t, "Low Stock", added.StockStatus.Label)

	stock := 120
	updated, err := pharmacy.UpdateMedicine(ctx, session, added.ID, &dto.UpdateMedicineRequest{Stock: &stock})
	require.NoError(t, err)
	require.Equal(t, 120, updated.Stock)
	require.Equal(t, "Cetirizine 10mg", updated.Name)

	found, err := pharmacy.Inventory(ctx, "cetirizine")
	require.NoError(t, err)
	require.Equal(t, 1, found.Total)

	require.NoError(t, pharmacy.DeleteMedicine(ctx, session, added.ID))
	require.ErrorIs(t, pharmacy.DeleteMedicine(ctx, session, added.ID), usecase.ErrMedicineNotFound)
}
