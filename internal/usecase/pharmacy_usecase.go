package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"swasthya-portal/internal/converter"
	"swasthya-portal/internal/delivery/dto"
	"swasthya-portal/internal/domain/entity"
	"swasthya-portal/internal/domain/repository"
	"swasthya-portal/internal/service"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const compensationTimeout = 5 * time.Second

var (
	ErrMedicineNotFound  = errors.New("medicine not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidPrice      = errors.New("price must not be negative")
	ErrOrderNotFound     = errors.New("order not found")
	ErrOrderNotPending   = errors.New("only pending orders can be changed")
)

type PharmacyUsecase interface {
	Inventory(ctx context.Context, search string) (*dto.MedicineListResponse, error)
	AddMedicine(ctx context.Context, session *entity.Session, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error)
	UpdateMedicine(ctx context.Context, session *entity.Session, id string, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error)
	DeleteMedicine(ctx context.Context, session *entity.Session, id string) error

	CreateOrder(ctx context.Context, session *entity.Session, req *dto.CreateOrderRequest) (*dto.OrderResponse, error)
	PlaceOrder(ctx context.Context, session *entity.Session, req *dto.PlaceOrderRequest) (*dto.OrderResponse, error)
	CompleteOrder(ctx context.Context, session *entity.Session, id string) (*dto.OrderResponse, error)
	CancelOrder(ctx context.Context, session *entity.Session, id string) (*dto.OrderResponse, error)
	Orders(ctx context.Context) ([]dto.OrderResponse, error)
	PatientOrders(ctx context.Context, session *entity.Session) ([]dto.OrderResponse, error)

	Patients(ctx context.Context) (*dto.UserListResponse, error)
	Feedback(ctx context.Context) ([]dto.FeedbackResponse, error)
	Analytics(ctx context.Context) (*dto.PharmacyAnalyticsResponse, error)
}

type pharmacyUsecase struct {
	log           *logrus.Logger
	userRepo      repository.UserRepository
	inventoryRepo repository.InventoryRepository
	orderRepo     repository.OrderRepository
	feedbackRepo  repository.FeedbackRepository
	auditService  service.AuditService
}

func NewPharmacyUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	inventoryRepo repository.InventoryRepository,
	orderRepo repository.OrderRepository,
	feedbackRepo repository.FeedbackRepository,
	auditService service.AuditService,
) PharmacyUsecase {
	return &pharmacyUsecase{
		log:           log,
		userRepo:      userRepo,
		inventoryRepo: inventoryRepo,
		orderRepo:     orderRepo,
		feedbackRepo:  feedbackRepo,
		auditService:  auditService,
	}
}

func (u *pharmacyUsecase) Inventory(ctx context.Context, search string) (*dto.MedicineListResponse, error) {
	items, err := u.inventoryRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find inventory: %+v", err)
		return nil, err
	}

	filtered := make([]entity.InventoryItem, 0, len(items))
	for _, item := range items {
		if search == "" || containsFold(item.Name, search) || containsFold(item.ID, search) {
			filtered = append(filtered, item)
		}
	}

	return &dto.MedicineListResponse{
		Medicines: converter.MedicinesToResponses(filtered, time.Now()),
		Total:     len(filtered),
	}, nil
}

func (u *pharmacyUsecase) AddMedicine(ctx context.Context, session *entity.Session, req *dto.CreateMedicineRequest) (*dto.MedicineResponse, error) {
	if req.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	now := time.Now()
	item := entity.InventoryItem{
		ID:          entity.NewID(entity.PrefixMedicine),
		Name:        req.Name,
		Description: req.Description,
		Stock:       req.Stock,
		Price:       req.Price,
		ExpiryDate:  req.ExpiryDate,
		AddedBy:     session.UserID(),
		AddedDate:   now,
	}

	if err := u.inventoryRepo.Create(ctx, item); err != nil {
		u.log.Warnf("Failed to add medicine: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, session, entity.AuditActionMedicineCreate, "medicine", item.ID, item)

	return converter.MedicineToResponse(&item, now), nil
}

func (u *pharmacyUsecase) UpdateMedicine(ctx context.Context, session *entity.Session, id string, req *dto.UpdateMedicineRequest) (*dto.MedicineResponse, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}

	now := time.Now()
	var before entity.InventoryItem
	updated, err := u.inventoryRepo.Update(ctx, id, func(item *entity.InventoryItem) error {
		before = *item
		setString(&item.Name, req.Name)
		setString(&item.Description, req.Description)
		setString(&item.ExpiryDate, req.ExpiryDate)
		if req.Stock != nil {
			item.Stock = *req.Stock
		}
		if req.Price != nil {
			item.Price = *req.Price
		}
		item.UpdatedDate = now
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMedicineNotFound
		}
		u.log.Warnf("Failed to update medicine %s: %+v", id, err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, session, entity.AuditActionMedicineUpdate, "medicine", id, before, updated)

	return converter.MedicineToResponse(updated, now), nil
}

func (u *pharmacyUsecase) DeleteMedicine(ctx context.Context, session *entity.Session, id string) error {
	item, err := u.inventoryRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find medicine %s: %+v", id, err)
		return err
	}
	if item == nil {
		return ErrMedicineNotFound
	}

	if err := u.inventoryRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrMedicineNotFound
		}
		u.log.Warnf("Failed to delete medicine %s: %+v", id, err)
		return err
	}

	u.auditService.LogDelete(ctx, session, entity.AuditActionMedicineDelete, "medicine", id, item)
	return nil
}

// CreateOrder reserves stock and records a pending order.
//
// Flow:
// 1. Validate the patient and the medicine exist
// 2. Decrement stock atomically (fails with insufficient stock, nothing changed)
// 3. Append the order
// 4. If the append fails -> compensate: give the stock back
func (u *pharmacyUsecase) CreateOrder(ctx context.Context, session *entity.Session, req *dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	// Step 1: Validate patient and medicine
	patient, err := findUserWithRole(ctx, u.userRepo, req.PatientID, entity.RolePatient)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", req.PatientID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	medicine, err := u.inventoryRepo.FindByID(ctx, req.MedicineID)
	if err != nil {
		u.log.Warnf("Failed to find medicine %s: %+v", req.MedicineID, err)
		return nil, err
	}
	if medicine == nil {
		return nil, ErrMedicineNotFound
	}

	// Step 2: Reserve stock
	reserved, err := u.inventoryRepo.AdjustStock(ctx, medicine.ID, -req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInsufficientStock):
			return nil, ErrInsufficientStock
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrMedicineNotFound
		}
		u.log.Warnf("Failed to reserve stock of %s: %+v", medicine.ID, err)
		return nil, err
	}

	// Step 3: Record the order at the current price
	now := time.Now()
	order := entity.Order{
		ID:           entity.NewID(entity.PrefixOrder),
		PatientID:    patient.ID,
		PatientName:  patient.Name,
		MedicineID:   reserved.ID,
		MedicineName: reserved.Name,
		Quantity:     req.Quantity,
		UnitPrice:    reserved.Price,
		Total:        reserved.Price.Mul(decimal.NewFromInt(int64(req.Quantity))),
		Status:       entity.OrderStatusPending,
		CreatedBy:    session.UserID(),
		OrderDate:    now,
	}

	if err := u.orderRepo.Create(ctx, order); err != nil {
		u.log.Errorf("Failed to create order, compensating stock: %+v", err)

		// Step 4: COMPENSATE - put the reserved quantity back
		restoreCtx, cancel := context.WithTimeout(context.Background(), compensationTimeout)
		defer cancel()
		if _, restoreErr := u.inventoryRepo.AdjustStock(restoreCtx, reserved.ID, req.Quantity); restoreErr != nil {
			u.log.Errorf("CRITICAL: Failed to restore stock of %s after order failure: %+v", reserved.ID, restoreErr)
		}
		return nil, err
	}

	u.auditService.LogCreate(ctx, session, entity.AuditActionOrderCreate, "order", order.ID, order)
	u.log.Infof("Order created: id=%s, medicine=%s, qty=%d, stock left=%d", order.ID, reserved.ID, req.Quantity, reserved.Stock)

	return converter.OrderToResponse(&order), nil
}

// PlaceOrder is a patient ordering for themself
func (u *pharmacyUsecase) PlaceOrder(ctx context.Context, session *entity.Session, req *dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	return u.CreateOrder(ctx, session, &dto.CreateOrderRequest{
		PatientID:  session.UserID(),
		MedicineID: req.MedicineID,
		Quantity:   req.Quantity,
	})
}

func (u *pharmacyUsecase) CompleteOrder(ctx context.Context, session *entity.Session, id string) (*dto.OrderResponse, error) {
	updated, err := u.transitionOrder(ctx, id, (*entity.Order).Complete)
	if err != nil {
		return nil, err
	}

	u.auditService.LogUpdate(ctx, session, entity.AuditActionOrderComplete, "order", id,
		map[string]string{"status": string(entity.OrderStatusPending)},
		map[string]string{"status": string(updated.Status)},
	)
	return converter.OrderToResponse(updated), nil
}

// CancelOrder cancels a pending order and returns its quantity to stock. The
// order record is kept.
func (u *pharmacyUsecase) CancelOrder(ctx context.Context, session *entity.Session, id string) (*dto.OrderResponse, error) {
	updated, err := u.transitionOrder(ctx, id, (*entity.Order).Cancel)
	if err != nil {
		return nil, err
	}

	if _, err := u.inventoryRepo.AdjustStock(ctx, updated.MedicineID, updated.Quantity); err != nil {
		// The medicine may have been deleted since; the cancel itself stands
		u.log.Warnf("Failed to restore stock of %s for cancelled order %s: %+v", updated.MedicineID, id, err)
	}

	u.auditService.LogUpdate(ctx, session, entity.AuditActionOrderCancel, "order", id,
		map[string]string{"status": string(entity.OrderStatusPending)},
		map[string]string{"status": string(updated.Status)},
	)
	return converter.OrderToResponse(updated), nil
}

func (u *pharmacyUsecase) Orders(ctx context.Context) ([]dto.OrderResponse, error) {
	return u.orders(ctx, func(*entity.Order) bool { return true })
}

func (u *pharmacyUsecase) PatientOrders(ctx context.Context, session *entity.Session) ([]dto.OrderResponse, error) {
	return u.orders(ctx, func(o *entity.Order) bool { return o.PatientID == session.UserID() })
}

func (u *pharmacyUsecase) Patients(ctx context.Context) (*dto.UserListResponse, error) {
	users, err := u.userRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find users: %+v", err)
		return nil, err
	}

	patients := make([]entity.User, 0)
	for _, user := range users {
		if user.Role == entity.RolePatient {
			patients = append(patients, user)
		}
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(patients),
		Total: len(patients),
	}, nil
}

// Feedback returns the feedback addressed to the pharmacy
func (u *pharmacyUsecase) Feedback(ctx context.Context) ([]dto.FeedbackResponse, error) {
	feedbacks, err := u.feedbackRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find feedbacks: %+v", err)
		return nil, err
	}

	own := make([]entity.Feedback, 0)
	for _, f := range feedbacks {
		if f.Type == entity.FeedbackTypePharmacist {
			own = append(own, f)
		}
	}
	sort.SliceStable(own, func(i, j int) bool { return own[i].Date.After(own[j].Date) })

	return converter.FeedbacksToResponses(own), nil
}

func (u *pharmacyUsecase) Analytics(ctx context.Context) (*dto.PharmacyAnalyticsResponse, error) {
	var (
		items  []entity.InventoryItem
		orders []entity.Order
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = u.inventoryRepo.FindAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		orders, err = u.orderRepo.FindAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load pharmacy analytics: %+v", err)
		return nil, err
	}

	now := time.Now()
	analytics := &dto.PharmacyAnalyticsResponse{
		TotalMedicines: len(items),
		Revenue:        decimal.Zero,
	}
	for i := range items {
		if items[i].IsLowStock() {
			analytics.LowStock++
		}
		if days, ok := items[i].DaysToExpiry(now); ok && days >= 0 && days < entity.ExpiryWarningDays {
			analytics.ExpiringSoon++
		}
	}
	for _, o := range orders {
		switch o.Status {
		case entity.OrderStatusPending:
			analytics.PendingOrders++
		case entity.OrderStatusCompleted:
			analytics.CompletedOrders++
			analytics.Revenue = analytics.Revenue.Add(o.Total)
		}
	}

	return analytics, nil
}

func (u *pharmacyUsecase) transitionOrder(ctx context.Context, id string, change func(*entity.Order, time.Time)) (*entity.Order, error) {
	updated, err := u.orderRepo.Update(ctx, id, func(o *entity.Order) error {
		if !o.IsPending() {
			return ErrOrderNotPending
		}
		change(o, time.Now())
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return nil, ErrOrderNotFound
		case errors.Is(err, ErrOrderNotPending):
			return nil, ErrOrderNotPending
		}
		u.log.Warnf("Failed to update order %s: %+v", id, err)
		return nil, err
	}
	return updated, nil
}

func (u *pharmacyUsecase) orders(ctx context.Context, keep func(*entity.Order) bool) ([]dto.OrderResponse, error) {
	orders, err := u.orderRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find orders: %+v", err)
		return nil, err
	}

	out := make([]entity.Order, 0, len(orders))
	for i := range orders {
		if keep(&orders[i]) {
			out = append(out, orders[i])
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })

	return converter.OrdersToResponses(out), nil
}
