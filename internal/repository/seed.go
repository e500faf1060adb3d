package repository

import (
	"context"
	"fmt"
	"time"

	"swasthya-portal/internal/domain/entity"
	domainRepo "swasthya-portal/internal/domain/repository"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	user     entity.User
	password string
}

func defaultUsers(now time.Time) []seedUser {
	return []seedUser{
		{password: "doctor123", user: entity.User{
			ID: "D001", Email: "doctor@test.com", Name: "Dr. Rajesh Kumar", Role: entity.RoleDoctor,
			Specialization: "Cardiologist", Phone: "+91-9876543210", Active: true, CreatedAt: now,
		}},
		{password: "doctor123", user: entity.User{
			ID: "D002", Email: "doctor2@test.com", Name: "Dr. Priya Sharma", Role: entity.RoleDoctor,
			Specialization: "Pediatrician", Phone: "+91-9876543211", Active: true, CreatedAt: now,
		}},
		{password: "patient123", user: entity.User{
			ID: "P001", Email: "patient@test.com", Name: "Amit Patel", Role: entity.RolePatient,
			Age: 35, Phone: "+91-9876543220", BloodGroup: "O+", Active: true, CreatedAt: now,
		}},
		{password: "patient123", user: entity.User{
			ID: "P002", Email: "patient2@test.com", Name: "Sneha Gupta", Role: entity.RolePatient,
			Age: 28, Phone: "+91-9876543221", BloodGroup: "A+", Active: true, CreatedAt: now,
		}},
		{password: "pharma123", user: entity.User{
			ID: "PH001", Email: "pharmacist@test.com", Name: "Suresh Reddy", Role: entity.RolePharmacist,
			LicenseNo: "PH-2023-001", Phone: "+91-9876543230", Active: true, CreatedAt: now,
		}},
		{password: "admin123", user: entity.User{
			ID: "A001", Email: "admin@test.com", Name: "Admin User", Role: entity.RoleAdmin,
			Phone: "+91-9876543240", Active: true, CreatedAt: now,
		}},
	}
}

func defaultInventory(now time.Time) []entity.InventoryItem {
	return []entity.InventoryItem{
		{ID: "M001", Name: "Paracetamol 500mg", Stock: 500, Price: decimal.NewFromInt(10), ExpiryDate: "2026-12-31", AddedDate: now},
		{ID: "M002", Name: "Amoxicillin 250mg", Stock: 300, Price: decimal.NewFromInt(50), ExpiryDate: "2026-06-30", AddedDate: now},
		{ID: "M003", Name: "Ibuprofen 400mg", Stock: 250, Price: decimal.NewFromInt(15), ExpiryDate: "2025-12-31", AddedDate: now},
	}
}

func defaultPrescriptions(now time.Time) []entity.Prescription {
	return []entity.Prescription{{
		ID:          "RX001",
		PatientID:   "P001",
		PatientName: "Amit Patel",
		DoctorID:    "D001",
		DoctorName:  "Dr. Rajesh Kumar",
		Medicines: []entity.MedicineLine{
			{Name: "Paracetamol 500mg", Dosage: "1 tablet", Frequency: "Twice daily", Duration: "5 days"},
			{Name: "Amoxicillin 250mg", Dosage: "1 capsule", Frequency: "Thrice daily", Duration: "7 days"},
		},
		Notes:    "Take after meals",
		IssuedAt: now,
	}}
}

func defaultOrders(now time.Time) []entity.Order {
	return []entity.Order{{
		ID:           "ORD001",
		PatientID:    "P001",
		PatientName:  "Amit Patel",
		MedicineID:   "M001",
		MedicineName: "Paracetamol 500mg",
		Quantity:     10,
		UnitPrice:    decimal.NewFromInt(10),
		Total:        decimal.NewFromInt(100),
		Status:       entity.OrderStatusPending,
		OrderDate:    now,
	}}
}

// SeedDefaults writes the demo roster and catalog for every key that does not
// exist yet. Existing data is never overwritten, so it is safe on every start.
func SeedDefaults(ctx context.Context, store domainRepo.Store, log *logrus.Logger, bcryptCost int) error {
	now := time.Now()

	exists, err := store.Exists(ctx, domainRepo.KeyUsers)
	if err != nil {
		return err
	}
	if !exists {
		users := make([]entity.User, 0, 6)
		for _, seed := range defaultUsers(now) {
			hashed, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcryptCost)
			if err != nil {
				return fmt.Errorf("hash seed password for %s: %w", seed.user.ID, err)
			}
			seed.user.Password = string(hashed)
			users = append(users, seed.user)
		}
		if err := seedKey(ctx, store, log, domainRepo.KeyUsers, users); err != nil {
			return err
		}
	}

	if err := seedKey(ctx, store, log, domainRepo.KeyInventory, defaultInventory(now)); err != nil {
		return err
	}
	if err := seedKey(ctx, store, log, domainRepo.KeyPrescriptions, defaultPrescriptions(now)); err != nil {
		return err
	}
	return seedKey(ctx, store, log, domainRepo.KeyOrders, defaultOrders(now))
}

func seedKey(ctx context.Context, store domainRepo.Store, log *logrus.Logger, key string, value any) error {
	written, err := store.WriteIfAbsent(ctx, key, value)
	if err != nil {
		return fmt.Errorf("seed %s: %w", key, err)
	}
	if written {
		log.Infof("Seeded default data for %s", key)
	}
	return nil
}
