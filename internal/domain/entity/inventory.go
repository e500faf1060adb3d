package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LowStockThreshold = 50
	ExpiryWarningDays = 30
	expiryDateLayout  = "2006-01-02"
	hoursPerDay       = 24
)

// InventoryItem is a medicine held by the pharmacy
type InventoryItem struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Stock       int             `json:"stock"`
	Price       decimal.Decimal `json:"price"`
	ExpiryDate  string          `json:"expiryDate"`
	AddedBy     string          `json:"addedBy,omitempty"`
	AddedDate   time.Time       `json:"addedDate,omitempty"`
	UpdatedDate time.Time       `json:"updatedDate,omitempty"`
}

func (i InventoryItem) GetID() string { return i.ID }

// StockLevel classifies the current stock
type StockLevel struct {
	Label string `json:"label"`
	Badge Badge  `json:"badge"`
}

func (i *InventoryItem) StockLevel() StockLevel {
	switch {
	case i.Stock <= 0:
		return StockLevel{Label: "Out of Stock", Badge: BadgeDanger}
	case i.Stock < LowStockThreshold:
		return StockLevel{Label: "Low Stock", Badge: BadgeWarning}
	default:
		return StockLevel{Label: "In Stock", Badge: BadgeSuccess}
	}
}

// IsLowStock reports stock under the low stock threshold, including zero
func (i *InventoryItem) IsLowStock() bool {
	return i.Stock < LowStockThreshold
}

// DaysToExpiry returns whole days from now until the expiry date. ok is false
// when the expiry date cannot be parsed.
func (i *InventoryItem) DaysToExpiry(now time.Time) (days int, ok bool) {
	expiry, err := time.Parse(expiryDateLayout, i.ExpiryDate)
	if err != nil {
		return 0, false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(expiry.Sub(today).Hours() / hoursPerDay), true
}

func (i *InventoryItem) ExpiryLevel(now time.Time) StockLevel {
	days, ok := i.DaysToExpiry(now)
	switch {
	case !ok:
		return StockLevel{Label: "Unknown", Badge: BadgeSecondary}
	case days < 0:
		return StockLevel{Label: "Expired", Badge: BadgeDanger}
	case days < ExpiryWarningDays:
		return StockLevel{Label: "Expiring Soon", Badge: BadgeWarning}
	default:
		return StockLevel{Label: "Valid", Badge: BadgeSuccess}
	}
}

// ParseExpiryDate validates a YYYY-MM-DD expiry date
func ParseExpiryDate(value string) (time.Time, error) {
	return time.Parse(expiryDateLayout, value)
}
