package entity_test

import (
	"strings"
	"testing"
	"time"

	"swasthya-portal/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestInventoryItem_StockLevel(t *testing.T) {
	tests := []struct {
		stock int
		label string
		low   bool
	}{
		{stock: 0, label: "Out of Stock", low: true},
		{stock: 49, label: "Low Stock", low: true},
		{stock: 50, label: "In Stock", low: false},
	}

	for _, tt := range tests {
		item := entity.InventoryItem{Stock: tt.stock}
		assert.Equal(t, tt.label, item.StockLevel().Label, "stock %d", tt.stock)
		assert.Equal(t, tt.low, item.IsLowStock(), "stock %d", tt.stock)
	}
}

func TestInventoryItem_ExpiryLevel(t *testing.T) {
	now := time.Date(2025, 6, 1, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		expiry string
		label  string
	}{
		{expiry: "2025-05-31", label: "Expired"},
		{expiry: "2025-06-15", label: "Expiring Soon"},
		{expiry: "2025-07-01", label: "Valid"},
		{expiry: "31/12/2026", label: "Unknown"},
	}

	for _, tt := range tests {
		item := entity.InventoryItem{ExpiryDate: tt.expiry}
		assert.Equal(t, tt.label, item.ExpiryLevel(now).Label, tt.expiry)
	}

	days, ok := (&entity.InventoryItem{ExpiryDate: "2025-06-11"}).DaysToExpiry(now)
	assert.True(t, ok)
	assert.Equal(t, 10, days)
}

func TestConsultation_Duration(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	c := entity.Consultation{StartTime: start, Mode: entity.CallModeWebRTC, State: entity.CallStateRequestingMedia}

	assert.Equal(t, "In Progress", c.Duration())

	c.End(start.Add(14*time.Minute + 40*time.Second))
	assert.Equal(t, "14 minutes", c.Duration())
	assert.True(t, c.IsEnded())
	assert.Equal(t, entity.ConsultationStatusCompleted, c.Status)
	assert.False(t, c.MicEnabled)
}

func TestConsultation_DurationRoundsDown(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	cases := []struct {
		elapsed time.Duration
		want    string
	}{
		{30 * time.Second, "0 minutes"},
		{90 * time.Second, "1 minutes"},
		{2*time.Minute + 59*time.Second, "2 minutes"},
		{time.Hour, "60 minutes"},
	}
	for _, tc := range cases {
		end := start.Add(tc.elapsed)
		c := entity.Consultation{StartTime: start, EndTime: &end}
		assert.Equal(t, tc.want, c.Duration(), tc.elapsed.String())
	}
}

func TestConsultation_MediaDeniedDowngrades(t *testing.T) {
	c := entity.Consultation{Mode: entity.CallModeWebRTC, State: entity.CallStateRequestingMedia}
	c.MediaResult(false)

	assert.Equal(t, entity.CallModeSimulation, c.Mode)
	assert.Equal(t, entity.CallStateConnected, c.State)
}

func TestSession_HasRole(t *testing.T) {
	s := &entity.Session{User: entity.User{ID: "PH001", Role: entity.RolePharmacist}}

	assert.True(t, s.HasRole(entity.RoleAdmin, entity.RolePharmacist))
	assert.False(t, s.HasRole(entity.RoleDoctor))
	assert.Equal(t, "PH", entity.RolePharmacist.IDPrefix())
	assert.False(t, entity.Role("nurse").IsValid())
}

func TestNewID_Prefixed(t *testing.T) {
	a := entity.NewID(entity.PrefixOrder)
	b := entity.NewID(entity.PrefixOrder)

	assert.True(t, strings.HasPrefix(a, "ORD-"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, entity.BadgeWarning, entity.OrderBadge(entity.OrderStatusPending))
	assert.Equal(t, entity.BadgeSecondary, entity.OrderBadge("unknown"))
}
