package entity

import "github.com/google/uuid"

// Badge is the presentation class attached to a status in views.
type Badge string

const (
	BadgeInfo      Badge = "info"
	BadgeSuccess   Badge = "success"
	BadgeWarning   Badge = "warning"
	BadgeDanger    Badge = "danger"
	BadgeSecondary Badge = "secondary"
)

// Record id prefixes
const (
	PrefixAppointment  = "APT"
	PrefixPrescription = "RX"
	PrefixMedicine     = "MED"
	PrefixOrder        = "ORD"
	PrefixConsultation = "CONSULT"
	PrefixFeedback     = "FB"
	PrefixDocument     = "DOC"
	PrefixHealthReport = "RPT"
	PrefixNote         = "NOTE"
	PrefixSymptomCheck = "SYM"
	PrefixSafetyCheck  = "SAFE"
	PrefixMessage      = "MSG"
	PrefixHealthID     = "HID"
)

var roleIDPrefixes = map[Role]string{
	RoleDoctor:     "D",
	RolePatient:    "P",
	RolePharmacist: "PH",
	RoleAdmin:      "A",
}

var appointmentBadges = map[AppointmentStatus]Badge{
	AppointmentStatusScheduled: BadgeInfo,
	AppointmentStatusCompleted: BadgeSuccess,
	AppointmentStatusCancelled: BadgeDanger,
}

var orderBadges = map[OrderStatus]Badge{
	OrderStatusPending:   BadgeWarning,
	OrderStatusCompleted: BadgeSuccess,
	OrderStatusCancelled: BadgeDanger,
}

var consultationBadges = map[ConsultationStatus]Badge{
	ConsultationStatusActive:    BadgeInfo,
	ConsultationStatusCompleted: BadgeSuccess,
}

// NewID returns a collision-free id carrying the given prefix, e.g. "APT-3f0c...".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func AppointmentBadge(status AppointmentStatus) Badge {
	return badgeOr(appointmentBadges, status)
}

func OrderBadge(status OrderStatus) Badge {
	return badgeOr(orderBadges, status)
}

func ConsultationBadge(status ConsultationStatus) Badge {
	return badgeOr(consultationBadges, status)
}

func badgeOr[K comparable](m map[K]Badge, key K) Badge {
	if badge, ok := m[key]; ok {
		return badge
	}
	return BadgeSecondary
}
