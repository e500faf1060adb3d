package entity

import "time"

// HealthID is the digital health card of a patient, stored per user.
type HealthID struct {
	HID       string    `json:"hid"`
	UserID    string    `json:"userId"`
	QRCode    string    `json:"qrCode"`
	CreatedAt time.Time `json:"createdAt"`
}

// HealthIDPayload is the content encoded into the QR code
type HealthIDPayload struct {
	HID       string `json:"hid"`
	Name      string `json:"name"`
	Age       int    `json:"age,omitempty"`
	BloodType string `json:"bg,omitempty"`
	Allergies string `json:"allergies,omitempty"`
	Emergency string `json:"emergency,omitempty"`
}
