package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID   string    `gorm:"type:varchar(64);index" json:"actor_id,omitempty"`
	ActorRole string    `gorm:"type:varchar(20)" json:"actor_role,omitempty"`
	Action    string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Entity    string    `gorm:"type:varchar(50)" json:"entity"`
	EntityID  string    `gorm:"type:varchar(64)" json:"entity_id"`
	Metadata  JSON      `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Common audit actions
const (
	AuditActionUserLogin           = "user.login"
	AuditActionUserLogout          = "user.logout"
	AuditActionUserRegister        = "user.register"
	AuditActionUserUpdate          = "user.update"
	AuditActionUserToggle          = "user.toggle_status"
	AuditActionProfileUpdate       = "profile.update"
	AuditActionAppointmentCreate   = "appointment.create"
	AuditActionAppointmentComplete = "appointment.complete"
	AuditActionAppointmentCancel   = "appointment.cancel"
	AuditActionPrescriptionIssue   = "prescription.issue"
	AuditActionMedicineCreate      = "medicine.create"
	AuditActionMedicineUpdate      = "medicine.update"
	AuditActionMedicineDelete      = "medicine.delete"
	AuditActionOrderCreate         = "order.create"
	AuditActionOrderComplete       = "order.complete"
	AuditActionOrderCancel         = "order.cancel"
	AuditActionConsultationStart   = "consultation.start"
	AuditActionConsultationEnd     = "consultation.end"
	AuditActionFeedbackSubmit      = "feedback.submit"
)
