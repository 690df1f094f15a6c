package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AuditLog is an append-only record of a state-changing operation.
type AuditLog struct {
	ID        int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    *uuid.UUID `gorm:"type:uuid;index" json:"user_id,omitempty"`
	Action    string     `gorm:"type:varchar(100);not null;index" json:"action"`
	Metadata  Metadata   `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// Metadata is stored as JSONB.
type Metadata map[string]any

func (m Metadata) Value() (driver.Value, error) {
	if len(m) == 0 {
		return nil, nil
	}
	return json.Marshal(m)
}

func (m *Metadata) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*m = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported metadata type %T", value)
	}
	out := Metadata{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return err
	}
	*m = out
	return nil
}

const (
	AuditActionUserRegister        = "user.register"
	AuditActionUserLogin           = "user.login"
	AuditActionUserLogout          = "user.logout"
	AuditActionUserDelete          = "user.delete"
	AuditActionProfileCreate       = "profile.create"
	AuditActionProfileUpdate       = "profile.update"
	AuditActionAppointmentCreate   = "appointment.create"
	AuditActionAppointmentAccept   = "appointment.accept"
	AuditActionAppointmentReject   = "appointment.reject"
	AuditActionAppointmentComplete = "appointment.complete"
	AuditActionAvailabilityCreate  = "availability.create"
	AuditActionAvailabilityDelete  = "availability.delete"
	AuditActionKycSubmit           = "kyc.submit"
	AuditActionKycApprove          = "kyc.approve"
	AuditActionKycReject           = "kyc.reject"
	AuditActionServiceCreate       = "service.create"
	AuditActionServiceAttach       = "service.attach"
)
