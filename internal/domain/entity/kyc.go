package entity

import (
	"time"

	"github.com/google/uuid"

	"clinic-booking-service/internal/domain/apperror"
)

type KycStatus string

const (
	KycStatusPending  KycStatus = "pending"
	KycStatusApproved KycStatus = "approved"
	KycStatusRejected KycStatus = "rejected"
)

func (s KycStatus) Valid() bool {
	return s == KycStatusPending || s == KycStatusApproved || s == KycStatusRejected
}

// CanTransitionTo allows only decisions on a pending record.
func (s KycStatus) CanTransitionTo(next KycStatus) bool {
	return s == KycStatusPending && (next == KycStatusApproved || next == KycStatusRejected)
}

// Kyc is the identity verification record of a practitioner.
type Kyc struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PractitionerID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"practitioner_id"`
	Status         KycStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Kyc) TableName() string {
	return "kycs"
}

// CanResubmit reports whether a new submission may replace this record.
func (k *Kyc) CanResubmit() bool {
	return k.Status == KycStatusRejected
}

// Decide records a review outcome on a pending record.
func (k *Kyc) Decide(next KycStatus) error {
	if !k.Status.CanTransitionTo(next) {
		return apperror.InvalidState("kyc is " + string(k.Status) + ", cannot become " + string(next))
	}
	k.Status = next
	return nil
}
