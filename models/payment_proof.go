package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentProofStatus string

const (
	ProofSubmitted PaymentProofStatus = "Submitted"
	ProofApproved  PaymentProofStatus = "Approved"
	ProofRejected  PaymentProofStatus = "Rejected"
)

// PaymentProof records an externally held proof of payment for a reservation.
// Approving it confirms the reservation; the upload itself lives outside this
// service, only the reference string is kept.
type PaymentProof struct {
	gorm.Model

	ReservationID uint    `gorm:"index;column:reservation_id" json:"reservation_id"`
	Reference     string  `gorm:"size:128" json:"reference"`
	Amount        float64 `json:"amount"`

	Status     PaymentProofStatus `gorm:"size:32;default:Submitted;index" json:"status"`
	ReviewNote string             `gorm:"type:text" json:"review_note,omitempty"`
	ReviewedBy *uint              `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time         `json:"reviewed_at,omitempty"`

	Reservation Reservation `gorm:"foreignKey:ReservationID;references:ID" json:"reservation,omitempty"`
}
