package models

import (
	"time"

	"gorm.io/gorm"
)

type RefundStatus string

const (
	RefundRequested RefundStatus = "Requested"
	RefundApproved  RefundStatus = "Approved"
	RefundDenied    RefundStatus = "Denied"
)

// RefundRequest is raised by a guest against a cancelled reservation. At most
// one open request may exist per reservation.
type RefundRequest struct {
	gorm.Model

	ReservationID uint    `gorm:"index;column:reservation_id" json:"reservation_id"`
	Reason        string  `gorm:"type:text" json:"reason"`
	Amount        float64 `json:"amount"`

	Status     RefundStatus `gorm:"size:32;default:Requested;index" json:"status"`
	ReviewedBy *uint        `gorm:"column:reviewed_by" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time   `json:"reviewed_at,omitempty"`

	Reservation Reservation `gorm:"foreignKey:ReservationID;references:ID" json:"reservation,omitempty"`
}
