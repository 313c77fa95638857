package models

import (
	"gorm.io/gorm"
)

// Feedback is a guest rating, optionally tied to a completed stay.
type Feedback struct {
	gorm.Model

	CustomerID    uint  `gorm:"index;column:customer_id" json:"customer_id"`
	ReservationID *uint `gorm:"index;column:reservation_id" json:"reservation_id,omitempty"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment,omitempty"`

	Customer Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
}
