package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ReservationStatus is the closed set of reservation lifecycle states.
// Transition legality lives here and nowhere else.
type ReservationStatus string

const (
	StatusProvisional ReservationStatus = "Provisional"
	StatusConfirmed   ReservationStatus = "Confirmed"
	StatusCheckedIn   ReservationStatus = "CheckedIn"
	StatusCheckedOut  ReservationStatus = "CheckedOut"
	StatusCancelled   ReservationStatus = "Cancelled"
)

// BlockingStatuses are the states that occupy a unit's calendar. A Provisional
// reservation (payment pending) still holds the slot.
func BlockingStatuses() []ReservationStatus {
	return []ReservationStatus{StatusProvisional, StatusConfirmed, StatusCheckedIn}
}

func (s ReservationStatus) Blocks() bool {
	return s == StatusProvisional || s == StatusConfirmed || s == StatusCheckedIn
}

func (s ReservationStatus) IsTerminal() bool {
	return s == StatusCheckedOut || s == StatusCancelled
}

// CanTransitionTo reports whether moving from s to next is a legal lifecycle
// step. Cancel is allowed from any non-terminal state.
func (s ReservationStatus) CanTransitionTo(next ReservationStatus) bool {
	if s.IsTerminal() {
		return false
	}
	switch next {
	case StatusConfirmed:
		return s == StatusProvisional
	case StatusCheckedIn:
		return s == StatusConfirmed
	case StatusCheckedOut:
		return s == StatusCheckedIn
	case StatusCancelled:
		return true
	}
	return false
}

// Interval is a half-open stay range [Start, End): the guest occupies the
// night of Start and leaves on End, so back-to-back stays share a boundary
// without conflicting.
type Interval struct {
	Start time.Time
	End   time.Time
}

func (iv Interval) IsValid() bool {
	return !iv.Start.IsZero() && !iv.End.IsZero() && iv.Start.Before(iv.End)
}

// Overlaps is the only overlap test in the system.
func (iv Interval) Overlaps(other Interval) bool {
	return iv.Start.Before(other.End) && other.Start.Before(iv.End)
}

// Nights returns the whole nights covered by the interval, minimum 1 for any
// valid range shorter than a day.
func (iv Interval) Nights() int {
	if !iv.IsValid() {
		return 0
	}
	n := int(iv.End.Sub(iv.Start).Hours() / 24)
	if n <= 0 {
		n = 1
	}
	return n
}

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	ReferenceCode string `gorm:"column:reference_code;uniqueIndex;size:64" json:"reference_code"`

	UnitID     uint `gorm:"index;column:unit_id" json:"unit_id"`
	CustomerID uint `gorm:"index;column:customer_id" json:"customer_id"`

	CheckIn  time.Time `gorm:"column:check_in;index" json:"check_in"`
	CheckOut time.Time `gorm:"column:check_out;index" json:"check_out"`
	Nights   int       `gorm:"column:nights" json:"nights"`

	Status ReservationStatus `gorm:"column:status;size:32;index" json:"status"`

	NumberOfGuests int            `gorm:"column:number_of_guests;default:1" json:"number_of_guests"`
	Occupants      datatypes.JSON `gorm:"column:occupants" json:"occupants,omitempty"`

	Notes      string `gorm:"type:text" json:"notes,omitempty"`
	PaymentRef string `gorm:"column:payment_ref;size:128" json:"payment_ref,omitempty"`

	CheckedInAt  *time.Time `gorm:"column:checked_in_at" json:"checked_in_at,omitempty"`
	CheckedOutAt *time.Time `gorm:"column:checked_out_at" json:"checked_out_at,omitempty"`
	CancelledAt  *time.Time `gorm:"column:cancelled_at" json:"cancelled_at,omitempty"`

	Unit     Unit     `gorm:"foreignKey:UnitID;references:ID" json:"unit,omitempty"`
	Customer Customer `gorm:"foreignKey:CustomerID;references:ID" json:"customer,omitempty"`
}

// Interval rebuilds the stay range from the persisted columns.
func (r *Reservation) Interval() Interval {
	return Interval{Start: r.CheckIn, End: r.CheckOut}
}
