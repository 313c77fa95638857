package services

import (
	"errors"
	"fmt"
	"time"

	"hms-backend/models"
)

// Sentinel errors returned by the reservation services. Controllers map them
// to HTTP statuses with errors.Is / errors.As instead of string matching.
var (
	ErrInvalidInterval = errors.New("invalid_interval")
	ErrUnitNotFound    = errors.New("unit_not_found")
	ErrUnitUnavailable = errors.New("unit_unavailable")
	ErrNotFound        = errors.New("reservation_not_found")
	ErrInvalidState    = errors.New("invalid_state")
	ErrTerminalState   = errors.New("terminal_state")
	ErrUnitOccupied    = errors.New("unit_has_active_reservations")
)

// ConflictError reports the reservation that already holds the requested
// dates, so callers can suggest alternatives.
type ConflictError struct {
	UnitID        uint
	ReservationID uint
	ReferenceCode string
	CheckIn       time.Time
	CheckOut      time.Time
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("unit %d already reserved %s to %s (reservation %s)",
		e.UnitID,
		e.CheckIn.Format("2006-01-02"),
		e.CheckOut.Format("2006-01-02"),
		e.ReferenceCode,
	)
}

func newConflictError(r *models.Reservation) *ConflictError {
	return &ConflictError{
		UnitID:        r.UnitID,
		ReservationID: r.ID,
		ReferenceCode: r.ReferenceCode,
		CheckIn:       r.CheckIn,
		CheckOut:      r.CheckOut,
	}
}
