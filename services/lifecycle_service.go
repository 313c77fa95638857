package services

import (
	"errors"
	"fmt"
	"time"

	"hms-backend/models"

	"gorm.io/gorm"
)

// LifecycleService advances reservations through their state machine. No
// other code path mutates status, dates or unit of a persisted reservation.
type LifecycleService struct {
	DB        *gorm.DB
	Admission *AdmissionService
}

func NewLifecycleService(db *gorm.DB, admission *AdmissionService) *LifecycleService {
	return &LifecycleService{DB: db, Admission: admission}
}

func (s *LifecycleService) load(tx *gorm.DB, id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := tx.First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error loading reservation %d: %w", id, err)
	}
	return &r, nil
}

// transition applies one legal status change inside a transaction, together
// with any extra column updates.
func (s *LifecycleService) transition(id uint, next models.ReservationStatus, extra map[string]interface{}) (*models.Reservation, error) {
	var out *models.Reservation
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		r, err := s.load(tx, id)
		if err != nil {
			return err
		}

		if !r.Status.CanTransitionTo(next) {
			if r.Status.IsTerminal() {
				return fmt.Errorf("%w: reservation %s is %s", ErrTerminalState, r.ReferenceCode, r.Status)
			}
			return fmt.Errorf("%w: cannot move %s from %s to %s", ErrInvalidState, r.ReferenceCode, r.Status, next)
		}

		updates := map[string]interface{}{"status": next}
		for k, v := range extra {
			updates[k] = v
		}
		if err := tx.Model(r).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update reservation %d: %w", id, err)
		}

		out, err = s.load(tx, id)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return out, nil
}

// Confirm marks a Provisional reservation as Confirmed, normally after a
// payment proof was approved.
func (s *LifecycleService) Confirm(id uint) (*models.Reservation, error) {
	return s.transition(id, models.StatusConfirmed, nil)
}

func (s *LifecycleService) CheckIn(id uint) (*models.Reservation, error) {
	now := time.Now().UTC()
	return s.transition(id, models.StatusCheckedIn, map[string]interface{}{"checked_in_at": now})
}

func (s *LifecycleService) CheckOut(id uint) (*models.Reservation, error) {
	now := time.Now().UTC()
	return s.transition(id, models.StatusCheckedOut, map[string]interface{}{"checked_out_at": now})
}

// Cancel is idempotent: cancelling an already-cancelled reservation returns
// it unchanged with no error. Checked-out reservations stay terminal.
func (s *LifecycleService) Cancel(id uint) (*models.Reservation, error) {
	var out *models.Reservation
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		r, err := s.load(tx, id)
		if err != nil {
			return err
		}
		if r.Status == models.StatusCancelled {
			out = r
			return nil
		}
		if r.Status == models.StatusCheckedOut {
			return fmt.Errorf("%w: reservation %s is %s", ErrTerminalState, r.ReferenceCode, r.Status)
		}

		now := time.Now().UTC()
		if err := tx.Model(r).Updates(map[string]interface{}{
			"status":       models.StatusCancelled,
			"cancelled_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to cancel reservation %d: %w", id, err)
		}
		out, err = s.load(tx, id)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return out, nil
}

// Reschedule moves a Provisional or Confirmed reservation to a new interval.
// The overlap check re-runs under the unit's admission lock, excluding the
// reservation's own record.
func (s *LifecycleService) Reschedule(id uint, iv models.Interval) (*models.Reservation, error) {
	if !iv.IsValid() {
		return nil, ErrInvalidInterval
	}

	// The unit id is needed before the lock can be taken; re-checked inside
	// the transaction in case the record changed in between.
	probe, err := s.load(s.DB, id)
	if err != nil {
		return nil, err
	}

	lk := s.Admission.locks.forUnit(probe.UnitID)
	lk.Lock()
	defer lk.Unlock()

	var out *models.Reservation
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		r, err := s.load(tx, id)
		if err != nil {
			return err
		}
		if r.UnitID != probe.UnitID {
			return fmt.Errorf("%w: reservation %s changed unit during reschedule", ErrInvalidState, r.ReferenceCode)
		}
		if r.Status.IsTerminal() {
			return fmt.Errorf("%w: reservation %s is %s", ErrTerminalState, r.ReferenceCode, r.Status)
		}
		if r.Status != models.StatusProvisional && r.Status != models.StatusConfirmed {
			return fmt.Errorf("%w: cannot reschedule %s while %s", ErrInvalidState, r.ReferenceCode, r.Status)
		}

		if err := scanForConflict(tx, r.UnitID, iv, r.ID); err != nil {
			return err
		}

		if err := tx.Model(r).Updates(map[string]interface{}{
			"check_in":  iv.Start,
			"check_out": iv.End,
			"nights":    iv.Nights(),
		}).Error; err != nil {
			return fmt.Errorf("failed to reschedule reservation %d: %w", id, err)
		}
		out, err = s.load(tx, id)
		return err
	})
	if txErr != nil {
		return nil, txErr
	}
	return out, nil
}

// Get returns one reservation with its unit and customer preloaded.
func (s *LifecycleService) Get(id uint) (*models.Reservation, error) {
	var r models.Reservation
	if err := s.DB.Preload("Unit").Preload("Unit.UnitType").Preload("Customer").First(&r, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to retrieve reservation %d: %w", id, err)
	}
	return &r, nil
}

// GetAllWithRelations lists every reservation, newest first.
func (s *LifecycleService) GetAllWithRelations() ([]models.Reservation, error) {
	var list []models.Reservation
	if err := s.DB.
		Preload("Unit").
		Preload("Unit.UnitType").
		Preload("Customer").
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reservations: %w", err)
	}
	return list, nil
}
