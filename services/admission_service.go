package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"hms-backend/models"
	"hms-backend/utils"

	"gorm.io/gorm"
)

// unitLocks hands out one mutex per unit so that check-then-insert sequences
// on the same unit are serialized while different units proceed in parallel.
type unitLocks struct {
	mu sync.Mutex
	m  map[uint]*sync.Mutex
}

func newUnitLocks() *unitLocks {
	return &unitLocks{m: make(map[uint]*sync.Mutex)}
}

func (l *unitLocks) forUnit(unitID uint) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lk, ok := l.m[unitID]
	if !ok {
		lk = &sync.Mutex{}
		l.m[unitID] = lk
	}
	return lk
}

// AdmissionService decides whether a reservation request may be accepted.
// It is the only code path that creates reservations.
type AdmissionService struct {
	DB    *gorm.DB
	locks *unitLocks
}

func NewAdmissionService(db *gorm.DB) *AdmissionService {
	return &AdmissionService{DB: db, locks: newUnitLocks()}
}

// AdmissionRequest carries everything needed to admit one reservation.
type AdmissionRequest struct {
	UnitID         uint
	CustomerID     uint
	Interval       models.Interval
	NumberOfGuests int
	Notes          string
	Occupants      []byte
}

const admissionMaxRetries = 3

// RequestReservation atomically checks the unit's calendar and inserts a
// Provisional reservation, or rejects. The per-unit lock makes concurrent
// requests for the same unit linearizable; without it two requests could both
// pass the overlap scan and both insert.
func (s *AdmissionService) RequestReservation(req AdmissionRequest) (*models.Reservation, error) {
	if !req.Interval.IsValid() {
		return nil, ErrInvalidInterval
	}
	if req.NumberOfGuests <= 0 {
		req.NumberOfGuests = 1
	}

	lk := s.locks.forUnit(req.UnitID)
	lk.Lock()
	defer lk.Unlock()

	var created *models.Reservation
	var lastErr error
	for attempt := 0; attempt < admissionMaxRetries; attempt++ {
		created, lastErr = s.admitOnce(req)
		if lastErr == nil {
			return created, nil
		}
		if !isTransientStoreError(lastErr) {
			return nil, lastErr
		}
		log.Printf("admission retry for unit %d (attempt %d): %v", req.UnitID, attempt+1, lastErr)
	}
	// An aborted-and-exhausted transaction is indistinguishable from a real
	// conflict for the caller, so surface it as one.
	return nil, &ConflictError{UnitID: req.UnitID, CheckIn: req.Interval.Start, CheckOut: req.Interval.End}
}

func (s *AdmissionService) admitOnce(req AdmissionRequest) (*models.Reservation, error) {
	var created models.Reservation

	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := tx.First(&unit, req.UnitID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnitNotFound
			}
			return fmt.Errorf("db error loading unit %d: %w", req.UnitID, err)
		}
		if !unit.Status.Bookable() {
			return ErrUnitUnavailable
		}

		if err := scanForConflict(tx, req.UnitID, req.Interval, 0); err != nil {
			return err
		}

		created = models.Reservation{
			ReferenceCode:  utils.NewReferenceCode(),
			UnitID:         req.UnitID,
			CustomerID:     req.CustomerID,
			CheckIn:        req.Interval.Start,
			CheckOut:       req.Interval.End,
			Nights:         req.Interval.Nights(),
			Status:         models.StatusProvisional,
			NumberOfGuests: req.NumberOfGuests,
			Notes:          req.Notes,
			Occupants:      req.Occupants,
		}
		if err := tx.Create(&created).Error; err != nil {
			return fmt.Errorf("failed to create reservation: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &created, nil
}

// scanForConflict fetches the blocking reservations on a unit and tests each
// against the overlap predicate. excludeID skips the reservation's own record
// when rescheduling. Must run under the unit's lock.
func scanForConflict(tx *gorm.DB, unitID uint, iv models.Interval, excludeID uint) error {
	var existing []models.Reservation
	q := tx.
		Where("unit_id = ? AND status IN ?", unitID, models.BlockingStatuses()).
		Where("check_in < ? AND check_out > ?", iv.End, iv.Start)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Find(&existing).Error; err != nil {
		return fmt.Errorf("db error scanning reservations for unit %d: %w", unitID, err)
	}

	for i := range existing {
		if iv.Overlaps(existing[i].Interval()) {
			return newConflictError(&existing[i])
		}
	}
	return nil
}

// ListActiveReservations returns the blocking reservations for one unit,
// oldest check-in first. Read-only; used to render availability.
func (s *AdmissionService) ListActiveReservations(unitID uint) ([]models.Reservation, error) {
	var list []models.Reservation
	if err := s.DB.
		Where("unit_id = ? AND status IN ?", unitID, models.BlockingStatuses()).
		Order("check_in ASC").
		Find(&list).Error; err != nil {
		return nil, fmt.Errorf("failed to list reservations for unit %d: %w", unitID, err)
	}
	return list, nil
}

// FindAvailableUnits returns bookable units of the given kind with no
// blocking reservation overlapping the interval. kind may be empty for all.
func (s *AdmissionService) FindAvailableUnits(iv models.Interval, kind models.UnitKind) ([]models.Unit, error) {
	if !iv.IsValid() {
		return nil, ErrInvalidInterval
	}

	q := s.DB.
		Preload("UnitType").
		Where("status IN ?", []models.UnitStatus{models.UnitAvailable, ""}).
		Where(`NOT EXISTS (
			SELECT 1 FROM reservations r
			WHERE r.unit_id = units.id
			  AND r.deleted_at IS NULL
			  AND r.status IN ?
			  AND r.check_in < ? AND r.check_out > ?
		)`, models.BlockingStatuses(), iv.End, iv.Start)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}

	var units []models.Unit
	if err := q.Order("code ASC").Find(&units).Error; err != nil {
		return nil, fmt.Errorf("failed to query available units: %w", err)
	}
	return units, nil
}

// isTransientStoreError recognizes lock contention the backing store may
// report, which is worth a bounded retry before giving up.
func isTransientStoreError(err error) bool {
	if err == nil {
		return false
	}
	lc := strings.ToLower(err.Error())
	return strings.Contains(lc, "deadlock") ||
		strings.Contains(lc, "lock wait timeout") ||
		strings.Contains(lc, "database is locked") ||
		strings.Contains(lc, "database table is locked")
}
