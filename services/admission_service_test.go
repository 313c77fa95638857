package services

import (
	"errors"
	"sync"
	"testing"

	"hms-backend/models"
)

func TestRequestReservationAdmits(t *testing.T) {
	db := newTestDB(t)
	admission := NewAdmissionService(db)
	unit := seedUnit(t, db, "101", models.UnitAvailable)
	guest := seedCustomer(t, db, "alice")

	r, err := admission.RequestReservation(AdmissionRequest{
		UnitID:     unit.ID,
		CustomerID: guest.ID,
		Interval:   stay(1, 5),
	})
	if err != nil {
		t.Fatalf("admission failed: %v", err)
	}
	if r.Status != models.StatusProvisional {
		t.Errorf("new reservation status = %s, want Provisional", r.Status)
	}
	if r.ReferenceCode == "" {
		t.Error("reference code missing")
	}
	if r.Nights != 4 {
		t.Errorf("nights = %d, want 4", r.Nights)
	}
}

func TestRequestReservationConflicts(t *testing.T) {
	db := newTestDB(t)
	admission := NewAdmissionService(db)
	unit := seedUnit(t, db, "101", models.UnitAvailable)
	guest := seedCustomer(t, db, "alice")

	first, err := admission.RequestReservation(AdmissionRequest{
		UnitID: unit.ID, CustomerID: guest.ID, Interval: stay(1, 5),
	})
	if err != nil {
		t.Fatalf("first admission failed: %v", err)
	}

	_, err = admission.RequestReservation(AdmissionRequest{
		UnitID: unit.ID, CustomerID: guest.ID, Interval: stay(4, 6),
	})
	var conflict *ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ConflictError, got %v", err)
	}
	if conflict.ReservationID != first.ID {
		t.Errorf("conflict names reservation %d, want %d", conflict.ReservationID, first.ID)
	}
}

func TestBackToBackReservationsAdmit(t *testing.T) {
	db := newTestDB(t)
	admission := NewAdmissionService(db)
	unit := seedUnit(t, db, "101", models.UnitAvailable)
	guest := seedCustomer(t, db, "alice")

	if _, err := admission.RequestReservation(AdmissionRequest{
		UnitID: unit.ID, CustomerID: guest.ID, Interval: stay(1, 5),
	}); err != nil {
		t.Fatalf("first admission failed: %v", err)
	}

	// checkout day == next check-in day: no conflict
	if _, err := admission.RequestReservation(AdmissionRequest{
		UnitID: unit.ID, CustomerID: guest.ID, Interval: stay(5, 8),
	}); err != nil {
		t.Fatalf("back-to-back admission rejected: %v", err)
	}
}

func TestRequestReservationValidation(t *testing.T) {
	db := newTestDB(t)
	admission := NewAdmissionService(db)
	unit := seedUnit(t, db, "101", models.UnitAvailable)
	guest := seedCustomer(t, db, "alice")

	if _, err := admission.RequestReservation(AdmissionRequest{
		UnitID: unit.ID, CustomerID: guest.ID, Interval: stay(5, 5),
	}); !errors.Is(err, ErrInvalidInterval) {
		t.Errorf("empty interval: got %v, want ErrInvalidInterval", err)
	}

	if _, err := admission.RequestReservation(AdmissionRequest{
		UnitID: 9999, CustomerID: guest.ID, Interval: stay(1, 5),
	}); !errors.Is(err, ErrUnitNotFound) {
		t.Errorf("missing unit: got %v, want ErrUnitNotFound", err)
	}

	closed := seedUnit(t, db, "M1", models.UnitMaintenance)
	if _, err := admission.RequestReservation(AdmissionRequest{
		UnitID: closed.ID, CustomerID: guest.ID, Interval: stay(1, 5),
	}); !errors.Is(err, ErrUnitUnavailable) {
		t.Errorf("maintenance unit: got %v, want ErrUnitUnavailable", err)
	}
}

func TestConcurrentAdmissionSingleWinner(t *testing.T) {
	db := newTestDB(t)
	admission := NewAdmissionService(db)
	unit := seedUnit(t, db, "101", models.UnitAvailable)
	guest := seedCustomer(t, db, "alice")

	const n = 8
	var wg sync.WaitGroup
	results := make([]error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// pairwise-overlapping intervals: all cover June 3rd night
			_, err := admission.RequestReservation(AdmissionRequest{
				UnitID:     unit.ID,
				CustomerID: guest.ID,
				Interval:   stay(1+i%3, 4+i%3),
			})
			results[i] = err
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for i, err := range results {
		if err == nil {
			succeeded++
			continue
		}
		var conflict *ConflictError
		if !errors.As(err, &conflict) {
			t.Errorf("request %d failed with %v, want ConflictError", i, err)
		}
	}
	if succeeded != 1 {
		t.Fatalf("%d admissions succeeded, want exactly 1", succeeded)
	}

	var count int64
	db.Model(&models.Reservation{}).Where("unit_id = ?", unit.ID).Count(&count)
	if count != 1 {
		t.Fatalf("%d reservations persisted, want 1", count)
	}
}

func TestConcurrentAdmissionIndependentUnits(t *testing.T) {
	db := newTestDB(t)
	admission := NewAdmissionService(db)
	guest := seedCustomer(t, db, "alice")

	const n = 6
	units := make([]*models.Unit, n)
	for i := 0; i < n; i++ {
		units[i] = seedUnit(t, db, string(rune('A'+i))+"01", models.UnitAvailable)
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = admission.RequestReservation(AdmissionRequest{
				UnitID: units[i].ID, CustomerID: guest.ID, Interval: stay(1, 5),
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Errorf("unit %d admission failed: %v", i, err)
		}
	}
}

func TestListActiveReservations(t *testing.T) {
	db := newTestDB(t)
	admission := NewAdmissionService(db)
	lifecycle := NewLifecycleService(db, admission)
	unit := seedUnit(t, db, "101", models.UnitAvailable)
	guest := seedCustomer(t, db, "alice")

	a, _ := admission.RequestReservation(AdmissionRequest{UnitID: unit.ID, CustomerID: guest.ID, Interval: stay(10, 12)})
	b, _ := admission.RequestReservation(AdmissionRequest{UnitID: unit.ID, CustomerID: guest.ID, Interval: stay(1, 3)})
	if a == nil || b == nil {
		t.Fatal("seeding reservations failed")
	}
	if _, err := lifecycle.Cancel(a.ID); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	list, err := admission.ListActiveReservations(unit.ID)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 1 || list[0].ID != b.ID {
		t.Fatalf("expected only reservation %d active, got %d entries", b.ID, len(list))
	}
}

func TestFindAvailableUnits(t *testing.T) {
	db := newTestDB(t)
	admission := NewAdmissionService(db)
	guest := seedCustomer(t, db, "alice")

	free := seedUnit(t, db, "101", models.UnitAvailable)
	taken := seedUnit(t, db, "102", models.UnitAvailable)
	seedUnit(t, db, "103", models.UnitMaintenance)

	if _, err := admission.RequestReservation(AdmissionRequest{
		UnitID: taken.ID, CustomerID: guest.ID, Interval: stay(1, 5),
	}); err != nil {
		t.Fatalf("seeding reservation failed: %v", err)
	}

	units, err := admission.FindAvailableUnits(stay(3, 6), "")
	if err != nil {
		t.Fatalf("availability query failed: %v", err)
	}
	if len(units) != 1 || units[0].ID != free.ID {
		t.Fatalf("expected only unit %s available, got %d units", free.Code, len(units))
	}

	// same unit is free again for dates after the stay
	units, err = admission.FindAvailableUnits(stay(5, 8), "")
	if err != nil {
		t.Fatalf("availability query failed: %v", err)
	}
	if len(units) != 2 {
		t.Fatalf("expected both bookable units for later dates, got %d", len(units))
	}
}
