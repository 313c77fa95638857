package services

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"hms-backend/config"
	"hms-backend/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq atomic.Int64

// newTestDB opens a private in-memory database with the full schema. The
// shared-cache name keeps it alive across the pool's connections.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svc_test_%d?mode=memory&cache=shared&_busy_timeout=5000", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := config.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedUnit(t *testing.T, db *gorm.DB, code string, status models.UnitStatus) *models.Unit {
	t.Helper()
	unit := models.Unit{
		Kind:         models.UnitKindRoom,
		Code:         code,
		Name:         "Room " + code,
		Capacity:     2,
		NightlyPrice: 1200,
		Status:       status,
	}
	if err := db.Create(&unit).Error; err != nil {
		t.Fatalf("failed to seed unit %s: %v", code, err)
	}
	return &unit
}

func seedCustomer(t *testing.T, db *gorm.DB, name string) *models.Customer {
	t.Helper()
	c := models.Customer{FullName: name, Email: name + "@example.com"}
	if err := db.Create(&c).Error; err != nil {
		t.Fatalf("failed to seed customer %s: %v", name, err)
	}
	return &c
}

func stay(from, to int) models.Interval {
	return models.Interval{
		Start: time.Date(2024, 6, from, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 6, to, 0, 0, 0, 0, time.UTC),
	}
}
