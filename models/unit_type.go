package models

import (
	"time"

	"gorm.io/gorm"
)

// UnitType groups units that share pricing and capacity characteristics,
// e.g. "Standard", "Deluxe", "Conference Hall".
type UnitType struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string   `gorm:"size:100;uniqueIndex" json:"name"`
	Kind        UnitKind `gorm:"column:kind;size:16;default:room" json:"kind"`
	Description string   `json:"description"`
	MaxGuests   uint     `json:"max_guests"`

	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
