package models

import (
	"gorm.io/gorm"
)

// UnitKind discriminates the two bookable resource families. Both go through
// the same admission path.
type UnitKind string

const (
	UnitKindRoom     UnitKind = "room"
	UnitKindFacility UnitKind = "facility"
)

// UnitStatus is the administrative availability of a unit, independent of any
// reservation on it.
type UnitStatus string

const (
	UnitAvailable   UnitStatus = "Available"
	UnitMaintenance UnitStatus = "Maintenance"
	UnitClosed      UnitStatus = "Closed"
)

// Bookable reports whether new reservations may be admitted for the unit.
func (s UnitStatus) Bookable() bool {
	return s == UnitAvailable || s == ""
}

// Unit is a bookable resource: a guest room or a shared facility such as a
// conference hall. Reservations reference it but never own it.
type Unit struct {
	gorm.Model

	Kind UnitKind `gorm:"column:kind;size:16;default:room;index" json:"kind"`

	// Code is the public identifier (room number or facility code).
	Code string `gorm:"column:code;uniqueIndex;size:50" json:"code"`
	Name string `gorm:"column:name;size:255" json:"name"`

	UnitTypeID *uint `gorm:"column:unit_type_id" json:"unitTypeId,omitempty"`

	Floor        string     `gorm:"type:varchar(10)" json:"floor,omitempty"`
	Capacity     int        `gorm:"column:capacity;default:1" json:"capacity"`
	NightlyPrice float64    `gorm:"column:nightly_price" json:"nightlyPrice"`
	Status       UnitStatus `gorm:"column:status;size:32;default:Available" json:"status"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`

	UnitType UnitType `gorm:"foreignKey:UnitTypeID" json:"unitType,omitempty"`
}
