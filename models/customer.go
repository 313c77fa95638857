package models

import (
	"gorm.io/gorm"
)

// Customer is a guest account that requests reservations.
type Customer struct {
	gorm.Model

	FullName    string `gorm:"size:255" json:"fullName"`
	Email       string `gorm:"size:150;index" json:"email"`
	Phone       string `gorm:"size:50" json:"phone,omitempty"`
	Nationality string `gorm:"size:100" json:"nationality,omitempty"`
	Address     string `gorm:"type:text" json:"address,omitempty"`
}
