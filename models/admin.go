package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin is a staff account. Passwords are stored bcrypt-hashed and never
// serialized.
type Admin struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:255" json:"full_name"`
	Username string `gorm:"uniqueIndex;size:150" json:"username"`
	Password string `gorm:"size:255" json:"-"`
	Position string `gorm:"size:100" json:"position,omitempty"`
	Phone    string `gorm:"size:50" json:"phone,omitempty"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at"`
}
