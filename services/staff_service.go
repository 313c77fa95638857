package services

import (
	"errors"
	"fmt"
	"strings"

	"hms-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// StaffService manages admin accounts and their roles. Login flows live
// outside this service.
type StaffService struct {
	DB *gorm.DB
}

func NewStaffService(db *gorm.DB) *StaffService {
	return &StaffService{DB: db}
}

func (s *StaffService) CreateAdmin(a *models.Admin, plainPassword string) error {
	a.Username = strings.TrimSpace(a.Username)
	if a.Username == "" {
		return fmt.Errorf("validation: username is required")
	}
	if plainPassword == "" {
		return fmt.Errorf("validation: password is required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(plainPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	a.Password = string(hash)

	return s.DB.Create(a).Error
}

func (s *StaffService) GetAdmins() ([]models.Admin, error) {
	var list []models.Admin
	err := s.DB.Order("full_name ASC").Find(&list).Error
	return list, err
}

func (s *StaffService) DeleteAdmin(id uint) error {
	res := s.DB.Delete(&models.Admin{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *StaffService) GetRoles() ([]models.Role, error) {
	var roles []models.Role
	err := s.DB.Preload("Permissions").Preload("Members").Find(&roles).Error
	return roles, err
}

// ReplacePermissions swaps a role's permission set atomically.
func (s *StaffService) ReplacePermissions(roleID uint, permissions []string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, roleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("role_id = ?", roleID).Delete(&models.RolePermission{}).Error; err != nil {
			return fmt.Errorf("failed to clear permissions for role %d: %w", roleID, err)
		}

		perms := make([]models.RolePermission, 0, len(permissions))
		for _, p := range permissions {
			p = strings.TrimSpace(p)
			if p == "" {
				continue
			}
			perms = append(perms, models.RolePermission{RoleID: roleID, Permission: p})
		}
		if len(perms) > 0 {
			if err := tx.Create(&perms).Error; err != nil {
				return fmt.Errorf("failed to save permissions for role %d: %w", roleID, err)
			}
		}
		return nil
	})
}
