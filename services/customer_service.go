package services

import (
	"errors"
	"fmt"
	"strings"

	"hms-backend/models"

	"gorm.io/gorm"
)

type CustomerService struct {
	DB *gorm.DB
}

func NewCustomerService(db *gorm.DB) *CustomerService {
	return &CustomerService{DB: db}
}

func (s *CustomerService) Create(c *models.Customer) error {
	c.FullName = strings.TrimSpace(c.FullName)
	if c.FullName == "" {
		return fmt.Errorf("validation: full name is required")
	}
	return s.DB.Create(c).Error
}

func (s *CustomerService) GetAll() ([]models.Customer, error) {
	var list []models.Customer
	err := s.DB.Order("full_name ASC").Find(&list).Error
	return list, err
}

func (s *CustomerService) GetByID(id uint) (*models.Customer, error) {
	var c models.Customer
	if err := s.DB.First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Reservations returns a customer's reservation history, newest first.
func (s *CustomerService) Reservations(customerID uint) ([]models.Reservation, error) {
	var list []models.Reservation
	err := s.DB.
		Preload("Unit").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}
