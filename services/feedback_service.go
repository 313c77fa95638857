package services

import (
	"errors"
	"fmt"

	"hms-backend/models"

	"gorm.io/gorm"
)

type FeedbackService struct {
	DB *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{DB: db}
}

func (s *FeedbackService) Create(fb *models.Feedback) error {
	if fb.Rating < 1 || fb.Rating > 5 {
		return fmt.Errorf("validation: rating must be between 1 and 5")
	}

	var c models.Customer
	if err := s.DB.First(&c, fb.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("validation: customer %d not found", fb.CustomerID)
		}
		return fmt.Errorf("db error checking customer: %w", err)
	}

	if fb.ReservationID != nil {
		var r models.Reservation
		if err := s.DB.First(&r, *fb.ReservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("validation: reservation %d not found", *fb.ReservationID)
			}
			return fmt.Errorf("db error checking reservation: %w", err)
		}
	}

	return s.DB.Create(fb).Error
}

func (s *FeedbackService) GetAll() ([]models.Feedback, error) {
	var list []models.Feedback
	err := s.DB.Preload("Customer").Order("created_at DESC").Find(&list).Error
	return list, err
}

func (s *FeedbackService) Delete(id uint) error {
	res := s.DB.Delete(&models.Feedback{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
