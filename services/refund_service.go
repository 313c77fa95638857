package services

import (
	"errors"
	"fmt"
	"time"

	"hms-backend/models"

	"gorm.io/gorm"
)

type RefundService struct {
	DB *gorm.DB
}

func NewRefundService(db *gorm.DB) *RefundService {
	return &RefundService{DB: db}
}

// Request opens a refund request for a cancelled reservation. At most one
// open request may exist per reservation.
func (s *RefundService) Request(reservationID uint, reason string, amount float64) (*models.RefundRequest, error) {
	var req models.RefundRequest
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		if err := tx.First(&r, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("db error loading reservation %d: %w", reservationID, err)
		}
		if r.Status != models.StatusCancelled {
			return fmt.Errorf("%w: only cancelled reservations are refundable (reservation %s is %s)",
				ErrInvalidState, r.ReferenceCode, r.Status)
		}

		var open int64
		if err := tx.Model(&models.RefundRequest{}).
			Where("reservation_id = ? AND status = ?", reservationID, models.RefundRequested).
			Count(&open).Error; err != nil {
			return fmt.Errorf("db error counting refund requests: %w", err)
		}
		if open > 0 {
			return fmt.Errorf("%w: a refund request is already pending", ErrInvalidState)
		}

		req = models.RefundRequest{
			ReservationID: reservationID,
			Reason:        reason,
			Amount:        amount,
		}
		if err := tx.Create(&req).Error; err != nil {
			return fmt.Errorf("failed to create refund request: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &req, nil
}

// Review settles a pending request either way.
func (s *RefundService) Review(id uint, approve bool, reviewerID uint) (*models.RefundRequest, error) {
	var out models.RefundRequest
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var req models.RefundRequest
		if err := tx.First(&req, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("db error loading refund request %d: %w", id, err)
		}
		if req.Status != models.RefundRequested {
			return fmt.Errorf("%w: refund request already %s", ErrInvalidState, req.Status)
		}

		status := models.RefundDenied
		if approve {
			status = models.RefundApproved
		}
		now := time.Now().UTC()
		if err := tx.Model(&req).Updates(map[string]interface{}{
			"status":      status,
			"reviewed_by": reviewerID,
			"reviewed_at": now,
		}).Error; err != nil {
			return fmt.Errorf("failed to review refund request %d: %w", id, err)
		}

		return tx.First(&out, id).Error
	})
	if txErr != nil {
		return nil, txErr
	}
	return &out, nil
}

func (s *RefundService) GetAll() ([]models.RefundRequest, error) {
	var list []models.RefundRequest
	err := s.DB.
		Preload("Reservation").
		Order("created_at DESC").
		Find(&list).Error
	return list, err
}
