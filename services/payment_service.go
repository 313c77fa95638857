package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hms-backend/models"

	"gorm.io/gorm"
)

// PaymentService reviews proofs of payment. Approval is what confirms a
// Provisional reservation; the lifecycle service still owns the transition.
type PaymentService struct {
	DB        *gorm.DB
	Lifecycle *LifecycleService
}

func NewPaymentService(db *gorm.DB, lifecycle *LifecycleService) *PaymentService {
	return &PaymentService{DB: db, Lifecycle: lifecycle}
}

// Submit attaches a proof-of-payment reference to a Provisional reservation.
func (s *PaymentService) Submit(reservationID uint, reference string, amount float64) (*models.PaymentProof, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, fmt.Errorf("validation: payment reference is required")
	}

	var proof models.PaymentProof
	txErr := s.DB.Transaction(func(tx *gorm.DB) error {
		var r models.Reservation
		if err := tx.First(&r, reservationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("db error loading reservation %d: %w", reservationID, err)
		}
		if r.Status != models.StatusProvisional {
			if r.Status.IsTerminal() {
				return fmt.Errorf("%w: reservation %s is %s", ErrTerminalState, r.ReferenceCode, r.Status)
			}
			return fmt.Errorf("%w: reservation %s is already %s", ErrInvalidState, r.ReferenceCode, r.Status)
		}

		var open int64
		if err := tx.Model(&models.PaymentProof{}).
			Where("reservation_id = ? AND status = ?", reservationID, models.ProofSubmitted).
			Count(&open).Error; err != nil {
			return fmt.Errorf("db error counting proofs: %w", err)
		}
		if open > 0 {
			return fmt.Errorf("%w: a submitted proof is already pending review", ErrInvalidState)
		}

		proof = models.PaymentProof{
			ReservationID: reservationID,
			Reference:     reference,
			Amount:        amount,
		}
		if err := tx.Create(&proof).Error; err != nil {
			return fmt.Errorf("failed to create payment proof: %w", err)
		}

		if err := tx.Model(&r).Update("payment_ref", reference).Error; err != nil {
			return fmt.Errorf("failed to record payment ref: %w", err)
		}
		return nil
	})
	if txErr != nil {
		return nil, txErr
	}
	return &proof, nil
}

// Approve confirms the underlying reservation, then marks the proof approved.
func (s *PaymentService) Approve(proofID uint, reviewerID uint, note string) (*models.PaymentProof, error) {
	proof, err := s.get(proofID)
	if err != nil {
		return nil, err
	}
	if proof.Status != models.ProofSubmitted {
		return nil, fmt.Errorf("%w: proof already %s", ErrInvalidState, proof.Status)
	}

	if _, err := s.Lifecycle.Confirm(proof.ReservationID); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := s.DB.Model(proof).Updates(map[string]interface{}{
		"status":      models.ProofApproved,
		"review_note": note,
		"reviewed_by": reviewerID,
		"reviewed_at": now,
	}).Error; err != nil {
		// The reservation is confirmed at this point; the proof row is only
		// bookkeeping, so report but do not unwind.
		log.Printf("warning: reservation %d confirmed but proof %d not marked approved: %v",
			proof.ReservationID, proofID, err)
		return nil, fmt.Errorf("failed to mark proof approved: %w", err)
	}
	return s.get(proofID)
}

// Reject leaves the reservation Provisional so the guest can resubmit.
func (s *PaymentService) Reject(proofID uint, reviewerID uint, note string) (*models.PaymentProof, error) {
	proof, err := s.get(proofID)
	if err != nil {
		return nil, err
	}
	if proof.Status != models.ProofSubmitted {
		return nil, fmt.Errorf("%w: proof already %s", ErrInvalidState, proof.Status)
	}

	now := time.Now().UTC()
	if err := s.DB.Model(proof).Updates(map[string]interface{}{
		"status":      models.ProofRejected,
		"review_note": note,
		"reviewed_by": reviewerID,
		"reviewed_at": now,
	}).Error; err != nil {
		return nil, fmt.Errorf("failed to mark proof rejected: %w", err)
	}
	return s.get(proofID)
}

func (s *PaymentService) get(id uint) (*models.PaymentProof, error) {
	var proof models.PaymentProof
	if err := s.DB.First(&proof, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("db error loading proof %d: %w", id, err)
	}
	return &proof, nil
}

// ListPending returns proofs waiting for review, oldest first.
func (s *PaymentService) ListPending() ([]models.PaymentProof, error) {
	var list []models.PaymentProof
	err := s.DB.
		Preload("Reservation").
		Where("status = ?", models.ProofSubmitted).
		Order("created_at ASC").
		Find(&list).Error
	return list, err
}
