package services

import (
	"errors"
	"fmt"
	"strings"

	"hms-backend/models"

	"gorm.io/gorm"
)

// UnitService is the CRUD layer for bookable units and their types. Status
// and interval columns of reservations are never touched here.
type UnitService struct {
	DB *gorm.DB
}

func NewUnitService(db *gorm.DB) *UnitService {
	return &UnitService{DB: db}
}

func (s *UnitService) Create(unit *models.Unit) error {
	unit.Code = strings.TrimSpace(unit.Code)
	if unit.Code == "" {
		return fmt.Errorf("validation: unit code is required")
	}
	if unit.Kind == "" {
		unit.Kind = models.UnitKindRoom
	}
	if unit.UnitTypeID != nil {
		var ut models.UnitType
		if err := s.DB.First(&ut, *unit.UnitTypeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("validation: unit type %d not found", *unit.UnitTypeID)
			}
			return fmt.Errorf("db error checking unit type: %w", err)
		}
	}
	return s.DB.Create(unit).Error
}

func (s *UnitService) GetAll(kind models.UnitKind) ([]models.Unit, error) {
	q := s.DB.Preload("UnitType")
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	var units []models.Unit
	err := q.Order("code ASC").Find(&units).Error
	return units, err
}

func (s *UnitService) GetByID(id uint) (*models.Unit, error) {
	var unit models.Unit
	if err := s.DB.Preload("UnitType").First(&unit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUnitNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// Update applies a partial update; identity and timestamp columns are
// stripped so clients can't rewrite them.
func (s *UnitService) Update(id uint, updates map[string]interface{}) error {
	delete(updates, "id")
	delete(updates, "created_at")
	delete(updates, "updated_at")
	delete(updates, "deleted_at")

	res := s.DB.Model(&models.Unit{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrUnitNotFound
	}
	return nil
}

// Delete refuses while blocking reservations exist on the unit.
func (s *UnitService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var unit models.Unit
		if err := tx.First(&unit, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUnitNotFound
			}
			return err
		}

		var active int64
		if err := tx.Model(&models.Reservation{}).
			Where("unit_id = ? AND status IN ?", id, models.BlockingStatuses()).
			Count(&active).Error; err != nil {
			return fmt.Errorf("db error counting reservations for unit %d: %w", id, err)
		}
		if active > 0 {
			return ErrUnitOccupied
		}

		return tx.Delete(&unit).Error
	})
}

// ---------------- unit types ----------------

func (s *UnitService) CreateType(ut *models.UnitType) error {
	ut.Name = strings.TrimSpace(ut.Name)
	if ut.Name == "" {
		return fmt.Errorf("validation: type name is required")
	}
	if ut.Kind == "" {
		ut.Kind = models.UnitKindRoom
	}
	return s.DB.Create(ut).Error
}

func (s *UnitService) GetAllTypes() ([]models.UnitType, error) {
	var types []models.UnitType
	err := s.DB.Order("name ASC").Find(&types).Error
	return types, err
}

func (s *UnitService) DeleteType(id uint) error {
	res := s.DB.Delete(&models.UnitType{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
