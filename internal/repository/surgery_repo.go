package repository

import (
	"errors"
	"time"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/status"

	"gorm.io/gorm"
)

type SurgeryRepository struct {
	db *gorm.DB
}

func NewSurgeryRepo(db *gorm.DB) *SurgeryRepository {
	return &SurgeryRepository{db: db}
}

// CreateSurgery creates a single surgery registration
func (r *SurgeryRepository) CreateSurgery(surgery *models.SurgeryRegistration) error {
	return r.db.Create(surgery).Error
}

// CreateSurgeriesBulk creates several registrations in one transaction
func (r *SurgeryRepository) CreateSurgeriesBulk(surgeries []*models.SurgeryRegistration) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		for _, s := range surgeries {
			if err := tx.Create(s).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// FindSurgeryByID finds a surgery registration by its primary key
func (r *SurgeryRepository) FindSurgeryByID(id uint) (*models.SurgeryRegistration, error) {
	var surgery models.SurgeryRegistration
	err := r.db.First(&surgery, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &surgery, nil
}

// FindSurgeriesByHN returns all registrations for a hospital number,
// most recent surgery date first
func (r *SurgeryRepository) FindSurgeriesByHN(hn string) ([]models.SurgeryRegistration, error) {
	var surgeries []models.SurgeryRegistration
	err := r.db.Where("hn = ?", hn).
		Order("surgery_date DESC").
		Find(&surgeries).Error
	return surgeries, err
}

// ListSurgeriesByDate returns registrations on a date, optionally narrowed
// to one surgery type, ordered by scheduled time
func (r *SurgeryRepository) ListSurgeriesByDate(date time.Time, surgeryType string) ([]models.SurgeryRegistration, error) {
	query := r.db.Where("surgery_date = ?", date)
	if surgeryType != "" {
		query = query.Where("surgery_type = ?", surgeryType)
	}
	var surgeries []models.SurgeryRegistration
	err := query.Order("scheduled_time").Find(&surgeries).Error
	return surgeries, err
}

// UpdateSurgery applies field updates to a surgery registration
func (r *SurgeryRepository) UpdateSurgery(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.SurgeryRegistration{}).Where("id = ?", id).Updates(updates).Error
}

// ApplyStatusOutcome writes the status change and its history record in one
// transaction, mirroring PatientRepository.ApplyStatusOutcome
func (r *SurgeryRepository) ApplyStatusOutcome(id uint, updates map[string]interface{}, history *models.StatusHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.SurgeryRegistration{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(history).Error
	})
}

// DeleteSurgery removes a registration and its status history in one transaction
func (r *SurgeryRepository) DeleteSurgery(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_type = ? AND entity_id = ?", string(status.KindSurgery), id).
			Delete(&models.StatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SurgeryRegistration{}, id).Error
	})
}

// ResetAllSurgeries deletes every registration and surgery history row.
// Dev/testing endpoint only.
func (r *SurgeryRepository) ResetAllSurgeries() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_type = ?", string(status.KindSurgery)).
			Delete(&models.StatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&models.SurgeryRegistration{}).Error
	})
}
