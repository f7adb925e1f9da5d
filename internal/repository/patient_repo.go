package repository

import (
	"errors"
	"time"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/status"

	"gorm.io/gorm"
)

type PatientRepository struct {
	db *gorm.DB
}

func NewPatientRepo(db *gorm.DB) *PatientRepository {
	return &PatientRepository{db: db}
}

// PatientFilter narrows patient listings
type PatientFilter struct {
	PatientType   string
	Status        string
	ScheduledDate *time.Time
	Skip          int
	Limit         int
}

// CreatePatient creates a new patient record
func (r *PatientRepository) CreatePatient(patient *models.Patient) error {
	return r.db.Create(patient).Error
}

// FindPatientByID finds a patient by its primary key
func (r *PatientRepository) FindPatientByID(id uint) (*models.Patient, error) {
	var patient models.Patient
	err := r.db.First(&patient, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &patient, nil
}

// ListPatients returns patients matching the filter, most recent date first
func (r *PatientRepository) ListPatients(filter PatientFilter) ([]models.Patient, error) {
	query := r.db.Model(&models.Patient{})
	if filter.PatientType != "" {
		query = query.Where("patient_type = ?", filter.PatientType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ScheduledDate != nil {
		query = query.Where("scheduled_date = ?", *filter.ScheduledDate)
	}
	if filter.Limit <= 0 {
		filter.Limit = 100
	}

	var patients []models.Patient
	err := query.Order("scheduled_date DESC, scheduled_time").
		Offset(filter.Skip).Limit(filter.Limit).
		Find(&patients).Error
	return patients, err
}

// ListPatientsForDate returns patients scheduled on a date ordered by time
func (r *PatientRepository) ListPatientsForDate(date time.Time, patientType string) ([]models.Patient, error) {
	query := r.db.Where("scheduled_date = ?", date)
	if patientType != "" {
		query = query.Where("patient_type = ?", patientType)
	}
	var patients []models.Patient
	err := query.Order("scheduled_time").Find(&patients).Error
	return patients, err
}

// ListDisplayPatients returns patients eligible for the public board on a
// date, ordered by OR room
func (r *PatientRepository) ListDisplayPatients(date time.Time, statuses []string) ([]models.Patient, error) {
	var patients []models.Patient
	err := r.db.Where("scheduled_date = ? AND status IN ?", date, statuses).
		Order("or_room").
		Find(&patients).Error
	return patients, err
}

// CountPatients counts patients on a date matching optional status and type
func (r *PatientRepository) CountPatients(date time.Time, patientStatus, patientType string) (int64, error) {
	query := r.db.Model(&models.Patient{}).Where("scheduled_date = ?", date)
	if patientStatus != "" {
		query = query.Where("status = ?", patientStatus)
	}
	if patientType != "" {
		query = query.Where("patient_type = ?", patientType)
	}
	var count int64
	err := query.Count(&count).Error
	return count, err
}

// UpdatePatient applies field updates to a patient
func (r *PatientRepository) UpdatePatient(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.Patient{}).Where("id = ?", id).Updates(updates).Error
}

// ApplyStatusOutcome writes the status change and its history record in one
// transaction: either both rows land or neither does
func (r *PatientRepository) ApplyStatusOutcome(id uint, updates map[string]interface{}, history *models.StatusHistory) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Patient{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.Create(history).Error
	})
}

// DeletePatient removes a patient and its status history in one transaction
func (r *PatientRepository) DeletePatient(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entity_type = ? AND entity_id = ?", string(status.KindPatient), id).
			Delete(&models.StatusHistory{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Patient{}, id).Error
	})
}
