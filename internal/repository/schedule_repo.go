package repository

import (
	"errors"
	"time"

	"surgitrack-backend/internal/models"

	"gorm.io/gorm"
)

type ScheduleRepository struct {
	db *gorm.DB
}

func NewScheduleRepo(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// FindScheduleByDateAndShift finds the schedule for one date and shift
func (r *ScheduleRepository) FindScheduleByDateAndShift(date time.Time, shiftType string) (*models.WorkSchedule, error) {
	var schedule models.WorkSchedule
	err := r.db.Where("date = ? AND shift_type = ?", date, shiftType).First(&schedule).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrNotFound
		}
		return nil, err
	}
	return &schedule, nil
}

// ListSchedulesByDate returns both shifts for a date
func (r *ScheduleRepository) ListSchedulesByDate(date time.Time) ([]models.WorkSchedule, error) {
	var schedules []models.WorkSchedule
	err := r.db.Where("date = ?", date).Order("shift_type").Find(&schedules).Error
	return schedules, err
}

// ListSchedulesByRange returns schedules with date inside [from, to] ordered
// by date then shift. Used for month views.
func (r *ScheduleRepository) ListSchedulesByRange(from, to time.Time) ([]models.WorkSchedule, error) {
	var schedules []models.WorkSchedule
	err := r.db.Where("date >= ? AND date <= ?", from, to).
		Order("date, shift_type").
		Find(&schedules).Error
	return schedules, err
}

// CreateSchedule creates a new schedule row
func (r *ScheduleRepository) CreateSchedule(schedule *models.WorkSchedule) error {
	return r.db.Create(schedule).Error
}

// UpdateSchedule applies staff updates to an existing schedule row
func (r *ScheduleRepository) UpdateSchedule(id uint, updates map[string]interface{}) error {
	return r.db.Model(&models.WorkSchedule{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteSchedule removes a schedule row
func (r *ScheduleRepository) DeleteSchedule(id uint) error {
	return r.db.Delete(&models.WorkSchedule{}, id).Error
}
