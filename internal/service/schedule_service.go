package service

import (
	"errors"
	"fmt"
	"time"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/repository"
)

type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepository
}

func NewScheduleService(scheduleRepo *repository.ScheduleRepository) *ScheduleService {
	return &ScheduleService{scheduleRepo: scheduleRepo}
}

// UpsertSchedule creates the schedule for (date, shift) or updates the
// staff assignments when one already exists
func (s *ScheduleService) UpsertSchedule(schedule *models.WorkSchedule) (*models.WorkSchedule, error) {
	if schedule.ShiftType != models.ShiftAfternoon && schedule.ShiftType != models.ShiftNight {
		return nil, fmt.Errorf("invalid shift type: %q", schedule.ShiftType)
	}

	existing, err := s.scheduleRepo.FindScheduleByDateAndShift(schedule.Date, schedule.ShiftType)
	if err != nil {
		if !errors.Is(err, models.ErrNotFound) {
			return nil, err
		}
		if err := s.scheduleRepo.CreateSchedule(schedule); err != nil {
			return nil, fmt.Errorf("failed to create work schedule: %w", err)
		}
		return schedule, nil
	}

	updates := map[string]interface{}{
		"incharge":    schedule.Incharge,
		"nurse_1":     schedule.Nurse1,
		"nurse_2":     schedule.Nurse2,
		"nurse_3":     schedule.Nurse3,
		"nurse_4":     schedule.Nurse4,
		"nurse_5":     schedule.Nurse5,
		"nurse_6":     schedule.Nurse6,
		"assistant_1": schedule.Assistant1,
		"assistant_2": schedule.Assistant2,
		"worker_1":    schedule.Worker1,
		"worker_2":    schedule.Worker2,
		"worker_3":    schedule.Worker3,
		"key_person":  schedule.KeyPerson,
	}
	if err := s.scheduleRepo.UpdateSchedule(existing.ID, updates); err != nil {
		return nil, fmt.Errorf("failed to update work schedule: %w", err)
	}
	return s.scheduleRepo.FindScheduleByDateAndShift(schedule.Date, schedule.ShiftType)
}

// GetSchedulesByDate returns both shifts for a date
func (s *ScheduleService) GetSchedulesByDate(date time.Time) ([]models.WorkSchedule, error) {
	return s.scheduleRepo.ListSchedulesByDate(date)
}

// GetScheduleByDateAndShift returns one shift's schedule
func (s *ScheduleService) GetScheduleByDateAndShift(date time.Time, shiftType string) (*models.WorkSchedule, error) {
	return s.scheduleRepo.FindScheduleByDateAndShift(date, shiftType)
}

// GetSchedulesByMonth returns all schedules inside a calendar month
func (s *ScheduleService) GetSchedulesByMonth(year int, month time.Month) ([]models.WorkSchedule, error) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)
	return s.scheduleRepo.ListSchedulesByRange(from, to)
}

// DeleteSchedule removes one shift's schedule
func (s *ScheduleService) DeleteSchedule(date time.Time, shiftType string) error {
	existing, err := s.scheduleRepo.FindScheduleByDateAndShift(date, shiftType)
	if err != nil {
		return err
	}
	return s.scheduleRepo.DeleteSchedule(existing.ID)
}
