package service

import (
	"fmt"
	"time"

	"surgitrack-backend/internal/display"
	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/repository"
	"surgitrack-backend/internal/status"
)

type PatientService struct {
	patientRepo *repository.PatientRepository
	auditRepo   *repository.AuditRepository
	registry    *status.Registry
	now         func() time.Time
}

func NewPatientService(
	patientRepo *repository.PatientRepository,
	auditRepo *repository.AuditRepository,
	registry *status.Registry,
) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
		auditRepo:   auditRepo,
		registry:    registry,
		now:         time.Now,
	}
}

// CreatePatient registers a new patient owned by the acting user
func (s *PatientService) CreatePatient(patient *models.Patient, createdBy uint) error {
	if patient.Status == "" {
		patient.Status = "waiting"
	}
	if !s.registry.IsValid(status.KindPatient, patient.Status) {
		return fmt.Errorf("%w: %q is not a valid patient status", models.ErrInvalidStatus, patient.Status)
	}
	patient.CreatedBy = &createdBy
	if err := s.patientRepo.CreatePatient(patient); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

// GetPatient returns one patient by id
func (s *PatientService) GetPatient(id uint) (*models.Patient, error) {
	return s.patientRepo.FindPatientByID(id)
}

// ListPatients returns patients matching the filter
func (s *PatientService) ListPatients(filter repository.PatientFilter) ([]models.Patient, error) {
	return s.patientRepo.ListPatients(filter)
}

// ListTodayPatients returns patients scheduled for today
func (s *PatientService) ListTodayPatients(patientType string) ([]models.Patient, error) {
	return s.patientRepo.ListPatientsForDate(s.today(), patientType)
}

// PublicDisplay returns the masked projection of today's active patients
// for the unauthenticated board
func (s *PatientService) PublicDisplay() ([]models.PublicDisplay, error) {
	patients, err := s.patientRepo.ListDisplayPatients(s.today(), display.DisplayStatuses)
	if err != nil {
		return nil, err
	}
	return display.Project(s.registry, patients), nil
}

// DashboardStats returns today's per-status counts
func (s *PatientService) DashboardStats() (*models.DashboardStats, error) {
	today := s.today()
	stats := &models.DashboardStats{}

	counts := []struct {
		dst                 *int64
		status, patientType string
	}{
		{&stats.TotalToday, "", ""},
		{&stats.Waiting, "waiting", ""},
		{&stats.InSurgery, "in_surgery", ""},
		{&stats.Recovering, "recovering", ""},
		{&stats.Postponed, "postponed", ""},
		{&stats.Returning, "returning", ""},
		{&stats.ElectiveCount, "", models.PatientTypeElective},
		{&stats.EmergencyCount, "", models.PatientTypeEmergency},
	}
	for _, c := range counts {
		n, err := s.patientRepo.CountPatients(today, c.status, c.patientType)
		if err != nil {
			return nil, err
		}
		*c.dst = n
	}
	return stats, nil
}

// UpdatePatient applies general field updates. Status never travels this
// path; ChangeStatus is the only writer so the audit trail cannot be
// bypassed.
func (s *PatientService) UpdatePatient(id uint, updates map[string]interface{}) (*models.Patient, error) {
	if _, err := s.patientRepo.FindPatientByID(id); err != nil {
		return nil, err
	}
	delete(updates, "status")
	if len(updates) > 0 {
		if err := s.patientRepo.UpdatePatient(id, updates); err != nil {
			return nil, fmt.Errorf("failed to update patient: %w", err)
		}
	}
	return s.patientRepo.FindPatientByID(id)
}

// ChangeStatus applies a status transition with its timestamp side effects
// and appends the audit record, atomically
func (s *PatientService) ChangeStatus(id uint, targetStatus string, actorID uint, note string) (*models.Patient, error) {
	patient, err := s.patientRepo.FindPatientByID(id)
	if err != nil {
		return nil, err
	}

	cmd := status.ApplyTransition{
		Kind:         status.KindPatient,
		EntityID:     id,
		TargetStatus: targetStatus,
		ActorID:      actorID,
		Note:         note,
	}
	snapshot := status.Snapshot{
		Status:    patient.Status,
		StartedAt: patient.ActualStartTime,
		EndedAt:   patient.ActualEndTime,
	}
	outcome, err := status.Apply(s.registry, cmd, snapshot, s.now())
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"status": outcome.NewStatus}
	if outcome.StartedAt != nil {
		updates["actual_start_time"] = outcome.StartedAt
	}
	if outcome.EndedAt != nil {
		updates["actual_end_time"] = outcome.EndedAt
	}

	history := outcome.History
	if err := s.patientRepo.ApplyStatusOutcome(id, updates, &history); err != nil {
		return nil, fmt.Errorf("%w: status transition commit: %v", models.ErrPersistence, err)
	}

	return s.patientRepo.FindPatientByID(id)
}

// GetStatusHistory returns the transition log for one patient
func (s *PatientService) GetStatusHistory(id uint, skip, limit int) ([]models.StatusHistory, error) {
	if _, err := s.patientRepo.FindPatientByID(id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return s.auditRepo.ListStatusHistory(string(status.KindPatient), id, skip, limit)
}

// DeletePatient removes a patient together with its history
func (s *PatientService) DeletePatient(id uint) error {
	if _, err := s.patientRepo.FindPatientByID(id); err != nil {
		return err
	}
	if err := s.patientRepo.DeletePatient(id); err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	return nil
}

func (s *PatientService) today() time.Time {
	year, month, day := s.now().UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
