package service

import (
	"fmt"
	"time"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/repository"
	"surgitrack-backend/internal/status"
)

type SurgeryService struct {
	surgeryRepo *repository.SurgeryRepository
	auditRepo   *repository.AuditRepository
	registry    *status.Registry
	now         func() time.Time
}

func NewSurgeryService(
	surgeryRepo *repository.SurgeryRepository,
	auditRepo *repository.AuditRepository,
	registry *status.Registry,
) *SurgeryService {
	return &SurgeryService{
		surgeryRepo: surgeryRepo,
		auditRepo:   auditRepo,
		registry:    registry,
		now:         time.Now,
	}
}

// RegisterSurgery creates one surgery registration
func (s *SurgeryService) RegisterSurgery(surgery *models.SurgeryRegistration, createdBy uint) error {
	s.applyRegistrationDefaults(surgery)
	surgery.CreatedBy = &createdBy
	if err := s.surgeryRepo.CreateSurgery(surgery); err != nil {
		return fmt.Errorf("failed to register surgery: %w", err)
	}
	return nil
}

// RegisterSurgeriesBulk creates several registrations at once
func (s *SurgeryService) RegisterSurgeriesBulk(surgeries []*models.SurgeryRegistration, createdBy uint) error {
	for _, surgery := range surgeries {
		s.applyRegistrationDefaults(surgery)
		surgery.CreatedBy = &createdBy
	}
	if err := s.surgeryRepo.CreateSurgeriesBulk(surgeries); err != nil {
		return fmt.Errorf("failed to register surgeries: %w", err)
	}
	return nil
}

func (s *SurgeryService) applyRegistrationDefaults(surgery *models.SurgeryRegistration) {
	if surgery.Status == "" {
		surgery.Status = "registered"
	}
	if surgery.SurgeryType == "" {
		surgery.SurgeryType = models.PatientTypeElective
	}
	if surgery.SurgeryDate == nil {
		today := s.today()
		surgery.SurgeryDate = &today
	}
}

// HNCheckResult reports whether a hospital number is already known and its
// surgery history
type HNCheckResult struct {
	Exists  bool                         `json:"exists"`
	Patient *HNPatientInfo               `json:"patient"`
	History []models.SurgeryRegistration `json:"history"`
}

type HNPatientInfo struct {
	HN          string `json:"hn"`
	PatientName string `json:"patient_name"`
	Age         *int   `json:"age"`
}

// CheckHN looks up previous registrations for a hospital number, used for
// duplicate detection during registration
func (s *SurgeryService) CheckHN(hn string) (*HNCheckResult, error) {
	surgeries, err := s.surgeryRepo.FindSurgeriesByHN(hn)
	if err != nil {
		return nil, err
	}
	if len(surgeries) == 0 {
		return &HNCheckResult{Exists: false, History: []models.SurgeryRegistration{}}, nil
	}
	latest := surgeries[0]
	return &HNCheckResult{
		Exists: true,
		Patient: &HNPatientInfo{
			HN:          latest.HN,
			PatientName: latest.PatientName,
			Age:         latest.Age,
		},
		History: surgeries,
	}, nil
}

// GetSurgery returns one registration by id
func (s *SurgeryService) GetSurgery(id uint) (*models.SurgeryRegistration, error) {
	return s.surgeryRepo.FindSurgeryByID(id)
}

// ListTodaySurgeries returns registrations dated today
func (s *SurgeryService) ListTodaySurgeries() ([]models.SurgeryRegistration, error) {
	return s.surgeryRepo.ListSurgeriesByDate(s.today(), "")
}

// ListSurgeriesByDate returns registrations for a date, optionally narrowed
// to elective or emergency
func (s *SurgeryService) ListSurgeriesByDate(date time.Time, surgeryType string) ([]models.SurgeryRegistration, error) {
	return s.surgeryRepo.ListSurgeriesByDate(date, surgeryType)
}

// UpdateSurgery applies general field updates (room, queue order, staff,
// times). Status never travels this path; ChangeStatus owns it.
func (s *SurgeryService) UpdateSurgery(id uint, updates map[string]interface{}) (*models.SurgeryRegistration, error) {
	if _, err := s.surgeryRepo.FindSurgeryByID(id); err != nil {
		return nil, err
	}
	delete(updates, "status")
	if len(updates) > 0 {
		if err := s.surgeryRepo.UpdateSurgery(id, updates); err != nil {
			return nil, fmt.Errorf("failed to update surgery: %w", err)
		}
	}
	return s.surgeryRepo.FindSurgeryByID(id)
}

// ChangeStatus applies a status transition with its timestamp side effects
// and appends the audit record, atomically
func (s *SurgeryService) ChangeStatus(id uint, targetStatus string, actorID uint, note string) (*models.SurgeryRegistration, error) {
	surgery, err := s.surgeryRepo.FindSurgeryByID(id)
	if err != nil {
		return nil, err
	}

	cmd := status.ApplyTransition{
		Kind:         status.KindSurgery,
		EntityID:     id,
		TargetStatus: targetStatus,
		ActorID:      actorID,
		Note:         note,
	}
	snapshot := status.Snapshot{
		Status:    surgery.Status,
		StartedAt: surgery.ActualStartTime,
		EndedAt:   surgery.ActualEndTime,
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
	if err := s.surgeryRepo.ApplyStatusOutcome(id, updates, &history); err != nil {
		return nil, fmt.Errorf("%w: status transition commit: %v", models.ErrPersistence, err)
	}

	return s.surgeryRepo.FindSurgeryByID(id)
}

// GetStatusHistory returns the transition log for one registration
func (s *SurgeryService) GetStatusHistory(id uint, skip, limit int) ([]models.StatusHistory, error) {
	if _, err := s.surgeryRepo.FindSurgeryByID(id); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}
	return s.auditRepo.ListStatusHistory(string(status.KindSurgery), id, skip, limit)
}

// DeleteSurgery removes a registration together with its history
func (s *SurgeryService) DeleteSurgery(id uint) error {
	if _, err := s.surgeryRepo.FindSurgeryByID(id); err != nil {
		return err
	}
	if err := s.surgeryRepo.DeleteSurgery(id); err != nil {
		return fmt.Errorf("failed to delete surgery: %w", err)
	}
	return nil
}

// ResetAllSurgeries wipes every registration. Dev/testing endpoint only.
func (s *SurgeryService) ResetAllSurgeries() error {
	return s.surgeryRepo.ResetAllSurgeries()
}

func (s *SurgeryService) today() time.Time {
	year, month, day := s.now().UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
