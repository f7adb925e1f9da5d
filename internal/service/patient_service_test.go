package service

import (
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/repository"
	"surgitrack-backend/internal/status"
)

func newPatientService(t *testing.T) (*PatientService, *gorm.DB) {
	t.Helper()
	db := openTestDB(t)
	svc := NewPatientService(
		repository.NewPatientRepo(db),
		repository.NewAuditRepo(db),
		status.DefaultRegistry(),
	)
	svc.now = func() time.Time { return fixedNow }
	return svc, db
}

func seedPatient(t *testing.T, svc *PatientService, hn, name, room string) *models.Patient {
	t.Helper()
	today := midnight(fixedNow)
	p := &models.Patient{
		HN:            hn,
		FullName:      name,
		ORRoom:        room,
		ScheduledDate: &today,
	}
	if err := svc.CreatePatient(p, 1); err != nil {
		t.Fatalf("failed to seed patient: %v", err)
	}
	return p
}

func countHistory(t *testing.T, db *gorm.DB, entityType string, entityID uint) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.StatusHistory{}).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Count(&n).Error; err != nil {
		t.Fatalf("failed to count history: %v", err)
	}
	return n
}

func TestCreatePatient_Defaults(t *testing.T) {
	svc, _ := newPatientService(t)

	p := seedPatient(t, svc, "66012345", "Somchai Jaidee", "OR1")
	if p.Status != "waiting" {
		t.Fatalf("expected default status waiting, got %q", p.Status)
	}
	if p.CreatedBy == nil || *p.CreatedBy != 1 {
		t.Fatalf("expected created_by 1, got %v", p.CreatedBy)
	}
}

func TestCreatePatient_RejectsUnknownStatus(t *testing.T) {
	svc, _ := newPatientService(t)

	err := svc.CreatePatient(&models.Patient{HN: "1", FullName: "x", Status: "discharged"}, 1)
	if !errors.Is(err, models.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

func TestChangeStatus_StampsTimesAndAppendsHistory(t *testing.T) {
	svc, db := newPatientService(t)
	p := seedPatient(t, svc, "66012345", "Somchai Jaidee", "OR1")

	got, err := svc.ChangeStatus(p.ID, "in_surgery", 2, "wheeled in")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != "in_surgery" {
		t.Fatalf("expected in_surgery, got %q", got.Status)
	}
	if got.ActualStartTime == nil || !got.ActualStartTime.Equal(fixedNow) {
		t.Fatalf("expected start stamped at %v, got %v", fixedNow, got.ActualStartTime)
	}
	if got.ActualEndTime != nil {
		t.Fatalf("expected no end time yet, got %v", got.ActualEndTime)
	}

	got, err = svc.ChangeStatus(p.ID, "recovering", 2, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ActualEndTime == nil || !got.ActualEndTime.Equal(fixedNow) {
		t.Fatalf("expected end stamped at %v, got %v", fixedNow, got.ActualEndTime)
	}

	records, err := svc.GetStatusHistory(p.ID, 0, 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 history records, got %d", len(records))
	}
	latest := records[0]
	if latest.OldStatus == nil || *latest.OldStatus != "in_surgery" || latest.NewStatus != "recovering" {
		t.Fatalf("unexpected latest record: %+v", latest)
	}
	if latest.ChangedBy == nil || *latest.ChangedBy != 2 {
		t.Fatalf("expected changed_by 2, got %v", latest.ChangedBy)
	}
	if n := countHistory(t, db, "patient", p.ID); n != 2 {
		t.Fatalf("expected 2 rows in status_history, got %d", n)
	}
}

func TestChangeStatus_DoesNotRestampStart(t *testing.T) {
	svc, _ := newPatientService(t)
	p := seedPatient(t, svc, "66012345", "Somchai Jaidee", "OR1")

	if _, err := svc.ChangeStatus(p.ID, "in_surgery", 2, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	later := fixedNow.Add(2 * time.Hour)
	svc.now = func() time.Time { return later }
	if _, err := svc.ChangeStatus(p.ID, "postponed", 2, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := svc.ChangeStatus(p.ID, "in_surgery", 2, "resumed")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ActualStartTime == nil || !got.ActualStartTime.Equal(fixedNow) {
		t.Fatalf("expected original start %v preserved, got %v", fixedNow, got.ActualStartTime)
	}
}

func TestChangeStatus_InvalidStatusLeavesStateUntouched(t *testing.T) {
	svc, db := newPatientService(t)
	p := seedPatient(t, svc, "66012345", "Somchai Jaidee", "OR1")

	_, err := svc.ChangeStatus(p.ID, "flying", 2, "")
	if !errors.Is(err, models.ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}

	got, err := svc.GetPatient(p.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != "waiting" || got.ActualStartTime != nil {
		t.Fatalf("rejected transition must not mutate the patient: %+v", got)
	}
	if n := countHistory(t, db, "patient", p.ID); n != 0 {
		t.Fatalf("rejected transition must not append history, got %d rows", n)
	}
}

func TestChangeStatus_NotFound(t *testing.T) {
	svc, db := newPatientService(t)

	_, err := svc.ChangeStatus(9999, "in_surgery", 2, "")
	if !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if n := countHistory(t, db, "patient", 9999); n != 0 {
		t.Fatalf("missing patient must not gain history, got %d rows", n)
	}
}

func TestUpdatePatient_StatusFieldIsIgnored(t *testing.T) {
	svc, _ := newPatientService(t)
	p := seedPatient(t, svc, "66012345", "Somchai Jaidee", "OR1")

	got, err := svc.UpdatePatient(p.ID, map[string]interface{}{
		"or_room": "OR5",
		"status":  "in_surgery",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ORRoom != "OR5" {
		t.Fatalf("expected or_room updated, got %q", got.ORRoom)
	}
	if got.Status != "waiting" {
		t.Fatalf("general update must not change status, got %q", got.Status)
	}
}

func TestPublicDisplay_MasksAndFilters(t *testing.T) {
	svc, _ := newPatientService(t)
	seedPatient(t, svc, "66012345", "Somchai Jaidee", "OR1")
	postponed := seedPatient(t, svc, "66054321", "Somying Rakdee", "OR2")
	if _, err := svc.ChangeStatus(postponed.ID, "postponed", 1, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	views, err := svc.PublicDisplay()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected only active patients on the board, got %d", len(views))
	}
	v := views[0]
	if v.HNMasked != "***345" || v.NameMasked != "Som***" {
		t.Fatalf("expected masked identifiers, got %+v", v)
	}
	if v.StatusThai != "รอผ่าตัด" {
		t.Fatalf("expected Thai label, got %q", v.StatusThai)
	}
}

func TestDashboardStats(t *testing.T) {
	svc, _ := newPatientService(t)
	seedPatient(t, svc, "1", "A A", "OR1")
	seedPatient(t, svc, "2", "B B", "OR2")
	p := seedPatient(t, svc, "3", "C C", "OR3")
	if _, err := svc.ChangeStatus(p.ID, "in_surgery", 1, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stats, err := svc.DashboardStats()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.TotalToday != 3 {
		t.Fatalf("expected 3 patients today, got %d", stats.TotalToday)
	}
	if stats.Waiting != 2 || stats.InSurgery != 1 {
		t.Fatalf("unexpected status counts: %+v", stats)
	}
	if stats.ElectiveCount != 3 || stats.EmergencyCount != 0 {
		t.Fatalf("unexpected type counts: %+v", stats)
	}
}

func TestDeletePatient_RemovesHistory(t *testing.T) {
	svc, db := newPatientService(t)
	p := seedPatient(t, svc, "66012345", "Somchai Jaidee", "OR1")
	if _, err := svc.ChangeStatus(p.ID, "in_surgery", 1, ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := svc.DeletePatient(p.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.GetPatient(p.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if n := countHistory(t, db, "patient", p.ID); n != 0 {
		t.Fatalf("expected history removed with the patient, got %d rows", n)
	}
}
