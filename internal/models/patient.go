package models

import "time"

// Patient type values
const (
	PatientTypeElective  = "elective"
	PatientTypeEmergency = "emergency"
)

// Patient represents the patients table
type Patient struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	HN       string `gorm:"column:hn;size:20;not null;index" json:"hn"` // Hospital Number
	FullName string `gorm:"size:100;not null" json:"full_name"`
	Age      *int   `json:"age"`
	Gender   string `gorm:"type:enum('male','female','other')" json:"gender,omitempty"`

	// Surgery details
	Diagnosis        string `gorm:"size:255" json:"diagnosis,omitempty"`
	Operation        string `gorm:"size:255" json:"operation,omitempty"`
	Surgeon          string `gorm:"size:100" json:"surgeon,omitempty"`
	Anesthesiologist string `gorm:"size:100" json:"anesthesiologist,omitempty"`
	ORRoom           string `gorm:"column:or_room;size:20" json:"or_room,omitempty"`

	// Classification and status
	PatientType string `gorm:"type:enum('elective','emergency');not null;default:'elective'" json:"patient_type"`
	Status      string `gorm:"type:enum('waiting','in_surgery','recovering','postponed','returning');default:'waiting'" json:"status"`

	// Schedule and actual times
	ScheduledDate   *time.Time `gorm:"type:date" json:"scheduled_date"`
	ScheduledTime   *string    `gorm:"size:8" json:"scheduled_time"` // HH:MM
	ActualStartTime *time.Time `json:"actual_start_time"`
	ActualEndTime   *time.Time `json:"actual_end_time"`

	Notes string `gorm:"type:text" json:"notes,omitempty"`

	// Audit
	CreatedBy *uint     `gorm:"index" json:"created_by"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for Patient model
func (Patient) TableName() string {
	return "patients"
}

// PublicDisplay is the redacted projection of a patient for the
// unauthenticated TV board
type PublicDisplay struct {
	ORRoom     string `json:"or_room"`
	HNMasked   string `json:"hn_masked"`
	NameMasked string `json:"name_masked"`
	Status     string `json:"status"`
	StatusThai string `json:"status_thai"`
}

// DashboardStats holds today's per-status patient counts
type DashboardStats struct {
	TotalToday     int64 `json:"total_today"`
	Waiting        int64 `json:"waiting"`
	InSurgery      int64 `json:"in_surgery"`
	Recovering     int64 `json:"recovering"`
	Postponed      int64 `json:"postponed"`
	Returning      int64 `json:"returning"`
	ElectiveCount  int64 `json:"elective_count"`
	EmergencyCount int64 `json:"emergency_count"`
}
