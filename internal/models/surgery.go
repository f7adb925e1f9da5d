package models

import "time"

// Case size values
const (
	CaseSizeMajor = "Major"
	CaseSizeMinor = "Minor"
)

// SurgeryRegistration represents the surgery_registrations table
type SurgeryRegistration struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Patient information
	HN          string `gorm:"column:hn;size:20;not null;index" json:"hn"`
	PatientName string `gorm:"size:255;not null" json:"patient_name"`
	Age         *int   `json:"age"`

	// Schedule
	SurgeryDate   *time.Time `gorm:"type:date;index" json:"surgery_date"`
	ScheduledTime *string    `gorm:"size:8" json:"scheduled_time"` // HH:MM
	SurgeryType   string     `gorm:"type:enum('elective','emergency');default:'elective'" json:"surgery_type"`
	ORRoom        string     `gorm:"column:or_room;size:20" json:"or_room,omitempty"`

	// Medical information
	Department string `gorm:"size:50" json:"department,omitempty"`
	Surgeon    string `gorm:"size:100" json:"surgeon,omitempty"`
	Diagnosis  string `gorm:"type:text" json:"diagnosis,omitempty"`
	Operation  string `gorm:"type:text" json:"operation,omitempty"`
	Ward       string `gorm:"size:100" json:"ward,omitempty"`
	CaseSize   string `gorm:"type:enum('Major','Minor')" json:"case_size,omitempty"`

	// Actual surgery times
	ActualStartTime *time.Time `json:"actual_start_time"`
	ActualEndTime   *time.Time `json:"actual_end_time"`

	// Nursing staff
	Assist1       string `gorm:"size:100" json:"assist1,omitempty"`
	Assist2       string `gorm:"size:100" json:"assist2,omitempty"`
	ScrubNurse    string `gorm:"size:100" json:"scrub_nurse,omitempty"`
	CirculateNurse string `gorm:"size:100" json:"circulate_nurse,omitempty"`

	// Queue management
	QueueOrder *int   `json:"queue_order"`
	SelectedOR string `gorm:"column:selected_or;size:20" json:"selected_or,omitempty"`

	// Status
	Status         string `gorm:"type:enum('registered','waiting','in_surgery','recovery','completed','cancelled','not_ready');default:'registered'" json:"status"`
	NotReadyReason string `gorm:"size:100" json:"not_ready_reason,omitempty"`

	// Metadata
	CreatedBy *uint     `gorm:"index" json:"created_by"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for SurgeryRegistration model
func (SurgeryRegistration) TableName() string {
	return "surgery_registrations"
}
