package models

import "time"

// Shift type values
const (
	ShiftAfternoon = "afternoon"
	ShiftNight     = "night"
)

// WorkSchedule represents the work_schedules table
// One row per date and shift holding the named staff assignments
type WorkSchedule struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"type:date;not null;index" json:"date"`
	ShiftType string    `gorm:"type:enum('afternoon','night');not null" json:"shift_type"`

	// Shift leader
	Incharge string `gorm:"size:100" json:"incharge,omitempty"`

	// Registered nurses
	Nurse1 string `gorm:"column:nurse_1;size:100" json:"nurse_1,omitempty"`
	Nurse2 string `gorm:"column:nurse_2;size:100" json:"nurse_2,omitempty"`
	Nurse3 string `gorm:"column:nurse_3;size:100" json:"nurse_3,omitempty"`
	Nurse4 string `gorm:"column:nurse_4;size:100" json:"nurse_4,omitempty"`
	Nurse5 string `gorm:"column:nurse_5;size:100" json:"nurse_5,omitempty"`
	Nurse6 string `gorm:"column:nurse_6;size:100" json:"nurse_6,omitempty"`

	// Nurse assistants
	Assistant1 string `gorm:"column:assistant_1;size:100" json:"assistant_1,omitempty"`
	Assistant2 string `gorm:"column:assistant_2;size:100" json:"assistant_2,omitempty"`

	// Workers
	Worker1 string `gorm:"column:worker_1;size:100" json:"worker_1,omitempty"`
	Worker2 string `gorm:"column:worker_2;size:100" json:"worker_2,omitempty"`
	Worker3 string `gorm:"column:worker_3;size:100" json:"worker_3,omitempty"`

	// Key holder (drawn from the assistant roster)
	KeyPerson string `gorm:"size:100" json:"key_person,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP" json:"updated_at"`
}

// TableName specifies the table name for WorkSchedule model
func (WorkSchedule) TableName() string {
	return "work_schedules"
}
