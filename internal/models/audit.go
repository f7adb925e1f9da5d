package models

import "time"

// SessionLog represents the session_logs table
// Records login, logout and failed login events for the audit trail
type SessionLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        *uint     `gorm:"index" json:"user_id"`
	Username      string    `gorm:"size:50;not null" json:"username"`
	Action        string    `gorm:"size:20;not null" json:"action"` // login, logout, failed_login
	IPAddress     string    `gorm:"size:50" json:"ip_address,omitempty"`
	UserAgent     string    `gorm:"type:text" json:"user_agent,omitempty"`
	Success       bool      `gorm:"default:true" json:"success"`
	FailureReason string    `gorm:"size:255" json:"failure_reason,omitempty"`
	CreatedAt     time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	User          *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for SessionLog model
func (SessionLog) TableName() string {
	return "session_logs"
}

// StatusHistory represents the status_history table
// One row is appended for every status transition and never updated afterwards
type StatusHistory struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	EntityType string    `gorm:"size:20;not null;index:idx_status_history_entity" json:"entity_type"`
	EntityID   uint      `gorm:"not null;index:idx_status_history_entity" json:"entity_id"`
	OldStatus  *string   `gorm:"size:20" json:"old_status"`
	NewStatus  string    `gorm:"size:20;not null" json:"new_status"`
	ChangedBy  *uint     `gorm:"index" json:"changed_by"`
	ChangedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"changed_at"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
}

// TableName specifies the table name for StatusHistory model
func (StatusHistory) TableName() string {
	return "status_history"
}
