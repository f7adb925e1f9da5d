package repository

import (
	"surgitrack-backend/internal/models"

	"gorm.io/gorm"
)

// AuditRepository owns the append-only audit tables: status_history and
// session_logs. Rows are inserted and listed, never updated; history rows
// disappear only when the owning entity is deleted.
type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

// CreateSessionLog appends an authentication event
func (r *AuditRepository) CreateSessionLog(userID *uint, username, action, ipAddress, userAgent string, success bool, failureReason string) error {
	log := &models.SessionLog{
		UserID:        userID,
		Username:      username,
		Action:        action,
		IPAddress:     ipAddress,
		UserAgent:     userAgent,
		Success:       success,
		FailureReason: failureReason,
	}
	return r.db.Create(log).Error
}

// ListSessionLogs returns authentication events, newest first
func (r *AuditRepository) ListSessionLogs(skip, limit int) ([]models.SessionLog, error) {
	var logs []models.SessionLog
	err := r.db.Order("created_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&logs).Error
	return logs, err
}

// ListStatusHistory returns the transition log for one entity, newest first
func (r *AuditRepository) ListStatusHistory(entityType string, entityID uint, skip, limit int) ([]models.StatusHistory, error) {
	var records []models.StatusHistory
	err := r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("changed_at DESC, id DESC").
		Offset(skip).Limit(limit).
		Find(&records).Error
	return records, err
}
