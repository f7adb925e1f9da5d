package service

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fixedNow is the frozen clock injected into services under test
var fixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

// openTestDB opens an in-memory sqlite database with the application schema.
// The MySQL enum column types in the model tags do not migrate on sqlite,
// so the tables are created with plain DDL instead of AutoMigrate.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	ddl := []string{
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			full_name TEXT NOT NULL,
			role TEXT DEFAULT 'nurse',
			is_active BOOLEAN DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE refresh_tokens (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER NOT NULL,
			token_hash TEXT NOT NULL,
			expires_at DATETIME NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			revoked BOOLEAN DEFAULT 0
		)`,
		`CREATE TABLE session_logs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id INTEGER,
			username TEXT NOT NULL,
			action TEXT NOT NULL,
			ip_address TEXT,
			user_agent TEXT,
			success BOOLEAN DEFAULT 1,
			failure_reason TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE status_history (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			entity_type TEXT NOT NULL,
			entity_id INTEGER NOT NULL,
			old_status TEXT,
			new_status TEXT NOT NULL,
			changed_by INTEGER,
			changed_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			notes TEXT
		)`,
		`CREATE TABLE patients (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hn TEXT NOT NULL,
			full_name TEXT NOT NULL,
			age INTEGER,
			gender TEXT,
			diagnosis TEXT,
			operation TEXT,
			surgeon TEXT,
			anesthesiologist TEXT,
			or_room TEXT,
			patient_type TEXT NOT NULL DEFAULT 'elective',
			status TEXT DEFAULT 'waiting',
			scheduled_date DATETIME,
			scheduled_time TEXT,
			actual_start_time DATETIME,
			actual_end_time DATETIME,
			notes TEXT,
			created_by INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE surgery_registrations (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hn TEXT NOT NULL,
			patient_name TEXT NOT NULL,
			age INTEGER,
			surgery_date DATETIME,
			scheduled_time TEXT,
			surgery_type TEXT DEFAULT 'elective',
			or_room TEXT,
			department TEXT,
			surgeon TEXT,
			diagnosis TEXT,
			operation TEXT,
			ward TEXT,
			case_size TEXT,
			actual_start_time DATETIME,
			actual_end_time DATETIME,
			assist1 TEXT,
			assist2 TEXT,
			scrub_nurse TEXT,
			circulate_nurse TEXT,
			queue_order INTEGER,
			selected_or TEXT,
			status TEXT DEFAULT 'registered',
			not_ready_reason TEXT,
			created_by INTEGER,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE work_schedules (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			date DATETIME NOT NULL,
			shift_type TEXT NOT NULL,
			incharge TEXT,
			nurse_1 TEXT,
			nurse_2 TEXT,
			nurse_3 TEXT,
			nurse_4 TEXT,
			nurse_5 TEXT,
			nurse_6 TEXT,
			assistant_1 TEXT,
			assistant_2 TEXT,
			worker_1 TEXT,
			worker_2 TEXT,
			worker_3 TEXT,
			key_person TEXT,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
	}
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("failed to create test schema: %v", err)
		}
	}

	return db
}

// midnight truncates the fixed clock to its date, matching the service's
// notion of "today"
func midnight(now time.Time) time.Time {
	year, month, day := now.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
