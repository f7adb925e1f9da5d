package service

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/repository"
	"surgitrack-backend/pkg/utils"
)

var testClient = ClientInfo{IPAddress: "10.0.0.5", UserAgent: "go-test"}

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	utils.InitJWT("test-access-secret", "test-refresh-secret", 15*time.Minute, 7*24*time.Hour)
	db := openTestDB(t)
	svc := NewAuthService(repository.NewUserRepo(db), repository.NewAuditRepo(db))
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, username, password string, active bool) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		FullName:     "Test Nurse",
		Role:         "nurse",
		IsActive:     active,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

func lastSessionLog(t *testing.T, db *gorm.DB) models.SessionLog {
	t.Helper()
	var log models.SessionLog
	if err := db.Order("id DESC").First(&log).Error; err != nil {
		t.Fatalf("expected a session log: %v", err)
	}
	return log
}

func TestLogin_Success(t *testing.T) {
	svc, db := newAuthService(t)
	user := seedUser(t, db, "nurse1", "secret123", true)

	resp, err := svc.Login("nurse1", "secret123", testClient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		t.Fatalf("expected both tokens, got %+v", resp)
	}
	if resp.User.ID != user.ID || resp.User.Role != "nurse" {
		t.Fatalf("unexpected user payload: %+v", resp.User)
	}

	claims, err := utils.ValidateAccessToken(resp.AccessToken)
	if err != nil {
		t.Fatalf("access token must validate: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "nurse1" || claims.Role != "nurse" {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	log := lastSessionLog(t, db)
	if log.Action != ActionLogin || !log.Success {
		t.Fatalf("expected successful login log, got %+v", log)
	}
	if log.UserID == nil || *log.UserID != user.ID || log.IPAddress != "10.0.0.5" {
		t.Fatalf("expected client info recorded, got %+v", log)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, db := newAuthService(t)
	user := seedUser(t, db, "nurse1", "secret123", true)

	_, err := svc.Login("nurse1", "wrong", testClient)
	if err == nil {
		t.Fatalf("expected error")
	}

	log := lastSessionLog(t, db)
	if log.Action != ActionFailedLogin || log.Success {
		t.Fatalf("expected failed login log, got %+v", log)
	}
	if log.UserID == nil || *log.UserID != user.ID {
		t.Fatalf("expected the attempted user recorded, got %+v", log)
	}
	if log.FailureReason != "Invalid password" {
		t.Fatalf("unexpected failure reason %q", log.FailureReason)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc, db := newAuthService(t)

	_, err := svc.Login("ghost", "whatever", testClient)
	if err == nil {
		t.Fatalf("expected error")
	}

	log := lastSessionLog(t, db)
	if log.Action != ActionFailedLogin || log.UserID != nil {
		t.Fatalf("expected anonymous failed login log, got %+v", log)
	}
	if log.Username != "ghost" {
		t.Fatalf("expected attempted username recorded, got %q", log.Username)
	}
}

func TestLogin_InactiveUser(t *testing.T) {
	svc, db := newAuthService(t)
	seedUser(t, db, "nurse1", "secret123", false)

	_, err := svc.Login("nurse1", "secret123", testClient)
	if err == nil {
		t.Fatalf("expected error for inactive user")
	}

	log := lastSessionLog(t, db)
	if log.FailureReason != "User inactive" {
		t.Fatalf("unexpected failure reason %q", log.FailureReason)
	}
}

func TestRefreshAndLogout(t *testing.T) {
	svc, db := newAuthService(t)
	user := seedUser(t, db, "nurse1", "secret123", true)

	resp, err := svc.Login("nurse1", "secret123", testClient)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	accessToken, err := svc.RefreshAccessToken(resp.RefreshToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if accessToken == "" {
		t.Fatalf("expected a new access token")
	}

	if err := svc.Logout(resp.RefreshToken, user.ID, user.Username, testClient); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	log := lastSessionLog(t, db)
	if log.Action != ActionLogout || !log.Success {
		t.Fatalf("expected logout log, got %+v", log)
	}

	// revoked refresh token must stop working
	if _, err := svc.RefreshAccessToken(resp.RefreshToken); err == nil {
		t.Fatalf("expected error after logout")
	}
}

func TestRegisterFirstAdmin(t *testing.T) {
	svc, _ := newAuthService(t)

	admin, err := svc.RegisterFirstAdmin("admin", "secret123", "Head Nurse")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if admin.Role != "admin" || !admin.IsActive {
		t.Fatalf("expected active admin, got %+v", admin)
	}

	// registration closes once any user exists
	if _, err := svc.RegisterFirstAdmin("admin2", "secret123", "Second"); err == nil {
		t.Fatalf("expected registration to be closed")
	}
}

func TestListSessionLogs_NewestFirst(t *testing.T) {
	svc, db := newAuthService(t)
	seedUser(t, db, "nurse1", "secret123", true)

	if _, err := svc.Login("nurse1", "wrong", testClient); err == nil {
		t.Fatalf("expected error")
	}
	if _, err := svc.Login("nurse1", "secret123", testClient); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	logs, err := svc.ListSessionLogs(0, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 logs, got %d", len(logs))
	}
	if logs[0].Action != ActionLogin || logs[1].Action != ActionFailedLogin {
		t.Fatalf("expected newest first ordering, got %s then %s", logs[0].Action, logs[1].Action)
	}
}
