package service

import (
	"errors"
	"fmt"
	"time"

	"surgitrack-backend/internal/models"
	"surgitrack-backend/internal/repository"
	"surgitrack-backend/pkg/utils"
)

// Session log actions
const (
	ActionLogin       = "login"
	ActionLogout      = "logout"
	ActionFailedLogin = "failed_login"
)

type AuthService struct {
	userRepo  *repository.UserRepository
	auditRepo *repository.AuditRepository
}

func NewAuthService(userRepo *repository.UserRepository, auditRepo *repository.AuditRepository) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
	}
}

// ClientInfo carries request metadata recorded with every session event
type ClientInfo struct {
	IPAddress string
	UserAgent string
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Login authenticates a user and returns tokens. Every attempt, including
// failures, is recorded in session_logs.
func (s *AuthService) Login(username, password string, client ClientInfo) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByUsername(username)
	if err != nil {
		_ = s.auditRepo.CreateSessionLog(nil, username, ActionFailedLogin,
			client.IPAddress, client.UserAgent, false, "User not found")
		return nil, errors.New("invalid credentials")
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		_ = s.auditRepo.CreateSessionLog(&user.ID, user.Username, ActionFailedLogin,
			client.IPAddress, client.UserAgent, false, "Invalid password")
		return nil, errors.New("invalid credentials")
	}

	if !user.IsActive {
		_ = s.auditRepo.CreateSessionLog(&user.ID, user.Username, ActionFailedLogin,
			client.IPAddress, client.UserAgent, false, "User inactive")
		return nil, errors.New("user is inactive")
	}

	accessToken, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	tokenHash := utils.HashRefreshToken(refreshToken)
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
	}
	if err := s.userRepo.CreateRefreshToken(refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	_ = s.auditRepo.CreateSessionLog(&user.ID, user.Username, ActionLogin,
		client.IPAddress, client.UserAgent, true, "")

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:       user.ID,
			Username: user.Username,
			FullName: user.FullName,
			Role:     user.Role,
		},
	}, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(refreshToken string) (string, error) {
	tokenHash := utils.HashRefreshToken(refreshToken)

	token, err := s.userRepo.FindRefreshTokenByHash(tokenHash)
	if err != nil {
		return "", errors.New("invalid or revoked refresh token")
	}

	if time.Now().After(token.ExpiresAt) {
		return "", errors.New("refresh token expired")
	}

	accessToken, err := utils.GenerateAccessToken(token.User.ID, token.User.Username, token.User.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes the refresh token and records the session end
func (s *AuthService) Logout(refreshToken string, userID uint, username string, client ClientInfo) error {
	tokenHash := utils.HashRefreshToken(refreshToken)

	if err := s.userRepo.RevokeRefreshTokenByHash(tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	_ = s.auditRepo.CreateSessionLog(&userID, username, ActionLogout,
		client.IPAddress, client.UserAgent, true, "")

	return nil
}

// GetMe returns the current user's profile
func (s *AuthService) GetMe(userID uint) (*models.User, error) {
	return s.userRepo.FindUserByID(userID)
}

// RegisterFirstAdmin creates the initial admin account. It only succeeds
// while the users table is empty.
func (s *AuthService) RegisterFirstAdmin(username, password, fullName string) (*models.User, error) {
	count, err := s.userRepo.CountUsers()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil, errors.New("registration is closed, please contact admin")
	}

	passwordHash, err := utils.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: passwordHash,
		FullName:     fullName,
		Role:         "admin",
		IsActive:     true,
	}
	if err := s.userRepo.CreateUser(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// ListSessionLogs returns authentication events for admin review
func (s *AuthService) ListSessionLogs(skip, limit int) ([]models.SessionLog, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.auditRepo.ListSessionLogs(skip, limit)
}
