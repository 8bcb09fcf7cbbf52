package services

import (
	"errors"
	"fmt"

	"cafe_storefront_backend/internal/models"
	"cafe_storefront_backend/internal/repositories"
	"cafe_storefront_backend/pkg/utils"

	"golang.org/x/crypto/bcrypt"
)

// --- Custom Service Errors for Auth ---
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrTokenGeneration    = errors.New("failed to generate token")
)

// LoginRequest DTO
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse DTO
type AuthResponse struct {
	User        *models.AdminUser `json:"user"`
	AccessToken string            `json:"access_token"`
}

// --- AuthService Interface ---
type AuthService interface {
	Login(req LoginRequest) (*AuthResponse, error)
}

// --- authService Implementation ---
type authService struct {
	authRepo repositories.AuthRepository
}

// NewAuthService creates a new instance of AuthService.
func NewAuthService(authRepo repositories.AuthRepository) AuthService {
	return &authService{authRepo: authRepo}
}

// EnsureAdminAccount seeds the initial admin user at startup when none
// with the given username exists. Passwords are stored bcrypt-hashed.
func EnsureAdminAccount(authRepo repositories.AuthRepository, executor repositories.SQLExecutor, username, password string) error {
	_, err := authRepo.GetUserByUsername(username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return fmt.Errorf("failed to look up admin user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	user := &models.AdminUser{Username: username, PasswordHash: string(hash), Role: "Admin"}
	if _, err := authRepo.CreateUser(executor, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	utils.LogInfo("Seeded initial admin account", map[string]interface{}{"username": username})
	return nil
}

// Login verifies an admin's credentials and issues a session token.
func (s *authService) Login(req LoginRequest) (*AuthResponse, error) {
	user, err := s.authRepo.GetUserByUsername(req.Username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up admin user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateAccessToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenGeneration, err)
	}

	return &AuthResponse{User: user, AccessToken: token}, nil
}
