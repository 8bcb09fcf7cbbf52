package repositories

import (
	"database/sql"
	"errors"
	"fmt"

	"cafe_storefront_backend/internal/models"
)

// AuthRepository defines the interface for admin-account storage.
type AuthRepository interface {
	GetUserByUsername(username string) (*models.AdminUser, error)
	CreateUser(executor SQLExecutor, user *models.AdminUser) (int64, error)
}

type authRepository struct {
	db *sql.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sql.DB) AuthRepository {
	return &authRepository{db: db}
}

func (r *authRepository) GetUserByUsername(username string) (*models.AdminUser, error) {
	user := &models.AdminUser{}
	query := `SELECT id, username, password_hash, role, created_at FROM admin_users WHERE username = $1`
	err := r.db.QueryRow(query, username).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: getting admin user '%s': %v", ErrDatabaseError, username, err)
	}
	return user, nil
}

func (r *authRepository) CreateUser(executor SQLExecutor, user *models.AdminUser) (int64, error) {
	query := `INSERT INTO admin_users (username, password_hash, role, created_at)
	          VALUES ($1, $2, $3, NOW())
	          RETURNING id, created_at`
	err := executor.QueryRow(query, user.Username, user.PasswordHash, user.Role).Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: admin username '%s' already exists", ErrDuplicateKey, user.Username)
		}
		return 0, fmt.Errorf("%w: creating admin user: %v", ErrDatabaseError, err)
	}
	return user.ID, nil
}
