package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"aerozone_backend/internal/models"

	"github.com/jmoiron/sqlx"
)

// AuthRepository defines the interface for authentication-related database operations.
type AuthRepository interface {
	CreateUser(ctx context.Context, executor SQLExecutor, user *models.User) (int64, error)
	FindUserByUsername(ctx context.Context, username string) (*models.User, error)
	FindUserByID(ctx context.Context, userID int64) (*models.User, error)
}

type authRepository struct {
	db *sqlx.DB
}

// NewAuthRepository creates a new instance of AuthRepository.
func NewAuthRepository(db *sqlx.DB) AuthRepository {
	return &authRepository{db: db}
}

const userColumns = `id, username, password_hash, email, full_name, role, is_active, created_at, updated_at`

// CreateUser inserts a new active user. PasswordHash must already be set.
func (r *authRepository) CreateUser(ctx context.Context, executor SQLExecutor, user *models.User) (int64, error) {
	query := executor.Rebind(`INSERT INTO users (username, password_hash, email, full_name, role, is_active, created_at, updated_at)
	          VALUES (?, ?, ?, ?, ?, TRUE, ?, ?)
	          RETURNING id`)

	currentTime := now()
	err := executor.QueryRowxContext(ctx, query,
		user.Username, user.PasswordHash, user.Email, user.FullName, user.Role, currentTime, currentTime,
	).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %v", ErrDuplicateKey, err)
		}
		return 0, fmt.Errorf("%w: creating user: %v", ErrDatabaseError, err)
	}
	user.IsActive = true
	user.CreatedAt, user.UpdatedAt = currentTime, currentTime
	return user.ID, nil
}

func (r *authRepository) FindUserByUsername(ctx context.Context, username string) (*models.User, error) {
	user := &models.User{}
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE username = ?`)
	if err := sqlx.GetContext(ctx, r.db, user, query, username); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by username: %v", ErrDatabaseError, err)
	}
	return user, nil
}

func (r *authRepository) FindUserByID(ctx context.Context, userID int64) (*models.User, error) {
	user := &models.User{}
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	if err := sqlx.GetContext(ctx, r.db, user, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: finding user by ID %d: %v", ErrDatabaseError, userID, err)
	}
	return user, nil
}
