package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	authdomain "todo-backend/internal/auth/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	// Create persists a new user; ErrDuplicateEmail when the email is taken.
	Create(ctx context.Context, user *authdomain.User) error
	// FindByEmail returns nil, nil when no user has the email.
	FindByEmail(ctx context.Context, email string) (*authdomain.User, error)
	// UpdateName overwrites the display name; ErrUserNotFound when the user is gone.
	UpdateName(ctx context.Context, email, name string) error
}

// userRepository implements UserRepository interface
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of userRepository
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{
		db: db,
	}
}

func (r *userRepository) Create(ctx context.Context, user *authdomain.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return authdomain.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*authdomain.User, error) {
	var user authdomain.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) UpdateName(ctx context.Context, email, name string) error {
	result := r.db.WithContext(ctx).Model(&authdomain.User{}).
		Where("email = ?", email).
		Updates(map[string]interface{}{
			"name":       name,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("update user name: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return authdomain.ErrUserNotFound
	}
	return nil
}
