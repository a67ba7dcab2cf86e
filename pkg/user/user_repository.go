package user

import (
	"context"

	"gorm.io/gorm"

	"little-lemon/entities"
)

type (
	UserRepository interface {
		CreateUser(ctx context.Context, user *entities.User) error
		GetUserByUsername(ctx context.Context, username string) (*entities.User, error)
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		UsernameTaken(ctx context.Context, username string) (bool, error)
		GetRoles(ctx context.Context, userID string) ([]string, error)
	}

	userRepository struct {
		db *gorm.DB
	}
)

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) CreateUser(ctx context.Context, user *entities.User) error {
	return r.db.WithContext(ctx).Omit("Roles").Create(user).Error
}

func (r *userRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("username = ?", username).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Preload("Roles").
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.User{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *userRepository) GetRoles(ctx context.Context, userID string) ([]string, error) {
	var roles []string
	if err := r.db.WithContext(ctx).
		Model(&entities.UserRole{}).
		Where("user_id = ?", userID).
		Order("role ASC").
		Pluck("role", &roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}
