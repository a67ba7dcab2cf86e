package group

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"little-lemon/entities"
)

type (
	GroupRepository interface {
		GetUserByID(ctx context.Context, id string) (*entities.User, error)
		AddRole(ctx context.Context, role *entities.UserRole) error
		RemoveRole(ctx context.Context, userID, role string) (int64, error)
		ListUsersInRole(ctx context.Context, role string) ([]*entities.User, error)
	}

	groupRepository struct {
		db *gorm.DB
	}
)

func NewGroupRepository(db *gorm.DB) GroupRepository {
	return &groupRepository{db: db}
}

func (r *groupRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// AddRole is a no-op when the membership already exists.
func (r *groupRepository) AddRole(ctx context.Context, role *entities.UserRole) error {
	return r.db.WithContext(ctx).
		Omit("User").
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(role).Error
}

func (r *groupRepository) RemoveRole(ctx context.Context, userID, role string) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND role = ?", userID, role).
		Delete(&entities.UserRole{})
	return res.RowsAffected, res.Error
}

func (r *groupRepository) ListUsersInRole(ctx context.Context, role string) ([]*entities.User, error) {
	var users []*entities.User
	if err := r.db.WithContext(ctx).
		Joins("JOIN user_roles ON user_roles.user_id = users.id").
		Where("user_roles.role = ?", role).
		Order("users.username ASC").
		Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
