package group

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"little-lemon/domain"
	"little-lemon/entities"
	"little-lemon/pkg/access"
)

type (
	GroupService interface {
		AddToRole(ctx context.Context, p access.Principal, role, userID string) (domain.GroupMemberResponse, error)
		RemoveFromRole(ctx context.Context, p access.Principal, role, userID string) (domain.GroupMemberResponse, error)
		ListRole(ctx context.Context, p access.Principal, role string) ([]domain.GroupMemberResponse, error)
	}

	groupService struct {
		groupRepository GroupRepository
	}
)

func NewGroupService(groupRepository GroupRepository) GroupService {
	return &groupService{groupRepository: groupRepository}
}

func authorizeRole(p access.Principal, role string) error {
	op, ok := access.GroupOperation(role)
	if !ok {
		return domain.ErrUnknownRole
	}
	return access.Authorize(p, op)
}

func (s *groupService) findUser(ctx context.Context, userID string) (*entities.User, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrUserNotFound
	}
	user, err := s.groupRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *groupService) AddToRole(ctx context.Context, p access.Principal, role, userID string) (domain.GroupMemberResponse, error) {
	if err := authorizeRole(p, role); err != nil {
		return domain.GroupMemberResponse{}, err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return domain.GroupMemberResponse{}, err
	}

	if err := s.groupRepository.AddRole(ctx, &entities.UserRole{UserID: user.ID, Role: role}); err != nil {
		return domain.GroupMemberResponse{}, err
	}
	log.Infof("user %s added to %s by %s", user.ID, role, p.UserID)
	return ToGroupMemberResponse(user), nil
}

func (s *groupService) RemoveFromRole(ctx context.Context, p access.Principal, role, userID string) (domain.GroupMemberResponse, error) {
	if err := authorizeRole(p, role); err != nil {
		return domain.GroupMemberResponse{}, err
	}

	user, err := s.findUser(ctx, userID)
	if err != nil {
		return domain.GroupMemberResponse{}, err
	}

	removed, err := s.groupRepository.RemoveRole(ctx, user.ID.String(), role)
	if err != nil {
		return domain.GroupMemberResponse{}, err
	}
	if removed == 0 {
		return domain.GroupMemberResponse{}, domain.ErrNotInRole
	}
	log.Infof("user %s removed from %s by %s", user.ID, role, p.UserID)
	return ToGroupMemberResponse(user), nil
}

func (s *groupService) ListRole(ctx context.Context, p access.Principal, role string) ([]domain.GroupMemberResponse, error) {
	if err := authorizeRole(p, role); err != nil {
		return nil, err
	}

	users, err := s.groupRepository.ListUsersInRole(ctx, role)
	if err != nil {
		return nil, err
	}
	result := make([]domain.GroupMemberResponse, 0, len(users))
	for _, u := range users {
		result = append(result, ToGroupMemberResponse(u))
	}
	return result, nil
}

func ToGroupMemberResponse(user *entities.User) domain.GroupMemberResponse {
	return domain.GroupMemberResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	}
}
