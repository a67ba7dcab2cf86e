package user

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"little-lemon/domain"
	"little-lemon/entities"
	"little-lemon/pkg/access"
	"little-lemon/pkg/jwt"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error)
		Me(ctx context.Context, p access.Principal) (domain.UserResponse, error)
		GetRoles(ctx context.Context, userID string) ([]string, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (domain.UserResponse, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return domain.UserResponse{}, domain.NewFieldError("username", "This field may not be blank.")
	}

	taken, err := s.userRepository.UsernameTaken(ctx, username)
	if err != nil {
		return domain.UserResponse{}, err
	}
	if taken {
		return domain.UserResponse{}, domain.ErrUsernameTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return domain.UserResponse{}, err
	}

	user := &entities.User{
		ID:       uuid.New(),
		Username: username,
		Email:    strings.TrimSpace(req.Email),
		Password: string(hashed),
	}
	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return domain.UserResponse{}, err
	}
	log.Infof("registered user %s", user.ID)
	return ToUserResponse(user, nil), nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.LoginResponse{}, domain.ErrInvalidCredentials
		}
		return domain.LoginResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return domain.LoginResponse{}, domain.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateTokenUser(user.ID.String())
	if err != nil {
		return domain.LoginResponse{}, err
	}
	return domain.LoginResponse{Token: token}, nil
}

func (s *userService) Me(ctx context.Context, p access.Principal) (domain.UserResponse, error) {
	if !p.Authenticated {
		return domain.UserResponse{}, domain.ErrUnauthenticated
	}

	user, err := s.userRepository.GetUserByID(ctx, p.UserID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.UserResponse{}, domain.ErrUserNotFound
		}
		return domain.UserResponse{}, err
	}

	roles := make([]string, 0, len(user.Roles))
	for _, r := range user.Roles {
		roles = append(roles, r.Role)
	}
	return ToUserResponse(user, roles), nil
}

// GetRoles feeds the auth middleware. An unknown user has no roles.
func (s *userService) GetRoles(ctx context.Context, userID string) ([]string, error) {
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrTokenInvalid
	}
	return s.userRepository.GetRoles(ctx, userID)
}

func ToUserResponse(user *entities.User, roles []string) domain.UserResponse {
	if roles == nil {
		roles = []string{}
	}
	return domain.UserResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
		Roles:    roles,
	}
}
