package domain

import "fmt"

var (
	MessageSuccessRegister = "user registered successfully"
	MessageSuccessLogin    = "login successful"
	MessageSuccessGetMe    = "user retrieved successfully"
	MessageFailedRegister  = "failed to register user"
	MessageFailedLogin     = "failed to login"
	MessageFailedGetMe     = "failed to retrieve user"

	ErrUsernameTaken      = fmt.Errorf("username already taken: %w", ErrValidation)
	ErrInvalidCredentials = fmt.Errorf("unable to log in with provided credentials: %w", ErrValidation)
)

type (
	RegisterRequest struct {
		Username string `json:"username" validate:"required,min=3,max=150"`
		Email    string `json:"email" validate:"omitempty,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	UserResponse struct {
		ID       string   `json:"id"`
		Username string   `json:"username"`
		Email    string   `json:"email"`
		Roles    []string `json:"roles"`
	}
)
