package domain

import (
	"errors"
	"fmt"
)

const (
	RoleManager      = "Manager"
	RoleDeliveryCrew = "Delivery crew"
)

var (
	MesaageUserNotAllowed       = "You are not authorized for this action"
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "failed to token invalid"
	MessageValidationFailed     = "validation failed"
	MessageThrottleCheck        = "successful"
	MessageThrottleCheckAuth    = "message for the logged in users only"

	// Roots of the error taxonomy. Handlers map these to status codes.
	ErrValidation        = errors.New("validation failed")
	ErrUnauthenticated   = errors.New("authentication credentials were not provided")
	ErrForbidden         = errors.New("you are not authorized for this action")
	ErrNotFound          = errors.New("not found")
	ErrEmptyCart         = errors.New("your cart is empty")
	ErrOrderCreation     = errors.New("order could not be created")
	ErrNotInRole         = errors.New("user is not in the group")
	ErrInvalidTransition = errors.New("invalid order status transition")

	ErrParseUUID       = fmt.Errorf("failed to parse UUID: %w", ErrValidation)
	ErrUserNotAllowed  = ErrForbidden
	ErrTokenNotFound   = fmt.Errorf("failed to token not found: %w", ErrUnauthenticated)
	ErrTokenExpired    = fmt.Errorf("token expired: %w", ErrUnauthenticated)
	ErrTokenInvalid    = fmt.Errorf("token invalid: %w", ErrUnauthenticated)
	ErrInvalidPage     = fmt.Errorf("invalid page: %w", ErrValidation)
	ErrInvalidOrdering = fmt.Errorf("invalid ordering field: %w", ErrValidation)
)

// FieldError carries per-field validation messages so the presenter can
// render them next to the generic message.
type FieldError struct {
	Fields map[string]string
}

func (e *FieldError) Error() string {
	return "validation failed"
}

func (e *FieldError) Unwrap() error {
	return ErrValidation
}

func NewFieldError(field, message string) *FieldError {
	return &FieldError{Fields: map[string]string{field: message}}
}

type PaginationResponse struct {
	Page    int   `json:"page"`
	PerPage int   `json:"perpage"`
	Total   int64 `json:"total"`
}
