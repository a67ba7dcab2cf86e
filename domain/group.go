package domain

import "fmt"

var (
	MessageSuccessAddToGroup      = "User '%s' added to %s group"
	MessageSuccessRemoveFromGroup = "User '%s' is removed from %s group"
	MessageSuccessListGroup       = "group members retrieved successfully"
	MessageFailedAddToGroup       = "failed to add user to group"
	MessageFailedRemoveFromGroup  = "failed to remove user from group"
	MessageFailedListGroup        = "failed to retrieve group members"

	ErrUserNotFound = fmt.Errorf("user: %w", ErrNotFound)
	ErrUnknownRole  = fmt.Errorf("unknown group: %w", ErrNotFound)
)

type (
	AddToGroupRequest struct {
		UserID string `json:"user_id" validate:"required,uuid"`
	}

	GroupMemberResponse struct {
		ID       string `json:"id"`
		Username string `json:"username"`
		Email    string `json:"email"`
	}
)
