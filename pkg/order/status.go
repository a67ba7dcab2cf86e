package order

import (
	"strings"

	"little-lemon/domain"
	"little-lemon/entities"
)

// CanTransition reports whether order may move to the target status.
// The lifecycle is placed -> placed with a crew assigned -> delivered, and
// delivered is terminal. Setting the current status again is a no-op.
func CanTransition(order *entities.Order, to string) error {
	switch to {
	case entities.OrderStatusPlaced, entities.OrderStatusDelivered:
	default:
		return domain.ErrInvalidOrderStatus
	}

	if order.Status == to {
		return nil
	}

	switch order.Status {
	case entities.OrderStatusPlaced:
		if to == entities.OrderStatusDelivered && order.DeliveryCrewID == nil {
			return domain.ErrInvalidTransition
		}
		return nil
	}
	return domain.ErrInvalidTransition
}

// ParseStatusFilter accepts the status names as well as the boolean forms
// older clients send, where true means delivered.
func ParseStatusFilter(raw string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return "", nil
	case entities.OrderStatusPlaced, "false", "0":
		return entities.OrderStatusPlaced, nil
	case entities.OrderStatusDelivered, "true", "1":
		return entities.OrderStatusDelivered, nil
	}
	return "", domain.ErrInvalidOrderStatus
}
