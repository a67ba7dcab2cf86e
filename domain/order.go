package domain

import (
	"fmt"
	"time"
)

var (
	MessageSuccessCheckout    = "order placed successfully"
	MessageSuccessGetOrders   = "orders retrieved successfully"
	MessageSuccessGetOrder    = "order retrieved successfully"
	MessageSuccessUpdateOrder = "order updated successfully"
	MessageSuccessDeleteOrder = "This order has been deleted."
	MessageFailedCheckout     = "failed to place order"
	MessageFailedGetOrders    = "failed to retrieve orders"
	MessageFailedGetOrder     = "failed to retrieve order"
	MessageFailedUpdateOrder  = "failed to update order"
	MessageFailedDeleteOrder  = "failed to delete order"

	ErrOrderNotFound      = fmt.Errorf("order: %w", ErrNotFound)
	ErrInvalidOrderStatus = fmt.Errorf("status must be placed or delivered: %w", ErrValidation)
	ErrCrewNotInRole      = fmt.Errorf("delivery crew user is not in the Delivery crew group: %w", ErrValidation)
	ErrEmptyOrderUpdate   = fmt.Errorf("nothing to update: %w", ErrValidation)
	ErrCheckoutConflict   = fmt.Errorf("cart changed during checkout: %w", ErrOrderCreation)
	ErrOrderItemInvalid   = fmt.Errorf("order item references a missing menu item: %w", ErrOrderCreation)
)

type (
	OrderFilter struct {
		ToPrice  string
		IDPrefix string
		Status   string
		Ordering string
		PerPage  int
		Page     int
	}

	UpdateOrderRequest struct {
		DeliveryCrewID *string `json:"delivery_crew" validate:"omitempty,uuid"`
		Status         *string `json:"status" validate:"omitempty,oneof=placed delivered"`
	}

	OrderResponse struct {
		ID             string    `json:"id"`
		UserID         string    `json:"user"`
		DeliveryCrewID *string   `json:"delivery_crew"`
		Status         string    `json:"status"`
		Total          string    `json:"total"`
		Date           time.Time `json:"date"`
	}

	OrderItemResponse struct {
		OrderID    string `json:"order"`
		MenuItemID string `json:"menuitem"`
		Quantity   int    `json:"quantity"`
		UnitPrice  string `json:"unit_price"`
		Price      string `json:"price"`
	}

	OrderDetailResponse struct {
		Order OrderResponse       `json:"order"`
		Items []OrderItemResponse `json:"items"`
	}
)
