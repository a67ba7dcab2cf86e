package domain

import "fmt"

var (
	MessageSuccessAddToCart = "menu item added to cart"
	MessageSuccessGetCart   = "cart retrieved successfully"
	MessageFailedAddToCart  = "failed to add menu item to cart"
	MessageFailedGetCart    = "failed to retrieve cart"
	MessageFailedClearCart  = "failed to clear cart"

	ErrInvalidCartQuantity = fmt.Errorf("quantity must be a positive integer: %w", ErrValidation)
	ErrInvalidCartMenuItem = fmt.Errorf("menuitem does not reference an existing menu item: %w", ErrValidation)
)

type (
	AddToCartRequest struct {
		MenuItemID string `json:"menuitem" validate:"required"`
		Quantity   *int   `json:"quantity" validate:"required"`
	}

	CartEntryResponse struct {
		UserID    string           `json:"user"`
		MenuItem  MenuItemResponse `json:"menuitem"`
		Quantity  int              `json:"quantity"`
		UnitPrice string           `json:"unit_price"`
		Price     string           `json:"price"`
	}
)
