package domain

import (
	"fmt"
	"mime/multipart"
)

var (
	MessageSuccessAddMenuItem     = "menu item added successfully"
	MessageSuccessUpdateMenuItem  = "menu item updated successfully"
	MessageSuccessGetMenuItems    = "menu items retrieved successfully"
	MessageSuccessUploadImage     = "menu item image uploaded successfully"
	MessageSuccessAddCategory     = "category added successfully"
	MessageSuccessGetCategories   = "categories retrieved successfully"
	MessageFailedAddMenuItem      = "failed to add menu item"
	MessageFailedUpdateMenuItem   = "failed to update menu item"
	MessageFailedDeleteMenuItem   = "failed to delete menu item"
	MessageFailedGetMenuItems     = "failed to retrieve menu items"
	MessageFailedUploadImage      = "failed to upload menu item image"
	MessageFailedAddCategory      = "failed to add category"
	MessageFailedGetCategories    = "failed to retrieve categories"
	MessageMenuItemPriceTooLow    = "Price should not be less than 2.0"
	MessageMenuItemStockNegative  = "Stock cannot be negative"
	MessageMenuItemTitleNotUnique = "menu item with this title already exists"

	ErrMenuItemNotFound  = fmt.Errorf("menu item: %w", ErrNotFound)
	ErrCategoryNotFound  = fmt.Errorf("category: %w", ErrNotFound)
	ErrMenuItemInCart    = fmt.Errorf("menu item is referenced by a cart: %w", ErrValidation)
	ErrCategoryNotUnique = fmt.Errorf("category slug or title already exists: %w", ErrValidation)
)

type (
	AddCategoryRequest struct {
		Slug  string `json:"slug" validate:"required,max=255"`
		Title string `json:"title" validate:"required,max=255"`
	}

	CategoryResponse struct {
		ID    string `json:"id"`
		Slug  string `json:"slug"`
		Title string `json:"title"`
	}

	// MenuItemRequest is used by POST and PUT. Price is a decimal string so
	// that cents survive the round trip.
	MenuItemRequest struct {
		Title      string `json:"title" validate:"required,max=255"`
		Price      string `json:"price" validate:"required,numeric"`
		Stock      *int   `json:"stock" validate:"required"`
		CategoryID string `json:"category_id" validate:"required,uuid"`
	}

	PatchMenuItemRequest struct {
		Title      *string `json:"title" validate:"omitempty,max=255"`
		Price      *string `json:"price" validate:"omitempty,numeric"`
		Stock      *int    `json:"stock"`
		CategoryID *string `json:"category_id" validate:"omitempty,uuid"`
	}

	MenuItemFilter struct {
		Category string
		ToPrice  string
		Search   string
		Ordering string
		PerPage  int
		Page     int
	}

	MenuItemResponse struct {
		ID            string           `json:"id"`
		Title         string           `json:"title"`
		Price         string           `json:"price"`
		Stock         int              `json:"stock"`
		PriceAfterTax string           `json:"price_after_tax"`
		ImageURL      string           `json:"image_url,omitempty"`
		Category      CategoryResponse `json:"category"`
	}

	UploadMenuItemImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}
)
