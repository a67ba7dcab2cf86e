package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartEntry holds the price of the menu item as it was when the entry was
// last written, not the live catalog price.
type CartEntry struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_cart_user_menuitem;not null" json:"user_id"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_cart_user_menuitem;not null" json:"menuitem_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price"`

	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	MenuItem *MenuItem `gorm:"foreignKey:MenuItemID;constraint:OnDelete:RESTRICT"`
	Timestamp
}
