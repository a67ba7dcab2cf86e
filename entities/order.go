package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	OrderStatusPlaced    = "placed"
	OrderStatusDelivered = "delivered"
)

type Order struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;index;not null" json:"user_id"`
	DeliveryCrewID *uuid.UUID      `gorm:"type:uuid;index" json:"delivery_crew_id,omitempty"`
	Status         string          `gorm:"index;not null;default:'placed'" json:"status"`
	Total          decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"total"`
	Date           time.Time       `gorm:"type:date;index;not null" json:"date"`

	User         *User        `gorm:"foreignKey:UserID"`
	DeliveryCrew *User        `gorm:"foreignKey:DeliveryCrewID"`
	OrderItems   []*OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Timestamp
}

// OrderItem keeps only a weak reference to the menu item; the price fields
// are the cart snapshot taken at checkout.
type OrderItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	OrderID    uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_order_menuitem;not null" json:"order_id"`
	MenuItemID uuid.UUID       `gorm:"type:uuid;uniqueIndex:idx_order_menuitem;not null" json:"menuitem_id"`
	Quantity   int             `gorm:"not null" json:"quantity"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"unit_price"`
	Price      decimal.Decimal `gorm:"type:decimal(8,2);not null" json:"price"`

	Timestamp
}
