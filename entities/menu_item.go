package entities

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Slug  string    `gorm:"uniqueIndex;not null" json:"slug"`
	Title string    `gorm:"uniqueIndex;not null" json:"title"`

	Timestamp
}

type MenuItem struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Title      string          `gorm:"uniqueIndex;not null" json:"title"`
	Price      decimal.Decimal `gorm:"type:decimal(6,2);not null" json:"price"`
	Inventory  int             `gorm:"not null;default:0" json:"inventory"`
	CategoryID uuid.UUID       `gorm:"type:uuid;index" json:"category_id"`
	ImageURL   string          `json:"image_url,omitempty"`

	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT"`
	Timestamp
}
