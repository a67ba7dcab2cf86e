package entities

import (
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	Username string    `gorm:"uniqueIndex;not null" json:"username"`
	Email    string    `json:"email"`
	Password string    `json:"-"`

	Roles []*UserRole `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Timestamp
}

// UserRole is one row of the many-to-many relation between users and the
// staff groups. Absence of any row means the user is a customer.
type UserRole struct {
	UserID uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	Role   string    `gorm:"primaryKey" json:"role"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
