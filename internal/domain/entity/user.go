package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/thienxuan/dienmay-api/internal/domain/enum"
	"gorm.io/gorm"
)

// User represents an application user. Users exist only for authentication;
// there is no further lifecycle.
type User struct {
	ID        uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Username  string        `gorm:"size:255;unique;not null" json:"username"`
	Password  string        `gorm:"size:255;not null" json:"-"`
	Role      enum.UserRole `gorm:"default:0" json:"role"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new user
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the User model
func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == enum.UserRoleAdmin
}
