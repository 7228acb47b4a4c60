package models

import (
	"time"

	"gorm.io/gorm"
)

// User covers all three account roles. Staff and admin accounts may be
// bound to a restaurant; that binding scopes which containers and rebates
// they are allowed to act on.
type User struct {
	ID                 uint           `gorm:"primarykey" json:"id"`
	Email              string         `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string         `gorm:"not null" json:"-"`
	FirstName          string         `gorm:"not null" json:"first_name"`
	LastName           string         `gorm:"not null" json:"last_name"`
	Role               string         `gorm:"not null;default:'customer';index" json:"role"`
	RestaurantID       *uint          `gorm:"index" json:"restaurant_id,omitempty"`
	Restaurant         *Restaurant    `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	IsActive           bool           `gorm:"not null;default:true" json:"is_active"`
	ProfilePicture     string         `gorm:"default:''" json:"profile_picture"`
	TokenVersion       uint64         `gorm:"not null;default:0" json:"-"`
	TokenInvalidBefore *time.Time     `gorm:"index" json:"-"`
	LastLoginAt        *time.Time     `json:"last_login_at"`
	CreatedAt          time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (User) TableName() string {
	return "users"
}
