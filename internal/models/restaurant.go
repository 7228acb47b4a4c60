package models

import (
	"time"

	"gorm.io/gorm"
)

// Restaurant is a partner location. Containers, staff accounts and rebate
// mappings all reference it.
type Restaurant struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	Name      string         `gorm:"not null;index" json:"name"`
	Location  string         `gorm:"default:''" json:"location"`
	Contact   string         `gorm:"default:''" json:"contact"`
	Logo      string         `gorm:"default:''" json:"logo"`
	IsActive  bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Restaurant) TableName() string {
	return "restaurants"
}
