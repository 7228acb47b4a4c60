package models

import (
	"time"

	"gorm.io/gorm"
)

// ContainerType is catalog reference data. MaxUses bounds the lifetime use
// count of every container of this type. RebateValue is a default carried
// for display; the rebate-processing path only consults the per-restaurant
// mapping and never falls back to it.
type ContainerType struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Name        string         `gorm:"not null" json:"name"`
	Description string         `gorm:"default:''" json:"description"`
	Price       Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	RebateValue Money          `gorm:"type:decimal(20,2);not null;default:0" json:"rebate_value"`
	MaxUses     int            `gorm:"not null;default:10" json:"max_uses"`
	Image       string         `gorm:"default:''" json:"image"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"index" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (ContainerType) TableName() string {
	return "container_types"
}
