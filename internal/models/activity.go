package models

import "time"

// Activity is the append-only audit trail of container lifecycle events.
// Rows are never updated or deleted; every history and stats view reads
// from this ledger.
type Activity struct {
	ID              uint       `gorm:"primarykey" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"user_id"`
	ContainerID     uint       `gorm:"not null;index" json:"container_id"`
	ContainerTypeID uint       `gorm:"not null;index" json:"container_type_id"`
	RestaurantID    *uint      `gorm:"index" json:"restaurant_id,omitempty"`
	Type            string     `gorm:"not null;index" json:"type"`
	Amount          *Money     `gorm:"type:decimal(20,2)" json:"amount,omitempty"`
	Location        string     `gorm:"default:''" json:"location"`
	Notes           string     `gorm:"default:''" json:"notes"`
	CreatedAt       time.Time  `gorm:"index" json:"created_at"`
	Container       *Container `gorm:"foreignKey:ContainerID" json:"container,omitempty"`
}

// TableName sets the table name.
func (Activity) TableName() string {
	return "activities"
}
