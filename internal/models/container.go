package models

import "time"

// Container is a physical reusable item tracked by QR code.
//
// Status transitions: available -> active (register), active -> returned
// (staff return), active -> lost/damaged (owner report). UsesCount only
// ever grows and RegistrationDate is never cleared.
type Container struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	QRCode           string         `gorm:"uniqueIndex;not null" json:"qr_code"`
	ContainerTypeID  uint           `gorm:"not null;index" json:"container_type_id"`
	ContainerType    *ContainerType `gorm:"foreignKey:ContainerTypeID" json:"container_type,omitempty"`
	CustomerID       *uint          `gorm:"index" json:"customer_id,omitempty"`
	Customer         *User          `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	RestaurantID     *uint          `gorm:"index" json:"restaurant_id,omitempty"`
	Restaurant       *Restaurant    `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	Status           string         `gorm:"not null;default:'available';index" json:"status"`
	UsesCount        int            `gorm:"not null;default:0" json:"uses_count"`
	RegistrationDate *time.Time     `json:"registration_date,omitempty"`
	LastUsed         *time.Time     `json:"last_used,omitempty"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"index" json:"updated_at"`
}

// TableName sets the table name.
func (Container) TableName() string {
	return "containers"
}
