package models

import "time"

// Rebate records a single credit granted to a customer when staff process a
// container use. Amount and Location are snapshots taken at processing time;
// rows are insert-only and never change afterwards.
type Rebate struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	ContainerID uint       `gorm:"not null;index" json:"container_id"`
	Container   *Container `gorm:"foreignKey:ContainerID" json:"container,omitempty"`
	CustomerID  uint       `gorm:"not null;index" json:"customer_id"`
	StaffID     uint       `gorm:"not null;index" json:"staff_id"`
	Amount      Money      `gorm:"type:decimal(20,2);not null" json:"amount"`
	Currency    string     `gorm:"not null;default:'PHP'" json:"currency"`
	Location    string     `gorm:"default:''" json:"location"`
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
}

// TableName sets the table name.
func (Rebate) TableName() string {
	return "rebates"
}
