package models

import "time"

// RestaurantContainerRebate maps (restaurant, container type) to the
// authoritative rebate amount for that pair. The pair is unique; writing an
// existing pair overwrites the value. Absence of a mapping is a hard error
// in the rebate-processing path.
type RestaurantContainerRebate struct {
	ID              uint           `gorm:"primarykey" json:"id"`
	RestaurantID    uint           `gorm:"not null;uniqueIndex:idx_restaurant_container_type" json:"restaurant_id"`
	ContainerTypeID uint           `gorm:"not null;uniqueIndex:idx_restaurant_container_type" json:"container_type_id"`
	RebateValue     Money          `gorm:"type:decimal(20,2);not null" json:"rebate_value"`
	Restaurant      *Restaurant    `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
	ContainerType   *ContainerType `gorm:"foreignKey:ContainerTypeID" json:"container_type,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// TableName sets the table name.
func (RestaurantContainerRebate) TableName() string {
	return "restaurant_container_rebates"
}
