package repository

import (
	"errors"

	"github.com/aqro/aqro/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RebateMappingRepository is the per-restaurant rebate mapping data access
// interface.
type RebateMappingRepository interface {
	GetByPair(restaurantID uint, containerTypeID uint) (*models.RestaurantContainerRebate, error)
	Upsert(mappings []models.RestaurantContainerRebate) error
	ListByRestaurant(restaurantID uint) ([]models.RestaurantContainerRebate, error)
	ListByContainerType(containerTypeID uint) ([]models.RestaurantContainerRebate, error)
	DeleteByPair(restaurantID uint, containerTypeID uint) error
	WithTx(tx *gorm.DB) *GormRebateMappingRepository
}

// GormRebateMappingRepository is the GORM implementation.
type GormRebateMappingRepository struct {
	db *gorm.DB
}

// NewRebateMappingRepository creates a rebate mapping repository.
func NewRebateMappingRepository(db *gorm.DB) *GormRebateMappingRepository {
	return &GormRebateMappingRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormRebateMappingRepository) WithTx(tx *gorm.DB) *GormRebateMappingRepository {
	if tx == nil {
		return r
	}
	return &GormRebateMappingRepository{db: tx}
}

// GetByPair loads the mapping for a restaurant and container type pair.
func (r *GormRebateMappingRepository) GetByPair(restaurantID uint, containerTypeID uint) (*models.RestaurantContainerRebate, error) {
	var mapping models.RestaurantContainerRebate
	err := r.db.Where("restaurant_id = ? AND container_type_id = ?", restaurantID, containerTypeID).
		First(&mapping).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mapping, nil
}

// Upsert writes mappings, overwriting the rebate value of any pair that
// already exists.
func (r *GormRebateMappingRepository) Upsert(mappings []models.RestaurantContainerRebate) error {
	if len(mappings) == 0 {
		return nil
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "restaurant_id"}, {Name: "container_type_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rebate_value", "updated_at"}),
	}).Create(&mappings).Error
}

// ListByRestaurant lists a restaurant's mappings with their container types.
func (r *GormRebateMappingRepository) ListByRestaurant(restaurantID uint) ([]models.RestaurantContainerRebate, error) {
	var mappings []models.RestaurantContainerRebate
	err := r.db.Preload("ContainerType").
		Where("restaurant_id = ?", restaurantID).
		Order("container_type_id asc").Find(&mappings).Error
	if err != nil {
		return nil, err
	}
	return mappings, nil
}

// ListByContainerType lists every restaurant mapping for a container type.
func (r *GormRebateMappingRepository) ListByContainerType(containerTypeID uint) ([]models.RestaurantContainerRebate, error) {
	var mappings []models.RestaurantContainerRebate
	err := r.db.Preload("Restaurant").
		Where("container_type_id = ?", containerTypeID).
		Order("restaurant_id asc").Find(&mappings).Error
	if err != nil {
		return nil, err
	}
	return mappings, nil
}

// DeleteByPair removes a single mapping.
func (r *GormRebateMappingRepository) DeleteByPair(restaurantID uint, containerTypeID uint) error {
	return r.db.Where("restaurant_id = ? AND container_type_id = ?", restaurantID, containerTypeID).
		Delete(&models.RestaurantContainerRebate{}).Error
}
