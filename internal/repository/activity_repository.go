package repository

import (
	"github.com/aqro/aqro/internal/models"

	"gorm.io/gorm"
)

// ActivityRepository is the activity ledger data access interface.
// Activities are insert only, there is no update or delete path.
type ActivityRepository interface {
	Create(activity *models.Activity) error
	List(filter ActivityListFilter) ([]models.Activity, int64, error)
	WithTx(tx *gorm.DB) *GormActivityRepository
}

// GormActivityRepository is the GORM implementation.
type GormActivityRepository struct {
	db *gorm.DB
}

// NewActivityRepository creates an activity repository.
func NewActivityRepository(db *gorm.DB) *GormActivityRepository {
	return &GormActivityRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormActivityRepository) WithTx(tx *gorm.DB) *GormActivityRepository {
	if tx == nil {
		return r
	}
	return &GormActivityRepository{db: tx}
}

// Create appends an activity record.
func (r *GormActivityRepository) Create(activity *models.Activity) error {
	return r.db.Create(activity).Error
}

// List returns activity records matching the filter.
func (r *GormActivityRepository) List(filter ActivityListFilter) ([]models.Activity, int64, error) {
	var activities []models.Activity
	query := r.db.Model(&models.Activity{})

	if filter.UserID > 0 {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.ContainerID > 0 {
		query = query.Where("container_id = ?", filter.ContainerID)
	}
	if filter.RestaurantID > 0 {
		query = query.Where("restaurant_id = ?", filter.RestaurantID)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	err := query.Preload("Container").Preload("Container.ContainerType").
		Order("id desc").Find(&activities).Error
	if err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}
