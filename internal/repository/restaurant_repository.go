package repository

import (
	"errors"

	"github.com/aqro/aqro/internal/models"

	"gorm.io/gorm"
)

// RestaurantRepository is the restaurant data access interface.
type RestaurantRepository interface {
	GetByID(id uint) (*models.Restaurant, error)
	List(filter RestaurantListFilter) ([]models.Restaurant, int64, error)
	Create(restaurant *models.Restaurant) error
	Update(restaurant *models.Restaurant) error
	Delete(id uint) error
}

// RestaurantListFilter filters restaurant listings.
type RestaurantListFilter struct {
	Name     string
	IsActive *bool
	Page     int
	PageSize int
}

// GormRestaurantRepository is the GORM implementation.
type GormRestaurantRepository struct {
	db *gorm.DB
}

// NewRestaurantRepository creates a restaurant repository.
func NewRestaurantRepository(db *gorm.DB) *GormRestaurantRepository {
	return &GormRestaurantRepository{db: db}
}

// GetByID loads a restaurant by id.
func (r *GormRestaurantRepository) GetByID(id uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := r.db.First(&restaurant, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &restaurant, nil
}

// List returns restaurants matching the filter.
func (r *GormRestaurantRepository) List(filter RestaurantListFilter) ([]models.Restaurant, int64, error) {
	var restaurants []models.Restaurant
	query := r.db.Model(&models.Restaurant{})

	if filter.Name != "" {
		query = query.Where("name LIKE ?", "%"+filter.Name+"%")
	}
	if filter.IsActive != nil {
		query = query.Where("is_active = ?", *filter.IsActive)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	if err := query.Order("id desc").Find(&restaurants).Error; err != nil {
		return nil, 0, err
	}
	return restaurants, total, nil
}

// Create inserts a restaurant.
func (r *GormRestaurantRepository) Create(restaurant *models.Restaurant) error {
	return r.db.Create(restaurant).Error
}

// Update saves a restaurant.
func (r *GormRestaurantRepository) Update(restaurant *models.Restaurant) error {
	return r.db.Save(restaurant).Error
}

// Delete soft deletes a restaurant.
func (r *GormRestaurantRepository) Delete(id uint) error {
	return r.db.Delete(&models.Restaurant{}, id).Error
}
