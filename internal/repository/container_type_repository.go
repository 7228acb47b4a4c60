package repository

import (
	"errors"

	"github.com/aqro/aqro/internal/models"

	"gorm.io/gorm"
)

// ContainerTypeRepository is the container type data access interface.
type ContainerTypeRepository interface {
	GetByID(id uint) (*models.ContainerType, error)
	List(filter ContainerTypeListFilter) ([]models.ContainerType, int64, error)
	Create(containerType *models.ContainerType) error
	Update(containerType *models.ContainerType) error
	Delete(id uint) error
	WithTx(tx *gorm.DB) *GormContainerTypeRepository
}

// ContainerTypeListFilter filters container type listings.
type ContainerTypeListFilter struct {
	Name     string
	IsActive *bool
	Page     int
	PageSize int
}

// GormContainerTypeRepository is the GORM implementation.
type GormContainerTypeRepository struct {
	db *gorm.DB
}

// NewContainerTypeRepository creates a container type repository.
func NewContainerTypeRepository(db *gorm.DB) *GormContainerTypeRepository {
	return &GormContainerTypeRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormContainerTypeRepository) WithTx(tx *gorm.DB) *GormContainerTypeRepository {
	if tx == nil {
		return r
	}
	return &GormContainerTypeRepository{db: tx}
}

// GetByID loads a container type by id.
func (r *GormContainerTypeRepository) GetByID(id uint) (*models.ContainerType, error) {
	var containerType models.ContainerType
	if err := r.db.First(&containerType, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &containerType, nil
}

// List returns container types matching the filter.
func (r *GormContainerTypeRepository) List(filter ContainerTypeListFilter) ([]models.ContainerType, int64, error) {
	var containerTypes []models.ContainerType
	query := r.db.Model(&models.ContainerType{})

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

	if err := query.Order("id desc").Find(&containerTypes).Error; err != nil {
		return nil, 0, err
	}
	return containerTypes, total, nil
}

// Create inserts a container type.
func (r *GormContainerTypeRepository) Create(containerType *models.ContainerType) error {
	return r.db.Create(containerType).Error
}

// Update saves a container type.
func (r *GormContainerTypeRepository) Update(containerType *models.ContainerType) error {
	return r.db.Save(containerType).Error
}

// Delete soft deletes a container type.
func (r *GormContainerTypeRepository) Delete(id uint) error {
	return r.db.Delete(&models.ContainerType{}, id).Error
}
