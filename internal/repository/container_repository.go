package repository

import (
	"errors"
	"time"

	"github.com/aqro/aqro/internal/constants"
	"github.com/aqro/aqro/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContainerRepository is the container data access interface.
type ContainerRepository interface {
	GetByID(id uint) (*models.Container, error)
	GetByIDForUpdate(tx *gorm.DB, id uint) (*models.Container, error)
	GetByQRCode(qrCode string) (*models.Container, error)
	Create(container *models.Container) error
	Update(container *models.Container) error
	ClaimOwnership(containerID uint, customerID uint) (bool, error)
	IncrementUse(containerID uint, maxUses int) (bool, error)
	UpdateStatus(containerID uint, status string) error
	List(filter ContainerListFilter) ([]models.Container, int64, error)
	CountByCustomer(customerID uint) (ContainerStatusCounts, error)
	CountByRestaurant(restaurantID uint) (ContainerStatusCounts, error)
	Transaction(fn func(tx *gorm.DB) error) error
	WithTx(tx *gorm.DB) *GormContainerRepository
}

// GormContainerRepository is the GORM implementation.
type GormContainerRepository struct {
	db *gorm.DB
}

// NewContainerRepository creates a container repository.
func NewContainerRepository(db *gorm.DB) *GormContainerRepository {
	return &GormContainerRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormContainerRepository) WithTx(tx *gorm.DB) *GormContainerRepository {
	if tx == nil {
		return r
	}
	return &GormContainerRepository{db: tx}
}

// Transaction runs fn inside a database transaction.
func (r *GormContainerRepository) Transaction(fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(fn)
}

// GetByID loads a container with its type and owner.
func (r *GormContainerRepository) GetByID(id uint) (*models.Container, error) {
	var container models.Container
	err := r.db.Preload("ContainerType").Preload("Customer").Preload("Restaurant").
		First(&container, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &container, nil
}

// GetByIDForUpdate loads a container under a row lock inside tx.
func (r *GormContainerRepository) GetByIDForUpdate(tx *gorm.DB, id uint) (*models.Container, error) {
	var container models.Container
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&container, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &container, nil
}

// GetByQRCode loads a container by its QR code.
func (r *GormContainerRepository) GetByQRCode(qrCode string) (*models.Container, error) {
	var container models.Container
	err := r.db.Preload("ContainerType").Preload("Customer").Preload("Restaurant").
		Where("qr_code = ?", qrCode).First(&container).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &container, nil
}

// Create inserts a container.
func (r *GormContainerRepository) Create(container *models.Container) error {
	return r.db.Create(container).Error
}

// Update saves a container.
func (r *GormContainerRepository) Update(container *models.Container) error {
	return r.db.Save(container).Error
}

// ClaimOwnership assigns the container to a customer only while it is
// still unowned. Returns false when another customer won the claim.
func (r *GormContainerRepository) ClaimOwnership(containerID uint, customerID uint) (bool, error) {
	result := r.db.Model(&models.Container{}).
		Where("id = ?", containerID).
		Where("customer_id IS NULL").
		Updates(map[string]interface{}{
			"customer_id":       customerID,
			"status":            constants.ContainerStatusActive,
			"registration_date": time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// IncrementUse bumps uses_count only while it is below maxUses.
// Returns false when the container has no uses left.
func (r *GormContainerRepository) IncrementUse(containerID uint, maxUses int) (bool, error) {
	result := r.db.Model(&models.Container{}).
		Where("id = ?", containerID).
		Where("uses_count < ?", maxUses).
		Updates(map[string]interface{}{
			"uses_count": gorm.Expr("uses_count + ?", 1),
			"last_used":  time.Now(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateStatus sets the container status.
func (r *GormContainerRepository) UpdateStatus(containerID uint, status string) error {
	return r.db.Model(&models.Container{}).
		Where("id = ?", containerID).
		UpdateColumn("status", status).Error
}

// List returns containers matching the filter.
func (r *GormContainerRepository) List(filter ContainerListFilter) ([]models.Container, int64, error) {
	var containers []models.Container
	query := r.db.Model(&models.Container{})

	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.RestaurantID > 0 {
		query = query.Where("restaurant_id = ?", filter.RestaurantID)
	}
	if filter.ContainerTypeID > 0 {
		query = query.Where("container_type_id = ?", filter.ContainerTypeID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	err := query.Preload("ContainerType").Preload("Restaurant").
		Order("id desc").Find(&containers).Error
	if err != nil {
		return nil, 0, err
	}
	return containers, total, nil
}

// CountByCustomer tallies a customer's containers per status.
func (r *GormContainerRepository) CountByCustomer(customerID uint) (ContainerStatusCounts, error) {
	return r.countByStatus(r.db.Model(&models.Container{}).Where("customer_id = ?", customerID))
}

// CountByRestaurant tallies a restaurant's containers per status.
func (r *GormContainerRepository) CountByRestaurant(restaurantID uint) (ContainerStatusCounts, error) {
	return r.countByStatus(r.db.Model(&models.Container{}).Where("restaurant_id = ?", restaurantID))
}

func (r *GormContainerRepository) countByStatus(query *gorm.DB) (ContainerStatusCounts, error) {
	type statusCount struct {
		Status string
		Count  int64
	}
	var rows []statusCount
	err := query.Select("status, COUNT(*) AS count").Group("status").Scan(&rows).Error
	if err != nil {
		return ContainerStatusCounts{}, err
	}

	var counts ContainerStatusCounts
	for _, row := range rows {
		switch row.Status {
		case constants.ContainerStatusAvailable:
			counts.Available = row.Count
		case constants.ContainerStatusActive:
			counts.Active = row.Count
		case constants.ContainerStatusReturned:
			counts.Returned = row.Count
		case constants.ContainerStatusLost:
			counts.Lost = row.Count
		case constants.ContainerStatusDamaged:
			counts.Damaged = row.Count
		}
	}
	return counts, nil
}
