package repository

import (
	"github.com/aqro/aqro/internal/models"

	"gorm.io/gorm"
)

// RebateRepository is the rebate ledger data access interface.
// Rebates are insert only, there is no update or delete path.
type RebateRepository interface {
	Create(rebate *models.Rebate) error
	List(filter RebateListFilter) ([]models.Rebate, int64, error)
	SumAmountByCustomer(customerID uint) (RebateTotals, error)
	TotalsByStaff(staffID uint) (RebateTotals, error)
	TotalsByRestaurant(restaurantID uint) (RebateTotals, error)
	WithTx(tx *gorm.DB) *GormRebateRepository
}

// GormRebateRepository is the GORM implementation.
type GormRebateRepository struct {
	db *gorm.DB
}

// NewRebateRepository creates a rebate repository.
func NewRebateRepository(db *gorm.DB) *GormRebateRepository {
	return &GormRebateRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *GormRebateRepository) WithTx(tx *gorm.DB) *GormRebateRepository {
	if tx == nil {
		return r
	}
	return &GormRebateRepository{db: tx}
}

// Create appends a rebate record.
func (r *GormRebateRepository) Create(rebate *models.Rebate) error {
	return r.db.Create(rebate).Error
}

// List returns rebate records matching the filter.
func (r *GormRebateRepository) List(filter RebateListFilter) ([]models.Rebate, int64, error) {
	var rebates []models.Rebate
	query := r.db.Model(&models.Rebate{})

	if filter.CustomerID > 0 {
		query = query.Where("customer_id = ?", filter.CustomerID)
	}
	if filter.StaffID > 0 {
		query = query.Where("staff_id = ?", filter.StaffID)
	}
	if filter.ContainerID > 0 {
		query = query.Where("container_id = ?", filter.ContainerID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = applyPagination(query, filter.Page, filter.PageSize)

	err := query.Preload("Container").Preload("Container.ContainerType").
		Order("id desc").Find(&rebates).Error
	if err != nil {
		return nil, 0, err
	}
	return rebates, total, nil
}

// SumAmountByCustomer totals rebates earned by a customer.
func (r *GormRebateRepository) SumAmountByCustomer(customerID uint) (RebateTotals, error) {
	var totals RebateTotals
	err := r.db.Model(&models.Rebate{}).
		Where("customer_id = ?", customerID).
		Select("COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS count").
		Scan(&totals).Error
	return totals, err
}

// TotalsByStaff totals rebates handed out by a staff member.
func (r *GormRebateRepository) TotalsByStaff(staffID uint) (RebateTotals, error) {
	var totals RebateTotals
	err := r.db.Model(&models.Rebate{}).
		Where("staff_id = ?", staffID).
		Select("COALESCE(SUM(amount), 0) AS total_amount, COUNT(*) AS count").
		Scan(&totals).Error
	return totals, err
}

// TotalsByRestaurant totals rebates handed out by a restaurant's staff.
func (r *GormRebateRepository) TotalsByRestaurant(restaurantID uint) (RebateTotals, error) {
	var totals RebateTotals
	err := r.db.Model(&models.Rebate{}).
		Joins("INNER JOIN users ON users.id = rebates.staff_id").
		Where("users.restaurant_id = ?", restaurantID).
		Select("COALESCE(SUM(rebates.amount), 0) AS total_amount, COUNT(*) AS count").
		Scan(&totals).Error
	return totals, err
}
