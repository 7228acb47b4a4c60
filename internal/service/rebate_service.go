package service

import (
	"time"

	"github.com/aqro/aqro/internal/constants"
	"github.com/aqro/aqro/internal/models"
	"github.com/aqro/aqro/internal/repository"

	"gorm.io/gorm"
)

// RebateService processes container uses and returns at the counter and
// owns the per-restaurant rebate mapping table.
type RebateService struct {
	containerRepo     repository.ContainerRepository
	containerTypeRepo repository.ContainerTypeRepository
	restaurantRepo    repository.RestaurantRepository
	userRepo          repository.UserRepository
	mappingRepo       repository.RebateMappingRepository
	rebateRepo        repository.RebateRepository
	activityRepo      repository.ActivityRepository
	statsNotifier     StatsNotifier
}

// MappingInput is one (container type, rebate value) pair of a mapping
// upsert.
type MappingInput struct {
	ContainerTypeID uint
	RebateValue     models.Money
}

// NewRebateService creates a rebate service.
func NewRebateService(
	containerRepo repository.ContainerRepository,
	containerTypeRepo repository.ContainerTypeRepository,
	restaurantRepo repository.RestaurantRepository,
	userRepo repository.UserRepository,
	mappingRepo repository.RebateMappingRepository,
	rebateRepo repository.RebateRepository,
	activityRepo repository.ActivityRepository,
	statsNotifier StatsNotifier,
) *RebateService {
	return &RebateService{
		containerRepo:     containerRepo,
		containerTypeRepo: containerTypeRepo,
		restaurantRepo:    restaurantRepo,
		userRepo:          userRepo,
		mappingRepo:       mappingRepo,
		rebateRepo:        rebateRepo,
		activityRepo:      activityRepo,
		statsNotifier:     statsNotifier,
	}
}

// ProcessRebate credits the container's owner for one use. The whole
// sequence runs in a single transaction with the container row locked, and
// the uses-count increment is additionally guarded by a conditional update
// so concurrent calls can never push uses_count past max_uses.
//
// The amount is a snapshot of the mapping value at processing time. A
// missing mapping is a hard stop; the container type's own rebate value is
// never consulted.
func (s *RebateService) ProcessRebate(containerID uint, staffID uint) (*models.Rebate, error) {
	staff, err := s.resolveStaff(staffID)
	if err != nil {
		return nil, err
	}

	var rebate *models.Rebate
	err = s.containerRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.containerRepo.WithTx(tx)
		container, err := repo.GetByIDForUpdate(tx, containerID)
		if err != nil {
			return err
		}
		if container == nil {
			return ErrContainerNotFound
		}
		if container.CustomerID == nil {
			return ErrContainerNotRegistered
		}

		containerType, err := s.containerTypeRepo.WithTx(tx).GetByID(container.ContainerTypeID)
		if err != nil {
			return err
		}
		if containerType == nil {
			return ErrContainerTypeNotFound
		}
		if container.UsesCount >= containerType.MaxUses {
			return ErrContainerMaxUses
		}

		mapping, err := s.mappingRepo.WithTx(tx).GetByPair(*staff.RestaurantID, container.ContainerTypeID)
		if err != nil {
			return err
		}
		if mapping == nil {
			return ErrRebateMappingNotFound
		}

		used, err := repo.IncrementUse(container.ID, containerType.MaxUses)
		if err != nil {
			return err
		}
		if !used {
			return ErrContainerMaxUses
		}

		location := ""
		if staff.Restaurant != nil {
			location = staff.Restaurant.Name
		}
		rebate = &models.Rebate{
			ContainerID: container.ID,
			CustomerID:  *container.CustomerID,
			StaffID:     staff.ID,
			Amount:      mapping.RebateValue,
			Currency:    constants.DefaultCurrency,
			Location:    location,
		}
		if err := s.rebateRepo.WithTx(tx).Create(rebate); err != nil {
			return err
		}

		amount := mapping.RebateValue
		activity := &models.Activity{
			UserID:          *container.CustomerID,
			ContainerID:     container.ID,
			ContainerTypeID: container.ContainerTypeID,
			RestaurantID:    staff.RestaurantID,
			Type:            constants.ActivityTypeRebate,
			Amount:          &amount,
			Location:        location,
		}
		return s.activityRepo.WithTx(tx).Create(activity)
	})
	if err != nil {
		return nil, err
	}

	s.notifyStats(rebate.CustomerID, staff.RestaurantID)
	return rebate, nil
}

// ProcessReturn marks a registered container as returned. Returned is a
// terminal state, a second return attempt fails.
func (s *RebateService) ProcessReturn(containerID uint, staffID uint) (*models.Container, error) {
	staff, err := s.resolveStaff(staffID)
	if err != nil {
		return nil, err
	}

	var customerID uint
	err = s.containerRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.containerRepo.WithTx(tx)
		container, err := repo.GetByIDForUpdate(tx, containerID)
		if err != nil {
			return err
		}
		if container == nil {
			return ErrContainerNotFound
		}
		if container.CustomerID == nil {
			return ErrContainerNotRegistered
		}
		if container.Status == constants.ContainerStatusReturned {
			return ErrContainerAlreadyReturned
		}
		customerID = *container.CustomerID

		err = tx.Model(&models.Container{}).
			Where("id = ?", container.ID).
			Updates(map[string]interface{}{
				"status":    constants.ContainerStatusReturned,
				"last_used": time.Now(),
			}).Error
		if err != nil {
			return err
		}

		location := ""
		if staff.Restaurant != nil {
			location = staff.Restaurant.Name
		}
		activity := &models.Activity{
			UserID:          customerID,
			ContainerID:     container.ID,
			ContainerTypeID: container.ContainerTypeID,
			RestaurantID:    staff.RestaurantID,
			Type:            constants.ActivityTypeReturn,
			Location:        location,
		}
		return s.activityRepo.WithTx(tx).Create(activity)
	})
	if err != nil {
		return nil, err
	}

	container, err := s.containerRepo.GetByID(containerID)
	if err != nil {
		return nil, err
	}
	s.notifyStats(customerID, staff.RestaurantID)
	return container, nil
}

// UpsertMappings writes a restaurant's rebate mappings. Every container
// type is validated before anything is written; the batch is all-or-nothing
// and an existing pair is overwritten with the new value.
func (s *RebateService) UpsertMappings(restaurantID uint, inputs []MappingInput) ([]models.RestaurantContainerRebate, error) {
	restaurant, err := s.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	mappings := make([]models.RestaurantContainerRebate, 0, len(inputs))
	for _, input := range inputs {
		containerType, err := s.containerTypeRepo.GetByID(input.ContainerTypeID)
		if err != nil {
			return nil, err
		}
		if containerType == nil {
			return nil, ErrContainerTypeNotFound
		}
		mappings = append(mappings, models.RestaurantContainerRebate{
			RestaurantID:    restaurantID,
			ContainerTypeID: input.ContainerTypeID,
			RebateValue:     input.RebateValue,
		})
	}

	err = s.containerRepo.Transaction(func(tx *gorm.DB) error {
		return s.mappingRepo.WithTx(tx).Upsert(mappings)
	})
	if err != nil {
		return nil, err
	}
	return s.mappingRepo.ListByRestaurant(restaurantID)
}

// MappingsByRestaurant lists a restaurant's mappings.
func (s *RebateService) MappingsByRestaurant(restaurantID uint) ([]models.RestaurantContainerRebate, error) {
	restaurant, err := s.restaurantRepo.GetByID(restaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	return s.mappingRepo.ListByRestaurant(restaurantID)
}

// MappingsByContainerType lists every restaurant's mapping for a type.
func (s *RebateService) MappingsByContainerType(containerTypeID uint) ([]models.RestaurantContainerRebate, error) {
	containerType, err := s.containerTypeRepo.GetByID(containerTypeID)
	if err != nil {
		return nil, err
	}
	if containerType == nil {
		return nil, ErrContainerTypeNotFound
	}
	return s.mappingRepo.ListByContainerType(containerTypeID)
}

// ListByCustomer lists a customer's rebate history.
func (s *RebateService) ListByCustomer(customerID uint, page, pageSize int) ([]models.Rebate, int64, error) {
	return s.rebateRepo.List(repository.RebateListFilter{
		CustomerID: customerID,
		Page:       page,
		PageSize:   pageSize,
	})
}

// TotalsByStaff sums the rebates a staff member handed out.
func (s *RebateService) TotalsByStaff(staffID uint) (repository.RebateTotals, error) {
	return s.rebateRepo.TotalsByStaff(staffID)
}

// TotalsByRestaurant sums the rebates handed out by a restaurant's staff.
// Callers outside the restaurant's scope are rejected.
func (s *RebateService) TotalsByRestaurant(actor Actor, restaurantID uint) (repository.RebateTotals, error) {
	if !CanAccessRestaurant(actor.Role, actor.RestaurantID, restaurantID) {
		return repository.RebateTotals{}, ErrRestaurantScopeDenied
	}
	return s.rebateRepo.TotalsByRestaurant(restaurantID)
}

func (s *RebateService) resolveStaff(staffID uint) (*models.User, error) {
	staff, err := s.userRepo.GetByID(staffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, ErrUserNotFound
	}
	if staff.RestaurantID == nil {
		return nil, ErrStaffNoRestaurant
	}
	return staff, nil
}

func (s *RebateService) notifyStats(customerID uint, restaurantID *uint) {
	if s.statsNotifier == nil {
		return
	}
	s.statsNotifier.NotifyStatsChanged(customerID, restaurantID)
}
