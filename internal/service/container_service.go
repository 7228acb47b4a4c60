package service

import (
	"strings"

	"github.com/aqro/aqro/internal/constants"
	"github.com/aqro/aqro/internal/logger"
	"github.com/aqro/aqro/internal/models"
	"github.com/aqro/aqro/internal/repository"

	qrcode "github.com/skip2/go-qrcode"
	"gorm.io/gorm"
)

const defaultQRRetryAttempts = 5

// ContainerService covers container lifecycle: generation, registration,
// owner status reports and the read paths around them.
type ContainerService struct {
	containerRepo     repository.ContainerRepository
	containerTypeRepo repository.ContainerTypeRepository
	restaurantRepo    repository.RestaurantRepository
	activityRepo      repository.ActivityRepository
	statsNotifier     StatsNotifier
	qrRetryAttempts   int
}

// StatsNotifier is the fire-and-forget hook used to refresh cached stats
// after lifecycle events. Failures are logged, never propagated.
type StatsNotifier interface {
	NotifyStatsChanged(customerID uint, restaurantID *uint)
}

// GenerateContainerInput creates a new physical container record.
type GenerateContainerInput struct {
	ContainerTypeID uint
	RestaurantID    *uint
}

// RegisterResult is the structured outcome of a registration attempt.
// Idempotent cases come back as results, not errors.
type RegisterResult struct {
	Container          *models.Container
	AlreadyRegistered  bool
	OwnedByCurrentUser bool
}

// NewContainerService creates a container service.
func NewContainerService(
	containerRepo repository.ContainerRepository,
	containerTypeRepo repository.ContainerTypeRepository,
	restaurantRepo repository.RestaurantRepository,
	activityRepo repository.ActivityRepository,
	statsNotifier StatsNotifier,
	qrRetryAttempts int,
) *ContainerService {
	if qrRetryAttempts <= 0 {
		qrRetryAttempts = defaultQRRetryAttempts
	}
	return &ContainerService{
		containerRepo:     containerRepo,
		containerTypeRepo: containerTypeRepo,
		restaurantRepo:    restaurantRepo,
		activityRepo:      activityRepo,
		statsNotifier:     statsNotifier,
		qrRetryAttempts:   qrRetryAttempts,
	}
}

// Generate creates a container of the given type with a fresh QR code.
// A unique-index collision on the code triggers a retry with a new code.
func (s *ContainerService) Generate(input GenerateContainerInput) (*models.Container, error) {
	containerType, err := s.containerTypeRepo.GetByID(input.ContainerTypeID)
	if err != nil {
		return nil, err
	}
	if containerType == nil {
		return nil, ErrContainerTypeNotFound
	}
	if input.RestaurantID != nil {
		restaurant, err := s.restaurantRepo.GetByID(*input.RestaurantID)
		if err != nil {
			return nil, err
		}
		if restaurant == nil {
			return nil, ErrRestaurantNotFound
		}
	}

	for attempt := 0; attempt < s.qrRetryAttempts; attempt++ {
		code, err := NewQRCodeValue()
		if err != nil {
			return nil, err
		}
		container := &models.Container{
			QRCode:          code,
			ContainerTypeID: containerType.ID,
			RestaurantID:    input.RestaurantID,
			Status:          constants.ContainerStatusAvailable,
		}
		err = s.containerRepo.Create(container)
		if err == nil {
			container.ContainerType = containerType
			return container, nil
		}
		if !isUniqueViolation(err) {
			return nil, err
		}
		logger.Warnw("qr code collision, retrying", "attempt", attempt+1, "qr_code", code)
	}
	return nil, ErrQRCodeExhausted
}

// Register claims a container for a customer. The claim is a conditional
// update so exactly one concurrent caller wins; losers get a structured
// already-registered result rather than an error.
func (s *ContainerService) Register(qrCode string, customerID uint) (*RegisterResult, error) {
	container, err := s.containerRepo.GetByQRCode(strings.TrimSpace(qrCode))
	if err != nil {
		return nil, err
	}
	if container == nil {
		return nil, ErrContainerNotFound
	}

	if container.CustomerID != nil {
		return s.registerOutcome(container.ID, customerID)
	}

	var claimed bool
	err = s.containerRepo.Transaction(func(tx *gorm.DB) error {
		repo := s.containerRepo.WithTx(tx)
		won, err := repo.ClaimOwnership(container.ID, customerID)
		if err != nil {
			return err
		}
		claimed = won
		if !won {
			return nil
		}
		activity := &models.Activity{
			UserID:          customerID,
			ContainerID:     container.ID,
			ContainerTypeID: container.ContainerTypeID,
			RestaurantID:    container.RestaurantID,
			Type:            constants.ActivityTypeRegistration,
		}
		return s.activityRepo.WithTx(tx).Create(activity)
	})
	if err != nil {
		return nil, err
	}

	if claimed {
		fresh, err := s.containerRepo.GetByID(container.ID)
		if err != nil {
			return nil, err
		}
		s.notifyStats(customerID, container.RestaurantID)
		return &RegisterResult{Container: fresh}, nil
	}
	return s.registerOutcome(container.ID, customerID)
}

// registerOutcome reports the idempotent registration cases.
func (s *ContainerService) registerOutcome(containerID uint, customerID uint) (*RegisterResult, error) {
	container, err := s.containerRepo.GetByID(containerID)
	if err != nil {
		return nil, err
	}
	if container == nil || container.CustomerID == nil {
		return nil, ErrContainerNotFound
	}
	return &RegisterResult{
		Container:          container,
		AlreadyRegistered:  true,
		OwnedByCurrentUser: *container.CustomerID == customerID,
	}, nil
}

// MarkStatus lets the owning customer report a container lost or damaged.
// Only active containers can be reported.
func (s *ContainerService) MarkStatus(containerID uint, status string, customerID uint) (*models.Container, error) {
	if status != constants.ContainerStatusLost && status != constants.ContainerStatusDamaged {
		return nil, ErrContainerNotActive
	}

	err := s.containerRepo.Transaction(func(tx *gorm.DB) error {
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
		if *container.CustomerID != customerID {
			return ErrContainerNotOwned
		}
		if container.Status != constants.ContainerStatusActive {
			return ErrContainerNotActive
		}
		if err := repo.UpdateStatus(container.ID, status); err != nil {
			return err
		}
		activity := &models.Activity{
			UserID:          customerID,
			ContainerID:     container.ID,
			ContainerTypeID: container.ContainerTypeID,
			RestaurantID:    container.RestaurantID,
			Type:            constants.ActivityTypeStatusChange,
			Notes:           "status set to " + status,
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
	if container == nil {
		return nil, ErrContainerNotFound
	}
	s.notifyStats(customerID, container.RestaurantID)
	return container, nil
}

// GetByQRCode loads a container with its type and owner for scan previews.
func (s *ContainerService) GetByQRCode(qrCode string) (*models.Container, error) {
	container, err := s.containerRepo.GetByQRCode(strings.TrimSpace(qrCode))
	if err != nil {
		return nil, err
	}
	if container == nil {
		return nil, ErrContainerNotFound
	}
	return container, nil
}

// GetByID loads a container by id.
func (s *ContainerService) GetByID(id uint) (*models.Container, error) {
	container, err := s.containerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if container == nil {
		return nil, ErrContainerNotFound
	}
	return container, nil
}

// ListByCustomer lists a customer's containers.
func (s *ContainerService) ListByCustomer(customerID uint, page, pageSize int) ([]models.Container, int64, error) {
	return s.containerRepo.List(repository.ContainerListFilter{
		CustomerID: customerID,
		Page:       page,
		PageSize:   pageSize,
	})
}

// ListByRestaurant lists a restaurant's containers.
func (s *ContainerService) ListByRestaurant(restaurantID uint, status string, page, pageSize int) ([]models.Container, int64, error) {
	return s.containerRepo.List(repository.ContainerListFilter{
		RestaurantID: restaurantID,
		Status:       status,
		Page:         page,
		PageSize:     pageSize,
	})
}

// RenderQRPNG renders the container's QR code value as a PNG.
func (s *ContainerService) RenderQRPNG(containerID uint, size int) ([]byte, error) {
	container, err := s.GetByID(containerID)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(container.QRCode, qrcode.Medium, size)
}

func (s *ContainerService) notifyStats(customerID uint, restaurantID *uint) {
	if s.statsNotifier == nil {
		return
	}
	s.statsNotifier.NotifyStatsChanged(customerID, restaurantID)
}

// isUniqueViolation detects a unique-index conflict across the sqlite and
// postgres drivers.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}
