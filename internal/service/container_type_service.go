package service

import (
	"strings"

	"github.com/aqro/aqro/internal/models"
	"github.com/aqro/aqro/internal/repository"
)

// ContainerTypeService is the admin CRUD surface for container types.
type ContainerTypeService struct {
	containerTypeRepo repository.ContainerTypeRepository
}

// ContainerTypeInput carries create/update fields.
type ContainerTypeInput struct {
	Name        string
	Description string
	Price       models.Money
	RebateValue models.Money
	MaxUses     int
	Image       string
	IsActive    *bool
}

// NewContainerTypeService creates a container type service.
func NewContainerTypeService(containerTypeRepo repository.ContainerTypeRepository) *ContainerTypeService {
	return &ContainerTypeService{containerTypeRepo: containerTypeRepo}
}

// GetByID loads a container type.
func (s *ContainerTypeService) GetByID(id uint) (*models.ContainerType, error) {
	containerType, err := s.containerTypeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if containerType == nil {
		return nil, ErrContainerTypeNotFound
	}
	return containerType, nil
}

// List returns container types matching the filter.
func (s *ContainerTypeService) List(filter repository.ContainerTypeListFilter) ([]models.ContainerType, int64, error) {
	return s.containerTypeRepo.List(filter)
}

// Create inserts a container type.
func (s *ContainerTypeService) Create(input ContainerTypeInput) (*models.ContainerType, error) {
	containerType := &models.ContainerType{
		Name:        strings.TrimSpace(input.Name),
		Description: strings.TrimSpace(input.Description),
		Price:       input.Price,
		RebateValue: input.RebateValue,
		MaxUses:     input.MaxUses,
		Image:       input.Image,
		IsActive:    true,
	}
	if containerType.MaxUses <= 0 {
		containerType.MaxUses = 10
	}
	if input.IsActive != nil {
		containerType.IsActive = *input.IsActive
	}
	if err := s.containerTypeRepo.Create(containerType); err != nil {
		return nil, err
	}
	return containerType, nil
}

// Update applies the input to an existing container type.
func (s *ContainerTypeService) Update(id uint, input ContainerTypeInput) (*models.ContainerType, error) {
	containerType, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		containerType.Name = name
	}
	containerType.Description = strings.TrimSpace(input.Description)
	containerType.Price = input.Price
	containerType.RebateValue = input.RebateValue
	if input.MaxUses > 0 {
		containerType.MaxUses = input.MaxUses
	}
	if input.Image != "" {
		containerType.Image = input.Image
	}
	if input.IsActive != nil {
		containerType.IsActive = *input.IsActive
	}
	if err := s.containerTypeRepo.Update(containerType); err != nil {
		return nil, err
	}
	return containerType, nil
}

// Delete soft deletes a container type.
func (s *ContainerTypeService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.containerTypeRepo.Delete(id)
}
