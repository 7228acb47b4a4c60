package service

import (
	"strings"

	"github.com/aqro/aqro/internal/models"
	"github.com/aqro/aqro/internal/repository"
)

// RestaurantService is the admin CRUD surface for restaurants.
type RestaurantService struct {
	restaurantRepo repository.RestaurantRepository
}

// RestaurantInput carries create/update fields.
type RestaurantInput struct {
	Name     string
	Location string
	Contact  string
	Logo     string
	IsActive *bool
}

// NewRestaurantService creates a restaurant service.
func NewRestaurantService(restaurantRepo repository.RestaurantRepository) *RestaurantService {
	return &RestaurantService{restaurantRepo: restaurantRepo}
}

// GetByID loads a restaurant.
func (s *RestaurantService) GetByID(id uint) (*models.Restaurant, error) {
	restaurant, err := s.restaurantRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, ErrRestaurantNotFound
	}
	return restaurant, nil
}

// List returns restaurants matching the filter.
func (s *RestaurantService) List(filter repository.RestaurantListFilter) ([]models.Restaurant, int64, error) {
	return s.restaurantRepo.List(filter)
}

// Create inserts a restaurant.
func (s *RestaurantService) Create(input RestaurantInput) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{
		Name:     strings.TrimSpace(input.Name),
		Location: strings.TrimSpace(input.Location),
		Contact:  strings.TrimSpace(input.Contact),
		Logo:     input.Logo,
		IsActive: true,
	}
	if input.IsActive != nil {
		restaurant.IsActive = *input.IsActive
	}
	if err := s.restaurantRepo.Create(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// Update applies the input to an existing restaurant.
func (s *RestaurantService) Update(id uint, input RestaurantInput) (*models.Restaurant, error) {
	restaurant, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		restaurant.Name = name
	}
	restaurant.Location = strings.TrimSpace(input.Location)
	restaurant.Contact = strings.TrimSpace(input.Contact)
	if input.Logo != "" {
		restaurant.Logo = input.Logo
	}
	if input.IsActive != nil {
		restaurant.IsActive = *input.IsActive
	}
	if err := s.restaurantRepo.Update(restaurant); err != nil {
		return nil, err
	}
	return restaurant, nil
}

// Delete soft deletes a restaurant.
func (s *RestaurantService) Delete(id uint) error {
	if _, err := s.GetByID(id); err != nil {
		return err
	}
	return s.restaurantRepo.Delete(id)
}
