package service

import (
	"github.com/aqro/aqro/internal/models"
	"github.com/aqro/aqro/internal/repository"
)

// ActivityService serves the activity feeds. The ledger itself is written
// inside the lifecycle transactions, this service only reads.
type ActivityService struct {
	activityRepo repository.ActivityRepository
}

// NewActivityService creates an activity service.
func NewActivityService(activityRepo repository.ActivityRepository) *ActivityService {
	return &ActivityService{activityRepo: activityRepo}
}

// ListByUser lists a user's recent activity.
func (s *ActivityService) ListByUser(userID uint, page, pageSize int) ([]models.Activity, int64, error) {
	return s.activityRepo.List(repository.ActivityListFilter{
		UserID:   userID,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListByRestaurant lists a restaurant's recent activity. Staff callers are
// limited to their own restaurant.
func (s *ActivityService) ListByRestaurant(actor Actor, restaurantID uint, page, pageSize int) ([]models.Activity, int64, error) {
	if !CanAccessRestaurant(actor.Role, actor.RestaurantID, restaurantID) {
		return nil, 0, ErrRestaurantScopeDenied
	}
	return s.activityRepo.List(repository.ActivityListFilter{
		RestaurantID: restaurantID,
		Page:         page,
		PageSize:     pageSize,
	})
}

// ListByContainer lists one container's history.
func (s *ActivityService) ListByContainer(containerID uint, page, pageSize int) ([]models.Activity, int64, error) {
	return s.activityRepo.List(repository.ActivityListFilter{
		ContainerID: containerID,
		Page:        page,
		PageSize:    pageSize,
	})
}
