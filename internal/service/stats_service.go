package service

import (
	"context"
	"time"

	"github.com/aqro/aqro/internal/cache"
	"github.com/aqro/aqro/internal/logger"
	"github.com/aqro/aqro/internal/repository"
)

// StatsService serves the dashboard aggregates. Reads try the redis cache
// first and fall back to direct aggregation; correctness never depends on
// the cache being warm or even enabled.
type StatsService struct {
	containerRepo repository.ContainerRepository
	rebateRepo    repository.RebateRepository
}

// NewStatsService creates a stats service.
func NewStatsService(containerRepo repository.ContainerRepository, rebateRepo repository.RebateRepository) *StatsService {
	return &StatsService{containerRepo: containerRepo, rebateRepo: rebateRepo}
}

// CustomerStats returns a customer's container counts and lifetime rebate
// total.
func (s *StatsService) CustomerStats(ctx context.Context, customerID uint) (*cache.CustomerStats, error) {
	cached, hit, err := cache.GetCustomerStats(ctx, customerID)
	if err != nil {
		logger.Warnw("customer stats cache read failed", "customer_id", customerID, "error", err)
	}
	if hit {
		return cached, nil
	}

	stats, err := s.computeCustomerStats(customerID)
	if err != nil {
		return nil, err
	}
	if err := cache.SetCustomerStats(ctx, customerID, stats); err != nil {
		logger.Warnw("customer stats cache write failed", "customer_id", customerID, "error", err)
	}
	return stats, nil
}

// RestaurantStats returns a restaurant's container counts. Staff callers
// are limited to their own restaurant.
func (s *StatsService) RestaurantStats(ctx context.Context, actor Actor, restaurantID uint) (*cache.RestaurantStats, error) {
	if !CanAccessRestaurant(actor.Role, actor.RestaurantID, restaurantID) {
		return nil, ErrRestaurantScopeDenied
	}

	cached, hit, err := cache.GetRestaurantStats(ctx, restaurantID)
	if err != nil {
		logger.Warnw("restaurant stats cache read failed", "restaurant_id", restaurantID, "error", err)
	}
	if hit {
		return cached, nil
	}

	stats, err := s.computeRestaurantStats(restaurantID)
	if err != nil {
		return nil, err
	}
	if err := cache.SetRestaurantStats(ctx, restaurantID, stats); err != nil {
		logger.Warnw("restaurant stats cache write failed", "restaurant_id", restaurantID, "error", err)
	}
	return stats, nil
}

// Refresh recomputes and re-caches the aggregates touched by a lifecycle
// event. The worker calls this for every stats refresh task.
func (s *StatsService) Refresh(ctx context.Context, customerID uint, restaurantID *uint) error {
	if customerID > 0 {
		stats, err := s.computeCustomerStats(customerID)
		if err != nil {
			return err
		}
		if err := cache.SetCustomerStats(ctx, customerID, stats); err != nil {
			return err
		}
	}
	if restaurantID != nil && *restaurantID > 0 {
		stats, err := s.computeRestaurantStats(*restaurantID)
		if err != nil {
			return err
		}
		if err := cache.SetRestaurantStats(ctx, *restaurantID, stats); err != nil {
			return err
		}
	}
	return nil
}

func (s *StatsService) computeCustomerStats(customerID uint) (*cache.CustomerStats, error) {
	counts, err := s.containerRepo.CountByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	totals, err := s.rebateRepo.SumAmountByCustomer(customerID)
	if err != nil {
		return nil, err
	}
	return &cache.CustomerStats{
		ActiveContainers:   counts.Active,
		ReturnedContainers: counts.Returned,
		TotalRebates:       totals.TotalAmount,
		RebateCount:        totals.Count,
		UpdatedAt:          time.Now().Unix(),
	}, nil
}

func (s *StatsService) computeRestaurantStats(restaurantID uint) (*cache.RestaurantStats, error) {
	counts, err := s.containerRepo.CountByRestaurant(restaurantID)
	if err != nil {
		return nil, err
	}
	return &cache.RestaurantStats{
		AvailableContainers: counts.Available,
		ActiveContainers:    counts.Active,
		ReturnedContainers:  counts.Returned,
		UpdatedAt:           time.Now().Unix(),
	}, nil
}
