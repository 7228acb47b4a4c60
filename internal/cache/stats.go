package cache

import (
	"context"
	"fmt"
	"time"
)

const statsCacheTTL = 5 * time.Minute

// CustomerStats is the cached per-customer dashboard aggregate.
type CustomerStats struct {
	ActiveContainers   int64   `json:"active_containers"`
	ReturnedContainers int64   `json:"returned_containers"`
	TotalRebates       float64 `json:"total_rebates"`
	RebateCount        int64   `json:"rebate_count"`
	UpdatedAt          int64   `json:"updated_at"`
}

// RestaurantStats is the cached per-restaurant dashboard aggregate.
type RestaurantStats struct {
	AvailableContainers int64 `json:"available_containers"`
	ActiveContainers    int64 `json:"active_containers"`
	ReturnedContainers  int64 `json:"returned_containers"`
	UpdatedAt           int64 `json:"updated_at"`
}

func customerStatsKey(customerID uint) string {
	return fmt.Sprintf("stats:customer:%d", customerID)
}

func restaurantStatsKey(restaurantID uint) string {
	return fmt.Sprintf("stats:restaurant:%d", restaurantID)
}

// GetCustomerStats reads the cached customer aggregate.
func GetCustomerStats(ctx context.Context, customerID uint) (*CustomerStats, bool, error) {
	if customerID == 0 {
		return nil, false, nil
	}
	var stats CustomerStats
	hit, err := GetJSON(ctx, customerStatsKey(customerID), &stats)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &stats, true, nil
}

// SetCustomerStats writes the customer aggregate.
func SetCustomerStats(ctx context.Context, customerID uint, stats *CustomerStats) error {
	if customerID == 0 || stats == nil {
		return nil
	}
	return SetJSON(ctx, customerStatsKey(customerID), stats, statsCacheTTL)
}

// GetRestaurantStats reads the cached restaurant aggregate.
func GetRestaurantStats(ctx context.Context, restaurantID uint) (*RestaurantStats, bool, error) {
	if restaurantID == 0 {
		return nil, false, nil
	}
	var stats RestaurantStats
	hit, err := GetJSON(ctx, restaurantStatsKey(restaurantID), &stats)
	if err != nil || !hit {
		return nil, hit, err
	}
	return &stats, true, nil
}

// SetRestaurantStats writes the restaurant aggregate.
func SetRestaurantStats(ctx context.Context, restaurantID uint, stats *RestaurantStats) error {
	if restaurantID == 0 || stats == nil {
		return nil
	}
	return SetJSON(ctx, restaurantStatsKey(restaurantID), stats, statsCacheTTL)
}
