package queue

import (
	"encoding/json"

	"github.com/aqro/aqro/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskStatsRefresh recomputes cached dashboard aggregates.
	TaskStatsRefresh = constants.TaskStatsRefresh
)

// StatsRefreshPayload names the aggregates touched by a lifecycle event.
type StatsRefreshPayload struct {
	CustomerID   uint  `json:"customer_id"`
	RestaurantID *uint `json:"restaurant_id,omitempty"`
}

// NewStatsRefreshTask creates a stats refresh task.
func NewStatsRefreshTask(payload StatsRefreshPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskStatsRefresh, body), nil
}
