package worker

import (
	"context"
	"encoding/json"

	"github.com/aqro/aqro/internal/logger"
	"github.com/aqro/aqro/internal/provider"
	"github.com/aqro/aqro/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer handles async tasks against the shared dependency container.
type Consumer struct {
	*provider.Container
}

// NewConsumer creates a consumer.
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register binds task handlers.
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskStatsRefresh, c.handleStatsRefresh)
}

func (c *Consumer) handleStatsRefresh(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_stats_refresh_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.StatsRefreshPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_stats_refresh_unmarshal_failed", "error", err)
		return err
	}
	if payload.CustomerID == 0 && payload.RestaurantID == nil {
		logger.Debugw("worker_stats_refresh_skip_empty_payload")
		return nil
	}
	if c.StatsService == nil {
		logger.Warnw("worker_stats_refresh_skip_stats_service_nil")
		return nil
	}
	if err := c.StatsService.Refresh(ctx, payload.CustomerID, payload.RestaurantID); err != nil {
		logger.Warnw("worker_stats_refresh_failed",
			"customer_id", payload.CustomerID,
			"error", err,
		)
		return err
	}
	return nil
}
