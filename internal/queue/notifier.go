package queue

import (
	"github.com/aqro/aqro/internal/logger"
)

// StatsNotifier enqueues stats refresh tasks after lifecycle events. The
// enqueue is fire-and-forget; a failure is logged and never surfaces to the
// workflow that triggered it.
type StatsNotifier struct {
	client *Client
}

// NewStatsNotifier creates a stats notifier.
func NewStatsNotifier(client *Client) *StatsNotifier {
	return &StatsNotifier{client: client}
}

// NotifyStatsChanged pushes a refresh task for the touched aggregates.
func (n *StatsNotifier) NotifyStatsChanged(customerID uint, restaurantID *uint) {
	if n == nil || !n.client.Enabled() {
		return
	}
	err := n.client.EnqueueStatsRefresh(StatsRefreshPayload{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
	})
	if err != nil {
		logger.Warnw("stats refresh enqueue failed", "customer_id", customerID, "error", err)
	}
}
