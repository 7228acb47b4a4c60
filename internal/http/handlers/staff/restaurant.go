package staff

import (
	"strconv"

	"github.com/aqro/aqro/internal/http/handlers/shared"
	"github.com/aqro/aqro/internal/http/response"
	"github.com/aqro/aqro/internal/service"

	"github.com/gin-gonic/gin"
)

func restaurantIDParam(c *gin.Context) (uint, bool) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid restaurant id", err)
		return 0, false
	}
	return uint(restaurantID), true
}

// RestaurantStats returns a restaurant's container counts. Staff callers
// are limited to their own restaurant.
func (h *Handler) RestaurantStats(c *gin.Context) {
	actor, err := shared.GetActor(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}
	restaurantID, ok := restaurantIDParam(c)
	if !ok {
		return
	}

	stats, err := h.StatsService.RestaurantStats(c.Request.Context(), actor, restaurantID)
	if err != nil {
		respondRestaurantScopeError(c, err)
		return
	}

	response.Success(c, stats)
}

// RestaurantContainers lists a restaurant's containers.
func (h *Handler) RestaurantContainers(c *gin.Context) {
	actor, err := shared.GetActor(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}
	restaurantID, ok := restaurantIDParam(c)
	if !ok {
		return
	}
	if !service.CanAccessRestaurant(actor.Role, actor.RestaurantID, restaurantID) {
		respondRestaurantScopeError(c, service.ErrRestaurantScopeDenied)
		return
	}

	page, pageSize := shared.ParsePagination(c)
	containers, total, err := h.ContainerService.ListByRestaurant(restaurantID, c.Query("status"), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list containers", err)
		return
	}

	response.SuccessWithPage(c, containers, shared.BuildPagination(page, pageSize, total))
}

// RestaurantActivities lists a restaurant's recent activity.
func (h *Handler) RestaurantActivities(c *gin.Context) {
	actor, err := shared.GetActor(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}
	restaurantID, ok := restaurantIDParam(c)
	if !ok {
		return
	}

	page, pageSize := shared.ParsePagination(c)
	activities, total, err := h.ActivityService.ListByRestaurant(actor, restaurantID, page, pageSize)
	if err != nil {
		respondRestaurantScopeError(c, err)
		return
	}

	response.SuccessWithPage(c, activities, shared.BuildPagination(page, pageSize, total))
}

// RestaurantRebateTotals sums the rebates handed out by a restaurant's
// staff.
func (h *Handler) RestaurantRebateTotals(c *gin.Context) {
	actor, err := shared.GetActor(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}
	restaurantID, ok := restaurantIDParam(c)
	if !ok {
		return
	}

	totals, err := h.RebateService.TotalsByRestaurant(actor, restaurantID)
	if err != nil {
		respondRestaurantScopeError(c, err)
		return
	}

	response.Success(c, totals)
}
