package public

import (
	"github.com/aqro/aqro/internal/http/handlers/shared"
	"github.com/aqro/aqro/internal/http/response"

	"github.com/gin-gonic/gin"
)

// Me returns the current user's profile.
func (h *Handler) Me(c *gin.Context) {
	userID, err := shared.GetUserID(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}

	user, err := h.UserRepo.GetByID(userID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load profile", err)
		return
	}
	if user == nil {
		respondError(c, response.CodeNotFound, "user not found", nil)
		return
	}

	response.Success(c, user)
}

// MyStats returns the current customer's dashboard aggregates.
func (h *Handler) MyStats(c *gin.Context) {
	userID, err := shared.GetUserID(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}

	stats, err := h.StatsService.CustomerStats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load stats", err)
		return
	}

	response.Success(c, stats)
}

// MyActivities lists the current user's activity feed.
func (h *Handler) MyActivities(c *gin.Context) {
	userID, err := shared.GetUserID(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}

	page, pageSize := shared.ParsePagination(c)
	activities, total, err := h.ActivityService.ListByUser(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list activities", err)
		return
	}

	response.SuccessWithPage(c, activities, shared.BuildPagination(page, pageSize, total))
}

// MyRebates lists the current customer's rebate history.
func (h *Handler) MyRebates(c *gin.Context) {
	userID, err := shared.GetUserID(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}

	page, pageSize := shared.ParsePagination(c)
	rebates, total, err := h.RebateService.ListByCustomer(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list rebates", err)
		return
	}

	response.SuccessWithPage(c, rebates, shared.BuildPagination(page, pageSize, total))
}
