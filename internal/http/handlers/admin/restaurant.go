package admin

import (
	"strconv"

	"github.com/aqro/aqro/internal/http/handlers/shared"
	"github.com/aqro/aqro/internal/http/response"
	"github.com/aqro/aqro/internal/repository"
	"github.com/aqro/aqro/internal/service"

	"github.com/gin-gonic/gin"
)

// RestaurantRequest carries restaurant create/update fields.
type RestaurantRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location"`
	Contact  string `json:"contact"`
	Logo     string `json:"logo"`
	IsActive *bool  `json:"is_active"`
}

func (r RestaurantRequest) toInput() service.RestaurantInput {
	return service.RestaurantInput{
		Name:     r.Name,
		Location: r.Location,
		Contact:  r.Contact,
		Logo:     r.Logo,
		IsActive: r.IsActive,
	}
}

// ListRestaurants lists restaurants with optional filters.
func (h *Handler) ListRestaurants(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	filter := repository.RestaurantListFilter{
		Name:     c.Query("name"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	restaurants, total, err := h.RestaurantService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list restaurants", err)
		return
	}

	response.SuccessWithPage(c, restaurants, shared.BuildPagination(page, pageSize, total))
}

// GetRestaurant loads one restaurant.
func (h *Handler) GetRestaurant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid restaurant id", err)
		return
	}

	restaurant, err := h.RestaurantService.GetByID(uint(id))
	if err != nil {
		respondAdminError(c, err, "restaurant lookup failed")
		return
	}

	response.Success(c, restaurant)
}

// CreateRestaurant inserts a restaurant.
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	restaurant, err := h.RestaurantService.Create(req.toInput())
	if err != nil {
		respondAdminError(c, err, "restaurant creation failed")
		return
	}

	response.Success(c, restaurant)
}

// UpdateRestaurant applies changes to a restaurant.
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid restaurant id", err)
		return
	}

	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	restaurant, err := h.RestaurantService.Update(uint(id), req.toInput())
	if err != nil {
		respondAdminError(c, err, "restaurant update failed")
		return
	}

	response.Success(c, restaurant)
}

// DeleteRestaurant soft deletes a restaurant.
func (h *Handler) DeleteRestaurant(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid restaurant id", err)
		return
	}

	if err := h.RestaurantService.Delete(uint(id)); err != nil {
		respondAdminError(c, err, "restaurant deletion failed")
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
