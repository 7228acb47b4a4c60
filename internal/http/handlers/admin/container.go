package admin

import (
	"net/http"
	"strconv"

	"github.com/aqro/aqro/internal/http/handlers/shared"
	"github.com/aqro/aqro/internal/http/response"
	"github.com/aqro/aqro/internal/repository"
	"github.com/aqro/aqro/internal/service"

	"github.com/gin-gonic/gin"
)

// GenerateContainerRequest is the container generation payload.
type GenerateContainerRequest struct {
	ContainerTypeID uint  `json:"container_type_id" binding:"required"`
	RestaurantID    *uint `json:"restaurant_id"`
}

// GenerateContainer creates a new physical container with a fresh QR code.
func (h *Handler) GenerateContainer(c *gin.Context) {
	var req GenerateContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	container, err := h.ContainerService.Generate(service.GenerateContainerInput{
		ContainerTypeID: req.ContainerTypeID,
		RestaurantID:    req.RestaurantID,
	})
	if err != nil {
		respondAdminError(c, err, "container generation failed")
		return
	}

	response.Success(c, container)
}

// GetContainer loads one container with its type and owner.
func (h *Handler) GetContainer(c *gin.Context) {
	containerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid container id", err)
		return
	}

	container, err := h.ContainerService.GetByID(uint(containerID))
	if err != nil {
		respondAdminError(c, err, "container lookup failed")
		return
	}

	response.Success(c, container)
}

// ListContainers lists containers with optional filters.
func (h *Handler) ListContainers(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	filter := repository.ContainerListFilter{
		Page:     page,
		PageSize: pageSize,
		Status:   c.Query("status"),
	}
	if restaurantID, err := strconv.ParseUint(c.Query("restaurant_id"), 10, 64); err == nil {
		filter.RestaurantID = uint(restaurantID)
	}
	if typeID, err := strconv.ParseUint(c.Query("container_type_id"), 10, 64); err == nil {
		filter.ContainerTypeID = uint(typeID)
	}
	if customerID, err := strconv.ParseUint(c.Query("customer_id"), 10, 64); err == nil {
		filter.CustomerID = uint(customerID)
	}

	containers, total, err := h.ContainerRepo.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list containers", err)
		return
	}

	response.SuccessWithPage(c, containers, shared.BuildPagination(page, pageSize, total))
}

// ContainerQRPNG renders the container's QR code as a PNG image.
func (h *Handler) ContainerQRPNG(c *gin.Context) {
	containerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid container id", err)
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	png, err := h.ContainerService.RenderQRPNG(uint(containerID), size)
	if err != nil {
		respondAdminError(c, err, "qr rendering failed")
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

// ContainerActivities lists one container's history.
func (h *Handler) ContainerActivities(c *gin.Context) {
	containerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid container id", err)
		return
	}

	page, pageSize := shared.ParsePagination(c)
	activities, total, err := h.ActivityService.ListByContainer(uint(containerID), page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list activities", err)
		return
	}

	response.SuccessWithPage(c, activities, shared.BuildPagination(page, pageSize, total))
}
