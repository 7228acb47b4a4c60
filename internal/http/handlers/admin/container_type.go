package admin

import (
	"strconv"

	"github.com/aqro/aqro/internal/http/handlers/shared"
	"github.com/aqro/aqro/internal/http/response"
	"github.com/aqro/aqro/internal/models"
	"github.com/aqro/aqro/internal/repository"
	"github.com/aqro/aqro/internal/service"

	"github.com/gin-gonic/gin"
)

// ContainerTypeRequest carries container type create/update fields.
type ContainerTypeRequest struct {
	Name        string       `json:"name" binding:"required"`
	Description string       `json:"description"`
	Price       models.Money `json:"price"`
	RebateValue models.Money `json:"rebate_value"`
	MaxUses     int          `json:"max_uses"`
	Image       string       `json:"image"`
	IsActive    *bool        `json:"is_active"`
}

func (r ContainerTypeRequest) toInput() service.ContainerTypeInput {
	return service.ContainerTypeInput{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		RebateValue: r.RebateValue,
		MaxUses:     r.MaxUses,
		Image:       r.Image,
		IsActive:    r.IsActive,
	}
}

// ListContainerTypes lists container types with optional filters.
func (h *Handler) ListContainerTypes(c *gin.Context) {
	page, pageSize := shared.ParsePagination(c)
	filter := repository.ContainerTypeListFilter{
		Name:     c.Query("name"),
		Page:     page,
		PageSize: pageSize,
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true" || raw == "1"
		filter.IsActive = &active
	}

	types, total, err := h.ContainerTypeService.List(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list container types", err)
		return
	}

	response.SuccessWithPage(c, types, shared.BuildPagination(page, pageSize, total))
}

// GetContainerType loads one container type.
func (h *Handler) GetContainerType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid container type id", err)
		return
	}

	containerType, err := h.ContainerTypeService.GetByID(uint(id))
	if err != nil {
		respondAdminError(c, err, "container type lookup failed")
		return
	}

	response.Success(c, containerType)
}

// CreateContainerType inserts a container type.
func (h *Handler) CreateContainerType(c *gin.Context) {
	var req ContainerTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	containerType, err := h.ContainerTypeService.Create(req.toInput())
	if err != nil {
		respondAdminError(c, err, "container type creation failed")
		return
	}

	response.Success(c, containerType)
}

// UpdateContainerType applies changes to a container type.
func (h *Handler) UpdateContainerType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid container type id", err)
		return
	}

	var req ContainerTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	containerType, err := h.ContainerTypeService.Update(uint(id), req.toInput())
	if err != nil {
		respondAdminError(c, err, "container type update failed")
		return
	}

	response.Success(c, containerType)
}

// DeleteContainerType soft deletes a container type.
func (h *Handler) DeleteContainerType(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid container type id", err)
		return
	}

	if err := h.ContainerTypeService.Delete(uint(id)); err != nil {
		respondAdminError(c, err, "container type deletion failed")
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
