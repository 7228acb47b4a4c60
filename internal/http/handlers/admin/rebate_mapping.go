package admin

import (
	"strconv"

	"github.com/aqro/aqro/internal/http/response"
	"github.com/aqro/aqro/internal/models"
	"github.com/aqro/aqro/internal/service"

	"github.com/gin-gonic/gin"
)

// RebateMappingEntry is one (container type, rebate value) pair of a
// mapping upsert.
type RebateMappingEntry struct {
	ContainerTypeID uint         `json:"container_type_id" binding:"required"`
	RebateValue     models.Money `json:"rebate_value" binding:"required"`
}

// UpsertRebateMappingsRequest is the batch upsert payload.
type UpsertRebateMappingsRequest struct {
	Mappings []RebateMappingEntry `json:"mappings" binding:"required,min=1,dive"`
}

// UpsertRebateMappings writes a restaurant's rebate mappings. The batch is
// validated up front and applied all-or-nothing.
func (h *Handler) UpsertRebateMappings(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid restaurant id", err)
		return
	}

	var req UpsertRebateMappingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	inputs := make([]service.MappingInput, 0, len(req.Mappings))
	for _, entry := range req.Mappings {
		inputs = append(inputs, service.MappingInput{
			ContainerTypeID: entry.ContainerTypeID,
			RebateValue:     entry.RebateValue,
		})
	}

	mappings, err := h.RebateService.UpsertMappings(uint(restaurantID), inputs)
	if err != nil {
		respondAdminError(c, err, "rebate mapping upsert failed")
		return
	}

	response.Success(c, mappings)
}

// RestaurantRebateMappings lists a restaurant's rebate mappings.
func (h *Handler) RestaurantRebateMappings(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid restaurant id", err)
		return
	}

	mappings, err := h.RebateService.MappingsByRestaurant(uint(restaurantID))
	if err != nil {
		respondAdminError(c, err, "rebate mapping lookup failed")
		return
	}

	response.Success(c, mappings)
}

// ContainerTypeRebateMappings lists every restaurant's mapping for a
// container type.
func (h *Handler) ContainerTypeRebateMappings(c *gin.Context) {
	containerTypeID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid container type id", err)
		return
	}

	mappings, err := h.RebateService.MappingsByContainerType(uint(containerTypeID))
	if err != nil {
		respondAdminError(c, err, "rebate mapping lookup failed")
		return
	}

	response.Success(c, mappings)
}

// DeleteRebateMapping removes one restaurant/container-type mapping.
func (h *Handler) DeleteRebateMapping(c *gin.Context) {
	restaurantID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid restaurant id", err)
		return
	}
	containerTypeID, err := strconv.ParseUint(c.Param("typeId"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid container type id", err)
		return
	}

	if err := h.RebateMappingRepo.DeleteByPair(uint(restaurantID), uint(containerTypeID)); err != nil {
		respondError(c, response.CodeInternal, "rebate mapping deletion failed", err)
		return
	}

	response.Success(c, gin.H{"deleted": true})
}
