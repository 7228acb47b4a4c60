package public

import (
	"strconv"

	"github.com/aqro/aqro/internal/http/handlers/shared"
	"github.com/aqro/aqro/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RegisterContainerRequest is the registration payload.
type RegisterContainerRequest struct {
	QRCode string `json:"qr_code" binding:"required"`
}

// RegisterContainer claims a scanned container for the current customer.
// Re-registering an owned container is reported, not rejected.
func (h *Handler) RegisterContainer(c *gin.Context) {
	userID, err := shared.GetUserID(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}

	var req RegisterContainerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	result, err := h.ContainerService.Register(req.QRCode, userID)
	if err != nil {
		respondContainerRegisterError(c, err)
		return
	}

	response.Success(c, gin.H{
		"container":             result.Container,
		"already_registered":    result.AlreadyRegistered,
		"owned_by_current_user": result.OwnedByCurrentUser,
	})
}

// MyContainers lists the current customer's containers.
func (h *Handler) MyContainers(c *gin.Context) {
	userID, err := shared.GetUserID(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}

	page, pageSize := shared.ParsePagination(c)
	containers, total, err := h.ContainerService.ListByCustomer(userID, page, pageSize)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to list containers", err)
		return
	}

	response.SuccessWithPage(c, containers, shared.BuildPagination(page, pageSize, total))
}

// UpdateContainerStatusRequest is the owner status report payload.
type UpdateContainerStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=lost damaged"`
}

// UpdateContainerStatus lets the owning customer report a container lost
// or damaged.
func (h *Handler) UpdateContainerStatus(c *gin.Context) {
	userID, err := shared.GetUserID(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}

	containerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid container id", err)
		return
	}

	var req UpdateContainerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "invalid request body", err)
		return
	}

	container, err := h.ContainerService.MarkStatus(uint(containerID), req.Status, userID)
	if err != nil {
		respondContainerStatusError(c, err)
		return
	}

	response.Success(c, container)
}
