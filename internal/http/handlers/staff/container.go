package staff

import (
	"strconv"
	"strings"

	"github.com/aqro/aqro/internal/http/handlers/shared"
	"github.com/aqro/aqro/internal/http/response"
	"github.com/aqro/aqro/internal/service"

	"github.com/gin-gonic/gin"
)

// ScanContainer previews a container by its QR code value before the staff
// member processes it.
func (h *Handler) ScanContainer(c *gin.Context) {
	qrCode := strings.TrimSpace(c.Query("qr_code"))
	if qrCode == "" {
		respondError(c, response.CodeBadRequest, "qr_code query parameter is required", nil)
		return
	}

	container, err := h.ContainerService.GetByQRCode(qrCode)
	if err != nil {
		respondWithMappedError(c, err, []mappedHandlerError{
			{target: service.ErrContainerNotFound, code: response.CodeNotFound, msg: "container not found"},
		}, response.CodeInternal, "container lookup failed")
		return
	}

	response.Success(c, container)
}

// ProcessRebate credits the container's owner for one use at the staff
// member's restaurant.
func (h *Handler) ProcessRebate(c *gin.Context) {
	staffID, err := shared.GetUserID(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}

	containerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid container id", err)
		return
	}

	rebate, err := h.RebateService.ProcessRebate(uint(containerID), staffID)
	if err != nil {
		respondRebateError(c, err)
		return
	}

	response.Success(c, rebate)
}

// ProcessReturn marks a container as returned at the counter.
func (h *Handler) ProcessReturn(c *gin.Context) {
	staffID, err := shared.GetUserID(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}

	containerID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "invalid container id", err)
		return
	}

	container, err := h.RebateService.ProcessReturn(uint(containerID), staffID)
	if err != nil {
		respondReturnError(c, err)
		return
	}

	response.Success(c, container)
}

// MyRebateTotals sums the rebates handed out by the current staff member.
func (h *Handler) MyRebateTotals(c *gin.Context) {
	staffID, err := shared.GetUserID(c)
	if err != nil {
		respondError(c, response.CodeUnauthorized, "unauthorized", err)
		return
	}

	totals, err := h.RebateService.TotalsByStaff(staffID)
	if err != nil {
		respondError(c, response.CodeInternal, "failed to load rebate totals", err)
		return
	}

	response.Success(c, totals)
}
