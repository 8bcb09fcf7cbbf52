package handlers

import (
	"errors"
	"net/http"

	"cafe_storefront_backend/internal/services"
	"cafe_storefront_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AvailabilityHandler serves ordering-availability checks used by
// checkout gating.
type AvailabilityHandler struct {
	availabilityService services.AvailabilityService
}

// NewAvailabilityHandler creates a new AvailabilityHandler.
func NewAvailabilityHandler(as services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: as}
}

// GetOrderingAvailability returns the aggregate availability overview,
// or the flattened single-type shape when ?type= is given.
func (h *AvailabilityHandler) GetOrderingAvailability(c *gin.Context) {
	itemType := c.Query("type")
	if itemType == "" {
		c.JSON(http.StatusOK, h.availabilityService.GetOverview())
		return
	}

	typed, err := h.availabilityService.GetByType(itemType)
	if err != nil {
		if errors.Is(err, services.ErrUnknownItemType) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeBadRequest, "Unknown item type. Use food, drinks or combo.", err.Error()))
			return
		}
		utils.LogError(err, "GetOrderingAvailability: unexpected failure")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to check ordering availability.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, typed)
}
