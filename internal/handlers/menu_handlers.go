package handlers

import (
	"errors"
	"net/http"

	"cafe_storefront_backend/internal/models"
	"cafe_storefront_backend/internal/services"
	"cafe_storefront_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// MenuHandler serves the composed storefront menu.
type MenuHandler struct {
	menuService services.MenuService
}

// NewMenuHandler creates a new MenuHandler.
func NewMenuHandler(ms services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: ms}
}

// GetMenu returns the full composed menu, optionally filtered to one
// category via the ?category= query parameter. A storefront always gets
// a well-formed envelope; failures surface as error:true with empty
// items, never a stack trace.
func (h *MenuHandler) GetMenu(c *gin.Context) {
	resp, err := h.menuService.GetMenu(c.Request.Context(), c.Query("category"))
	if err != nil {
		status, message := menuErrorResponse(err)
		utils.LogError(err, "GetMenu: failed to compose menu")
		c.JSON(status, models.MenuResponse{
			Items:      []models.MenuItem{},
			Categories: []string{},
			Source:     "catalog",
			Count:      0,
			Error:      true,
			Message:    message,
		})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetCategories returns just the visible category list.
func (h *MenuHandler) GetCategories(c *gin.Context) {
	categories, err := h.menuService.GetCategories(c.Request.Context())
	if err != nil {
		status, message := menuErrorResponse(err)
		utils.LogError(err, "GetCategories: failed to derive categories")
		c.JSON(status, gin.H{"categories": []string{}, "error": true, "message": message})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

func menuErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrCatalogNotConfigured):
		return http.StatusServiceUnavailable, "The catalog service is not configured."
	case errors.Is(err, services.ErrUpstreamFetch):
		return http.StatusBadGateway, "The menu could not be loaded from the catalog service."
	default:
		return http.StatusInternalServerError, "The menu could not be loaded."
	}
}
