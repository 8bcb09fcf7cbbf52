package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"cafe_storefront_backend/internal/models"
	"cafe_storefront_backend/internal/repositories"
	"cafe_storefront_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// AdminHandler owns the write side of the visibility-override and
// storefront-settings stores. The menu and availability pipelines only
// ever read them.
type AdminHandler struct {
	overrideRepo repositories.OverrideRepository
	settingsRepo repositories.SettingsRepository
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(or repositories.OverrideRepository, sr repositories.SettingsRepository) *AdminHandler {
	return &AdminHandler{overrideRepo: or, settingsRepo: sr}
}

// --- Disabled items ---

func (h *AdminHandler) ListDisabledItems(c *gin.Context) {
	items, err := h.overrideRepo.ListDisabledItems()
	if err != nil {
		utils.LogError(err, "ListDisabledItems: repository failure")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list disabled items.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "count": len(items)})
}

type disableItemRequest struct {
	SourceID string `json:"source_id" binding:"required"`
}

func (h *AdminHandler) AddDisabledItem(c *gin.Context) {
	var req disableItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if utils.IsEmpty(req.SourceID) {
		utils.RespondValidationFailed(c, "source_id cannot be blank")
		return
	}

	item, err := h.overrideRepo.AddDisabledItem(req.SourceID)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Item is already disabled.", err.Error()))
			return
		}
		utils.LogError(err, "AddDisabledItem: repository failure")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to disable item.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *AdminHandler) RemoveDisabledItem(c *gin.Context) {
	sourceID := c.Param("sourceId")
	if err := h.overrideRepo.RemoveDisabledItem(sourceID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Item is not disabled.", "No override found for "+sourceID))
			return
		}
		utils.LogError(err, "RemoveDisabledItem: repository failure")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to re-enable item.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item re-enabled."})
}

// --- Disabled categories ---

func (h *AdminHandler) ListDisabledCategories(c *gin.Context) {
	categories, err := h.overrideRepo.ListDisabledCategories()
	if err != nil {
		utils.LogError(err, "ListDisabledCategories: repository failure")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to list disabled categories.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories, "count": len(categories)})
}

type disableCategoryRequest struct {
	CategoryName string `json:"category_name" binding:"required"`
}

func (h *AdminHandler) AddDisabledCategory(c *gin.Context) {
	var req disableCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if utils.IsEmpty(req.CategoryName) {
		utils.RespondValidationFailed(c, "category_name cannot be blank")
		return
	}

	category, err := h.overrideRepo.AddDisabledCategory(req.CategoryName)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicateKey) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusConflict, utils.ErrCodeConflict, "Category is already disabled.", err.Error()))
			return
		}
		utils.LogError(err, "AddDisabledCategory: repository failure")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to disable category.", "Internal error"))
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *AdminHandler) RemoveDisabledCategory(c *gin.Context) {
	name := strings.TrimSpace(c.Param("name"))
	if err := h.overrideRepo.RemoveDisabledCategory(name); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusNotFound, utils.ErrCodeNotFound, "Category is not disabled.", "No override found for "+name))
			return
		}
		utils.LogError(err, "RemoveDisabledCategory: repository failure")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to re-enable category.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Category re-enabled."})
}

// --- Ordering hours & timezone ---

func (h *AdminHandler) GetOrderingHours(c *gin.Context) {
	record, err := h.settingsRepo.GetOrderingHours()
	if err != nil {
		utils.LogError(err, "GetOrderingHours: repository failure")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load ordering hours.", "Internal error"))
		return
	}
	timezone, err := h.settingsRepo.GetTimezone()
	if err != nil {
		utils.LogError(err, "GetOrderingHours: timezone lookup failure")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to load ordering hours.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"hours": record, "timezone": timezone})
}

// UpdateOrderingHours replaces the full weekly record. Unknown keys in
// the payload are ignored by binding; omitted slots become unset.
func (h *AdminHandler) UpdateOrderingHours(c *gin.Context) {
	var record models.OrderingHoursRecord
	if err := c.ShouldBindJSON(&record); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if err := h.settingsRepo.UpdateOrderingHours(&record); err != nil {
		utils.LogError(err, "UpdateOrderingHours: repository failure")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update ordering hours.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"hours": record, "message": "Ordering hours updated."})
}

type timezoneRequest struct {
	Timezone string `json:"timezone" binding:"required"`
}

func (h *AdminHandler) SetTimezone(c *gin.Context) {
	var req timezoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationFailed(c, err.Error())
		return
	}
	if _, err := time.LoadLocation(req.Timezone); err != nil {
		utils.RespondValidationFailed(c, "timezone must be a valid IANA zone name")
		return
	}
	if err := h.settingsRepo.SetTimezone(req.Timezone); err != nil {
		utils.LogError(err, "SetTimezone: repository failure")
		utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to update timezone.", "Internal error"))
		return
	}
	c.JSON(http.StatusOK, gin.H{"timezone": req.Timezone, "message": "Timezone updated."})
}
