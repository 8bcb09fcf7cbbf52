package services

import (
	"encoding/json"
	"strings"

	"cafe_storefront_backend/internal/models"
	"cafe_storefront_backend/pkg/utils"
)

// uncategorizedName is the display category for items whose category
// references cannot be resolved.
const uncategorizedName = "Uncategorized"

// normalizeItem assembles one MenuItem from a raw catalog item and the
// request's lookup tables. Items are never dropped here: a missing
// price surfaces as 0 and a missing category as "Uncategorized", so
// misconfigured items stay visible for staff to notice.
func normalizeItem(obj models.CatalogObject, idx catalogIndex) *models.MenuItem {
	if obj.ItemData == nil {
		return nil
	}
	item := obj.ItemData

	categoryName, categoryID, categoryIDs := resolveCategory(item, idx.categoryNames)
	price := resolveItemPrice(obj.ID, item)

	menuItem := &models.MenuItem{
		ID:            obj.ID,
		Name:          item.Name,
		Description:   optionalString(item.Description),
		Price:         price,
		Category:      categoryName,
		CategoryID:    categoryID,
		CategoryIDs:   categoryIDs,
		ImageURL:      resolveImage(item, idx.imageURLs),
		Available:     !obj.IsDeleted,
		SourceID:      obj.ID,
		ModifierLists: resolveItemModifierLists(item, idx.modifierLists),
	}
	return menuItem
}

// resolveCategory resolves the item's category reference(s). The first
// resolved name is used for display; all referenced ids are retained.
func resolveCategory(item *models.CatalogItemData, categoryNames map[string]string) (string, *string, []string) {
	var ids []string
	for _, ref := range item.Categories {
		if ref.ID != "" {
			ids = append(ids, ref.ID)
		}
	}
	if len(ids) == 0 && item.CategoryID != "" {
		ids = []string{item.CategoryID}
	}

	for _, id := range ids {
		if name, ok := categoryNames[id]; ok && strings.TrimSpace(name) != "" {
			resolvedID := id
			return strings.TrimSpace(name), &resolvedID, ids
		}
	}
	return uncategorizedName, nil, ids
}

// resolveItemPrice takes the first variation's price. An item with no
// priced variation is surfaced at 0, recorded as a diagnostic only.
func resolveItemPrice(itemID string, item *models.CatalogItemData) float64 {
	for _, variation := range item.Variations {
		if variation.ItemVariationData == nil {
			continue
		}
		if variation.ItemVariationData.PriceMoney != nil {
			return resolvePrice(variation.ItemVariationData.PriceMoney.Amount)
		}
		break
	}
	utils.LogWarn(nil, "Item has no priced variation, surfacing at price 0", map[string]interface{}{"item_id": itemID})
	return 0
}

func resolveImage(item *models.CatalogItemData, imageURLs map[string]string) *string {
	imageIDs := item.ImageIDs
	if len(imageIDs) == 0 {
		for _, variation := range item.Variations {
			if variation.ItemVariationData != nil && len(variation.ItemVariationData.ImageIDs) > 0 {
				imageIDs = variation.ItemVariationData.ImageIDs
				break
			}
		}
	}
	for _, id := range imageIDs {
		if url, ok := imageURLs[id]; ok {
			return &url
		}
	}
	return nil
}

// resolveItemModifierLists clones each attached modifier list and
// computes its required flag. An item with no attachments yields nil
// (omitted from JSON), never an empty slice.
//
// Required is a heuristic: a list is required when it demands at least
// one selection, or when it is an enabled single-choice list. The
// second clause also marks single-choice optional lists required;
// kept pending product clarification.
func resolveItemModifierLists(item *models.CatalogItemData, modifierLists map[string]models.ModifierList) []models.ModifierList {
	infos := extractModifierListInfo(item)
	if len(infos) == 0 {
		return nil
	}

	var resolved []models.ModifierList
	for _, info := range infos {
		list, ok := modifierLists[info.ModifierListID]
		if !ok {
			utils.LogWarn(nil, "Item references unknown modifier list", map[string]interface{}{"modifier_list_id": info.ModifierListID})
			continue
		}
		list.Required = info.MinSelectedModifiers > 0 ||
			(info.Enabled && list.SelectionType == models.SelectionTypeSingle)
		resolved = append(resolved, list)
	}
	return resolved
}

// The per-item modifier-list attachments arrive in one of three shapes:
// an object wrapping an array of attachment records, a bare array of
// the same, or a separate modifier_lists array. Extractors are tried
// in that order.
type listInfoExtractor func(item *models.CatalogItemData) ([]models.ModifierListInfo, bool)

var listInfoExtractors = []listInfoExtractor{
	extractInfoFromWrappedObject,
	extractInfoFromBareArray,
	extractInfoFromModifierLists,
}

func extractModifierListInfo(item *models.CatalogItemData) []models.ModifierListInfo {
	for _, extract := range listInfoExtractors {
		if infos, ok := extract(item); ok {
			return infos
		}
	}
	return nil
}

func extractInfoFromWrappedObject(item *models.CatalogItemData) ([]models.ModifierListInfo, bool) {
	if len(item.ModifierListInfo) == 0 {
		return nil, false
	}
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(item.ModifierListInfo, &wrapper); err != nil {
		return nil, false
	}
	for _, raw := range wrapper {
		if infos, ok := decodeInfoArray(raw); ok {
			return infos, true
		}
	}
	return nil, false
}

func extractInfoFromBareArray(item *models.CatalogItemData) ([]models.ModifierListInfo, bool) {
	if len(item.ModifierListInfo) == 0 {
		return nil, false
	}
	return decodeInfoArray(item.ModifierListInfo)
}

func extractInfoFromModifierLists(item *models.CatalogItemData) ([]models.ModifierListInfo, bool) {
	if len(item.ModifierLists) == 0 {
		return nil, false
	}
	return decodeInfoArray(item.ModifierLists)
}

func decodeInfoArray(raw json.RawMessage) ([]models.ModifierListInfo, bool) {
	var infos []models.ModifierListInfo
	if err := json.Unmarshal(raw, &infos); err != nil {
		return nil, false
	}
	usable := infos[:0]
	for _, info := range infos {
		if info.ModifierListID != "" {
			usable = append(usable, info)
		}
	}
	if len(usable) == 0 {
		return nil, false
	}
	return usable, true
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
