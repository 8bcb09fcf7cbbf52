package services

import (
	"sort"
	"strings"

	"cafe_storefront_backend/internal/models"
	"cafe_storefront_backend/pkg/utils"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// filterVisible applies the store-side visibility overrides: first any
// item whose source id is disabled, then any remaining item whose
// trimmed category name is disabled. The two passes only affect
// diagnostics; the surviving set is the same either way.
func filterVisible(items []models.MenuItem, disabledItemIDs, disabledCategoryNames map[string]struct{}) []models.MenuItem {
	afterItems := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if _, disabled := disabledItemIDs[item.SourceID]; disabled {
			utils.LogDebug("Item hidden by item-level override", map[string]interface{}{"source_id": item.SourceID})
			continue
		}
		afterItems = append(afterItems, item)
	}

	visible := make([]models.MenuItem, 0, len(afterItems))
	for _, item := range afterItems {
		if _, disabled := disabledCategoryNames[strings.TrimSpace(item.Category)]; disabled {
			utils.LogDebug("Item hidden by category-level override", map[string]interface{}{"source_id": item.SourceID, "category": item.Category})
			continue
		}
		visible = append(visible, item)
	}
	return visible
}

// aggregateCategories derives the category list strictly from the items
// that survived filtering, so a category with zero visible items never
// appears. Sorted ascending with a locale-aware collator, except
// "Uncategorized" always sorts last.
func aggregateCategories(filteredItems []models.MenuItem, disabledCategoryNames map[string]struct{}) []string {
	seen := make(map[string]struct{})
	categories := []string{}
	for _, item := range filteredItems {
		name := strings.TrimSpace(item.Category)
		if name == "" {
			continue
		}
		// Defensive re-check; filterVisible already removed these.
		if _, disabled := disabledCategoryNames[name]; disabled {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		categories = append(categories, name)
	}

	collator := collate.New(language.English)
	sort.Slice(categories, func(i, j int) bool {
		if categories[i] == uncategorizedName {
			return false
		}
		if categories[j] == uncategorizedName {
			return true
		}
		return collator.CompareString(categories[i], categories[j]) < 0
	})
	return categories
}
