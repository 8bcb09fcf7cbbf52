package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cafe_storefront_backend/internal/models"
)

func menuItem(sourceID, category string) models.MenuItem {
	return models.MenuItem{ID: sourceID, SourceID: sourceID, Name: sourceID, Category: category, Available: true}
}

func sourceIDs(items []models.MenuItem) []string {
	ids := make([]string, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.SourceID)
	}
	return ids
}

func TestFilterVisible_RemovesDisabledItems(t *testing.T) {
	items := []models.MenuItem{
		menuItem("item-1", "Coffee"),
		menuItem("item-2", "Coffee"),
		menuItem("item-3", "Food"),
	}
	disabled := map[string]struct{}{"item-2": {}}

	visible := filterVisible(items, disabled, nil)
	assert.Equal(t, []string{"item-1", "item-3"}, sourceIDs(visible))
}

func TestFilterVisible_RemovesDisabledCategories(t *testing.T) {
	items := []models.MenuItem{
		menuItem("item-1", "Coffee"),
		menuItem("item-2", "  Coffee  "),
		menuItem("item-3", "Food"),
	}
	disabled := map[string]struct{}{"Coffee": {}}

	visible := filterVisible(items, nil, disabled)
	assert.Equal(t, []string{"item-3"}, sourceIDs(visible), "category match is on the trimmed name")
}

func TestFilterVisible_NoOverridesKeepsEverything(t *testing.T) {
	items := []models.MenuItem{menuItem("item-1", "Coffee"), menuItem("item-2", "Food")}
	visible := filterVisible(items, map[string]struct{}{}, map[string]struct{}{})
	assert.Len(t, visible, 2)
}

func TestAggregateCategories_DedupesAndSorts(t *testing.T) {
	items := []models.MenuItem{
		menuItem("item-1", "Pastries"),
		menuItem("item-2", "Coffee"),
		menuItem("item-3", "Coffee"),
		menuItem("item-4", " Breakfast "),
	}

	categories := aggregateCategories(items, nil)
	assert.Equal(t, []string{"Breakfast", "Coffee", "Pastries"}, categories)
}

func TestAggregateCategories_UncategorizedSortsLast(t *testing.T) {
	items := []models.MenuItem{
		menuItem("item-1", "Uncategorized"),
		menuItem("item-2", "Zucchini Bar"),
		menuItem("item-3", "Coffee"),
	}

	categories := aggregateCategories(items, nil)
	assert.Equal(t, []string{"Coffee", "Zucchini Bar", "Uncategorized"}, categories)
}

func TestAggregateCategories_SkipsBlankAndDisabled(t *testing.T) {
	items := []models.MenuItem{
		menuItem("item-1", "   "),
		menuItem("item-2", "Coffee"),
		menuItem("item-3", "Seasonal"),
	}

	categories := aggregateCategories(items, map[string]struct{}{"Seasonal": {}})
	assert.Equal(t, []string{"Coffee"}, categories)
}

func TestAggregateCategories_EmptyInputYieldsEmptySlice(t *testing.T) {
	categories := aggregateCategories(nil, nil)
	assert.NotNil(t, categories)
	assert.Empty(t, categories)
}
