package services

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cafe_storefront_backend/internal/models"
)

func rawMessages(values ...string) []json.RawMessage {
	out := make([]json.RawMessage, 0, len(values))
	for _, v := range values {
		out = append(out, json.RawMessage(v))
	}
	return out
}

func TestResolvePrice_ConvertsMinorUnitsOnce(t *testing.T) {
	assert.Equal(t, 4.5, resolvePrice(450))
	assert.Equal(t, 0.0, resolvePrice(0))
	assert.Equal(t, 123.45, resolvePrice(12345))
}

func TestIndexCatalog_BuildsLeafTables(t *testing.T) {
	objects := []models.CatalogObject{
		{Type: models.ObjectTypeCategory, ID: "cat-1", CategoryData: &models.CatalogCategoryData{Name: "  Coffee  "}},
		{Type: models.ObjectTypeCategory, ID: "cat-bad", CategoryData: &models.CatalogCategoryData{Name: "   "}},
		{Type: models.ObjectTypeModifier, ID: "mod-1", ModifierData: &models.CatalogModifierData{Name: "Oat milk", PriceMoney: &models.Money{Amount: 50}}},
		{Type: models.ObjectTypeModifier, ID: "mod-free", ModifierData: &models.CatalogModifierData{Name: "Regular milk"}},
		{Type: models.ObjectTypeImage, ID: "img-1", ImageData: &models.CatalogImageData{URL: "https://cdn.example.com/latte.jpg"}},
	}

	idx := indexCatalog(objects)

	assert.Equal(t, "Coffee", idx.categoryNames["cat-1"])
	assert.NotContains(t, idx.categoryNames, "cat-bad")

	require.Contains(t, idx.modifiers, "mod-1")
	assert.Equal(t, 0.5, idx.modifiers["mod-1"].Price)
	assert.Equal(t, 0.0, idx.modifiers["mod-free"].Price)

	assert.Equal(t, "https://cdn.example.com/latte.jpg", idx.imageURLs["img-1"])
}

func TestIndexCatalog_ModifierListWithBareIDRefs(t *testing.T) {
	objects := []models.CatalogObject{
		{Type: models.ObjectTypeModifier, ID: "mod-1", ModifierData: &models.CatalogModifierData{Name: "Oat milk", PriceMoney: &models.Money{Amount: 50}}},
		{Type: models.ObjectTypeModifierList, ID: "list-1", ModifierListData: &models.CatalogModifierListData{
			Name:          "Milk type",
			SelectionType: models.SelectionTypeSingle,
			Modifiers:     rawMessages(`"mod-1"`, `"mod-unknown"`),
		}},
	}

	idx := indexCatalog(objects)

	list, ok := idx.modifierLists["list-1"]
	require.True(t, ok)
	assert.Equal(t, "Milk type", list.Name)
	assert.Equal(t, models.SelectionTypeSingle, list.SelectionType)
	assert.False(t, list.Required, "required is item-level information")
	require.Len(t, list.Modifiers, 1)
	assert.Equal(t, "mod-1", list.Modifiers[0].ID)
}

func TestIndexCatalog_ModifierListWithWrapperRefs(t *testing.T) {
	objects := []models.CatalogObject{
		{Type: models.ObjectTypeModifier, ID: "mod-2", ModifierData: &models.CatalogModifierData{Name: "Extra shot", PriceMoney: &models.Money{Amount: 75}}},
		{Type: models.ObjectTypeModifierList, ID: "list-2", ModifierListData: &models.CatalogModifierListData{
			Name:      "Extras",
			Modifiers: rawMessages(`{"modifier_id":"mod-2"}`),
		}},
	}

	idx := indexCatalog(objects)

	list := idx.modifierLists["list-2"]
	require.Len(t, list.Modifiers, 1)
	assert.Equal(t, "Extra shot", list.Modifiers[0].Name)
	assert.Equal(t, 0.75, list.Modifiers[0].Price)
}

func TestIndexCatalog_ModifierListWithEmbeddedObjects(t *testing.T) {
	embedded := `{"type":"MODIFIER","id":"mod-3","modifier_data":{"name":"Vanilla syrup","price_money":{"amount":60,"currency":"AUD"}}}`
	objects := []models.CatalogObject{
		{Type: models.ObjectTypeModifierList, ID: "list-3", ModifierListData: &models.CatalogModifierListData{
			Name:      "Syrups",
			Modifiers: rawMessages(embedded),
		}},
	}

	idx := indexCatalog(objects)

	list := idx.modifierLists["list-3"]
	require.Len(t, list.Modifiers, 1)
	assert.Equal(t, "Vanilla syrup", list.Modifiers[0].Name)
	assert.Equal(t, 0.6, list.Modifiers[0].Price)
}

func TestIndexCatalog_UnresolvableRefsYieldEmptyModifiers(t *testing.T) {
	objects := []models.CatalogObject{
		{Type: models.ObjectTypeModifierList, ID: "list-4", ModifierListData: &models.CatalogModifierListData{
			Name:      "Ghost list",
			Modifiers: rawMessages(`"mod-missing"`, `{"modifier_id":"also-missing"}`),
		}},
	}

	idx := indexCatalog(objects)

	list, ok := idx.modifierLists["list-4"]
	require.True(t, ok, "a list with dangling refs is kept, not dropped")
	assert.Empty(t, list.Modifiers)
}

func TestIndexCatalog_DefaultsSelectionTypeToMultiple(t *testing.T) {
	objects := []models.CatalogObject{
		{Type: models.ObjectTypeModifierList, ID: "list-5", ModifierListData: &models.CatalogModifierListData{Name: "Toppings"}},
	}

	idx := indexCatalog(objects)
	assert.Equal(t, models.SelectionTypeMultiple, idx.modifierLists["list-5"].SelectionType)
}
