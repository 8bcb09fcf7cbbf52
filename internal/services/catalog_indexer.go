package services

import (
	"encoding/json"
	"strings"

	"cafe_storefront_backend/internal/models"
	"cafe_storefront_backend/pkg/utils"
)

// resolvePrice is the single conversion boundary from upstream integer
// minor units (cents) to decimal dollars. It must be applied exactly
// once per raw value, immediately after receipt from the catalog.
func resolvePrice(amount int64) float64 {
	return float64(amount) / 100
}

// catalogIndex holds the four lookup tables built from one catalog
// fetch. All tables are request-local and never mutated after indexing.
type catalogIndex struct {
	categoryNames map[string]string
	modifiers     map[string]models.Modifier
	imageURLs     map[string]string
	modifierLists map[string]models.ModifierList
}

// indexCatalog builds the lookup tables in two passes: leaf objects
// (categories, modifiers, images) first, then modifier lists, which
// need the modifier table to resolve id references. Malformed entries
// are skipped with a warning, never fatal.
func indexCatalog(objects []models.CatalogObject) catalogIndex {
	idx := catalogIndex{
		categoryNames: make(map[string]string),
		modifiers:     make(map[string]models.Modifier),
		imageURLs:     make(map[string]string),
		modifierLists: make(map[string]models.ModifierList),
	}

	for _, obj := range objects {
		switch obj.Type {
		case models.ObjectTypeCategory:
			if obj.CategoryData == nil || strings.TrimSpace(obj.CategoryData.Name) == "" {
				utils.LogWarn(nil, "Skipping category with no name", map[string]interface{}{"id": obj.ID})
				continue
			}
			idx.categoryNames[obj.ID] = strings.TrimSpace(obj.CategoryData.Name)
		case models.ObjectTypeModifier:
			modifier, ok := modifierFromObject(obj)
			if !ok {
				utils.LogWarn(nil, "Skipping malformed modifier", map[string]interface{}{"id": obj.ID})
				continue
			}
			idx.modifiers[obj.ID] = modifier
		case models.ObjectTypeImage:
			if obj.ImageData == nil || obj.ImageData.URL == "" {
				continue
			}
			idx.imageURLs[obj.ID] = obj.ImageData.URL
		}
	}

	for _, obj := range objects {
		if obj.Type != models.ObjectTypeModifierList {
			continue
		}
		if obj.ModifierListData == nil {
			utils.LogWarn(nil, "Skipping modifier list with no data", map[string]interface{}{"id": obj.ID})
			continue
		}
		selectionType := obj.ModifierListData.SelectionType
		if selectionType == "" {
			selectionType = models.SelectionTypeMultiple
		}
		idx.modifierLists[obj.ID] = models.ModifierList{
			ID:            obj.ID,
			Name:          obj.ModifierListData.Name,
			SelectionType: selectionType,
			// Required is item-level information, filled in by the
			// normalizer from each item's attachment record.
			Required:  false,
			Modifiers: resolveListModifiers(obj.ID, obj.ModifierListData.Modifiers, idx.modifiers),
		}
	}

	return idx
}

func modifierFromObject(obj models.CatalogObject) (models.Modifier, bool) {
	if obj.ModifierData == nil || obj.ModifierData.Name == "" {
		return models.Modifier{}, false
	}
	price := 0.0
	if obj.ModifierData.PriceMoney != nil {
		price = resolvePrice(obj.ModifierData.PriceMoney.Amount)
	}
	return models.Modifier{ID: obj.ID, Name: obj.ModifierData.Name, Price: price}, true
}

// The modifier references of a list arrive in one of three shapes:
// bare id strings, {"modifier_id": ...} wrappers, or fully embedded
// modifier objects. Extractors are tried in that order; an extractor
// that resolves nothing yields to the next one.
type modifierRefExtractor func(refs []json.RawMessage, modifiers map[string]models.Modifier) ([]models.Modifier, bool)

var modifierRefExtractors = []modifierRefExtractor{
	extractModifiersByBareID,
	extractModifiersByWrapperID,
	extractModifiersEmbedded,
}

func resolveListModifiers(listID string, refs []json.RawMessage, modifiers map[string]models.Modifier) []models.Modifier {
	if len(refs) == 0 {
		return []models.Modifier{}
	}
	for _, extract := range modifierRefExtractors {
		if resolved, ok := extract(refs, modifiers); ok {
			return resolved
		}
	}
	utils.LogWarn(nil, "No modifier references could be resolved for list", map[string]interface{}{"modifier_list_id": listID})
	return []models.Modifier{}
}

func extractModifiersByBareID(refs []json.RawMessage, modifiers map[string]models.Modifier) ([]models.Modifier, bool) {
	resolved := []models.Modifier{}
	matchedShape := false
	for _, ref := range refs {
		var id string
		if err := json.Unmarshal(ref, &id); err != nil || id == "" {
			continue
		}
		matchedShape = true
		if modifier, ok := modifiers[id]; ok {
			resolved = append(resolved, modifier)
		}
	}
	return resolved, matchedShape && len(resolved) > 0
}

func extractModifiersByWrapperID(refs []json.RawMessage, modifiers map[string]models.Modifier) ([]models.Modifier, bool) {
	resolved := []models.Modifier{}
	matchedShape := false
	for _, ref := range refs {
		var wrapper struct {
			ModifierID string `json:"modifier_id"`
		}
		if err := json.Unmarshal(ref, &wrapper); err != nil || wrapper.ModifierID == "" {
			continue
		}
		matchedShape = true
		if modifier, ok := modifiers[wrapper.ModifierID]; ok {
			resolved = append(resolved, modifier)
		}
	}
	return resolved, matchedShape && len(resolved) > 0
}

func extractModifiersEmbedded(refs []json.RawMessage, _ map[string]models.Modifier) ([]models.Modifier, bool) {
	resolved := []models.Modifier{}
	for _, ref := range refs {
		var obj models.CatalogObject
		if err := json.Unmarshal(ref, &obj); err != nil {
			continue
		}
		if modifier, ok := modifierFromObject(obj); ok {
			resolved = append(resolved, modifier)
		}
	}
	return resolved, len(resolved) > 0
}
