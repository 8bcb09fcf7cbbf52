package models

import "encoding/json"

// Object type discriminators used by the catalog service.
const (
	ObjectTypeItem          = "ITEM"
	ObjectTypeCategory      = "CATEGORY"
	ObjectTypeItemVariation = "ITEM_VARIATION"
	ObjectTypeModifierList  = "MODIFIER_LIST"
	ObjectTypeModifier      = "MODIFIER"
	ObjectTypeImage         = "IMAGE"
)

// Modifier list selection cardinalities.
const (
	SelectionTypeSingle   = "SINGLE"
	SelectionTypeMultiple = "MULTIPLE"
)

// CatalogObject is one node of the upstream catalog object graph,
// discriminated by Type. At most one of the *Data pointers is set.
type CatalogObject struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	IsDeleted bool   `json:"is_deleted,omitempty"`

	ItemData          *CatalogItemData          `json:"item_data,omitempty"`
	CategoryData      *CatalogCategoryData      `json:"category_data,omitempty"`
	ItemVariationData *CatalogItemVariationData `json:"item_variation_data,omitempty"`
	ModifierListData  *CatalogModifierListData  `json:"modifier_list_data,omitempty"`
	ModifierData      *CatalogModifierData      `json:"modifier_data,omitempty"`
	ImageData         *CatalogImageData         `json:"image_data,omitempty"`
}

// CatalogObjectRef is a bare reference to another catalog object.
type CatalogObjectRef struct {
	ID string `json:"id"`
}

// CatalogItemData carries the item payload of a CatalogObject.
//
// ModifierListInfo and ModifierLists arrive in several shapes across
// upstream API versions, so both are kept raw and decoded by the
// normalizer's extractor chain.
type CatalogItemData struct {
	Name             string             `json:"name"`
	Description      string             `json:"description,omitempty"`
	CategoryID       string             `json:"category_id,omitempty"`
	Categories       []CatalogObjectRef `json:"categories,omitempty"`
	Variations       []CatalogObject    `json:"variations,omitempty"`
	ImageIDs         []string           `json:"image_ids,omitempty"`
	ModifierListInfo json.RawMessage    `json:"modifier_list_info,omitempty"`
	ModifierLists    json.RawMessage    `json:"modifier_lists,omitempty"`
}

// CatalogCategoryData carries the category payload of a CatalogObject.
type CatalogCategoryData struct {
	Name string `json:"name"`
}

// Money is an upstream money value in integer minor units (cents).
type Money struct {
	Amount   int64  `json:"amount"`
	Currency string `json:"currency,omitempty"`
}

// CatalogItemVariationData carries the variation payload of a CatalogObject.
type CatalogItemVariationData struct {
	Name       string   `json:"name,omitempty"`
	PriceMoney *Money   `json:"price_money,omitempty"`
	ImageIDs   []string `json:"image_ids,omitempty"`
}

// CatalogModifierListData carries the modifier-list payload of a
// CatalogObject. Entries of Modifiers may be bare id strings,
// {"modifier_id": ...} wrappers, or fully embedded modifier objects.
type CatalogModifierListData struct {
	Name          string            `json:"name"`
	SelectionType string            `json:"selection_type,omitempty"`
	Modifiers     []json.RawMessage `json:"modifiers,omitempty"`
}

// CatalogModifierData carries the modifier payload of a CatalogObject.
type CatalogModifierData struct {
	Name       string `json:"name"`
	PriceMoney *Money `json:"price_money,omitempty"`
}

// CatalogImageData carries the image payload of a CatalogObject.
type CatalogImageData struct {
	URL string `json:"url"`
}

// ModifierListInfo is the per-item attachment record for a modifier list.
// Upstream emits snake_case keys, while older export payloads use
// camelCase; UnmarshalJSON accepts both spellings.
type ModifierListInfo struct {
	ModifierListID       string
	Enabled              bool
	MinSelectedModifiers int
	MaxSelectedModifiers int
}

func (m *ModifierListInfo) UnmarshalJSON(data []byte) error {
	var raw struct {
		ModifierListID        string `json:"modifier_list_id"`
		ModifierListIDCamel   string `json:"modifierListId"`
		Enabled               *bool  `json:"enabled"`
		MinSelected           *int   `json:"min_selected_modifiers"`
		MinSelectedCamel      *int   `json:"minSelectedModifiers"`
		MaxSelected           *int   `json:"max_selected_modifiers"`
		MaxSelectedCamel      *int   `json:"maxSelectedModifiers"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	m.ModifierListID = raw.ModifierListID
	if m.ModifierListID == "" {
		m.ModifierListID = raw.ModifierListIDCamel
	}
	// An absent enabled flag counts as not enabled, matching how the
	// required heuristic treats attachments.
	if raw.Enabled != nil {
		m.Enabled = *raw.Enabled
	}
	if raw.MinSelected != nil {
		m.MinSelectedModifiers = *raw.MinSelected
	} else if raw.MinSelectedCamel != nil {
		m.MinSelectedModifiers = *raw.MinSelectedCamel
	}
	if raw.MaxSelected != nil {
		m.MaxSelectedModifiers = *raw.MaxSelected
	} else if raw.MaxSelectedCamel != nil {
		m.MaxSelectedModifiers = *raw.MaxSelectedCamel
	}
	return nil
}
