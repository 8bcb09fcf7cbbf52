package models

// MenuItem is a flattened, sellable menu entry derived fresh per request.
// Prices are decimal dollars, never upstream minor units.
type MenuItem struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   *string        `json:"description"`
	Price         float64        `json:"price"`
	Category      string         `json:"category"`
	CategoryID    *string        `json:"categoryId"`
	CategoryIDs   []string       `json:"categoryIds,omitempty"`
	ImageURL      *string        `json:"imageUrl"`
	Available     bool           `json:"available"`
	SourceID      string         `json:"sourceId"`
	ModifierLists []ModifierList `json:"modifierLists,omitempty"`
}

// ModifierList is a resolved group of add-ons attached to a MenuItem.
type ModifierList struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	SelectionType string     `json:"selectionType"`
	Required      bool       `json:"required"`
	Modifiers     []Modifier `json:"modifiers"`
}

// Modifier is a resolved add-on choice with its decimal price.
type Modifier struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// MenuResponse is the JSON envelope returned by the menu endpoint.
// On failure Items is empty (never null), Error is true and Message is set.
type MenuResponse struct {
	Items      []MenuItem `json:"items"`
	Categories []string   `json:"categories"`
	Source     string     `json:"source"`
	Count      int        `json:"count"`
	Warning    string     `json:"warning,omitempty"`
	Error      bool       `json:"error,omitempty"`
	Message    string     `json:"message,omitempty"`
}
