package models

// Item types orderable through the storefront.
const (
	ItemTypeFood   = "food"
	ItemTypeDrinks = "drinks"
	ItemTypeCombo  = "combo"
)

// OrderingHoursRecord holds one free-text weekly hours string per
// day/item-type pair, keyed {day}_{itemType}_ordering_hours in storage.
// A nil field means no hours configured for that slot; a value is either
// "Closed" or a range string such as "7am - 5pm" or "07:00 - 17:00".
type OrderingHoursRecord struct {
	MondayFood    *string `json:"monday_food_ordering_hours"`
	TuesdayFood   *string `json:"tuesday_food_ordering_hours"`
	WednesdayFood *string `json:"wednesday_food_ordering_hours"`
	ThursdayFood  *string `json:"thursday_food_ordering_hours"`
	FridayFood    *string `json:"friday_food_ordering_hours"`
	SaturdayFood  *string `json:"saturday_food_ordering_hours"`
	SundayFood    *string `json:"sunday_food_ordering_hours"`

	MondayDrinks    *string `json:"monday_drinks_ordering_hours"`
	TuesdayDrinks   *string `json:"tuesday_drinks_ordering_hours"`
	WednesdayDrinks *string `json:"wednesday_drinks_ordering_hours"`
	ThursdayDrinks  *string `json:"thursday_drinks_ordering_hours"`
	FridayDrinks    *string `json:"friday_drinks_ordering_hours"`
	SaturdayDrinks  *string `json:"saturday_drinks_ordering_hours"`
	SundayDrinks    *string `json:"sunday_drinks_ordering_hours"`

	MondayCombo    *string `json:"monday_combo_ordering_hours"`
	TuesdayCombo   *string `json:"tuesday_combo_ordering_hours"`
	WednesdayCombo *string `json:"wednesday_combo_ordering_hours"`
	ThursdayCombo  *string `json:"thursday_combo_ordering_hours"`
	FridayCombo    *string `json:"friday_combo_ordering_hours"`
	SaturdayCombo  *string `json:"saturday_combo_ordering_hours"`
	SundayCombo    *string `json:"sunday_combo_ordering_hours"`
}

// HoursFor returns the configured hours string for a day name
// (lowercase, e.g. "monday") and item type, or nil when unset.
func (r *OrderingHoursRecord) HoursFor(day, itemType string) *string {
	if r == nil {
		return nil
	}
	switch day + "_" + itemType {
	case "monday_" + ItemTypeFood:
		return r.MondayFood
	case "tuesday_" + ItemTypeFood:
		return r.TuesdayFood
	case "wednesday_" + ItemTypeFood:
		return r.WednesdayFood
	case "thursday_" + ItemTypeFood:
		return r.ThursdayFood
	case "friday_" + ItemTypeFood:
		return r.FridayFood
	case "saturday_" + ItemTypeFood:
		return r.SaturdayFood
	case "sunday_" + ItemTypeFood:
		return r.SundayFood
	case "monday_" + ItemTypeDrinks:
		return r.MondayDrinks
	case "tuesday_" + ItemTypeDrinks:
		return r.TuesdayDrinks
	case "wednesday_" + ItemTypeDrinks:
		return r.WednesdayDrinks
	case "thursday_" + ItemTypeDrinks:
		return r.ThursdayDrinks
	case "friday_" + ItemTypeDrinks:
		return r.FridayDrinks
	case "saturday_" + ItemTypeDrinks:
		return r.SaturdayDrinks
	case "sunday_" + ItemTypeDrinks:
		return r.SundayDrinks
	case "monday_" + ItemTypeCombo:
		return r.MondayCombo
	case "tuesday_" + ItemTypeCombo:
		return r.TuesdayCombo
	case "wednesday_" + ItemTypeCombo:
		return r.WednesdayCombo
	case "thursday_" + ItemTypeCombo:
		return r.ThursdayCombo
	case "friday_" + ItemTypeCombo:
		return r.FridayCombo
	case "saturday_" + ItemTypeCombo:
		return r.SaturdayCombo
	case "sunday_" + ItemTypeCombo:
		return r.SundayCombo
	}
	return nil
}

// WeeklyHours is the per-type view of an OrderingHoursRecord returned by
// the availability endpoint.
type WeeklyHours struct {
	Monday    *string `json:"monday"`
	Tuesday   *string `json:"tuesday"`
	Wednesday *string `json:"wednesday"`
	Thursday  *string `json:"thursday"`
	Friday    *string `json:"friday"`
	Saturday  *string `json:"saturday"`
	Sunday    *string `json:"sunday"`
}

// WeekFor projects the record onto a single item type.
func (r *OrderingHoursRecord) WeekFor(itemType string) WeeklyHours {
	return WeeklyHours{
		Monday:    r.HoursFor("monday", itemType),
		Tuesday:   r.HoursFor("tuesday", itemType),
		Wednesday: r.HoursFor("wednesday", itemType),
		Thursday:  r.HoursFor("thursday", itemType),
		Friday:    r.HoursFor("friday", itemType),
		Saturday:  r.HoursFor("saturday", itemType),
		Sunday:    r.HoursFor("sunday", itemType),
	}
}

// TimeRange is a parsed ordering window in minutes since midnight,
// both bounds in [0,1440). End < Start means the window spans midnight.
type TimeRange struct {
	StartMinutes int
	EndMinutes   int
}

// AvailabilityStatus is the resolver verdict for one item type.
type AvailabilityStatus struct {
	IsAvailable     bool    `json:"isOrderingAvailable"`
	Message         string  `json:"message"`
	CurrentDayHours *string `json:"currentDayHours"`
}
