package services

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"cafe_storefront_backend/internal/models"
	"cafe_storefront_backend/internal/repositories"
	"cafe_storefront_backend/pkg/utils"
)

// --- Custom Service Errors for Availability ---
var (
	ErrUnknownItemType = errors.New("unknown item type")
)

const orderingOpenMessage = "Ordering is currently available."

var (
	twelveHourPattern     = regexp.MustCompile(`^(\d{1,2})(?::(\d{2}))?(am|pm)$`)
	twentyFourHourPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// ParseTimeRange parses a configured hours string into a TimeRange.
// nil means no window: unset, "Closed" (any case), or malformed input.
// Malformed strings degrade to closed with a logged warning; blocking
// orders is the safe default, never throwing.
func ParseTimeRange(raw string) *models.TimeRange {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.EqualFold(trimmed, "closed") {
		return nil
	}

	tokens := strings.Split(trimmed, "-")
	if len(tokens) != 2 {
		utils.LogWarn(nil, "Malformed ordering hours range, treating as closed", map[string]interface{}{"value": raw})
		return nil
	}

	start, okStart := parseTimeToken(tokens[0])
	end, okEnd := parseTimeToken(tokens[1])
	if !okStart || !okEnd {
		utils.LogWarn(nil, "Malformed ordering hours token, treating as closed", map[string]interface{}{"value": raw})
		return nil
	}
	return &models.TimeRange{StartMinutes: start, EndMinutes: end}
}

// parseTimeToken parses "H(:MM)?(am|pm)" (case-insensitive) or "HH:MM"
// (24-hour) into minutes since midnight.
func parseTimeToken(token string) (int, bool) {
	normalized := strings.ToLower(strings.ReplaceAll(token, " ", ""))

	if m := twelveHourPattern.FindStringSubmatch(normalized); m != nil {
		hour := atoiDigits(m[1])
		minute := atoiDigits(m[2])
		if hour < 1 || hour > 12 || minute > 59 {
			return 0, false
		}
		if hour == 12 {
			hour = 0
		}
		if m[3] == "pm" {
			hour += 12
		}
		return hour*60 + minute, true
	}

	if m := twentyFourHourPattern.FindStringSubmatch(normalized); m != nil {
		hour := atoiDigits(m[1])
		minute := atoiDigits(m[2])
		if hour > 23 || minute > 59 {
			return 0, false
		}
		return hour*60 + minute, true
	}

	return 0, false
}

// atoiDigits converts an all-digit (possibly empty) submatch. The
// patterns guarantee digits only.
func atoiDigits(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

// isWithinRange reports whether a minutes-since-midnight instant falls
// inside the window. End before start means the window spans midnight.
func isWithinRange(minutes int, r models.TimeRange) bool {
	if r.EndMinutes >= r.StartMinutes {
		return minutes >= r.StartMinutes && minutes <= r.EndMinutes
	}
	return minutes >= r.StartMinutes || minutes <= r.EndMinutes
}

// CheckOrderingAvailabilityByType evaluates the weekly hours record for
// one item type at the given instant, in the business time zone.
func CheckOrderingAvailabilityByType(hours *models.OrderingHoursRecord, itemType string, loc *time.Location, now time.Time) models.AvailabilityStatus {
	local := now.In(loc)
	dayLabel := local.Weekday().String()
	dayName := strings.ToLower(dayLabel)
	typeLabel := titleCase(itemType)

	raw := hours.HoursFor(dayName, itemType)
	status := models.AvailabilityStatus{CurrentDayHours: raw}

	var window *models.TimeRange
	if raw != nil {
		window = ParseTimeRange(*raw)
	}
	if window == nil {
		status.Message = fmt.Sprintf("%s ordering is closed on %s.", typeLabel, dayLabel)
		return status
	}

	minutes := local.Hour()*60 + local.Minute()
	if isWithinRange(minutes, *window) {
		status.IsAvailable = true
		status.Message = orderingOpenMessage
		return status
	}

	status.Message = fmt.Sprintf("%s ordering is currently closed. Ordering hours: %s.", typeLabel, strings.TrimSpace(*raw))
	return status
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// --- DTOs ---

// AvailabilityOverview is the aggregate availability response.
type AvailabilityOverview struct {
	Hours    map[string]models.WeeklyHours `json:"hours"`
	Food     models.AvailabilityStatus     `json:"food"`
	Drinks   models.AvailabilityStatus     `json:"drinks"`
	Timezone string                        `json:"timezone"`
}

// TypedAvailability is the flattened single-type response.
type TypedAvailability struct {
	models.AvailabilityStatus
	ItemType string `json:"itemType"`
	Timezone string `json:"timezone"`
}

// --- AvailabilityService Interface ---
type AvailabilityService interface {
	// GetOverview reports availability for food and drinks plus the raw
	// weekly hour strings. It never fails: settings-store errors fail
	// open to available, unlike per-field parse errors which fail
	// closed inside the resolver. Both defaults are deliberate.
	GetOverview() *AvailabilityOverview
	// GetByType reports availability for one item type. The only error
	// is an unknown item type.
	GetByType(itemType string) (*TypedAvailability, error)
}

// --- availabilityService Implementation ---
type availabilityService struct {
	settings        repositories.SettingsRepository
	defaultTimezone string
	now             func() time.Time
}

// NewAvailabilityService creates a new instance of AvailabilityService.
func NewAvailabilityService(settings repositories.SettingsRepository, defaultTimezone string) AvailabilityService {
	return &availabilityService{
		settings:        settings,
		defaultTimezone: defaultTimezone,
		now:             time.Now,
	}
}

func (s *availabilityService) GetOverview() *AvailabilityOverview {
	record, loc, tzName, ok := s.loadSettings()
	if !ok {
		// Fail open: a broken settings lookup must not block revenue.
		return &AvailabilityOverview{
			Hours: map[string]models.WeeklyHours{
				models.ItemTypeFood:   {},
				models.ItemTypeDrinks: {},
			},
			Food:     models.AvailabilityStatus{IsAvailable: true, Message: orderingOpenMessage},
			Drinks:   models.AvailabilityStatus{IsAvailable: true, Message: orderingOpenMessage},
			Timezone: s.defaultTimezone,
		}
	}

	now := s.now()
	return &AvailabilityOverview{
		Hours: map[string]models.WeeklyHours{
			models.ItemTypeFood:   record.WeekFor(models.ItemTypeFood),
			models.ItemTypeDrinks: record.WeekFor(models.ItemTypeDrinks),
		},
		Food:     CheckOrderingAvailabilityByType(record, models.ItemTypeFood, loc, now),
		Drinks:   CheckOrderingAvailabilityByType(record, models.ItemTypeDrinks, loc, now),
		Timezone: tzName,
	}
}

func (s *availabilityService) GetByType(itemType string) (*TypedAvailability, error) {
	switch itemType {
	case models.ItemTypeFood, models.ItemTypeDrinks, models.ItemTypeCombo:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownItemType, itemType)
	}

	record, loc, tzName, ok := s.loadSettings()
	if !ok {
		return &TypedAvailability{
			AvailabilityStatus: models.AvailabilityStatus{IsAvailable: true, Message: orderingOpenMessage},
			ItemType:           itemType,
			Timezone:           s.defaultTimezone,
		}, nil
	}

	status := CheckOrderingAvailabilityByType(record, itemType, loc, s.now())
	return &TypedAvailability{
		AvailabilityStatus: status,
		ItemType:           itemType,
		Timezone:           tzName,
	}, nil
}

// loadSettings reads the hours record and business timezone. ok=false
// means an infrastructure failure the callers must fail open on.
func (s *availabilityService) loadSettings() (*models.OrderingHoursRecord, *time.Location, string, bool) {
	record, err := s.settings.GetOrderingHours()
	if err != nil {
		utils.LogError(err, "Ordering hours lookup failed, failing open to available")
		return nil, nil, "", false
	}

	tzName, err := s.settings.GetTimezone()
	if err != nil {
		utils.LogError(err, "Timezone lookup failed, failing open to available")
		return nil, nil, "", false
	}
	if tzName == "" {
		tzName = s.defaultTimezone
	}

	loc, err := time.LoadLocation(tzName)
	if err != nil {
		utils.LogError(err, "Invalid business timezone, failing open to available")
		return nil, nil, "", false
	}
	return record, loc, tzName, true
}
