/*
Package factory provides JSON to Go holiday-calendar conversion.

PURPOSE:
  Converts JSON holiday bundles into calendar.HolidaySet values. Holiday
  lists are year- and locale-specific and must be refreshed yearly, so they
  ship as data - per tenant, per country - rather than as code. An admin can
  upload next year's list without a deploy.

JSON SCHEMA:
  {
    "name": "TR public holidays",
    "country": "TR",
    "year": 2025,
    "holidays": [
      {"date": "2025-01-01", "name": "New Year's Day"},
      {"date": "2025-04-23", "name": "National Sovereignty Day"}
    ]
  }

KEY FEATURES:
  - Validates date format (YYYY-MM-DD) with positional error messages
  - Rejects empty bundles only when declared non-empty is required by caller
  - Output is an immutable calendar.HolidaySet

USAGE:
  set, err := factory.ParseCalendar(jsonStr)
  lines, err := plan.CreatePlan(req, set)

SEE ALSO:
  - calendar/holidays.go: HolidaySet and Merge
  - store/sqlite: persisted per-company holidays, merged with bundles
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/warp/installment-engine/calendar"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// CalendarJSON is the JSON representation of a holiday bundle.
type CalendarJSON struct {
	Name     string        `json:"name"`
	Country  string        `json:"country,omitempty"`
	Year     int           `json:"year,omitempty"`
	Holidays []HolidayJSON `json:"holidays"`
}

// HolidayJSON is a single holiday entry.
type HolidayJSON struct {
	Date string `json:"date"` // YYYY-MM-DD
	Name string `json:"name,omitempty"`
}

// =============================================================================
// PARSING
// =============================================================================

// ParseCalendar converts a JSON holiday bundle into an immutable HolidaySet.
func ParseCalendar(jsonStr string) (*calendar.HolidaySet, error) {
	var cfg CalendarJSON
	if err := json.Unmarshal([]byte(jsonStr), &cfg); err != nil {
		return nil, fmt.Errorf("invalid calendar JSON: %w", err)
	}
	return BuildCalendar(cfg)
}

// BuildCalendar converts an already-decoded bundle into a HolidaySet.
func BuildCalendar(cfg CalendarJSON) (*calendar.HolidaySet, error) {
	dates := make([]calendar.Date, 0, len(cfg.Holidays))
	for i, h := range cfg.Holidays {
		d, err := calendar.Parse(h.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday %d (%q): invalid date %q (use YYYY-MM-DD)", i, h.Name, h.Date)
		}
		if cfg.Year != 0 && d.Year() != cfg.Year {
			return nil, fmt.Errorf("holiday %d (%q): date %s outside declared year %d", i, h.Name, d, cfg.Year)
		}
		dates = append(dates, d)
	}
	return calendar.NewHolidaySet(dates...), nil
}
