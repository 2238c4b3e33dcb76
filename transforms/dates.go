package transforms

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"fieldmap/field"
)

// dateLayouts are tried in order by ParseDate. RFC3339 variants come first so
// timestamps with zone info keep it.
var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006",
	"01-02-2006",
	"02 Jan 2006",
	"02 January 2006",
	"Jan 2, 2006",
	"January 2, 2006",
	time.ANSIC,
}

// asTime coerces a value to time.Time: passes time.Time through, parses
// strings against the common layouts, and reads numbers as Unix seconds.
func asTime(value any) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case int:
		return time.Unix(int64(v), 0).UTC(), nil
	case int64:
		return time.Unix(v, 0).UTC(), nil
	case float64:
		sec := int64(v)
		nsec := int64((v - float64(sec)) * float64(time.Second))

		return time.Unix(sec, nsec).UTC(), nil
	case string:
		text := strings.TrimSpace(v)
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, text); err == nil {
				return t, nil
			}
		}

		if sec, err := strconv.ParseFloat(text, 64); err == nil {
			return asTime(sec)
		}

		return time.Time{}, fmt.Errorf("cannot parse %q as a date", v)
	}

	return time.Time{}, fmt.Errorf("cannot interpret %T (%v) as a date", value, value)
}

// ParseDate parses a date from any of the common layouts, Unix timestamps
// included.
func ParseDate(value any) (any, error) {
	return asTime(value)
}

// ParseDateLayout parses with one specific layout instead of guessing.
func ParseDateLayout(layout string) field.TransformFunc {
	return func(value any) (any, error) {
		if t, ok := value.(time.Time); ok {
			return t, nil
		}

		s, err := asString(value)
		if err != nil {
			return nil, err
		}

		t, err := time.Parse(layout, strings.TrimSpace(s))
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q with layout %q: %w", s, layout, err)
		}

		return t, nil
	}
}

// FormatDate renders a date with the given layout.
func FormatDate(layout string) field.TransformFunc {
	return func(value any) (any, error) {
		t, err := asTime(value)
		if err != nil {
			return nil, err
		}

		return t.Format(layout), nil
	}
}

// FormatISO renders a date as RFC 3339.
func FormatISO(value any) (any, error) {
	t, err := asTime(value)
	if err != nil {
		return nil, err
	}

	return t.Format(time.RFC3339), nil
}

// DateOnly renders a date as YYYY-MM-DD.
func DateOnly(value any) (any, error) {
	t, err := asTime(value)
	if err != nil {
		return nil, err
	}

	return t.Format(time.DateOnly), nil
}

// ToUnix converts a date to Unix seconds.
func ToUnix(value any) (any, error) {
	t, err := asTime(value)
	if err != nil {
		return nil, err
	}

	return t.Unix(), nil
}

// FromUnix converts Unix seconds to a date.
func FromUnix(value any) (any, error) {
	switch value.(type) {
	case int, int64, float64:
		return asTime(value)
	case string:
		return asTime(value)
	}

	return nil, fmt.Errorf("expected Unix timestamp, got %T (%v)", value, value)
}

// Year extracts the year.
func Year(value any) (any, error) {
	t, err := asTime(value)
	if err != nil {
		return nil, err
	}

	return t.Year(), nil
}

// Month extracts the month, 1 to 12.
func Month(value any) (any, error) {
	t, err := asTime(value)
	if err != nil {
		return nil, err
	}

	return int(t.Month()), nil
}

// Day extracts the day of month.
func Day(value any) (any, error) {
	t, err := asTime(value)
	if err != nil {
		return nil, err
	}

	return t.Day(), nil
}

// Quarter extracts the calendar quarter, 1 to 4.
func Quarter(value any) (any, error) {
	t, err := asTime(value)
	if err != nil {
		return nil, err
	}

	return (int(t.Month())-1)/3 + 1, nil
}

// StartOfDay truncates a date to midnight in its location.
func StartOfDay(value any) (any, error) {
	t, err := asTime(value)
	if err != nil {
		return nil, err
	}

	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
}

// StartOfMonth truncates a date to the first of the month.
func StartOfMonth(value any) (any, error) {
	t, err := asTime(value)
	if err != nil {
		return nil, err
	}

	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location()), nil
}

// ShiftDate moves a date by whole days, months, and years.
func ShiftDate(years, months, days int) field.TransformFunc {
	return func(value any) (any, error) {
		t, err := asTime(value)
		if err != nil {
			return nil, err
		}

		return t.AddDate(years, months, days), nil
	}
}

// AgeDays returns the fractional days elapsed since the date.
func AgeDays(value any) (any, error) {
	t, err := asTime(value)
	if err != nil {
		return nil, err
	}

	return time.Since(t).Hours() / 24, nil
}
