package transforms

import (
	"fmt"
	"strconv"
	"strings"

	"fieldmap/field"
)

// DefaultTo substitutes a fallback for nil values.
func DefaultTo(fallback any) field.TransformFunc {
	return func(value any) (any, error) {
		if value == nil {
			return fallback, nil
		}

		return value, nil
	}
}

// CleanText strips whitespace and collapses inner whitespace runs to single
// spaces.
func CleanText(value any) (any, error) {
	s, err := asString(value)
	if err != nil {
		return nil, err
	}

	return strings.Join(strings.Fields(s), " "), nil
}

// ParseBool converts common truthy/falsy strings and numbers to bool.
func ParseBool(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case int:
		return v != 0, nil
	case float64:
		return v != 0, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "true", "yes", "y", "on", "1":
			return true, nil
		case "false", "no", "n", "off", "0", "":
			return false, nil
		}

		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as bool", v)
		}

		return b, nil
	}

	return nil, fmt.Errorf("cannot parse %T (%v) as bool", value, value)
}

// NilIfEmpty turns empty strings and empty collections into nil, so
// downstream default handling kicks in.
func NilIfEmpty(value any) (any, error) {
	switch v := value.(type) {
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
	case []any:
		if len(v) == 0 {
			return nil, nil
		}
	case map[string]any:
		if len(v) == 0 {
			return nil, nil
		}
	}

	return value, nil
}

// Registry returns the simple (parameter-free) transforms keyed by the names
// declaration files use.
func Registry() map[string]field.TransformFunc {
	return map[string]field.TransformFunc{
		"strip":        Strip,
		"lower":        Lower,
		"upper":        Upper,
		"title":        Title,
		"slug":         Slug,
		"to_int":       ToInt,
		"to_float":     ToFloat,
		"to_string":    ToString,
		"abs":          Abs,
		"first":        First,
		"last":         Last,
		"count":        Count,
		"unique":       Unique,
		"flatten":      Flatten,
		"clean_text":   CleanText,
		"parse_bool":   ParseBool,
		"nil_if_empty": NilIfEmpty,

		"parse_date":     ParseDate,
		"format_iso":     FormatISO,
		"date_only":      DateOnly,
		"to_unix":        ToUnix,
		"from_unix":      FromUnix,
		"year":           Year,
		"month":          Month,
		"day":            Day,
		"quarter":        Quarter,
		"start_of_day":   StartOfDay,
		"start_of_month": StartOfMonth,
		"age_days":       AgeDays,

		"valid_email":     ValidEmail,
		"valid_url":       ValidURL,
		"valid_uuid":      ValidUUID,
		"valid_phone":     ValidPhone,
		"normalize_email": NormalizeEmail,
		"clean_phone":     CleanPhone,
		"normalize_url":   NormalizeURL,
	}
}
