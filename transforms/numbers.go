package transforms

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"fieldmap/field"
)

// ToInt converts strings, floats, and bools to int. Fractional floats are
// rejected rather than silently truncated.
func ToInt(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int8:
		return int(v), nil
	case int16:
		return int(v), nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) {
			return nil, fmt.Errorf("cannot convert %v to int without losing precision", v)
		}

		return int(v), nil
	case float32:
		return ToInt(float64(v))
	case bool:
		if v {
			return 1, nil
		}

		return 0, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to int: %w", v, err)
		}

		return n, nil
	}

	return nil, fmt.Errorf("cannot convert %T (%v) to int", value, value)
}

// ToFloat converts strings and integers to float64.
func ToFloat(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot convert %q to float: %w", v, err)
		}

		return f, nil
	}

	return nil, fmt.Errorf("cannot convert %T (%v) to float", value, value)
}

// ToString renders any value with its default formatting.
func ToString(value any) (any, error) {
	return fmt.Sprint(value), nil
}

// Abs returns the absolute value of a number.
func Abs(value any) (any, error) {
	switch v := value.(type) {
	case int:
		if v < 0 {
			return -v, nil
		}

		return v, nil
	case float64:
		return math.Abs(v), nil
	}

	return nil, fmt.Errorf("expected number, got %T (%v)", value, value)
}

// Round rounds a float to n decimal places.
func Round(n int) field.TransformFunc {
	return func(value any) (any, error) {
		f, err := ToFloat(value)
		if err != nil {
			return nil, err
		}

		scale := math.Pow10(n)

		return math.Round(f.(float64)*scale) / scale, nil
	}
}

// Clamp bounds a number to [min, max].
func Clamp(min, max float64) field.TransformFunc {
	return func(value any) (any, error) {
		f, err := ToFloat(value)
		if err != nil {
			return nil, err
		}

		return math.Min(math.Max(f.(float64), min), max), nil
	}
}

// Scale multiplies a number by a constant factor.
func Scale(factor float64) field.TransformFunc {
	return func(value any) (any, error) {
		f, err := ToFloat(value)
		if err != nil {
			return nil, err
		}

		return f.(float64) * factor, nil
	}
}
