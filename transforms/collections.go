package transforms

import (
	"fmt"
	"reflect"
	"strings"

	"fieldmap/field"
)

// asItems normalizes slice and array values of any element type to []any.
func asItems(value any) ([]any, error) {
	if items, ok := value.([]any); ok {
		return items, nil
	}

	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, fmt.Errorf("expected collection, got %T (%v)", value, value)
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, nil
}

// First returns the first element of a collection, nil when empty.
func First(value any) (any, error) {
	items, err := asItems(value)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, nil
	}

	return items[0], nil
}

// Last returns the last element of a collection, nil when empty.
func Last(value any) (any, error) {
	items, err := asItems(value)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return nil, nil
	}

	return items[len(items)-1], nil
}

// Count returns the number of elements in a collection.
func Count(value any) (any, error) {
	items, err := asItems(value)
	if err != nil {
		return nil, err
	}

	return len(items), nil
}

// Unique drops duplicate elements, keeping first occurrences in order.
func Unique(value any) (any, error) {
	items, err := asItems(value)
	if err != nil {
		return nil, err
	}

	seen := make(map[any]bool, len(items))
	out := make([]any, 0, len(items))

	for _, item := range items {
		if rt := reflect.TypeOf(item); rt != nil && !rt.Comparable() {
			out = append(out, item)
			continue
		}

		if seen[item] {
			continue
		}

		seen[item] = true
		out = append(out, item)
	}

	return out, nil
}

// Flatten expands nested collections one level deep.
func Flatten(value any) (any, error) {
	items, err := asItems(value)
	if err != nil {
		return nil, err
	}

	var out []any

	for _, item := range items {
		if inner, err := asItems(item); err == nil {
			out = append(out, inner...)
			continue
		}

		out = append(out, item)
	}

	return out, nil
}

// Join concatenates a collection's elements into a string.
func Join(sep string) field.TransformFunc {
	return func(value any) (any, error) {
		items, err := asItems(value)
		if err != nil {
			return nil, err
		}

		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = fmt.Sprint(item)
		}

		return strings.Join(parts, sep), nil
	}
}

// Pluck extracts one key's value from every map element of a collection.
func Pluck(key string) field.TransformFunc {
	return func(value any) (any, error) {
		items, err := asItems(value)
		if err != nil {
			return nil, err
		}

		out := make([]any, 0, len(items))

		for _, item := range items {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}

			if v, ok := m[key]; ok {
				out = append(out, v)
			}
		}

		return out, nil
	}
}

// Filter keeps the elements satisfying the predicate.
func Filter(pred func(any) bool) field.TransformFunc {
	return func(value any) (any, error) {
		items, err := asItems(value)
		if err != nil {
			return nil, err
		}

		out := make([]any, 0, len(items))

		for _, item := range items {
			if pred(item) {
				out = append(out, item)
			}
		}

		return out, nil
	}
}

// Map applies a transform to every element.
func Map(fn field.TransformFunc) field.TransformFunc {
	return func(value any) (any, error) {
		items, err := asItems(value)
		if err != nil {
			return nil, err
		}

		out := make([]any, len(items))

		for i, item := range items {
			mapped, err := fn(item)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}

			out[i] = mapped
		}

		return out, nil
	}
}
