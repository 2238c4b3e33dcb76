package field

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

// DefaultSeparator joins string values accumulated without an explicit
// separator.
const DefaultSeparator = " "

// AccumulatedField runs several fields and folds their values pairwise into
// one result: maps merge, slices concatenate, numbers add, strings join with
// the separator. Anything else is stringified and joined.
type AccumulatedField struct {
	Fields    []Extractor
	Separator string
	Name      string
}

// NewAccumulated builds an accumulation over the given fields with the
// default separator.
func NewAccumulated(fields ...Extractor) *AccumulatedField {
	return &AccumulatedField{Fields: fields, Separator: DefaultSeparator}
}

// FieldName implements Extractor.
func (a *AccumulatedField) FieldName() string { return a.Name }

// IsRequired implements Extractor; the accumulation is required when any
// child is.
func (a *AccumulatedField) IsRequired() bool {
	for _, child := range a.Fields {
		if child.IsRequired() {
			return true
		}
	}

	return false
}

// DefaultValue implements Extractor.
func (a *AccumulatedField) DefaultValue() any { return nil }

// Rebind implements Extractor, rebinding every child.
func (a *AccumulatedField) Rebind(b Binding) Extractor {
	children := make([]Extractor, len(a.Fields))
	for i, child := range a.Fields {
		children[i] = child.Rebind(b)
	}

	return &AccumulatedField{Fields: children, Separator: a.Separator, Name: a.Name}
}

// Extract runs every child, skipping nil results and failed non-required
// children. The first failed required child aborts the accumulation. With no
// values left the default applies, or an error when required.
func (a *AccumulatedField) Extract(data any, computed map[string]any) (any, error) {
	if len(a.Fields) == 0 {
		return nil, fmt.Errorf("accumulated field %q: %w: no child fields", a.Name, ErrDefinition)
	}

	var values []any

	for _, child := range a.Fields {
		value, err := child.Extract(data, computed)
		if err != nil {
			if child.IsRequired() {
				return nil, fmt.Errorf("accumulated field %q: required field %q failed: %w",
					a.Name, child.FieldName(), err)
			}

			continue
		}

		if value != nil {
			values = append(values, value)
		}
	}

	if len(values) == 0 {
		if a.IsRequired() {
			return nil, fmt.Errorf("accumulated field %q: %w: no values to accumulate", a.Name, ErrRequiredValue)
		}

		return nil, nil
	}

	result := values[0]
	for _, value := range values[1:] {
		result = a.combine(result, value)
	}

	return result, nil
}

// Assign delegates to the first child's target configuration.
func (a *AccumulatedField) Assign(target, value any) error {
	if len(a.Fields) == 0 {
		return fmt.Errorf("accumulated field %q: %w: no child fields", a.Name, ErrDefinition)
	}

	return a.Fields[0].Assign(target, value)
}

// combine folds two values. The combinable union is deliberately narrow:
// map merge (right wins), slice concatenation, numeric addition, and string
// join; mismatched or unsupported types stringify and join.
func (a *AccumulatedField) combine(left, right any) any {
	if lm, ok := left.(map[string]any); ok {
		if rm, ok := right.(map[string]any); ok {
			merged := make(map[string]any, len(lm)+len(rm))
			maps.Copy(merged, lm)
			maps.Copy(merged, rm)

			return merged
		}
	}

	if ls, ok := asSlice(left); ok {
		if rs, ok := asSlice(right); ok {
			// Fresh backing array: appending in place would write into the
			// left operand's spare capacity and mutate caller data.
			merged := make([]any, 0, len(ls)+len(rs))
			merged = append(merged, ls...)

			return append(merged, rs...)
		}
	}

	if li, ok := asInt(left); ok {
		if ri, ok := asInt(right); ok {
			return li + ri
		}
	}

	if lf, ok := asFloat(left); ok {
		if rf, ok := asFloat(right); ok {
			return lf + rf
		}
	}

	if lstr, ok := left.(string); ok {
		if rstr, ok := right.(string); ok {
			return lstr + a.Separator + rstr
		}
	}

	return fmt.Sprint(left) + a.Separator + fmt.Sprint(right)
}

// asSlice normalizes slice and array values of any element type to []any.
func asSlice(value any) ([]any, bool) {
	if items, ok := value.([]any); ok {
		return items, true
	}

	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) {
		return nil, false
	}

	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}

func asInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int8:
		return int(v), true
	case int16:
		return int(v), true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	}

	return 0, false
}

func asFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float32:
		return float64(v), true
	case float64:
		return v, true
	}

	if i, ok := asInt(value); ok {
		return float64(i), true
	}

	return 0, false
}

// AddField returns a new accumulation with one more child.
func (a *AccumulatedField) AddField(child Extractor) *AccumulatedField {
	children := append(append([]Extractor{}, a.Fields...), child)

	return &AccumulatedField{Fields: children, Separator: a.Separator, Name: a.Name}
}

// AccumulateWith returns a new accumulation extended with the others'
// children. Other AccumulatedFields are flattened.
func (a *AccumulatedField) AccumulateWith(others ...Extractor) *AccumulatedField {
	children := append([]Extractor{}, a.Fields...)

	for _, other := range others {
		if oa, ok := other.(*AccumulatedField); ok {
			children = append(children, oa.Fields...)
			continue
		}

		children = append(children, other)
	}

	return &AccumulatedField{Fields: children, Separator: a.Separator, Name: a.Name}
}

// WithSeparator returns a copy joining strings with a different separator.
func (a *AccumulatedField) WithSeparator(separator string) *AccumulatedField {
	clone := *a
	clone.Separator = separator

	return &clone
}

// String implements fmt.Stringer.
func (a *AccumulatedField) String() string {
	names := make([]string, len(a.Fields))
	for i, child := range a.Fields {
		names[i] = child.FieldName()
	}

	return fmt.Sprintf("AccumulatedField([%s])", strings.Join(names, " + "))
}
