package field

import (
	"fmt"
	"maps"
	"strings"
)

// CombinedField runs several fields against the same data and collects their
// results into one name-keyed map.
type CombinedField struct {
	Fields []Extractor
	Name   string
}

// NewCombined builds a combination over the given fields. At least one field
// is expected; a schema rejects an empty combination at definition time.
func NewCombined(fields ...Extractor) *CombinedField {
	return &CombinedField{Fields: fields}
}

// FieldName implements Extractor.
func (c *CombinedField) FieldName() string { return c.Name }

// IsRequired implements Extractor; the combination is required when any child
// is.
func (c *CombinedField) IsRequired() bool {
	for _, child := range c.Fields {
		if child.IsRequired() {
			return true
		}
	}

	return false
}

// DefaultValue implements Extractor.
func (c *CombinedField) DefaultValue() any { return map[string]any{} }

// Rebind implements Extractor, rebinding every child.
func (c *CombinedField) Rebind(b Binding) Extractor {
	children := make([]Extractor, len(c.Fields))
	for i, child := range c.Fields {
		children[i] = child.Rebind(b)
	}

	return &CombinedField{Fields: children, Name: c.Name}
}

// Extract runs every child and merges successes into a name-keyed map.
// Required children's failures are collected and reported together after all
// children have run; failed or nil non-required children are skipped.
// Unnamed children merge map results into the accumulator and index anything
// else positionally.
func (c *CombinedField) Extract(data any, computed map[string]any) (any, error) {
	if len(c.Fields) == 0 {
		return nil, fmt.Errorf("combined field %q: %w: no child fields", c.Name, ErrDefinition)
	}

	result := map[string]any{}

	var failures []string

	for _, child := range c.Fields {
		value, err := child.Extract(data, computed)
		if err != nil {
			if child.IsRequired() {
				failures = append(failures, fmt.Sprintf("required field %q failed: %v", child.FieldName(), err))
			}

			continue
		}

		if name := child.FieldName(); name != "" {
			if value != nil || child.IsRequired() {
				result[name] = value
			}

			continue
		}

		if m, ok := value.(map[string]any); ok {
			maps.Copy(result, m)
		} else {
			result[fmt.Sprintf("field%d", len(result))] = value
		}
	}

	if len(failures) > 0 {
		return nil, fmt.Errorf("combined field %q: %w: %s",
			c.Name, ErrAggregateChild, strings.Join(failures, "; "))
	}

	return result, nil
}

// Assign dispatches a map value to each child by name, or broadcasts a
// scalar to every child.
func (c *CombinedField) Assign(target, value any) error {
	if m, ok := value.(map[string]any); ok {
		for _, child := range c.Fields {
			v, ok := m[child.FieldName()]
			if !ok {
				continue
			}

			if err := child.Assign(target, v); err != nil {
				return err
			}
		}

		return nil
	}

	for _, child := range c.Fields {
		if err := child.Assign(target, value); err != nil {
			return err
		}
	}

	return nil
}

// AddField returns a new combination with one more child.
func (c *CombinedField) AddField(child Extractor) *CombinedField {
	children := append(append([]Extractor{}, c.Fields...), child)

	return &CombinedField{Fields: children, Name: c.Name}
}

// CombineWith returns a new combination extended with the others' children.
// Other CombinedFields are flattened.
func (c *CombinedField) CombineWith(others ...Extractor) *CombinedField {
	children := append([]Extractor{}, c.Fields...)

	for _, other := range others {
		if oc, ok := other.(*CombinedField); ok {
			children = append(children, oc.Fields...)
			continue
		}

		children = append(children, other)
	}

	return &CombinedField{Fields: children, Name: c.Name}
}

// String implements fmt.Stringer.
func (c *CombinedField) String() string {
	names := make([]string, len(c.Fields))
	for i, child := range c.Fields {
		names[i] = child.FieldName()
	}

	return fmt.Sprintf("CombinedField([%s])", strings.Join(names, ", "))
}
