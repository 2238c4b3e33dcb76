package field

import "fmt"

// NestedField applies an inner field against the sub-object at a dot path.
type NestedField struct {
	Inner Extractor
	Path  string
	Name  string
}

// NewNested builds a nested application of inner at path.
func NewNested(inner Extractor, path string) *NestedField {
	return &NestedField{
		Inner: inner,
		Path:  path,
		Name:  inner.FieldName(),
	}
}

// FieldName implements Extractor.
func (n *NestedField) FieldName() string { return n.Name }

// IsRequired implements Extractor.
func (n *NestedField) IsRequired() bool { return n.Inner.IsRequired() }

// DefaultValue implements Extractor.
func (n *NestedField) DefaultValue() any { return n.Inner.DefaultValue() }

// Rebind implements Extractor, rebinding the inner field.
func (n *NestedField) Rebind(b Binding) Extractor {
	return &NestedField{
		Inner: n.Inner.Rebind(b),
		Path:  n.Path,
		Name:  n.Name,
	}
}

// Extract navigates to the sub-object at Path and delegates to the inner
// field. An unresolvable path yields the inner field's default, or an error
// when the inner field is required.
func (n *NestedField) Extract(data any, computed map[string]any) (any, error) {
	sub := resolvePath(data, n.Path, nil)
	if sub == nil {
		if n.Inner.IsRequired() {
			return nil, fmt.Errorf("field %q: %w: %q", n.Name, ErrNestedPath, n.Path)
		}

		return n.Inner.DefaultValue(), nil
	}

	return n.Inner.Extract(sub, computed)
}

// Assign navigates to (or creates) the sub-object at Path in the target and
// delegates assignment to the inner field.
func (n *NestedField) Assign(target, value any) error {
	sub, err := resolveOrCreate(target, n.Path)
	if err != nil {
		return fmt.Errorf("field %q: %w", n.Name, err)
	}

	return n.Inner.Assign(sub, value)
}

// WithPath returns a copy applying the inner field at a different path.
func (n *NestedField) WithPath(path string) *NestedField {
	clone := *n
	clone.Path = path

	return &clone
}

// String implements fmt.Stringer.
func (n *NestedField) String() string {
	return fmt.Sprintf("NestedField(%v @ %q)", n.Inner, n.Path)
}
