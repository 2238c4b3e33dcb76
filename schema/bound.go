package schema

import (
	"fmt"

	"fieldmap/field"
)

// BoundSchema is a schema definition paired with source-specific per-field
// bindings. Binding never mutates the original schema: every mapped field is
// rebuilt with its source path and transform substituted, unmapped fields
// pass through unchanged.
type BoundSchema struct {
	schema  *Schema
	mapping map[string]field.Binding
	bound   *Schema
}

// Bind produces a BoundSchema applying the given per-field bindings. Every
// mapping key must name a declared field.
func (s *Schema) Bind(mapping map[string]field.Binding) (*BoundSchema, error) {
	for name := range mapping {
		if !s.HasField(name) {
			return nil, fmt.Errorf("%w: binding references unknown field %q", field.ErrDefinition, name)
		}
	}

	entries := make([]Entry, 0, len(s.names))

	for _, name := range s.names {
		f := s.fields[name]
		if b, ok := mapping[name]; ok {
			f = f.Rebind(b)
		}

		entries = append(entries, Entry{Name: name, Field: f})
	}

	bound, err := New(entries...)
	if err != nil {
		return nil, err
	}

	return &BoundSchema{schema: s, mapping: mapping, bound: bound}, nil
}

// Transform runs the bound fields against data with the same semantics as
// Schema.Transform.
func (b *BoundSchema) Transform(data any) (map[string]any, error) {
	return b.bound.Transform(data)
}

// TransformAll transforms a list of data objects with the bound fields.
func (b *BoundSchema) TransformAll(items []any) ([]map[string]any, error) {
	return b.bound.TransformAll(items)
}

// TransformInto transforms data with the bound fields and fills out.
func (b *BoundSchema) TransformInto(data any, out any) error {
	return b.bound.TransformInto(data, out)
}

// Validate collects per-field extraction errors with the bound fields.
func (b *BoundSchema) Validate(data any) map[string]error {
	return b.bound.Validate(data)
}

// Fields returns a copy of the rebound registry.
func (b *BoundSchema) Fields() map[string]field.Extractor {
	return b.bound.Fields()
}

// Schema returns the original, unmodified schema definition.
func (b *BoundSchema) Schema() *Schema {
	return b.schema
}

// String implements fmt.Stringer.
func (b *BoundSchema) String() string {
	return fmt.Sprintf("BoundSchema(%v, mappings=%d)", b.schema, len(b.mapping))
}
