package schema

import (
	"fmt"
	"reflect"
	"strings"

	"fieldmap/field"
)

// Entry is one (name, field) pair of a schema declaration.
type Entry struct {
	Name  string
	Field field.Extractor
}

// Schema is an ordered, name-keyed registry of fields. It is immutable after
// construction; derived schemas are built with Extend, Merge, or Subset.
type Schema struct {
	names  []string
	fields map[string]field.Extractor
	order  []string
}

// New builds a schema from entries in declaration order.
//
// Definition-time validation rejects duplicate names, entries whose field
// carries a conflicting intrinsic name, missing conditional dependencies,
// and dependency cycles.
func New(entries ...Entry) (*Schema, error) {
	s := &Schema{
		names:  make([]string, 0, len(entries)),
		fields: make(map[string]field.Extractor, len(entries)),
	}

	for _, e := range entries {
		if err := s.add(e); err != nil {
			return nil, err
		}
	}

	if err := s.resolve(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Schema) add(e Entry) error {
	if e.Name == "" {
		return fmt.Errorf("%w: schema entry has no name", field.ErrDefinition)
	}

	if e.Field == nil {
		return fmt.Errorf("field %q: %w: schema entry has no field", e.Name, field.ErrDefinition)
	}

	if intrinsic := e.Field.FieldName(); intrinsic != "" && intrinsic != e.Name {
		return fmt.Errorf("%w: field name mismatch: entry %q has field name %q",
			field.ErrDefinition, e.Name, intrinsic)
	}

	if _, ok := s.fields[e.Name]; ok {
		return fmt.Errorf("%w: duplicate field name %q", field.ErrDefinition, e.Name)
	}

	s.names = append(s.names, e.Name)
	s.fields[e.Name] = e.Field

	return nil
}

// resolve validates dependencies and caches the execution order. The field
// set never changes afterwards, so the order stays valid for the schema's
// lifetime.
func (s *Schema) resolve() error {
	resolver, err := NewDependencyResolver(s.names, s.fields)
	if err != nil {
		return err
	}

	order, err := resolver.ResolveOrder()
	if err != nil {
		return err
	}

	s.order = order

	return nil
}

// Extend merges a base schema with derived entries: derived entries override
// base entries sharing a name while keeping the base position; new entries
// append in declaration order.
func Extend(base *Schema, entries ...Entry) (*Schema, error) {
	merged := make([]Entry, 0, len(base.names)+len(entries))
	overrides := make(map[string]field.Extractor, len(entries))

	for _, e := range entries {
		if _, ok := base.fields[e.Name]; ok {
			overrides[e.Name] = e.Field
		}
	}

	for _, name := range base.names {
		f := base.fields[name]
		if o, ok := overrides[name]; ok {
			f = o
		}

		merged = append(merged, Entry{Name: name, Field: f})
	}

	for _, e := range entries {
		if _, ok := base.fields[e.Name]; ok {
			continue
		}

		merged = append(merged, e)
	}

	return New(merged...)
}

// Merge combines several schemas into one; later schemas win on name
// collision.
func Merge(schemas ...*Schema) (*Schema, error) {
	if len(schemas) == 0 {
		return New()
	}

	result := schemas[0]

	for _, s := range schemas[1:] {
		entries := make([]Entry, 0, len(s.names))
		for _, name := range s.names {
			entries = append(entries, Entry{Name: name, Field: s.fields[name]})
		}

		merged, err := Extend(result, entries...)
		if err != nil {
			return nil, err
		}

		result = merged
	}

	return result, nil
}

// Fields returns a copy of the registry.
func (s *Schema) Fields() map[string]field.Extractor {
	fields := make(map[string]field.Extractor, len(s.fields))
	for name, f := range s.fields {
		fields[name] = f
	}

	return fields
}

// FieldNames returns the field names in declaration order.
func (s *Schema) FieldNames() []string {
	return append([]string{}, s.names...)
}

// HasField reports whether the schema declares a field with the given name.
func (s *Schema) HasField(name string) bool {
	_, ok := s.fields[name]
	return ok
}

// Field returns the field registered under name.
func (s *Schema) Field(name string) (field.Extractor, bool) {
	f, ok := s.fields[name]
	return f, ok
}

// Subset returns a schema containing only the named fields, keeping their
// relative order.
func (s *Schema) Subset(names ...string) (*Schema, error) {
	keep := make(map[string]bool, len(names))
	for _, name := range names {
		keep[name] = true
	}

	var entries []Entry

	for _, name := range s.names {
		if keep[name] {
			entries = append(entries, Entry{Name: name, Field: s.fields[name]})
		}
	}

	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: no valid fields in subset [%s]",
			field.ErrDefinition, strings.Join(names, ", "))
	}

	return New(entries...)
}

// Transform extracts every field in dependency order and returns the
// name-keyed result map. The first field failure aborts the pass, wrapped
// with the failing field's name; no partial result is returned.
//
// Transient fields feed the computed accumulator (so later conditional
// fields can depend on them) but stay out of the final result.
func (s *Schema) Transform(data any) (map[string]any, error) {
	computed := make(map[string]any, len(s.order))
	result := make(map[string]any, len(s.order))

	for _, name := range s.order {
		f := s.fields[name]

		value, err := f.Extract(data, computed)
		if err != nil {
			return nil, fmt.Errorf("schema transform failed on field %q: %w", name, err)
		}

		computed[name] = value

		if !isTransient(f) {
			result[name] = value
		}
	}

	return result, nil
}

func isTransient(f field.Extractor) bool {
	if t, ok := f.(field.Transient); ok {
		return t.IsTransient()
	}

	return false
}

// TransformAll transforms a list of data objects, failing on the first bad
// item with its index in the error.
func (s *Schema) TransformAll(items []any) ([]map[string]any, error) {
	results := make([]map[string]any, 0, len(items))

	for i, item := range items {
		result, err := s.Transform(item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}

		results = append(results, result)
	}

	return results, nil
}

// TransformInto transforms data and fills the struct pointed to by out,
// matching result keys to exported struct fields case-insensitively. This is
// the boundary conversion layered above the core result map.
func (s *Schema) TransformInto(data any, out any) error {
	result, err := s.Transform(data)
	if err != nil {
		return err
	}

	return fillStruct(result, out)
}

func fillStruct(values map[string]any, out any) error {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("%w: conversion target must be a non-nil struct pointer, got %T",
			field.ErrAssignTarget, out)
	}

	elem := rv.Elem()
	rt := elem.Type()

	for name, value := range values {
		var fv reflect.Value

		for i := 0; i < rt.NumField(); i++ {
			if strings.EqualFold(rt.Field(i).Name, name) {
				fv = elem.Field(i)
				break
			}
		}

		if !fv.IsValid() || !fv.CanSet() {
			continue
		}

		if value == nil {
			fv.Set(reflect.Zero(fv.Type()))
			continue
		}

		vv := reflect.ValueOf(value)
		if !vv.Type().AssignableTo(fv.Type()) {
			if !vv.Type().ConvertibleTo(fv.Type()) {
				return fmt.Errorf("%w: cannot assign %T to field %q of %T",
					field.ErrAssignTarget, value, name, out)
			}

			vv = vv.Convert(fv.Type())
		}

		fv.Set(vv)
	}

	return nil
}

// Validate runs extraction for every field but collects failures into a
// name-keyed error map instead of aborting. An empty map means the data
// satisfies the schema. Fields whose dependencies failed report the missing
// dependency.
func (s *Schema) Validate(data any) map[string]error {
	computed := make(map[string]any, len(s.order))
	errs := map[string]error{}

	for _, name := range s.order {
		value, err := s.fields[name].Extract(data, computed)
		if err != nil {
			errs[name] = err
			continue
		}

		computed[name] = value
	}

	return errs
}

// String implements fmt.Stringer.
func (s *Schema) String() string {
	return fmt.Sprintf("Schema(fields=[%s])", strings.Join(s.names, ", "))
}
