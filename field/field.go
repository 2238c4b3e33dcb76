package field

import (
	"fmt"
	"reflect"
)

// TransformFunc reshapes a single value. It may fail.
type TransformFunc func(value any) (any, error)

// TypeFunc casts a value to a target type, conventionally a constructor.
type TypeFunc func(value any) (any, error)

// MapperFunc resolves a mapping miss given the value and the full table.
type MapperFunc func(value any, mapping map[any]any) (any, error)

// ConditionFunc evaluates a conditional override from the values of the
// field's dependencies, passed positionally in declaration order.
type ConditionFunc func(deps ...any) (any, error)

// ValidateFunc is the custom validation hook run after the choices check.
type ValidateFunc func(value any) (any, error)

// Extractor is the interface every field-like node implements: leaf fields,
// the composite variants, and anything user-defined that wants to live in a
// schema registry.
type Extractor interface {
	// FieldName returns the node's intrinsic name, empty if unset.
	FieldName() string

	// IsRequired reports whether a nil result is an error.
	IsRequired() bool

	// DefaultValue returns the value produced when extraction resolves
	// nothing.
	DefaultValue() any

	// Extract pulls a value out of data. computed carries already-resolved
	// sibling values for conditional fields; non-conditional nodes ignore it.
	Extract(data any, computed map[string]any) (any, error)

	// Assign writes a value into target at the node's target configuration.
	Assign(target, value any) error

	// Rebind returns a copy of the node with the binding's source path and
	// transform substituted. The receiver is never mutated.
	Rebind(b Binding) Extractor
}

// Transient marks fields whose value feeds later fields but is excluded
// from a schema's final result map.
type Transient interface {
	IsTransient() bool
}

// Binding is one entry of a source-specific schema mapping: a replacement
// source path, a replacement transform, or both.
type Binding struct {
	Source    string
	HasSource bool
	Transform TransformFunc
}

// BindSource binds a field to a different source path.
func BindSource(path string) Binding {
	return Binding{Source: path, HasSource: true}
}

// BindSourceTransform binds a field to a different source path and transform.
func BindSourceTransform(path string, fn TransformFunc) Binding {
	return Binding{Source: path, HasSource: true, Transform: fn}
}

// BindTransform replaces only the field's transform.
func BindTransform(fn TransformFunc) Binding {
	return Binding{Transform: fn}
}

// Field is the leaf extraction/assignment unit.
//
// The zero value is usable; all configuration is optional except that
// assignment needs Target and conditional extraction needs Dependencies and
// Conditions. Fields are treated as immutable after construction.
type Field struct {
	// Name identifies the field inside a schema. A schema registry key must
	// match a non-empty Name.
	Name string

	// Source is the dot-separated read path. Empty means extraction yields
	// Default.
	Source string

	// Target is the dot-separated write path. Empty means Assign fails.
	Target string

	// Required makes a nil pipeline result an error.
	Required bool

	// Default is returned when the source path resolves nothing, and
	// substitutes for mapping misses.
	Default any

	// Transform runs first on the raw value (skipped for nil).
	Transform TransformFunc

	// Type casts the transformed value (skipped for nil).
	Type TypeFunc

	// Choices restricts the post-pipeline value to a finite set.
	Choices []any

	// Mapping translates values through a lookup table, element-wise for
	// slices. Mapper resolves misses before Default does.
	Mapping map[any]any
	Mapper  MapperFunc

	// Validate is the custom validation hook, identity when nil.
	Validate ValidateFunc

	// Conditional switches extraction to condition evaluation over sibling
	// values. Dependencies names the siblings; Conditions maps override keys
	// to their evaluators.
	Conditional  bool
	Dependencies []string
	Conditions   map[string]ConditionFunc

	// TransientField keeps the value out of the final result map while still
	// feeding later conditional fields.
	TransientField bool
}

// FieldName implements Extractor.
func (f *Field) FieldName() string { return f.Name }

// IsRequired implements Extractor.
func (f *Field) IsRequired() bool { return f.Required }

// DefaultValue implements Extractor.
func (f *Field) DefaultValue() any { return f.Default }

// IsTransient implements Transient.
func (f *Field) IsTransient() bool { return f.TransientField }

// Rebind implements Extractor.
func (f *Field) Rebind(b Binding) Extractor {
	clone := *f
	if b.HasSource {
		clone.Source = b.Source
	}

	if b.Transform != nil {
		clone.Transform = b.Transform
	}

	return &clone
}

// Extract runs the value pipeline, or condition evaluation for conditional
// fields.
func (f *Field) Extract(data any, computed map[string]any) (any, error) {
	if f.Conditional {
		return f.extractConditional(data, computed)
	}

	return f.extractPipeline(data)
}

// extractPipeline applies the pipeline stages in their fixed order.
func (f *Field) extractPipeline(data any) (any, error) {
	value := f.sourceValue(data)

	value, err := f.applyTransform(value)
	if err != nil {
		return nil, err
	}

	value, err = f.applyType(value)
	if err != nil {
		return nil, err
	}

	value, err = f.applyMapping(value)
	if err != nil {
		return nil, err
	}

	if err := f.checkChoices(value); err != nil {
		return nil, err
	}

	value, err = f.applyValidate(value)
	if err != nil {
		return nil, err
	}

	if f.Required && value == nil {
		return nil, fmt.Errorf("field %q: %w", f.Name, ErrRequiredValue)
	}

	return value, nil
}

// sourceValue reads the raw value at Source, falling back to Default.
func (f *Field) sourceValue(data any) any {
	if f.Source == "" {
		return f.Default
	}

	return resolvePath(data, f.Source, f.Default)
}

func (f *Field) applyTransform(value any) (any, error) {
	if f.Transform == nil || value == nil {
		return value, nil
	}

	out, err := f.Transform(value)
	if err != nil {
		return nil, fmt.Errorf("field %q: transform failed for %v: %w", f.Name, value, err)
	}

	return out, nil
}

func (f *Field) applyType(value any) (any, error) {
	if f.Type == nil || value == nil {
		return value, nil
	}

	out, err := f.Type(value)
	if err != nil {
		return nil, fmt.Errorf("field %q: %w: %v (%v)", f.Name, ErrTypeCast, value, err)
	}

	return out, nil
}

func (f *Field) applyMapping(value any) (any, error) {
	if f.Mapping == nil || value == nil {
		return value, nil
	}

	// Map collection inputs element-wise, typed slices included.
	if items, ok := asSlice(value); ok {
		out := make([]any, len(items))

		for i, item := range items {
			mapped, err := f.applyMapping(item)
			if err != nil {
				return nil, err
			}

			out[i] = mapped
		}

		return out, nil
	}

	if mapped, ok := mappingLookup(f.Mapping, value); ok {
		return mapped, nil
	}

	if f.Mapper != nil {
		mapped, err := f.Mapper(value, f.Mapping)
		if err == nil {
			return mapped, nil
		}
		// Mapper failure falls through to Default.
	}

	if f.Default != nil {
		return f.Default, nil
	}

	return nil, fmt.Errorf("field %q: %w: %v", f.Name, ErrMappingLookup, value)
}

// mappingLookup guards against non-comparable keys, which would panic on a
// direct map access.
func mappingLookup(mapping map[any]any, value any) (any, bool) {
	if rt := reflect.TypeOf(value); rt != nil && !rt.Comparable() {
		return nil, false
	}

	mapped, ok := mapping[value]

	return mapped, ok
}

func (f *Field) checkChoices(value any) error {
	if len(f.Choices) == 0 {
		return nil
	}

	for _, choice := range f.Choices {
		if reflect.DeepEqual(value, choice) {
			return nil
		}
	}

	return fmt.Errorf("field %q: %w: %v not in %v", f.Name, ErrChoice, value, f.Choices)
}

func (f *Field) applyValidate(value any) (any, error) {
	if f.Validate == nil {
		return value, nil
	}

	out, err := f.Validate(value)
	if err != nil {
		return nil, fmt.Errorf("field %q: validation failed for %v: %w", f.Name, value, err)
	}

	return out, nil
}

// Assign validates the value and writes it at Target, creating map
// intermediates along the path.
func (f *Field) Assign(target, value any) error {
	value, err := f.applyValidate(value)
	if err != nil {
		return err
	}

	if f.Target == "" {
		return fmt.Errorf("field %q: %w: no target defined", f.Name, ErrAssignTarget)
	}

	if err := writePath(target, f.Target, value); err != nil {
		return fmt.Errorf("field %q: %w", f.Name, err)
	}

	return nil
}

// String implements fmt.Stringer.
func (f *Field) String() string {
	return fmt.Sprintf("Field(name=%q, source=%q, target=%q, required=%t)",
		f.Name, f.Source, f.Target, f.Required)
}

// PipelineWith pairs this field (as source) with a target-configured field
// into a complete source-to-target binding.
func (f *Field) PipelineWith(target Extractor) (*BoundField, error) {
	return NewBound(f, target)
}

// FallbackWith returns a FallbackField trying this field first.
func (f *Field) FallbackWith(backup Extractor) *FallbackField {
	return NewFallback(f, backup)
}

// CombineWith returns a CombinedField over this field and the others.
func (f *Field) CombineWith(others ...Extractor) *CombinedField {
	return NewCombined(append([]Extractor{f}, others...)...)
}

// NestedAt applies this field to the sub-object at path.
func (f *Field) NestedAt(path string) *NestedField {
	return NewNested(f, path)
}

// AccumulateWith returns an AccumulatedField folding this field's value with
// the others'.
func (f *Field) AccumulateWith(others ...Extractor) *AccumulatedField {
	return NewAccumulated(append([]Extractor{f}, others...)...)
}
