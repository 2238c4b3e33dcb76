package field

import (
	"fmt"
	"reflect"
	"strings"
)

// GuardFunc gates an operation: extraction guards see the source data,
// assignment guards see the value about to be assigned.
type GuardFunc func(v any) bool

// SourceField is a leaf field with extra extraction capabilities: a list of
// fallback source paths tried in order when the primary path resolves
// nothing, and an optional guard that skips extraction entirely.
type SourceField struct {
	Field

	// Fallbacks are alternative source paths tried in order.
	Fallbacks []string

	// Condition, when set and false for the source data, short-circuits
	// extraction to the default.
	Condition GuardFunc
}

// Extract tries the primary source first, then each fallback path against a
// transient copy of the field. All paths exhausted yields the default, or an
// error when required.
func (s *SourceField) Extract(data any, computed map[string]any) (any, error) {
	if s.Condition != nil && !s.Condition(data) {
		return s.Default, nil
	}

	value, err := s.Field.Extract(data, computed)
	if err == nil && !reflect.DeepEqual(value, s.Default) {
		return value, nil
	}

	for _, fallback := range s.Fallbacks {
		clone := s.Field
		clone.Source = fallback

		value, err := clone.Extract(data, computed)
		if err != nil {
			continue
		}

		if !reflect.DeepEqual(value, s.Default) {
			return value, nil
		}
	}

	if s.Required {
		sources := append([]string{s.Source}, s.Fallbacks...)

		return nil, fmt.Errorf("field %q: %w: not found in any source (%s)",
			s.Name, ErrRequiredValue, strings.Join(sources, ", "))
	}

	return s.Default, nil
}

// Rebind implements Extractor.
func (s *SourceField) Rebind(b Binding) Extractor {
	clone := *s
	if b.HasSource {
		clone.Source = b.Source
	}

	if b.Transform != nil {
		clone.Transform = b.Transform
	}

	return &clone
}

// AddFallback returns a copy with one more fallback source path.
func (s *SourceField) AddFallback(path string) *SourceField {
	clone := *s
	clone.Fallbacks = append(append([]string{}, s.Fallbacks...), path)

	return &clone
}

// TargetField is a leaf field with extra assignment capabilities: a value
// formatter, an assignment guard, and additional target paths receiving the
// same value.
type TargetField struct {
	Field

	// Formatter reshapes the value right before assignment.
	Formatter TransformFunc

	// Condition, when set and false for the value, skips assignment.
	Condition GuardFunc

	// AdditionalTargets receive the same value after the primary target.
	AdditionalTargets []string
}

// Assign formats and validates the value, then writes it to the primary
// target and every additional target. Each extra target uses a transient
// copy of the field, so the receiver is never mutated.
func (t *TargetField) Assign(target, value any) error {
	if t.Condition != nil && !t.Condition(value) {
		return nil
	}

	if t.Formatter != nil {
		formatted, err := t.Formatter(value)
		if err != nil {
			return fmt.Errorf("field %q: formatter failed for %v: %w", t.Name, value, err)
		}

		value = formatted
	}

	if err := t.Field.Assign(target, value); err != nil {
		return err
	}

	for _, path := range t.AdditionalTargets {
		clone := t.Field
		clone.Target = path

		if err := clone.Assign(target, value); err != nil {
			return err
		}
	}

	return nil
}

// Rebind implements Extractor.
func (t *TargetField) Rebind(b Binding) Extractor {
	clone := *t
	if b.HasSource {
		clone.Source = b.Source
	}

	if b.Transform != nil {
		clone.Transform = b.Transform
	}

	return &clone
}

// AddTarget returns a copy with one more target path.
func (t *TargetField) AddTarget(path string) *TargetField {
	clone := *t
	clone.AdditionalTargets = append(append([]string{}, t.AdditionalTargets...), path)

	return &clone
}
