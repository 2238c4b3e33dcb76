package field

import (
	"fmt"
	"sort"
)

// Override keys recognized by conditional extraction. "value" short-circuits
// the pipeline entirely; the rest temporarily replace the like-named field
// attribute for one extraction.
const (
	overrideValue     = "value"
	overrideRequired  = "required"
	overrideDefault   = "default"
	overrideTransform = "transform"
	overrideType      = "type"
	overrideChoices   = "choices"
	overrideMapping   = "mapping"
)

// Dependent is implemented by fields whose extraction depends on sibling
// values. The dependency resolver uses it to build the execution graph.
type Dependent interface {
	DependsOn() []string
}

// DependsOn implements Dependent. Non-conditional fields declare no
// dependencies.
func (f *Field) DependsOn() []string {
	if !f.Conditional {
		return nil
	}

	return f.Dependencies
}

// extractConditional evaluates the field's conditions against the computed
// sibling values, then either short-circuits with a direct value or runs the
// normal pipeline on a transient copy with the evaluated overrides applied.
func (f *Field) extractConditional(data any, computed map[string]any) (any, error) {
	if computed == nil {
		return nil, fmt.Errorf("field %q: conditional extraction requires computed sibling values", f.Name)
	}

	evaluated, err := f.evaluateConditions(computed)
	if err != nil {
		return nil, err
	}

	if v, ok := evaluated[overrideValue]; ok {
		return v, nil
	}

	clone, err := f.withOverrides(evaluated)
	if err != nil {
		return nil, err
	}

	return clone.extractPipeline(data)
}

// evaluateConditions gathers dependency values and runs every evaluator
// positionally over them.
func (f *Field) evaluateConditions(computed map[string]any) (map[string]any, error) {
	if len(f.Dependencies) == 0 {
		return nil, fmt.Errorf("field %q: %w: conditional field has no dependencies", f.Name, ErrDefinition)
	}

	if len(f.Conditions) == 0 {
		return nil, fmt.Errorf("field %q: %w: conditional field has no conditions", f.Name, ErrDefinition)
	}

	depvals := make([]any, 0, len(f.Dependencies))

	for _, dep := range f.Dependencies {
		v, ok := computed[dep]
		if !ok {
			return nil, fmt.Errorf("field %q: %w: %q", f.Name, ErrMissingDependency, dep)
		}

		depvals = append(depvals, v)
	}

	// Deterministic evaluation order so a failing condition is reported
	// consistently.
	keys := make([]string, 0, len(f.Conditions))
	for key := range f.Conditions {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	evaluated := make(map[string]any, len(keys))

	for _, key := range keys {
		result, err := f.Conditions[key](depvals...)
		if err != nil {
			return nil, fmt.Errorf("field %q: condition %q failed: %w", f.Name, key, err)
		}

		evaluated[key] = result
	}

	return evaluated, nil
}

// withOverrides builds a transient copy of the field with the evaluated
// overrides applied. The receiver is never touched, so concurrent extraction
// of the same field stays safe.
func (f *Field) withOverrides(overrides map[string]any) (*Field, error) {
	clone := *f
	clone.Conditional = false

	for key, value := range overrides {
		switch key {
		case overrideRequired:
			b, ok := value.(bool)
			if !ok {
				return nil, f.overrideTypeError(key, value, "bool")
			}

			clone.Required = b
		case overrideDefault:
			clone.Default = value
		case overrideTransform:
			fn, ok := asTransformFunc(value)
			if !ok {
				return nil, f.overrideTypeError(key, value, "TransformFunc")
			}

			clone.Transform = fn
		case overrideType:
			fn, ok := asTypeFunc(value)
			if !ok {
				return nil, f.overrideTypeError(key, value, "TypeFunc")
			}

			clone.Type = fn
		case overrideChoices:
			choices, ok := value.([]any)
			if !ok {
				return nil, f.overrideTypeError(key, value, "[]any")
			}

			clone.Choices = choices
		case overrideMapping:
			mapping, ok := value.(map[any]any)
			if !ok {
				return nil, f.overrideTypeError(key, value, "map[any]any")
			}

			clone.Mapping = mapping
		default:
			return nil, fmt.Errorf("field %q: %w: unknown condition override %q", f.Name, ErrDefinition, key)
		}
	}

	return &clone, nil
}

func (f *Field) overrideTypeError(key string, value any, want string) error {
	return fmt.Errorf("field %q: %w: condition override %q is %T, want %s",
		f.Name, ErrDefinition, key, value, want)
}

func asTransformFunc(value any) (TransformFunc, bool) {
	switch fn := value.(type) {
	case TransformFunc:
		return fn, true
	case func(any) (any, error):
		return fn, true
	}

	return nil, false
}

func asTypeFunc(value any) (TypeFunc, bool) {
	switch fn := value.(type) {
	case TypeFunc:
		return fn, true
	case func(any) (any, error):
		return fn, true
	}

	return nil, false
}
