// Package transform composes value transforms over the callable contract
// that fields consume.
//
// The combinators mirror field composition: Pipeline chains transforms,
// Fallback tries a backup when the primary fails, Parallel fans a value out
// and recombines the results. When gates a transform on a predicate, and
// MultiField adapts a positional function into a condition evaluator for
// conditional fields.
package transform

import (
	"fmt"

	"fieldmap/field"
)

// Pipeline chains transforms left to right, each receiving the previous
// result.
func Pipeline(steps ...field.TransformFunc) field.TransformFunc {
	return func(value any) (any, error) {
		var err error

		for i, step := range steps {
			value, err = step(value)
			if err != nil {
				return nil, fmt.Errorf("pipeline step %d: %w", i, err)
			}
		}

		return value, nil
	}
}

// Fallback tries the primary transform and falls back to backup when the
// primary fails.
func Fallback(primary, backup field.TransformFunc) field.TransformFunc {
	return func(value any) (any, error) {
		out, err := primary(value)
		if err == nil {
			return out, nil
		}

		return backup(value)
	}
}

// Parallel applies every transform to the same input and combines the
// results. A nil combiner returns the results as a []any.
func Parallel(combiner func(results []any) (any, error), steps ...field.TransformFunc) field.TransformFunc {
	return func(value any) (any, error) {
		results := make([]any, len(steps))

		for i, step := range steps {
			out, err := step(value)
			if err != nil {
				return nil, fmt.Errorf("parallel step %d: %w", i, err)
			}

			results[i] = out
		}

		if combiner == nil {
			return results, nil
		}

		return combiner(results)
	}
}

// When applies then when the predicate holds, otherwise otherwise. A nil
// otherwise passes the value through unchanged.
func When(pred func(any) bool, then, otherwise field.TransformFunc) field.TransformFunc {
	return func(value any) (any, error) {
		if pred(value) {
			return then(value)
		}

		if otherwise == nil {
			return value, nil
		}

		return otherwise(value)
	}
}

// MultiField adapts a positional function into a condition evaluator for
// conditional fields: the dependency values arrive in declaration order.
func MultiField(fn func(deps ...any) (any, error)) field.ConditionFunc {
	return field.ConditionFunc(fn)
}

// Value returns a condition evaluator producing a constant, useful for the
// short-circuit "value" override.
func Value(v any) field.ConditionFunc {
	return func(...any) (any, error) {
		return v, nil
	}
}
