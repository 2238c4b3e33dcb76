package transform

import (
	"fmt"

	"fieldmap/field"
)

// Named wraps a transform with a name so composed chains report which step
// rejected a value. Composition methods return new values; a Named is never
// mutated.
type Named struct {
	Name string
	Fn   field.TransformFunc
}

// NewNamed builds a named transform.
func NewNamed(name string, fn field.TransformFunc) Named {
	return Named{Name: name, Fn: fn}
}

// Apply runs the transform, wrapping a failure with the transform's name.
func (n Named) Apply(value any) (any, error) {
	out, err := n.Fn(value)
	if err != nil {
		return nil, fmt.Errorf("transform %q: %w", n.Name, err)
	}

	return out, nil
}

// Func adapts the named transform back to the plain callable contract fields
// consume, keeping the name in failure messages.
func (n Named) Func() field.TransformFunc {
	return n.Apply
}

// Then chains this transform into the next, left to right.
func (n Named) Then(next Named) Named {
	return Named{
		Name: n.Name + " -> " + next.Name,
		Fn:   Pipeline(n.Apply, next.Apply),
	}
}

// Or tries this transform and falls back to the other when it fails.
func (n Named) Or(backup Named) Named {
	return Named{
		Name: n.Name + " | " + backup.Name,
		Fn:   Fallback(n.Apply, backup.Apply),
	}
}

// And fans the value out to both transforms and returns the two results as a
// []any pair.
func (n Named) And(other Named) Named {
	return Named{
		Name: n.Name + " & " + other.Name,
		Fn:   Parallel(nil, n.Apply, other.Apply),
	}
}

// String implements fmt.Stringer.
func (n Named) String() string {
	return fmt.Sprintf("Transform(%s)", n.Name)
}
