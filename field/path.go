package field

import (
	"fmt"
	"reflect"
	"strings"
)

// Getter is implemented by containers that expose values by key.
// The resolver prefers it over reflection.
type Getter interface {
	Get(key string) (any, bool)
}

// Setter is implemented by containers that accept values by key.
type Setter interface {
	Set(key string, value any)
}

// splitPath splits a dot-separated path into its segments.
func splitPath(path string) []string {
	return strings.Split(path, ".")
}

// lookupSegment reads one path segment from a container.
//
// Containers are either indexable (map[string]any, Getter) or
// attribute-bearing (a struct or pointer to struct with an exported field of
// that name). Anything else does not resolve.
func lookupSegment(container any, name string) (any, bool) {
	if container == nil {
		return nil, false
	}

	switch c := container.(type) {
	case map[string]any:
		v, ok := c[name]
		return v, ok
	case Getter:
		return c.Get(name)
	}

	rv := reflect.ValueOf(container)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil, false
	}

	fv := rv.FieldByName(name)
	if !fv.IsValid() || !fv.CanInterface() {
		return nil, false
	}

	return fv.Interface(), true
}

// resolvePath navigates a dot-separated path for reading.
// A missing segment or a nil value anywhere along the path yields def.
func resolvePath(data any, path string, def any) any {
	current := data

	for _, part := range splitPath(path) {
		next, ok := lookupSegment(current, part)
		if !ok || next == nil {
			return def
		}

		current = next
	}

	return current
}

// isNilContainer reports whether a value is a typed nil map or pointer hiding
// behind a non-nil interface.
func isNilContainer(v any) bool {
	rv := reflect.ValueOf(v)

	return rv.IsValid() && (rv.Kind() == reflect.Map || rv.Kind() == reflect.Pointer) && rv.IsNil()
}

// setSegment writes one value into a container under the given key.
func setSegment(container any, key string, value any) error {
	switch c := container.(type) {
	case map[string]any:
		if c == nil {
			return fmt.Errorf("%w: nil container for segment %q", ErrAssignTarget, key)
		}

		c[key] = value

		return nil
	case Setter:
		c.Set(key, value)
		return nil
	}

	rv := reflect.ValueOf(container)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return fmt.Errorf("%w: nil container for segment %q", ErrAssignTarget, key)
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("%w: cannot set %q on %T", ErrAssignTarget, key, container)
	}

	fv := rv.FieldByName(key)
	if !fv.IsValid() || !fv.CanSet() {
		return fmt.Errorf("%w: cannot set %q on %T", ErrAssignTarget, key, container)
	}

	if value == nil {
		fv.Set(reflect.Zero(fv.Type()))
		return nil
	}

	vv := reflect.ValueOf(value)
	if !vv.Type().AssignableTo(fv.Type()) {
		return fmt.Errorf("%w: cannot assign %T to %q on %T", ErrAssignTarget, value, key, container)
	}

	fv.Set(vv)

	return nil
}

// stepForWrite navigates one intermediate segment for writing, creating an
// empty map[string]any under maps when the segment is missing. Struct
// segments must already exist; intermediates are never created as struct
// fields.
func stepForWrite(container any, name string) (any, error) {
	switch c := container.(type) {
	case map[string]any:
		if c == nil {
			return nil, fmt.Errorf("%w: nil container at segment %q", ErrAssignTarget, name)
		}

		// A typed-nil entry is as unusable as a missing one.
		next, ok := c[name]
		if !ok || next == nil || isNilContainer(next) {
			created := map[string]any{}
			c[name] = created

			return created, nil
		}

		return next, nil
	case Getter:
		if next, ok := c.Get(name); ok && next != nil && !isNilContainer(next) {
			return next, nil
		}

		if s, ok := container.(Setter); ok {
			created := map[string]any{}
			s.Set(name, created)

			return created, nil
		}

		return nil, fmt.Errorf("%w: missing segment %q", ErrAssignTarget, name)
	}

	rv := reflect.ValueOf(container)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, fmt.Errorf("%w: nil container at segment %q", ErrAssignTarget, name)
		}

		rv = rv.Elem()
	}

	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: cannot navigate %q in %T", ErrAssignTarget, name, container)
	}

	fv := rv.FieldByName(name)
	if !fv.IsValid() || !fv.CanInterface() {
		return nil, fmt.Errorf("%w: missing segment %q in %T", ErrAssignTarget, name, container)
	}

	// An uninitialized map field gets allocated before descending.
	if fv.Kind() == reflect.Map && fv.IsNil() {
		if !fv.CanSet() {
			return nil, fmt.Errorf("%w: nil map segment %q in %T", ErrAssignTarget, name, container)
		}

		fv.Set(reflect.MakeMap(fv.Type()))
	}

	// Descend by address where possible so nested struct writes stick.
	if fv.Kind() == reflect.Struct && fv.CanAddr() {
		return fv.Addr().Interface(), nil
	}

	return fv.Interface(), nil
}

// writePath navigates a dot-separated path for writing and sets the final
// segment. Missing intermediates under map-like containers are auto-created
// as empty map[string]any.
func writePath(target any, path string, value any) error {
	parts := splitPath(path)
	current := target

	for _, part := range parts[:len(parts)-1] {
		next, err := stepForWrite(current, part)
		if err != nil {
			return fmt.Errorf("cannot navigate to nested target %q: %w", path, err)
		}

		current = next
	}

	return setSegment(current, parts[len(parts)-1], value)
}

// resolveOrCreate navigates every segment of a path for writing, creating
// map intermediates as needed, and returns the final container.
func resolveOrCreate(target any, path string) (any, error) {
	current := target

	for _, part := range splitPath(path) {
		next, err := stepForWrite(current, part)
		if err != nil {
			return nil, fmt.Errorf("cannot create nested path %q: %w", path, err)
		}

		current = next
	}

	return current, nil
}
