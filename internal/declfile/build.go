package declfile

import (
	"fmt"

	"fieldmap/field"
	"fieldmap/schema"
	"fieldmap/transform"
	"fieldmap/transforms"
)

// typeFuncs maps declaration type names to their cast functions.
var typeFuncs = map[string]field.TypeFunc{
	"int":    transforms.ToInt,
	"float":  transforms.ToFloat,
	"string": transforms.ToString,
	"bool":   transforms.ParseBool,
}

// Build validates a declaration file and constructs its schemas. The result
// maps schema names to built schemas; Order lists them in declaration order.
func Build(f *File) (map[string]*schema.Schema, error) {
	diags := Validate(f)
	if err := diags.Error(); err != nil {
		return nil, err
	}

	built := make(map[string]*schema.Schema, len(f.Schemas))

	for _, sd := range f.Schemas {
		s, err := buildSchema(&sd, built)
		if err != nil {
			return nil, fmt.Errorf("schema %q: %w", sd.Name, err)
		}

		built[sd.Name] = s
	}

	return built, nil
}

// Order returns the schema names of a file in declaration order.
func Order(f *File) []string {
	names := make([]string, 0, len(f.Schemas))
	for _, sd := range f.Schemas {
		names = append(names, sd.Name)
	}

	return names
}

func buildSchema(sd *SchemaDef, built map[string]*schema.Schema) (*schema.Schema, error) {
	entries := make([]schema.Entry, 0, len(sd.Fields))

	for _, fd := range sd.Fields {
		f, err := buildField(&fd)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", fd.Name, err)
		}

		entries = append(entries, schema.Entry{Name: fd.Name, Field: f})
	}

	if sd.Extends != "" {
		base, ok := built[sd.Extends]
		if !ok {
			return nil, fmt.Errorf("%w: extends unknown schema %q", field.ErrDefinition, sd.Extends)
		}

		return schema.Extend(base, entries...)
	}

	return schema.New(entries...)
}

// buildField turns a definition into a runnable field, recursing into
// composite blocks.
func buildField(fd *FieldDef) (field.Extractor, error) {
	switch {
	case fd.Fallback != nil:
		return buildFallback(fd)
	case fd.Combine != nil:
		return buildCombine(fd)
	case fd.Nested != nil:
		return buildNested(fd)
	case fd.Accumulate != nil:
		return buildAccumulate(fd)
	}

	return buildLeaf(fd)
}

func buildLeaf(fd *FieldDef) (*field.Field, error) {
	f := &field.Field{
		Name:           fd.Name,
		Source:         fd.Source,
		Target:         fd.Target,
		Required:       fd.Required,
		Default:        fd.Default,
		Choices:        normalizeChoices(fd.Choices),
		Mapping:        normalizeMapping(fd.Mapping),
		TransientField: fd.Transient,
	}

	if fd.Type != "" {
		fn, ok := typeFuncs[fd.Type]
		if !ok {
			return nil, fmt.Errorf("%w: unknown type %q", field.ErrDefinition, fd.Type)
		}

		f.Type = fn
	}

	if len(fd.Transform) > 0 {
		steps, err := resolveTransforms(fd.Transform)
		if err != nil {
			return nil, err
		}

		f.Transform = transform.Pipeline(steps...)
	}

	return f, nil
}

// normalizeMapping doubles integral numeric keys so lookups hit regardless of
// whether the input arrived as int (YAML) or float64 (JSON).
func normalizeMapping(mapping map[any]any) map[any]any {
	if mapping == nil {
		return nil
	}

	out := make(map[any]any, len(mapping))
	for k, v := range mapping {
		out[k] = v

		if twin, ok := numericTwin(k); ok {
			if _, taken := mapping[twin]; !taken {
				out[twin] = v
			}
		}
	}

	return out
}

// normalizeChoices appends the numeric twins of integral choice values.
func normalizeChoices(choices []any) []any {
	if choices == nil {
		return nil
	}

	out := make([]any, 0, len(choices))
	for _, c := range choices {
		out = append(out, c)

		if twin, ok := numericTwin(c); ok {
			out = append(out, twin)
		}
	}

	return out
}

// numericTwin returns the float64 form of an int and vice versa for integral
// floats.
func numericTwin(v any) (any, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}

	return nil, false
}

func resolveTransforms(names []string) ([]field.TransformFunc, error) {
	registry := transforms.Registry()
	steps := make([]field.TransformFunc, 0, len(names))

	for _, name := range names {
		fn, ok := registry[name]
		if !ok {
			return nil, fmt.Errorf("%w: unknown transform %q", field.ErrDefinition, name)
		}

		steps = append(steps, fn)
	}

	return steps, nil
}

func buildFallback(fd *FieldDef) (field.Extractor, error) {
	primary, err := buildField(fd.Fallback.Primary)
	if err != nil {
		return nil, fmt.Errorf("fallback primary: %w", err)
	}

	backup, err := buildField(fd.Fallback.Backup)
	if err != nil {
		return nil, fmt.Errorf("fallback backup: %w", err)
	}

	fb := field.NewFallback(primary, backup)
	if fd.Name != "" {
		fb.Name = fd.Name
	}

	return fb, nil
}

func buildCombine(fd *FieldDef) (field.Extractor, error) {
	children := make([]field.Extractor, 0, len(fd.Combine.Fields))

	for i, child := range fd.Combine.Fields {
		f, err := buildField(&child)
		if err != nil {
			return nil, fmt.Errorf("combine field %d: %w", i, err)
		}

		children = append(children, f)
	}

	c := field.NewCombined(children...)
	c.Name = fd.Name

	return c, nil
}

func buildNested(fd *FieldDef) (field.Extractor, error) {
	inner, err := buildField(fd.Nested.Field)
	if err != nil {
		return nil, fmt.Errorf("nested field: %w", err)
	}

	n := field.NewNested(inner, fd.Nested.Path)
	if fd.Name != "" {
		n.Name = fd.Name
	}

	return n, nil
}

func buildAccumulate(fd *FieldDef) (field.Extractor, error) {
	children := make([]field.Extractor, 0, len(fd.Accumulate.Fields))

	for i, child := range fd.Accumulate.Fields {
		f, err := buildField(&child)
		if err != nil {
			return nil, fmt.Errorf("accumulate field %d: %w", i, err)
		}

		children = append(children, f)
	}

	a := field.NewAccumulated(children...)
	a.Name = fd.Name

	if fd.Accumulate.Separator != "" {
		a.Separator = fd.Accumulate.Separator
	}

	return a, nil
}
