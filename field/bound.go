package field

import "fmt"

// PathConfigured is implemented by nodes that expose their source and target
// path configuration. BoundField uses it to validate bindings up front.
type PathConfigured interface {
	SourcePath() string
	TargetPath() string
}

// SourcePath implements PathConfigured.
func (f *Field) SourcePath() string { return f.Source }

// TargetPath implements PathConfigured.
func (f *Field) TargetPath() string { return f.Target }

// SourcePath implements PathConfigured, delegating to the inner field.
func (n *NestedField) SourcePath() string {
	if p, ok := n.Inner.(PathConfigured); ok {
		return p.SourcePath()
	}

	return ""
}

// TargetPath implements PathConfigured, delegating to the inner field.
func (n *NestedField) TargetPath() string {
	if p, ok := n.Inner.(PathConfigured); ok {
		return p.TargetPath()
	}

	return ""
}

// BoundField pairs a source-configured field with a target-configured field
// into one complete source-to-target mapping, with an optional extra
// transform between extraction and assignment.
type BoundField struct {
	SourceField Extractor
	TargetField Extractor
	Name        string
	Transform   TransformFunc
}

// NewBound builds a binding from a source field and a target field. A nil
// target reuses the source field for assignment. Construction fails fast
// when the source field has no source path, or when a distinct target field
// has no target path.
func NewBound(source, target Extractor) (*BoundField, error) {
	if source == nil {
		return nil, fmt.Errorf("%w: bound field requires a source field", ErrDefinition)
	}

	if target == nil {
		target = source
	}

	b := &BoundField{
		SourceField: source,
		TargetField: target,
		Name:        source.FieldName(),
	}

	if err := b.validate(); err != nil {
		return nil, err
	}

	return b, nil
}

func (b *BoundField) validate() error {
	sp, ok := b.SourceField.(PathConfigured)
	if !ok || sp.SourcePath() == "" {
		return fmt.Errorf("%w: source field %q has no source defined",
			ErrDefinition, b.SourceField.FieldName())
	}

	if b.TargetField == b.SourceField {
		return nil
	}

	tp, ok := b.TargetField.(PathConfigured)
	if !ok || tp.TargetPath() == "" {
		return fmt.Errorf("%w: target field %q has no target defined",
			ErrDefinition, b.TargetField.FieldName())
	}

	return nil
}

// TransformData performs the complete source-to-target transformation:
// extract via the source field, apply the extra transform, assign via the
// target field.
func (b *BoundField) TransformData(data, target any) error {
	value, err := b.ExtractOnly(data)
	if err != nil {
		return err
	}

	return b.TargetField.Assign(target, value)
}

// ExtractOnly runs extraction and the extra transform without assigning.
func (b *BoundField) ExtractOnly(data any) (any, error) {
	value, err := b.SourceField.Extract(data, nil)
	if err != nil {
		return nil, err
	}

	if b.Transform != nil {
		value, err = b.Transform(value)
		if err != nil {
			return nil, fmt.Errorf("bound field %q: transform failed: %w", b.Name, err)
		}
	}

	return value, nil
}

// AssignOnly assigns an already-extracted value via the target field.
func (b *BoundField) AssignOnly(target, value any) error {
	return b.TargetField.Assign(target, value)
}

// SourcePath returns the source field's read path.
func (b *BoundField) SourcePath() string {
	if p, ok := b.SourceField.(PathConfigured); ok {
		return p.SourcePath()
	}

	return ""
}

// TargetPath returns the target field's write path.
func (b *BoundField) TargetPath() string {
	if p, ok := b.TargetField.(PathConfigured); ok {
		return p.TargetPath()
	}

	return ""
}

// IsRequired reports whether either half of the binding is required.
func (b *BoundField) IsRequired() bool {
	return b.SourceField.IsRequired() || b.TargetField.IsRequired()
}

// WithTransform returns a copy carrying an extra transform.
func (b *BoundField) WithTransform(fn TransformFunc) *BoundField {
	clone := *b
	clone.Transform = fn

	return &clone
}

// WithName returns a copy carrying a different name.
func (b *BoundField) WithName(name string) *BoundField {
	clone := *b
	clone.Name = name

	return &clone
}

// BoundFromMapping builds one binding per entry of a name-to-source mapping.
// Each entry produces a source field reading the bound path and a target
// field writing under the entry's name.
func BoundFromMapping(mapping map[string]Binding) (map[string]*BoundField, error) {
	bound := make(map[string]*BoundField, len(mapping))

	for name, b := range mapping {
		if !b.HasSource {
			return nil, fmt.Errorf("%w: mapping for %q has no source path", ErrDefinition, name)
		}

		source := &Field{Name: name, Source: b.Source, Transform: b.Transform}
		target := &Field{Name: name, Target: name}

		bf, err := NewBound(source, target)
		if err != nil {
			return nil, err
		}

		bound[name] = bf
	}

	return bound, nil
}
