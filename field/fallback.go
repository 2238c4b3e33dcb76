package field

import "fmt"

// FallbackField tries a primary field and falls back to a secondary when the
// primary fails, or resolves nil without being required.
type FallbackField struct {
	Primary  Extractor
	Fallback Extractor
	Name     string
}

// NewFallback builds a fallback over primary and fallback. The node inherits
// the primary's name.
func NewFallback(primary, fallback Extractor) *FallbackField {
	return &FallbackField{
		Primary:  primary,
		Fallback: fallback,
		Name:     primary.FieldName(),
	}
}

// FieldName implements Extractor.
func (f *FallbackField) FieldName() string { return f.Name }

// IsRequired implements Extractor. Gating follows the primary: a nil primary
// result only triggers the fallback when the primary is not required.
func (f *FallbackField) IsRequired() bool { return f.Primary.IsRequired() }

// DefaultValue implements Extractor; the fallback's default is the ultimate
// resort.
func (f *FallbackField) DefaultValue() any { return f.Fallback.DefaultValue() }

// Rebind implements Extractor, rebinding both branches.
func (f *FallbackField) Rebind(b Binding) Extractor {
	return &FallbackField{
		Primary:  f.Primary.Rebind(b),
		Fallback: f.Fallback.Rebind(b),
		Name:     f.Name,
	}
}

// Extract tries the primary first. A primary error, or a nil result from a
// non-required primary, hands over to the fallback; the fallback's own
// failure propagates.
func (f *FallbackField) Extract(data any, computed map[string]any) (any, error) {
	value, err := f.Primary.Extract(data, computed)
	if err != nil {
		return f.Fallback.Extract(data, computed)
	}

	if value == nil && !f.Primary.IsRequired() {
		return f.Fallback.Extract(data, computed)
	}

	return value, nil
}

// Assign always delegates to the primary's target configuration; the
// fallback's target is never used.
func (f *FallbackField) Assign(target, value any) error {
	return f.Primary.Assign(target, value)
}

// WithName returns a copy carrying a different name.
func (f *FallbackField) WithName(name string) *FallbackField {
	clone := *f
	clone.Name = name

	return &clone
}

// String implements fmt.Stringer.
func (f *FallbackField) String() string {
	return fmt.Sprintf("FallbackField(%v | %v)", f.Primary, f.Fallback)
}
