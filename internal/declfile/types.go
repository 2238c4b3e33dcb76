package declfile

import "errors"

// File is the root of a YAML schema declaration file.
type File struct {
	// Version of the declaration format (for future compatibility).
	Version string `yaml:"version,omitempty"`

	// Schemas lists the schema declarations in order. Later schemas may
	// extend earlier ones.
	Schemas []SchemaDef `yaml:"schemas"`
}

// SchemaDef declares one schema: a name, an optional base, and its fields
// in declaration order.
type SchemaDef struct {
	// Name identifies the schema inside the file.
	Name string `yaml:"name"`

	// Extends names an earlier schema in the same file whose fields are
	// inherited; fields declared here override inherited ones by name.
	Extends string `yaml:"extends,omitempty"`

	// Fields are the schema's field definitions.
	Fields []FieldDef `yaml:"fields"`
}

// FieldDef declares one field. A definition is either a leaf (pipeline
// configuration) or exactly one composite block.
type FieldDef struct {
	// Name keys the field in the schema registry. Top-level fields need a
	// name; composite children may omit it.
	Name string `yaml:"name,omitempty"`

	// Leaf pipeline configuration.
	Source    string      `yaml:"source,omitempty"`
	Target    string      `yaml:"target,omitempty"`
	Required  bool        `yaml:"required,omitempty"`
	Default   any         `yaml:"default,omitempty"`
	Type      string      `yaml:"type,omitempty"`
	Transform StringArray `yaml:"transform,omitempty"`
	Choices   []any       `yaml:"choices,omitempty"`
	Mapping   map[any]any `yaml:"mapping,omitempty"`
	Transient bool        `yaml:"transient,omitempty"`

	// Composite blocks; at most one may be set.
	Fallback   *FallbackDef   `yaml:"fallback,omitempty"`
	Combine    *CombineDef    `yaml:"combine,omitempty"`
	Nested     *NestedDef     `yaml:"nested,omitempty"`
	Accumulate *AccumulateDef `yaml:"accumulate,omitempty"`
}

// IsComposite reports whether the definition declares a composite block.
func (d *FieldDef) IsComposite() bool {
	return d.Fallback != nil || d.Combine != nil || d.Nested != nil || d.Accumulate != nil
}

// CompositeCount returns how many composite blocks are set; more than one
// is a definition error.
func (d *FieldDef) CompositeCount() int {
	count := 0

	for _, set := range []bool{d.Fallback != nil, d.Combine != nil, d.Nested != nil, d.Accumulate != nil} {
		if set {
			count++
		}
	}

	return count
}

// FallbackDef declares a primary/backup field pair.
type FallbackDef struct {
	Primary *FieldDef `yaml:"primary"`
	Backup  *FieldDef `yaml:"backup"`
}

// CombineDef declares the children of a combined field.
type CombineDef struct {
	Fields []FieldDef `yaml:"fields"`
}

// NestedDef declares an inner field applied at a dot path.
type NestedDef struct {
	Path  string    `yaml:"path"`
	Field *FieldDef `yaml:"field"`
}

// AccumulateDef declares the children of an accumulated field and the
// separator for string joins.
type AccumulateDef struct {
	Separator string     `yaml:"separator,omitempty"`
	Fields    []FieldDef `yaml:"fields"`
}

// StringArray unmarshals from either a single string or a list of strings,
// so `transform: lower` and `transform: [strip, lower]` both work.
type StringArray []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *StringArray) UnmarshalYAML(unmarshal func(any) error) error {
	var single string
	if err := unmarshal(&single); err == nil {
		*s = []string{single}
		return nil
	}

	var multi []string
	if err := unmarshal(&multi); err == nil {
		*s = multi
		return nil
	}

	return errors.New("expected string or list of strings")
}
