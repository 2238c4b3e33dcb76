package declfile

import (
	"fmt"

	"fieldmap/internal/diagnostic"
	"fieldmap/transforms"
)

// typeNames are the type casts a declaration file may name.
var typeNames = map[string]bool{
	"int":    true,
	"float":  true,
	"string": true,
	"bool":   true,
}

// Validate checks a declaration file for structural problems and collects
// them all into diagnostics instead of stopping at the first.
func Validate(f *File) diagnostic.Diagnostics {
	var diags diagnostic.Diagnostics

	if len(f.Schemas) == 0 {
		diags.AddWarning("empty-file", "declaration file defines no schemas", "", "")
	}

	seen := make(map[string]bool, len(f.Schemas))

	for _, sd := range f.Schemas {
		validateSchemaDef(&sd, seen, &diags)
		seen[sd.Name] = true
	}

	return diags
}

func validateSchemaDef(sd *SchemaDef, earlier map[string]bool, diags *diagnostic.Diagnostics) {
	if sd.Name == "" {
		diags.AddError("schema-name", "schema declaration has no name", "", "")
	}

	if earlier[sd.Name] {
		diags.AddError("schema-dup", fmt.Sprintf("duplicate schema name %q", sd.Name), sd.Name, "")
	}

	if sd.Extends != "" && !earlier[sd.Extends] {
		diags.AddError("schema-extends",
			fmt.Sprintf("extends %q which is not declared earlier in the file", sd.Extends),
			sd.Name, "")
	}

	if len(sd.Fields) == 0 && sd.Extends == "" {
		diags.AddWarning("schema-empty", "schema declares no fields", sd.Name, "")
	}

	names := make(map[string]bool, len(sd.Fields))

	for i, fd := range sd.Fields {
		path := fd.Name
		if path == "" {
			path = fmt.Sprintf("fields[%d]", i)
			diags.AddError("field-name", "top-level field has no name", sd.Name, path)
		}

		if fd.Name != "" {
			if names[fd.Name] {
				diags.AddError("field-dup", fmt.Sprintf("duplicate field name %q", fd.Name), sd.Name, path)
			}

			names[fd.Name] = true
		}

		validateFieldDef(&fd, sd.Name, path, diags)
	}
}

func validateFieldDef(fd *FieldDef, schemaName, path string, diags *diagnostic.Diagnostics) {
	if fd.CompositeCount() > 1 {
		diags.AddError("field-composite",
			"field declares more than one composite block", schemaName, path)
		return
	}

	if fd.IsComposite() {
		validateComposite(fd, schemaName, path, diags)
		return
	}

	registry := transforms.Registry()
	for _, name := range fd.Transform {
		if _, ok := registry[name]; !ok {
			diags.AddError("field-transform",
				fmt.Sprintf("unknown transform %q", name), schemaName, path)
		}
	}

	if fd.Type != "" && !typeNames[fd.Type] {
		diags.AddError("field-type", fmt.Sprintf("unknown type %q", fd.Type), schemaName, path)
	}
}

func validateComposite(fd *FieldDef, schemaName, path string, diags *diagnostic.Diagnostics) {
	if fd.Source != "" || fd.Type != "" || len(fd.Transform) > 0 || len(fd.Choices) > 0 || fd.Mapping != nil {
		diags.AddError("field-mixed",
			"field mixes a composite block with leaf pipeline settings", schemaName, path)
	}

	switch {
	case fd.Fallback != nil:
		if fd.Fallback.Primary == nil || fd.Fallback.Backup == nil {
			diags.AddError("fallback-children",
				"fallback block needs both a primary and a backup field", schemaName, path)
			return
		}

		validateFieldDef(fd.Fallback.Primary, schemaName, path+".fallback.primary", diags)
		validateFieldDef(fd.Fallback.Backup, schemaName, path+".fallback.backup", diags)

	case fd.Combine != nil:
		if len(fd.Combine.Fields) == 0 {
			diags.AddError("combine-children",
				"combine block needs at least one field", schemaName, path)
			return
		}

		for i, child := range fd.Combine.Fields {
			validateFieldDef(&child, schemaName, fmt.Sprintf("%s.combine[%d]", path, i), diags)
		}

	case fd.Nested != nil:
		if fd.Nested.Path == "" {
			diags.AddError("nested-path", "nested block needs a path", schemaName, path)
		}

		if fd.Nested.Field == nil {
			diags.AddError("nested-field", "nested block needs an inner field", schemaName, path)
			return
		}

		validateFieldDef(fd.Nested.Field, schemaName, path+".nested.field", diags)

	case fd.Accumulate != nil:
		if len(fd.Accumulate.Fields) == 0 {
			diags.AddError("accumulate-children",
				"accumulate block needs at least one field", schemaName, path)
			return
		}

		for i, child := range fd.Accumulate.Fields {
			validateFieldDef(&child, schemaName, fmt.Sprintf("%s.accumulate[%d]", path, i), diags)
		}
	}
}
