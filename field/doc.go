// Package field implements the extraction/assignment units that schemas are
// built from.
//
// A Field is the atomic unit: it reads a raw value from a source path,
// pushes it through a fixed value pipeline, and can write the result to a
// target path. Fields compose into larger nodes with distinct semantics:
//
//   - FallbackField: try a primary field, fall back to a secondary
//   - CombinedField: run several fields and collect their results by name
//   - NestedField: apply a field against a nested sub-object
//   - AccumulatedField: run several fields and fold their values together
//   - BoundField: a complete source-to-target pairing of two fields
//
// # Value pipeline
//
// Extraction applies stages in a fixed order, each stage receiving the
// previous stage's output:
//
//  1. raw retrieval via the source path (missing or nil yields Default)
//  2. Transform
//  3. Type cast
//  4. Mapping lookup (element-wise for slices, Mapper on miss)
//  5. Choices membership check
//  6. Validate hook
//  7. Required check
//
// # Paths
//
// Source, target, and nested paths are dot-separated segment sequences
// ("user.profile.name"). A container is either indexable (map[string]any or
// the Getter/Setter interfaces) or attribute-bearing (a struct with exported
// fields). Reads fall back to the field's Default when a segment is missing
// or nil. Writes auto-create map[string]any intermediates, never struct
// fields.
//
// # Immutability
//
// Fields and composites are value objects: composition helpers and With*
// methods return new instances and never mutate the receiver. Conditional
// extraction runs against a transient copy of the field, so sharing one
// field across schemas is safe.
package field
