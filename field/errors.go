package field

import "errors"

// Sentinel errors for the distinct failure kinds of the value pipeline and
// the composite nodes. Callers match them with errors.Is; messages wrapped
// around them always name the offending field and, where it helps, the
// offending value.
var (
	// ErrRequiredValue reports a required field that resolved to nil.
	ErrRequiredValue = errors.New("required value is missing")

	// ErrTypeCast reports a value the type-cast callable rejected.
	ErrTypeCast = errors.New("cannot convert value to type")

	// ErrChoice reports a post-pipeline value outside the allowed set.
	ErrChoice = errors.New("value not in allowed choices")

	// ErrMappingLookup reports a mapping miss with no usable fallback.
	ErrMappingLookup = errors.New("no mapping entry for value")

	// ErrMissingDependency reports a conditional field whose dependency is
	// absent from the computed sibling values.
	ErrMissingDependency = errors.New("dependency not available")

	// ErrNestedPath reports a required nested path that did not resolve.
	ErrNestedPath = errors.New("nested path not found")

	// ErrAssignTarget reports an assignment whose target path cannot be
	// navigated or written.
	ErrAssignTarget = errors.New("cannot resolve assignment target")

	// ErrAggregateChild reports one or more failed required children of a
	// combined field, joined into a single message.
	ErrAggregateChild = errors.New("child field extraction failed")

	// ErrDefinition reports an invalid field or binding definition.
	ErrDefinition = errors.New("invalid definition")
)
