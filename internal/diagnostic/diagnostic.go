// Package diagnostic collects definition-time problems found while loading
// and validating schema declaration files.
//
// Unlike extraction errors, which fail fast, declaration problems are
// gathered so a user sees every issue in a file at once. Each diagnostic
// carries a stable code, the schema it belongs to, and the offending field
// path.
package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Severity is the weight of a diagnostic.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	default:
		return "unknown"
	}
}

// Diagnostic is a single message about a declaration.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a stable identifier for this kind of problem.
	Code string
	// Message is the human-readable description.
	Message string
	// Schema names the schema declaration this relates to, if any.
	Schema string
	// FieldPath names the field this relates to, if any.
	FieldPath string
}

// String returns a formatted diagnostic line.
func (d Diagnostic) String() string {
	var prefix []string

	if d.Schema != "" {
		prefix = append(prefix, "["+d.Schema+"]")
	}

	if d.FieldPath != "" {
		prefix = append(prefix, d.FieldPath)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}

// Diagnostics accumulates the problems found in one declaration file.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// AddError records an error diagnostic.
func (d *Diagnostics) AddError(code, message, schema, fieldPath string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity:  Error,
		Code:      code,
		Message:   message,
		Schema:    schema,
		FieldPath: fieldPath,
	})
}

// AddWarning records a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, schema, fieldPath string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity:  Warning,
		Code:      code,
		Message:   message,
		Schema:    schema,
		FieldPath: fieldPath,
	})
}

// AddInfo records an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, schema, fieldPath string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity:  Info,
		Code:      code,
		Message:   message,
		Schema:    schema,
		FieldPath: fieldPath,
	})
}

// HasErrors reports whether any error diagnostics were recorded.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Merge folds another collection into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Error returns all error diagnostics rolled into one error, nil when clean.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, len(d.Errors))
	for i, e := range d.Errors {
		parts[i] = e.String()
	}

	return errors.New(strings.Join(parts, "; "))
}
