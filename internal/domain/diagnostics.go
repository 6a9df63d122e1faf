package domain

import "fmt"

// DiagnosticKind classifies a contained, non-fatal parse issue.
type DiagnosticKind string

// Diagnostic kinds.
const (
	// DiagFieldCoercion: a single optional field's text could not be
	// coerced to its typed form; the field was left absent.
	DiagFieldCoercion DiagnosticKind = "field_coercion"

	// DiagUnresolvedReference: a subsystem reference could not be located
	// or loaded; the block keeps an absent nested system.
	DiagUnresolvedReference DiagnosticKind = "unresolved_reference"

	// DiagSkippedReference: a manifest entry was missing required fields
	// and was skipped.
	DiagSkippedReference DiagnosticKind = "skipped_reference"
)

// Diagnostic records one contained parse issue for tooling that wants to
// surface them. Parsing succeeds regardless.
type Diagnostic struct {
	Kind DiagnosticKind

	// Path is the file the issue occurred in.
	Path string

	// Subject names the affected entity: a block name, field name or
	// reference string.
	Subject string

	Detail string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s %s: %s: %s", d.Kind, d.Path, d.Subject, d.Detail)
}
