package modelgen

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind identifies one of the fatal or warning conditions the pipeline
// can surface (spec §7).
type ErrorKind string

const (
	// KindUnsupportedSchemaDraft: input's $schema names an unrecognized draft.
	KindUnsupportedSchemaDraft ErrorKind = "unsupported_schema_draft"
	// KindUnresolvedReference: a $ref could not be dereferenced within the document.
	KindUnresolvedReference ErrorKind = "unresolved_reference"
	// KindInvalidInput: input is neither object nor boolean, or is structurally malformed.
	KindInvalidInput ErrorKind = "invalid_input"
	// KindMergeConflict is a non-fatal warning: two models sharing an ID had
	// irreconcilable constraints during simplification.
	KindMergeConflict ErrorKind = "merge_conflict"
)

// Issue codes used in Issue.Code, one per ErrorKind.
const (
	CodeUnsupportedSchemaDraft = string(KindUnsupportedSchemaDraft)
	CodeUnresolvedReference    = string(KindUnresolvedReference)
	CodeInvalidInput           = string(KindInvalidInput)
	CodeMergeConflict          = string(KindMergeConflict)
)

// Issue represents a single pipeline diagnostic, fatal or warning.
type Issue struct {
	Path    string // JSON Pointer into the input schema document (e.g. /properties/x).
	Code    string // One of the Code* constants, or a stage-specific code.
	Message string
	Hint    string // Optional remediation hint.
	Cause   error  // Optional underlying error.
	// Params carries structured parameters (e.g. {"id": "..."}) for i18n and
	// observability.
	Params map[string]any
}

// Issues is a collection of pipeline diagnostics that implements error.
type Issues []Issue

// Error renders up to shownIssues issues as "code: message (path)", joined
// by "; ", with a trailing count of anything past that cap. Unlike the
// teacher's own Issues.Error (which has no per-issue Message to show and
// falls back to bare "code at path"), this module's Issue always carries a
// translated Message (process.go's translateWarnings/newTranslatedError
// populate it before an Issue is ever constructed), so the summary is worth
// including.
const shownIssues = 3

func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	shown := len(iss)
	if shown > shownIssues {
		shown = shownIssues
	}
	parts := make([]string, shown)
	for i := 0; i < shown; i++ {
		issue := iss[i]
		parts[i] = fmt.Sprintf("%s: %s (%s)", issue.Code, issue.Message, orRoot(issue.Path))
	}
	summary := strings.Join(parts, "; ")
	if remaining := len(iss) - shown; remaining > 0 {
		summary += fmt.Sprintf(" [+%d more]", remaining)
	}
	return summary
}

// AppendIssues appends more onto dst; append handles a nil dst on its own,
// so no separate zero-value allocation is needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	return append(dst, more...)
}

// AsIssues extracts Issues from err via errors.As.
func AsIssues(err error) (Issues, bool) {
	var target Issues
	ok := err != nil && errors.As(err, &target)
	return target, ok
}

// ProcessError wraps a single fatal Issue with its ErrorKind so callers can
// switch on the kind (spec §7 table) while still inspecting the
// JSON-Pointer-addressed Issue.
type ProcessError struct {
	Kind  ErrorKind
	Issue Issue
}

func (e *ProcessError) Error() string {
	if e.Issue.Message != "" {
		return fmt.Sprintf("%s: %s at %s", e.Kind, e.Issue.Message, orRoot(e.Issue.Path))
	}
	return fmt.Sprintf("%s at %s", e.Kind, orRoot(e.Issue.Path))
}

func (e *ProcessError) Unwrap() error { return e.Issue.Cause }

func orRoot(path string) string {
	if path == "" {
		return "/"
	}
	return path
}

// newError builds a *ProcessError for the given kind, path and message.
func newError(kind ErrorKind, path, message string, cause error) *ProcessError {
	return &ProcessError{Kind: kind, Issue: Issue{Path: orRoot(path), Code: string(kind), Message: message, Cause: cause}}
}

// IsKind reports whether err is a *ProcessError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var pe *ProcessError
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}
