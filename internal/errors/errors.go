// Package errors defines the sentinel and typed errors used across searcher,
// together with helpers for wrapping and classifying them.
//
// Typed errors carry the context a caller needs to report a failure:
//   - ToggleError: a toggle action failed during a search pass
//   - DocumentError: an HTML document could not be read, parsed or written
//   - NotFoundError: a named resource does not exist
//   - ValidationError: a field holds an invalid value
//
// Every typed error has a Severity and says whether its message is meant for
// users:
//
//	var toggleErr *errors.ToggleError
//	if errors.As(err, &toggleErr) {
//	    fmt.Println(toggleErr.ItemIndex)
//	}
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-exported so callers need only this package.
var (
	Is   = errors.Is
	As   = errors.As
	New  = errors.New
	Join = errors.Join
)

// Severity ranks how serious an error is.
type Severity int

const (
	SeverityDebug Severity = iota
	SeverityInfo
	SeverityWarning
	SeverityError
	SeverityCritical
)

var severityNames = [...]string{"debug", "info", "warning", "error", "critical"}

func (s Severity) String() string {
	if s < 0 || int(s) >= len(severityNames) {
		return "unknown"
	}
	return severityNames[s]
}

// Search sentinels
var (
	// ErrToggleFailed matches every ToggleError.
	ErrToggleFailed = New("toggle action failed")
	// ErrNoInput indicates that no input control could be located.
	ErrNoInput = New("no input located")
	// ErrNoContainer indicates that no container element could be located.
	ErrNoContainer = New("no container located")
	// ErrInvalidSelector indicates that a CSS selector could not be compiled.
	ErrInvalidSelector = New("invalid selector")
	// ErrInvalidToggle indicates an unknown toggle mode.
	ErrInvalidToggle = New("invalid toggle mode")
)

// Document sentinels
var (
	ErrDocumentParse  = New("document parse failed")
	ErrDocumentRender = New("document render failed")
)

// ErrInvalidInput matches every ValidationError.
var ErrInvalidInput = New("invalid input")

// SearcherError is implemented by every typed error in this package.
type SearcherError interface {
	error
	Unwrap() error
	Severity() Severity
	// IsUserFacing reports whether the message can be shown to users as-is.
	IsUserFacing() bool
}

type baseError struct {
	message    string
	cause      error
	severity   Severity
	userFacing bool
}

func (e *baseError) Unwrap() error        { return e.cause }
func (e *baseError) Severity() Severity   { return e.severity }
func (e *baseError) IsUserFacing() bool   { return e.userFacing }
func (e *baseError) Is(target error) bool { return e.cause != nil && errors.Is(e.cause, target) }

// format renders "kind [k=v, ...]: message: cause", leaving out the empty
// parts.
func (e *baseError) format(kind string, context ...string) string {
	var b strings.Builder
	b.WriteString(kind)
	if len(context) > 0 {
		b.WriteString(" [" + strings.Join(context, ", ") + "]")
	}
	b.WriteString(": " + e.message)
	if e.cause != nil {
		fmt.Fprintf(&b, ": %v", e.cause)
	}
	return b.String()
}

// ToggleError is returned from a search pass when the toggle action fails.
// The pass stops at the failing item.
type ToggleError struct {
	baseError
	ItemIndex int
	Container string
}

// NewToggleError creates a ToggleError for the item at index.
func NewToggleError(index int, cause error) *ToggleError {
	return &ToggleError{
		baseError: baseError{message: "toggle action failed", cause: cause, severity: SeverityError},
		ItemIndex: index,
	}
}

// WithContainer records which container the pass was running on.
func (e *ToggleError) WithContainer(container string) *ToggleError {
	e.Container = container
	return e
}

func (e *ToggleError) Error() string {
	context := []string{fmt.Sprintf("item=%d", e.ItemIndex)}
	if e.Container != "" {
		context = append(context, "container="+e.Container)
	}
	return e.format("toggle error", context...)
}

func (e *ToggleError) Is(target error) bool {
	if _, ok := target.(*ToggleError); ok || target == ErrToggleFailed {
		return true
	}
	return e.baseError.Is(target)
}

// DocumentError reports a document that could not be loaded or written.
//
//	err := errors.NewDocumentError("failed to parse document", errors.ErrDocumentParse).WithPath("menu.html")
type DocumentError struct {
	baseError
	Path string
}

// NewDocumentError creates a DocumentError.
func NewDocumentError(message string, cause error) *DocumentError {
	return &DocumentError{
		baseError: baseError{message: message, cause: cause, severity: SeverityError, userFacing: true},
	}
}

// WithPath records the document path.
func (e *DocumentError) WithPath(path string) *DocumentError {
	e.Path = path
	return e
}

func (e *DocumentError) Error() string {
	if e.Path == "" {
		return e.format("document error")
	}
	return e.format("document error", "path="+e.Path)
}

func (e *DocumentError) Is(target error) bool {
	if _, ok := target.(*DocumentError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// NotFoundError reports a named resource that does not exist, such as an
// unknown configuration key.
type NotFoundError struct {
	baseError
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a NotFoundError; its message reads
// "<type> '<id>' not found".
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		baseError: baseError{
			message:    fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
			severity:   SeverityWarning,
			userFacing: true,
		},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

func (e *NotFoundError) Error() string { return e.message }

func (e *NotFoundError) Is(target error) bool {
	_, ok := target.(*NotFoundError)
	return ok
}

// ValidationError reports an invalid value for a named field.
//
//	err := errors.NewValidationError("selector does not compile").WithField("item_selector").WithValue("tr[")
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{message: message, severity: SeverityWarning, userFacing: true},
	}
}

// WithField records the name of the invalid field.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue records the rejected value.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause records the underlying error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

func (e *ValidationError) Error() string {
	var context []string
	if e.Field != "" {
		context = append(context, "field="+e.Field)
	}
	if e.Value != nil {
		context = append(context, fmt.Sprintf("value=%v", e.Value))
	}
	return e.format("validation error", context...)
}

func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok || target == ErrInvalidInput {
		return true
	}
	return e.baseError.Is(target)
}

// IsUserFacing reports whether err, or an error it wraps, is a typed error
// whose message is meant for users.
func IsUserFacing(err error) bool {
	var searcherErr SearcherError
	return As(err, &searcherErr) && searcherErr.IsUserFacing()
}

// GetSeverity returns the severity of the first typed error in err's chain.
// Untyped errors count as SeverityError and nil as SeverityDebug.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}
	var searcherErr SearcherError
	if As(err, &searcherErr) {
		return searcherErr.Severity()
	}
	return SeverityError
}

// Wrap prefixes err with message, or returns nil when err is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
