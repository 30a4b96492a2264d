package errs

import "strings"

// FieldError represents a field-level validation error.
// Example:
//
//	{ "field": "module_code", "error": "is required" }
type FieldError struct {
	// Field is the field name/key the error relates to (e.g. "code").
	Field string `json:"field"`

	// Error is the human-readable error message.
	Error string `json:"error"`
}

// ActionType is a string-based enum describing what the client should do.
type ActionType string

const (
	// ActionTypeRetry tells the client the request may succeed if it
	// starts over, e.g. after an assignment draft expired.
	ActionTypeRetry ActionType = "retry"
)

// Action describes an optional "what the client should do next" instruction.
type Action struct {
	Type    ActionType `json:"type"`
	Message string     `json:"message"`
	Value   string     `json:"value"`
}

// HTTPError is the main custom error type.
//
// It is serialised directly to JSON by the global error handler.
// Fields:
//   - Code: machine-friendly error code (e.g. "MODULE_ALREADY_EXISTS").
//   - Message: human-friendly message.
//   - Status: HTTP status code.
//   - Override: whether the message is safe to show to end users as is.
//   - Errors: list of per-field errors (validation).
//   - Action: client instruction (optional).
//
// The kind is not serialised; it is exposed through Unwrap.
type HTTPError struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Status   int    `json:"status"`
	Override bool   `json:"override"`

	Errors []FieldError `json:"errors"`

	Action *Action `json:"action"`

	kind error
}

// Error returns the message so logging the error shows it.
func (e *HTTPError) Error() string {
	return e.Message
}

// Is reports true for any other *HTTPError, which lets callers test
// "is this already an application error" with errors.Is(err, &HTTPError{}).
// Kind comparisons go through Unwrap.
func (e *HTTPError) Is(target error) bool {
	_, ok := target.(*HTTPError)

	return ok
}

// Unwrap exposes the kind sentinel to errors.Is.
func (e *HTTPError) Unwrap() error {
	return e.kind
}

// Kind returns the error kind, ErrInternal when none was set.
func (e *HTTPError) Kind() error {
	if e.kind == nil {
		return ErrInternal
	}
	return e.kind
}

// WithMessage returns a copy of this HTTPError with Message replaced.
func (e *HTTPError) WithMessage(message string) *HTTPError {
	return &HTTPError{
		Code:     e.Code,
		Message:  message,
		Status:   e.Status,
		Override: e.Override,
		Errors:   e.Errors,
		Action:   e.Action,
		kind:     e.kind,
	}
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
//	"Bad Request" -> "BAD_REQUEST"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
