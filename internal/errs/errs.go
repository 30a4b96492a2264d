// Package errs defines the application's typed errors.
//
// Every failure a repository or service reports to a caller is an
// *HTTPError. Besides the client-facing fields (code, message, status)
// each HTTPError carries a kind sentinel so callers that do not speak
// HTTP, such as the sweeps or a chat adapter, can branch on it with
// errors.Is:
//
//	if errors.Is(err, errs.ErrNotFound) { ... }
package errs

import "errors"

// Error kinds. They are the only values callers should compare against.
var (
	// ErrNotFound reports that a referenced module, lecture, seminar,
	// code or assignment draft does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey reports a uniqueness violation: module code,
	// lecture name within a module, seminar name or code string.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrInvalidArgument reports input that is well-formed but unusable,
	// e.g. neither a lecture nor a seminar given for a code.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrHasDependents reports a rejected delete because other rows
	// still reference the target.
	ErrHasDependents = errors.New("has dependents")

	// ErrInternal is the kind of every error that is not the caller's fault.
	ErrInternal = errors.New("internal error")
)
