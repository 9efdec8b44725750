// Package waperr defines the error taxonomy shared by the annotation store.
//
// Every domain failure is an *Error carrying a Code. Callers test for a
// category with errors.Is against the exported sentinels, or with the Is*
// helpers, both of which see through fmt.Errorf wrapping.
package waperr

import (
	"errors"
	"fmt"
)

// Code categorizes domain errors.
type Code string

const (
	// CodeEmptyGraph indicates an object was constructed from zero statements.
	CodeEmptyGraph Code = "EMPTY_GRAPH"

	// CodeNotOfExpectedType indicates the graph lacks the type statement for the requested kind.
	CodeNotOfExpectedType Code = "NOT_OF_EXPECTED_TYPE"

	// CodeInvalidContainer indicates a container graph is missing a required type
	// or has no durable identity. It refines CodeNotOfExpectedType.
	CodeInvalidContainer Code = "INVALID_CONTAINER"

	// CodeNotExistent indicates an unknown identity was requested.
	CodeNotExistent Code = "NOT_EXISTENT"

	// CodeFormat indicates a codec failed to parse or serialize.
	CodeFormat Code = "FORMAT"

	// CodeInvalidRequest indicates a well-formed request that cannot be served,
	// e.g. a dynamic query with no undeleted matches.
	CodeInvalidRequest Code = "INVALID_REQUEST"

	// CodeConflictingMatchType indicates exact and contains matching were both
	// requested for one property.
	CodeConflictingMatchType Code = "CONFLICTING_MATCH_TYPE"

	// CodeNoFilterProvided indicates a dynamic query without filters.
	CodeNoFilterProvided Code = "NO_FILTER_PROVIDED"

	// CodePreferenceMismatch indicates a page add method that contradicts the
	// page's iris-only preference.
	CodePreferenceMismatch Code = "PREFERENCE_MISMATCH"

	// CodePageSealed indicates an add after the page was closed.
	CodePageSealed Code = "PAGE_SEALED"

	// CodeETagMismatch indicates a conditional write against a stale etag.
	CodeETagMismatch Code = "ETAG_MISMATCH"
)

// Sentinels for errors.Is. Only the Code is compared.
var (
	ErrEmptyGraph           = &Error{Code: CodeEmptyGraph}
	ErrNotOfExpectedType    = &Error{Code: CodeNotOfExpectedType}
	ErrInvalidContainer     = &Error{Code: CodeInvalidContainer}
	ErrNotExistent          = &Error{Code: CodeNotExistent}
	ErrFormat               = &Error{Code: CodeFormat}
	ErrInvalidRequest       = &Error{Code: CodeInvalidRequest}
	ErrConflictingMatchType = &Error{Code: CodeConflictingMatchType}
	ErrNoFilterProvided     = &Error{Code: CodeNoFilterProvided}
	ErrPreferenceMismatch   = &Error{Code: CodePreferenceMismatch}
	ErrPageSealed           = &Error{Code: CodePageSealed}
	ErrETagMismatch         = &Error{Code: CodeETagMismatch}
)

// Error is a categorized domain error.
type Error struct {
	// Code identifies the error category.
	Code Code

	// Message is a human-readable description.
	Message string

	// Identity names the affected object, if any.
	Identity string

	// Err is the underlying cause (codec or store failure).
	Err error
}

// New creates an error with the given code and message.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an error that preserves err as its cause.
func Wrap(code Code, err error, message string) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

// NotExistent reports that identity is unknown to the store.
func NotExistent(identity string) *Error {
	return &Error{Code: CodeNotExistent, Message: "no such object", Identity: identity}
}

// WithIdentity returns a copy of e naming the affected object.
func (e *Error) WithIdentity(identity string) *Error {
	c := *e
	c.Identity = identity
	return &c
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := string(e.Code)
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Identity != "" {
		msg += " (" + e.Identity + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same category.
// An invalid-container error also matches ErrNotOfExpectedType.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Code == e.Code {
		return true
	}
	return e.Code == CodeInvalidContainer && t.Code == CodeNotOfExpectedType
}

// CodeOf returns the code of the first *Error in err's chain, or "" if none.
func CodeOf(err error) Code {
	var we *Error
	if errors.As(err, &we) {
		return we.Code
	}
	return ""
}

// IsNotExistent returns true if err reports an unknown identity.
func IsNotExistent(err error) bool {
	return errors.Is(err, ErrNotExistent)
}

// IsFormat returns true if err reports a codec failure.
func IsFormat(err error) bool {
	return errors.Is(err, ErrFormat)
}

// IsContractViolation returns true for errors caused by the caller's request
// rather than by stored state or I/O. These are never retried.
func IsContractViolation(err error) bool {
	switch CodeOf(err) {
	case CodeConflictingMatchType, CodeNoFilterProvided, CodePreferenceMismatch, CodePageSealed:
		return true
	}
	return false
}
