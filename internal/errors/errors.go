// Package errors provides typed domain errors with machine-readable codes.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnauthenticated means no caller identity could be resolved.
	CodeUnauthenticated Code = "UNAUTHENTICATED"

	// CodeNotFound means a referenced entity does not exist.
	CodeNotFound Code = "NOT_FOUND"

	// CodeNotAGroupMember means a split or settlement references a user
	// outside the target group.
	CodeNotAGroupMember Code = "NOT_A_GROUP_MEMBER"

	// CodeSplitMismatch means split amounts do not sum to the expense total
	// within tolerance.
	CodeSplitMismatch Code = "SPLIT_MISMATCH"

	// CodeInvalidArgument covers non-positive amounts, empty names,
	// self-settlements, and other malformed input.
	CodeInvalidArgument Code = "INVALID_ARGUMENT"

	// CodeAlreadyExists means a unique constraint would be violated.
	CodeAlreadyExists Code = "ALREADY_EXISTS"

	// CodePermissionDenied means the caller is authenticated but not allowed
	// to see the requested records.
	CodePermissionDenied Code = "PERMISSION_DENIED"

	// CodeInternal is any unexpected failure.
	CodeInternal Code = "INTERNAL"
)

// HTTPStatus maps a domain code to an HTTP status code.
func (c Code) HTTPStatus() int {
	switch c {
	case CodeUnauthenticated:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeNotAGroupMember, CodePermissionDenied:
		return http.StatusForbidden
	case CodeSplitMismatch, CodeInvalidArgument:
		return http.StatusBadRequest
	case CodeAlreadyExists:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Error is a domain error carrying a code and, when relevant, the entity
// kind and id that triggered it.
type Error struct {
	Code    Code
	Entity  string
	ID      string
	Message string
}

func (e *Error) Error() string {
	switch {
	case e.Entity != "" && e.ID != "":
		return fmt.Sprintf("%s: %s not found: %s", e.Code, e.Entity, e.ID)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	default:
		return string(e.Code)
	}
}

// New creates an error with the given code and message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// NotFound creates a CodeNotFound error for the given entity kind and id.
func NotFound(entity, id string) *Error {
	return &Error{Code: CodeNotFound, Entity: entity, ID: id}
}

// Invalid creates a CodeInvalidArgument error.
func Invalid(format string, args ...any) *Error {
	return New(CodeInvalidArgument, format, args...)
}

// CodeOf extracts the domain code from err, or CodeInternal when err carries
// no *Error in its chain.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Is reports whether err carries the given code.
func Is(err error, code Code) bool {
	return CodeOf(err) == code
}
