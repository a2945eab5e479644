// Package errs defines the error taxonomy this module returns. Every
// fallible operation in every other package returns one of these kinds,
// wrapped with enough context (offending value, token, line) to locate the
// malformed element without a stack trace crossing a package boundary.
package errs

import (
	"errors"
	"fmt"
)

// Kind is a closed enumeration of the error categories this module defines.
type Kind int

const (
	// KindUnsupportedFormat: header names a format this module does not
	// decode (508/516/524), or the decode pipeline hits an unsupported
	// de-interleaving shape (packed format, non-multiple width).
	KindUnsupportedFormat Kind = iota
	// KindInvalidHeader: malformed record/signal/segment/metadata line.
	KindInvalidHeader
	// KindInvalidAnnotationCode is reserved for the annotation-file parser,
	// a separate concern this package does not implement. It stays in the
	// enum so the taxonomy remains a closed, stable sum.
	KindInvalidAnnotationCode
	// KindInvalidPath: header file not found, or a referenced signal file
	// not found relative to the header's directory.
	KindInvalidPath
	// KindIO: a filesystem error from a read, seek, or open.
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindUnsupportedFormat:
		return "unsupported format"
	case KindInvalidHeader:
		return "invalid header"
	case KindInvalidAnnotationCode:
		return "invalid annotation code"
	case KindInvalidPath:
		return "invalid path"
	case KindIO:
		return "io error"
	default:
		return "unknown error"
	}
}

// Error is the single error type this module returns. Its Kind selects the
// category; Message carries the offending value and the context that made
// it wrong, and Err optionally wraps an underlying cause (e.g. an *os.PathError).
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same Kind, so callers can
// write errors.Is(err, errs.New(errs.KindInvalidHeader, "")) style checks,
// or more idiomatically compare via errs.Is(err, errs.KindInvalidHeader).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}

	return e.Kind == t.Kind
}

// New constructs an *Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap constructs an *Error of the given kind, formatted message, and a
// wrapped underlying cause.
func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

// UnsupportedFormat builds a KindUnsupportedFormat error naming the
// offending format code and why it can't be handled.
func UnsupportedFormat(code int, reason string) *Error {
	return New(KindUnsupportedFormat, "format %d: %s", code, reason)
}

// InvalidHeader builds a KindInvalidHeader error with a formatted context
// message (e.g. the line number, the offending token, the expected shape).
func InvalidHeader(format string, args ...any) *Error {
	return New(KindInvalidHeader, format, args...)
}

// InvalidPath builds a KindInvalidPath error describing which path lookup
// failed and why.
func InvalidPath(format string, args ...any) *Error {
	return New(KindInvalidPath, format, args...)
}

// IO wraps a filesystem error with the operation that triggered it.
func IO(op string, err error) *Error {
	return Wrap(KindIO, err, "%s", op)
}

// Is reports whether err is an *Error of the given Kind, unwrapping as
// errors.Is would.
func Is(err error, kind Kind) bool {
	return errors.Is(err, &Error{Kind: kind})
}
