// Package archiveerr defines the error kinds surfaced by the archive
// public API (spec §7): NotInitialized, Arity, OutOfRange, and the
// fatal Inconsistent kind raised only by the diagnostic self-check.
package archiveerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies one of the error kinds from spec §7.
type Kind int

const (
	// KindNotInitialized means a hypervolume-family query was made
	// before a reference point was set.
	KindNotInitialized Kind = iota
	// KindArity means an objective or constraint vector had the
	// wrong number of coordinates.
	KindArity
	// KindOutOfRange means an integer index exceeded the archive's
	// length.
	KindOutOfRange
	// KindInconsistent means the diagnostic self-check found a
	// violated invariant. Always a bug; never expected to be
	// recovered from.
	KindInconsistent
)

func (k Kind) String() string {
	switch k {
	case KindNotInitialized:
		return "NotInitialized"
	case KindArity:
		return "Arity"
	case KindOutOfRange:
		return "OutOfRange"
	case KindInconsistent:
		return "Inconsistent"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is the concrete error type for all four kinds. Use errors.Is
// with the sentinel Err* values, or Kind() to switch on the kind
// directly.
type Error struct {
	kind Kind
	err  error
}

func (e *Error) Error() string { return e.err.Error() }
func (e *Error) Unwrap() error { return e.err }
func (e *Error) Kind() Kind    { return e.kind }

// Is makes errors.Is(err, ErrArity) etc. work without comparing
// messages: any *Error of the same Kind matches.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return other.kind == e.kind
}

// Sentinel values for errors.Is comparisons. Their own message text
// is never shown to a caller; wrap() always builds a fresh *Error
// with a specific message and the pkg/errors stack trace attached at
// the call site.
var (
	ErrNotInitialized = &Error{kind: KindNotInitialized, err: errors.New("not initialized")}
	ErrArity          = &Error{kind: KindArity, err: errors.New("arity")}
	ErrOutOfRange     = &Error{kind: KindOutOfRange, err: errors.New("out of range")}
	ErrInconsistent   = &Error{kind: KindInconsistent, err: errors.New("inconsistent")}
)

// NotInitializedf builds a KindNotInitialized error with a
// pkg/errors stack trace rooted at the call site.
func NotInitializedf(format string, args ...any) error {
	return wrap(KindNotInitialized, format, args...)
}

// Arityf builds a KindArity error.
func Arityf(format string, args ...any) error {
	return wrap(KindArity, format, args...)
}

// OutOfRangef builds a KindOutOfRange error.
func OutOfRangef(format string, args ...any) error {
	return wrap(KindOutOfRange, format, args...)
}

func wrap(kind Kind, format string, args ...any) error {
	return &Error{
		kind: kind,
		err:  errors.Errorf(format, args...),
	}
}

// Inconsistent panics with a KindInconsistent error carrying a stack
// trace. It is called only by the optional debug self-check (spec
// §4.3 "Failure semantics"); it is never on the archive's normal,
// non-debug hot path.
func Inconsistent(format string, args ...any) {
	panic(&Error{
		kind: KindInconsistent,
		err:  errors.Errorf(format, args...),
	})
}
