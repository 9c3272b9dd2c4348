// Package hydroerr defines the structured error kinds raised by the
// hydrodynamic force engine.
//
// Construction-time errors (loading a hydrodynamic database) propagate to
// the caller as-is. Per-step accessor errors are programmer errors —
// indexing bugs, a body queried before initialization — and are always
// returned as a wrapped [Error] carrying body/dof/step context rather than
// logged and silently replaced with zero.
package hydroerr

import (
	"errors"
	"fmt"
)

// Kind identifies the category of a hydrodynamic engine error.
type Kind int

const (
	_ Kind = iota
	MissingCoefficient
	ShapeMismatch
	FreqOutOfRange
	StepOutOfRange
	BodyOutOfRange
	DofOutOfRange
	NotInitialized
	TimeBeyondHorizon
	FileIOError
	BodyNumberMismatch
)

func (k Kind) String() string {
	switch k {
	case MissingCoefficient:
		return "MissingCoefficient"
	case ShapeMismatch:
		return "ShapeMismatch"
	case FreqOutOfRange:
		return "FreqOutOfRange"
	case StepOutOfRange:
		return "StepOutOfRange"
	case BodyOutOfRange:
		return "BodyOutOfRange"
	case DofOutOfRange:
		return "DofOutOfRange"
	case NotInitialized:
		return "NotInitialized"
	case TimeBeyondHorizon:
		return "TimeBeyondHorizon"
	case FileIOError:
		return "FileIOError"
	case BodyNumberMismatch:
		return "BodyNumberMismatch"
	default:
		return "Unknown"
	}
}

// Error wraps a Kind with the body/dof/step context needed to diagnose it.
type Error struct {
	Kind    Kind
	Body    int // 1-based, matches the file's bodyN convention; 0 if not applicable
	Dof     int // 0-based dof index, -1 if not applicable
	Step    int // -1 if not applicable
	Message string
	Wrapped error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("hydro: %s", e.Kind)
	if e.Body != 0 {
		msg += fmt.Sprintf(" body=%d", e.Body)
	}
	if e.Dof >= 0 {
		msg += fmt.Sprintf(" dof=%d", e.Dof)
	}
	if e.Step >= 0 {
		msg += fmt.Sprintf(" step=%d", e.Step)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Wrapped }

// Is reports whether target names the same Kind, so callers can use
// errors.Is(err, hydroerr.New(hydroerr.FreqOutOfRange)) style checks.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New constructs an Error with only a Kind set; Body/Dof/Step default to
// "not applicable" so the string form stays uncluttered.
func New(kind Kind) *Error {
	return &Error{Kind: kind, Dof: -1, Step: -1}
}

func (e *Error) withBody(b int) *Error   { e.Body = b; return e }
func (e *Error) withDof(d int) *Error    { e.Dof = d; return e }
func (e *Error) withStep(s int) *Error   { e.Step = s; return e }
func (e *Error) withMsg(m string) *Error { e.Message = m; return e }
func (e *Error) withWrap(w error) *Error { e.Wrapped = w; return e }

// WithMessage attaches a free-form message to a constructed Error, for
// callers outside this package composing one-off errors from a Kind.
func (e *Error) WithMessage(m string) *Error { return e.withMsg(m) }

// WithWrap attaches an underlying cause to a constructed Error.
func (e *Error) WithWrap(err error) *Error { return e.withWrap(err) }

// Missingf builds a MissingCoefficient error for the named dataset path.
func Missingf(path string) *Error {
	return New(MissingCoefficient).withMsg("missing dataset " + path)
}

// ShapeMismatchf builds a ShapeMismatch error describing what was expected.
func ShapeMismatchf(path string, want, got []int) *Error {
	return New(ShapeMismatch).withMsg(fmt.Sprintf("%s: want shape %v, got %v", path, want, got))
}

// BodyOutOfRangef builds a BodyOutOfRange error for body number b (1-based).
func BodyOutOfRangef(b, numBodies int) *Error {
	return New(BodyOutOfRange).withBody(b).withMsg(fmt.Sprintf("valid range [1,%d]", numBodies))
}

// DofOutOfRangef builds a DofOutOfRange error for dof index i.
func DofOutOfRangef(b, i int) *Error {
	return New(DofOutOfRange).withBody(b).withDof(i).withMsg("valid range [0,5]")
}

// StepOutOfRangef builds a StepOutOfRange error for history step s.
func StepOutOfRangef(s, limit int) *Error {
	return New(StepOutOfRange).withStep(s).withMsg(fmt.Sprintf("valid range [0,%d)", limit))
}

// FreqOutOfRangef builds a FreqOutOfRange error for frequency omega.
func FreqOutOfRangef(omega, omegaMax float64) *Error {
	return New(FreqOutOfRange).withMsg(fmt.Sprintf("omega=%.6g exceeds grid max %.6g", omega, omegaMax))
}

// FileIOf wraps an underlying I/O error while opening or reading a database.
func FileIOf(path string, cause error) *Error {
	return New(FileIOError).withMsg("opening " + path).withWrap(cause)
}

// BodyNumberMismatchf builds a BodyNumberMismatch error when a body group's
// stored body_number dataset disagrees with the group's own index, e.g. a
// "body2" group whose body_number dataset says 3.
func BodyNumberMismatchf(groupBody, storedBody int) *Error {
	return New(BodyNumberMismatch).withBody(groupBody).
		withMsg(fmt.Sprintf("group declares body_number=%d", storedBody))
}
