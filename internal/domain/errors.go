package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidConfig   = errors.New("invalid config")
	ErrUnknownModel    = errors.New("unknown model")
	ErrInvalidParticle = errors.New("invalid particle")
	ErrOutOfRange      = errors.New("out of range")
	ErrUnsupported     = errors.New("unsupported")
	ErrExecution       = errors.New("execution error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound        ErrorKind = "not_found"
	KindInvalidConfig   ErrorKind = "invalid_config"
	KindUnknownModel    ErrorKind = "unknown_model"
	KindInvalidParticle ErrorKind = "invalid_particle"
	KindOutOfRange      ErrorKind = "out_of_range"
	KindUnsupported     ErrorKind = "unsupported"
	KindExecution       ErrorKind = "execution"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // Optional: relevant file path
	Err  error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

// KindOf returns the kind of the outermost OpError in err's chain, or "" when there is none.
func KindOf(err error) ErrorKind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return ""
}

// OutOfRange builds a KindOutOfRange error for op.
func OutOfRange(op, format string, args ...any) error {
	return &OpError{
		Op:   op,
		Kind: KindOutOfRange,
		Err:  fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrOutOfRange),
	}
}

// InvalidParticle builds a KindInvalidParticle error for op.
func InvalidParticle(op, format string, args ...any) error {
	return &OpError{
		Op:   op,
		Kind: KindInvalidParticle,
		Err:  fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidParticle),
	}
}
