package koch

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrInvalidState  = errors.New("invalid state")
	ErrNotFound      = errors.New("not found")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindInvalidConfig ErrorKind = "invalid_config"
	KindInvalidState  ErrorKind = "invalid_state"
	KindNotFound      ErrorKind = "not_found"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op   string
	Kind ErrorKind
	Path string // optional: config file the error came from
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

// Is lets errors.Is match an OpError against the sentinel for its kind.
func (e *OpError) Is(target error) bool {
	if e == nil {
		return false
	}
	switch e.Kind {
	case KindInvalidConfig:
		return target == ErrInvalidConfig
	case KindInvalidState:
		return target == ErrInvalidState
	case KindNotFound:
		return target == ErrNotFound
	}
	return false
}

// IsKind helps callers classify errors.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind == kind
	}
	return false
}

func invalidConfig(op, format string, args ...any) error {
	return &OpError{Op: op, Kind: KindInvalidConfig, Err: fmt.Errorf(format, args...)}
}

func invalidState(op, format string, args ...any) error {
	return &OpError{Op: op, Kind: KindInvalidState, Err: fmt.Errorf(format, args...)}
}
