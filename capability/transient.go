package capability

import (
	"errors"
	"fmt"
)

// TransientError marks a fault as likely to succeed on an alternate path,
// such as an unreachable external dependency. The dispatcher consults this
// classification when deciding whether to try a fallback handler.
type TransientError struct {
	Err error
}

func (e *TransientError) Error() string { return e.Err.Error() }

func (e *TransientError) Unwrap() error { return e.Err }

// Transient wraps err so that IsTransient reports true for it.
func Transient(err error) error {
	if err == nil {
		return nil
	}
	return &TransientError{Err: err}
}

// Transientf formats a new transient error.
func Transientf(format string, args ...any) error {
	return &TransientError{Err: fmt.Errorf(format, args...)}
}

// IsTransient reports whether any error in err's chain is transient.
func IsTransient(err error) bool {
	var te *TransientError
	return errors.As(err, &te)
}
