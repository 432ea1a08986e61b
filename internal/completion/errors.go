package completion

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// CallError classifies a failed completion call. Transient failures
// (rate limit, timeout, connection reset, server error) are worth retrying;
// anything else (auth, malformed request) is surfaced immediately.
type CallError struct {
	Transient bool
	Status    int // HTTP status when applicable, 0 otherwise
	Err       error
}

func (e *CallError) Error() string {
	kind := "non-transient"
	if e.Transient {
		kind = "transient"
	}
	if e.Status != 0 {
		return fmt.Sprintf("completion call failed (%s, status %d): %v", kind, e.Status, e.Err)
	}
	return fmt.Sprintf("completion call failed (%s): %v", kind, e.Err)
}

func (e *CallError) Unwrap() error { return e.Err }

// IsTransient reports whether err is worth retrying. Timeouts and other
// network-level failures without an explicit classification count as
// transient.
func IsTransient(err error) bool {
	var ce *CallError
	if errors.As(err, &ce) {
		return ce.Transient
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne)
}

func transientStatus(status int) bool {
	return status == 429 || status == 408 || status >= 500
}
