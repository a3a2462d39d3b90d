// Package timeout provides a generic deadline wrapper for asynchronous
// operations. It races an operation against a timer and reports a
// RequestTimeout failure when the timer wins.
package timeout

import (
	"context"
	"time"

	"newsstash/internal/apperror"
)

// DefaultDuration is used when a call site passes a zero or negative
// duration. It matches the configuration default of 5000 ms.
const DefaultDuration = 5 * time.Second

// Do runs op and returns its result, unless d elapses first, in which case
// a RequestTimeout error is returned. The timer is stopped on either
// outcome. The underlying operation is not cancelled: the wrapper merely
// stops waiting, and op may still complete in the background.
func Do[T any](ctx context.Context, d time.Duration, op func(context.Context) (T, error)) (T, error) {
	if d <= 0 {
		d = DefaultDuration
	}

	type outcome struct {
		value T
		err   error
	}

	// Buffered so a late-finishing op never blocks its goroutine.
	done := make(chan outcome, 1)
	go func() {
		v, err := op(ctx)
		done <- outcome{value: v, err: err}
	}()

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case out := <-done:
		return out.value, out.err
	case <-timer.C:
		var zero T
		return zero, apperror.RequestTimeout("Request timeout")
	}
}
