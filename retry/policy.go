// This package contains the main [Policy] interface and several implementations.
package retry

import (
	"context"
	"fmt"
)

// Policy defines how many times and how often an operation that failed with a transient error is
// attempted again.
//
// Implementations are not considered thread-safe. Every call to [Do] uses its own instance
// obtained with [Policy.Derive].
type Policy interface {
	// Attempt checks if another attempt should be made.
	//
	// This method blocks until an attempt can be made or the context is cancelled. The first call
	// never blocks. Returns false if no attempts remain or the context is done.
	Attempt(ctx context.Context) bool
	// Derive returns a new Policy instance with the same settings and no attempts made.
	Derive() Policy
}

// Do calls fn until it succeeds, fails with an error for which retryable returns false, or the
// policy runs out of attempts. The error of the last call is returned.
func Do(ctx context.Context, policy Policy, retryable func(error) bool, fn func() error) error {
	var (
		p       = policy.Derive()
		lastErr error
	)
	for p.Attempt(ctx) {
		lastErr = fn()
		if lastErr == nil || !retryable(lastErr) {
			return lastErr
		}
	}
	if lastErr == nil {
		return ctx.Err()
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w (last error: %w)", err, lastErr)
	}
	return lastErr
}
