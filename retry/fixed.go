package retry

import (
	"context"
	"time"
)

// FixedPolicy waits the same interval, with jitter, before every attempt but the first.
type FixedPolicy struct {
	attempts attempts
	jitter   float64
	interval time.Duration
}

var _ Policy = (*FixedPolicy)(nil)

// Fixed returns a policy allowing the given number of attempts with the interval between them.
// Zero attempts means the number is unlimited. The default jitter is 0.1.
func Fixed(attempts int, interval time.Duration) *FixedPolicy {
	if interval < 0 {
		panic("interval can't be < 0")
	}
	return &FixedPolicy{
		attempts: newAttempts(attempts),
		interval: interval,
		jitter:   0.1,
	}
}

// WithJitter sets the fraction of the interval by which every wait is randomly shortened or
// lengthened.
func (r *FixedPolicy) WithJitter(jitter float64) *FixedPolicy {
	validateJitter(jitter)
	r.jitter = jitter
	return r
}

func (r *FixedPolicy) Attempt(ctx context.Context) bool {
	if r.attempts.exhausted() {
		return false
	}
	if r.attempts.made != 0 && !wait(ctx, r.interval, r.jitter) {
		return false
	}
	r.attempts.made++
	return true
}

func (r *FixedPolicy) Derive() Policy {
	return Fixed(r.attempts.limit, r.interval).WithJitter(r.jitter)
}
