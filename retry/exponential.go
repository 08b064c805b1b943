package retry

import (
	"context"
	"math"
	"time"
)

// ExponentialPolicy multiplies the wait by a base after every attempt, up to a maximum.
type ExponentialPolicy struct {
	attempts    attempts
	jitter      float64
	base        float64
	minInterval time.Duration
	maxInterval time.Duration
}

var _ Policy = (*ExponentialPolicy)(nil)

// Exponential returns a policy allowing the given number of attempts. The first wait is
// minInterval and every next one is base times longer, but never longer than maxInterval. Zero
// attempts means the number is unlimited. The default base is 2 and the default jitter is 0.1.
func Exponential(attempts int, minInterval, maxInterval time.Duration) *ExponentialPolicy {
	if minInterval <= 0 {
		panic("minInterval can't be <= 0")
	}
	if minInterval >= maxInterval {
		panic("minInterval can't be >= maxInterval")
	}

	return &ExponentialPolicy{
		attempts:    newAttempts(attempts),
		minInterval: minInterval,
		maxInterval: maxInterval,
		base:        2,
		jitter:      0.1,
	}
}

// WithBase sets the multiplier applied to the wait after every attempt.
func (r *ExponentialPolicy) WithBase(base float64) *ExponentialPolicy {
	if base <= 1 {
		panic("base can't be <= 1")
	}
	r.base = base
	return r
}

// WithJitter sets the fraction of the interval by which every wait is randomly shortened or
// lengthened.
func (r *ExponentialPolicy) WithJitter(jitter float64) *ExponentialPolicy {
	validateJitter(jitter)
	r.jitter = jitter
	return r
}

func (r *ExponentialPolicy) Attempt(ctx context.Context) bool {
	if r.attempts.exhausted() {
		return false
	}
	if r.attempts.made != 0 && !wait(ctx, r.interval(r.attempts.made), r.jitter) {
		return false
	}
	r.attempts.made++
	return true
}

func (r *ExponentialPolicy) Derive() Policy {
	return Exponential(r.attempts.limit, r.minInterval, r.maxInterval).
		WithBase(r.base).
		WithJitter(r.jitter)
}

// interval returns the wait before the attempt following the given number of made attempts.
func (r *ExponentialPolicy) interval(made int) time.Duration {
	multiplier := math.Pow(r.base, float64(made-1))
	interval := float64(r.minInterval) * multiplier
	if interval >= float64(r.maxInterval) {
		return r.maxInterval
	}
	return time.Duration(interval)
}
