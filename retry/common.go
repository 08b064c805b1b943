package retry

import (
	"context"
	"math/rand/v2"
	"time"
)

func wait(ctx context.Context, interval time.Duration, jitter float64) bool {
	if jitter < 0 || jitter >= 1 {
		panic("invalid jitter")
	}

	m := (rand.Float64() * 2) - 1
	j := m * jitter * float64(interval)
	d := interval + time.Duration(j)

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}

func validateJitter(jitter float64) {
	if jitter < 0 {
		panic("jitter can't be < 0")
	}
	if jitter >= 1 {
		panic("jitter can't be >= 1")
	}
}

// attempts counts attempts made against a limit, where a zero limit means no limit.
type attempts struct {
	made  int
	limit int
}

func newAttempts(limit int) attempts {
	if limit < 0 {
		panic("attempts can't be < 0")
	}
	return attempts{limit: limit}
}

func (a *attempts) exhausted() bool {
	return a.limit != 0 && a.made >= a.limit
}
