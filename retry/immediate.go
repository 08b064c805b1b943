package retry

import (
	"context"
)

// ImmediatePolicy attempts again right away.
type ImmediatePolicy struct {
	attempts attempts
}

var _ Policy = (*ImmediatePolicy)(nil)

// Immediate returns a policy allowing the given number of attempts without waiting between them.
// Zero attempts means the number is unlimited.
func Immediate(attempts int) *ImmediatePolicy {
	return &ImmediatePolicy{
		attempts: newAttempts(attempts),
	}
}

func (r *ImmediatePolicy) Attempt(ctx context.Context) bool {
	if r.attempts.exhausted() || ctx.Err() != nil {
		return false
	}
	r.attempts.made++
	return true
}

func (r *ImmediatePolicy) Derive() Policy {
	return Immediate(r.attempts.limit)
}
