package retry

import (
	"context"
	"time"

	"git.home.luguber.info/inful/slidedeck/internal/foundation/errors"
)

// BackoffMode selects how delays grow between attempts.
type BackoffMode string

const (
	BackoffFixed       BackoffMode = "fixed"
	BackoffLinear      BackoffMode = "linear"
	BackoffExponential BackoffMode = "exponential"
)

// Policy encapsulates retry/backoff settings for transient failures.
// It is immutable after construction.
type Policy struct {
	Mode       BackoffMode
	Initial    time.Duration // base delay
	Max        time.Duration // cap for growth
	MaxRetries int           // attempts after the first failure
}

// DefaultPolicy waits briefly for a concurrent registry writer:
// linear, 50ms initial, 500ms cap, 10 retries.
func DefaultPolicy() Policy {
	return Policy{Mode: BackoffLinear, Initial: 50 * time.Millisecond, Max: 500 * time.Millisecond, MaxRetries: 10}
}

// NewPolicy builds a policy; zero or invalid values fall back to defaults.
func NewPolicy(mode BackoffMode, initial, maxDuration time.Duration, maxRetries int) Policy {
	p := DefaultPolicy()
	if maxRetries >= 0 {
		p.MaxRetries = maxRetries
	}
	if initial > 0 {
		p.Initial = initial
	}
	if maxDuration > 0 {
		p.Max = maxDuration
	}
	switch mode {
	case BackoffFixed, BackoffLinear, BackoffExponential:
		p.Mode = mode
	}
	if p.Initial > p.Max {
		p.Initial = p.Max
	}
	return p
}

// Delay returns the backoff before retry number retryCount (1-based).
func (p Policy) Delay(retryCount int) time.Duration {
	if retryCount <= 0 {
		return 0
	}
	var d time.Duration
	switch p.Mode {
	case BackoffFixed:
		return p.Initial
	case BackoffExponential:
		d = p.Initial * (1 << (retryCount - 1))
	default:
		d = time.Duration(retryCount) * p.Initial
	}
	if d > p.Max || d <= 0 {
		return p.Max
	}
	return d
}

// Validate reports policies that cannot be applied.
func (p Policy) Validate() error {
	switch {
	case p.Initial <= 0:
		return errors.ValidationError("retry initial delay must be > 0").Build()
	case p.Max <= 0:
		return errors.ValidationError("retry max delay must be > 0").Build()
	case p.MaxRetries < 0:
		return errors.ValidationError("retry count cannot be negative").Build()
	}
	return nil
}

// Do runs fn until it succeeds, returns an error that is not retryable, the
// retries are exhausted or ctx is done. Only classified errors asking for an
// immediate retry are retried.
func Do(ctx context.Context, p Policy, fn func() error) error {
	var err error
	for attempt := 0; ; attempt++ {
		if err = fn(); err == nil {
			return nil
		}
		if !Retryable(err) || attempt >= p.MaxRetries {
			return err
		}
		timer := time.NewTimer(p.Delay(attempt + 1))
		select {
		case <-ctx.Done():
			timer.Stop()
			return err
		case <-timer.C:
		}
	}
}

// Retryable reports whether err is a classified error that asks for an
// immediate retry.
func Retryable(err error) bool {
	ce, ok := errors.AsClassified(err)
	return ok && ce.RetryStrategy() == errors.RetryImmediate
}
