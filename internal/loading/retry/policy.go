package retry

import (
	"math"
	"time"
)

// Policy defines a bounded exponential backoff schedule. It is pure and
// deterministic; callers own the sleeping.
type Policy struct {
	Base       time.Duration
	Cap        time.Duration
	MaxRetries int
}

// AssetPolicy is the profile for binary asset loads.
func AssetPolicy() Policy {
	return Policy{Base: 1 * time.Second, Cap: 5 * time.Second, MaxRetries: 2}
}

// DataPolicy is the profile for structured data loads. The retry bound is
// chosen by the caller.
func DataPolicy(maxRetries int) Policy {
	return Policy{Base: 2 * time.Second, Cap: 10 * time.Second, MaxRetries: maxRetries}
}

// ShouldRetry reports whether another attempt is allowed after the given
// number of failed retries.
func (p Policy) ShouldRetry(attempts int) bool {
	return attempts < p.MaxRetries
}

// Delay returns min(Base * 2^attempt, Cap) for the given attempt (0-indexed).
func (p Policy) Delay(attempt int) time.Duration {
	delay := float64(p.Base) * math.Pow(2, float64(attempt))
	if delay > float64(p.Cap) {
		return p.Cap
	}
	return time.Duration(delay)
}
