package circuitbreaker

import "time"

// Config holds the configuration for a circuit breaker.
type Config struct {
	// Name identifies the circuit breaker in logs and status reports.
	Name string

	// Enabled determines whether the circuit breaker is active.
	// When false, New returns nil and Execute passes through directly.
	Enabled bool

	// MaxRequests is the maximum number of trial requests allowed to pass
	// through when the circuit breaker is half-open. If MaxRequests is 0,
	// the circuit breaker allows only 1 request.
	MaxRequests uint

	// Interval is the cyclic period of the closed state for the circuit
	// breaker to clear the internal counts. If Interval is 0, the counts are
	// never cleared while closed.
	Interval time.Duration

	// Cooldown is the period of the open state, after which the state of the
	// circuit breaker becomes half-open on the next incoming call. If zero,
	// the underlying breaker defaults to 60 seconds.
	Cooldown time.Duration

	// FailureThreshold is the number of consecutive failures required to
	// trip the circuit breaker from closed to open state.
	FailureThreshold uint

	// IsSuccessful classifies an error as a success or a failure from the
	// breaker's point of view. Leave nil to count every non-nil error as a
	// failure. Used to keep caller cancellations and local rejections from
	// tripping the breaker.
	IsSuccessful func(err error) bool
}
