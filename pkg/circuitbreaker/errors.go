package circuitbreaker

import "errors"

var (
	// ErrCircuitOpen is returned when the circuit breaker is open and the
	// call was rejected without being attempted.
	ErrCircuitOpen = errors.New("circuit breaker is open")

	// ErrTooManyRequests is returned when the circuit breaker is half-open
	// and the trial request slot is already taken.
	ErrTooManyRequests = errors.New("too many requests while circuit breaker is half-open")
)
