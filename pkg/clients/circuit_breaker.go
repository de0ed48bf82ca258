package clients

import (
	"net/http"
	"time"

	"github.com/failsafe-go/failsafe-go/circuitbreaker"

	"github.com/Feustey/T4G-sub000/pkg/logging"
)

// CircuitBreakerState represents the state of the circuit breaker.
type CircuitBreakerState int

const (
	StateClosed CircuitBreakerState = iota
	StateHalfOpen
	StateOpen
)

func (s CircuitBreakerState) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalfOpen:
		return "half-open"
	case StateOpen:
		return "open"
	default:
		return "unknown"
	}
}

// CircuitBreakerConfig configures the circuit breaker guarding backend calls.
type CircuitBreakerConfig struct {
	// Name identifies this circuit breaker in logs.
	Name string

	// FailureThreshold is the number of failures out of the last
	// ThresholdCapacity outcomes that trips the circuit. Default: 5 of 10.
	FailureThreshold  uint
	ThresholdCapacity uint

	// OpenDelay is how long the circuit stays open before half-open.
	// Default: 15 seconds.
	OpenDelay time.Duration

	// SuccessThreshold is the number of successes required in half-open
	// state to close again. Default: 1.
	SuccessThreshold uint

	Logger logging.Logger

	// OnStateChange is invoked on every state transition.
	OnStateChange func(name string, from, to CircuitBreakerState)
}

// DefaultCircuitBreakerConfig returns sensible defaults.
func DefaultCircuitBreakerConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:              "backend",
		FailureThreshold:  5,
		ThresholdCapacity: 10,
		OpenDelay:         15 * time.Second,
		SuccessThreshold:  1,
	}
}

// CircuitBreaker wraps failsafe-go's circuit breaker for HTTP outcomes.
// An error or a 5xx response counts as a failure.
type CircuitBreaker struct {
	cb   circuitbreaker.CircuitBreaker[*http.Response]
	name string
}

// NewCircuitBreaker creates a circuit breaker with the given configuration.
//
//nolint:bodyclose // [*http.Response] is a type parameter here, not a response
func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	if cfg.Name == "" {
		cfg.Name = "circuit-breaker"
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.ThresholdCapacity == 0 {
		cfg.ThresholdCapacity = 10
	}
	if cfg.OpenDelay == 0 {
		cfg.OpenDelay = 15 * time.Second
	}
	if cfg.SuccessThreshold == 0 {
		cfg.SuccessThreshold = 1
	}

	builder := circuitbreaker.NewBuilder[*http.Response]().
		WithFailureThresholdRatio(cfg.FailureThreshold, cfg.ThresholdCapacity).
		WithDelay(cfg.OpenDelay).
		WithSuccessThreshold(cfg.SuccessThreshold).
		HandleIf(func(resp *http.Response, err error) bool {
			if err != nil {
				return true
			}
			return resp != nil && resp.StatusCode >= 500
		})

	if cfg.OnStateChange != nil || cfg.Logger != nil {
		builder = builder.OnStateChanged(func(event circuitbreaker.StateChangedEvent) {
			from := convertState(event.OldState)
			to := convertState(event.NewState)
			if cfg.Logger != nil {
				cfg.Logger.WithFields(logging.Fields{
					"circuit_breaker": cfg.Name,
					"from_state":      from.String(),
					"to_state":        to.String(),
				}).Warn("circuit breaker state change")
			}
			if cfg.OnStateChange != nil {
				cfg.OnStateChange(cfg.Name, from, to)
			}
		})
	}

	return &CircuitBreaker{cb: builder.Build(), name: cfg.Name}
}

func convertState(state circuitbreaker.State) CircuitBreakerState {
	switch state {
	case circuitbreaker.ClosedState:
		return StateClosed
	case circuitbreaker.HalfOpenState:
		return StateHalfOpen
	case circuitbreaker.OpenState:
		return StateOpen
	default:
		return StateClosed
	}
}

// Underlying exposes the failsafe policy so it can be composed into an
// executor (retry outermost, breaker innermost).
func (cb *CircuitBreaker) Underlying() circuitbreaker.CircuitBreaker[*http.Response] {
	return cb.cb
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() CircuitBreakerState {
	return convertState(cb.cb.State())
}

// Name returns the configured name.
func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen reports whether the circuit is currently rejecting calls.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.cb.IsOpen()
}
