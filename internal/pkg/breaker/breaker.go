// Package breaker implements an explicit circuit breaker for guarding calls
// to failing dependencies. The breaker is a composable wrapper configured by
// a Policy value rather than an annotation-driven proxy: callers wrap the
// outbound call in Execute and branch on ErrOpen.
package breaker

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned by Execute when the circuit is open and the probe
// interval has not yet elapsed. The protected call is not attempted.
var ErrOpen = errors.New("circuit breaker is open")

// State represents the breaker's position in its lifecycle.
type State int

const (
	// Closed means calls flow through and outcomes are recorded in the
	// rolling window.
	Closed State = iota

	// Open means calls short-circuit with ErrOpen until the probe interval
	// elapses.
	Open

	// HalfOpen means a single probe call is allowed through to test
	// whether the dependency has recovered.
	HalfOpen
)

func (s State) String() string {
	switch s {
	case Closed:
		return "closed"
	case Open:
		return "open"
	case HalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Policy configures a circuit breaker.
type Policy struct {
	// FailureThreshold is the failure rate over the rolling window that
	// trips the breaker, expressed as a fraction in (0, 1].
	FailureThreshold float64

	// WindowSize is the number of recent call outcomes kept in the
	// rolling window.
	WindowSize int

	// MinimumCalls is the number of recorded outcomes required before the
	// failure rate is evaluated. Below this volume the breaker stays closed.
	MinimumCalls int

	// ProbeInterval is how long the breaker stays open before allowing a
	// half-open probe call.
	ProbeInterval time.Duration

	// CallTimeout bounds each protected call. A call exceeding it counts
	// as a failure. Zero disables the timeout.
	CallTimeout time.Duration
}

// DefaultPolicy mirrors a conservative production configuration: trip at a
// 50% failure rate over the last 10 calls, with at least 5 calls observed,
// probing every 10 seconds, each call bounded to 3 seconds.
func DefaultPolicy() Policy {
	return Policy{
		FailureThreshold: 0.5,
		WindowSize:       10,
		MinimumCalls:     5,
		ProbeInterval:    10 * time.Second,
		CallTimeout:      3 * time.Second,
	}
}

// CircuitBreaker guards a dependency with closed/open/half-open states over
// a rolling count-based window. It is safe for concurrent use.
type CircuitBreaker struct {
	mu     sync.Mutex
	policy Policy

	state    State
	window   []bool // true = failure
	next     int
	recorded int
	openedAt time.Time
	probing  bool

	now func() time.Time
}

// New creates a circuit breaker in the closed state. Zero or negative policy
// fields fall back to DefaultPolicy values.
func New(policy Policy) *CircuitBreaker {
	def := DefaultPolicy()
	if policy.FailureThreshold <= 0 || policy.FailureThreshold > 1 {
		policy.FailureThreshold = def.FailureThreshold
	}
	if policy.WindowSize <= 0 {
		policy.WindowSize = def.WindowSize
	}
	if policy.MinimumCalls <= 0 {
		policy.MinimumCalls = def.MinimumCalls
	}
	if policy.ProbeInterval < 0 {
		policy.ProbeInterval = def.ProbeInterval
	}

	return &CircuitBreaker{
		policy: policy,
		state:  Closed,
		window: make([]bool, policy.WindowSize),
		now:    time.Now,
	}
}

// State returns the breaker's current state, promoting open to half-open
// when the probe interval has elapsed.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == Open && cb.now().Sub(cb.openedAt) >= cb.policy.ProbeInterval {
		return HalfOpen
	}
	return cb.state
}

// Execute runs fn under the breaker's protection. When the circuit is open
// it returns ErrOpen without invoking fn. When half-open, a single probe is
// allowed through; concurrent callers during the probe receive ErrOpen.
// A non-nil error from fn (including a CallTimeout expiry) is recorded as a
// failure and may trip the breaker.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := cb.admit(); err != nil {
		return err
	}

	if cb.policy.CallTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cb.policy.CallTimeout)
		defer cancel()
	}

	err := fn(ctx)
	cb.record(err != nil)
	return err
}

// admit decides whether a call may proceed given the current state.
func (cb *CircuitBreaker) admit() error {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case Closed:
		return nil
	case Open:
		if cb.now().Sub(cb.openedAt) < cb.policy.ProbeInterval {
			return ErrOpen
		}
		cb.state = HalfOpen
		cb.probing = true
		return nil
	case HalfOpen:
		if cb.probing {
			return ErrOpen
		}
		cb.probing = true
		return nil
	default:
		return ErrOpen
	}
}

// record registers a call outcome and moves the state machine.
func (cb *CircuitBreaker) record(failed bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	if cb.state == HalfOpen {
		cb.probing = false
		if failed {
			cb.trip()
		} else {
			cb.reset()
		}
		return
	}

	cb.window[cb.next] = failed
	cb.next = (cb.next + 1) % cb.policy.WindowSize
	if cb.recorded < cb.policy.WindowSize {
		cb.recorded++
	}

	if cb.recorded < cb.policy.MinimumCalls {
		return
	}

	failures := 0
	for i := 0; i < cb.recorded; i++ {
		if cb.window[i] {
			failures++
		}
	}

	if float64(failures)/float64(cb.recorded) >= cb.policy.FailureThreshold {
		cb.trip()
	}
}

func (cb *CircuitBreaker) trip() {
	cb.state = Open
	cb.openedAt = cb.now()
	cb.probing = false
	cb.clearWindow()
}

func (cb *CircuitBreaker) reset() {
	cb.state = Closed
	cb.probing = false
	cb.clearWindow()
}

func (cb *CircuitBreaker) clearWindow() {
	for i := range cb.window {
		cb.window[i] = false
	}
	cb.next = 0
	cb.recorded = 0
}
