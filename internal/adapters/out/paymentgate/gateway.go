// Package paymentgate implements the outbound payment gateway port.
//
// StochasticGateway stands in for a real payment provider: it approves a
// configurable fraction of charges and simulates provider outages for
// another fraction. GuardedGateway wraps any gateway with a circuit breaker
// so a flapping provider short-circuits instead of stalling checkouts.
package paymentgate

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"sync"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/payment"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/breaker"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/metrics"

	"github.com/shopspring/decimal"
)

// ErrProviderUnavailable is the simulated transport failure returned by
// StochasticGateway for the PAYMENT_ERROR_RATE fraction of calls.
var ErrProviderUnavailable = errors.New("payment provider unavailable")

// StochasticGateway simulates a payment provider. A call errors out with
// probability errorRate; an attempt that completes is approved with
// probability successRate and declined otherwise.
type StochasticGateway struct {
	successRate float64
	errorRate   float64
}

// NewStochasticGateway creates a simulated gateway. Rates outside [0, 1]
// are clamped.
func NewStochasticGateway(successRate, errorRate float64) *StochasticGateway {
	return &StochasticGateway{
		successRate: clampRate(successRate),
		errorRate:   clampRate(errorRate),
	}
}

func clampRate(rate float64) float64 {
	if rate < 0 {
		return 0
	}
	if rate > 1 {
		return 1
	}
	return rate
}

// Pay settles a charge attempt. A returned error means the attempt itself
// did not complete; a declined attempt comes back as a Failed payment with
// a nil error.
func (g *StochasticGateway) Pay(
	_ context.Context, orderID kernel.UUID, amount decimal.Decimal,
) (*payment.Payment, error) {
	if rand.Float64() < g.errorRate {
		return nil, ErrProviderUnavailable
	}

	status := payment.Failed
	if rand.Float64() < g.successRate {
		status = payment.Success
	}

	return payment.NewPayment(kernel.NewUUID(), orderID, amount, status)
}

// GuardedGateway wraps a payment gateway with a circuit breaker. When the
// circuit is open, calls fail fast with a ServiceUnavailableError and the
// caller's pending-payment fallback takes over.
type GuardedGateway struct {
	inner  ports.PaymentGateway
	cb     *breaker.CircuitBreaker
	logger *slog.Logger

	mu        sync.Mutex
	lastState breaker.State
}

// NewGuardedGateway wraps inner with the given breaker.
func NewGuardedGateway(inner ports.PaymentGateway, cb *breaker.CircuitBreaker, logger *slog.Logger) *GuardedGateway {
	return &GuardedGateway{
		inner:     inner,
		cb:        cb,
		logger:    logger,
		lastState: breaker.Closed,
	}
}

// Pay executes the charge attempt under the breaker. Any failure, including
// an open circuit or a call timeout, surfaces as a ServiceUnavailableError.
func (g *GuardedGateway) Pay(
	ctx context.Context, orderID kernel.UUID, amount decimal.Decimal,
) (*payment.Payment, error) {
	var result *payment.Payment

	err := g.cb.Execute(ctx, func(ctx context.Context) error {
		attempt, payErr := g.inner.Pay(ctx, orderID, amount)
		if payErr != nil {
			return payErr
		}
		result = attempt
		return nil
	})

	g.observeState(ctx)

	if err != nil {
		return nil, errs.NewServiceUnavailableError("payment gateway", err)
	}

	return result, nil
}

// observeState records breaker state transitions in metrics and logs.
func (g *GuardedGateway) observeState(ctx context.Context) {
	state := g.cb.State()

	g.mu.Lock()
	changed := state != g.lastState
	g.lastState = state
	g.mu.Unlock()

	if !changed {
		return
	}

	metrics.PaymentBreakerTransitionsTotal.WithLabelValues(state.String()).Inc()
	g.logger.WarnContext(ctx, "payment breaker state changed", "state", state.String())
}
