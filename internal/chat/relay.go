package chat

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/ev-dss/internal/resilience"
)

// Relay validates chat requests, builds the system prompt and streams the
// provider's reply. A circuit breaker sheds load while the provider is
// failing; rate limits, billing errors and client disconnects do not count
// as failures.
type Relay struct {
	provider Provider
	breaker  *resilience.CircuitBreaker
}

// NewRelay creates a relay over p.
func NewRelay(p Provider, cb resilience.CircuitBreakerConfig) *Relay {
	cb.ShouldTrip = func(err error) bool {
		return errors.Is(err, ErrUpstream)
	}
	if cb.OnStateChange == nil {
		cb.OnStateChange = func(from, to resilience.CircuitState) {
			zap.L().Warn("chat: circuit state change",
				zap.String("provider", p.Name()),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		}
	}
	return &Relay{provider: p, breaker: resilience.NewCircuitBreaker(cb)}
}

// Stream relays req and calls onDelta with each reply fragment. It returns
// the relay ID used in logs.
func (r *Relay) Stream(ctx context.Context, req Request, onDelta func(string) error) (string, error) {
	id := uuid.NewString()
	if err := req.Validate(); err != nil {
		return id, err
	}

	log := zap.L().With(
		zap.String("relay_id", id),
		zap.String("provider", r.provider.Name()),
	)
	log.Info("chat: relay start",
		zap.Int("messages", len(req.Messages)),
		zap.Bool("scenario_context", req.ScenarioContext != nil),
	)

	start := time.Now()
	fragments := 0
	err := r.breaker.Execute(ctx, func(ctx context.Context) error {
		return r.provider.Stream(ctx, SystemPrompt(req.ScenarioContext), req.Messages, func(text string) error {
			fragments++
			return onDelta(text)
		})
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		err = eris.Wrap(ErrUpstream, "chat: provider circuit open")
	}

	fields := []zap.Field{
		zap.Int("fragments", fragments),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		log.Warn("chat: relay failed", append(fields, zap.Error(err))...)
		return id, err
	}
	log.Info("chat: relay done", fields...)
	return id, nil
}
