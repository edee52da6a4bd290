package notify

import (
	"context"
	"time"

	"github.com/sahabulislamsifat/PlantStore/internal/domain"
	"github.com/sony/gobreaker/v2"
)

// BreakerNotifier wraps a Notifier with a circuit breaker so a dead
// SMTP relay stops consuming dispatch goroutines. Sends are dropped
// while the breaker is open; order placement is never affected.
type BreakerNotifier struct {
	next    Notifier
	breaker *gobreaker.CircuitBreaker[any]
}

func NewBreakerNotifier(next Notifier) *BreakerNotifier {
	settings := gobreaker.Settings{
		Name:    "order-mail",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 3
		},
	}
	return &BreakerNotifier{
		next:    next,
		breaker: gobreaker.NewCircuitBreaker[any](settings),
	}
}

func (b *BreakerNotifier) OrderPlaced(ctx context.Context, order *domain.Order) error {
	_, err := b.breaker.Execute(func() (any, error) {
		return nil, b.next.OrderPlaced(ctx, order)
	})
	return err
}
