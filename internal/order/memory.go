package order

import (
	"context"
	"sync"
	"time"

	"crumbline-be/internal/checkout"
	"crumbline-be/internal/logger"

	"go.uber.org/zap"
)

// MemoryBackend accepts orders without a database. It backs the static
// catalog mode and keeps accepted submissions for inspection. Latency, when
// set, stands in for the round trip the storefront used to fake with
// timers.
type MemoryBackend struct {
	mu      sync.Mutex
	latency time.Duration
	orders  map[string]checkout.Submission
}

func NewMemoryBackend(latency time.Duration) *MemoryBackend {
	return &MemoryBackend{latency: latency, orders: make(map[string]checkout.Submission)}
}

func (b *MemoryBackend) SubmitOrder(ctx context.Context, sub checkout.Submission) (string, error) {
	if b.latency > 0 {
		select {
		case <-time.After(b.latency):
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	orderNumber := NewOrderNumber()

	b.mu.Lock()
	b.orders[orderNumber] = sub
	b.mu.Unlock()

	logger.FromCtx(ctx).Info("order accepted in memory",
		zap.String("order_number", orderNumber),
		zap.String("total", sub.Totals.Total.Dollars()),
	)
	return orderNumber, nil
}

// Order returns an accepted submission by order number.
func (b *MemoryBackend) Order(orderNumber string) (checkout.Submission, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	sub, ok := b.orders[orderNumber]
	return sub, ok
}
