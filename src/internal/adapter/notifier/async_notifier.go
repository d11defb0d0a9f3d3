package notifier

import (
	"context"
	"fmt"
	"sync"

	"github.com/api-sage/transfer-engine/src/internal/domain"
	"github.com/api-sage/transfer-engine/src/internal/logger"
	"github.com/api-sage/transfer-engine/src/internal/metrics"
)

type job struct {
	account domain.Account
	message string
}

// AsyncNotifier delivers notifications to next from a single background
// worker. Notify never blocks; when the buffer is full the notification is
// dropped and counted.
type AsyncNotifier struct {
	next  domain.Notifier
	queue chan job

	mu     sync.RWMutex
	closed bool
	done   chan struct{}
}

func NewAsyncNotifier(next domain.Notifier, buffer int) *AsyncNotifier {
	if buffer <= 0 {
		buffer = 1
	}

	n := &AsyncNotifier{
		next:  next,
		queue: make(chan job, buffer),
		done:  make(chan struct{}),
	}
	go n.run()
	return n
}

func (n *AsyncNotifier) Notify(_ context.Context, account domain.Account, message string) {
	n.mu.RLock()
	defer n.mu.RUnlock()

	if n.closed {
		n.drop(account, "notifier closed")
		return
	}

	select {
	case n.queue <- job{account: account, message: message}:
	default:
		n.drop(account, "notification buffer full")
	}
}

// Close stops accepting notifications and waits until the queued ones are
// delivered or ctx ends.
func (n *AsyncNotifier) Close(ctx context.Context) error {
	n.mu.Lock()
	if !n.closed {
		n.closed = true
		close(n.queue)
	}
	n.mu.Unlock()

	select {
	case <-n.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (n *AsyncNotifier) run() {
	defer close(n.done)
	for j := range n.queue {
		n.deliver(j)
	}
}

// deliver hands one job to next. A panic in next is logged and counted as a
// failed delivery so the worker keeps draining the queue.
func (n *AsyncNotifier) deliver(j job) {
	defer func() {
		if rec := recover(); rec != nil {
			metrics.NotificationsTotal.WithLabelValues(metrics.NotificationFailed).Inc()
			logger.Error("async notifier delivery panicked", fmt.Errorf("%v", rec), logger.Fields{
				"accountId": j.account.ID,
			})
		}
	}()
	n.next.Notify(context.Background(), j.account, j.message)
}

func (n *AsyncNotifier) drop(account domain.Account, reason string) {
	metrics.NotificationsTotal.WithLabelValues(metrics.NotificationDropped).Inc()
	logger.Info("async notifier dropped notification", logger.Fields{
		"accountId": account.ID,
		"reason":    reason,
	})
}
