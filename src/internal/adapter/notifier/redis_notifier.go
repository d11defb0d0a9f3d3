package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/api-sage/transfer-engine/src/internal/domain"
	"github.com/api-sage/transfer-engine/src/internal/logger"
	"github.com/api-sage/transfer-engine/src/internal/metrics"
)

const EventAccountNotification = "account.notification"

type Event struct {
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Data      Payload   `json:"data"`
}

type Payload struct {
	AccountID string `json:"accountId"`
	Balance   string `json:"balance"`
	Message   string `json:"message"`
}

// RedisNotifier appends notifications to a Redis stream for delivery by a
// downstream consumer. Publish failures are logged and dropped.
type RedisNotifier struct {
	client  redis.UniversalClient
	stream  string
	timeout time.Duration
}

func NewRedisNotifier(client redis.UniversalClient, stream string) *RedisNotifier {
	return &RedisNotifier{
		client:  client,
		stream:  stream,
		timeout: 3 * time.Second,
	}
}

func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return rdb, nil
}

func (n *RedisNotifier) Notify(ctx context.Context, account domain.Account, message string) {
	if err := n.publish(ctx, account, message); err != nil {
		logger.Error("redis notifier publish failed", err, logger.Fields{
			"accountId": account.ID,
			"stream":    n.stream,
		})
		metrics.NotificationsTotal.WithLabelValues(metrics.NotificationFailed).Inc()
		return
	}
	metrics.NotificationsTotal.WithLabelValues(metrics.NotificationDelivered).Inc()
}

func (n *RedisNotifier) publish(ctx context.Context, account domain.Account, message string) error {
	event := Event{
		Type:      EventAccountNotification,
		Timestamp: time.Now().UTC(),
		Data: Payload{
			AccountID: account.ID,
			Balance:   account.Balance.String(),
			Message:   message,
		},
	}

	eventJSON, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), n.timeout)
	defer cancel()

	args := &redis.XAddArgs{
		Stream: n.stream,
		Values: map[string]any{
			"event": eventJSON,
		},
	}
	if _, err := n.client.XAdd(ctx, args).Result(); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
