package notifier

import (
	"context"

	"github.com/api-sage/transfer-engine/src/internal/domain"
	"github.com/api-sage/transfer-engine/src/internal/logger"
	"github.com/api-sage/transfer-engine/src/internal/metrics"
)

// LogNotifier writes notifications to the application log.
type LogNotifier struct{}

func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

func (n *LogNotifier) Notify(_ context.Context, account domain.Account, message string) {
	logger.Info("account notification", logger.Fields{
		"accountId": account.ID,
		"message":   message,
	})
	metrics.NotificationsTotal.WithLabelValues(metrics.NotificationDelivered).Inc()
}
