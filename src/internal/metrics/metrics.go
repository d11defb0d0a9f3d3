package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	OutcomeSuccess           = "success"
	OutcomeInvalidAmount     = "invalid_amount"
	OutcomeAccountNotFound   = "account_not_found"
	OutcomeInsufficientFunds = "insufficient_funds"
	OutcomeLockTimeout       = "lock_timeout"
	OutcomeStoreUnavailable  = "store_unavailable"
	OutcomePersistenceFailed = "persistence_failed"
)

const (
	NotificationDelivered = "delivered"
	NotificationFailed    = "failed"
	NotificationDropped   = "dropped"
)

var (
	// TransfersTotal counts transfer calls by outcome.
	TransfersTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transfer_engine_transfers_total",
		Help: "Total number of transfer calls by outcome",
	}, []string{"outcome"})
	// LockWaitSeconds observes how long a transfer waited for its account locks.
	LockWaitSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "transfer_engine_lock_wait_seconds",
		Help:    "Time spent acquiring both account locks",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	})
	// NotificationsTotal counts notification deliveries by result.
	NotificationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "transfer_engine_notifications_total",
		Help: "Total number of account notifications by result",
	}, []string{"result"})
)

// NewRegistry creates a new Prometheus registry.
func NewRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}

// Register registers the transfer engine metrics on the provided registry.
// lockTableSize, when non-nil, backs a gauge of lock table entries.
func Register(reg prometheus.Registerer, lockTableSize func() int) {
	reg.MustRegister(TransfersTotal, LockWaitSeconds, NotificationsTotal)
	if lockTableSize != nil {
		reg.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "transfer_engine_lock_table_entries",
			Help: "Number of account identifiers present in the lock table",
		}, func() float64 { return float64(lockTableSize()) }))
	}
}
