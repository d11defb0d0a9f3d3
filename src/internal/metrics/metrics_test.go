package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRegisterExposesMetrics(t *testing.T) {
	reg := NewRegistry()
	Register(reg, func() int { return 2 })

	TransfersTotal.WithLabelValues(OutcomeSuccess).Inc()
	NotificationsTotal.WithLabelValues(NotificationDelivered).Inc()
	LockWaitSeconds.Observe(0.001)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if len(mfs) != 4 {
		t.Fatalf("expected 4 metric families, got %d", len(mfs))
	}

	for _, mf := range mfs {
		if mf.GetName() != "transfer_engine_lock_table_entries" {
			continue
		}
		if g := mf.GetMetric()[0].GetGauge().GetValue(); g != 2 {
			t.Fatalf("expected lock table gauge 2, got %v", g)
		}
	}
}

func TestRegisterWithoutLockTable(t *testing.T) {
	reg := NewRegistry()
	Register(reg, nil)

	TransfersTotal.WithLabelValues(OutcomeInsufficientFunds).Inc()
	if got := testutil.ToFloat64(TransfersTotal.WithLabelValues(OutcomeInsufficientFunds)); got < 1 {
		t.Fatalf("expected insufficient funds counter to be incremented, got %v", got)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range mfs {
		if mf.GetName() == "transfer_engine_lock_table_entries" {
			t.Fatal("lock table gauge registered without a size source")
		}
	}
}
