package metrics

import (
	"errors"
	"testing"
	"time"

	"VaderBoot/internal/domain/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorderCounters(t *testing.T) {
	r := New(prometheus.NewRegistry())

	r.RecordSignal(models.OutcomeTrade, 0.72)
	r.RecordSignal(models.OutcomeTrade, 0.64)
	r.RecordSignal(models.OutcomeFiltered, 0.51)
	r.RecordMetricUnavailable("pe_ratio")
	r.RecordProviderQuery("daily_closes", 20*time.Millisecond, nil)
	r.RecordProviderQuery("daily_closes", 30*time.Millisecond, errors.New("503"))
	r.RecordNotification("telegram", nil)
	r.RecordNotification("telegram", errors.New("timeout"))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.signalsTotal.WithLabelValues(string(models.OutcomeTrade))))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.signalsTotal.WithLabelValues(string(models.OutcomeFiltered))))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.metricUnavailable.WithLabelValues("pe_ratio")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.providerErrors.WithLabelValues("daily_closes")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.notificationsTotal.WithLabelValues("telegram", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.notificationsTotal.WithLabelValues("telegram", "error")))
}

func TestRecordersOnSeparateRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry()).RecordLatency("signal_evaluation", 0.2)
		New(prometheus.NewRegistry()).RecordLatency("signal_evaluation", 0.3)
	})
}

func TestRecorderPanicsOnDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
