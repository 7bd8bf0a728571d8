package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"weatherdesk.app/errors"
)

func TestLookupMetricsShareOneCollector(t *testing.T) {
	first := NewLookupMetrics()
	second := NewLookupMetrics()

	assert.Same(t, first.collector, second.collector)
}

func TestRecordLookup(t *testing.T) {
	m := NewLookupMetrics()

	before := testutil.ToFloat64(m.collector.Lookups.WithLabelValues("city", "ok"))
	m.RecordLookup("city", nil)
	assert.Equal(t, before+1, testutil.ToFloat64(m.collector.Lookups.WithLabelValues("city", "ok")))

	beforeErr := testutil.ToFloat64(m.collector.Lookups.WithLabelValues("coords", "error"))
	m.RecordLookup("coords", errors.NewExternalAPIError("boom", nil))
	assert.Equal(t, beforeErr+1, testutil.ToFloat64(m.collector.Lookups.WithLabelValues("coords", "error")))
}

func TestRecordNotice(t *testing.T) {
	m := NewLookupMetrics()

	before := testutil.ToFloat64(m.collector.Notices)
	m.RecordNotice()
	m.RecordNotice()
	assert.Equal(t, before+2, testutil.ToFloat64(m.collector.Notices))
}

func TestObserveProviderCallDoesNotPanic(t *testing.T) {
	m := NewLookupMetrics()

	assert.NotPanics(t, func() {
		m.ObserveProviderCall("current_by_city", 120*time.Millisecond)
	})
}
