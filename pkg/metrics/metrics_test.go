package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWorkspaceID = "ws-1"

func getMetricSeries(t *testing.T, registry *prometheus.Registry, name string) *io_prometheus_client.Metric {
	metrics := serveMetrics(t, registry)
	require.Contains(t, metrics, name)
	targetMetric := metrics[name]
	require.NotEmpty(t, targetMetric.Metric)
	return targetMetric.Metric[0]
}

func TestCounterIncrements(t *testing.T) {
	const expectedIncrement = 1.0

	tt := []struct {
		metricName        string
		callIncrementFunc func(m *Metrics)
	}{
		{
			metricName: "reachforge_sendgate_send_email_total",
			callIncrementFunc: func(m *Metrics) {
				m.IncSendEmail(testWorkspaceID)
			},
		},
		{
			metricName: "reachforge_sendgate_failed_send_email_total",
			callIncrementFunc: func(m *Metrics) {
				m.IncFailedSendEmail(testWorkspaceID)
			},
		},
		{
			metricName: "reachforge_sendgate_denied_send_email_total",
			callIncrementFunc: func(m *Metrics) {
				m.IncDeniedSendEmail(testWorkspaceID, "MONTHLY_EMAIL_WORKSPACE")
			},
		},
		{
			metricName: "reachforge_sendgate_warmup_send_email_total",
			callIncrementFunc: func(m *Metrics) {
				m.IncWarmupSendEmail(testWorkspaceID)
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.metricName, func(t *testing.T) {
			m := NewInstance()
			registry := initPrometheus(m)
			tc.callIncrementFunc(m)

			targetSeries := getMetricSeries(t, registry, tc.metricName)

			// Test that the metrics value is 1 after calling the incrementFunc.
			value := targetSeries.GetCounter().GetValue()
			assert.Equalf(t, expectedIncrement, value, "metric %s has unexpected value", tc.metricName)
			label := targetSeries.GetLabel()[0]
			assert.Containsf(t, label.GetName(), workspaceIDLabelName, "metric %s has unexpected label", tc.metricName)
			assert.Containsf(t, label.GetValue(), testWorkspaceID, "metric %s has unexpected label", tc.metricName)
		})
	}
}

func TestMetricsConformity(t *testing.T) {
	metrics := NewInstance()

	for _, metric := range []prometheus.Collector{
		metrics.sendEmail,
		metrics.failedSendEmail,
		metrics.deniedSendEmail,
		metrics.warmupSendEmail,
	} {
		problems, err := testutil.CollectAndLint(metric)
		assert.NoError(t, err)
		assert.Empty(t, problems)
	}
}
