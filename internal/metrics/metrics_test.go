package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// value returns the counter or gauge value of the series name{label=value}.
func value(t *testing.T, reg *prometheus.Registry, name, label, labelValue string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			matched := label == ""
			for _, pair := range metric.GetLabel() {
				if pair.GetName() == label && pair.GetValue() == labelValue {
					matched = true
				}
			}
			if !matched {
				continue
			}
			if c := metric.GetCounter(); c != nil {
				return c.GetValue()
			}
			return metric.GetGauge().GetValue()
		}
	}
	t.Fatalf("series %s{%s=%q} not found", name, label, labelValue)
	return 0
}

func TestMetrics_Record(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.RoundStarted("start")
	m.RoundStarted("restart")
	m.RoundStarted("start")
	m.Answer(true)
	m.Answer(false)
	m.Answer(true)
	m.RoundCompleted(3)
	m.Pool("currency", 50, 4, 0)

	assert.Equal(t, 2.0, value(t, reg, "mathquest_rounds_started_total", "kind", "start"))
	assert.Equal(t, 1.0, value(t, reg, "mathquest_rounds_started_total", "kind", "restart"))
	assert.Equal(t, 2.0, value(t, reg, "mathquest_answers_total", "correct", "true"))
	assert.Equal(t, 1.0, value(t, reg, "mathquest_answers_total", "correct", "false"))
	assert.Equal(t, 1.0, value(t, reg, "mathquest_rounds_completed_total", "", ""))
	assert.Equal(t, 50.0, value(t, reg, "mathquest_question_pool_size", "category", "currency"))
	assert.Equal(t, 4.0, value(t, reg, "mathquest_question_rejections_total", "category", "currency"))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RoundStarted("start")
		m.RoundCompleted(1)
		m.Answer(true)
		m.Pool("shapes", 1, 0, 0)
	})
}
