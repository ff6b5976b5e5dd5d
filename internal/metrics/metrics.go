package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "mathquest"

// Metrics holds the game collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	roundsStarted   *prometheus.CounterVec
	roundsCompleted prometheus.Counter
	answers         *prometheus.CounterVec
	stars           prometheus.Histogram
	poolSize        *prometheus.GaugeVec
	rejections      *prometheus.CounterVec
	skipped         *prometheus.CounterVec
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		roundsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_started_total",
			Help:      "Rounds started, by how they were started.",
		}, []string{"kind"}),
		roundsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rounds_completed_total",
			Help:      "Rounds played to completion.",
		}),
		answers: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "answers_total",
			Help:      "Accepted answers by correctness.",
		}, []string{"correct"}),
		stars: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "round_stars",
			Help:      "Star rating of completed rounds.",
			Buckets:   []float64{0, 1, 2, 3},
		}),
		poolSize: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "question_pool_size",
			Help:      "Generated questions per category.",
		}, []string{"category"}),
		rejections: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "question_rejections_total",
			Help:      "Generated candidates rejected by their constraint, per category.",
		}, []string{"category"}),
		skipped: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "question_skipped_total",
			Help:      "Items dropped after exhausting their retry bound, per category.",
		}, []string{"category"}),
	}
}

// RoundStarted counts a new round; kind is start, continue or restart.
func (m *Metrics) RoundStarted(kind string) {
	if m == nil {
		return
	}
	m.roundsStarted.WithLabelValues(kind).Inc()
}

// RoundCompleted records a finished round and its stars.
func (m *Metrics) RoundCompleted(stars int) {
	if m == nil {
		return
	}
	m.roundsCompleted.Inc()
	m.stars.Observe(float64(stars))
}

// Answer counts an accepted answer.
func (m *Metrics) Answer(correct bool) {
	if m == nil {
		return
	}
	m.answers.WithLabelValues(strconv.FormatBool(correct)).Inc()
}

// Pool records one category's build report.
func (m *Metrics) Pool(category string, generated, rejected, skipped int) {
	if m == nil {
		return
	}
	m.poolSize.WithLabelValues(category).Set(float64(generated))
	m.rejections.WithLabelValues(category).Add(float64(rejected))
	m.skipped.WithLabelValues(category).Add(float64(skipped))
}
