// Package metrics provides Prometheus collectors for ranking runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "resume_ranker"

// Metric names as constants for consistency.
const (
	MetricCandidatesRankedTotal = namespace + "_candidates_ranked_total"
	MetricEncodeRequestsTotal   = namespace + "_encode_requests_total"
	MetricEncodedTextsTotal     = namespace + "_encoded_texts_total"
	MetricRankingDuration       = namespace + "_ranking_duration_seconds"
	MetricTotalScore            = namespace + "_total_score"
)

// Status constants for encode requests.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Metrics contains Prometheus metrics for ranking runs.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	candidatesRanked prometheus.Counter
	encodeRequests   *prometheus.CounterVec
	encodedTexts     *prometheus.CounterVec
	rankingDuration  prometheus.Histogram
	totalScore       prometheus.Histogram
}

// New creates collectors without registering them; call Register.
func New() *Metrics {
	return &Metrics{
		candidatesRanked: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricCandidatesRankedTotal,
			Help: "Total number of candidates scored",
		}),
		encodeRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricEncodeRequestsTotal,
				Help: "Total number of embedding requests by provider and status",
			},
			[]string{"provider", "status"},
		),
		encodedTexts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: MetricEncodedTextsTotal,
				Help: "Total number of texts sent to the embedding provider",
			},
			[]string{"provider"},
		),
		rankingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricRankingDuration,
			Help:    "Histogram of ranking run duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
		}),
		totalScore: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricTotalScore,
			Help:    "Distribution of candidate total scores",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}),
	}
}

// Register registers all collectors with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Collectors returns all collectors.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.candidatesRanked,
		m.encodeRequests,
		m.encodedTexts,
		m.rankingDuration,
		m.totalScore,
	}
}

// ObserveCandidate records one scored candidate.
func (m *Metrics) ObserveCandidate(totalScore float64) {
	if m == nil {
		return
	}
	m.candidatesRanked.Inc()
	m.totalScore.Observe(totalScore)
}

// ObserveEncode records one embedding request carrying texts inputs.
func (m *Metrics) ObserveEncode(provider string, texts int, err error) {
	if m == nil {
		return
	}
	status := StatusSuccess
	if err != nil {
		status = StatusFailure
	}
	m.encodeRequests.WithLabelValues(provider, status).Inc()
	m.encodedTexts.WithLabelValues(provider).Add(float64(texts))
}

// ObserveRanking records the duration of a ranking run.
func (m *Metrics) ObserveRanking(seconds float64) {
	if m == nil {
		return
	}
	m.rankingDuration.Observe(seconds)
}

// WriteTextfile writes everything gathered by g in the node exporter textfile
// collector format.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	return prometheus.WriteToTextfile(path, g)
}
