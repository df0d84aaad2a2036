package validate

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/adammathes/ssmlcheck/pkg/report"
)

// Metrics counts checks and their findings. A nil *Metrics records nothing.
type Metrics struct {
	checks        *prometheus.CounterVec
	findings      *prometheus.CounterVec
	probes        *prometheus.CounterVec
	probeDuration prometheus.Histogram
}

// NewMetrics registers the validator metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		checks: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ssmlcheck_checks_total",
			Help: "Total number of SSML documents checked.",
		}, []string{"platform"}),
		findings: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ssmlcheck_errors_total",
			Help: "Total number of validation errors reported, by type.",
		}, []string{"type"}),
		probes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "ssmlcheck_audio_probes_total",
			Help: "Total number of audio files probed, by outcome.",
		}, []string{"outcome"}),
		probeDuration: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "ssmlcheck_audio_probe_duration_seconds",
			Help:    "Time spent probing a single audio file.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		}),
	}
}

func (m *Metrics) observeCheck(platform string, r *report.Report) {
	if m == nil {
		return
	}
	m.checks.WithLabelValues(platform).Inc()
	for _, msg := range r.Messages {
		m.findings.WithLabelValues(string(msg.Type)).Inc()
	}
}

func (m *Metrics) observeProbe(err error, d time.Duration) {
	if m == nil {
		return
	}
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	m.probes.WithLabelValues(outcome).Inc()
	m.probeDuration.Observe(d.Seconds())
}
