package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus is a Recorder backed by client_golang collectors.
type Prometheus struct {
	projections          *prometheus.CounterVec
	projectionIterations prometheus.Histogram
	chartsCreated        prometheus.Counter
	charts               prometheus.Gauge
	traversals           *prometheus.CounterVec
	traversalStates      *prometheus.HistogramVec
	samples              *prometheus.CounterVec
	sampleAttempts       *prometheus.HistogramVec
}

var _ Recorder = (*Prometheus)(nil)

// NewPrometheus registers the engine collectors on reg.
// A nil reg uses prometheus.DefaultRegisterer.
func NewPrometheus(reg prometheus.Registerer) *Prometheus {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	f := promauto.With(reg)

	return &Prometheus{
		// projections counts Newton projections by result
		projections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "manifold_projection_total",
			Help: "Total Newton projections by result",
		}, []string{"result"}),

		projectionIterations: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "manifold_projection_iterations",
			Help:    "Newton iterations per projection",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13, 21, 34, 55},
		}),

		chartsCreated: f.NewCounter(prometheus.CounterOpts{
			Name: "manifold_atlas_charts_created_total",
			Help: "Total charts added to the atlas",
		}),

		charts: f.NewGauge(prometheus.GaugeOpts{
			Name: "manifold_atlas_charts",
			Help: "Current number of charts in the atlas",
		}),

		// traversals counts traversal calls by space kind, outcome and stop reason
		traversals: f.NewCounterVec(prometheus.CounterOpts{
			Name: "manifold_traversal_total",
			Help: "Total manifold traversals by space, outcome and stop reason",
		}, []string{"space", "outcome", "stop"}),

		traversalStates: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "manifold_traversal_states",
			Help:    "States produced per traversal",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1 to 2048
		}, []string{"space"}),

		samples: f.NewCounterVec(prometheus.CounterOpts{
			Name: "manifold_sample_total",
			Help: "Total valid-sample requests by space and outcome",
		}, []string{"space", "outcome"}),

		sampleAttempts: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "manifold_sample_attempts",
			Help:    "Candidate draws per valid-sample request",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64, 128},
		}, []string{"space"}),
	}
}

func (p *Prometheus) ObserveProjection(iterations int, err error) {
	p.projections.WithLabelValues(resultLabel(err)).Inc()
	p.projectionIterations.Observe(float64(iterations))
}

func (p *Prometheus) ChartCreated(total int) {
	p.chartsCreated.Inc()
	p.charts.Set(float64(total))
}

func (p *Prometheus) ObserveTraversal(space, outcome, stop string, states int) {
	p.traversals.WithLabelValues(space, outcome, stop).Inc()
	p.traversalStates.WithLabelValues(space).Observe(float64(states))
}

func (p *Prometheus) ObserveSample(space string, attempts int, err error) {
	p.samples.WithLabelValues(space, resultLabel(err)).Inc()
	p.sampleAttempts.WithLabelValues(space).Observe(float64(attempts))
}

func resultLabel(err error) string {
	if err != nil {
		return OutcomeError
	}

	return OutcomeOK
}
