package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"go.uber.org/zap"

	"github.com/katalvlaran/manifold/metrics"
	"github.com/katalvlaran/manifold/problems"
	"github.com/katalvlaran/manifold/space"
)

// run is one invocation's wiring: a tagged logger, a private metrics
// registry and the configured space.
type run struct {
	id      string
	logger  *zap.Logger
	reg     *prometheus.Registry
	problem problems.Problem
	space   space.StateSpace
}

func (a *app) newRun(command string) (*run, error) {
	r := &run{
		id:  uuid.New().String(),
		reg: prometheus.NewRegistry(),
	}
	r.logger = a.logger.With(zap.String("run", r.id), zap.String("command", command))

	p, sp, err := a.cfg.Build(r.logger, metrics.NewPrometheus(r.reg))
	if err != nil {
		return nil, err
	}
	r.problem, r.space = p, sp
	r.logger.Info("space ready",
		zap.String("problem", p.Name),
		zap.String("space", string(sp.Kind())),
		zap.Int("ambient", sp.AmbientDimension()),
		zap.Int("manifold", sp.ManifoldDimension()),
		zap.Float64("delta", sp.Delta()),
	)

	return r, nil
}

// writeMetrics prints every gathered sample as "name{labels} value".
func (r *run) writeMetrics(w io.Writer) error {
	families, err := r.reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if _, err = fmt.Fprintf(w, "%s%s %g\n", mf.GetName(), labelString(m.GetLabel()), sampleValue(mf.GetType(), m)); err != nil {
				return err
			}
		}
	}

	return nil
}

func labelString(pairs []*dto.LabelPair) string {
	if len(pairs) == 0 {
		return ""
	}
	parts := make([]string, 0, len(pairs))
	for _, lp := range pairs {
		parts = append(parts, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	sort.Strings(parts)

	return "{" + strings.Join(parts, ",") + "}"
}

// sampleValue reduces a metric to one number: histograms report their count.
func sampleValue(t dto.MetricType, m *dto.Metric) float64 {
	switch t {
	case dto.MetricType_COUNTER:
		return m.GetCounter().GetValue()
	case dto.MetricType_GAUGE:
		return m.GetGauge().GetValue()
	case dto.MetricType_HISTOGRAM:
		return float64(m.GetHistogram().GetSampleCount())
	default:
		return 0
	}
}
