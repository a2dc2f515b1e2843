// Package metrics provides Prometheus metrics for targetrun.
package metrics

import (
	"fmt"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// Execution outcomes recorded by the collector.
const (
	OutcomeSuccess   = "success"
	OutcomeFailed    = "failed"
	OutcomeNotFound  = "not_found"
	OutcomeSimulated = "simulated"
)

// Resolution kinds recorded by the collector.
const (
	ResolutionTarget = "target" // resolved through the registry
	ResolutionPath   = "path"   // resolved via PATH search
	ResolutionMiss   = "miss"   // no executable found
)

// Collector owns all targetrun metrics on a private registry, so tests
// and multiple instances never collide on the default registry.
type Collector struct {
	registry *prometheus.Registry

	info        *prometheus.GaugeVec
	executions  *prometheus.CounterVec
	duration    prometheus.Histogram
	resolutions *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics.
func NewCollector(version string) *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		info: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "targetrun_info",
				Help: "Information about the targetrun build (value always 1)",
			},
			[]string{"version"},
		),
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "targetrun_executions_total",
				Help: "Completed command executions by outcome",
			},
			[]string{"outcome"},
		),
		duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "targetrun_execution_duration_seconds",
				Help:    "Wall-clock duration of command executions",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 14), // 10ms .. ~82s
			},
		),
		resolutions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "targetrun_resolutions_total",
				Help: "Executable resolutions by kind",
			},
			[]string{"kind"},
		),
	}

	c.registry.MustRegister(
		c.info,
		c.executions,
		c.duration,
		c.resolutions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.info.WithLabelValues(version).Set(1)
	return c
}

// RecordExecution records one completed (or refused) execution.
func (c *Collector) RecordExecution(outcome string, d time.Duration) {
	c.executions.WithLabelValues(outcome).Inc()
	if outcome != OutcomeSimulated && outcome != OutcomeNotFound {
		c.duration.Observe(d.Seconds())
	}
}

// RecordResolution records one executable resolution.
func (c *Collector) RecordResolution(kind string) {
	c.resolutions.WithLabelValues(kind).Inc()
}

// Gatherer exposes the private registry for serving.
func (c *Collector) Gatherer() prometheus.Gatherer {
	return c.registry
}

// CounterValue reads back the current value of a labeled counter from
// the gathered families. Returns 0 when the series does not exist.
func (c *Collector) CounterValue(name, labelValue string) float64 {
	families, err := c.registry.Gather()
	if err != nil {
		return 0
	}
	for _, mf := range families {
		if mf.GetName() != name || mf.GetType() != dto.MetricType_COUNTER {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, lp := range m.GetLabel() {
				if lp.GetValue() == labelValue {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

// DumpText renders the current metric families in the Prometheus text
// exposition format, for printing alongside the exit summary.
func (c *Collector) DumpText(w io.Writer) error {
	families, err := c.registry.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return fmt.Errorf("encode %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
