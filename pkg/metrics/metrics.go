package metrics

import (
	"context"
	"io"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"

	"github.com/dmitrymomot/valkit/pkg/validator"
)

// Result label values.
const (
	ResultPass  = "pass"
	ResultFail  = "fail"
	ResultError = "error"
)

// Collector records rule evaluations as Prometheus metrics.
// It implements validator.Observer.
type Collector struct {
	evaluations *prometheus.CounterVec
	duration    *prometheus.HistogramVec
}

var _ validator.Observer = (*Collector)(nil)

// Option configures a Collector.
type Option func(*options)

type options struct {
	namespace string
	buckets   []float64
}

// WithNamespace overrides the metric namespace (default "valkit").
func WithNamespace(ns string) Option {
	return func(o *options) { o.namespace = ns }
}

// WithBuckets overrides the duration histogram buckets.
func WithBuckets(buckets []float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// New registers the collector's metrics with reg.
func New(reg prometheus.Registerer, opts ...Option) *Collector {
	o := options{
		namespace: "valkit",
		buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
	}
	for _, opt := range opts {
		opt(&o)
	}

	factory := promauto.With(reg)
	return &Collector{
		evaluations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: o.namespace,
				Subsystem: "rule",
				Name:      "evaluations_total",
				Help:      "Total number of rule evaluations",
			},
			[]string{"rule", "result", "deferred"},
		),
		duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: o.namespace,
				Subsystem: "rule",
				Name:      "duration_seconds",
				Help:      "Rule evaluation duration in seconds, including deferred resolution",
				Buckets:   o.buckets,
			},
			[]string{"rule", "deferred"},
		),
	}
}

// ObserveRule implements validator.Observer.
func (c *Collector) ObserveRule(_ context.Context, ev validator.Evaluation) {
	deferred := strconv.FormatBool(ev.Deferred)
	c.evaluations.WithLabelValues(ev.Rule, result(ev), deferred).Inc()
	c.duration.WithLabelValues(ev.Rule, deferred).Observe(ev.Duration.Seconds())
}

func result(ev validator.Evaluation) string {
	switch {
	case ev.Err != nil:
		return ResultError
	case ev.Valid:
		return ResultPass
	default:
		return ResultFail
	}
}

// WriteText writes every metric gathered from g in the Prometheus text format.
func WriteText(w io.Writer, g prometheus.Gatherer) error {
	families, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
