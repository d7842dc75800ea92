package store

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics groups the collectors updated by Instrumented.
type Metrics struct {
	Operations *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewMetrics builds unregistered collectors under namespace.
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		Operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "store_operations_total",
				Help:      "Key-value store operations by kind and result.",
			},
			[]string{"op", "result"},
		),
		Duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "store_operation_duration_seconds",
				Help:      "Latency of key-value store operations.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"op"},
		),
	}
}

// Register adds the collectors to reg.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.Operations, m.Duration} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// Instrumented records metrics around another Store.
type Instrumented struct {
	next    Store
	metrics *Metrics
}

// Instrument wraps next. A nil metrics value gets fresh unregistered
// collectors.
func Instrument(next Store, metrics *Metrics) *Instrumented {
	if metrics == nil {
		metrics = NewMetrics("foundry")
	}
	return &Instrumented{next: next, metrics: metrics}
}

// Metrics exposes the collectors.
func (i *Instrumented) Metrics() *Metrics {
	return i.metrics
}

func (i *Instrumented) observe(op string, start time.Time, err error) {
	i.metrics.Duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	result := "ok"
	switch {
	case errors.Is(err, ErrNotFound):
		result = "miss"
	case err != nil:
		result = "error"
	}
	i.metrics.Operations.WithLabelValues(op, result).Inc()
}

// Get delegates and records the outcome.
func (i *Instrumented) Get(ctx context.Context, key string) (string, error) {
	start := time.Now()
	value, err := i.next.Get(ctx, key)
	i.observe("get", start, err)
	return value, err
}

// Set delegates and records the outcome.
func (i *Instrumented) Set(ctx context.Context, key, value string) error {
	start := time.Now()
	err := i.next.Set(ctx, key, value)
	i.observe("set", start, err)
	return err
}

// Remove delegates and records the outcome.
func (i *Instrumented) Remove(ctx context.Context, key string) error {
	start := time.Now()
	err := i.next.Remove(ctx, key)
	i.observe("remove", start, err)
	return err
}
