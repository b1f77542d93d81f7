// Package prometheus backs stats.Collector with client_golang metrics that
// are registered on first use.
package prometheus

import (
	"errors"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/vytor/chessinsight/internal/logger"
	"github.com/vytor/chessinsight/internal/stats"
)

// Collector implements stats.Collector.
type Collector struct {
	registry prometheus.Registerer
	log      *logger.Logger

	mu      sync.Mutex
	metrics map[string]prometheus.Collector
}

var _ stats.Collector = (*Collector)(nil)

// Option configures a Collector.
type Option func(*Collector)

// WithLogger sets where registration failures are reported.
func WithLogger(l *logger.Logger) Option {
	return func(c *Collector) { c.log = l.WithPrefix("prometheus") }
}

// New returns a collector registering on registry, or on the default
// registerer when registry is nil.
func New(registry prometheus.Registerer, opts ...Option) *Collector {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	c := &Collector{
		registry: registry,
		log:      logger.Default().WithPrefix("prometheus"),
		metrics:  make(map[string]prometheus.Collector),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Collector) IncCounter(name string, delta int64) {
	metric(c, name, func() prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: stats.Help(name)})
	}).Add(float64(delta))
}

func (c *Collector) SetGauge(name string, value int64) {
	metric(c, name, func() prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Name: name, Help: stats.Help(name)})
	}).Set(float64(value))
}

func (c *Collector) ObserveHistogram(name string, value float64) {
	metric(c, name, func() prometheus.Histogram {
		return prometheus.NewHistogram(prometheus.HistogramOpts{Name: name, Help: stats.Help(name), Buckets: prometheus.DefBuckets})
	}).Observe(value)
}

// metric returns the metric called name, creating and registering it with
// build on first use.
//
// A metric registered elsewhere with the same name, type and help (see
// stats.Help) is adopted and keeps its value. Any other registration failure,
// such as a help mismatch or a name reused with a different type, is logged
// once and the caller gets an unregistered metric, so it never panics but the
// values are not exported.
func metric[M prometheus.Collector](c *Collector, name string, build func() M) M {
	c.mu.Lock()
	defer c.mu.Unlock()

	if existing, ok := c.metrics[name].(M); ok {
		return existing
	}
	m := build()
	if err := c.registry.Register(m); err != nil {
		var are prometheus.AlreadyRegisteredError
		adopted := false
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(M); ok {
				m, adopted = existing, true
			}
		}
		if !adopted {
			c.log.WithField("metric", name).Error("metric not exported: %v", err)
		}
	}
	if _, taken := c.metrics[name]; !taken {
		c.metrics[name] = m
	}
	return m
}
