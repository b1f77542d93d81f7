// Package logger is a stats.Collector that writes every metric as a DEBUG
// log line, for the CLI where there is no scrape endpoint.
package logger

import (
	"github.com/vytor/chessinsight/internal/logger"
	"github.com/vytor/chessinsight/internal/stats"
)

type Collector struct {
	log *logger.Logger
}

var _ stats.Collector = (*Collector)(nil)

// New logs through l, or through a discarding logger when l is nil.
func New(l *logger.Logger) *Collector {
	if l == nil {
		l = logger.Discard()
	}
	return &Collector{log: l.WithPrefix("stats")}
}

func (c *Collector) IncCounter(name string, delta int64) {
	c.log.WithField("metric", name).Debug("counter +%d", delta)
}

func (c *Collector) SetGauge(name string, value int64) {
	c.log.WithField("metric", name).Debug("gauge %d", value)
}

func (c *Collector) ObserveHistogram(name string, value float64) {
	c.log.WithField("metric", name).Debug("histogram %g", value)
}
