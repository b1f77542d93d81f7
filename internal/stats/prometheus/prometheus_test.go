package prometheus_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessinsight/internal/logger"
	"github.com/vytor/chessinsight/internal/stats"
	promstats "github.com/vytor/chessinsight/internal/stats/prometheus"
)

func gather(t *testing.T, reg *prometheus.Registry) map[string]float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := map[string]float64{}
	for _, f := range families {
		m := f.GetMetric()[0]
		switch {
		case m.GetCounter() != nil:
			out[f.GetName()] = m.GetCounter().GetValue()
		case m.GetGauge() != nil:
			out[f.GetName()] = m.GetGauge().GetValue()
		case m.GetHistogram() != nil:
			out[f.GetName()] = float64(m.GetHistogram().GetSampleCount())
		}
	}
	return out
}

func TestCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := promstats.New(reg)

	c.IncCounter("games_total", 5)
	c.IncCounter("games_total", 3)
	c.SetGauge("queued", 42)
	c.ObserveHistogram("seconds", 0.5)
	c.ObserveHistogram("seconds", 1.5)

	got := gather(t, reg)
	assert.Equal(t, 8.0, got["games_total"])
	assert.Equal(t, 42.0, got["queued"])
	assert.Equal(t, 2.0, got["seconds"])
}

func TestCollector_AdoptsRegistered(t *testing.T) {
	reg := prometheus.NewRegistry()
	existing := prometheus.NewCounter(prometheus.CounterOpts{
		Name: stats.MetricMistakes,
		Help: stats.Help(stats.MetricMistakes),
	})
	reg.MustRegister(existing)
	existing.Add(100)

	var logs bytes.Buffer
	promstats.New(reg, promstats.WithLogger(logger.New(logger.WithOutput(&logs)))).IncCounter(stats.MetricMistakes, 5)
	assert.Equal(t, 105.0, gather(t, reg)[stats.MetricMistakes])
	assert.Empty(t, logs.String())
}

func TestCollector_HelpMismatchIsLogged(t *testing.T) {
	reg := prometheus.NewRegistry()
	existing := prometheus.NewCounter(prometheus.CounterOpts{Name: "mistakes_total", Help: "something else"})
	reg.MustRegister(existing)
	existing.Add(100)

	var logs bytes.Buffer
	c := promstats.New(reg, promstats.WithLogger(logger.New(logger.WithOutput(&logs))))
	assert.NotPanics(t, func() { c.IncCounter("mistakes_total", 5) })

	assert.Equal(t, 100.0, gather(t, reg)["mistakes_total"])
	assert.Contains(t, logs.String(), "metric not exported")
	assert.Contains(t, logs.String(), "metric=mistakes_total")
}

func TestCollector_TypeClash(t *testing.T) {
	reg := prometheus.NewRegistry()
	var logs bytes.Buffer
	c := promstats.New(reg, promstats.WithLogger(logger.New(logger.WithOutput(&logs))))
	c.IncCounter("clash", 1)
	assert.NotPanics(t, func() { c.SetGauge("clash", 3) })
	assert.Equal(t, 1.0, gather(t, reg)["clash"])
	assert.Contains(t, logs.String(), "metric=clash")
}

func TestHelp(t *testing.T) {
	assert.Equal(t, "Mistakes reported.", stats.Help(stats.MetricMistakes))
	assert.Equal(t, "custom_total", stats.Help("custom_total"))
}

func TestCollector_Concurrent(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := promstats.New(reg)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.IncCounter("concurrent_total", 1)
				c.ObserveHistogram("concurrent_seconds", float64(j))
			}
		}()
	}
	wg.Wait()

	got := gather(t, reg)
	assert.Equal(t, 1000.0, got["concurrent_total"])
	assert.Equal(t, 1000.0, got["concurrent_seconds"])
}
