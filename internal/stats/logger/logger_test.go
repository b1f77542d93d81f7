package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/chessinsight/internal/logger"
	statslog "github.com/vytor/chessinsight/internal/stats/logger"
)

func TestCollector(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.WithOutput(&buf), logger.WithLevel(logger.DEBUG), logger.WithColors(false), logger.WithCaller(false))
	c := statslog.New(l)

	c.IncCounter("games", 2)
	c.SetGauge("queued", 4)
	c.ObserveHistogram("seconds", 0.25)

	out := buf.String()
	assert.Contains(t, out, "[stats] counter +2 metric=games")
	assert.Contains(t, out, "gauge 4 metric=queued")
	assert.Contains(t, out, "histogram 0.25 metric=seconds")
}

func TestCollector_NilLogger(t *testing.T) {
	assert.NotPanics(t, func() { statslog.New(nil).IncCounter("x", 1) })
}
