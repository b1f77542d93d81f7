package logger_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/chessinsight/internal/logger"
)

func fixed() time.Time { return time.Date(2024, 1, 2, 15, 4, 5, 0, time.UTC) }

func newTest(buf *bytes.Buffer, level logger.Level) *logger.Logger {
	return logger.New(
		logger.WithOutput(buf),
		logger.WithLevel(level),
		logger.WithColors(false),
		logger.WithCaller(false),
		logger.WithClock(fixed),
	)
}

func TestLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := newTest(&buf, logger.DEBUG).WithPrefix("analysis").WithFields(map[string]any{"ply": 17, "game": 3, "b": "x"})

	l.Info("found %d mistakes", 2)
	assert.Equal(t, "2024-01-02 15:04:05.000 INFO  [analysis] found 2 mistakes b=x game=3 ply=17\n", buf.String())
}

func TestLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	l := newTest(&buf, logger.WARN)

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	assert.Equal(t, "2024-01-02 15:04:05.000 WARN  shown\n", buf.String())
	assert.False(t, l.Enabled(logger.INFO))
}

func TestLogger_DerivedDoesNotLeak(t *testing.T) {
	var buf bytes.Buffer
	base := newTest(&buf, logger.INFO)
	_ = base.WithField("request_id", "abc")

	base.Error("boom")
	assert.Equal(t, "2024-01-02 15:04:05.000 ERROR boom\n", buf.String())
}

func TestLogger_Caller(t *testing.T) {
	var buf bytes.Buffer
	l := logger.New(logger.WithOutput(&buf), logger.WithColors(false), logger.WithClock(fixed))
	l.Info("here")
	assert.Contains(t, buf.String(), "[logger_test.go:")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, logger.DEBUG, logger.ParseLevel("debug"))
	assert.Equal(t, logger.WARN, logger.ParseLevel("warning"))
	assert.Equal(t, logger.ERROR, logger.ParseLevel(" ERROR "))
	assert.Equal(t, logger.INFO, logger.ParseLevel("chatty"))
	assert.Equal(t, "UNKNOWN", logger.Level(9).String())
}

func TestContext(t *testing.T) {
	l := logger.Discard()
	ctx := logger.NewContext(context.Background(), l)
	assert.Same(t, l, logger.FromContext(ctx))
	assert.Same(t, logger.Default(), logger.FromContext(context.Background()))
}
