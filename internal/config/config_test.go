package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessinsight/internal/config"
	"github.com/vytor/chessinsight/internal/logger"
)

func validConfig() config.Config {
	return config.Config{
		Addr:                ":8080",
		DBPath:              "test.db",
		LogLevel:            "INFO",
		WorkerCount:         2,
		QueueSize:           32,
		AnalysisParallelism: 1,
		CpInaccuracy:        50,
		CpMistake:           120,
		CpBlunder:           250,
		MinAltGainCp:        80,
		MinStrategicLossCp:  60,
		OpeningPhasePlies:   20,
		MaxVariationPlies:   12,
		MaxSiblingsPerPly:   4,
		ContextPlies:        6,
		AllowSymbolOnly:     true,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*config.Config)
		want   string
	}{
		{"empty addr", func(c *config.Config) { c.Addr = " " }, "ADDR cannot be empty"},
		{"empty db path", func(c *config.Config) { c.DBPath = "" }, "DB_PATH cannot be empty"},
		{"no workers", func(c *config.Config) { c.WorkerCount = 0 }, "WORKER_COUNT"},
		{"no queue", func(c *config.Config) { c.QueueSize = 0 }, "QUEUE_SIZE"},
		{"no parallelism", func(c *config.Config) { c.AnalysisParallelism = 0 }, "ANALYSIS_PARALLELISM"},
		{"mistake below inaccuracy", func(c *config.Config) { c.CpMistake = 50 }, "CP_MISTAKE"},
		{"blunder below mistake", func(c *config.Config) { c.CpBlunder = 100 }, "CP_BLUNDER"},
		{"negative gain", func(c *config.Config) { c.MinAltGainCp = -1 }, "MIN_ALT_GAIN_CP"},
		{"zero variation plies", func(c *config.Config) { c.MaxVariationPlies = 0 }, "ply limits"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("CP_BLUNDER", "300")
	t.Setenv("ALLOW_SYMBOL_ONLY", "false")
	t.Setenv("QUEUE_SIZE", "many")

	cfg := config.Load()
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, 300, cfg.CpBlunder)
	assert.False(t, cfg.AllowSymbolOnly)
	assert.Equal(t, 32, cfg.QueueSize, "malformed values fall back to the default")
	assert.Equal(t, 120, cfg.CpMistake)
}

func TestAnalysisOptions(t *testing.T) {
	cfg := validConfig()
	cfg.CpBlunder = 400
	cfg.AnalysisParallelism = 3
	log := logger.Discard()

	o := cfg.AnalysisOptions(log)
	assert.Equal(t, 400, o.CpBlunder)
	assert.Equal(t, 3, o.Parallelism)
	assert.Equal(t, 30, o.ThemePlies)
	assert.Same(t, log, o.Logger)
}
