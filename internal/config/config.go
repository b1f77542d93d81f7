// Package config loads settings from a .env file and the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vytor/chessinsight/internal/analysis"
	"github.com/vytor/chessinsight/internal/logger"
)

type Config struct {
	Addr                string
	DBPath              string
	LogLevel            string
	WorkerCount         int
	QueueSize           int
	AnalysisParallelism int

	CpInaccuracy       int
	CpMistake          int
	CpBlunder          int
	MinAltGainCp       int
	MinStrategicLossCp int
	OpeningPhasePlies  int
	MaxVariationPlies  int
	MaxSiblingsPerPly  int
	ContextPlies       int
	AllowSymbolOnly    bool
}

// Load reads configuration from a .env file (if present) and environment
// variables. Missing or malformed values fall back to defaults.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	d := analysis.DefaultOptions()
	return Config{
		Addr:                envOr("ADDR", ":8080"),
		DBPath:              envOr("DB_PATH", "file:chessinsight.db"),
		LogLevel:            envOr("LOG_LEVEL", "INFO"),
		WorkerCount:         envIntOr("WORKER_COUNT", 2),
		QueueSize:           envIntOr("QUEUE_SIZE", 32),
		AnalysisParallelism: envIntOr("ANALYSIS_PARALLELISM", 1),

		CpInaccuracy:       envIntOr("CP_INACCURACY", d.CpInaccuracy),
		CpMistake:          envIntOr("CP_MISTAKE", d.CpMistake),
		CpBlunder:          envIntOr("CP_BLUNDER", d.CpBlunder),
		MinAltGainCp:       envIntOr("MIN_ALT_GAIN_CP", d.MinAltGainCp),
		MinStrategicLossCp: envIntOr("MIN_STRATEGIC_LOSS_CP", d.MinStrategicLossCp),
		OpeningPhasePlies:  envIntOr("OPENING_PHASE_PLIES", d.OpeningPhasePlies),
		MaxVariationPlies:  envIntOr("MAX_VARIATION_PLIES", d.MaxVariationPlies),
		MaxSiblingsPerPly:  envIntOr("MAX_SIBLINGS_PER_PLY", d.MaxSiblingsPerPly),
		ContextPlies:       envIntOr("CONTEXT_PLIES", d.ContextPlies),
		AllowSymbolOnly:    envBoolOr("ALLOW_SYMBOL_ONLY", d.AllowSymbolOnly),
	}
}

// Validate returns the first rule the configuration breaks.
func (c Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("ADDR cannot be empty")
	case strings.TrimSpace(c.DBPath) == "":
		return fmt.Errorf("DB_PATH cannot be empty")
	case c.WorkerCount < 1:
		return fmt.Errorf("WORKER_COUNT must be at least 1, got %d", c.WorkerCount)
	case c.QueueSize < 1:
		return fmt.Errorf("QUEUE_SIZE must be at least 1, got %d", c.QueueSize)
	case c.AnalysisParallelism < 1:
		return fmt.Errorf("ANALYSIS_PARALLELISM must be at least 1, got %d", c.AnalysisParallelism)
	case c.CpInaccuracy < 1:
		return fmt.Errorf("CP_INACCURACY must be positive, got %d", c.CpInaccuracy)
	case c.CpMistake <= c.CpInaccuracy:
		return fmt.Errorf("CP_MISTAKE (%d) must exceed CP_INACCURACY (%d)", c.CpMistake, c.CpInaccuracy)
	case c.CpBlunder <= c.CpMistake:
		return fmt.Errorf("CP_BLUNDER (%d) must exceed CP_MISTAKE (%d)", c.CpBlunder, c.CpMistake)
	case c.MinAltGainCp < 0 || c.MinStrategicLossCp < 0:
		return fmt.Errorf("MIN_ALT_GAIN_CP and MIN_STRATEGIC_LOSS_CP cannot be negative")
	case c.OpeningPhasePlies < 0 || c.MaxVariationPlies < 1 || c.MaxSiblingsPerPly < 1 || c.ContextPlies < 0:
		return fmt.Errorf("ply limits out of range")
	}
	return nil
}

// AnalysisOptions converts the analysis settings; everything not
// configurable keeps its default.
func (c Config) AnalysisOptions(log *logger.Logger) analysis.Options {
	o := analysis.DefaultOptions()
	o.CpInaccuracy = c.CpInaccuracy
	o.CpMistake = c.CpMistake
	o.CpBlunder = c.CpBlunder
	o.MinAltGainCp = c.MinAltGainCp
	o.MinStrategicLossCp = c.MinStrategicLossCp
	o.OpeningPhasePlies = c.OpeningPhasePlies
	o.MaxVariationPlies = c.MaxVariationPlies
	o.MaxSiblingsPerPly = c.MaxSiblingsPerPly
	o.ContextPlies = c.ContextPlies
	o.AllowSymbolOnly = c.AllowSymbolOnly
	o.Parallelism = c.AnalysisParallelism
	o.Logger = log
	return o
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		logger.Warn("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		logger.Warn("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
