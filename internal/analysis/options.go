package analysis

import (
	"github.com/corentings/chess/v2"
	"github.com/vytor/chessinsight/internal/logger"
	"github.com/vytor/chessinsight/internal/models"
)

// Options tunes a run. Start from DefaultOptions; zero or negative numeric
// fields fall back to their defaults, except MaxMove (0 means no cap) and
// ContextPlies (0 means no window).
type Options struct {
	MaxVariationPlies  int
	OpeningPhasePlies  int
	CpInaccuracy       int
	CpMistake          int
	CpBlunder          int
	MinAltGainCp       int
	MinStrategicLossCp int
	AllowSymbolOnly    bool
	MaxSiblingsPerPly  int
	ContextPlies       int
	MaxMove            int
	// PlayerColor restricts matching to one side; chess.NoColor accepts both.
	PlayerColor chess.Color
	ThemePlies  int
	TopMistakes int
	Parallelism int
	// Source labels the games in the output, typically a file name.
	Source string
	Logger *logger.Logger
}

// DefaultOptions returns the standard thresholds.
func DefaultOptions() Options {
	return Options{
		MaxVariationPlies:  12,
		OpeningPhasePlies:  20,
		CpInaccuracy:       50,
		CpMistake:          120,
		CpBlunder:          250,
		MinAltGainCp:       80,
		MinStrategicLossCp: 60,
		AllowSymbolOnly:    true,
		MaxSiblingsPerPly:  4,
		ContextPlies:       6,
		PlayerColor:        chess.NoColor,
		ThemePlies:         30,
		TopMistakes:        10,
		Parallelism:        1,
	}
}

func (o Options) normalized() Options {
	d := DefaultOptions()
	fill := func(v *int, def int) {
		if *v <= 0 {
			*v = def
		}
	}
	fill(&o.MaxVariationPlies, d.MaxVariationPlies)
	fill(&o.OpeningPhasePlies, d.OpeningPhasePlies)
	fill(&o.CpInaccuracy, d.CpInaccuracy)
	fill(&o.CpMistake, d.CpMistake)
	fill(&o.CpBlunder, d.CpBlunder)
	fill(&o.MinAltGainCp, d.MinAltGainCp)
	fill(&o.MinStrategicLossCp, d.MinStrategicLossCp)
	fill(&o.MaxSiblingsPerPly, d.MaxSiblingsPerPly)
	fill(&o.ThemePlies, d.ThemePlies)
	fill(&o.TopMistakes, d.TopMistakes)
	fill(&o.Parallelism, d.Parallelism)
	if o.ContextPlies < 0 {
		o.ContextPlies = 0
	}
	if o.MaxMove < 0 {
		o.MaxMove = 0
	}
	if o.Logger == nil {
		o.Logger = logger.Default()
	}
	return o
}

// severityFor maps a loss in centipawns onto the threshold bands.
func (o Options) severityFor(loss int) models.Severity {
	switch {
	case loss >= o.CpBlunder:
		return models.SeverityBlunder
	case loss >= o.CpMistake:
		return models.SeverityMistake
	case loss >= o.CpInaccuracy:
		return models.SeverityInaccuracy
	}
	return models.SeverityInfo
}
