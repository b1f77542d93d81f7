// Package stats is the metrics seam between the report service and
// whatever backend records the numbers.
package stats

// Metric names.
const (
	MetricGamesParsed    = "chessinsight_games_parsed_total"
	MetricGamesMatched   = "chessinsight_games_matched_total"
	MetricPliesAnalyzed  = "chessinsight_plies_analyzed_total"
	MetricMistakes       = "chessinsight_mistakes_total"
	MetricReportsFailed  = "chessinsight_reports_failed_total"
	MetricReportsQueued  = "chessinsight_reports_queued"
	MetricAnalyzeSeconds = "chessinsight_analyze_seconds"
)

var help = map[string]string{
	MetricGamesParsed:    "Games found in submitted PGN.",
	MetricGamesMatched:   "Games in which the requested player took part.",
	MetricPliesAnalyzed:  "Plies of the player that were examined.",
	MetricMistakes:       "Mistakes reported.",
	MetricReportsFailed:  "Stored reports that ended in the failed state.",
	MetricReportsQueued:  "Report jobs waiting in the worker queue.",
	MetricAnalyzeSeconds: "Wall time of one analysis run.",
}

// Help describes a metric for exposition. Unknown names describe themselves.
func Help(name string) string {
	if h, ok := help[name]; ok {
		return h
	}
	return name
}

// Collector records metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
