package models

import (
	"time"

	"github.com/vytor/chessinsight/internal/themes"
)

type FrequentMistake struct {
	Ply       int     `json:"ply"`
	SAN       string  `json:"san"`
	Kind      Kind    `json:"kind"`
	Count     int     `json:"count"`
	AvgLossCP float64 `json:"avg_loss_cp"`
}

// OpeningStat aggregates mistakes per (colour, normalised opening).
type OpeningStat struct {
	Color         string               `json:"color"`
	Key           string               `json:"key"`
	ECO           string               `json:"eco,omitempty"`
	Name          string               `json:"name"`
	Games         int                  `json:"games"`
	PliesAnalyzed int                  `json:"plies_analyzed"`
	Kinds         map[Kind]int         `json:"kinds"`
	Tags          map[themes.Tag]int   `json:"tags"`
	Themes        map[SummaryTheme]int `json:"themes"`
	TopMistakes   []FrequentMistake    `json:"top_mistakes"`
}

type SchemeCount struct {
	Signature string `json:"signature"`
	Count     int    `json:"count"`
}

// Report is the full output of one analysis run.
type Report struct {
	Player        string               `json:"player"`
	Mistakes      []Mistake            `json:"mistakes"`
	KindCounts    map[Kind]int         `json:"kind_counts"`
	ThemeCounts   map[SummaryTheme]int `json:"theme_counts"`
	Schemes       []SchemeCount        `json:"schemes"`
	Openings      []OpeningStat        `json:"openings"`
	TotalGames    int                  `json:"total_games"`
	MatchedGames  int                  `json:"matched_games"`
	AnalyzedPlies int                  `json:"analyzed_plies"`
}

type StructureStat struct {
	Signature string  `json:"signature"`
	Count     int     `json:"count"`
	Wins      int     `json:"wins"`
	Draws     int     `json:"draws"`
	Losses    int     `json:"losses"`
	WinRate   float64 `json:"win_rate"`
}

// StructureReport lists pawn skeletons reached at a fixed move.
type StructureReport struct {
	Player       string          `json:"player"`
	Color        string          `json:"color"`
	MoveNumber   int             `json:"move_number"`
	TotalGames   int             `json:"total_games"`
	MatchedGames int             `json:"matched_games"`
	Structures   []StructureStat `json:"structures"`
}

// Report job states.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// StoredReport is a report row in the store.
type StoredReport struct {
	ID           int64      `json:"id"`
	Player       string     `json:"player"`
	Color        string     `json:"color,omitempty"`
	Status       string     `json:"status"`
	Error        string     `json:"error,omitempty"`
	TotalGames   int        `json:"total_games"`
	MatchedGames int        `json:"matched_games"`
	MistakeCount int        `json:"mistake_count"`
	Report       *Report    `json:"report,omitempty"`
	PGN          string     `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

type ReportFilter struct {
	Player string
	Status string
	Limit  int
	Offset int
}

// GameAnalysis is the per-game outcome of a run before aggregation.
type GameAnalysis struct {
	Game     GameIdentity `json:"game"`
	Matched  bool         `json:"matched"`
	Color    string       `json:"color,omitempty"`
	Plies    int          `json:"plies"`
	Mistakes []Mistake    `json:"mistakes"`
}

// MistakeRow is the indexed copy of one mistake of a stored report.
type MistakeRow struct {
	ReportID  int64        `json:"report_id"`
	GameIndex int          `json:"game_index"`
	Ply       int          `json:"ply"`
	PlayedSAN string       `json:"played_san"`
	Kind      Kind         `json:"kind"`
	Severity  Severity     `json:"severity"`
	Theme     SummaryTheme `json:"theme"`
	Tags      string       `json:"tags"`
	CPLoss    *int         `json:"cp_loss"`
	FENBefore string       `json:"fen_before"`
}

type MistakeFilter struct {
	ReportID int64
	Kind     string
	Theme    string
	Limit    int
}
