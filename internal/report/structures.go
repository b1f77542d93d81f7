package report

import (
	"cmp"
	"slices"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/vytor/chessinsight/internal/models"
)

// Outcome is a game result from one side's point of view.
type Outcome int

const (
	OutcomeUnknown Outcome = iota
	OutcomeWin
	OutcomeDraw
	OutcomeLoss
)

// OutcomeFor reads a PGN result string for color.
func OutcomeFor(result string, color chess.Color) Outcome {
	switch strings.TrimSpace(result) {
	case "1/2-1/2", "½-½":
		return OutcomeDraw
	case "1-0":
		if color == chess.White {
			return OutcomeWin
		}
		return OutcomeLoss
	case "0-1":
		if color == chess.Black {
			return OutcomeWin
		}
		return OutcomeLoss
	}
	return OutcomeUnknown
}

// StructureSample is the skeleton one game reached.
type StructureSample struct {
	Signature string
	Outcome   Outcome
}

// Structures counts samples per signature. Win rate scores a win 1 and a
// draw one half over decided games.
func Structures(player, color string, moveNumber, total, matched int, samples []StructureSample) *models.StructureReport {
	idx := map[string]int{}
	var stats []models.StructureStat
	for _, s := range samples {
		i, ok := idx[s.Signature]
		if !ok {
			i = len(stats)
			idx[s.Signature] = i
			stats = append(stats, models.StructureStat{Signature: s.Signature})
		}
		st := &stats[i]
		st.Count++
		switch s.Outcome {
		case OutcomeWin:
			st.Wins++
		case OutcomeDraw:
			st.Draws++
		case OutcomeLoss:
			st.Losses++
		}
	}
	for i := range stats {
		st := &stats[i]
		if n := st.Wins + st.Draws + st.Losses; n > 0 {
			st.WinRate = (float64(st.Wins) + 0.5*float64(st.Draws)) / float64(n)
		}
	}
	slices.SortFunc(stats, func(a, b models.StructureStat) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Signature, b.Signature)
	})
	if stats == nil {
		stats = []models.StructureStat{}
	}
	return &models.StructureReport{
		Player:       player,
		Color:        color,
		MoveNumber:   moveNumber,
		TotalGames:   total,
		MatchedGames: matched,
		Structures:   stats,
	}
}
