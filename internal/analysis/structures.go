package analysis

import (
	"github.com/corentings/chess/v2"
	"github.com/vytor/chessinsight/internal/board"
	"github.com/vytor/chessinsight/internal/features"
	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/pgn"
	"github.com/vytor/chessinsight/internal/report"
)

// PawnStructures collects the pawn skeleton reached right after color's
// moveNumber-th move in every game where player had that colour.
func PawnStructures(pgnText, player string, moveNumber int, color chess.Color, opts Options) *models.StructureReport {
	o := opts.normalized()
	log := o.Logger.WithPrefix("structures")

	games, err := pgn.ParseLenient(pgnText)
	if err != nil {
		log.Debug("nothing to analyse: %v", err)
	}
	var samples []report.StructureSample
	matched := 0
	for i := range games {
		g := &games[i]
		start, err := board.FromHeaders(g.Headers)
		if err != nil {
			log.Debug("skipping game %d: %v", g.Index, err)
			continue
		}
		side, ok := matchPlayer(g.Header("White"), g.Header("Black"), player, color)
		if !ok || side != color {
			continue
		}
		matched++
		sig, ok := signatureAt(g.Tree, start, moveNumber, color)
		if !ok {
			continue
		}
		result := g.Header("Result")
		if result == "" {
			result = g.Result
		}
		samples = append(samples, report.StructureSample{Signature: sig, Outcome: report.OutcomeFor(result, color)})
	}
	return report.Structures(player, ColorName(color), moveNumber, len(games), matched, samples)
}

// signatureAt follows the main line until color has played its move with the
// given full-move number.
func signatureAt(tree *pgn.Tree, start board.Position, moveNumber int, color chess.Color) (string, bool) {
	pos := start
	for node := tree.MainChild(tree.Root()); node >= 0; node = tree.MainChild(node) {
		mover, n := pos.Turn(), pos.FullMove()
		if n > moveNumber {
			return "", false
		}
		next, _, err := pos.Play(tree.Node(node).SAN)
		if err != nil {
			continue
		}
		if mover == color && n == moveNumber {
			g := next.Grid()
			return features.PawnSignature(&g), true
		}
		pos = next
	}
	return "", false
}
