package analysis

import (
	"github.com/corentings/chess/v2"
	"github.com/vytor/chessinsight/internal/board"
	"github.com/vytor/chessinsight/internal/eval"
	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/pgn"
)

// punishment is the continuation chosen to illustrate a mistake.
type punishment struct {
	source   string
	start    board.Position
	nodes    []int
	punisher chess.Color
}

// selectPunishment prefers the best evaluated sibling of the played move,
// then the deepest variation on the opponent's reply, then the game itself.
func selectPunishment(tree *pgn.Tree, node, parent int, before, after board.Position, player chess.Color, plies int) punishment {
	bestNode, bestValue := -1, 0
	for _, v := range tree.Variations(parent) {
		score := eval.FromComments(tree.Node(v).Comments)
		val, ok := score.ForPlayer(player)
		if !ok {
			continue
		}
		if bestNode < 0 || val > bestValue {
			bestNode, bestValue = v, val
		}
	}
	if bestNode >= 0 {
		return punishment{
			source:   models.PunishmentMissedLine,
			start:    before,
			nodes:    tree.Line(bestNode, plies),
			punisher: player,
		}
	}

	opp := board.Opponent(player)
	deepest, depth := -1, 0
	for _, v := range tree.Variations(node) {
		if d := tree.Depth(v); d > depth {
			deepest, depth = v, d
		}
	}
	if deepest >= 0 {
		return punishment{
			source:   models.PunishmentReplyVariation,
			start:    after,
			nodes:    tree.Line(deepest, plies),
			punisher: opp,
		}
	}
	return punishment{
		source:   models.PunishmentMainLine,
		start:    after,
		nodes:    tree.Line(tree.MainChild(node), plies),
		punisher: opp,
	}
}

func (p punishment) sans(tree *pgn.Tree) []string {
	out := make([]string, len(p.nodes))
	for i, n := range p.nodes {
		out[i] = tree.Node(n).SAN
	}
	return out
}

// mateHint turns the first mate score along the line that favours the
// punisher into a total count of punisher moves, 0 when there is none.
func (p punishment) mateHint(tree *pgn.Tree) int {
	moved := 0
	mover := p.start.Turn()
	for _, n := range p.nodes {
		if mover == p.punisher {
			moved++
		}
		mover = board.Opponent(mover)
		s := eval.FromComments(tree.Node(n).Comments)
		if !s.IsMate() {
			continue
		}
		if (s.Mate > 0) == (p.punisher == chess.White) {
			m := s.Mate
			if m < 0 {
				m = -m
			}
			return moved + m
		}
	}
	return 0
}
