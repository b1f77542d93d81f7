package analysis

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/vytor/chessinsight/internal/board"
	"github.com/vytor/chessinsight/internal/eval"
	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/pgn"
)

type candidate struct {
	node  int
	alt   models.Alternative
	value int
	known bool
}

// alternatives scores the variations hanging off parent, the node the
// played move was chosen from. played is the player-relative evaluation after
// the played move, if known.
func alternatives(tree *pgn.Tree, parent int, before board.Position, player chess.Color, played *int, o Options) []candidate {
	vars := tree.Variations(parent)
	if len(vars) > o.MaxSiblingsPerPly {
		vars = vars[:o.MaxSiblingsPerPly]
	}
	var out []candidate
	for _, n := range vars {
		node := tree.Node(n)
		_, a, err := before.Play(node.SAN)
		if err != nil {
			continue
		}
		c := candidate{node: n, alt: models.Alternative{
			SAN:     a.SAN,
			Line:    formatLine(before, tree.LineSAN(n, o.MaxVariationPlies)),
			Capture: a.Capture,
			Check:   a.Check,
		}}
		if v, ok := eval.FromComments(node.Comments).ForPlayer(player); ok {
			c.value, c.known = v, true
			c.alt.CP = intPtr(v)
			if played != nil {
				c.alt.GainCPVsPlayed = intPtr(v - *played)
			}
		}
		out = append(out, c)
	}
	slices.SortStableFunc(out, func(a, b candidate) int {
		switch {
		case a.known && !b.known:
			return -1
		case !a.known && b.known:
			return 1
		case a.known:
			return cmp.Compare(b.value, a.value)
		}
		return 0
	})
	return out
}

// best is the top ranked candidate; with no evaluations anywhere that is the
// first sibling in document order, which ranking already preserves.
func best(cands []candidate) *candidate {
	if len(cands) == 0 {
		return nil
	}
	return &cands[0]
}

// gainOf is the positive gain of c over the played move, 0 when undefined.
func gainOf(c *candidate) int {
	if c == nil || c.alt.GainCPVsPlayed == nil || *c.alt.GainCPVsPlayed < 0 {
		return 0
	}
	return *c.alt.GainCPVsPlayed
}

func topAlternatives(cands []candidate, n int) []models.Alternative {
	if len(cands) > n {
		cands = cands[:n]
	}
	out := make([]models.Alternative, len(cands))
	for i, c := range cands {
		out[i] = c.alt
	}
	return out
}

// formatLine renders sans as numbered move text from start, stopping at the
// first move that does not decode.
func formatLine(start board.Position, sans []string) string {
	var b strings.Builder
	pos := start
	for i, san := range sans {
		next, a, err := pos.Play(san)
		if err != nil {
			break
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		switch {
		case a.Mover == chess.White:
			fmt.Fprintf(&b, "%d. ", pos.FullMove())
		case i == 0:
			fmt.Fprintf(&b, "%d... ", pos.FullMove())
		}
		b.WriteString(a.SAN)
		pos = next
	}
	return b.String()
}

func intPtr(v int) *int { return &v }
