package themes

import (
	"github.com/corentings/chess/v2"
	"github.com/vytor/chessinsight/internal/board"
)

func weight(r board.Role) int {
	if r == board.King {
		return 100
	}
	return r.Value()
}

func royal(p board.Piece, c chess.Color) bool {
	return p.Color == c && (p.Role == board.King || p.Role == board.Queen)
}

// lines reports the line patterns the attacker's sliders form against the
// victim: pin (piece shielding a more valuable royal), skewer (royal in front
// of a lesser piece) and x-ray (attacker's own piece in front of a royal).
func lines(g *board.Grid, attacker chess.Color) (pin, skewer, xray bool) {
	victim := board.Opponent(attacker)
	for sq, p := range g {
		if p.Color != attacker || !p.Role.IsSlider() {
			continue
		}
		for _, d := range board.Directions(p.Role) {
			ray := g.Ray(sq, d)
			if len(ray) == 0 {
				continue
			}
			front := ray[len(ray)-1]
			fp := g[front]
			if fp.Empty() {
				continue
			}
			behind := g.Ray(front, d)
			if len(behind) == 0 {
				continue
			}
			bp := g[behind[len(behind)-1]]
			if bp.Empty() {
				continue
			}
			switch {
			case fp.Color == attacker:
				if royal(bp, victim) {
					xray = true
				}
			case bp.Color != victim:
			case fp.Role != board.King && royal(bp, victim) && weight(bp.Role) > weight(fp.Role):
				pin = true
			case royal(fp, victim) && bp.Role != board.King && weight(fp.Role) > weight(bp.Role):
				skewer = true
			}
		}
	}
	return pin, skewer, xray
}

// seesRoyal reports whether a slider of attacker, other than the one on
// skip, has a clear line to the victim's king or queen.
func seesRoyal(g *board.Grid, attacker chess.Color, skip int) bool {
	victim := board.Opponent(attacker)
	for sq, p := range g {
		if sq == skip || p.Color != attacker || !p.Role.IsSlider() {
			continue
		}
		for _, d := range board.Directions(p.Role) {
			ray := g.Ray(sq, d)
			if len(ray) > 0 && royal(g[ray[len(ray)-1]], victim) {
				return true
			}
		}
	}
	return false
}

// cuts reports whether to lies between one of owner's sliders and owner's
// own king or queen on g.
func cuts(g *board.Grid, owner chess.Color, to int) bool {
	for sq, p := range g {
		if p.Color != owner || !p.Role.IsSlider() {
			continue
		}
		for _, d := range board.Directions(p.Role) {
			ray := g.Ray(sq, d)
			if len(ray) == 0 {
				continue
			}
			end := ray[len(ray)-1]
			if !royal(g[end], owner) {
				continue
			}
			for _, s := range board.Between(sq, end) {
				if s == to {
					return true
				}
			}
		}
	}
	return false
}

func neighbours(sq int) []int {
	var out []int
	f, r := board.FileOf(sq), board.RankOf(sq)
	for df := -1; df <= 1; df++ {
		for dr := -1; dr <= 1; dr++ {
			if df == 0 && dr == 0 {
				continue
			}
			if s := board.Sq(f+df, r+dr); s >= 0 {
				out = append(out, s)
			}
		}
	}
	return out
}

func attacks(g *board.Grid, from, target int) bool {
	for _, s := range g.Attacks(from) {
		if s == target {
			return true
		}
	}
	return false
}
