package themes

import (
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/vytor/chessinsight/internal/board"
)

func tags(ok bool, t ...Tag) []Tag {
	if !ok {
		return nil
	}
	return t
}

func detectHanging(c *Context) []Tag {
	if c.BareCapture() {
		return []Tag{HangingPiece}
	}
	return tags(c.punisherCaptures() == 1 && c.Swing() >= 1, HangingPiece)
}

func detectFork(c *Context) []Tag {
	if c.punisherCaptures() < 2 || c.Swing() < 3 {
		return nil
	}
	for i, e := range c.Events {
		if e.Mover != c.Punisher || e.Capture {
			continue
		}
		switch e.Role {
		case board.Knight, board.Bishop, board.Rook, board.Queen:
		default:
			continue
		}
		if i+2 < len(c.Events) && c.Events[i+2].Capture {
			return []Tag{Fork}
		}
	}
	return nil
}

// detectLines tags pins, skewers and x-rays created by a punisher move.
func detectLines(c *Context) []Tag {
	var out []Tag
	seen := map[Tag]bool{}
	for _, e := range c.punisherMoves() {
		p0, s0, x0 := lines(&e.GridBefore, c.Punisher)
		p1, s1, x1 := lines(&e.GridAfter, c.Punisher)
		for _, tr := range []struct {
			before, after bool
			tag           Tag
		}{{p0, p1, Pin}, {s0, s1, Skewer}, {x0, x1, XRayAttack}} {
			if !tr.before && tr.after && !seen[tr.tag] {
				seen[tr.tag] = true
				out = append(out, tr.tag)
			}
		}
	}
	return out
}

func detectDiscovered(c *Context) []Tag {
	for _, e := range c.punisherMoves() {
		if e.Capture {
			continue
		}
		if !seesRoyal(&e.GridBefore, c.Punisher, e.From) && seesRoyal(&e.GridAfter, c.Punisher, e.To) {
			return []Tag{DiscoveredAttack}
		}
	}
	return nil
}

func detectInterference(c *Context) []Tag {
	for _, e := range c.punisherMoves() {
		if !e.Capture && cuts(&e.GridBefore, c.Player, e.To) {
			return []Tag{Interference}
		}
	}
	return nil
}

// detectDeflection looks for a material dip of two pawns that is later won
// back.
func detectDeflection(c *Context) []Tag {
	low, lowAt := c.StartDiff, -1
	for i, e := range c.Events {
		if e.DiffAfter < low {
			low, lowAt = e.DiffAfter, i
		}
	}
	if lowAt < 0 || c.StartDiff-low < 2 {
		return nil
	}
	if c.PunisherMates() {
		return []Tag{Deflection}
	}
	for _, e := range c.Regression {
		if e.Ply <= lowAt+1 {
			break
		}
		if e.DiffAfter-low >= 2 {
			return []Tag{Deflection}
		}
	}
	return nil
}

func detectDoubleThreat(c *Context) []Tag {
	quiet := false
	for _, e := range c.punisherMoves() {
		if !e.Capture && !e.Check {
			quiet = true
			break
		}
	}
	if !quiet {
		return nil
	}
	caps, checks := c.punisherCaptures(), c.punisherChecks()
	return tags(caps >= 2 || (caps >= 1 && checks >= 1) || c.PunisherMates(), DoubleThreat)
}

func detectIntermezzo(c *Context) []Tag {
	for i, e := range c.Events {
		if e.Mover != c.Punisher || !e.Check || i+2 >= len(c.Events) {
			continue
		}
		if next := c.Events[i+2]; next.Mover == c.Punisher && next.Capture {
			return []Tag{Intermezzo}
		}
	}
	return nil
}

func detectExposedKing(c *Context) []Tag {
	checks := c.punisherChecks()
	return tags(checks >= 2 || (checks >= 1 && c.PunisherMates()), ExposedKing)
}

func detectDoubleCheck(c *Context) []Tag {
	for _, e := range c.punisherMoves() {
		if e.DoubleCheck {
			return []Tag{DoubleCheck}
		}
	}
	return nil
}

func detectMate(c *Context) []Tag {
	if !c.PunisherMates() {
		return nil
	}
	out := []Tag{Mate}
	n := c.MateIn
	if n <= 0 {
		n = len(c.punisherMoves())
	}
	if t, ok := mateIn(n); ok {
		out = append(out, t)
	}

	last := c.Events[len(c.Events)-1]
	g := &last.GridAfter
	k := g.KingSquare(c.Player)
	if k < 0 {
		return out
	}
	mater := g[last.To]
	switch {
	case backRank(g, k, last, c):
		out = append(out, BackRankMate)
	case mater.Role == board.Knight && smothered(g, k, c):
		out = append(out, SmotheredMate)
	case mater.Role == board.Rook && arabian(g, k, last.To, c):
		out = append(out, ArabianMate)
	case anastasia(g, k, last.To, c):
		out = append(out, AnastasiaMate)
	}
	return out
}

func backRank(g *board.Grid, k int, last board.MoveEvent, c *Context) bool {
	home := 0
	if c.Player == chess.Black {
		home = 7
	}
	if board.RankOf(k) != home {
		return false
	}
	mater := g[last.To]
	if (mater.Role != board.Rook && mater.Role != board.Queen) || board.RankOf(last.To) != home {
		return false
	}
	up := board.RankOf(k) + board.Forward(c.Player)
	for f := board.FileOf(k) - 1; f <= board.FileOf(k)+1; f++ {
		s := board.Sq(f, up)
		if s < 0 {
			continue
		}
		if p := g[s]; p.Empty() || p.Color != c.Player {
			return false
		}
	}
	return true
}

func smothered(g *board.Grid, k int, c *Context) bool {
	for _, s := range neighbours(k) {
		if p := g[s]; p.Empty() || p.Color != c.Player {
			return false
		}
	}
	return true
}

func arabian(g *board.Grid, k, rook int, c *Context) bool {
	f, r := board.FileOf(k), board.RankOf(k)
	if (f != 0 && f != 7) || (r != 0 && r != 7) {
		return false
	}
	adjacent := false
	for _, s := range neighbours(k) {
		if s == rook {
			adjacent = true
		}
	}
	if !adjacent {
		return false
	}
	for sq, p := range g {
		if p.Role == board.Knight && p.Color == c.Punisher && attacks(g, sq, rook) {
			return true
		}
	}
	return false
}

func anastasia(g *board.Grid, k, mater int, c *Context) bool {
	kf := board.FileOf(k)
	if kf != 0 && kf != 7 {
		return false
	}
	p := g[mater]
	if (p.Role != board.Rook && p.Role != board.Queen) || board.FileOf(mater) != kf {
		return false
	}
	inner := 1
	if kf == 7 {
		inner = 6
	}
	for sq, q := range g {
		if q.Role != board.Knight || q.Color != c.Punisher {
			continue
		}
		for _, s := range neighbours(k) {
			if board.FileOf(s) == inner && attacks(g, sq, s) {
				return true
			}
		}
	}
	return false
}

func detectPhase(c *Context) []Tag {
	switch {
	case c.Endgame:
		return []Tag{Endgame}
	case c.OpeningPhase:
		return []Tag{Opening}
	}
	return []Tag{Middlegame}
}

func detectEndgameType(c *Context) []Tag {
	if !c.Endgame {
		return nil
	}
	var roles [board.King + 1]int
	for _, p := range c.StartGrid {
		roles[p.Role]++
	}
	n, b, r, q := roles[board.Knight], roles[board.Bishop], roles[board.Rook], roles[board.Queen]
	switch {
	case n+b+r+q == 0:
		return []Tag{PawnEndgame}
	case r > 0 && n+b+q == 0:
		return []Tag{RookEndgame}
	case b > 0 && n+r+q == 0:
		return []Tag{BishopEndgame}
	case n > 0 && b+r+q == 0:
		return []Tag{KnightEndgame}
	case q > 0 && n+b+r == 0:
		return []Tag{QueenEndgame}
	case q > 0 && r > 0 && n+b == 0:
		return []Tag{QueenRookEndgame}
	}
	return nil
}

func detectStrategy(c *Context) []Tag {
	if c.BareCapture() {
		return nil
	}
	swing := c.Swing()
	switch {
	case swing >= 5 || c.PunisherMates():
		return []Tag{Crushing}
	case swing >= 2:
		return []Tag{Advantage}
	}
	return nil
}

func detectSpecial(c *Context) []Tag {
	var out []Tag
	seen := map[Tag]bool{}
	add := func(t Tag) {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	for i, san := range c.Moves {
		var e board.MoveEvent
		if i < len(c.Events) {
			e = c.Events[i]
		}
		if strings.HasPrefix(san, "O-O") || strings.HasPrefix(san, "0-0") || e.Castle {
			add(Castling)
		}
		// "e8Q" carries no '=', so the replayed promotion role counts too.
		promoted, under := e.Promotion != board.NoRole, e.Promotion != board.NoRole && e.Promotion != board.Queen
		if j := strings.IndexByte(san, '='); j >= 0 && j+1 < len(san) {
			promoted, under = true, under || san[j+1] != 'Q'
		}
		if promoted {
			add(Promotion)
		}
		if under {
			add(UnderPromotion)
		}
		if strings.Contains(san, "e.p.") || e.EnPassant {
			add(EnPassant)
		}
	}
	return out
}

// Not implemented; these patterns need search rather than a replayed line.
func detectZugzwang(*Context) []Tag        { return nil }
func detectKingsideAttack(*Context) []Tag  { return nil }
func detectQueensideAttack(*Context) []Tag { return nil }
func detectQuietMove(*Context) []Tag       { return nil }
func detectSacrifice(*Context) []Tag       { return nil }
func detectDoubleBishop(*Context) []Tag    { return nil }
