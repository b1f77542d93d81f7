// Package features computes positional snapshots for one side of a board.
package features

import (
	"strings"

	"github.com/corentings/chess/v2"
	"github.com/vytor/chessinsight/internal/board"
)

// KingSafety describes the shelter around a side's king.
type KingSafety struct {
	Castled     bool `json:"castled"`
	ShieldPawns int  `json:"shield_pawns"`
	OpenFile    bool `json:"open_file"`
	EnemyOnFile bool `json:"enemy_heavy_on_file"`
}

// PawnStructure counts structural pawn weaknesses and strengths.
type PawnStructure struct {
	Islands  int `json:"islands"`
	Doubled  int `json:"doubled"`
	Isolated int `json:"isolated"`
	Passed   int `json:"passed"`
}

// Space measures central presence and advancement into the opponent half.
type Space struct {
	Center   int `json:"center"`
	Advanced int `json:"advanced"`
}

// Development tracks how far a side has left its opening setup.
type Development struct {
	UndevelopedMinors int  `json:"undeveloped_minors"`
	Score             int  `json:"score"`
	QueenMoved        bool `json:"queen_moved"`
}

// Snapshot groups the four feature families for one side.
type Snapshot struct {
	King        KingSafety    `json:"king_safety"`
	Pawns       PawnStructure `json:"pawn_structure"`
	Space       Space         `json:"space"`
	Development Development   `json:"development"`
}

// Take computes every feature family for c.
func Take(g *board.Grid, c chess.Color) Snapshot {
	return Snapshot{
		King:        KingSafetyOf(g, c),
		Pawns:       PawnStructureOf(g, c),
		Space:       SpaceOf(g, c),
		Development: DevelopmentOf(g, c),
	}
}

func homeRank(c chess.Color) int {
	if c == chess.White {
		return 0
	}
	return 7
}

// KingSafetyOf reports castling status, pawn shield and file exposure.
func KingSafetyOf(g *board.Grid, c chess.Color) KingSafety {
	var ks KingSafety
	k := g.KingSquare(c)
	if k < 0 {
		return ks
	}
	kf, kr := board.FileOf(k), board.RankOf(k)
	fwd := board.Forward(c)

	// The shield is the three squares on the rank in front of the king;
	// a castled king keeps the f-h (or a-c) files even when it stepped aside.
	var files []int
	switch {
	case kr == homeRank(c) && kf == 6:
		ks.Castled = true
		files = []int{5, 6, 7}
	case kr == homeRank(c) && kf == 2:
		ks.Castled = true
		files = []int{0, 1, 2}
	default:
		files = []int{kf - 1, kf, kf + 1}
	}
	for _, f := range files {
		if s := board.Sq(f, kr+fwd); s >= 0 && g[s].Role == board.Pawn && g[s].Color == c {
			ks.ShieldPawns++
		}
	}

	ks.OpenFile = true
	for r := 0; r < 8; r++ {
		if g[board.Sq(kf, r)].Role == board.Pawn {
			ks.OpenFile = false
			break
		}
	}

	enemy := board.Opponent(c)
	for _, d := range [][2]int{{0, 1}, {0, -1}} {
		ray := g.Ray(k, d)
		if len(ray) == 0 {
			continue
		}
		p := g[ray[len(ray)-1]]
		if p.Color == enemy && (p.Role == board.Rook || p.Role == board.Queen) {
			ks.EnemyOnFile = true
		}
	}
	return ks
}

// PawnStructureOf counts islands, doubled, isolated and passed pawns for c.
func PawnStructureOf(g *board.Grid, c chess.Color) PawnStructure {
	var own, enemy [8][]int
	for sq, p := range g {
		if p.Role != board.Pawn {
			continue
		}
		if p.Color == c {
			own[board.FileOf(sq)] = append(own[board.FileOf(sq)], board.RankOf(sq))
		} else {
			enemy[board.FileOf(sq)] = append(enemy[board.FileOf(sq)], board.RankOf(sq))
		}
	}

	var ps PawnStructure
	inRun := false
	for f := 0; f < 8; f++ {
		n := len(own[f])
		if n > 0 && !inRun {
			ps.Islands++
		}
		inRun = n > 0
		if n > 1 {
			ps.Doubled += n - 1
		}
		if n == 0 {
			continue
		}
		if (f == 0 || len(own[f-1]) == 0) && (f == 7 || len(own[f+1]) == 0) {
			ps.Isolated += n
		}
		for _, r := range own[f] {
			if passed(r, f, c, &enemy) {
				ps.Passed++
			}
		}
	}
	return ps
}

func passed(rank, file int, c chess.Color, enemy *[8][]int) bool {
	fwd := board.Forward(c)
	for f := file - 1; f <= file+1; f++ {
		if f < 0 || f > 7 {
			continue
		}
		for _, er := range enemy[f] {
			if (er-rank)*fwd > 0 {
				return false
			}
		}
	}
	return true
}

var extendedCenter = []string{"d4", "e4", "d5", "e5", "c4", "f4", "c5", "f5"}

// SpaceOf counts c's occupation of the extended centre and its advanced
// units, pawns weighted double.
func SpaceOf(g *board.Grid, c chess.Color) Space {
	var sp Space
	for _, name := range extendedCenter {
		if p := g[board.ParseSquare(name)]; !p.Empty() && p.Color == c {
			sp.Center++
		}
	}
	for sq, p := range g {
		if p.Empty() || p.Color != c || p.Role == board.King {
			continue
		}
		r := board.RankOf(sq)
		if (c == chess.White && r >= 4) || (c == chess.Black && r <= 3) {
			if p.Role == board.Pawn {
				sp.Advanced += 2
			} else {
				sp.Advanced++
			}
		}
	}
	return sp
}

var minorHomes = map[chess.Color][]struct {
	sq   string
	role board.Role
}{
	chess.White: {{"b1", board.Knight}, {"g1", board.Knight}, {"c1", board.Bishop}, {"f1", board.Bishop}},
	chess.Black: {{"b8", board.Knight}, {"g8", board.Knight}, {"c8", board.Bishop}, {"f8", board.Bishop}},
}

// DevelopmentOf scores c's development.
func DevelopmentOf(g *board.Grid, c chess.Color) Development {
	var d Development
	for _, h := range minorHomes[c] {
		if p := g[board.ParseSquare(h.sq)]; p.Role == h.role && p.Color == c {
			d.UndevelopedMinors++
		}
	}
	developed := 4 - d.UndevelopedMinors
	if developed < 0 {
		developed = 0
	}

	central := 0
	pawnRank := homeRank(c) + board.Forward(c)
	for _, f := range []int{3, 4} {
		for r := 0; r < 8; r++ {
			p := g[board.Sq(f, r)]
			if p.Role == board.Pawn && p.Color == c && r != pawnRank {
				central++
			}
		}
	}

	castled := 0
	if KingSafetyOf(g, c).Castled {
		castled = 1
	}
	d.Score = 2*developed + 2*castled + central

	queenHome := board.Sq(3, homeRank(c))
	if p := g[queenHome]; p.Role != board.Queen || p.Color != c {
		d.QueenMoved = true
	}
	return d
}

// PawnSignature renders only the pawns of g as a FEN placement string.
func PawnSignature(g *board.Grid) string {
	var b strings.Builder
	for r := 7; r >= 0; r-- {
		empty := 0
		for f := 0; f < 8; f++ {
			p := g[board.Sq(f, r)]
			if p.Role != board.Pawn {
				empty++
				continue
			}
			if empty > 0 {
				b.WriteByte(byte('0' + empty))
				empty = 0
			}
			if p.Color == chess.White {
				b.WriteByte('P')
			} else {
				b.WriteByte('p')
			}
		}
		if empty > 0 {
			b.WriteByte(byte('0' + empty))
		}
		if r > 0 {
			b.WriteByte('/')
		}
	}
	return b.String()
}
