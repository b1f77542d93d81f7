package board

import "github.com/corentings/chess/v2"

// Role is a piece kind independent of colour.
type Role int8

const (
	NoRole Role = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

var roleValues = [...]int{NoRole: 0, Pawn: 1, Knight: 3, Bishop: 3, Rook: 5, Queen: 9, King: 0}

// Value is the conventional material value in pawns.
func (r Role) Value() int { return roleValues[r] }

// IsSlider reports whether the role moves along lines.
func (r Role) IsSlider() bool { return r == Bishop || r == Rook || r == Queen }

func (r Role) String() string {
	switch r {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return ""
}

func roleOf(pt chess.PieceType) Role {
	switch pt {
	case chess.Pawn:
		return Pawn
	case chess.Knight:
		return Knight
	case chess.Bishop:
		return Bishop
	case chess.Rook:
		return Rook
	case chess.Queen:
		return Queen
	case chess.King:
		return King
	}
	return NoRole
}

// Piece is one occupied square. The zero value is an empty square.
type Piece struct {
	Role  Role
	Color chess.Color
}

func (p Piece) Empty() bool { return p.Role == NoRole }

// Grid is a board snapshot indexed a1=0, b1=1 ... h8=63.
type Grid [64]Piece

// Sq builds a square index from zero-based file and rank; -1 when off board.
func Sq(file, rank int) int {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return -1
	}
	return rank*8 + file
}

// FileOf and RankOf split a square index.
func FileOf(sq int) int { return sq % 8 }

func RankOf(sq int) int { return sq / 8 }

// SquareName renders a square index as "e4".
func SquareName(sq int) string {
	if sq < 0 || sq > 63 {
		return "-"
	}
	return string([]byte{byte('a' + FileOf(sq)), byte('1' + RankOf(sq))})
}

// ParseSquare reads "e4" into a square index, -1 when invalid.
func ParseSquare(s string) int {
	if len(s) != 2 {
		return -1
	}
	return Sq(int(s[0]-'a'), int(s[1]-'1'))
}

// Opponent returns the other colour.
func Opponent(c chess.Color) chess.Color {
	if c == chess.White {
		return chess.Black
	}
	return chess.White
}

// Forward is +1 for White and -1 for Black.
func Forward(c chess.Color) int {
	if c == chess.White {
		return 1
	}
	return -1
}

// KingSquare locates c's king, -1 if missing.
func (g *Grid) KingSquare(c chess.Color) int {
	for sq, p := range g {
		if p.Role == King && p.Color == c {
			return sq
		}
	}
	return -1
}

// Count returns how many pieces of role and colour are on the board.
func (g *Grid) Count(role Role, c chess.Color) int {
	n := 0
	for _, p := range g {
		if p.Role == role && p.Color == c {
			n++
		}
	}
	return n
}

// Material sums piece values for c.
func (g *Grid) Material(c chess.Color) int {
	total := 0
	for _, p := range g {
		if p.Color == c {
			total += p.Role.Value()
		}
	}
	return total
}

// NonPawnMaterial sums knight, bishop, rook and queen values for c.
func (g *Grid) NonPawnMaterial(c chess.Color) int {
	total := 0
	for _, p := range g {
		if p.Color == c && p.Role != Pawn {
			total += p.Role.Value()
		}
	}
	return total
}

// Diff is c's material minus the opponent's.
func (g *Grid) Diff(c chess.Color) int {
	return g.Material(c) - g.Material(Opponent(c))
}

var (
	knightSteps = [8][2]int{{1, 2}, {2, 1}, {2, -1}, {1, -2}, {-1, -2}, {-2, -1}, {-2, 1}, {-1, 2}}
	kingSteps   = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}
	// Orthogonal directions first, diagonal second.
	lineDirs = [8][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}, {1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
)

// Directions returns the line directions a slider role moves along.
func Directions(r Role) [][2]int {
	switch r {
	case Rook:
		return lineDirs[:4]
	case Bishop:
		return lineDirs[4:]
	case Queen:
		return lineDirs[:]
	}
	return nil
}

// Ray walks from sq (exclusive) in direction d and returns the squares passed
// up to and including the first occupied one.
func (g *Grid) Ray(sq int, d [2]int) []int {
	var out []int
	f, r := FileOf(sq), RankOf(sq)
	for {
		f, r = f+d[0], r+d[1]
		s := Sq(f, r)
		if s < 0 {
			return out
		}
		out = append(out, s)
		if !g[s].Empty() {
			return out
		}
	}
}

// Attacks lists the squares the piece on sq attacks.
func (g *Grid) Attacks(sq int) []int {
	p := g[sq]
	f, r := FileOf(sq), RankOf(sq)
	var out []int
	switch p.Role {
	case Pawn:
		fwd := Forward(p.Color)
		for _, df := range []int{-1, 1} {
			if s := Sq(f+df, r+fwd); s >= 0 {
				out = append(out, s)
			}
		}
	case Knight:
		for _, st := range knightSteps {
			if s := Sq(f+st[0], r+st[1]); s >= 0 {
				out = append(out, s)
			}
		}
	case King:
		for _, st := range kingSteps {
			if s := Sq(f+st[0], r+st[1]); s >= 0 {
				out = append(out, s)
			}
		}
	case Bishop, Rook, Queen:
		for _, d := range Directions(p.Role) {
			out = append(out, g.Ray(sq, d)...)
		}
	}
	return out
}

// Attackers lists squares of c's pieces attacking target.
func (g *Grid) Attackers(target int, c chess.Color) []int {
	var out []int
	for sq, p := range g {
		if p.Color != c || p.Empty() {
			continue
		}
		for _, a := range g.Attacks(sq) {
			if a == target {
				out = append(out, sq)
				break
			}
		}
	}
	return out
}

// Attacked reports whether any of c's pieces attack target.
func (g *Grid) Attacked(target int, by chess.Color) bool {
	return len(g.Attackers(target, by)) > 0
}

// InCheck reports whether c's king is attacked.
func (g *Grid) InCheck(c chess.Color) bool {
	k := g.KingSquare(c)
	return k >= 0 && g.Attacked(k, Opponent(c))
}

// Between lists the squares strictly between a and b when they share a line.
func Between(a, b int) []int {
	df := FileOf(b) - FileOf(a)
	dr := RankOf(b) - RankOf(a)
	if df != 0 && dr != 0 && abs(df) != abs(dr) {
		return nil
	}
	sf, sr := sign(df), sign(dr)
	var out []int
	f, r := FileOf(a)+sf, RankOf(a)+sr
	for Sq(f, r) != b {
		s := Sq(f, r)
		if s < 0 {
			return nil
		}
		out = append(out, s)
		f, r = f+sf, r+sr
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
