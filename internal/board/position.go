// Package board wraps corentings/chess positions behind an immutable value
// type and adds the board geometry the analysis needs.
package board

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/corentings/chess/v2"
)

// SetupError reports headers that do not describe a usable starting array.
type SetupError struct {
	FEN string
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("board: invalid setup %q: %v", e.FEN, e.Err)
}

func (e *SetupError) Unwrap() error { return e.Err }

// Position is an immutable chess position. Play returns a new value, so a
// Position can be copied freely to explore hypothetical lines.
type Position struct {
	pos *chess.Position
}

// Start is the standard initial position.
func Start() Position {
	return Position{pos: chess.StartingPosition()}
}

// FromFEN decodes a FEN string. Boards without exactly one king per side are
// rejected.
func FromFEN(fen string) (Position, error) {
	opt, err := chess.FEN(strings.TrimSpace(fen))
	if err != nil {
		return Position{}, &SetupError{FEN: fen, Err: err}
	}
	p := Position{pos: chess.NewGame(opt).Position()}
	g := p.Grid()
	if g.Count(King, chess.White) != 1 || g.Count(King, chess.Black) != 1 {
		return Position{}, &SetupError{FEN: fen, Err: fmt.Errorf("need one king per side")}
	}
	return p, nil
}

// FromHeaders returns the position a game starts from: the FEN tag when
// present, otherwise the standard array.
func FromHeaders(headers map[string]string) (Position, error) {
	fen := strings.TrimSpace(headers["FEN"])
	if fen == "" || fen == "?" {
		return Start(), nil
	}
	return FromFEN(fen)
}

// Valid reports whether the value holds a position.
func (p Position) Valid() bool { return p.pos != nil }

// Turn is the side to move.
func (p Position) Turn() chess.Color { return p.pos.Turn() }

// FEN serialises the position.
func (p Position) FEN() string { return p.pos.String() }

// FullMove is the FEN full-move counter.
func (p Position) FullMove() int {
	fields := strings.Fields(p.FEN())
	if len(fields) < 6 {
		return 1
	}
	n, err := strconv.Atoi(fields[5])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// Grid snapshots piece placement.
func (p Position) Grid() Grid {
	var g Grid
	b := p.pos.Board()
	for sq := 0; sq < 64; sq++ {
		pc := b.Piece(chess.Square(sq))
		if pc == chess.NoPiece {
			continue
		}
		g[sq] = Piece{Role: roleOf(pc.Type()), Color: pc.Color()}
	}
	return g
}

// IsCheckmate reports whether the side to move is mated.
func (p Position) IsCheckmate() bool { return p.pos.Status() == chess.Checkmate }

// Chess exposes the underlying library position.
func (p Position) Chess() *chess.Position { return p.pos }

// Applied describes a move that was played from a position.
type Applied struct {
	SAN       string
	Move      *chess.Move
	Mover     chess.Color
	Role      Role
	From, To  int
	Capture   bool
	Captured  Role
	EnPassant bool
	Castle    bool
	Promotion Role
	Check     bool
	Mate      bool
}

// Play decodes san against the position and applies it.
func (p Position) Play(san string) (Position, Applied, error) {
	m, err := p.Decode(san)
	if err != nil {
		return p, Applied{}, err
	}
	return p.Apply(m)
}

// Apply plays an already decoded move.
func (p Position) Apply(m *chess.Move) (Position, Applied, error) {
	before := p.Grid()
	from, to := int(m.S1()), int(m.S2())
	mover := before[from]
	if mover.Empty() {
		return p, Applied{}, fmt.Errorf("board: no piece on %s", SquareName(from))
	}
	a := Applied{
		SAN:       chess.AlgebraicNotation{}.Encode(p.pos, m),
		Move:      m,
		Mover:     mover.Color,
		Role:      mover.Role,
		From:      from,
		To:        to,
		Promotion: roleOf(m.Promo()),
	}
	if target := before[to]; !target.Empty() && target.Color != mover.Color {
		a.Capture, a.Captured = true, target.Role
	} else if mover.Role == Pawn && FileOf(from) != FileOf(to) {
		a.Capture, a.Captured, a.EnPassant = true, Pawn, true
	}
	if mover.Role == King && abs(FileOf(to)-FileOf(from)) == 2 {
		a.Castle = true
	}

	next := Position{pos: p.pos.Update(m)}
	after := next.Grid()
	a.Check = after.InCheck(next.Turn())
	a.Mate = a.Check && next.IsCheckmate()
	return next, a, nil
}
