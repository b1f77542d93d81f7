package themes

import (
	"github.com/corentings/chess/v2"
	"github.com/vytor/chessinsight/internal/board"
)

// Context is the read-only input handed to every detector. Material
// differentials are punisher minus player, in pawns.
type Context struct {
	StartFEN     string
	FinalFEN     string
	Moves        []string
	Events       []board.MoveEvent
	Regression   []board.MoveEvent
	Player       chess.Color
	Punisher     chess.Color
	MoveNumber   int
	Played       int
	MateIn       int
	StartDiff    int
	FinalDiff    int
	Mate         bool
	Endgame      bool
	OpeningPhase bool
	StartGrid    board.Grid
	FinalGrid    board.Grid
}

// EndgameMaterial is the combined non-pawn material at or below which a
// position counts as an endgame.
const EndgameMaterial = 26

// IsEndgame reports whether g has thinned out to an endgame.
func IsEndgame(g *board.Grid) bool {
	return g.NonPawnMaterial(chess.White)+g.NonPawnMaterial(chess.Black) <= EndgameMaterial
}

// NewContext replays moves from start and fills a Context. mateIn is a hint
// taken from annotations, 0 when none.
func NewContext(start board.Position, moves []string, player, punisher chess.Color, moveNumber, maxPlies, mateIn int, openingPhase bool) *Context {
	line := board.Replay(start, moves, punisher, maxPlies)
	startGrid := start.Grid()
	ctx := &Context{
		StartFEN:     start.FEN(),
		FinalFEN:     line.Final.FEN(),
		Moves:        moves[:line.Played],
		Events:       line.Events,
		Regression:   make([]board.MoveEvent, len(line.Events)),
		Player:       player,
		Punisher:     punisher,
		MoveNumber:   moveNumber,
		Played:       line.Played,
		MateIn:       mateIn,
		StartDiff:    startGrid.Diff(punisher),
		OpeningPhase: openingPhase,
		StartGrid:    startGrid,
		FinalGrid:    line.Final.Grid(),
	}
	for i, e := range line.Events {
		ctx.Regression[len(line.Events)-1-i] = e
	}
	ctx.FinalDiff = ctx.FinalGrid.Diff(punisher)
	ctx.Mate = line.Final.IsCheckmate()
	ctx.Endgame = IsEndgame(&startGrid)
	return ctx
}

// Swing is the punisher's net material change over the line.
func (c *Context) Swing() int { return c.FinalDiff - c.StartDiff }

// PunisherMates reports whether the line ends with the punisher delivering
// mate.
func (c *Context) PunisherMates() bool {
	if !c.Mate || len(c.Events) == 0 {
		return false
	}
	return c.Events[len(c.Events)-1].Mover == c.Punisher
}

func (c *Context) punisherMoves() []board.MoveEvent {
	var out []board.MoveEvent
	for _, e := range c.Events {
		if e.Mover == c.Punisher {
			out = append(out, e)
		}
	}
	return out
}

func (c *Context) punisherCaptures() int {
	n := 0
	for _, e := range c.Events {
		if e.Mover == c.Punisher && e.Capture {
			n++
		}
	}
	return n
}

func (c *Context) punisherChecks() int {
	n := 0
	for _, e := range c.Events {
		if e.Mover == c.Punisher && e.Check {
			n++
		}
	}
	return n
}

// BareCapture reports a line whose only capture is the punisher's opening
// move.
func (c *Context) BareCapture() bool {
	if len(c.Events) == 0 {
		return false
	}
	first := c.Events[0]
	if first.Mover != c.Punisher || !first.Capture {
		return false
	}
	for _, e := range c.Events[1:] {
		if e.Capture {
			return false
		}
	}
	return true
}
