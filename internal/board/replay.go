package board

import (
	"strings"

	"github.com/corentings/chess/v2"
)

// MoveEvent is one replayed ply of a continuation. Material differentials are
// punisher minus player, in pawns.
type MoveEvent struct {
	Ply         int
	SAN         string
	RawSAN      string
	Mover       chess.Color
	Role        Role
	From, To    int
	Capture     bool
	Captured    Role
	EnPassant   bool
	Castle      bool
	Promotion   Role
	Check       bool
	Mate        bool
	DoubleCheck bool
	FENBefore   string
	FENAfter    string
	DiffBefore  int
	DiffAfter   int
	GridBefore  Grid
	GridAfter   Grid
}

// Line is the result of replaying a SAN sequence.
type Line struct {
	Events []MoveEvent
	Played int
	Final  Position
}

// Replay plays sans from start until a move fails to decode or max plies are
// reached (max <= 0 means all). start is not modified.
func Replay(start Position, sans []string, punisher chess.Color, max int) Line {
	cur := start
	line := Line{Final: start}
	for i, san := range sans {
		if max > 0 && i >= max {
			break
		}
		before := cur.Grid()
		fenBefore := cur.FEN()
		next, a, err := cur.Play(san)
		if err != nil {
			break
		}
		after := next.Grid()
		line.Events = append(line.Events, MoveEvent{
			Ply:         i + 1,
			SAN:         a.SAN,
			RawSAN:      san,
			Mover:       a.Mover,
			Role:        a.Role,
			From:        a.From,
			To:          a.To,
			Capture:     a.Capture,
			Captured:    a.Captured,
			EnPassant:   a.EnPassant,
			Castle:      a.Castle,
			Promotion:   a.Promotion,
			Check:       a.Check,
			Mate:        a.Mate,
			DoubleCheck: strings.Contains(san, "++"),
			FENBefore:   fenBefore,
			FENAfter:    next.FEN(),
			DiffBefore:  before.Diff(punisher),
			DiffAfter:   after.Diff(punisher),
			GridBefore:  before,
			GridAfter:   after,
		})
		cur = next
		line.Played++
	}
	line.Final = cur
	return line
}

// PlayAll replays sans and returns the final position and how many moves
// were applied.
func PlayAll(start Position, sans []string) (Position, int) {
	l := Replay(start, sans, start.Turn(), 0)
	return l.Final, l.Played
}
