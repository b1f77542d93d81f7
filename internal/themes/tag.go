// Package themes tags a replayed continuation with tactical and strategic
// patterns.
package themes

import "fmt"

// Tag is one member of the closed theme enumeration.
type Tag int

const (
	Fork Tag = iota + 1
	Pin
	Skewer
	XRayAttack
	Deflection
	DiscoveredAttack
	Interference
	HangingPiece
	DoubleCheck
	ExposedKing
	DoubleThreat
	Intermezzo

	Mate
	MateIn1
	MateIn2
	MateIn3
	MateIn4
	MateIn5
	BackRankMate
	SmotheredMate
	ArabianMate
	AnastasiaMate

	Opening
	Middlegame
	Endgame

	PawnEndgame
	RookEndgame
	BishopEndgame
	KnightEndgame
	QueenEndgame
	QueenRookEndgame

	Castling
	Promotion
	UnderPromotion
	EnPassant

	Advantage
	Crushing

	Zugzwang
	KingsideAttack
	QueensideAttack
	QuietMove
	Sacrifice
	DoubleBishop

	tagEnd
)

// Category groups tags for the priority filter.
type Category int

const (
	CategoryTactic Category = iota + 1
	CategoryMate
	CategoryPhase
	CategoryEndgame
	CategorySpecial
	CategoryStrategy
	CategoryOther
)

var tagNames = [tagEnd]string{
	Fork:             "fork",
	Pin:              "pin",
	Skewer:           "skewer",
	XRayAttack:       "xRayAttack",
	Deflection:       "deflection",
	DiscoveredAttack: "discoveredAttack",
	Interference:     "interference",
	HangingPiece:     "hangingPiece",
	DoubleCheck:      "doubleCheck",
	ExposedKing:      "exposedKing",
	DoubleThreat:     "doubleThreat",
	Intermezzo:       "intermezzo",
	Mate:             "mate",
	MateIn1:          "mateIn1",
	MateIn2:          "mateIn2",
	MateIn3:          "mateIn3",
	MateIn4:          "mateIn4",
	MateIn5:          "mateIn5",
	BackRankMate:     "backRankMate",
	SmotheredMate:    "smotheredMate",
	ArabianMate:      "arabianMate",
	AnastasiaMate:    "anastasiaMate",
	Opening:          "opening",
	Middlegame:       "middlegame",
	Endgame:          "endgame",
	PawnEndgame:      "pawnEndgame",
	RookEndgame:      "rookEndgame",
	BishopEndgame:    "bishopEndgame",
	KnightEndgame:    "knightEndgame",
	QueenEndgame:     "queenEndgame",
	QueenRookEndgame: "queenRookEndgame",
	Castling:         "castling",
	Promotion:        "promotion",
	UnderPromotion:   "underPromotion",
	EnPassant:        "enPassant",
	Advantage:        "advantage",
	Crushing:         "crushing",
	Zugzwang:         "zugzwang",
	KingsideAttack:   "kingsideAttack",
	QueensideAttack:  "queensideAttack",
	QuietMove:        "quietMove",
	Sacrifice:        "sacrifice",
	DoubleBishop:     "doubleBishop",
}

// All lists every tag in declaration order.
func All() []Tag {
	out := make([]Tag, 0, int(tagEnd)-1)
	for t := Fork; t < tagEnd; t++ {
		out = append(out, t)
	}
	return out
}

// Valid reports whether t belongs to the enumeration.
func (t Tag) Valid() bool { return t >= Fork && t < tagEnd }

func (t Tag) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return tagNames[t]
}

// Category returns the filter group of t.
func (t Tag) Category() Category {
	switch {
	case t >= Fork && t <= Intermezzo:
		return CategoryTactic
	case t >= Mate && t <= AnastasiaMate:
		return CategoryMate
	case t >= Opening && t <= Endgame:
		return CategoryPhase
	case t >= PawnEndgame && t <= QueenRookEndgame:
		return CategoryEndgame
	case t >= Castling && t <= EnPassant:
		return CategorySpecial
	case t == Advantage || t == Crushing:
		return CategoryStrategy
	}
	return CategoryOther
}

// ParseTag is the inverse of String.
func ParseTag(s string) (Tag, error) {
	for t := Fork; t < tagEnd; t++ {
		if tagNames[t] == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("themes: unknown tag %q", s)
}

func (t Tag) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("themes: invalid tag %d", int(t))
	}
	return []byte(tagNames[t]), nil
}

func (t *Tag) UnmarshalText(b []byte) error {
	v, err := ParseTag(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

func mateIn(n int) (Tag, bool) {
	if n < 1 || n > 5 {
		return 0, false
	}
	return MateIn1 + Tag(n-1), true
}
