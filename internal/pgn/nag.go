package pgn

import (
	"regexp"
	"strconv"
)

// Glyph is the symbolic form of a move-quality NAG.
type Glyph string

const (
	GlyphGood        Glyph = "!"
	GlyphMistake     Glyph = "?"
	GlyphBrilliant   Glyph = "!!"
	GlyphBlunder     Glyph = "??"
	GlyphInteresting Glyph = "!?"
	GlyphDubious     Glyph = "?!"
)

var glyphCodes = map[string]int{
	"!":  1,
	"?":  2,
	"!!": 3,
	"??": 4,
	"!?": 5,
	"?!": 6,
}

var nagGlyphs = map[int]Glyph{
	1: GlyphGood,
	2: GlyphMistake,
	3: GlyphBrilliant,
	4: GlyphBlunder,
	5: GlyphInteresting,
	6: GlyphDubious,
}

var glyphNames = map[Glyph]string{
	GlyphGood:        "good",
	GlyphMistake:     "mistake",
	GlyphBrilliant:   "brilliant",
	GlyphBlunder:     "blunder",
	GlyphInteresting: "interesting",
	GlyphDubious:     "dubious",
}

// GlyphFor maps a NAG code to its glyph. Codes outside 1..6 are not
// move-quality annotations.
func GlyphFor(code int) (Glyph, bool) {
	g, ok := nagGlyphs[code]
	return g, ok
}

// Name is the readable name of the glyph ("blunder", "mistake", ...).
func (g Glyph) Name() string { return glyphNames[g] }

// IsError reports whether the glyph marks the move as a mistake or blunder.
func (g Glyph) IsError() bool { return g == GlyphMistake || g == GlyphBlunder }

var commentNAGRe = regexp.MustCompile(`\$(\d+)`)

// Glyphs collects the move-quality glyphs of a node from its NAG tokens and
// from "$n" codes embedded in its comments, in first-seen order.
func (n *Node) Glyphs() []Glyph {
	seen := map[Glyph]bool{}
	var out []Glyph
	add := func(code int) {
		if g, ok := GlyphFor(code); ok && !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	for _, c := range n.NAGs {
		add(c)
	}
	for _, text := range n.Comments {
		for _, m := range commentNAGRe.FindAllStringSubmatch(text, -1) {
			if code, err := strconv.Atoi(m[1]); err == nil {
				add(code)
			}
		}
	}
	return out
}
