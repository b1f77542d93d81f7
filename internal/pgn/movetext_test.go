package pgn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessinsight/internal/pgn"
)

func TestParseMoveText_CommentsAndNAGs(t *testing.T) {
	tree, result := pgn.ParseMoveText(`1. e4 { [%eval 0.3] } 1... e5?! $6 { [%eval 0.5] } 2. Qh5?? $4 *`)
	assert.Equal(t, "*", result)

	line := tree.Line(tree.MainChild(tree.Root()), 0)
	require.Len(t, line, 3)

	e4 := tree.Node(line[0])
	assert.Equal(t, "e4", e4.SAN)
	assert.Equal(t, []string{"[%eval 0.3]"}, e4.Comments)

	e5 := tree.Node(line[1])
	assert.Equal(t, "e5", e5.SAN)
	assert.Equal(t, []int{6}, e5.NAGs, "glyph suffix and $6 collapse to one code")

	qh5 := tree.Node(line[2])
	assert.Equal(t, []pgn.Glyph{pgn.GlyphBlunder}, qh5.Glyphs())
	assert.True(t, qh5.Glyphs()[0].IsError())
	assert.Equal(t, "blunder", qh5.Glyphs()[0].Name())
}

func TestParseMoveText_Variations(t *testing.T) {
	tree, _ := pgn.ParseMoveText(`1. e4 e5 (1... c5 2. Nf3 (2. c3 d5) 2... d6) (1... e6) 2. Nf3 Nc6 1-0`)

	e4 := tree.MainChild(tree.Root())
	e5 := tree.MainChild(e4)
	require.Equal(t, "e5", tree.Node(e5).SAN)

	siblings := tree.Siblings(e5)
	require.Len(t, siblings, 2)
	assert.Equal(t, "c5", tree.Node(siblings[0]).SAN)
	assert.Equal(t, "e6", tree.Node(siblings[1]).SAN)

	assert.Equal(t, []string{"c5", "Nf3", "d6"}, tree.LineSAN(siblings[0], 0))
	nf3 := tree.MainChild(siblings[0])
	vars := tree.Siblings(nf3)
	require.Len(t, vars, 1)
	assert.Equal(t, []string{"c3", "d5"}, tree.LineSAN(vars[0], 0))

	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6"}, tree.LineSAN(e4, 0))
	assert.Equal(t, []int{siblings[0], siblings[1]}, tree.Variations(e4))
}

func TestParseMoveText_IgnoresNoise(t *testing.T) {
	tree, result := pgn.ParseMoveText("% escaped line\n1.e4 ; rest of line\n1...e5 2.O-O-O 0-0 3. -- 1/2-1/2")
	assert.Equal(t, "1/2-1/2", result)
	assert.Equal(t, []string{"e4", "e5", "O-O-O", "0-0"}, tree.LineSAN(tree.MainChild(0), 0))
}

func TestParseMoveText_VariationOpeningCommentDropped(t *testing.T) {
	tree, _ := pgn.ParseMoveText(`1. e4 { [%eval 0.2] } (1. d4 { [%eval 0.1] }) ({ better } 1. c4) 1... e5`)
	root := tree.Node(tree.Root())
	assert.Empty(t, root.Comments)
	e4 := tree.MainChild(0)
	assert.Equal(t, []string{"[%eval 0.2]"}, tree.Node(e4).Comments)
	vars := tree.Siblings(e4)
	require.Len(t, vars, 2)
	assert.Equal(t, []string{"[%eval 0.1]"}, tree.Node(vars[0]).Comments)
	assert.Empty(t, tree.Node(vars[1]).Comments)
}

func TestSplitGlyph(t *testing.T) {
	san, glyph := pgn.SplitGlyph("Nxe5!?")
	assert.Equal(t, "Nxe5", san)
	assert.Equal(t, "!?", glyph)

	san, glyph = pgn.SplitGlyph("O-O")
	assert.Equal(t, "O-O", san)
	assert.Equal(t, "", glyph)
}
