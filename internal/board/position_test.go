package board_test

import (
	"strings"
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessinsight/internal/board"
)

func placement(fen string) string {
	return strings.Fields(fen)[0]
}

func TestStart(t *testing.T) {
	p := board.Start()
	assert.Equal(t, chess.White, p.Turn())
	assert.Equal(t, 1, p.FullMove())
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", placement(p.FEN()))

	g := p.Grid()
	assert.Equal(t, board.Piece{Role: board.King, Color: chess.White}, g[board.ParseSquare("e1")])
	assert.Equal(t, 39, g.Material(chess.White))
	assert.Equal(t, 0, g.Diff(chess.Black))
}

func TestPlay_DoesNotMutate(t *testing.T) {
	start := board.Start()
	next, a, err := start.Play("e4")
	require.NoError(t, err)

	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", placement(start.FEN()))
	assert.Equal(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR", placement(next.FEN()))
	assert.Equal(t, chess.Black, next.Turn())
	assert.Equal(t, "e4", a.SAN)
	assert.Equal(t, board.Pawn, a.Role)
	assert.False(t, a.Capture)
	assert.Equal(t, "e2e4", board.MoveToUCI(a.Move))
}

func TestDecode_Tolerant(t *testing.T) {
	pos, n := board.PlayAll(board.Start(), []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Nf6"})
	require.Equal(t, 6, n)

	for _, san := range []string{"0-0", "O-O", "O-O+", "O-O!?"} {
		m, err := pos.Decode(san)
		require.NoError(t, err, san)
		assert.Equal(t, "e1g1", board.MoveToUCI(m), san)
	}

	m, err := pos.Decode("Nf3g5")
	require.NoError(t, err, "superfluous disambiguation is tolerated")
	assert.Equal(t, "f3g5", board.MoveToUCI(m))

	_, err = pos.Decode("Qh8")
	assert.ErrorIs(t, err, board.ErrBadSAN)
}

func TestDecode_PromotionWithoutEquals(t *testing.T) {
	pos, err := board.FromFEN("8/4P1k1/8/8/8/8/6K1/8 w - - 0 1")
	require.NoError(t, err)

	m, err := pos.Decode("e8Q")
	require.NoError(t, err)
	assert.Equal(t, "e7e8q", board.MoveToUCI(m))

	_, a, err := pos.Play("e8=N")
	require.NoError(t, err)
	assert.Equal(t, board.Knight, a.Promotion)
}

func TestSanitizeSAN(t *testing.T) {
	assert.Equal(t, "Nf3", board.SanitizeSAN("Nf3!?"))
	assert.Equal(t, "Qxf7", board.SanitizeSAN("Qxf7#"))
	assert.Equal(t, "O-O-O", board.SanitizeSAN("0-0-0+"))
	assert.Equal(t, "exd6", board.SanitizeSAN("exd6e.p."))
	assert.Equal(t, "b8=Q", board.SanitizeSAN("b8Q"))
}

func TestFromHeaders(t *testing.T) {
	p, err := board.FromHeaders(map[string]string{"White": "x"})
	require.NoError(t, err)
	assert.Equal(t, board.Start().FEN(), p.FEN())

	p, err = board.FromHeaders(map[string]string{"SetUp": "1", "FEN": "4k3/8/8/8/8/8/8/4K2R w K - 0 12"})
	require.NoError(t, err)
	assert.Equal(t, 12, p.FullMove())

	_, err = board.FromHeaders(map[string]string{"FEN": "8/8/8/8/8/8/8/8 w - - 0 1"})
	var setupErr *board.SetupError
	assert.ErrorAs(t, err, &setupErr)

	_, err = board.FromHeaders(map[string]string{"FEN": "not a fen"})
	assert.ErrorAs(t, err, &setupErr)
}

func TestApply_CheckAndMate(t *testing.T) {
	pos, n := board.PlayAll(board.Start(), []string{"e4", "e5", "Qh5", "Nc6", "Bc4", "Nf6"})
	require.Equal(t, 6, n)

	next, a, err := pos.Play("Qxf7")
	require.NoError(t, err)
	assert.True(t, a.Capture)
	assert.Equal(t, board.Pawn, a.Captured)
	assert.True(t, a.Check)
	assert.True(t, a.Mate)
	assert.Equal(t, "Qxf7#", a.SAN)
	assert.True(t, next.IsCheckmate())
}

func TestApply_EnPassantAndCastle(t *testing.T) {
	pos, n := board.PlayAll(board.Start(), []string{"e4", "a6", "e5", "d5"})
	require.Equal(t, 4, n)

	_, a, err := pos.Play("exd6")
	require.NoError(t, err)
	assert.True(t, a.Capture)
	assert.True(t, a.EnPassant)
	assert.Equal(t, board.Pawn, a.Captured)

	pos, n = board.PlayAll(board.Start(), []string{"e4", "e5", "Nf3", "Nc6", "Bc4", "Bc5"})
	require.Equal(t, 6, n)
	_, a, err = pos.Play("O-O")
	require.NoError(t, err)
	assert.True(t, a.Castle)
	assert.Equal(t, board.King, a.Role)
}

func TestPlayAll_StopsAtFirstBadMove(t *testing.T) {
	pos, n := board.PlayAll(board.Start(), []string{"e4", "e5", "Ke3", "Nf3"})
	assert.Equal(t, 2, n)
	assert.Equal(t, chess.White, pos.Turn())
}
