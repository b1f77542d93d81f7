package eval_test

import (
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
	"github.com/vytor/chessinsight/internal/eval"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		comment string
		want    eval.Score
	}{
		{name: "lichess centipawns", comment: "[%eval 0.35]", want: eval.CP(35)},
		{name: "lichess negative with depth", comment: "[%eval -1.2,18] [%clk 0:03:00]", want: eval.CP(-120)},
		{name: "lichess mate for white", comment: "[%eval #3]", want: eval.Mate(3)},
		{name: "lichess mate for black", comment: "[%eval #-2]", want: eval.Mate(-2)},
		{name: "engine style with depth", comment: "+0.35/18 3s", want: eval.CP(35)},
		{name: "engine style negative", comment: "-1.20", want: eval.CP(-120)},
		{name: "engine mate M notation", comment: "-M3", want: eval.Mate(-3)},
		{name: "eval tag after text", comment: "Inaccuracy. Nf3 was best. [%eval -0.58]", want: eval.CP(-58)},
		{name: "plain prose", comment: "a nice idea", want: eval.Score{}},
		{name: "bare integer is not a score", comment: "3 pawns up", want: eval.Score{}},
		{name: "unsigned decimal alone", comment: " 0.35 ", want: eval.CP(35)},
		{name: "unsigned decimal with depth", comment: "0.35/20 5s", want: eval.CP(35)},
		{name: "unsigned decimal in prose", comment: "20.5 seconds left on the clock", want: eval.Score{}},
		{name: "unsigned decimal before text", comment: "1.5 pawns for the exchange", want: eval.Score{}},
		{name: "mate zero unknown", comment: "[%eval #0]", want: eval.Score{}},
		{name: "clock only", comment: "[%clk 0:01:00]", want: eval.Score{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, eval.Parse(tt.comment))
		})
	}
}

func TestMateOrdering(t *testing.T) {
	m1 := eval.Mate(1)
	m5 := eval.Mate(5)
	assert.Equal(t, 9990, m1.CP)
	assert.Equal(t, 9950, m5.CP)
	assert.Greater(t, m1.CP, m5.CP, "shorter mates are more extreme")
	assert.Greater(t, m5.CP, 5000, "mates outrank ordinary swings")
	assert.Equal(t, -9980, eval.Mate(-2).CP)
	assert.True(t, m1.IsMate())
	assert.False(t, eval.CP(100).IsMate())
}

func TestFromComments_FirstRecognisedWins(t *testing.T) {
	s := eval.FromComments([]string{"no score here", "[%eval 1.5]", "[%eval -3.0]"})
	assert.Equal(t, eval.CP(150), s)
	assert.False(t, eval.FromComments(nil).Known)
}

func TestForPlayer(t *testing.T) {
	assert.Equal(t, 120, eval.ForPlayer(120, chess.White))
	assert.Equal(t, -120, eval.ForPlayer(120, chess.Black))

	v, ok := eval.CP(-40).ForPlayer(chess.Black)
	assert.True(t, ok)
	assert.Equal(t, 40, v)

	_, ok = eval.Score{}.ForPlayer(chess.White)
	assert.False(t, ok, "unknown stays unknown, not zero")
}
