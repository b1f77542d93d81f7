package analysis_test

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessinsight/internal/analysis"
	"github.com/vytor/chessinsight/internal/board"
	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/themes"
)

const symbolOnlyPGN = `[Event "Scenario A"]
[White "Alice"]
[Black "Bob"]
[Result "0-1"]

1. e4 e5 2. Qh5?? Nc6 0-1
`

const blunderPGN = `[Event "Scenario B"]
[White "Alice Smith"]
[Black "Bob"]
[Result "0-1"]

1. e4 {[%eval 0.5]} e5 {[%eval 0.5]} 2. Qh5 {[%eval -3.0]} Nc6 {[%eval -3.0]} 0-1
`

const materialPGN = `[Event "Scenario C"]
[White "Alice"]
[Black "Bob"]
[Result "0-1"]
[SetUp "1"]
[FEN "4k3/8/8/7b/8/8/8/R3K3 w - - 0 1"]

1. Rd1?? Bxd1 0-1
`

const alternativePGN = `[Event "Scenario D"]
[White "Alice"]
[Black "Bob"]
[Result "*"]
[Opening "Ruy Lopez"]

1. e4 {[%eval 0.3]} e5 {[%eval 0.3]} 2. Nf3 {[%eval 0.3]} Nc6 {[%eval 0.3]}
3. a3 {[%eval -0.3]} (3. Bb5 {[%eval 0.9]} a6) 3... Nf6 {[%eval -0.3]} *
`

func only(t *testing.T, r *models.Report) models.Mistake {
	t.Helper()
	require.Len(t, r.Mistakes, 1)
	return r.Mistakes[0]
}

func TestAnalyze_SymbolOnly(t *testing.T) {
	r := analysis.Analyze(symbolOnlyPGN, "Alice", analysis.DefaultOptions())

	m := only(t, r)
	assert.Equal(t, "Qh5", m.PlayedSAN)
	assert.Equal(t, "d1h5", m.PlayedUCI)
	assert.Equal(t, 3, m.Ply)
	assert.Equal(t, 2, m.MoveNumber)
	assert.Equal(t, models.KindPositionalMisplay, m.Kind)
	assert.Equal(t, models.SeverityInaccuracy, m.Severity)
	assert.True(t, m.Flags.SymbolOnly)
	assert.Equal(t, []string{"??"}, m.Flags.Glyphs)
	assert.Nil(t, m.CPLossAbs)
	assert.Equal(t, "Nc6", m.Flags.OpponentReplySAN)
	assert.Equal(t, 1, r.MatchedGames)
	assert.Equal(t, 2, r.AnalyzedPlies)

	opts := analysis.DefaultOptions()
	opts.AllowSymbolOnly = false
	assert.Empty(t, analysis.Analyze(symbolOnlyPGN, "Alice", opts).Mistakes)
}

func TestAnalyze_TacticalBlunder(t *testing.T) {
	r := analysis.Analyze(blunderPGN, "smith", analysis.DefaultOptions())

	m := only(t, r)
	require.NotNil(t, m.CPLossAbs)
	assert.Equal(t, 350, *m.CPLossAbs)
	assert.Equal(t, 50, *m.CPBefore)
	assert.Equal(t, -300, *m.CPAfter)
	assert.Equal(t, -350, *m.CPSwing)
	assert.Equal(t, models.KindTacticalBlunder, m.Kind)
	assert.Equal(t, models.SeverityBlunder, m.Severity)
	assert.Equal(t, models.ThemeMissedTactic, m.Theme)
	assert.Equal(t, "white", m.PlayerColor)
}

func TestAnalyze_BlackPerspective(t *testing.T) {
	pgnText := `[White "Bob"]
[Black "Alice"]
[Result "1-0"]

1. e4 {[%eval 0.3]} e5 {[%eval 0.3]} 2. Nf3 {[%eval 0.3]} f6 {[%eval 1.5]} 1-0
`
	m := only(t, analysis.Analyze(pgnText, "Alice", analysis.DefaultOptions()))
	assert.Equal(t, "black", m.Mover)
	assert.Equal(t, 4, m.Ply)
	assert.Equal(t, 120, *m.CPLossAbs)
	assert.Equal(t, models.KindTacticalMistake, m.Kind)
}

func TestAnalyze_MaterialBlunderUpgrade(t *testing.T) {
	r := analysis.Analyze(materialPGN, "Alice", analysis.DefaultOptions())

	m := only(t, r)
	assert.Equal(t, 5, m.Flags.MaterialLossSoonPawns)
	assert.Equal(t, models.KindMaterialBlunder, m.Kind)
	assert.Equal(t, models.SeverityBlunder, m.Severity)
	assert.True(t, m.Flags.OpponentReplyCapture)
	assert.Equal(t, "Bxd1", m.Flags.OpponentReplySAN)
	assert.NotEmpty(t, m.FENAfterReply)
	assert.Equal(t, models.ThemeHangingMaterial, m.Theme)
	assert.Equal(t, models.PunishmentMainLine, m.Flags.PunishmentSource)
	assert.Contains(t, m.Tags, themes.HangingPiece)
	assert.Contains(t, m.Tags, themes.Endgame)
}

func TestAnalyze_AlternativeGain(t *testing.T) {
	r := analysis.Analyze(alternativePGN, "Alice", analysis.DefaultOptions())

	m := only(t, r)
	assert.Equal(t, "a3", m.PlayedSAN)
	assert.Equal(t, 60, *m.CPLossAbs)
	require.NotNil(t, m.BestAlternative)
	assert.Equal(t, "Bb5", m.BestAlternative.SAN)
	require.NotNil(t, m.BestAlternative.GainCPVsPlayed)
	assert.Equal(t, 120, *m.BestAlternative.GainCPVsPlayed)
	assert.Equal(t, "3. Bb5 a6", m.BestAlternative.Line)
	assert.Len(t, m.Alternatives, 1)
	assert.Equal(t, models.SeverityMistake, m.Severity)
	assert.Equal(t, models.KindOpeningPrinciple, m.Kind)
	assert.Equal(t, models.PunishmentMissedLine, m.Flags.PunishmentSource)

	require.Len(t, r.Openings, 1)
	assert.Equal(t, "ruy lopez", r.Openings[0].Key)
	assert.Equal(t, 1, r.Openings[0].Games)
}

func TestAnalyze_AlternativeGainWithoutPriorEval(t *testing.T) {
	pgnText := `[White "Alice"]
[Black "Bob"]
[Result "*"]

1. e4 e5 2. Nf3 Nc6 3. a3 {[%eval -0.3]} (3. Bb5 {[%eval 0.9]}) 3... Nf6 *
`
	m := only(t, analysis.Analyze(pgnText, "Alice", analysis.DefaultOptions()))
	assert.Nil(t, m.CPLossAbs)
	assert.Equal(t, 120, *m.BestAlternative.GainCPVsPlayed)
	assert.Equal(t, models.KindPositionalMisplay, m.Kind)
	assert.Equal(t, models.SeverityMistake, m.Severity)
}

func TestAnalyze_ContextRoundTrip(t *testing.T) {
	opts := analysis.DefaultOptions()
	opts.ContextPlies = 2
	r := analysis.Analyze(alternativePGN, "Alice", opts)
	m := only(t, r)

	assert.Equal(t, []string{"Nf3", "Nc6"}, m.SANContextBefore)

	start, err := board.FromFEN(m.ContextStartFEN)
	require.NoError(t, err)
	end, n := board.PlayAll(start, append(append([]string{}, m.SANContextBefore...), m.PlayedSAN))
	require.Equal(t, 3, n)
	assert.Equal(t, m.FENAfter, end.FEN())

	before, err := board.FromFEN(m.FENBefore)
	require.NoError(t, err)
	after, _, err := before.Play(m.PlayedSAN)
	require.NoError(t, err)
	assert.Equal(t, m.FENAfter, after.FEN())
}

func TestAnalyze_SkipsBadMoves(t *testing.T) {
	pgnText := `[White "Alice"]
[Black "Bob"]
[Result "*"]

1. e4 e5 2. Ke3 Nc6 3. Qh5?? Nf6 *
`
	m := only(t, analysis.Analyze(pgnText, "Alice", analysis.DefaultOptions()))
	assert.Equal(t, "Qh5", m.PlayedSAN)
	// Ke3 and Nc6 are skipped but still count: Qh5 sits on the fifth node.
	assert.Equal(t, 5, m.Ply)
	assert.Equal(t, 3, m.MoveNumber)
	assert.Equal(t, "Nf6", m.Flags.OpponentReplySAN)
}

func TestAnalyze_Counts(t *testing.T) {
	pgnText := symbolOnlyPGN + "\n" + `[White "Carol"]
[Black "Dave"]
[Result "*"]

1. e4?? e5 *

[White "Alice"]
[Black "Eve"]
[SetUp "1"]
[FEN "8/8/8/8/8/8/8/8 w - - 0 1"]
[Result "*"]

1. e4 *
`
	r := analysis.Analyze(pgnText, "Alice", analysis.DefaultOptions())
	assert.Equal(t, 3, r.TotalGames)
	assert.Equal(t, 1, r.MatchedGames)
	assert.Len(t, r.Mistakes, 1)

	r = analysis.Analyze("1. e4 e5 2. Qh5?? *", "Alice", analysis.DefaultOptions())
	assert.Equal(t, 1, r.TotalGames, "headerless text is retried with synthetic headers")
	assert.Zero(t, r.MatchedGames)

	r = analysis.Analyze("", "Alice", analysis.DefaultOptions())
	assert.Zero(t, r.TotalGames)
	assert.Empty(t, r.Mistakes)
}

func TestAnalyze_PlayerColorFilter(t *testing.T) {
	opts := analysis.DefaultOptions()
	opts.PlayerColor = chess.Black
	r := analysis.Analyze(symbolOnlyPGN, "Alice", opts)
	assert.Zero(t, r.MatchedGames)
}

func TestAnalyze_MaxMove(t *testing.T) {
	opts := analysis.DefaultOptions()
	opts.MaxMove = 1
	r := analysis.Analyze(symbolOnlyPGN, "Alice", opts)
	assert.Empty(t, r.Mistakes)
	assert.Equal(t, 1, r.AnalyzedPlies)
}

const corpus = symbolOnlyPGN + "\n" + blunderPGN + "\n" + materialPGN + "\n" + alternativePGN

func TestAnalyze_Properties(t *testing.T) {
	opts := analysis.DefaultOptions()
	r := analysis.Analyze(corpus, "Alice", opts)
	require.Len(t, r.Mistakes, 4)

	all := map[themes.Tag]bool{}
	for _, tag := range themes.All() {
		all[tag] = true
	}
	for i, m := range r.Mistakes {
		if m.CPLossAbs != nil {
			assert.GreaterOrEqual(t, *m.CPLossAbs, 0)
		}
		if i > 0 {
			assert.GreaterOrEqual(t, r.Mistakes[i-1].Loss(), m.Loss(), "sorted by loss")
		}
		for _, tag := range m.Tags {
			assert.True(t, all[tag], "tag %v outside the enumeration", tag)
		}
		if m.Kind == models.KindMaterialBlunder || m.Flags.SymbolOnly {
			continue
		}
		gain := 0
		if m.BestAlternative != nil && m.BestAlternative.GainCPVsPlayed != nil {
			gain = max(0, *m.BestAlternative.GainCPVsPlayed)
		}
		assert.Equal(t, band(max(m.Loss(), gain), opts), m.Severity, "severity of %s", m.PlayedSAN)
	}
	assert.Equal(t, 350, r.Mistakes[0].Loss())
}

func band(loss int, o analysis.Options) models.Severity {
	switch {
	case loss >= o.CpBlunder:
		return models.SeverityBlunder
	case loss >= o.CpMistake:
		return models.SeverityMistake
	case loss >= o.CpInaccuracy:
		return models.SeverityInaccuracy
	}
	return models.SeverityInfo
}

func TestAnalyze_Deterministic(t *testing.T) {
	first, err := json.Marshal(analysis.Analyze(corpus, "Alice", analysis.DefaultOptions()))
	require.NoError(t, err)
	second, err := json.Marshal(analysis.Analyze(corpus, "Alice", analysis.DefaultOptions()))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))

	opts := analysis.DefaultOptions()
	opts.Parallelism = 4
	parallel, err := json.Marshal(analysis.Analyze(corpus, "Alice", opts))
	require.NoError(t, err)
	assert.Equal(t, string(first), string(parallel))
}

func TestPawnStructures(t *testing.T) {
	pgnText := `[White "Alice"]
[Black "Bob"]
[Result "1-0"]

1. e4 c5 2. Nf3 d6 1-0

[White "Alice"]
[Black "Bob"]
[Result "1/2-1/2"]

1. e4 c5 2. Nf3 Nc6 1/2-1/2

[White "Bob"]
[Black "Alice"]
[Result "0-1"]

1. d4 d5 0-1
`
	r := analysis.PawnStructures(pgnText, "Alice", 1, chess.White, analysis.DefaultOptions())
	assert.Equal(t, 3, r.TotalGames)
	assert.Equal(t, 2, r.MatchedGames)
	require.Len(t, r.Structures, 1)
	s := r.Structures[0]
	assert.Equal(t, "8/pppppppp/8/8/4P3/8/PPPP1PPP/8", s.Signature)
	assert.Equal(t, 2, s.Count)
	assert.InDelta(t, 0.75, s.WinRate, 1e-9)

	r = analysis.PawnStructures(pgnText, "Alice", 2, chess.Black, analysis.DefaultOptions())
	assert.Equal(t, 1, r.MatchedGames)
	assert.Empty(t, r.Structures, "game ended before black's second move")
}

func TestAnalyze_ReplyUpgradesPositionalMisplay(t *testing.T) {
	const game = `[White "Carol"]
[Black "Alice"]
[Result "*"]
[SetUp "1"]
[FEN "4k3/p7/8/8/8/8/8/4K2R w - - 0 1"]

1. Kd1 {[%%eval 0.0]} a6 {[%%eval 0.8]} 2. %s {[%%eval 0.8]} *
`
	tests := []struct {
		reply string
		want  models.Kind
	}{
		{"Rh8+", models.KindTacticalInaccuracy},
		{"Rh7", models.KindPositionalMisplay},
	}
	for _, tt := range tests {
		t.Run(tt.reply, func(t *testing.T) {
			m := only(t, analysis.Analyze(fmt.Sprintf(game, tt.reply), "Alice", analysis.DefaultOptions()))
			assert.Equal(t, "a6", m.PlayedSAN)
			assert.Equal(t, 80, m.Loss())
			assert.Equal(t, tt.reply, m.Flags.OpponentReplySAN)
			assert.Zero(t, m.Flags.MaterialLossSoonPawns)
			assert.Equal(t, tt.want, m.Kind)
			assert.Equal(t, models.SeverityInaccuracy, m.Severity)
		})
	}
}
