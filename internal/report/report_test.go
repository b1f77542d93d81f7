package report_test

import (
	"testing"

	"github.com/corentings/chess/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/report"
	"github.com/vytor/chessinsight/internal/themes"
)

func TestNormalizeOpening(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"Sicilian Defense: Najdorf Variation", "sicilian defense"},
		{"Queen's Gambit Declined, Exchange", "queen s gambit declined"},
		{"Ruy Lopez (Berlin)", "ruy lopez"},
		{"King's Indian - Classical", "king s indian"},
		{"Caro-Kann / Advance", "caro kann"},
		{"  French   Defence  ", "french defence"},
		{"", "unknown"},
		{"???", "unknown"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := report.NormalizeOpening(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, report.NormalizeOpening(got), "normalisation is idempotent")
		})
	}
}

func TestSignature(t *testing.T) {
	assert.Equal(t, "untagged", report.Signature(nil))
	assert.Equal(t, "fork+opening", report.Signature([]themes.Tag{themes.Opening, themes.Fork, themes.Opening}))
}

func TestClampTop(t *testing.T) {
	assert.Equal(t, 10, report.ClampTop(0))
	assert.Equal(t, 5, report.ClampTop(2))
	assert.Equal(t, 15, report.ClampTop(40))
	assert.Equal(t, 7, report.ClampTop(7))
}

func loss(v int) *int { return &v }

func mistake(game, ply int, san string, kind models.Kind, l *int, tags ...themes.Tag) models.Mistake {
	if tags == nil {
		tags = []themes.Tag{}
	}
	return models.Mistake{
		Game:      models.GameIdentity{Index: game},
		Ply:       ply,
		PlayedSAN: san,
		Kind:      kind,
		CPLossAbs: l,
		Tags:      tags,
		Theme:     models.ThemePlan,
	}
}

func TestBuild(t *testing.T) {
	games := []models.GameAnalysis{
		{
			Game:    models.GameIdentity{Index: 0, ECO: "B90", Opening: "Sicilian Defense: Najdorf"},
			Matched: true, Color: "white", Plies: 20,
			Mistakes: []models.Mistake{
				mistake(0, 11, "Qh5", models.KindTacticalMistake, loss(150), themes.Fork),
				mistake(0, 15, "g4", models.KindPositionalMisplay, nil),
			},
		},
		{
			Game:    models.GameIdentity{Index: 1, ECO: "B33", Opening: "sicilian defense, sveshnikov"},
			Matched: true, Color: "white", Plies: 30,
			Mistakes: []models.Mistake{
				mistake(1, 11, "Qh5", models.KindTacticalMistake, loss(90), themes.Fork),
				mistake(1, 3, "Nc3", models.KindTacticalBlunder, loss(400)),
			},
		},
		{Game: models.GameIdentity{Index: 2, Opening: "French Defense"}, Matched: true, Color: "black", Plies: 25},
		{Game: models.GameIdentity{Index: 3}, Matched: false},
	}

	r := report.Build("me", games, 0)
	assert.Equal(t, 4, r.TotalGames)
	assert.Equal(t, 3, r.MatchedGames)
	assert.Equal(t, 75, r.AnalyzedPlies)

	require.Len(t, r.Mistakes, 4)
	assert.Equal(t, 400, r.Mistakes[0].Loss())
	assert.Equal(t, 150, r.Mistakes[1].Loss())
	assert.Equal(t, 90, r.Mistakes[2].Loss())
	assert.Nil(t, r.Mistakes[3].CPLossAbs)

	assert.Equal(t, 2, r.KindCounts[models.KindTacticalMistake])
	assert.Equal(t, 4, r.ThemeCounts[models.ThemePlan])
	assert.Equal(t, []models.SchemeCount{{Signature: "fork", Count: 2}, {Signature: "untagged", Count: 2}}, r.Schemes)

	require.Len(t, r.Openings, 2)
	sic := r.Openings[0]
	assert.Equal(t, "sicilian defense", sic.Key)
	assert.Equal(t, "Sicilian Defense: Najdorf", sic.Name)
	assert.Empty(t, sic.ECO, "eco dropped when the bucket mixes codes")
	assert.Equal(t, 2, sic.Games)
	assert.Equal(t, 50, sic.PliesAnalyzed)
	assert.Equal(t, 2, sic.Tags[themes.Fork])
	require.NotEmpty(t, sic.TopMistakes)
	assert.Equal(t, models.FrequentMistake{Ply: 11, SAN: "Qh5", Kind: models.KindTacticalMistake, Count: 2, AvgLossCP: 120}, sic.TopMistakes[0])

	fr := r.Openings[1]
	assert.Equal(t, "black", fr.Color)
	assert.Equal(t, 1, fr.Games)
	assert.Empty(t, fr.TopMistakes)
}

func TestBuild_Empty(t *testing.T) {
	r := report.Build("me", nil, 10)
	assert.Zero(t, r.TotalGames)
	assert.NotNil(t, r.Mistakes)
	assert.NotNil(t, r.Openings)
}

func TestStructures(t *testing.T) {
	samples := []report.StructureSample{
		{Signature: "a", Outcome: report.OutcomeFor("1-0", chess.White)},
		{Signature: "b", Outcome: report.OutcomeFor("1/2-1/2", chess.White)},
		{Signature: "b", Outcome: report.OutcomeFor("0-1", chess.White)},
		{Signature: "b", Outcome: report.OutcomeFor("*", chess.White)},
	}
	r := report.Structures("me", "white", 10, 5, 4, samples)

	require.Len(t, r.Structures, 2)
	assert.Equal(t, "b", r.Structures[0].Signature)
	assert.Equal(t, 3, r.Structures[0].Count)
	assert.Equal(t, 1, r.Structures[0].Draws)
	assert.Equal(t, 1, r.Structures[0].Losses)
	assert.InDelta(t, 0.25, r.Structures[0].WinRate, 1e-9)
	assert.InDelta(t, 1.0, r.Structures[1].WinRate, 1e-9)
	assert.Equal(t, report.OutcomeWin, report.OutcomeFor("0-1", chess.Black))
}
