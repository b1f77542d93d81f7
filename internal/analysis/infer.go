package analysis

import (
	"github.com/vytor/chessinsight/internal/features"
	"github.com/vytor/chessinsight/internal/models"
)

// inferTheme maps a finished mistake onto one summary theme. Checks run in
// order and the first hit wins.
func inferTheme(m *models.Mistake, o Options) models.SummaryTheme {
	b, a := m.Flags.Before, m.Flags.After
	switch {
	case m.Kind == models.KindMaterialBlunder || m.Flags.MaterialLossSoonPawns >= 2:
		return models.ThemeHangingMaterial
	case kingWorse(b.King, a.King):
		return models.ThemeKingExposure
	case pawnsWorse(b.Pawns, a.Pawns):
		return models.ThemePawnStructureDamage
	case m.Kind == models.KindOpeningPrinciple || m.Kind == models.KindPieceInactivity ||
		a.Development.Score < b.Development.Score:
		return models.ThemeDevelopmentStall
	case a.Space.Center < b.Space.Center || a.Space.Advanced <= b.Space.Advanced-2:
		return models.ThemeSpaceLoss
	case m.Kind == models.KindTacticalBlunder || m.Kind == models.KindTacticalMistake ||
		m.Kind == models.KindTacticalInaccuracy:
		return models.ThemeMissedTactic
	case m.Loss() >= o.CpInaccuracy || m.Kind == models.KindPositionalMisplay:
		return models.ThemePlan
	}
	return models.ThemeUnknown
}

func kingWorse(b, a features.KingSafety) bool {
	return a.ShieldPawns < b.ShieldPawns ||
		(a.OpenFile && !b.OpenFile) ||
		(a.EnemyOnFile && !b.EnemyOnFile) ||
		(b.Castled && !a.Castled)
}

func pawnsWorse(b, a features.PawnStructure) bool {
	return a.Islands > b.Islands || a.Doubled > b.Doubled || a.Isolated > b.Isolated
}
