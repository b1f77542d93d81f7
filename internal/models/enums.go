package models

import "fmt"

// Kind classifies what went wrong on a move.
type Kind int

const (
	KindUnknown Kind = iota
	KindTacticalBlunder
	KindTacticalMistake
	KindTacticalInaccuracy
	KindMaterialBlunder
	KindOpeningPrinciple
	KindPieceInactivity
	KindPositionalMisplay
	kindEnd
)

var kindNames = [kindEnd]string{
	KindUnknown:            "unknown",
	KindTacticalBlunder:    "tactical_blunder",
	KindTacticalMistake:    "tactical_mistake",
	KindTacticalInaccuracy: "tactical_inaccuracy",
	KindMaterialBlunder:    "material_blunder",
	KindOpeningPrinciple:   "opening_principle",
	KindPieceInactivity:    "piece_inactivity",
	KindPositionalMisplay:  "positional_misplay",
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindEnd)
	for k := KindUnknown; k < kindEnd; k++ {
		out = append(out, k)
	}
	return out
}

func (k Kind) String() string {
	if k < 0 || k >= kindEnd {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || k >= kindEnd {
		return nil, fmt.Errorf("models: invalid kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("models: unknown kind %q", b)
}

// Severity orders mistakes by how much they cost.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityInaccuracy
	SeverityMistake
	SeverityBlunder
	severityEnd
)

var severityNames = [severityEnd]string{"info", "inaccuracy", "mistake", "blunder"}

func (s Severity) String() string {
	if s < 0 || s >= severityEnd {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

func (s Severity) MarshalText() ([]byte, error) {
	if s < 0 || s >= severityEnd {
		return nil, fmt.Errorf("models: invalid severity %d", int(s))
	}
	return []byte(severityNames[s]), nil
}

func (s *Severity) UnmarshalText(b []byte) error {
	for i, name := range severityNames {
		if name == string(b) {
			*s = Severity(i)
			return nil
		}
	}
	return fmt.Errorf("models: unknown severity %q", b)
}

// SummaryTheme is the single high-level theme inferred for a mistake.
type SummaryTheme int

const (
	ThemeUnknown SummaryTheme = iota
	ThemeHangingMaterial
	ThemeKingExposure
	ThemePawnStructureDamage
	ThemeDevelopmentStall
	ThemeSpaceLoss
	ThemeMissedTactic
	ThemePlan
	themeEnd
)

var themeNames = [themeEnd]string{
	ThemeUnknown:             "unknown",
	ThemeHangingMaterial:     "hanging_material",
	ThemeKingExposure:        "king_exposure",
	ThemePawnStructureDamage: "pawn_structure_damage",
	ThemeDevelopmentStall:    "development_stall",
	ThemeSpaceLoss:           "space_loss",
	ThemeMissedTactic:        "missed_tactic",
	ThemePlan:                "plan",
}

func (t SummaryTheme) String() string {
	if t < 0 || t >= themeEnd {
		return fmt.Sprintf("SummaryTheme(%d)", int(t))
	}
	return themeNames[t]
}

func (t SummaryTheme) MarshalText() ([]byte, error) {
	if t < 0 || t >= themeEnd {
		return nil, fmt.Errorf("models: invalid theme %d", int(t))
	}
	return []byte(themeNames[t]), nil
}

func (t *SummaryTheme) UnmarshalText(b []byte) error {
	for i, name := range themeNames {
		if name == string(b) {
			*t = SummaryTheme(i)
			return nil
		}
	}
	return fmt.Errorf("models: unknown theme %q", b)
}
