package themes

import "slices"

// Detector is a pure function from a continuation to the tags it shows.
type Detector struct {
	Name string
	Run  func(*Context) []Tag
}

var registry = []Detector{
	{"hanging", detectHanging},
	{"fork", detectFork},
	{"lines", detectLines},
	{"discovered", detectDiscovered},
	{"interference", detectInterference},
	{"deflection", detectDeflection},
	{"doubleThreat", detectDoubleThreat},
	{"intermezzo", detectIntermezzo},
	{"exposedKing", detectExposedKing},
	{"doubleCheck", detectDoubleCheck},
	{"mate", detectMate},
	{"phase", detectPhase},
	{"endgameType", detectEndgameType},
	{"strategy", detectStrategy},
	{"special", detectSpecial},
	{"zugzwang", detectZugzwang},
	{"kingsideAttack", detectKingsideAttack},
	{"queensideAttack", detectQueensideAttack},
	{"quietMove", detectQuietMove},
	{"sacrifice", detectSacrifice},
	{"doubleBishop", detectDoubleBishop},
}

// Detectors returns the registered detectors in run order.
func Detectors() []Detector {
	out := make([]Detector, len(registry))
	copy(out, registry)
	return out
}

// Detect runs every detector and returns the sorted union of their tags.
// Tags outside the enumeration are dropped.
func Detect(c *Context) []Tag {
	set := map[Tag]bool{}
	for _, d := range registry {
		for _, t := range d.Run(c) {
			if t.Valid() {
				set[t] = true
			}
		}
	}
	return sorted(set)
}

// Filter applies the priority rule: mate patterns hide tactics and strategy,
// tactics hide strategy and other tags.
func Filter(tags []Tag) []Tag {
	var hasMate, hasTactic bool
	for _, t := range tags {
		switch t.Category() {
		case CategoryMate:
			hasMate = true
		case CategoryTactic:
			hasTactic = true
		}
	}
	keep := map[Category]bool{CategoryPhase: true, CategoryEndgame: true, CategorySpecial: true}
	switch {
	case hasMate:
		keep[CategoryMate] = true
	case hasTactic:
		keep[CategoryTactic] = true
	default:
		keep[CategoryStrategy] = true
		keep[CategoryOther] = true
	}
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		if keep[t.Category()] {
			out = append(out, t)
		}
	}
	return out
}

// Run detects and filters.
func Run(c *Context) []Tag {
	return Filter(Detect(c))
}

// Without returns tags minus t.
func Without(tags []Tag, t Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, x := range tags {
		if x != t {
			out = append(out, x)
		}
	}
	return out
}

func sorted(set map[Tag]bool) []Tag {
	out := make([]Tag, 0, len(set))
	for t := range set {
		out = append(out, t)
	}
	slices.Sort(out)
	return out
}
