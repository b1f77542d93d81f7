// Package report folds per-game mistakes into global and per-opening
// statistics.
package report

import (
	"cmp"
	"slices"
	"strings"
	"unicode"

	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/themes"
	"golang.org/x/exp/maps"
)

const (
	minTop     = 5
	maxTop     = 15
	defaultTop = 10
)

// ClampTop bounds the number of frequent mistakes kept per opening.
func ClampTop(n int) int {
	switch {
	case n <= 0:
		return defaultTop
	case n < minTop:
		return minTop
	case n > maxTop:
		return maxTop
	}
	return n
}

// Build aggregates game results into a report.
func Build(player string, games []models.GameAnalysis, topN int) *models.Report {
	r := &models.Report{
		Player:      player,
		Mistakes:    []models.Mistake{},
		KindCounts:  map[models.Kind]int{},
		ThemeCounts: map[models.SummaryTheme]int{},
		Schemes:     []models.SchemeCount{},
		Openings:    []models.OpeningStat{},
		TotalGames:  len(games),
	}
	schemes := map[string]int{}
	for _, g := range games {
		if !g.Matched {
			continue
		}
		r.MatchedGames++
		r.AnalyzedPlies += g.Plies
		for _, m := range g.Mistakes {
			r.Mistakes = append(r.Mistakes, m)
			r.KindCounts[m.Kind]++
			r.ThemeCounts[m.Theme]++
			schemes[Signature(m.Tags)]++
		}
	}
	SortMistakes(r.Mistakes)

	for sig, n := range schemes {
		r.Schemes = append(r.Schemes, models.SchemeCount{Signature: sig, Count: n})
	}
	slices.SortFunc(r.Schemes, func(a, b models.SchemeCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Signature, b.Signature)
	})

	r.Openings = openings(games, ClampTop(topN))
	return r
}

// SortMistakes orders by absolute loss descending, then game and ply.
func SortMistakes(ms []models.Mistake) {
	slices.SortStableFunc(ms, func(a, b models.Mistake) int {
		if c := cmp.Compare(b.Loss(), a.Loss()); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Game.Index, b.Game.Index); c != 0 {
			return c
		}
		return cmp.Compare(a.Ply, b.Ply)
	})
}

type bucketKey struct {
	color string
	key   string
}

type freqKey struct {
	ply  int
	san  string
	kind models.Kind
}

type freq struct {
	count int
	loss  int
}

type bucket struct {
	key    bucketKey
	ecos   map[string]bool
	names  map[string]bool
	games  map[int]bool
	plies  int
	kinds  map[models.Kind]int
	tags   map[themes.Tag]int
	themes map[models.SummaryTheme]int
	freqs  map[freqKey]*freq
}

func newBucket(k bucketKey) *bucket {
	return &bucket{
		key:    k,
		ecos:   map[string]bool{},
		names:  map[string]bool{},
		games:  map[int]bool{},
		kinds:  map[models.Kind]int{},
		tags:   map[themes.Tag]int{},
		themes: map[models.SummaryTheme]int{},
		freqs:  map[freqKey]*freq{},
	}
}

func openings(games []models.GameAnalysis, top int) []models.OpeningStat {
	buckets := map[bucketKey]*bucket{}
	for _, g := range games {
		if !g.Matched {
			continue
		}
		k := bucketKey{color: g.Color, key: NormalizeOpening(g.Game.Opening)}
		b, ok := buckets[k]
		if !ok {
			b = newBucket(k)
			buckets[k] = b
		}
		if g.Game.ECO != "" {
			b.ecos[g.Game.ECO] = true
		}
		if name := strings.TrimSpace(g.Game.Opening); name != "" {
			b.names[name] = true
		}
		if !b.games[g.Game.Index] {
			b.games[g.Game.Index] = true
			b.plies += g.Plies
		}
		for _, m := range g.Mistakes {
			b.kinds[m.Kind]++
			b.themes[m.Theme]++
			for _, t := range m.Tags {
				b.tags[t]++
			}
			fk := freqKey{ply: m.Ply, san: m.PlayedSAN, kind: m.Kind}
			f, ok := b.freqs[fk]
			if !ok {
				f = &freq{}
				b.freqs[fk] = f
			}
			f.count++
			f.loss += m.Loss()
		}
	}

	out := make([]models.OpeningStat, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, b.stat(top))
	}
	slices.SortFunc(out, func(a, b models.OpeningStat) int {
		if c := cmp.Compare(b.Games, a.Games); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Color, b.Color); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

func (b *bucket) stat(top int) models.OpeningStat {
	s := models.OpeningStat{
		Color:         b.key.color,
		Key:           b.key.key,
		Name:          displayName(b.names),
		Games:         len(b.games),
		PliesAnalyzed: b.plies,
		Kinds:         maps.Clone(b.kinds),
		Tags:          maps.Clone(b.tags),
		Themes:        maps.Clone(b.themes),
		TopMistakes:   []models.FrequentMistake{},
	}
	if len(b.ecos) == 1 {
		for eco := range b.ecos {
			s.ECO = eco
		}
	}
	for k, f := range b.freqs {
		s.TopMistakes = append(s.TopMistakes, models.FrequentMistake{
			Ply:       k.ply,
			SAN:       k.san,
			Kind:      k.kind,
			Count:     f.count,
			AvgLossCP: float64(f.loss) / float64(f.count),
		})
	}
	slices.SortFunc(s.TopMistakes, func(x, y models.FrequentMistake) int {
		if c := cmp.Compare(y.Count, x.Count); c != 0 {
			return c
		}
		if c := cmp.Compare(y.AvgLossCP, x.AvgLossCP); c != 0 {
			return c
		}
		if c := cmp.Compare(x.Ply, y.Ply); c != 0 {
			return c
		}
		if c := cmp.Compare(x.SAN, y.SAN); c != 0 {
			return c
		}
		return cmp.Compare(x.Kind, y.Kind)
	})
	if len(s.TopMistakes) > top {
		s.TopMistakes = s.TopMistakes[:top]
	}
	return s
}

// displayName prefers a capitalised candidate, then the longer one, then the
// lexicographically smaller.
func displayName(names map[string]bool) string {
	best := ""
	for n := range names {
		if best == "" || betterName(n, best) {
			best = n
		}
	}
	if best == "" {
		return "Unknown"
	}
	return best
}

func betterName(a, b string) bool {
	ca, cb := capitalised(a), capitalised(b)
	if ca != cb {
		return ca
	}
	if len(a) != len(b) {
		return len(a) > len(b)
	}
	return a < b
}

func capitalised(s string) bool {
	for _, r := range s {
		return unicode.IsUpper(r)
	}
	return false
}
