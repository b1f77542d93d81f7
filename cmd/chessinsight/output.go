package main

import (
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/vytor/chessinsight/internal/models"
	"github.com/vytor/chessinsight/internal/report"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

type counted struct {
	name  string
	count int
}

// byCount orders a histogram by count, then name.
func byCount[K interface {
	comparable
	fmt.Stringer
}](m map[K]int) []counted {
	out := make([]counted, 0, len(m))
	for k, n := range m {
		out = append(out, counted{k.String(), n})
	}
	slices.SortFunc(out, func(a, b counted) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return strings.Compare(a.name, b.name)
	})
	return out
}

func moveLabel(moveNumber int, mover, san string) string {
	if mover == "black" {
		return fmt.Sprintf("%d... %s", moveNumber, san)
	}
	return fmt.Sprintf("%d. %s", moveNumber, san)
}

func centipawns(v *int) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf("%dcp", *v)
}

func printReport(w io.Writer, r *models.Report) {
	fmt.Fprintf(w, "Player:   %s\n", r.Player)
	fmt.Fprintf(w, "Games:    %d matched of %d\n", r.MatchedGames, r.TotalGames)
	fmt.Fprintf(w, "Plies:    %d analysed\n", r.AnalyzedPlies)
	fmt.Fprintf(w, "Mistakes: %d\n", len(r.Mistakes))
	if len(r.Mistakes) == 0 {
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nKinds:")
	for _, c := range byCount(r.KindCounts) {
		fmt.Fprintf(tw, "  %s\t%d\n", c.name, c.count)
	}
	fmt.Fprintln(tw, "\nThemes:")
	for _, c := range byCount(r.ThemeCounts) {
		fmt.Fprintf(tw, "  %s\t%d\n", c.name, c.count)
	}
	if len(r.Schemes) > 0 {
		fmt.Fprintln(tw, "\nTag schemes:")
		for _, s := range r.Schemes {
			fmt.Fprintf(tw, "  %s\t%d\n", s.Signature, s.Count)
		}
	}
	_ = tw.Flush()

	if len(r.Openings) > 0 {
		fmt.Fprintln(w, "\nOpenings:")
		for _, o := range r.Openings {
			name := o.Name
			if o.ECO != "" {
				name = fmt.Sprintf("%s (%s)", name, o.ECO)
			}
			fmt.Fprintf(w, "  %s as %s: %d games, %d plies\n", name, o.Color, o.Games, o.PliesAnalyzed)
			for _, f := range o.TopMistakes {
				fmt.Fprintf(w, "    ply %-3d %-8s %-22s x%d  avg %.0fcp\n", f.Ply, f.SAN, f.Kind, f.Count, f.AvgLossCP)
			}
		}
	}

	fmt.Fprintln(w, "\nMistakes:")
	tw = tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "  GAME\tMOVE\tKIND\tSEVERITY\tLOSS\tTHEME\tTAGS\tBETTER")
	for _, m := range r.Mistakes {
		better := ""
		if a := m.BestAlternative; a != nil {
			better = a.Line
			if better == "" {
				better = a.SAN
			}
		}
		fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Game.Index, moveLabel(m.MoveNumber, m.Mover, m.PlayedSAN), m.Kind, m.Severity,
			centipawns(m.CPLossAbs), m.Theme, report.Signature(m.Tags), better)
	}
	_ = tw.Flush()
}

func printStructures(w io.Writer, r *models.StructureReport) {
	fmt.Fprintf(w, "Player: %s as %s, after move %d\n", r.Player, r.Color, r.MoveNumber)
	fmt.Fprintf(w, "Games:  %d matched of %d\n", r.MatchedGames, r.TotalGames)
	if len(r.Structures) == 0 {
		fmt.Fprintln(w, "No game reached that move.")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nPAWNS\tGAMES\t+\t=\t-\tWIN RATE")
	for _, s := range r.Structures {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\t%d\t%.0f%%\n", s.Signature, s.Count, s.Wins, s.Draws, s.Losses, s.WinRate*100)
	}
	_ = tw.Flush()
}
