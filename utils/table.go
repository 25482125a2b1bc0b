// Copyright 2024 Fantom Foundation
// This file is part of Aida Testing Infrastructure for Sonic
//
// Aida is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Aida is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Aida. If not, see <http://www.gnu.org/licenses/>.

package utils

import (
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Aida-Markov/stochastic"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/contexttree"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/estimator"
	"github.com/Fantom-foundation/Aida-Markov/stochastic/lrt"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// newTable creates a bordered table writing into buf.
func newTable(buf *strings.Builder, header []string) *tablewriter.Table {
	tbl := tablewriter.NewWriter(buf)
	tbl.SetHeader(header)
	tbl.SetBorder(true)
	tbl.SetAutoFormatHeaders(false)
	tbl.SetAlignment(tablewriter.ALIGN_RIGHT)
	return tbl
}

// TreeTable renders the laws of a context tree, one context per row.
func TreeTable(tree *contexttree.Tree) string {
	var buf strings.Builder
	a := tree.Alphabet()
	tbl := newTable(&buf, append([]string{"Context"}, a.Labels()...))
	_ = tree.Walk(func(ctx stochastic.Context, law stochastic.Law) error {
		row := []string{ctx.Format(a)}
		for _, p := range law {
			row = append(row, fmt.Sprintf("%.4f", p))
		}
		tbl.Append(row)
		return nil
	})
	tbl.Render()
	return buf.String()
}

// CountsTable renders the transition frequencies N(c,a) and totals N(c).
func CountsTable(counts *estimator.Counts) string {
	var buf strings.Builder
	a := counts.Alphabet()
	m := message.NewPrinter(language.English)
	header := append([]string{"Context"}, a.Labels()...)
	tbl := newTable(&buf, append(header, "Total"))
	for _, ctx := range counts.Contexts() {
		row := []string{ctx.Format(a)}
		for _, f := range counts.Row(ctx) {
			row = append(row, m.Sprintf("%d", f))
		}
		tbl.Append(append(row, m.Sprintf("%d", counts.Total(ctx))))
	}
	tbl.Render()
	m.Fprintf(&buf, "Windows: %d, free parameters: %d\n", counts.Samples(), counts.FreeParameters())
	return buf.String()
}

// TestTable renders the outcome of likelihood-ratio tests. Rows rejecting
// the smaller order at level alpha are highlighted.
func TestTable(results []*lrt.Result, alpha float64) string {
	var buf strings.Builder
	reject := color.New(color.FgRed, color.Bold).SprintFunc()
	tbl := newTable(&buf, []string{"k", "k+1", "l(k)", "l(k+1)", "LR", "df", "Convention", "p-value", "Decision"})
	for _, r := range results {
		decision := "keep k"
		if r.Significant(alpha) {
			decision = reject("reject k")
		}
		row := []string{
			fmt.Sprintf("%d", r.Order),
			fmt.Sprintf("%d", r.AltOrder),
			fmt.Sprintf("%.4f", r.LogLikelihood),
			fmt.Sprintf("%.4f", r.AltLogLikelihood),
			fmt.Sprintf("%.4f", r.LR),
			fmt.Sprintf("%g", r.DF),
			r.Convention.String(),
			fmt.Sprintf("%.4g", r.PValue),
			decision,
		}
		tbl.Append(row)
	}
	tbl.Render()
	for _, r := range results {
		if r.Note != "" {
			fmt.Fprintf(&buf, "k=%d: %s\n", r.Order, r.Note)
		}
	}
	return buf.String()
}

// DistributionTable renders a probability law over labelled states.
func DistributionTable(title string, labels []string, law []float64) string {
	var buf strings.Builder
	tbl := newTable(&buf, []string{title, "Probability"})
	for i, label := range labels {
		tbl.Append([]string{label, fmt.Sprintf("%.6f", law[i])})
	}
	tbl.Render()
	return buf.String()
}

// LawTable renders one law per labelled row.
func LawTable(title string, rowLabels []string, colLabels []string, rows [][]float64) string {
	var buf strings.Builder
	tbl := newTable(&buf, append([]string{title}, colLabels...))
	for i, label := range rowLabels {
		row := []string{label}
		for _, p := range rows[i] {
			row = append(row, fmt.Sprintf("%.6f", p))
		}
		tbl.Append(row)
	}
	tbl.Render()
	return buf.String()
}
