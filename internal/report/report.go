// Package report prints feature tables, pivots and rankings as text tables.
package report

import (
	"io"
	"math"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"

	"featgen/internal/domain"
	"featgen/internal/medals"
	"featgen/internal/tfidf"
)

// Render writes a header and rows as an aligned, borderless table.
func Render(w io.Writer, header []string, rows [][]string) {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	table.AppendBulk(rows)
	table.Render()
}

// FormatFloat prints v with up to six significant digits, or NaN.
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'g', 6, 64)
}

func formatFloats(vs []float64) []string {
	return lo.Map(vs, func(v float64, _ int) string { return FormatFloat(v) })
}

func head[T any](rows []T, n int) []T {
	if n > 0 && n < len(rows) {
		return rows[:n]
	}
	return rows
}

// Table prints the first n rows of a feature table, prefixed with the row
// number. n <= 0 prints every row.
func Table(w io.Writer, t domain.Table, n int) {
	rows := lo.Map(head(t.Rows, n), func(row []float64, i int) []string {
		return append([]string{strconv.Itoa(i)}, formatFloats(row)...)
	})
	Render(w, append([]string{""}, t.Columns...), rows)
}

// Vectors prints integer document vectors with optional column labels.
func Vectors(w io.Writer, columns []string, vectors [][]int, n int) {
	width := 0
	for _, v := range vectors {
		width = max(width, len(v))
	}
	header := []string{""}
	if len(columns) == width {
		header = append(header, columns...)
	} else {
		header = append(header, lo.Map(lo.Range(width), func(i, _ int) string { return strconv.Itoa(i) })...)
	}
	rows := lo.Map(head(vectors, n), func(v []int, i int) []string {
		cells := lo.Map(v, func(x, _ int) string { return strconv.Itoa(x) })
		return append([]string{strconv.Itoa(i)}, cells...)
	})
	Render(w, header, rows)
}

// Counts prints a two-column ranking.
func Counts(w io.Writer, keyHeader, countHeader string, counts []medals.Count) {
	rows := lo.Map(counts, func(c medals.Count, _ int) []string {
		return []string{c.Key, strconv.Itoa(c.N)}
	})
	Render(w, []string{keyHeader, countHeader}, rows)
}

// Pivot prints a pivot with its row labels in the first column.
func Pivot(w io.Writer, rowHeader string, p *medals.Pivot) {
	rows := lo.Map(p.Cells, func(cells []float64, i int) []string {
		return append([]string{p.Rows[i]}, formatFloats(cells)...)
	})
	Render(w, append([]string{rowHeader}, p.Columns...), rows)
}

// Terms prints ranked terms with their scores.
func Terms(w io.Writer, terms []tfidf.TermScore) {
	rows := lo.Map(terms, func(t tfidf.TermScore, _ int) []string {
		return []string{t.Term, FormatFloat(t.Score)}
	})
	Render(w, []string{"term", "score"}, rows)
}

// Neighbors prints nearest words with their cosine similarity.
func Neighbors(w io.Writer, neighbors []domain.Neighbor) {
	rows := lo.Map(neighbors, func(n domain.Neighbor, _ int) []string {
		return []string{n.Word, FormatFloat(n.Score)}
	})
	Render(w, []string{"word", "similarity"}, rows)
}
