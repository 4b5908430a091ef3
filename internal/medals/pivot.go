package medals

import (
	"math"
	"slices"
	"sort"

	"github.com/samber/lo"
)

// TotalsColumn is the column appended by WithTotals.
const TotalsColumn = "totals"

// Pivot is a labelled count matrix. Cells with no observation hold NaN.
type Pivot struct {
	Rows    []string
	Columns []string
	Cells   [][]float64
}

// PivotCount counts medals grouped by rowKey and colKey. Row and column
// labels are sorted ascending.
func PivotCount(medals []Medal, rowKey, colKey func(Medal) string) *Pivot {
	rows := lo.Uniq(lo.Map(medals, func(m Medal, _ int) string { return rowKey(m) }))
	cols := lo.Uniq(lo.Map(medals, func(m Medal, _ int) string { return colKey(m) }))
	slices.Sort(rows)
	slices.Sort(cols)

	p := newPivot(rows, cols)
	rowAt := indexOf(rows)
	colAt := indexOf(cols)
	for _, m := range medals {
		r, c := rowAt[rowKey(m)], colAt[colKey(m)]
		if math.IsNaN(p.Cells[r][c]) {
			p.Cells[r][c] = 0
		}
		p.Cells[r][c]++
	}
	return p
}

func newPivot(rows, cols []string) *Pivot {
	cells := make([][]float64, len(rows))
	for i := range cells {
		cells[i] = make([]float64, len(cols))
		for j := range cells[i] {
			cells[i][j] = math.NaN()
		}
	}
	return &Pivot{Rows: rows, Columns: cols, Cells: cells}
}

func indexOf(labels []string) map[string]int {
	out := make(map[string]int, len(labels))
	for i, l := range labels {
		out[l] = i
	}
	return out
}

func (p *Pivot) rowIndex(label string) int    { return slices.Index(p.Rows, label) }
func (p *Pivot) columnIndex(label string) int { return slices.Index(p.Columns, label) }

// Value returns the cell at (row, col). ok is false when either label is
// unknown or the cell holds no observation.
func (p *Pivot) Value(row, col string) (float64, bool) {
	r, c := p.rowIndex(row), p.columnIndex(col)
	if r < 0 || c < 0 {
		return 0, false
	}
	v := p.Cells[r][c]
	return v, !math.IsNaN(v)
}

// WithTotals returns a copy with a trailing totals column holding each
// row's sum over its observed cells.
func (p *Pivot) WithTotals() *Pivot {
	out := &Pivot{
		Rows:    slices.Clone(p.Rows),
		Columns: append(slices.Clone(p.Columns), TotalsColumn),
		Cells:   make([][]float64, len(p.Cells)),
	}
	for i, row := range p.Cells {
		sum := lo.SumBy(row, func(v float64) float64 {
			if math.IsNaN(v) {
				return 0
			}
			return v
		})
		out.Cells[i] = append(slices.Clone(row), sum)
	}
	return out
}

// SortBy returns a copy with rows ordered by the named column, descending.
// Missing values sort last; ties keep their current order.
func (p *Pivot) SortBy(column string) *Pivot {
	c := p.columnIndex(column)
	out := p.clone()
	if c < 0 {
		return out
	}
	order := lo.Range(len(p.Rows))
	sort.SliceStable(order, func(a, b int) bool {
		va, vb := p.Cells[order[a]][c], p.Cells[order[b]][c]
		if math.IsNaN(vb) {
			return !math.IsNaN(va)
		}
		return va > vb
	})
	for i, src := range order {
		out.Rows[i] = p.Rows[src]
		out.Cells[i] = slices.Clone(p.Cells[src])
	}
	return out
}

// SortByTotal appends the totals column and sorts by it.
func (p *Pivot) SortByTotal() *Pivot {
	return p.WithTotals().SortBy(TotalsColumn)
}

// Head returns a copy holding the first n rows. n <= 0 keeps every row.
func (p *Pivot) Head(n int) *Pivot {
	out := p.clone()
	if n > 0 && n < len(out.Rows) {
		out.Rows = out.Rows[:n]
		out.Cells = out.Cells[:n]
	}
	return out
}

// Tail returns a copy holding the last n rows. n <= 0 keeps every row.
func (p *Pivot) Tail(n int) *Pivot {
	out := p.clone()
	if k := len(out.Rows) - n; n > 0 && k > 0 {
		out.Rows = out.Rows[k:]
		out.Cells = out.Cells[k:]
	}
	return out
}

// Select returns a copy restricted to the given rows and columns, in the
// order given. Unknown labels produce NaN cells.
func (p *Pivot) Select(rows, cols []string) *Pivot {
	out := newPivot(slices.Clone(rows), slices.Clone(cols))
	for i, r := range rows {
		ri := p.rowIndex(r)
		if ri < 0 {
			continue
		}
		for j, c := range cols {
			if ci := p.columnIndex(c); ci >= 0 {
				out.Cells[i][j] = p.Cells[ri][ci]
			}
		}
	}
	return out
}

func (p *Pivot) clone() *Pivot {
	return &Pivot{
		Rows:    slices.Clone(p.Rows),
		Columns: slices.Clone(p.Columns),
		Cells:   lo.Map(p.Cells, func(row []float64, _ int) []float64 { return slices.Clone(row) }),
	}
}
