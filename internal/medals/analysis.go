package medals

import (
	"cmp"
	"math"
	"slices"
	"strconv"

	"github.com/samber/lo"
)

// Cold War window and rivals.
const (
	ColdWarStart = 1952
	ColdWarEnd   = 1988
)

// ColdWarRivals are the NOC codes compared over the Cold War editions.
var ColdWarRivals = []string{"USA", "URS"}

// Grouping keys for PivotCount.
func ByNOC(m Medal) string     { return m.NOC }
func ByMedal(m Medal) string   { return m.Medal }
func ByEdition(m Medal) string { return strconv.Itoa(m.Edition) }

// Count is a label with its number of occurrences.
type Count struct {
	Key string
	N   int
}

// CountBy counts medals per key, most frequent first. Ties are ordered by key.
func CountBy(medals []Medal, key func(Medal) string) []Count {
	return sortCounts(lo.CountValuesBy(medals, key))
}

// CountByCountry counts medals per NOC.
func CountByCountry(medals []Medal) []Count {
	return CountBy(medals, ByNOC)
}

// TopCounts returns at most n leading counts. n <= 0 returns them all.
func TopCounts(counts []Count, n int) []Count {
	if n <= 0 || n >= len(counts) {
		return counts
	}
	return counts[:n]
}

func sortCounts(m map[string]int) []Count {
	out := lo.MapToSlice(m, func(k string, n int) Count { return Count{Key: k, N: n} })
	slices.SortFunc(out, func(a, b Count) int {
		if c := cmp.Compare(b.N, a.N); c != 0 {
			return c
		}
		return cmp.Compare(a.Key, b.Key)
	})
	return out
}

// GenderPair is an (Event_gender, Gender) combination.
type GenderPair struct {
	EventGender string
	Gender      string
}

// GenderCount is the number of medals awarded for a GenderPair.
type GenderCount struct {
	GenderPair
	N int
}

func pairOf(m Medal) GenderPair { return GenderPair{EventGender: m.EventGender, Gender: m.Gender} }

// UniqueEventGender lists the distinct pairs in first-seen order.
func UniqueEventGender(medals []Medal) []GenderPair {
	return lo.Uniq(lo.Map(medals, func(m Medal, _ int) GenderPair { return pairOf(m) }))
}

// CountByEventGender counts medals per pair, ordered by pair.
func CountByEventGender(medals []Medal) []GenderCount {
	counts := lo.CountValuesBy(medals, pairOf)
	out := lo.MapToSlice(counts, func(p GenderPair, n int) GenderCount { return GenderCount{GenderPair: p, N: n} })
	slices.SortFunc(out, func(a, b GenderCount) int {
		if c := cmp.Compare(a.EventGender, b.EventGender); c != 0 {
			return c
		}
		return cmp.Compare(a.Gender, b.Gender)
	})
	return out
}

// SuspiciousRows returns medals from women's events awarded to men.
func SuspiciousRows(medals []Medal) []Medal {
	return lo.Filter(medals, func(m Medal, _ int) bool {
		return m.EventGender == "W" && m.Gender == "Men"
	})
}

// DistinctSports counts the distinct sports each NOC medalled in, most first.
// Medals without a sport are ignored.
func DistinctSports(medals []Medal) []Count {
	groups := lo.GroupBy(medals, ByNOC)
	counts := lo.MapValues(groups, func(ms []Medal, _ string) int {
		sports := lo.Uniq(lo.FilterMap(ms, func(m Medal, _ int) (string, bool) {
			return m.Sport, m.Sport != ""
		}))
		return len(sports)
	})
	return sortCounts(counts)
}

// ColdWarMedals keeps the rivals' medals from the Cold War editions.
func ColdWarMedals(medals []Medal) []Medal {
	return lo.Filter(medals, func(m Medal, _ int) bool {
		return m.Edition >= ColdWarStart && m.Edition <= ColdWarEnd && lo.Contains(ColdWarRivals, m.NOC)
	})
}

// ColdWarSports counts distinct sports for the rivals over the Cold War.
func ColdWarSports(medals []Medal) []Count {
	return DistinctSports(ColdWarMedals(medals))
}

// MostMedalsByEdition finds, for each edition in [from, to], which of nocs won
// the most medals, and counts how often each NOC came out on top. The first
// listed NOC wins ties; editions where none of them medalled are skipped.
func MostMedalsByEdition(medals []Medal, from, to int, nocs []string) []Count {
	p := PivotCount(medals, ByEdition, ByNOC)
	window := lo.Filter(p.Rows, func(row string, _ int) bool {
		year, err := strconv.Atoi(row)
		return err == nil && year >= from && year <= to
	})
	sel := p.Select(window, nocs)
	winners := map[string]int{}
	for _, cells := range sel.Cells {
		best, bestN := -1, math.Inf(-1)
		for j, v := range cells {
			if !math.IsNaN(v) && v > bestN {
				best, bestN = j, v
			}
		}
		if best >= 0 {
			winners[sel.Columns[best]]++
		}
	}
	return sortCounts(winners)
}

// EditionMedalTable pivots one NOC's medals by edition and medal type.
func EditionMedalTable(medals []Medal, noc string) *Pivot {
	own := lo.Filter(medals, func(m Medal, _ int) bool { return m.NOC == noc })
	return PivotCount(own, ByEdition, ByMedal)
}

// Fractions divides each edition row of an Edition×NOC pivot by that
// edition's grand total. Rows without a positive total become NaN.
func Fractions(counts *Pivot, editions []Edition) *Pivot {
	totals := lo.SliceToMap(editions, func(e Edition) (string, int) { return strconv.Itoa(e.Year), e.GrandTotal })
	out := counts.clone()
	for i, row := range out.Rows {
		total := totals[row]
		for j := range out.Cells[i] {
			if total <= 0 {
				out.Cells[i][j] = math.NaN()
				continue
			}
			out.Cells[i][j] /= float64(total)
		}
	}
	return out
}

// ExpandingMean replaces every cell with the mean of the observed values in
// its column up to and including that row.
func ExpandingMean(p *Pivot) *Pivot {
	out := p.clone()
	for j := range out.Columns {
		sum, n := 0.0, 0
		for i := range out.Rows {
			if v := p.Cells[i][j]; !math.IsNaN(v) {
				sum += v
				n++
			}
			if n == 0 {
				out.Cells[i][j] = math.NaN()
				continue
			}
			out.Cells[i][j] = sum / float64(n)
		}
	}
	return out
}

// PctChange returns the percentage change of each cell over the previous
// row. The first row, and any cell whose previous value is missing or zero,
// is NaN.
func PctChange(p *Pivot) *Pivot {
	out := newPivot(slices.Clone(p.Rows), slices.Clone(p.Columns))
	for i := 1; i < len(p.Rows); i++ {
		for j := range p.Columns {
			prev, cur := p.Cells[i-1][j], p.Cells[i][j]
			if math.IsNaN(prev) || math.IsNaN(cur) || prev == 0 {
				continue
			}
			out.Cells[i][j] = (cur/prev - 1) * 100
		}
	}
	return out
}

// Host is the NOC that hosted an edition.
type Host struct {
	Edition int
	NOC     string
}

// Hosts joins editions to country codes by country name, keeping every
// edition. It returns the hosts after applying fixes, and the editions whose
// country had no code before the fixes were applied.
func Hosts(editions []Edition, codes []CountryCode, fixes map[int]string) ([]Host, []int) {
	byCountry := map[string]string{}
	for _, c := range codes {
		if _, seen := byCountry[c.Country]; !seen {
			byCountry[c.Country] = c.NOC
		}
	}
	var missing []int
	hosts := make([]Host, len(editions))
	for i, e := range editions {
		noc := byCountry[e.Country]
		if noc == "" {
			missing = append(missing, e.Year)
		}
		if fix, ok := fixes[e.Year]; ok {
			noc = fix
		}
		hosts[i] = Host{Edition: e.Year, NOC: noc}
	}
	return hosts, missing
}

// HostChange is the change in a host's medal share for the edition it hosted.
type HostChange struct {
	Edition int
	NOC     string
	Change  float64
}

// Influence looks up each host's change in an Edition×NOC pivot. Hosts whose
// edition or NOC is absent from the pivot are dropped. The result is ordered
// by edition.
func Influence(change *Pivot, hosts []Host) []HostChange {
	var out []HostChange
	for _, h := range hosts {
		r, c := change.rowIndex(strconv.Itoa(h.Edition)), change.columnIndex(h.NOC)
		if r < 0 || c < 0 {
			continue
		}
		out = append(out, HostChange{Edition: h.Edition, NOC: h.NOC, Change: change.Cells[r][c]})
	}
	slices.SortStableFunc(out, func(a, b HostChange) int { return cmp.Compare(a.Edition, b.Edition) })
	return out
}
