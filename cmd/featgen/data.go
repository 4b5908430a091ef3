package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"featgen/internal/medals"
	"featgen/internal/report"
)

func init() {
	rootCmd.AddCommand(downloadCmd, medalsCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download the configured dataset",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		res, err := svc.Download(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "saved %s (%d bytes, %s)\n", res.Path, res.Bytes, res.MIME)
		return nil
	},
}

var medalsCmd = &cobra.Command{
	Use:   "medals",
	Short: "Run the Summer Olympic medal analysis",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		r, err := svc.Medals()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		section(out, "Editions")
		editionRows := func(es []medals.Edition) [][]string {
			return lo.Map(es, func(e medals.Edition, _ int) []string {
				return []string{strconv.Itoa(e.Year), strconv.Itoa(e.GrandTotal), e.City, e.Country}
			})
		}
		editionHeader := []string{"Edition", "Grand Total", "City", "Country"}
		report.Render(out, editionHeader, editionRows(headOf(r.Editions)))
		if headRows > 0 {
			report.Render(out, editionHeader, editionRows(tailOf(r.Editions)))
		}
		section(out, "IOC country codes")
		codeRows := func(cs []medals.CountryCode) [][]string {
			return lo.Map(cs, func(c medals.CountryCode, _ int) []string { return []string{c.Country, c.NOC} })
		}
		report.Render(out, []string{"Country", "NOC"}, codeRows(headOf(r.Codes)))
		if headRows > 0 {
			report.Render(out, []string{"Country", "NOC"}, codeRows(tailOf(r.Codes)))
		}

		section(out, "Medals by country")
		report.Counts(out, "NOC", "medals", r.TopCountries)
		section(out, "Medal types by country")
		report.Pivot(out, "NOC", r.MedalTotals)

		section(out, "Unique event gender pairs")
		report.Render(out, []string{"Event_gender", "Gender"},
			lo.Map(r.EventGender, func(g medals.GenderPair, _ int) []string {
				return []string{g.EventGender, g.Gender}
			}))
		section(out, "Event gender counts")
		report.Render(out, []string{"Event_gender", "Gender", "medals"},
			lo.Map(r.GenderCounts, func(g medals.GenderCount, _ int) []string {
				return []string{g.EventGender, g.Gender, strconv.Itoa(g.N)}
			}))
		section(out, "Suspicious rows")
		report.Render(out, []string{"Edition", "Athlete", "NOC", "Sport", "Event_gender", "Gender"},
			lo.Map(r.Suspicious, func(m medals.Medal, _ int) []string {
				return []string{strconv.Itoa(m.Edition), m.Athlete, m.NOC, m.Sport, m.EventGender, m.Gender}
			}))

		section(out, "Distinct sports by country")
		report.Counts(out, "NOC", "sports", r.Sports)
		section(out, "Cold War distinct sports")
		report.Counts(out, "NOC", "sports", r.ColdWarSports)
		section(out, "Cold War editions won")
		report.Counts(out, "NOC", "editions", r.ColdWarLeader)
		section(out, "USA medals by edition")
		report.Pivot(out, "Edition", r.USAByEdition)

		// the Edition×NOC tables are restricted to the ranked countries
		nocs := lo.Map(r.TopCountries, func(c medals.Count, _ int) string { return c.Key })
		wide := func(title string, p *medals.Pivot) {
			p = p.Select(p.Rows, nocs)
			section(out, title)
			report.Pivot(out, "Edition", p.Head(headRows))
			if headRows > 0 {
				report.Pivot(out, "Edition", p.Tail(headRows))
			}
		}
		wide("Medals by edition and country", r.EditionCounts)
		wide("Medal fractions", r.Fractions)
		wide("Expanding mean fraction change %", r.Change)

		section(out, "Hosts")
		report.Render(out, []string{"Edition", "NOC"},
			lo.Map(r.Hosts, func(h medals.Host, _ int) []string {
				return []string{strconv.Itoa(h.Edition), h.NOC}
			}))
		section(out, "Host country influence")
		report.Render(out, []string{"Edition", "NOC", "Change %"},
			lo.Map(r.Influence, func(h medals.HostChange, _ int) []string {
				return []string{strconv.Itoa(h.Edition), h.NOC, report.FormatFloat(h.Change)}
			}))
		return nil
	},
}

// headOf and tailOf keep --head rows from either end; 0 keeps everything.
func headOf[T any](xs []T) []T {
	if headRows <= 0 {
		return xs
	}
	return lo.Slice(xs, 0, headRows)
}

func tailOf[T any](xs []T) []T {
	if headRows <= 0 {
		return xs
	}
	return lo.Slice(xs, len(xs)-headRows, len(xs))
}

func section(w io.Writer, title string) {
	fmt.Fprintf(w, "\n== %s ==\n", title)
}
