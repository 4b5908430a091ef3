// Package medals analyses Summer Olympic medal tables: counts per country,
// pivots by edition, Cold War comparisons and host-country influence.
package medals

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"featgen/internal/dataset"
	"featgen/internal/domain"
)

// Medal is one medal awarded to one athlete.
type Medal struct {
	Athlete     string
	NOC         string
	Medal       string
	Edition     int
	Sport       string
	EventGender string
	Gender      string
}

// Edition is one Summer Games.
type Edition struct {
	Year       int
	GrandTotal int
	City       string
	Country    string
}

// CountryCode maps a country name to its IOC code.
type CountryCode struct {
	Country string
	NOC     string
}

// LoadEditions reads the editions TSV (Edition, Grand Total, City, Country).
func LoadEditions(path string) ([]Edition, error) {
	f, err := dataset.ReadFrame(path)
	if err != nil {
		return nil, err
	}
	if err := f.Require("Edition", "Grand Total", "City", "Country"); err != nil {
		return nil, err
	}
	ed, total, city, country := f.Index("Edition"), f.Index("Grand Total"), f.Index("City"), f.Index("Country")
	out := make([]Edition, 0, len(f.Records))
	for i, r := range f.Records {
		year, err := atoi(path, i, "Edition", r[ed])
		if err != nil {
			return nil, err
		}
		gt, err := atoi(path, i, "Grand Total", r[total])
		if err != nil {
			return nil, err
		}
		out = append(out, Edition{Year: year, GrandTotal: gt, City: r[city], Country: r[country]})
	}
	return out, nil
}

// LoadCountryCodes reads the IOC country codes CSV (Country, NOC).
func LoadCountryCodes(path string) ([]CountryCode, error) {
	f, err := dataset.ReadFrame(path)
	if err != nil {
		return nil, err
	}
	if err := f.Require("Country", "NOC"); err != nil {
		return nil, err
	}
	country, noc := f.Index("Country"), f.Index("NOC")
	out := make([]CountryCode, len(f.Records))
	for i, r := range f.Records {
		out[i] = CountryCode{Country: r[country], NOC: r[noc]}
	}
	return out, nil
}

// LoadMedals reads a medal file carrying an Edition column.
func LoadMedals(path string) ([]Medal, error) {
	f, err := dataset.ReadFrame(path)
	if err != nil {
		return nil, err
	}
	if err := f.Require("Edition"); err != nil {
		return nil, err
	}
	return medalsFromFrame(f, 0)
}

// LoadEditionMedals reads summer_YYYY.csv for every edition from dir and
// concatenates them, stamping each medal with its edition year.
func LoadEditionMedals(dir string, editions []Edition) ([]Medal, error) {
	var all []Medal
	for _, e := range editions {
		path := filepath.Join(dir, fmt.Sprintf("summer_%d.csv", e.Year))
		f, err := dataset.ReadFrame(path)
		if err != nil {
			return nil, err
		}
		ms, err := medalsFromFrame(f, e.Year)
		if err != nil {
			return nil, err
		}
		all = append(all, ms...)
	}
	return all, nil
}

// medalsFromFrame converts records; a non-zero year overrides the Edition column.
func medalsFromFrame(f *dataset.Frame, year int) ([]Medal, error) {
	if err := f.Require("Athlete", "NOC", "Medal"); err != nil {
		return nil, err
	}
	athlete, noc, medal := f.Index("Athlete"), f.Index("NOC"), f.Index("Medal")
	edition, sport := f.Index("Edition"), f.Index("Sport")
	eventGender, gender := f.Index("Event_gender"), f.Index("Gender")
	opt := func(r []string, i int) string {
		if i < 0 {
			return ""
		}
		return r[i]
	}
	out := make([]Medal, len(f.Records))
	for i, r := range f.Records {
		m := Medal{
			Athlete:     r[athlete],
			NOC:         r[noc],
			Medal:       r[medal],
			Edition:     year,
			Sport:       opt(r, sport),
			EventGender: opt(r, eventGender),
			Gender:      opt(r, gender),
		}
		if year == 0 {
			y, err := atoi(f.Path, i, "Edition", r[edition])
			if err != nil {
				return nil, err
			}
			m.Edition = y
		}
		out[i] = m
	}
	return out, nil
}

// atoi parses record i of column; line numbers count the header.
func atoi(path string, record int, column, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, domain.NewParseError(path, record+2, "%s: %q is not an integer", column, value)
	}
	return n, nil
}
