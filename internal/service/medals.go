package service

import (
	"fmt"

	"go.uber.org/zap"

	"featgen/internal/medals"
)

// MedalReport collects every Olympic medal analysis.
type MedalReport struct {
	Editions []medals.Edition
	Codes    []medals.CountryCode
	Medals   []medals.Medal

	TopCountries  []medals.Count
	MedalTotals   *medals.Pivot
	EventGender   []medals.GenderPair
	GenderCounts  []medals.GenderCount
	Suspicious    []medals.Medal
	Sports        []medals.Count
	ColdWarSports []medals.Count
	ColdWarLeader []medals.Count
	USAByEdition  *medals.Pivot

	EditionCounts *medals.Pivot
	Fractions     *medals.Pivot
	Change        *medals.Pivot
	Hosts         []medals.Host
	MissingHosts  []int
	Influence     []medals.HostChange
}

// Medals loads the configured Olympic files and runs the analyses. Medals
// come from MedalsPath when set, otherwise from one summer_YYYY.csv per
// edition in MedalsDir.
func (s *FeatureService) Medals() (*MedalReport, error) {
	mc := s.cfg.Medals
	editions, err := medals.LoadEditions(mc.EditionsPath)
	if err != nil {
		return nil, fmt.Errorf("load editions: %w", err)
	}
	codes, err := medals.LoadCountryCodes(mc.CountryCodesPath)
	if err != nil {
		return nil, fmt.Errorf("load country codes: %w", err)
	}
	var ms []medals.Medal
	if mc.MedalsPath != "" {
		ms, err = medals.LoadMedals(mc.MedalsPath)
	} else {
		ms, err = medals.LoadEditionMedals(mc.MedalsDir, editions)
	}
	if err != nil {
		return nil, fmt.Errorf("load medals: %w", err)
	}
	s.log.Info("medals loaded", zap.Int("editions", len(editions)), zap.Int("medals", len(ms)))

	r := &MedalReport{Editions: editions, Codes: codes, Medals: ms}
	r.TopCountries = medals.TopCounts(medals.CountByCountry(ms), mc.Top)
	r.MedalTotals = medals.PivotCount(ms, medals.ByNOC, medals.ByMedal).SortByTotal().Head(mc.Top)
	r.EventGender = medals.UniqueEventGender(ms)
	r.GenderCounts = medals.CountByEventGender(ms)
	r.Suspicious = medals.SuspiciousRows(ms)
	r.Sports = medals.TopCounts(medals.DistinctSports(ms), mc.Top)
	r.ColdWarSports = medals.ColdWarSports(ms)
	r.ColdWarLeader = medals.MostMedalsByEdition(ms, medals.ColdWarStart, medals.ColdWarEnd, medals.ColdWarRivals)
	r.USAByEdition = medals.EditionMedalTable(ms, "USA")

	r.EditionCounts = medals.PivotCount(ms, medals.ByEdition, medals.ByNOC)
	r.Fractions = medals.Fractions(r.EditionCounts, editions)
	r.Change = medals.PctChange(medals.ExpandingMean(r.Fractions))
	r.Hosts, r.MissingHosts = medals.Hosts(editions, codes, mc.HostFixes)
	if len(r.MissingHosts) > 0 {
		s.log.Info("host countries without an IOC code", zap.Ints("editions", r.MissingHosts))
	}
	r.Influence = medals.Influence(r.Change, r.Hosts)
	return r, nil
}
