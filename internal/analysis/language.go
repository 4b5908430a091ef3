package analysis

import (
	"sort"

	"github.com/abadojack/whatlanggo"
)

// LanguageShare is the number of documents detected in one language.
type LanguageShare struct {
	Code  string
	Count int
}

// LanguageReport summarizes detected document languages, most frequent first.
// Documents whose detection is unreliable are counted as "und".
type LanguageReport struct {
	Total  int
	Shares []LanguageShare
}

// EnglishRatio is the fraction of documents reliably detected as English.
func (r LanguageReport) EnglishRatio() float64 {
	if r.Total == 0 {
		return 0
	}
	for _, s := range r.Shares {
		if s.Code == "en" {
			return float64(s.Count) / float64(r.Total)
		}
	}
	return 0
}

// DetectLanguages runs language identification over every text.
func DetectLanguages(texts []string) LanguageReport {
	counts := make(map[string]int)
	for _, t := range texts {
		info := whatlanggo.Detect(t)
		code := "und"
		if info.IsReliable() {
			code = info.Lang.Iso6391()
		}
		counts[code]++
	}
	shares := make([]LanguageShare, 0, len(counts))
	for code, n := range counts {
		shares = append(shares, LanguageShare{Code: code, Count: n})
	}
	sort.Slice(shares, func(i, j int) bool {
		if shares[i].Count != shares[j].Count {
			return shares[i].Count > shares[j].Count
		}
		return shares[i].Code < shares[j].Code
	})
	return LanguageReport{Total: len(texts), Shares: shares}
}
