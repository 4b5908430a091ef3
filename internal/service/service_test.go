package service

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"featgen/internal/config"
	"featgen/internal/domain"
	"featgen/internal/embedding"
	"featgen/internal/medals"
	"featgen/internal/vectorstore/memory"
)

func newService(t *testing.T, mutate func(cfg *config.AppConfig)) *FeatureService {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}
	return New(cfg, zaptest.NewLogger(t))
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestEncode(t *testing.T) {
	path := writeFile(t, t.TempDir(), "docs.csv", "text\ncat dog\ndog dog\n")
	svc := newService(t, nil)

	tests := []struct {
		enc     Encoding
		columns []string
		want    [][]int
	}{
		{EncodingIndex, nil, [][]int{{1, 2}, {2, 2}}},
		{EncodingBinary, []string{"cat", "dog"}, [][]int{{1, 1}, {0, 1}}},
		{EncodingCount, []string{"cat", "dog"}, [][]int{{1, 1}, {0, 2}}},
	}
	for _, tt := range tests {
		t.Run(string(tt.enc), func(t *testing.T) {
			got, err := svc.Encode(path, tt.enc)
			require.NoError(t, err)
			require.Equal(t, tt.columns, got.Columns)
			require.Equal(t, tt.want, got.Vectors)
		})
	}

	_, err := svc.Encode(path, "hashing")
	require.Error(t, err)
}

func TestLoadTexts_MissingColumn(t *testing.T) {
	path := writeFile(t, t.TempDir(), "docs.csv", "review\nfine\n")
	_, err := newService(t, nil).LoadTexts(path)
	require.ErrorIs(t, err, domain.ErrMissingColumn)
}

func TestTFIDF(t *testing.T) {
	req := require.New(t)
	path := writeFile(t, t.TempDir(), "docs.csv", "text\nThe cats are running\ndogs running\n")
	svc := newService(t, func(cfg *config.AppConfig) { cfg.TFIDF.Normalizer = "none" })

	table, vec, err := svc.TFIDF(path)
	req.NoError(err)
	req.Equal([]string{"cats", "dogs", "running"}, table.Columns)
	req.Equal("tfidf", vec.Name())
	req.Equal(3, vec.Dimension())
	for _, row := range table.Rows {
		norm := 0.0
		for _, v := range row {
			norm += v * v
		}
		req.InDelta(1.0, math.Sqrt(norm), 1e-9)
	}
	req.Zero(table.Rows[0][1])

	weights, err := vec.Transform("dogs and birds")
	req.NoError(err)
	req.Equal([]float64{0, 1, 0}, weights)
}

func TestPlan(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	glove := writeFile(t, dir, "glove.txt", "cat 0.1 0.2\ndog 0.3 0.4\n")
	data := writeFile(t, dir, "reviews.csv",
		"text,sentiment\ncat dog,positive\ndog dog,negative\ncat bird,positive\ndog fish,negative\n")
	svc := newService(t, func(cfg *config.AppConfig) {
		cfg.Glove.Path = glove
		cfg.Glove.Dimension = 2
		cfg.Glove.MaxLen = 3
		cfg.Training.EmbeddingDim = 2
		cfg.Training.InputLength = 3
		cfg.Training.ValidationSplit = 0.5
	})

	set, err := svc.Plan(context.Background(), data)
	req.NoError(err)
	req.Equal(5, set.Plan.VocabSize)
	req.InDelta(0.5, set.Coverage, 1e-12)
	req.Equal([][]int{{0, 2, 1}, {0, 1, 1}}, set.Train.Inputs)
	req.Equal([]float32{1, 0}, set.Train.Labels)
	req.Len(set.Validation.Inputs, 2)
	req.Equal([]float32{0.3, 0.4}, set.Plan.Weights[1])
}

func TestPlan_MissingGlove(t *testing.T) {
	dir := t.TempDir()
	data := writeFile(t, dir, "reviews.csv", "text,sentiment\ncat,positive\n")
	svc := newService(t, func(cfg *config.AppConfig) { cfg.Glove.Path = filepath.Join(dir, "absent.txt") })
	_, err := svc.Plan(context.Background(), data)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExplorerNeighbors(t *testing.T) {
	req := require.New(t)
	table := embedding.NewTable(2)
	table.Vectors["king"] = []float32{1, 0}
	table.Vectors["queen"] = []float32{0.9, 0.1}
	table.Vectors["apple"] = []float32{0, 1}

	ex, err := NewExplorer(table, memory.NewStorage())
	req.NoError(err)
	req.Equal(3, ex.Size())

	got, err := ex.Neighbors("King", 1)
	req.NoError(err)
	req.Len(got, 1)
	req.Equal("queen", got[0].Word)

	all, err := ex.Neighbors("king", 5)
	req.NoError(err)
	req.Equal([]string{"queen", "apple"}, []string{all[0].Word, all[1].Word})

	_, err = ex.Neighbors("pear", 1)
	req.True(errors.Is(err, domain.ErrNotFound))

	_, err = NewExplorer(embedding.NewTable(2), memory.NewStorage())
	req.ErrorIs(err, domain.ErrEmptyCorpus)
}

func TestMedals(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	editions := writeFile(t, dir, "editions.tsv",
		"Edition\tGrand Total\tCity\tCountry\n"+
			"1968\t4\tMexico\tMexico\n"+
			"1972\t4\tMunich\tWest Germany\n")
	codes := writeFile(t, dir, "codes.csv", "Country,NOC\nMexico,MEX\n")
	writeFile(t, dir, "summer_1968.csv", "Athlete,NOC,Medal\nA,MEX,Gold\nB,USA,Gold\nC,USA,Silver\nD,FRG,Bronze\n")
	writeFile(t, dir, "summer_1972.csv", "Athlete,NOC,Medal\nE,FRG,Gold\nF,FRG,Silver\nG,USA,Gold\nH,MEX,Bronze\n")

	svc := newService(t, func(cfg *config.AppConfig) {
		cfg.Medals.EditionsPath = editions
		cfg.Medals.CountryCodesPath = codes
		cfg.Medals.MedalsDir = dir
		cfg.Medals.Top = 2
	})
	r, err := svc.Medals()
	req.NoError(err)
	req.Len(r.Medals, 8)
	req.Equal("FRG", r.TopCountries[0].Key)
	req.Len(r.TopCountries, 2)
	req.Len(r.MedalTotals.Rows, 2)
	req.Equal([]int{1972}, r.MissingHosts)
	req.Len(r.Influence, 2)

	// FRG: 1/4 then 2/4, so the expanding mean moves 0.25 -> 0.375.
	frg := r.Influence[1]
	req.Equal("FRG", frg.NOC)
	req.InDelta(50, frg.Change, 1e-9)
	req.True(math.IsNaN(r.Influence[0].Change))
	req.Len(r.Codes, 1)
	req.Equal([]medals.GenderPair{{}}, r.EventGender)
	req.Equal([]string{"1968", "1972"}, r.EditionCounts.Rows)
	req.Equal([]medals.Host{{Edition: 1968, NOC: "MEX"}, {Edition: 1972, NOC: "FRG"}}, r.Hosts)
}

func TestMedals_TopZeroKeepsEveryCountry(t *testing.T) {
	req := require.New(t)
	dir := t.TempDir()
	editions := writeFile(t, dir, "editions.tsv", "Edition\tGrand Total\tCity\tCountry\n1968\t3\tMexico\tMexico\n")
	codes := writeFile(t, dir, "codes.csv", "Country,NOC\nMexico,MEX\n")
	writeFile(t, dir, "summer_1968.csv", "Athlete,NOC,Medal\nA,MEX,Gold\nB,USA,Gold\nC,FRG,Bronze\n")

	svc := newService(t, func(cfg *config.AppConfig) {
		cfg.Medals.EditionsPath = editions
		cfg.Medals.CountryCodesPath = codes
		cfg.Medals.MedalsDir = dir
		cfg.Medals.Top = 0
	})
	r, err := svc.Medals()
	req.NoError(err)
	req.Len(r.TopCountries, 3)
	req.Len(r.MedalTotals.Rows, 3)
	req.Len(r.Sports, 3)
}
