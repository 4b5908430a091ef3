package tfidf

import (
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"featgen/internal/analysis"
	"featgen/internal/domain"
)

type fieldsAnalyzer struct{}

func (fieldsAnalyzer) Analyze(text string) []string { return strings.Fields(strings.ToLower(text)) }

func TestFitTransform_MatchesSmoothedTFIDF(t *testing.T) {
	req := require.New(t)
	v := NewVectorizer(fieldsAnalyzer{})
	table, err := v.FitTransform([]string{"cat dog", "dog dog"})
	req.NoError(err)
	req.Equal([]string{"cat", "dog"}, table.Columns)

	// n=2: idf(cat)=ln(3/2)+1, idf(dog)=ln(3/3)+1=1
	idfCat := math.Log(1.5) + 1
	norm := math.Sqrt(idfCat*idfCat + 1)
	req.InDelta(idfCat/norm, table.Rows[0][0], 1e-12)
	req.InDelta(1/norm, table.Rows[0][1], 1e-12)
	req.InDelta(0, table.Rows[1][0], 1e-12)
	req.InDelta(1, table.Rows[1][1], 1e-12)
}

func TestFitTransform_SklearnReference(t *testing.T) {
	req := require.New(t)
	corpus := []string{
		"this is the first document",
		"this document is the second document",
		"and this is the third one",
		"is this the first document",
	}
	v := NewVectorizer(fieldsAnalyzer{})
	table, err := v.FitTransform(corpus)
	req.NoError(err)
	req.Equal([]string{"and", "document", "first", "is", "one", "second", "the", "third", "this"}, table.Columns)
	// TfidfVectorizer().fit_transform(corpus)[0]
	want := []float64{0, 0.46979139, 0.58028582, 0.38408524, 0, 0, 0.38408524, 0, 0.38408524}
	for i, w := range want {
		req.InDelta(w, table.Rows[0][i], 1e-6, table.Columns[i])
	}
}

func TestFitTransform_Properties(t *testing.T) {
	req := require.New(t)
	tok, err := analysis.NewRegexpTokenizer(analysis.WordPattern)
	req.NoError(err)
	a := analysis.NewPipeline(tok, analysis.SnowballStemmer{}, analysis.EnglishStopwords())
	corpus := []string{
		"The acting was superb, and the plot kept me guessing!",
		"Terrible plot. Terrible acting. I left early.",
		"the and of",
	}
	v := NewVectorizer(a)
	table, err := v.FitTransform(corpus)
	req.NoError(err)
	req.Equal(v.Dimension(), len(table.Columns))

	seen := make(map[string]int)
	for i, c := range table.Columns {
		_, dup := seen[c]
		req.False(dup, "duplicate column %q", c)
		seen[c] = i
	}
	req.Equal(seen, v.vocabulary)

	for i, row := range table.Rows[:2] {
		sum := 0.0
		for _, x := range row {
			sum += x * x
		}
		req.InDelta(1, sum, 1e-9, "row %d", i)
	}
	for _, x := range table.Rows[2] {
		req.Zero(x)
	}
	_, ok := seen["the"]
	req.False(ok)
}

func TestTransform(t *testing.T) {
	req := require.New(t)
	v := NewVectorizer(fieldsAnalyzer{})
	_, err := v.Transform("cat")
	req.Error(err)

	_, err = v.FitTransform([]string{"cat dog", "dog dog"})
	req.NoError(err)
	vec, err := v.Transform("cat bird")
	req.NoError(err)
	req.Equal([]float64{1, 0}, vec)

	vec, err = v.Transform("bird")
	req.NoError(err)
	req.Equal([]float64{0, 0}, vec)
}

func TestFit_Errors(t *testing.T) {
	v := NewVectorizer(fieldsAnalyzer{})
	_, err := v.FitTransform(nil)
	require.ErrorIs(t, err, domain.ErrEmptyCorpus)

	_, err = v.FitTransform([]string{"", "   "})
	require.Error(t, err)
}
