package sequence

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenizer_WordIndex(t *testing.T) {
	req := require.New(t)
	tok := NewTokenizer()
	tok.Fit([]string{"The cat sat.", "The dog, the CAT!"})

	req.Equal(map[string]int{"the": 1, "cat": 2, "sat": 3, "dog": 4}, tok.WordIndex())
	req.Equal(5, tok.VocabSize())
	req.Equal([]string{"it's", "a", "snake", "case", "word"}, tok.Words("It's a snake_case-word"))
}

func TestTokenizer_TextsToSequences(t *testing.T) {
	req := require.New(t)
	tok := NewTokenizer()
	tok.Fit([]string{"good movie", "bad movie"})
	// movie=1 good=2 bad=3
	seqs := tok.TextsToSequences([]string{"Good, good movie", "unknown bad"})
	req.Equal([][]int{{2, 2, 1}, {3}}, seqs)
}

func TestPad(t *testing.T) {
	tests := []struct {
		name   string
		seqs   [][]int
		maxLen int
		want   [][]int
	}{
		{name: "pre-pads short", seqs: [][]int{{1, 2}}, maxLen: 4, want: [][]int{{0, 0, 1, 2}}},
		{name: "keeps last entries of long", seqs: [][]int{{1, 2, 3, 4, 5}}, maxLen: 3, want: [][]int{{3, 4, 5}}},
		{name: "exact length", seqs: [][]int{{7, 8}}, maxLen: 2, want: [][]int{{7, 8}}},
		{name: "empty sequence", seqs: [][]int{{}}, maxLen: 2, want: [][]int{{0, 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Pad(tt.seqs, tt.maxLen))
		})
	}
}

func TestPad_DoesNotMutateInput(t *testing.T) {
	in := [][]int{{1, 2, 3}}
	_ = Pad(in, 2)
	require.Equal(t, [][]int{{1, 2, 3}}, in)
}
