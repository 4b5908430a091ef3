package corpus

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name      string
		docs      []string
		vocab     Vocabulary
		maxTokens int
	}{
		{
			name:      "two documents",
			docs:      []string{"cat dog", "dog dog"},
			vocab:     Vocabulary{"cat", "dog"},
			maxTokens: 2,
		},
		{
			name:      "case and punctuation are preserved",
			docs:      []string{"Dog dog.", "dog"},
			vocab:     Vocabulary{"Dog", "dog", "dog."},
			maxTokens: 2,
		},
		{
			name:      "repeated separators yield empty tokens",
			docs:      []string{"a  b"},
			vocab:     Vocabulary{"", "a", "b"},
			maxTokens: 3,
		},
		{
			name:      "empty input",
			docs:      nil,
			vocab:     nil,
			maxTokens: 0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Build(tt.docs, DefaultSeparator)
			require.Equal(t, tt.vocab, c.Vocabulary)
			require.Len(t, c.Documents, len(tt.docs))
			require.Len(t, c.Tokens, len(tt.docs))
			require.Equal(t, tt.maxTokens, c.MaxTokens())
		})
	}
}

func TestBuild_DoesNotAliasInput(t *testing.T) {
	docs := []string{"b a"}
	c := Build(docs, "")
	docs[0] = "changed"
	require.Equal(t, []string{"b a"}, c.Documents)
}

func TestVocabularyIndex(t *testing.T) {
	req := require.New(t)
	v := Vocabulary{"apple", "cat", "dog"}
	req.Equal(0, v.Index("apple"))
	req.Equal(2, v.Index("dog"))
	req.Equal(-1, v.Index("bird"))
	req.Equal(-1, v.Index("zebra"))
	req.Equal(3, v.Len())
}
