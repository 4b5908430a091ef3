package analysis

import (
	"fmt"

	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/english"

	"featgen/internal/domain"
)

// SnowballStemmer applies the Snowball English stemmer.
type SnowballStemmer struct{}

func (SnowballStemmer) Name() string { return "stem" }

func (SnowballStemmer) Normalize(token string) string {
	env := snowballstem.NewEnv(token)
	english.Stem(env)
	return env.Current()
}

// Identity leaves tokens unchanged.
type Identity struct{}

func (Identity) Name() string { return "none" }

func (Identity) Normalize(token string) string { return token }

// NewNormalizer returns the normalizer registered under name.
func NewNormalizer(name string) (domain.Normalizer, error) {
	switch name {
	case "lemma", "":
		return NewVerbLemmatizer()
	case "stem":
		return SnowballStemmer{}, nil
	case "none":
		return Identity{}, nil
	default:
		return nil, fmt.Errorf("unknown normalizer: %s", name)
	}
}
