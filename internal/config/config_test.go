package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	req := require.New(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	req.NoError(err)
	req.Equal("info", cfg.Log.Level)
	req.Equal(" ", cfg.Corpus.Separator)
	req.Equal(300, cfg.Glove.Dimension)
	req.Equal(300, cfg.Glove.MaxLen)
	req.Equal(75, cfg.Training.RecurrentUnits)
	req.Equal(256, cfg.Training.BatchSize)
	req.Equal(5, cfg.Training.Epochs)
	req.InDelta(0.2, cfg.Training.ValidationSplit, 1e-9)
	req.Equal("URS", cfg.Medals.HostFixes[1980])
}

func TestLoad_PartialFileKeepsDefaults(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "featgen.yaml")
	content := `
tfidf:
  normalizer: stem
glove:
  path: /data/glove.6B.50d.txt
  dimension: 50
`
	req.NoError(os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	req.NoError(err)
	req.Equal("stem", cfg.TFIDF.Normalizer)
	req.Equal(`[\p{L}\p{M}\p{N}_]+`, cfg.TFIDF.TokenPattern)
	req.Equal("/data/glove.6B.50d.txt", cfg.Glove.Path)
	req.Equal(50, cfg.Glove.Dimension)
	req.Equal(300, cfg.Glove.MaxLen)
	req.Equal("text", cfg.Dataset.TextColumn)
}

func TestLoad_EnvOverrides(t *testing.T) {
	req := require.New(t)
	t.Setenv("FEATGEN_GLOVE_PATH", "/env/glove.txt")
	t.Setenv("FEATGEN_LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	req.NoError(err)
	req.Equal("/env/glove.txt", cfg.Glove.Path)
	req.Equal("debug", cfg.Log.Level)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "unknown normalizer", content: "tfidf:\n  normalizer: porter\n"},
		{name: "unknown log level", content: "log:\n  level: chatty\n"},
		{name: "validation split out of range", content: "training:\n  validation_split: 1.5\n"},
		{name: "negative medals top", content: "medals:\n  top: -1\n"},
		{name: "malformed yaml", content: "glove: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "featgen.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := Load(path)
			require.Error(t, err)
		})
	}
}

func TestLoad_MedalsTopZeroMeansAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "featgen.yaml")
	require.NoError(t, os.WriteFile(path, []byte("medals:\n  top: 0\n"), 0o644))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Zero(t, cfg.Medals.Top)
}

func TestSaveRoundTrip(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Explorer.TopK = 25
	req.NoError(Save(path, cfg))

	loaded, err := Load(path)
	req.NoError(err)
	req.Equal(25, loaded.Explorer.TopK)
}

func TestLoadDefault_WritesUserConfig(t *testing.T) {
	req := require.New(t)
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	cfg, path, err := LoadDefault()
	req.NoError(err)
	req.Equal(filepath.Join(home, ".config", "featgen", "config.yaml"), path)
	req.Equal(15, cfg.Medals.Top)
	_, err = os.Stat(path)
	req.NoError(err)
}
