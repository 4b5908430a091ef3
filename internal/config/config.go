package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `yaml:"level" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development"`
}

// DatasetConfig describes where the raw dataset comes from and how it is read.
type DatasetConfig struct {
	URL         string `yaml:"url" validate:"omitempty,url"`
	Output      string `yaml:"output" validate:"required"`
	TimeoutSecs int    `yaml:"timeout_secs" validate:"gte=0"`
	TextColumn  string `yaml:"text_column" validate:"required"`
	LabelColumn string `yaml:"label_column"`

	// PositiveLabel is the label value encoded as 1 for training.
	PositiveLabel string `yaml:"positive_label"`
}

// CorpusConfig configures the whitespace corpus builder.
type CorpusConfig struct {
	Separator string `yaml:"separator" validate:"required"`
}

// TFIDFConfig configures the TF-IDF analyzer chain.
type TFIDFConfig struct {
	TokenPattern string `yaml:"token_pattern" validate:"required"`
	Normalizer   string `yaml:"normalizer" validate:"oneof=lemma stem none"`
}

// GloveConfig locates a pretrained GloVe file.
type GloveConfig struct {
	Path      string `yaml:"path"`
	Dimension int    `yaml:"dimension" validate:"gt=0"`
	MaxLen    int    `yaml:"max_len" validate:"gt=0"`
}

// FastTextConfig locates a pretrained FastText vector file.
type FastTextConfig struct {
	Path string `yaml:"path"`
}

// MedalsConfig locates the Olympic medal dataset files.
type MedalsConfig struct {
	EditionsPath     string `yaml:"editions_path"`
	CountryCodesPath string `yaml:"country_codes_path"`
	MedalsDir        string `yaml:"medals_dir"`
	MedalsPath       string `yaml:"medals_path"`
	// Top limits the country rankings; 0 keeps every country.
	Top       int            `yaml:"top" validate:"gte=0"`
	HostFixes map[int]string `yaml:"host_fixes"`
}

// TrainingConfig holds the recurrent classifier hyperparameters.
type TrainingConfig struct {
	EmbeddingDim    int     `yaml:"embedding_dim" validate:"gt=0"`
	InputLength     int     `yaml:"input_length" validate:"gt=0"`
	RecurrentUnits  int     `yaml:"recurrent_units" validate:"gt=0"`
	DenseUnits      int     `yaml:"dense_units" validate:"gt=0"`
	Epochs          int     `yaml:"epochs" validate:"gt=0"`
	BatchSize       int     `yaml:"batch_size" validate:"gt=0"`
	ValidationSplit float64 `yaml:"validation_split" validate:"gte=0,lt=1"`
	Optimizer       string  `yaml:"optimizer" validate:"required"`
	Loss            string  `yaml:"loss" validate:"required"`
}

// ExplorerConfig configures the neighbour explorer.
type ExplorerConfig struct {
	TopK int `yaml:"top_k" validate:"gt=0"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Log      LogConfig      `yaml:"log"`
	Dataset  DatasetConfig  `yaml:"dataset"`
	Corpus   CorpusConfig   `yaml:"corpus"`
	TFIDF    TFIDFConfig    `yaml:"tfidf"`
	Glove    GloveConfig    `yaml:"glove"`
	FastText FastTextConfig `yaml:"fasttext"`
	Medals   MedalsConfig   `yaml:"medals"`
	Training TrainingConfig `yaml:"training"`
	Explorer ExplorerConfig `yaml:"explorer"`
}

// envOverrides lists the settings that can be overridden from the environment.
type envOverrides struct {
	LogLevel     string `env:"FEATGEN_LOG_LEVEL"`
	DatasetURL   string `env:"FEATGEN_DATASET_URL"`
	DatasetPath  string `env:"FEATGEN_DATASET_OUTPUT"`
	GlovePath    string `env:"FEATGEN_GLOVE_PATH"`
	FastTextPath string `env:"FEATGEN_FASTTEXT_PATH"`
	MedalsDir    string `env:"FEATGEN_MEDALS_DIR"`
}

var validate = validator.New()

// Load reads a config from a specified path. If the file does not exist, returns defaults.
// Environment overrides are applied in both cases.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg := defaultConfig()
			return finish(cfg)
		}
		return nil, err
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyConfigDefaults(cfg)
	return finish(cfg)
}

// LoadDefault tries ./featgen.yaml first, then ~/.config/featgen/config.yaml.
// If neither exists, it writes defaults to ~/.config/featgen/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "featgen.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	cfg, err = finish(cfg)
	return cfg, userPath, err
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Validate checks field constraints declared on the config structs.
func Validate(cfg *AppConfig) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func finish(cfg *AppConfig) (*AppConfig, error) {
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *AppConfig) error {
	var o envOverrides
	if _, err := env.UnmarshalFromEnviron(&o); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&cfg.Log.Level, o.LogLevel)
	set(&cfg.Dataset.URL, o.DatasetURL)
	set(&cfg.Dataset.Output, o.DatasetPath)
	set(&cfg.Glove.Path, o.GlovePath)
	set(&cfg.FastText.Path, o.FastTextPath)
	set(&cfg.Medals.MedalsDir, o.MedalsDir)
	return nil
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "featgen", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	return &AppConfig{
		Log: LogConfig{Level: "info"},
		Dataset: DatasetConfig{
			URL:           "https://www.kaggle.com/lakshmi25npathi/imdb-dataset-of-50k-movie-reviews/download",
			Output:        filepath.Join("data", "raw", "IMDB Dataset.csv"),
			TimeoutSecs:   60,
			TextColumn:    "text",
			LabelColumn:   "sentiment",
			PositiveLabel: "positive",
		},
		Corpus: CorpusConfig{Separator: " "},
		TFIDF:  TFIDFConfig{TokenPattern: `[\p{L}\p{M}\p{N}_]+`, Normalizer: "lemma"},
		Glove: GloveConfig{
			Path:      filepath.Join("input", "embeddings", "glove.840B.300d", "glove.840B.300d.txt"),
			Dimension: 300,
			MaxLen:    300,
		},
		FastText: FastTextConfig{Path: "wiki.simple.vec"},
		Medals: MedalsConfig{
			EditionsPath:     "Summer Olympic medallists 1896 to 2008 - EDITIONS.tsv",
			CountryCodesPath: "Summer Olympic medallists 1896 to 2008 - IOC COUNTRY CODES.csv",
			MedalsDir:        ".",
			Top:              15,
			HostFixes:        defaultHostFixes(),
		},
		Training: TrainingConfig{
			EmbeddingDim:    300,
			InputLength:     300,
			RecurrentUnits:  75,
			DenseUnits:      32,
			Epochs:          5,
			BatchSize:       256,
			ValidationSplit: 0.2,
			Optimizer:       "adam",
			Loss:            "binary_crossentropy",
		},
		Explorer: ExplorerConfig{TopK: 10},
	}
}

func defaultHostFixes() map[int]string {
	return map[int]string{1972: "FRG", 1980: "URS", 1988: "KOR"}
}

// applyConfigDefaults fills zero values left by a partial YAML file.
func applyConfigDefaults(cfg *AppConfig) {
	d := defaultConfig()
	if cfg.Log.Level == "" {
		cfg.Log.Level = d.Log.Level
	}
	if cfg.Dataset.Output == "" {
		cfg.Dataset.Output = d.Dataset.Output
	}
	if cfg.Dataset.TextColumn == "" {
		cfg.Dataset.TextColumn = d.Dataset.TextColumn
	}
	if cfg.Dataset.PositiveLabel == "" {
		cfg.Dataset.PositiveLabel = d.Dataset.PositiveLabel
	}
	if cfg.Corpus.Separator == "" {
		cfg.Corpus.Separator = d.Corpus.Separator
	}
	if cfg.TFIDF.TokenPattern == "" {
		cfg.TFIDF.TokenPattern = d.TFIDF.TokenPattern
	}
	if cfg.TFIDF.Normalizer == "" {
		cfg.TFIDF.Normalizer = d.TFIDF.Normalizer
	}
	if cfg.Glove.Dimension == 0 {
		cfg.Glove.Dimension = d.Glove.Dimension
	}
	if cfg.Glove.MaxLen == 0 {
		cfg.Glove.MaxLen = d.Glove.MaxLen
	}
	if cfg.Medals.HostFixes == nil {
		cfg.Medals.HostFixes = d.Medals.HostFixes
	}
	if cfg.Explorer.TopK == 0 {
		cfg.Explorer.TopK = d.Explorer.TopK
	}
	t := &cfg.Training
	if t.EmbeddingDim == 0 {
		t.EmbeddingDim = d.Training.EmbeddingDim
	}
	if t.InputLength == 0 {
		t.InputLength = d.Training.InputLength
	}
	if t.RecurrentUnits == 0 {
		t.RecurrentUnits = d.Training.RecurrentUnits
	}
	if t.DenseUnits == 0 {
		t.DenseUnits = d.Training.DenseUnits
	}
	if t.Epochs == 0 {
		t.Epochs = d.Training.Epochs
	}
	if t.BatchSize == 0 {
		t.BatchSize = d.Training.BatchSize
	}
	if t.Optimizer == "" {
		t.Optimizer = d.Training.Optimizer
	}
	if t.Loss == "" {
		t.Loss = d.Training.Loss
	}
}
