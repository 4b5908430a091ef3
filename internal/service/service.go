// Package service sequences loading, feature generation and analysis for the
// command line and the explorer.
package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"featgen/internal/analysis"
	"featgen/internal/bow"
	"featgen/internal/config"
	"featgen/internal/corpus"
	"featgen/internal/dataset"
	"featgen/internal/domain"
	"featgen/internal/tfidf"
)

// minEnglishRatio is the share of English documents below which the English
// analyzer chain is reported as a poor fit.
const minEnglishRatio = 0.5

// Encoding selects a whitespace-corpus encoder.
type Encoding string

const (
	EncodingIndex  Encoding = "index"
	EncodingBinary Encoding = "binary"
	EncodingCount  Encoding = "count"
)

// Encoded holds integer document vectors. Columns names the vector positions
// for bag-of-words encodings and is nil for the index encoding.
type Encoded struct {
	Columns []string
	Vectors [][]int
}

// FeatureService is the entry point the CLI drives.
type FeatureService struct {
	cfg *config.AppConfig
	log *zap.Logger
}

// New creates a service bound to cfg.
func New(cfg *config.AppConfig, log *zap.Logger) *FeatureService {
	if log == nil {
		log = zap.NewNop()
	}
	return &FeatureService{cfg: cfg, log: log}
}

// LoadTexts reads the configured text column of a dataset file.
func (s *FeatureService) LoadTexts(path string) ([]string, error) {
	docs, err := dataset.LoadDocuments(path, s.cfg.Dataset.TextColumn)
	if err != nil {
		return nil, fmt.Errorf("load documents: %w", err)
	}
	s.log.Info("loaded documents", zap.String("path", path), zap.Int("count", len(docs)))
	return dataset.Texts(docs), nil
}

// Corpus builds the whitespace corpus of a dataset file.
func (s *FeatureService) Corpus(path string) (corpus.Corpus, error) {
	texts, err := s.LoadTexts(path)
	if err != nil {
		return corpus.Corpus{}, err
	}
	c := corpus.Build(texts, s.cfg.Corpus.Separator)
	s.log.Debug("built corpus", zap.Int("vocabulary", c.Vocabulary.Len()), zap.Int("max_tokens", c.MaxTokens()))
	return c, nil
}

// Encode runs one of the corpus encoders over a dataset file.
func (s *FeatureService) Encode(path string, enc Encoding) (Encoded, error) {
	c, err := s.Corpus(path)
	if err != nil {
		return Encoded{}, err
	}
	switch enc {
	case EncodingIndex:
		return Encoded{Vectors: bow.Index(c)}, nil
	case EncodingBinary:
		return Encoded{Columns: c.Vocabulary, Vectors: bow.Binary(c)}, nil
	case EncodingCount:
		return Encoded{Columns: c.Vocabulary, Vectors: bow.Count(c)}, nil
	default:
		return Encoded{}, fmt.Errorf("unknown encoding: %s", enc)
	}
}

// Analyzer assembles the configured tokenizer, normalizer and stopword chain.
func (s *FeatureService) Analyzer() (domain.Analyzer, error) {
	tok, err := analysis.NewRegexpTokenizer(s.cfg.TFIDF.TokenPattern)
	if err != nil {
		return nil, err
	}
	norm, err := analysis.NewNormalizer(s.cfg.TFIDF.Normalizer)
	if err != nil {
		return nil, err
	}
	return analysis.NewPipeline(tok, norm, analysis.EnglishStopwords()), nil
}

// TFIDF computes the TF-IDF table of a dataset file. The returned vectorizer
// is fitted on the file and can weigh unseen texts.
func (s *FeatureService) TFIDF(path string) (domain.Table, domain.Vectorizer, error) {
	texts, err := s.LoadTexts(path)
	if err != nil {
		return domain.Table{}, nil, err
	}
	s.checkLanguage(texts)
	analyzer, err := s.Analyzer()
	if err != nil {
		return domain.Table{}, nil, err
	}
	var vec domain.Vectorizer = tfidf.NewVectorizer(analyzer)
	start := time.Now()
	table, err := vec.FitTransform(texts)
	if err != nil {
		return domain.Table{}, nil, err
	}
	s.log.Info("features computed",
		zap.String("vectorizer", vec.Name()),
		zap.String("normalizer", s.cfg.TFIDF.Normalizer),
		zap.Int("terms", vec.Dimension()),
		zap.Duration("elapsed", time.Since(start)))
	return table, vec, nil
}

func (s *FeatureService) checkLanguage(texts []string) {
	report := analysis.DetectLanguages(texts)
	if report.Total == 0 {
		return
	}
	if ratio := report.EnglishRatio(); ratio < minEnglishRatio {
		s.log.Warn("most documents are not English; stopwords and lemmas are English only",
			zap.Float64("english_ratio", ratio))
	}
}

// Download fetches the configured dataset URL into the configured output path.
func (s *FeatureService) Download(ctx context.Context) (dataset.DownloadResult, error) {
	d := dataset.NewDownloader(time.Duration(s.cfg.Dataset.TimeoutSecs) * time.Second)
	res, err := d.Download(ctx, s.cfg.Dataset.URL, s.cfg.Dataset.Output)
	if err != nil {
		return dataset.DownloadResult{}, err
	}
	s.log.Info("dataset downloaded",
		zap.String("path", res.Path), zap.Int64("bytes", res.Bytes), zap.String("mime", res.MIME))
	return res, nil
}
