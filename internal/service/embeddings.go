package service

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"featgen/internal/dataset"
	"featgen/internal/domain"
	"featgen/internal/embedding"
	"featgen/internal/model"
	"featgen/internal/sequence"
	"featgen/internal/vectorstore"
	"featgen/internal/vectorstore/memory"
)

// Sequences is a fitted keras-style tokenizer with the padded corpus.
type Sequences struct {
	Tokenizer *sequence.Tokenizer
	Padded    [][]int
}

// Embedded is a padded corpus joined to a pretrained embedding table.
type Embedded struct {
	Sequences
	Table  *embedding.Table
	Matrix embedding.Matrix
}

// Sequences fits the tokenizer on texts and pads every sequence to the
// configured GloVe input length.
func (s *FeatureService) Sequences(texts []string) Sequences {
	tok := sequence.NewTokenizer()
	tok.Fit(texts)
	padded := sequence.Pad(tok.TextsToSequences(texts), s.cfg.Glove.MaxLen)
	s.log.Debug("tokenized", zap.Int("vocab_size", tok.VocabSize()), zap.Int("max_len", s.cfg.Glove.MaxLen))
	return Sequences{Tokenizer: tok, Padded: padded}
}

// Glove tokenizes texts, loads the configured GloVe file and builds the
// embedding matrix for the fitted word index.
func (s *FeatureService) Glove(ctx context.Context, texts []string) (Embedded, error) {
	seqs := s.Sequences(texts)
	table, err := embedding.LoadGlove(ctx, s.cfg.Glove.Path, s.cfg.Glove.Dimension)
	if err != nil {
		return Embedded{}, fmt.Errorf("load glove: %w", err)
	}
	m := embedding.BuildMatrix(seqs.Tokenizer.WordIndex(), table)
	s.log.Info("embedding matrix built",
		zap.Int("words", table.Len()),
		zap.Int("rows", len(m.Rows)),
		zap.Float64("coverage", m.Coverage()))
	return Embedded{Sequences: seqs, Table: table, Matrix: m}, nil
}

// FastText loads the configured FastText vector file.
func (s *FeatureService) FastText(ctx context.Context) (*embedding.Table, error) {
	table, err := embedding.LoadFastText(ctx, s.cfg.FastText.Path)
	if err != nil {
		return nil, fmt.Errorf("load fasttext: %w", err)
	}
	s.log.Info("fasttext vectors loaded", zap.Int("words", table.Len()), zap.Int("dim", table.Dim))
	return table, nil
}

// TrainingSet is everything a training run receives.
type TrainingSet struct {
	Plan       *model.Plan
	Train      model.Split
	Validation model.Split
	Coverage   float64
}

// Plan prepares the classifier inputs from a labelled dataset file.
func (s *FeatureService) Plan(ctx context.Context, path string) (TrainingSet, error) {
	frame, err := dataset.ReadFrame(path)
	if err != nil {
		return TrainingSet{}, err
	}
	texts, err := frame.Column(s.cfg.Dataset.TextColumn)
	if err != nil {
		return TrainingSet{}, err
	}
	labelValues, err := frame.Column(s.cfg.Dataset.LabelColumn)
	if err != nil {
		return TrainingSet{}, err
	}
	labels, err := model.BinaryLabels(labelValues, s.cfg.Dataset.PositiveLabel)
	if err != nil {
		return TrainingSet{}, err
	}
	emb, err := s.Glove(ctx, texts)
	if err != nil {
		return TrainingSet{}, err
	}
	plan, err := model.NewPlan(s.cfg.Training, emb.Matrix.Rows)
	if err != nil {
		return TrainingSet{}, err
	}
	train, validation, err := plan.Split(emb.Padded, labels)
	if err != nil {
		return TrainingSet{}, err
	}
	s.log.Info("training set prepared",
		zap.Int("train", len(train.Inputs)),
		zap.Int("validation", len(validation.Inputs)),
		zap.Int("batches_per_epoch", plan.Batches(len(train.Inputs))))
	return TrainingSet{Plan: plan, Train: train, Validation: validation, Coverage: emb.Matrix.Coverage()}, nil
}

// Explorer answers nearest-word queries over an embedding table.
type Explorer struct {
	table *embedding.Table
	store vectorstore.Storage
}

// NewExplorer indexes every vector of table into store.
func NewExplorer(table *embedding.Table, store vectorstore.Storage) (*Explorer, error) {
	if table.Len() == 0 {
		return nil, fmt.Errorf("explorer: %w", domain.ErrEmptyCorpus)
	}
	if err := store.Init(table.Dim); err != nil {
		return nil, err
	}
	words := table.Words()
	vectors := make([][]float32, len(words))
	for i, w := range words {
		vectors[i] = table.Vectors[w]
	}
	if err := store.Upsert(words, vectors); err != nil {
		return nil, err
	}
	return &Explorer{table: table, store: store}, nil
}

// Explorer loads the GloVe ("glove") or FastText ("fasttext") vectors into an
// in-memory store.
func (s *FeatureService) Explorer(ctx context.Context, source string) (*Explorer, error) {
	var (
		table *embedding.Table
		err   error
	)
	switch source {
	case "glove", "":
		table, err = embedding.LoadGlove(ctx, s.cfg.Glove.Path, s.cfg.Glove.Dimension)
	case "fasttext":
		table, err = s.FastText(ctx)
	default:
		return nil, fmt.Errorf("unknown vector source: %s", source)
	}
	if err != nil {
		return nil, err
	}
	return NewExplorer(table, memory.NewStorage())
}

// Neighbors returns the topK words closest to word, excluding word itself.
// The lookup falls back to the lowercased word.
func (e *Explorer) Neighbors(word string, topK int) ([]domain.Neighbor, error) {
	if topK <= 0 {
		topK = 10
	}
	vec, ok := e.table.Lookup(word)
	if !ok {
		word = strings.ToLower(word)
		vec, ok = e.table.Lookup(word)
	}
	if !ok {
		return nil, fmt.Errorf("%w: no vector for %q", domain.ErrNotFound, word)
	}
	res, err := e.store.Search(vec, topK+1)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Neighbor, 0, topK)
	for _, n := range res {
		if n.Word == word {
			continue
		}
		if len(out) == topK {
			break
		}
		out = append(out, n)
	}
	return out, nil
}

// Size is the number of indexed words.
func (e *Explorer) Size() int { return e.table.Len() }
