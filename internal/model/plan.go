// Package model describes the recurrent sentiment classifier trained on top of
// the padded sequences and the pretrained embedding matrix. Training itself is
// delegated to an external deep-learning runtime; this package fixes the
// inputs and hyperparameters that runtime receives.
package model

import (
	"errors"
	"fmt"

	"featgen/internal/config"
)

// Layer is one step of the network.
type Layer struct {
	Kind       string
	Units      int
	Activation string
	Trainable  bool
}

// Plan binds the hyperparameters to a concrete vocabulary and weight matrix.
type Plan struct {
	VocabSize       int
	EmbeddingDim    int
	InputLength     int
	RecurrentUnits  int
	DenseUnits      int
	Epochs          int
	BatchSize       int
	ValidationSplit float64
	Optimizer       string
	Loss            string
	Weights         [][]float32
}

// NewPlan validates that weights match the configured embedding shape.
func NewPlan(cfg config.TrainingConfig, weights [][]float32) (*Plan, error) {
	if len(weights) < 2 {
		return nil, errors.New("embedding matrix needs the padding row and at least one word")
	}
	for i, row := range weights {
		if len(row) != cfg.EmbeddingDim {
			return nil, fmt.Errorf("embedding matrix row %d has %d values, want %d", i, len(row), cfg.EmbeddingDim)
		}
	}
	if cfg.ValidationSplit < 0 || cfg.ValidationSplit >= 1 {
		return nil, fmt.Errorf("validation split %v outside [0, 1)", cfg.ValidationSplit)
	}
	return &Plan{
		VocabSize:       len(weights),
		EmbeddingDim:    cfg.EmbeddingDim,
		InputLength:     cfg.InputLength,
		RecurrentUnits:  cfg.RecurrentUnits,
		DenseUnits:      cfg.DenseUnits,
		Epochs:          cfg.Epochs,
		BatchSize:       cfg.BatchSize,
		ValidationSplit: cfg.ValidationSplit,
		Optimizer:       cfg.Optimizer,
		Loss:            cfg.Loss,
		Weights:         weights,
	}, nil
}

// Layers lists the network: frozen embedding, bidirectional LSTM, a relu
// dense layer and a single sigmoid output.
func (p *Plan) Layers() []Layer {
	return []Layer{
		{Kind: "embedding", Units: p.EmbeddingDim, Trainable: false},
		{Kind: "bidirectional_lstm", Units: p.RecurrentUnits, Trainable: true},
		{Kind: "dense", Units: p.DenseUnits, Activation: "relu", Trainable: true},
		{Kind: "dense", Units: 1, Activation: "sigmoid", Trainable: true},
	}
}

// Batches is the number of gradient steps per epoch on n training samples.
func (p *Plan) Batches(n int) int {
	if n <= 0 {
		return 0
	}
	return (n + p.BatchSize - 1) / p.BatchSize
}

// Split holds aligned input sequences and labels.
type Split struct {
	Inputs [][]int
	Labels []float32
}

// Split partitions samples into training and validation sets. The validation
// set is the last ValidationSplit fraction of the samples, without shuffling.
func (p *Plan) Split(inputs [][]int, labels []float32) (train, validation Split, err error) {
	if len(inputs) != len(labels) {
		return Split{}, Split{}, fmt.Errorf("%d inputs but %d labels", len(inputs), len(labels))
	}
	for i, in := range inputs {
		if len(in) != p.InputLength {
			return Split{}, Split{}, fmt.Errorf("input %d has length %d, want %d", i, len(in), p.InputLength)
		}
		for _, idx := range in {
			if idx < 0 || idx >= p.VocabSize {
				return Split{}, Split{}, fmt.Errorf("input %d references word index %d outside vocabulary of %d", i, idx, p.VocabSize)
			}
		}
	}
	cut := int(float64(len(inputs)) * (1 - p.ValidationSplit))
	train = Split{Inputs: inputs[:cut], Labels: labels[:cut]}
	validation = Split{Inputs: inputs[cut:], Labels: labels[cut:]}
	return train, validation, nil
}

// BinaryLabels maps class names to 1 (positive) or 0 (any other value listed).
func BinaryLabels(values []string, positive string) ([]float32, error) {
	out := make([]float32, len(values))
	var (
		negative     string
		haveNegative bool
	)
	for i, v := range values {
		if v == positive {
			out[i] = 1
			continue
		}
		if !haveNegative {
			negative, haveNegative = v, true
		} else if v != negative {
			return nil, fmt.Errorf("label %q at row %d: more than two classes (%q, %q)", v, i, positive, negative)
		}
	}
	return out, nil
}
