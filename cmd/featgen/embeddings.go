package main

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"featgen/internal/domain"
	"featgen/internal/report"
	"featgen/internal/tui"
)

var (
	exploreSource string
	exploreWord   string
)

func init() {
	rootCmd.AddCommand(gloveCmd, fasttextCmd, matrixCmd, planCmd, exploreCmd)

	exploreCmd.Flags().StringVar(&exploreSource, "source", "glove", "Vector source: glove or fasttext")
	exploreCmd.Flags().StringVar(&exploreWord, "word", "", "Print the neighbours of one word instead of starting the explorer")
}

var gloveCmd = &cobra.Command{
	Use:   "glove [file]",
	Short: "Tokenize and pad a dataset, then join it to the GloVe vectors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		texts, err := svc.LoadTexts(datasetPath(args))
		if err != nil {
			return err
		}
		emb, err := svc.Glove(cmd.Context(), texts)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "vectors: %d  vocab size: %d  matrix: %dx%d  coverage: %.2f%%\n",
			emb.Table.Len(), emb.Tokenizer.VocabSize(), len(emb.Matrix.Rows), emb.Table.Dim, 100*emb.Matrix.Coverage())
		report.Vectors(out, nil, emb.Padded, headRows)
		return nil
	},
}

var fasttextCmd = &cobra.Command{
	Use:   "fasttext",
	Short: "Load the configured FastText .vec file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := svc.FastText(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "vectors: %d  dimension: %d\n", table.Len(), table.Dim)
		return nil
	},
}

var matrixCmd = &cobra.Command{
	Use:   "matrix [file]",
	Short: "Print the leading rows of the GloVe embedding matrix",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		texts, err := svc.LoadTexts(datasetPath(args))
		if err != nil {
			return err
		}
		emb, err := svc.Glove(cmd.Context(), texts)
		if err != nil {
			return err
		}
		t := domain.Table{Columns: make([]string, emb.Table.Dim)}
		for i := range t.Columns {
			t.Columns[i] = strconv.Itoa(i)
		}
		for _, row := range emb.Matrix.Rows {
			if headRows > 0 && len(t.Rows) == headRows {
				break
			}
			vals := make([]float64, len(row))
			for i, v := range row {
				vals[i] = float64(v)
			}
			t.Rows = append(t.Rows, vals)
		}
		report.Table(cmd.OutOrStdout(), t, 0)
		return nil
	},
}

var planCmd = &cobra.Command{
	Use:   "plan [file]",
	Short: "Prepare the classifier training set and describe the network",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		set, err := svc.Plan(cmd.Context(), datasetPath(args))
		if err != nil {
			return err
		}
		p := set.Plan
		out := cmd.OutOrStdout()
		rows := make([][]string, 0, 4)
		for _, l := range p.Layers() {
			rows = append(rows, []string{l.Kind, strconv.Itoa(l.Units), l.Activation, strconv.FormatBool(l.Trainable)})
		}
		report.Render(out, []string{"layer", "units", "activation", "trainable"}, rows)
		fmt.Fprintf(out, "\nvocab size: %d  input length: %d  coverage: %.2f%%\n", p.VocabSize, p.InputLength, 100*set.Coverage)
		fmt.Fprintf(out, "train: %d  validation: %d  epochs: %d  batch: %d (%d steps/epoch)\n",
			len(set.Train.Inputs), len(set.Validation.Inputs), p.Epochs, p.BatchSize, p.Batches(len(set.Train.Inputs)))
		fmt.Fprintf(out, "optimizer: %s  loss: %s\n", p.Optimizer, p.Loss)
		return nil
	},
}

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Browse nearest words in the pretrained vectors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ex, err := svc.Explorer(cmd.Context(), exploreSource)
		if err != nil {
			return err
		}
		if exploreWord != "" {
			res, err := ex.Neighbors(exploreWord, cfg.Explorer.TopK)
			if err != nil {
				return err
			}
			report.Neighbors(cmd.OutOrStdout(), res)
			return nil
		}
		summary := fmt.Sprintf("%d %s vectors loaded", ex.Size(), exploreSource)
		_, err = tea.NewProgram(tui.New(ex, summary, cfg.Explorer.TopK)).Run()
		return err
	},
}
