// Package main implements the featgen CLI: text feature generation, pretrained
// embeddings and the Olympic medal analysis.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"featgen/internal/config"
	"featgen/internal/logging"
	"featgen/internal/service"
)

var (
	// cfgPath is the YAML config; empty means ./featgen.yaml or the user config
	cfgPath string
	// headRows limits printed table rows; 0 prints everything
	headRows int
	version  = "dev"

	cfg *config.AppConfig
	log *zap.Logger
	svc *service.FeatureService
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		logFailure(log, err)
		os.Exit(1)
	}
}

// logFailure records a failed command. Errors raised before the logger
// exists are already printed by cobra.
func logFailure(l *zap.Logger, err error) {
	if l == nil {
		return
	}
	l.Error("command failed", zap.Error(err))
	_ = l.Sync()
}

var rootCmd = &cobra.Command{
	Use:   "featgen",
	Short: "Generate text features and analyse tabular datasets",
	Long: `featgen turns a text dataset into model-ready features: whitespace
vocabularies, index and bag-of-words encodings, TF-IDF tables, padded keras-style
sequences joined to pretrained GloVe or FastText vectors. It also runs the
Summer Olympic medal analysis.

Examples:
  featgen bow --count "data/raw/IMDB Dataset.csv"
  featgen tfidf --top 20 reviews.csv
  featgen explore --source fasttext`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "Path to YAML config file (optional; uses ~/.config/featgen/config.yaml if not provided)")
	rootCmd.PersistentFlags().IntVar(&headRows, "head", 5, "Number of rows to print (0 prints all)")
}

func setup(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load()

	var err error
	if cfgPath == "" {
		cfg, _, err = config.LoadDefault()
	} else {
		cfg, err = config.Load(cfgPath)
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	log, err = logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to init logger: %w", err)
	}
	svc = service.New(cfg, log)
	return nil
}

// datasetPath returns the positional file argument or the configured output.
func datasetPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Dataset.Output
}
