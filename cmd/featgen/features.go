package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"featgen/internal/domain"
	"featgen/internal/report"
	"featgen/internal/service"
	"featgen/internal/tfidf"
)

var (
	bowCount   bool
	tfidfTop   int
	tfidfDoc   int
	tfidfQuery string
)

func init() {
	rootCmd.AddCommand(corpusCmd, indexCmd, bowCmd, tfidfCmd)

	bowCmd.Flags().BoolVar(&bowCount, "count", false, "Emit occurrence counts instead of presence flags")
	tfidfCmd.Flags().IntVar(&tfidfTop, "top", 10, "Number of strongest terms to list")
	tfidfCmd.Flags().IntVar(&tfidfDoc, "doc", -1, "List the strongest terms of this document (0-based row)")
	tfidfCmd.Flags().StringVar(&tfidfQuery, "query", "", "Weigh this text against the fitted vocabulary")
}

var corpusCmd = &cobra.Command{
	Use:   "corpus [file]",
	Short: "Build the whitespace vocabulary of a dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := svc.Corpus(datasetPath(args))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "documents: %d  vocabulary: %d  longest: %d tokens\n",
			len(c.Documents), c.Vocabulary.Len(), c.MaxTokens())
		rows := make([][]string, 0, c.Vocabulary.Len())
		for i, tok := range c.Vocabulary {
			if headRows > 0 && i == headRows {
				break
			}
			rows = append(rows, []string{strconv.Itoa(i), strconv.Quote(tok)})
		}
		report.Render(out, []string{"index", "token"}, rows)
		return nil
	},
}

var indexCmd = &cobra.Command{
	Use:   "index [file]",
	Short: "Encode documents as 1-based vocabulary positions, zero padded",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return printEncoding(cmd, args, service.EncodingIndex)
	},
}

var bowCmd = &cobra.Command{
	Use:   "bow [file]",
	Short: "Encode documents as binary or count bag-of-words vectors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := service.EncodingBinary
		if bowCount {
			enc = service.EncodingCount
		}
		return printEncoding(cmd, args, enc)
	},
}

func printEncoding(cmd *cobra.Command, args []string, enc service.Encoding) error {
	encoded, err := svc.Encode(datasetPath(args), enc)
	if err != nil {
		return err
	}
	report.Vectors(cmd.OutOrStdout(), encoded.Columns, encoded.Vectors, headRows)
	return nil
}

var tfidfCmd = &cobra.Command{
	Use:   "tfidf [file]",
	Short: "Compute the lemmatized TF-IDF table of a dataset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, vec, err := svc.TFIDF(datasetPath(args))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "documents: %d  terms: %d\n", len(table.Rows), len(table.Columns))
		report.Table(out, table, headRows)
		fmt.Fprintln(out)
		report.Terms(out, tfidf.TopTerms(table, tfidfTop))

		if cmd.Flags().Changed("doc") {
			if tfidfDoc < 0 || tfidfDoc >= len(table.Rows) {
				return fmt.Errorf("document %d out of range [0, %d)", tfidfDoc, len(table.Rows))
			}
			fmt.Fprintf(out, "\ndocument %d:\n", tfidfDoc)
			report.Terms(out, tfidf.DocumentTerms(table, tfidfDoc, tfidfTop))
		}
		if tfidfQuery != "" {
			weights, err := vec.Transform(tfidfQuery)
			if err != nil {
				return err
			}
			query := domain.Table{Columns: table.Columns, Rows: [][]float64{weights}}
			fmt.Fprintf(out, "\nquery %q:\n", tfidfQuery)
			report.Terms(out, tfidf.DocumentTerms(query, 0, tfidfTop))
		}
		return nil
	},
}
