package cli

import (
	"fmt"

	"github.com/satetsu888/japanese-tfidf-embedder/pkg/embedder"
	"github.com/spf13/cobra"
)

func newHashCmd() *cobra.Command {
	var dimension, ngramSize int

	cmd := &cobra.Command{
		Use:   "hash <a> <b>",
		Short: "Compare two texts with the stable hash embedder (no training, no corpus)",
		Long: `Demonstrates the document-independent alternate path: no corpus
directory, no vocabulary, no SVD — just a fixed-dimension hash of
character n-grams.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runHash(cmd, args[0], args[1], dimension, ngramSize)
		},
	}
	cmd.Flags().IntVar(&dimension, "dim", 256, "Hash vector dimension")
	cmd.Flags().IntVar(&ngramSize, "ngram", 2, "Character n-gram size")
	return cmd
}

func runHash(cmd *cobra.Command, a, b string, dimension, ngramSize int) error {
	h, err := embedder.NewStableHashEmbedder(dimension, ngramSize)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}

	sim, err := h.GetSimilarity(a, b)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", sim)
	return nil
}
