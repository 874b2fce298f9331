package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSimilarityCmd(corpusDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "similarity <a> <b>",
		Short: "Print the cosine similarity between two texts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runSimilarity(cmd, *corpusDir, args[0], args[1])
		},
	}
}

func runSimilarity(cmd *cobra.Command, corpusDir, a, b string) error {
	d, err := openCorpus(corpusDir)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}
	defer d.Close()

	e, warning, err := loadEmbedder(d)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}
	if warning != "" {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", warning)
	}

	sim, err := e.GetSimilarity(a, b)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%.6f\n", sim)
	return nil
}
