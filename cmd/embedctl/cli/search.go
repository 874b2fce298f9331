package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSearchCmd(corpusDir *string) *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Find the top-k most similar searchable documents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runSearch(cmd, *corpusDir, args[0], k)
		},
	}
	cmd.Flags().IntVar(&k, "k", 5, "Number of results to return")
	return cmd
}

func runSearch(cmd *cobra.Command, corpusDir, query string, k int) error {
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

	data, err := e.FindSimilarWithScores(query, k)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
