package cli

import (
	"fmt"

	"github.com/satetsu888/japanese-tfidf-embedder/internal/corpusdb"
	"github.com/spf13/cobra"
)

func newStatusCmd(corpusDir *string) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show corpus and model state for this corpus directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runStatus(cmd, *corpusDir)
		},
	}
}

func runStatus(cmd *cobra.Command, corpusDir string) error {
	w := cmd.OutOrStdout()

	d, err := openCorpus(corpusDir)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}
	defer d.Close()

	count, err := corpusdb.DocumentCount(d)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}

	e, warning, err := loadEmbedder(d)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}

	fmt.Fprintf(w, "corpus dir:       %s\n", corpusDir)
	fmt.Fprintf(w, "cached documents: %d\n", count)
	fmt.Fprintf(w, "unique documents: %d\n", e.GetUniqueDocumentCount())
	fmt.Fprintf(w, "searchable:       %d\n", e.GetSearchableCount())
	fmt.Fprintf(w, "retraining:       %v\n", e.IsRetraining())
	if warning != "" {
		fmt.Fprintf(w, "warning:          %s\n", warning)
	}
	return nil
}
