package cli

import (
	"fmt"
	"os"

	"github.com/satetsu888/japanese-tfidf-embedder/internal/userdict"
	"github.com/spf13/cobra"
)

func newDictionaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dictionary",
		Short: "Inspect how a user dictionary canonicalizes text",
	}
	cmd.AddCommand(newDictionaryApplyCmd())
	return cmd
}

func newDictionaryApplyCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "apply --file <dictionary.json> <text>",
		Short: "Print text after dictionary canonicalization",
		Long: `Dictionary canonicalization happens at ingestion time, before
tokenization, and is not part of the exported model — embedctl has no
notion of "the active dictionary" across commands. This prints what a
given dictionary would do to text before you pass --dictionary-
equivalent input to ingest.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runDictionaryApply(cmd, file, args[0])
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "Path to a dictionary JSON array")
	cmd.MarkFlagRequired("file")
	return cmd
}

func runDictionaryApply(cmd *cobra.Command, dictPath, text string) error {
	data, err := os.ReadFile(dictPath)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}

	dict, err := userdict.Parse(data)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), dict.Apply(text))
	return nil
}
