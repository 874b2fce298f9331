package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version is the embedctl build version, stamped by -ldflags in release
// builds; "dev" otherwise.
var Version = "dev"

const gettingStarted = `

Getting Started:
  embedctl ingest corpus.txt     Load one document per line
  embedctl train                 Run a full retrain pass
  embedctl search "query"        Find similar documents
  embedctl status                Show corpus and model state
`

// NewRootCmd returns the root command for the embedctl CLI.
func NewRootCmd() *cobra.Command {
	var corpusDir string

	cmd := &cobra.Command{
		Use:           "embedctl",
		Short:         "embedctl — drive the Japanese TF-IDF/LSA embedder from the command line",
		Long:          "embedctl is a demo harness over the incremental TF-IDF/LSA embedder." + gettingStarted,
		SilenceErrors: true,
		SilenceUsage:  true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
	}
	cmd.PersistentFlags().StringVar(&corpusDir, "corpus-dir", ".embedctl", "Directory holding the corpus cache (corpus.db)")
	cmd.SetVersionTemplate("embedctl {{.Version}}\n")
	cmd.Version = Version

	coreGroup := &cobra.Group{ID: "core", Title: "Core Commands:"}
	queryGroup := &cobra.Group{ID: "query", Title: "Query Commands:"}
	cmd.AddGroup(coreGroup, queryGroup)

	ingestCmd := newIngestCmd(&corpusDir)
	ingestCmd.GroupID = "core"
	trainCmd := newTrainCmd(&corpusDir)
	trainCmd.GroupID = "core"
	statusCmd := newStatusCmd(&corpusDir)
	statusCmd.GroupID = "core"

	searchCmd := newSearchCmd(&corpusDir)
	searchCmd.GroupID = "query"
	similarityCmd := newSimilarityCmd(&corpusDir)
	similarityCmd.GroupID = "query"
	hashCmd := newHashCmd()
	hashCmd.GroupID = "query"
	dictionaryCmd := newDictionaryCmd()
	dictionaryCmd.GroupID = "query"

	cmd.AddCommand(ingestCmd, trainCmd, statusCmd)
	cmd.AddCommand(searchCmd, similarityCmd, hashCmd, dictionaryCmd)
	cmd.AddCommand(newVersionCmd())

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "embedctl", Version)
			return nil
		},
	}
}

// Run executes the root command and exits with the appropriate code.
func Run() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		if !isSilentError(err) {
			fmt.Fprintln(rootCmd.ErrOrStderr(), err)
		}
		os.Exit(1)
	}
}
