package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/satetsu888/japanese-tfidf-embedder/internal/corpusdb"
	"github.com/spf13/cobra"
)

func newIngestCmd(corpusDir *string) *cobra.Command {
	var k int
	var training bool

	cmd := &cobra.Command{
		Use:   "ingest <file>",
		Short: "Load one document per line from a text file",
		Long: `Read file one line at a time, treating each non-empty line as a
document, and add it to the corpus. Duplicate lines (by exact text) are
skipped. Use --training to mark the batch as training-only documents,
which shape the model but never appear in search results.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runIngest(cmd, *corpusDir, args[0], k, training)
		},
	}
	cmd.Flags().IntVar(&k, "k", 50, "Embedding dimension (only takes effect on the first document ever ingested)")
	cmd.Flags().BoolVar(&training, "training", false, "Mark ingested documents as training-only")
	return cmd
}

func runIngest(cmd *cobra.Command, corpusDir, path string, k int, training bool) error {
	w := cmd.OutOrStdout()

	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}
	defer f.Close()

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

	added, skipped := 0, 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ok bool
		if training {
			ok = e.AddDocumentForTraining(line, k)
		} else {
			ok = e.AddDocument(line, k)
		}
		if ok {
			added++
		} else {
			skipped++
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}

	if err := corpusdb.ClearDocuments(d); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}
	for _, doc := range e.Documents() {
		if err := corpusdb.InsertDocument(d, doc.ID, doc.Text, doc.Role); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return newSilentError(err)
		}
	}

	if err := saveEmbedder(d, e); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}

	fmt.Fprintf(w, "ingested %d documents (%d skipped as duplicates), %d total in corpus\n",
		added, skipped, e.GetUniqueDocumentCount())
	return nil
}
