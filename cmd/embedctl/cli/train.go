package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTrainCmd(corpusDir *string) *cobra.Command {
	var k int

	cmd := &cobra.Command{
		Use:   "train",
		Short: "Run a full retrain pass over the ingested corpus",
		Long: `Start a background retrain and drive it to completion in this
process, stepping BUILDING_MATRIX, COMPUTING_SVD, and FINALIZING in a
tight loop. A long-lived host would instead call step_retrain once per
frame; embedctl has no frame loop to interleave with, so it just runs
the steps back to back.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return runTrain(cmd, *corpusDir, k)
		},
	}
	cmd.Flags().IntVar(&k, "k", 50, "Embedding dimension (ignored once K is latched, which the first ingested document does)")
	return cmd
}

func runTrain(cmd *cobra.Command, corpusDir string, k int) error {
	w := cmd.OutOrStdout()

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

	if e.GetUniqueDocumentCount() < 2 {
		fmt.Fprintln(w, "need at least 2 documents to train; run embedctl ingest first")
		return nil
	}

	if err := e.StartBackgroundRetrain(k); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}

	steps := 0
	for !e.StepRetrain() {
		steps++
	}

	if err := saveEmbedder(d, e); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return newSilentError(err)
	}

	fmt.Fprintf(w, "retrained over %d steps: %d documents, %d searchable\n",
		steps, e.GetUniqueDocumentCount(), e.GetSearchableCount())
	return nil
}
