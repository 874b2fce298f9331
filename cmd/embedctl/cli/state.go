package cli

import (
	"database/sql"
	"os"

	"github.com/satetsu888/japanese-tfidf-embedder/internal/corpusdb"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/modelio"
	"github.com/satetsu888/japanese-tfidf-embedder/pkg/embedder"
)

// modelCacheName is the single slot embedctl stores its working model
// export under. A richer CLI could support named snapshots; this demo
// harness only ever has one corpus in flight per --corpus-dir.
const modelCacheName = "latest"

// defaultUpdateThreshold disables embedctl's auto-retrain: the CLI
// drives retraining explicitly via `embedctl train` rather than
// relying on the change-ratio trigger meant for long-lived host
// processes.
const defaultUpdateThreshold = 1e9

func openCorpus(dir string) (*sql.DB, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return corpusdb.Open(dir)
}

// loadEmbedder rebuilds an IncrementalEmbedder from the cached model
// export, if one exists, or returns a fresh embedder otherwise. The
// second return value is a non-fatal engine-version compatibility
// warning (empty string if none) a caller may print.
func loadEmbedder(d *sql.DB) (*embedder.IncrementalEmbedder, string, error) {
	payload, found, err := corpusdb.LoadModel(d, modelCacheName)
	if err != nil {
		return nil, "", err
	}
	if !found {
		return embedder.NewIncrementalEmbedder(defaultUpdateThreshold), "", nil
	}
	warning := modelio.CompatibilityWarning(payload)
	e := embedder.NewIncrementalEmbedder(defaultUpdateThreshold)
	if err := e.ImportModel(payload, defaultUpdateThreshold); err != nil {
		return nil, "", err
	}
	return e, warning, nil
}

// saveEmbedder exports e's current state and stores it as this corpus
// dir's working model.
func saveEmbedder(d *sql.DB, e *embedder.IncrementalEmbedder) error {
	payload, err := e.ExportModel()
	if err != nil {
		return err
	}
	return corpusdb.StoreModel(d, modelCacheName, payload)
}
