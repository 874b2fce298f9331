// Package corpusdb is the CLI's optional corpus cache: a local DuckDB
// file that remembers ingested document texts and exported models
// across embedctl invocations, so a demo corpus does not need to be
// re-ingested and retrained on every run. It is not part of the
// embedding engine itself.
package corpusdb

import (
	"database/sql"
	"fmt"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Open opens (or creates) the corpus cache at <dir>/corpus.db.
func Open(dir string) (*sql.DB, error) {
	path := filepath.Join(dir, "corpus.db")
	d, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open corpus db %s: %w", path, err)
	}
	if err := d.Ping(); err != nil {
		d.Close()
		return nil, fmt.Errorf("ping corpus db %s: %w", path, err)
	}
	if err := InitSchema(d); err != nil {
		d.Close()
		return nil, fmt.Errorf("init corpus schema: %w", err)
	}
	return d, nil
}

// InsertDocument records an ingested document. id should be unique per
// document (the controller's docid.Generator output).
func InsertDocument(d *sql.DB, id, rawText, role string) error {
	_, err := d.Exec(
		`INSERT INTO documents (id, raw_text, role, ingested_at)
		 VALUES ($1, $2, $3, now())`,
		id, rawText, role,
	)
	if err != nil {
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

// DocumentExists reports whether rawText has already been cached. It
// matches on exact raw text, as the controller's in-memory dedup does.
func DocumentExists(d *sql.DB, rawText string) (bool, error) {
	var count int
	err := d.QueryRow("SELECT count(*) FROM documents WHERE raw_text = $1", rawText).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check document exists: %w", err)
	}
	return count > 0, nil
}

// DocumentRow is one cached document.
type DocumentRow struct {
	ID   string
	Text string
	Role string
}

// ListDocuments returns every cached document, oldest first.
func ListDocuments(d *sql.DB) ([]DocumentRow, error) {
	rows, err := d.Query("SELECT id, raw_text, role FROM documents ORDER BY ingested_at")
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var result []DocumentRow
	for rows.Next() {
		var r DocumentRow
		if err := rows.Scan(&r.ID, &r.Text, &r.Role); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		result = append(result, r)
	}
	return result, rows.Err()
}

// ClearDocuments removes every cached document, so the caller can
// re-mirror the embedder's current document list without id conflicts.
func ClearDocuments(d *sql.DB) error {
	_, err := d.Exec("DELETE FROM documents")
	if err != nil {
		return fmt.Errorf("clear documents: %w", err)
	}
	return nil
}

// DocumentCount returns the number of cached documents.
func DocumentCount(d *sql.DB) (int, error) {
	var count int
	err := d.QueryRow("SELECT count(*) FROM documents").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count documents: %w", err)
	}
	return count, nil
}

// StoreModel saves an exported model JSON payload under name,
// overwriting any previous export with the same name.
func StoreModel(d *sql.DB, name string, payload []byte) error {
	_, err := d.Exec(
		`INSERT INTO models (name, payload, exported_at) VALUES ($1, $2, now())
		 ON CONFLICT (name) DO UPDATE SET payload = $2, exported_at = now()`,
		name, string(payload),
	)
	if err != nil {
		return fmt.Errorf("store model %s: %w", name, err)
	}
	return nil
}

// LoadModel returns the most recently stored model payload for name.
// found is false if no model has been stored under that name.
func LoadModel(d *sql.DB, name string) (payload []byte, found bool, err error) {
	var s string
	err = d.QueryRow("SELECT payload FROM models WHERE name = $1", name).Scan(&s)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load model %s: %w", name, err)
	}
	return []byte(s), true, nil
}

// WriteState writes a key-value pair to the corpus_state table, for
// small bits of cross-run bookkeeping (e.g. last trained K).
func WriteState(d *sql.DB, key, value string) error {
	_, err := d.Exec(
		`INSERT INTO corpus_state (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write corpus_state: %w", err)
	}
	return nil
}

// ReadState reads a value previously written with WriteState. found is
// false if key is unset.
func ReadState(d *sql.DB, key string) (value string, found bool, err error) {
	err = d.QueryRow("SELECT value FROM corpus_state WHERE key = $1", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read corpus_state: %w", err)
	}
	return value, true, nil
}
