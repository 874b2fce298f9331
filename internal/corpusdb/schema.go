package corpusdb

import "database/sql"

// InitSchema creates the corpus cache tables if they do not exist.
func InitSchema(d *sql.DB) error {
	_, err := d.Exec(schemaDDL)
	return err
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS documents (
	id          VARCHAR PRIMARY KEY,
	raw_text    VARCHAR NOT NULL,
	role        VARCHAR NOT NULL DEFAULT 'searchable',
	ingested_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS models (
	name        VARCHAR PRIMARY KEY,
	payload     VARCHAR NOT NULL,
	exported_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS corpus_state (
	key   VARCHAR PRIMARY KEY,
	value VARCHAR NOT NULL
);
`
