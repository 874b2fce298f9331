package corpusdb

import "testing"

func TestOpen_CreatesSchemaAndPings(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	d, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	if err := d.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	tables := []string{"documents", "models", "corpus_state"}
	for _, table := range tables {
		var count int
		if err := d.QueryRow("SELECT count(*) FROM " + table).Scan(&count); err != nil {
			t.Errorf("table %s should exist: %v", table, err)
		}
	}
}

func TestInsertAndListDocuments(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	d, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	if err := InsertDocument(d, "doc-1", "猫が好きです", "searchable"); err != nil {
		t.Fatalf("InsertDocument: %v", err)
	}
	if err := InsertDocument(d, "doc-2", "犬も好きです", "training"); err != nil {
		t.Fatalf("InsertDocument: %v", err)
	}

	count, err := DocumentCount(d)
	if err != nil {
		t.Fatalf("DocumentCount: %v", err)
	}
	if count != 2 {
		t.Fatalf("count = %d, want 2", count)
	}

	exists, err := DocumentExists(d, "猫が好きです")
	if err != nil {
		t.Fatalf("DocumentExists: %v", err)
	}
	if !exists {
		t.Error("expected document to exist")
	}

	docs, err := ListDocuments(d)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("len(docs) = %d, want 2", len(docs))
	}
}

func TestStoreAndLoadModel(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	d, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	if _, found, err := LoadModel(d, "latest"); err != nil || found {
		t.Fatalf("expected no model stored yet, found=%v err=%v", found, err)
	}

	if err := StoreModel(d, "latest", []byte(`{"version":1}`)); err != nil {
		t.Fatalf("StoreModel: %v", err)
	}
	payload, found, err := LoadModel(d, "latest")
	if err != nil {
		t.Fatalf("LoadModel: %v", err)
	}
	if !found {
		t.Fatal("expected model to be found")
	}
	if string(payload) != `{"version":1}` {
		t.Errorf("payload = %s, want {\"version\":1}", payload)
	}
}

func TestWriteAndReadState(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	d, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer d.Close()

	if err := WriteState(d, "last_k", "64"); err != nil {
		t.Fatalf("WriteState: %v", err)
	}
	value, found, err := ReadState(d, "last_k")
	if err != nil {
		t.Fatalf("ReadState: %v", err)
	}
	if !found || value != "64" {
		t.Errorf("value = %q found=%v, want 64/true", value, found)
	}
}
