// Package modelio implements the model serializer: a versioned JSON
// envelope for the vocabulary, IDF, projection, and document list,
// using goccy/go-json as internal/userdict and pkg/embedder also do.
package modelio

import (
	"bytes"
	"io"
	"strconv"

	"github.com/klauspost/compress/zstd"
	"golang.org/x/mod/semver"

	json "github.com/goccy/go-json"

	"github.com/satetsu888/japanese-tfidf-embedder/internal/controller"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/embederr"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/lsa"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/tokenizer"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/vocab"
	"gonum.org/v1/gonum/mat"
)

// schemaVersion is the only version this package accepts on import. This
// is the hard compatibility gate; engineVersion below is a soft one.
const schemaVersion = 1

// engineVersion is stamped into every export as a diagnostic alongside
// the hard schema version. Unlike schemaVersion, a mismatch here never
// fails Import — it only produces a warning string a caller can surface.
const engineVersion = "v1.0.0"

type documentJSON struct {
	Text string `json:"text"`
	Role string `json:"role"`
}

type modelJSON struct {
	Version         int            `json:"version"`
	EngineVersion   string         `json:"engine_version,omitempty"`
	K               int            `json:"K"`
	Vocab           []string       `json:"vocab"`
	DF              []uint32       `json:"df"`
	N               uint32         `json:"N"`
	IDF             []float32      `json:"idf"`
	Projection      [][]float32    `json:"projection"`
	SingularWeights []float32      `json:"singular_weights"`
	Documents       []documentJSON `json:"documents"`
}

// Export renders c's current state as the model JSON schema.
func Export(c *controller.Controller) ([]byte, error) {
	v := c.Vocab()
	model := c.LiveModel()
	idf := c.LiveIDF()

	doc := modelJSON{
		Version:         schemaVersion,
		EngineVersion:   engineVersion,
		K:               c.K(),
		Vocab:           append([]string{}, v.Surfaces()...),
		DF:              append([]uint32{}, v.DFs()...),
		N:               uint32(v.CorpusSize()),
		IDF:             toFloat32Slice(idf),
		Projection:      projectionRows(model),
		SingularWeights: toFloat32Slice(model.SingularWeights),
	}

	for _, d := range c.Documents() {
		role := "searchable"
		if d.Role == controller.RoleTraining {
			role = "training"
		}
		doc.Documents = append(doc.Documents, documentJSON{Text: d.RawText, Role: role})
	}

	return json.Marshal(doc)
}

// Import parses the model JSON schema and builds a fresh Controller
// with that state installed. Unknown schema versions and malformed
// payloads return embederr.ErrInvalidArgument.
func Import(data []byte, updateThreshold float64, opts ...controller.Option) (*controller.Controller, error) {
	var doc modelJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, embederr.ErrInvalidArgument
	}
	if doc.Version != schemaVersion {
		return nil, embederr.ErrInvalidArgument
	}

	if len(doc.Projection) != 0 {
		if len(doc.Projection) != len(doc.Vocab) {
			return nil, embederr.ErrInvalidArgument
		}
		for _, row := range doc.Projection {
			if len(row) != doc.K {
				return nil, embederr.ErrInvalidArgument
			}
		}
	}

	vocabStore := vocab.Restore(0, doc.Vocab, doc.DF, int(doc.N))
	idf := toFloat64Slice(doc.IDF)
	model := modelFromRows(doc.K, len(doc.Vocab), doc.Projection, doc.SingularWeights)

	c := controller.New(updateThreshold, opts...)

	docs := make([]*controller.Document, 0, len(doc.Documents))
	ids := newIDGen()
	for _, d := range doc.Documents {
		role := controller.RoleSearchable
		if d.Role == "training" {
			role = controller.RoleTraining
		}
		docs = append(docs, &controller.Document{
			ID:           ids.next(),
			RawText:      d.Text,
			TokenWeights: termWeightsFor(d.Text, vocabStore),
			Role:         role,
		})
	}

	c.Restore(doc.K, vocabStore, idf, model, docs)
	return c, nil
}

// CompatibilityWarning inspects an export's engine_version stamp against
// this package's engineVersion and returns a human-readable warning if
// they diverge, or "" if the export is current, legacy (no stamp), or
// the payload can't be parsed at all (Import will surface that error).
func CompatibilityWarning(data []byte) string {
	var doc struct {
		EngineVersion string `json:"engine_version"`
	}
	if err := json.Unmarshal(data, &doc); err != nil || doc.EngineVersion == "" {
		return ""
	}
	if !semver.IsValid(doc.EngineVersion) {
		return "model export has an unrecognized engine_version: " + doc.EngineVersion
	}
	if semver.Compare(doc.EngineVersion, engineVersion) != 0 {
		return "model was exported by engine " + doc.EngineVersion + ", this build is " + engineVersion
	}
	return ""
}

// ExportCompressed is Export wrapped in a zstd envelope, for hosts that
// persist models to disk or ship them over the wire.
func ExportCompressed(c *controller.Controller) ([]byte, error) {
	raw, err := Export(c)
	if err != nil {
		return nil, err
	}
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, err
	}
	defer enc.Close()
	return enc.EncodeAll(raw, nil), nil
}

// ImportCompressed reverses ExportCompressed.
func ImportCompressed(data []byte, updateThreshold float64, opts ...controller.Option) (*controller.Controller, error) {
	dec, err := zstd.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, embederr.ErrInvalidArgument
	}
	defer dec.Close()
	raw, err := io.ReadAll(dec)
	if err != nil {
		return nil, embederr.ErrInvalidArgument
	}
	return Import(raw, updateThreshold, opts...)
}

func projectionRows(m *lsa.Model) [][]float32 {
	if !m.Trained {
		return nil
	}
	rows, cols := m.Projection.Dims()
	out := make([][]float32, rows)
	for i := 0; i < rows; i++ {
		row := make([]float32, cols)
		for j := 0; j < cols; j++ {
			row[j] = float32(m.Projection.At(i, j))
		}
		out[i] = row
	}
	return out
}

func modelFromRows(k, v int, rows [][]float32, weights []float32) *lsa.Model {
	if len(rows) == 0 {
		return lsa.Untrained(v, k)
	}
	data := make([]float64, v*k)
	for i, row := range rows {
		for j, x := range row {
			data[i*k+j] = float64(x)
		}
	}
	return &lsa.Model{
		V:               v,
		K:               k,
		Trained:         true,
		Projection:      mat.NewDense(v, k, data),
		SingularWeights: toFloat64Slice(weights),
	}
}

func toFloat32Slice(in []float64) []float32 {
	out := make([]float32, len(in))
	for i, x := range in {
		out[i] = float32(x)
	}
	return out
}

func toFloat64Slice(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, x := range in {
		out[i] = float64(x)
	}
	return out
}

type idGen struct{ n int }

func newIDGen() *idGen { return &idGen{} }

func (g *idGen) next() string {
	g.n++
	return "imported-" + strconv.Itoa(g.n)
}

// termWeightsFor re-tokenizes the raw text against the already-restored
// vocabulary so Controller.Restore can recompute stored_vectors by
// projection rather than deserializing them.
func termWeightsFor(text string, v *vocab.Store) map[int]float64 {
	tokens := tokenizer.Tokenize(text)
	weights := make(map[int]float64, len(tokens))
	for _, tok := range tokens {
		id, ok := v.Lookup(tok.Surface)
		if !ok {
			continue
		}
		weights[id] += float64(tok.Weight)
	}
	return weights
}
