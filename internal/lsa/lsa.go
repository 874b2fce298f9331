// Package lsa implements the TF-IDF + truncated-SVD latent semantic
// analysis engine: a full SVD over the (compacted) dense term-document
// matrix, truncation to K dimensions with deterministic sign-fixing,
// and query projection.
package lsa

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/satetsu888/japanese-tfidf-embedder/internal/embederr"
	"github.com/satetsu888/japanese-tfidf-embedder/internal/tfidf"
)

// zeroNormTolerance is the threshold below which a projected vector is
// treated as the zero vector rather than normalized.
const zeroNormTolerance = 1e-12

// Model holds the trained projection: a V×K term-to-latent-space matrix
// and the top-K singular values used to scale latent coordinates.
type Model struct {
	V       int
	K       int
	Trained bool

	// Projection is V rows x K cols. Zero-valued until Trained.
	Projection *mat.Dense
	// SingularWeights has length K; zero-padded past the true rank.
	SingularWeights []float64
}

// Untrained returns the zero model: trained=false, transform returns
// the zero vector until the first successful SVD.
func Untrained(v, k int) *Model {
	return &Model{V: v, K: k, Trained: false}
}

// Train computes a full SVD of m (N documents x V terms) and truncates
// to K dimensions. If N < 2 or V < 1, training is skipped and an
// untrained model is returned (not an error). A non-convergent SVD
// returns embederr.ErrNumericFailure; callers must keep the previous
// model in that case.
func Train(m *tfidf.Sparse, k int) (*Model, error) {
	n := len(m.Rows)
	v := m.V
	if n < 2 || v < 1 || k <= 0 {
		return Untrained(v, k), nil
	}

	// Densify only the corpus's nonzero columns.
	usedCols := compactColumns(m)
	ncols := len(usedCols)
	if ncols == 0 {
		return Untrained(v, k), nil
	}
	colIndex := make(map[int]int, ncols)
	for compact, full := range usedCols {
		colIndex[full] = compact
	}

	data := make([]float64, n*ncols)
	for i, row := range m.Rows {
		for _, e := range row.Entries {
			compact, ok := colIndex[e.ID]
			if !ok {
				continue
			}
			data[i*ncols+compact] = e.Value
		}
	}
	a := mat.NewDense(n, ncols, data)

	var svd mat.SVD
	if !svd.Factorize(a, mat.SVDThin) {
		return nil, embederr.ErrNumericFailure
	}

	var vFull mat.Dense
	svd.VTo(&vFull)
	values := svd.Values(nil)

	rank := 0
	if len(values) > 0 {
		tol := values[0] * 1e-12
		for _, s := range values {
			if s > tol {
				rank++
			}
		}
	}

	kPrime := k
	for _, bound := range []int{rank, v, n, ncols} {
		if bound < kPrime {
			kPrime = bound
		}
	}
	if kPrime < 0 {
		kPrime = 0
	}

	projection := mat.NewDense(v, k, nil)
	singularWeights := make([]float64, k)

	vRows, _ := vFull.Dims()
	for j := 0; j < kPrime; j++ {
		col := make([]float64, vRows)
		for i := 0; i < vRows; i++ {
			col[i] = vFull.At(i, j)
		}
		fixSign(col)
		for compact, full := range usedCols {
			projection.Set(full, j, col[compact])
		}
		singularWeights[j] = values[j]
	}
	// Remaining columns (kPrime..k) stay zero-padded when the true rank
	// falls short of K.

	return &Model{
		V:               v,
		K:               k,
		Trained:         true,
		Projection:      projection,
		SingularWeights: singularWeights,
	}, nil
}

// fixSign flips col in place so its largest-magnitude element is
// non-negative, for deterministic output across equivalent SVD runs.
func fixSign(col []float64) {
	maxAbs := 0.0
	maxVal := 0.0
	for _, x := range col {
		a := math.Abs(x)
		if a > maxAbs {
			maxAbs = a
			maxVal = x
		}
	}
	if maxVal < 0 {
		for i := range col {
			col[i] = -col[i]
		}
	}
}

// compactColumns returns the sorted list of full vocabulary ids that
// have at least one nonzero entry anywhere in m, i.e. the column set to
// densify.
func compactColumns(m *tfidf.Sparse) []int {
	present := make(map[int]bool)
	for _, row := range m.Rows {
		for _, e := range row.Entries {
			present[e.ID] = true
		}
	}
	cols := make([]int, 0, len(present))
	for id := range present {
		cols = append(cols, id)
	}
	// Deterministic ordering: ascending id.
	for i := 1; i < len(cols); i++ {
		for j := i; j > 0 && cols[j-1] > cols[j]; j-- {
			cols[j-1], cols[j] = cols[j], cols[j-1]
		}
	}
	return cols
}

// Project takes an L1-normalized, IDF-weighted term vector
// (tfidf.QueryVector's output), projects it through the model, and
// L2-normalizes the result. Returns a zero vector if the model is
// untrained or the pre-normalized result has negligible norm.
func (model *Model) Project(queryVec map[int]float64) []float64 {
	out := make([]float64, model.K)
	if !model.Trained || len(queryVec) == 0 {
		return out
	}

	for j := 0; j < model.K; j++ {
		var dot float64
		for id, x := range queryVec {
			if id < 0 || id >= model.V {
				continue
			}
			dot += x * model.Projection.At(id, j)
		}
		out[j] = dot * model.SingularWeights[j]
	}

	var normSq float64
	for _, x := range out {
		normSq += x * x
	}
	if normSq < zeroNormTolerance*zeroNormTolerance {
		return make([]float64, model.K)
	}
	norm := math.Sqrt(normSq)
	for i := range out {
		out[i] /= norm
	}
	return out
}

// CosineSimilarity computes the dot product of two equal-length vectors.
// Since transform always returns unit vectors or the zero vector, this
// is cosine similarity for any pair of transformed outputs.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot float64
	for i := range a {
		dot += a[i] * b[i]
	}
	return dot
}
