package hposet

import (
	"github.com/hpokit/gohpo/matrix"
	"github.com/hpokit/gohpo/ontology"
	"github.com/hpokit/gohpo/ontology/hpoerr"
	"github.com/hpokit/gohpo/similarity"
)

// Combiner reduces a full |A|x|B| pairwise similarity matrix to a single
// set-level score. weightsA/weightsB carry each row/column term's
// information content under the kind the matrix was built with, for
// combiners that weight best matches by specificity.
type Combiner func(m *matrix.Matrix, weightsA, weightsB []float64) (float64, error)

var combiners = map[string]Combiner{
	"funSimAvg": FunSimAvg,
	"funSimMax": FunSimMax,
	"BMA":       BMA,
	"BMWA":      BMWA,
}

// Combine looks up a registered combiner by name. An empty set on
// either side of the matrix (zero rows or zero columns) has no
// best-match to take in that direction, so it short-circuits to 0.0
// rather than reaching into the combiner and hitting a RowMax/ColMax
// error on a zero-width row or column.
func Combine(name string, m *matrix.Matrix, weightsA, weightsB []float64) (float64, error) {
	c, ok := combiners[name]
	if !ok {
		return 0, hpoerr.NotFound("similarity combiner", name)
	}
	if m.Rows() == 0 || m.Cols() == 0 {
		return 0, nil
	}
	return c(m, weightsA, weightsB)
}

// SimilarityMatrix builds the |a.Len()|x|b.Len()| matrix of pairwise
// kernel scores between every term in a and every term in b.
func SimilarityMatrix(o *ontology.Ontology, a, b *Set, kernel, kind string) (*matrix.Matrix, error) {
	m := matrix.New(a.Len(), b.Len())
	k, err := similarity.Get(kernel)
	if err != nil {
		return nil, err
	}
	for i, ta := range a.terms {
		for j, tb := range b.terms {
			score, err := k(o, ta, tb, kind)
			if err != nil {
				return nil, err
			}
			if err := m.Set(i, j, score); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Similarity is the set-level entry point: build the pairwise matrix
// under kernel/kind, then reduce it with the named combine method.
func Similarity(o *ontology.Ontology, a, b *Set, kernel, kind, combine string) (float64, error) {
	m, err := SimilarityMatrix(o, a, b, kernel, kind)
	if err != nil {
		return 0, err
	}
	return Combine(combine, m, a.InformationContent(kind), b.InformationContent(kind))
}

func avgRowMax(m *matrix.Matrix) (float64, error) {
	if m.Rows() == 0 {
		return 0, nil
	}
	sum := 0.0
	for r := 0; r < m.Rows(); r++ {
		best, _, err := m.RowMax(r)
		if err != nil {
			return 0, err
		}
		sum += best
	}
	return sum / float64(m.Rows()), nil
}

func avgColMax(m *matrix.Matrix) (float64, error) {
	if m.Cols() == 0 {
		return 0, nil
	}
	sum := 0.0
	for c := 0; c < m.Cols(); c++ {
		best, _, err := m.ColMax(c)
		if err != nil {
			return 0, err
		}
		sum += best
	}
	return sum / float64(m.Cols()), nil
}

// FunSimAvg averages the two directional best-match averages: the mean
// best match from every term of A into B, and the mean best match from
// every term of B into A. An empty set on either side yields 0.0.
func FunSimAvg(m *matrix.Matrix, _, _ []float64) (float64, error) {
	if m.Rows() == 0 || m.Cols() == 0 {
		return 0, nil
	}
	rowAvg, err := avgRowMax(m)
	if err != nil {
		return 0, err
	}
	colAvg, err := avgColMax(m)
	if err != nil {
		return 0, err
	}
	return (rowAvg + colAvg) / 2, nil
}

// FunSimMax takes the larger of the two directional best-match
// averages, favoring whichever set is the more specific query. An
// empty set on either side yields 0.0.
func FunSimMax(m *matrix.Matrix, _, _ []float64) (float64, error) {
	if m.Rows() == 0 || m.Cols() == 0 {
		return 0, nil
	}
	rowAvg, err := avgRowMax(m)
	if err != nil {
		return 0, err
	}
	colAvg, err := avgColMax(m)
	if err != nil {
		return 0, err
	}
	if colAvg > rowAvg {
		return colAvg, nil
	}
	return rowAvg, nil
}

// BMA (Best Match Average) is the mean of every row's best match and
// every column's best match taken together, one pooled average over
// both directions rather than an average of two directional averages.
// An empty set on either side yields 0.0.
func BMA(m *matrix.Matrix, _, _ []float64) (float64, error) {
	if m.Rows() == 0 || m.Cols() == 0 {
		return 0, nil
	}
	var sum float64
	for r := 0; r < m.Rows(); r++ {
		best, _, err := m.RowMax(r)
		if err != nil {
			return 0, err
		}
		sum += best
	}
	for c := 0; c < m.Cols(); c++ {
		best, _, err := m.ColMax(c)
		if err != nil {
			return 0, err
		}
		sum += best
	}
	n := m.Rows() + m.Cols()
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

// BMWA (Best Match Weighted Average) weights every row's best match by
// that row term's information content and every column's best match by
// that column term's information content, then normalizes by the total
// weight across both directions, so specific terms count more than
// uninformative ones. An empty set on either side yields 0.0.
func BMWA(m *matrix.Matrix, weightsA, weightsB []float64) (float64, error) {
	if m.Rows() == 0 || m.Cols() == 0 {
		return 0, nil
	}
	var weightedSum, weightTotal float64
	for r := 0; r < m.Rows(); r++ {
		best, _, err := m.RowMax(r)
		if err != nil {
			return 0, err
		}
		w := 1.0
		if r < len(weightsA) {
			w = weightsA[r]
			if w == 0 {
				w = 1
			}
		}
		weightedSum += best * w
		weightTotal += w
	}
	for c := 0; c < m.Cols(); c++ {
		best, _, err := m.ColMax(c)
		if err != nil {
			return 0, err
		}
		w := 1.0
		if c < len(weightsB) {
			w = weightsB[c]
			if w == 0 {
				w = 1
			}
		}
		weightedSum += best * w
		weightTotal += w
	}
	if weightTotal == 0 {
		return 0, nil
	}
	return weightedSum / weightTotal, nil
}
