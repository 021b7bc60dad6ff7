// Package hposet models a patient's or a query's phenotype profile as a
// set of ontology terms, with the reductions (modifier removal, obsolete
// replacement, child-node collapse) pyhpo applies before any set-level
// computation, plus the pairwise/aggregate similarity built on top of
// the similarity and matrix packages.
package hposet

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hpokit/gohpo/ontology"
	"github.com/hpokit/gohpo/ontology/hpoerr"
)

// Set is an ordered, duplicate-free collection of ontology terms. Order
// is insertion order; callers that need a canonical order should sort
// via Serialize or Terms() themselves.
type Set struct {
	o     *ontology.Ontology
	terms []*ontology.Term
	seen  map[ontology.TermIndex]struct{}
}

func newSet(o *ontology.Ontology) *Set {
	return &Set{o: o, seen: make(map[ontology.TermIndex]struct{})}
}

func (s *Set) add(t *ontology.Term) {
	if _, ok := s.seen[t.Index]; ok {
		return
	}
	s.seen[t.Index] = struct{}{}
	s.terms = append(s.terms, t)
}

// FromQueries builds a Set by resolving each query through o.Get, per
// the same query grammar as Ontology.Get (index, canonical id, or exact
// name).
func FromQueries(o *ontology.Ontology, queries []any) (*Set, error) {
	s := newSet(o)
	for _, q := range queries {
		t, err := o.Get(q)
		if err != nil {
			return nil, err
		}
		s.add(t)
	}
	return s, nil
}

// FromSerialized parses a "+"-separated list of raw term indices, the
// inverse of Serialize.
func FromSerialized(o *ontology.Ontology, serialized string) (*Set, error) {
	s := newSet(o)
	for _, field := range strings.Split(serialized, "+") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, hpoerr.Domain("invalid serialized term index: " + field)
		}
		t, err := o.Get(ontology.TermIndex(n))
		if err != nil {
			return nil, err
		}
		s.add(t)
	}
	return s, nil
}

// FromTerms builds a Set directly from already-resolved terms.
func FromTerms(o *ontology.Ontology, terms []*ontology.Term) *Set {
	s := newSet(o)
	for _, t := range terms {
		s.add(t)
	}
	return s
}

// BasicSet builds a Set from queries and immediately applies the three
// standard profile reductions, in order: ReplaceObsolete, RemoveModifier,
// then ChildNodes. This is the profile a caller almost always wants when
// turning a raw phenotype list into a comparison-ready set.
func BasicSet(o *ontology.Ontology, queries []any) (*Set, error) {
	s, err := FromQueries(o, queries)
	if err != nil {
		return nil, err
	}
	return s.ReplaceObsolete().RemoveModifier().ChildNodes(), nil
}

// Terms returns the set's terms in insertion order.
func (s *Set) Terms() []*ontology.Term {
	out := make([]*ontology.Term, len(s.terms))
	copy(out, s.terms)
	return out
}

// Len returns the number of terms in the set.
func (s *Set) Len() int { return len(s.terms) }

// RemoveModifier drops every term for which Term.IsModifier is true,
// returning a new Set (the receiver is left untouched).
func (s *Set) RemoveModifier() *Set {
	out := newSet(s.o)
	for _, t := range s.terms {
		if !t.IsModifier() {
			out.add(t)
		}
	}
	return out
}

// ReplaceObsolete follows each obsolete term's ReplacedBy chain to a
// current term, dropping any term whose chain does not end at a current
// term (including an obsolete term with no ReplacedBy). Cycles
// in ReplacedBy (which should never occur in a well-formed release) are
// guarded against with a bounded hop count.
func (s *Set) ReplaceObsolete() *Set {
	out := newSet(s.o)
	for _, t := range s.terms {
		cur := t
		for hops := 0; cur.IsObsolete && cur.ReplacedBy != "" && hops < 32; hops++ {
			next, err := s.o.Get(cur.ReplacedBy)
			if err != nil {
				cur = nil
				break
			}
			cur = next
		}
		if cur != nil && !cur.IsObsolete {
			out.add(cur)
		}
	}
	return out
}

// ChildNodes returns the subset of terms that are not an ancestor of any
// other term in the set, i.e. the most specific terms only. A profile
// listing both "Scoliosis" and its parent "Abnormality of the spine"
// collapses to just "Scoliosis".
func (s *Set) ChildNodes() *Set {
	out := newSet(s.o)
	for _, t := range s.terms {
		isAncestorOfAnother := false
		for _, other := range s.terms {
			if other.Index == t.Index {
				continue
			}
			if _, ok := other.Ancestors[t.Index]; ok {
				isAncestorOfAnother = true
				break
			}
		}
		if !isAncestorOfAnother {
			out.add(t)
		}
	}
	return out
}

// AllGenes returns the union of every gene annotated (directly or via
// propagation) to any term in the set.
func (s *Set) AllGenes() []*ontology.Gene {
	seen := make(map[int]struct{})
	var out []*ontology.Gene
	for _, t := range s.terms {
		for id := range t.Genes {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			g, err := s.o.Genes.Get(id)
			if err == nil {
				out = append(out, g)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *Set) diseaseUnion(kind ontology.AnnotationKind, registry *ontology.DiseaseRegistry) []*ontology.Disease {
	seen := make(map[int]struct{})
	var out []*ontology.Disease
	for _, t := range s.terms {
		for id := range t.DiseaseSet(kind) {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			d, err := registry.Get(id)
			if err == nil {
				out = append(out, d)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// OmimDiseases returns the union of OMIM diseases annotated to any term
// in the set.
func (s *Set) OmimDiseases() []*ontology.Disease {
	return s.diseaseUnion(ontology.KindOmim, s.o.Omim)
}

// OrphaDiseases returns the union of Orphanet diseases annotated to any
// term in the set.
func (s *Set) OrphaDiseases() []*ontology.Disease {
	return s.diseaseUnion(ontology.KindOrpha, s.o.Orpha)
}

// DecipherDiseases returns the union of DECIPHER diseases annotated to
// any term in the set.
func (s *Set) DecipherDiseases() []*ontology.Disease {
	return s.diseaseUnion(ontology.KindDecipher, s.o.Decipher)
}

// InformationContent returns each term's IC under kind, in the set's
// term order.
func (s *Set) InformationContent(kind string) []float64 {
	out := make([]float64, len(s.terms))
	for i, t := range s.terms {
		v, _ := t.IC.Get(kind)
		out[i] = v
	}
	return out
}

// VarianceStats summarizes the shortest is-a path lengths between every
// distinct pair of terms in a set.
type VarianceStats struct {
	Mean float64
	Min  float64
	Max  float64
	All  []float64
}

// Variance computes the mean, min, and max shortest-path distance
// between every distinct pair of terms in the set (one direction per
// pair, via CombinationsOneWay), along with the full distance list.
func (s *Set) Variance() (VarianceStats, error) {
	pairs := s.CombinationsOneWay()
	if len(pairs) == 0 {
		return VarianceStats{}, nil
	}
	distances := make([]float64, len(pairs))
	for i, p := range pairs {
		path, err := s.o.Graph().PathToOther(p.A.Index, p.B.Index)
		if err != nil {
			return VarianceStats{}, err
		}
		distances[i] = float64(path.Length)
	}
	sum, min, max := 0.0, distances[0], distances[0]
	for _, d := range distances {
		sum += d
		if d < min {
			min = d
		}
		if d > max {
			max = d
		}
	}
	return VarianceStats{
		Mean: sum / float64(len(distances)),
		Min:  min,
		Max:  max,
		All:  distances,
	}, nil
}

// TermPair is one unordered or ordered pairing produced by Combinations
// / CombinationsOneWay.
type TermPair struct {
	A, B *ontology.Term
}

// Combinations returns every ordered pair (i,j), including self-pairs
// (i,i), over the set's terms.
func (s *Set) Combinations() []TermPair {
	var out []TermPair
	for i := 0; i < len(s.terms); i++ {
		for j := 0; j < len(s.terms); j++ {
			out = append(out, TermPair{A: s.terms[i], B: s.terms[j]})
		}
	}
	return out
}

// CombinationsOneWay returns every unordered pair {i,j}, i<j, of
// distinct terms in the set: each pair scored once, in one direction.
func (s *Set) CombinationsOneWay() []TermPair {
	var out []TermPair
	for i := 0; i < len(s.terms); i++ {
		for j := i + 1; j < len(s.terms); j++ {
			out = append(out, TermPair{A: s.terms[i], B: s.terms[j]})
		}
	}
	return out
}

// Serialize renders the set as a "+"-separated, ascending list of raw
// term indices, a stable and re-parseable form (see FromSerialized).
func (s *Set) Serialize() string {
	sorted := make([]*ontology.Term, len(s.terms))
	copy(sorted, s.terms)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Index < sorted[j].Index })
	fields := make([]string, len(sorted))
	for i, t := range sorted {
		fields[i] = strconv.Itoa(int(t.Index))
	}
	return strings.Join(fields, "+")
}
