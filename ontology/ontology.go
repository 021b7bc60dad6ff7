package ontology

import (
	"iter"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/hpokit/gohpo/ontology/hpoerr"
)

// Ontology is the frozen, process-wide registry of terms, the is-a
// graph, and the gene/disease registries. It is built once by Load and
// is immutable by contract thereafter: nothing on Ontology, Term, Gene,
// or Disease mutates after Load returns, except the custom IC values
// installed through SetCustomIC. Reinitializing via Load again
// replaces the package-level singleton atomically; handles already held
// by in-flight callers keep working against the snapshot they were
// issued.
type Ontology struct {
	store      *Store
	graph      *Graph
	Genes      *GeneRegistry
	Omim       *DiseaseRegistry
	Orpha      *DiseaseRegistry
	Decipher   *DiseaseRegistry
	Generation uint64
}

var (
	global     atomic.Pointer[Ontology]
	generation atomic.Uint64
)

// Global returns the current process-wide Ontology singleton, or nil if
// Load has never succeeded.
func Global() *Ontology { return global.Load() }

// SetGlobal atomically replaces the process-wide singleton. Handles to
// the previous Ontology remain valid; they simply stop being the one new
// callers of Global reach.
func SetGlobal(o *Ontology) { global.Store(o) }

// Len returns the number of terms in the ontology, including obsolete
// ones.
func (o *Ontology) Len() int { return o.store.Len() }

// All returns every term in ascending-index order.
func (o *Ontology) All() []*Term { return o.store.All() }

// Graph exposes the underlying is-a graph for callers that need direct
// access to closures or gonum interop, beyond the façade methods below.
func (o *Ontology) Graph() *Graph { return o.graph }

// Get resolves query, which must be an int/TermIndex (dense index), a
// string of the form "HP:0000118" (canonical or alt id), or an exact
// term name. Missing terms fail with a NotFoundError and unsupported
// query types with a DomainError — never a silent nil.
func (o *Ontology) Get(query any) (*Term, error) {
	switch v := query.(type) {
	case TermIndex:
		return o.store.Get(v)
	case int:
		return o.store.Get(TermIndex(v))
	case string:
		if strings.HasPrefix(v, "HP:") {
			return o.store.GetByID(v)
		}
		return o.MatchName(v)
	default:
		return nil, hpoerr.Domain("unsupported query type for Get")
	}
}

// MatchName returns the unique term with the exact name s.
func (o *Ontology) MatchName(s string) (*Term, error) {
	return o.store.GetByName(s)
}

// SynonymMatch returns the first exact (case-insensitive) match on name
// or synonym, preferring a name match over a synonym match.
func (o *Ontology) SynonymMatch(s string) (*Term, error) {
	if t, err := o.store.GetByName(s); err == nil {
		return t, nil
	}
	lower := strings.ToLower(s)
	for _, t := range o.store.All() {
		if !t.IsObsolete && strings.ToLower(t.Name) == lower {
			return t, nil
		}
	}
	if t, ok := o.store.bySynonym[lower]; ok {
		return t, nil
	}
	return nil, hpoerr.NotFound("term", s)
}

// Search returns a lazy, ascending-index sequence over every term whose
// name contains substring, case-insensitive.
func (o *Ontology) Search(substring string) iter.Seq[*Term] {
	needle := strings.ToLower(substring)
	return func(yield func(*Term) bool) {
		for _, t := range o.store.All() {
			if strings.Contains(strings.ToLower(t.Name), needle) {
				if !yield(t) {
					return
				}
			}
		}
	}
}

// SynonymSearch is Search, additionally matching against synonyms.
func (o *Ontology) SynonymSearch(substring string) iter.Seq[*Term] {
	needle := strings.ToLower(substring)
	return func(yield func(*Term) bool) {
		for _, t := range o.store.All() {
			if strings.Contains(strings.ToLower(t.Name), needle) {
				if !yield(t) {
					return
				}
				continue
			}
			for _, syn := range t.Synonyms {
				if strings.Contains(strings.ToLower(syn), needle) {
					if !yield(t) {
						return
					}
					break
				}
			}
		}
	}
}

// Path resolves both queries with Get and returns the
// shortest connection between them, per §4.1.
func (o *Ontology) Path(q1, q2 any) (PathResult, error) {
	t1, err := o.Get(q1)
	if err != nil {
		return PathResult{}, err
	}
	t2, err := o.Get(q2)
	if err != nil {
		return PathResult{}, err
	}
	return o.graph.PathToOther(t1.Index, t2.Index)
}

// SetCustomIC installs a custom IC value for term under key, replacing
// any prior value for that key via copy-on-write (§4.5/§5).
func (o *Ontology) SetCustomIC(term *Term, key string, value float64) {
	term.IC.setCustom(key, value)
}

// indexQuery parses a user-supplied integer-looking string as a
// TermIndex, used by CLI-style callers that only have strings to work
// with.
func indexQuery(s string) (TermIndex, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return TermIndex(n), true
}
