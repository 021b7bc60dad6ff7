package ontology

import (
	"sort"
	"strconv"
	"strings"

	"github.com/hpokit/gohpo/ontology/hpoerr"
)

// Store owns every Term in the ontology. Terms refer to one another by
// TermIndex, never by pointer, so the Store is the sole owner of the term
// arena.
type Store struct {
	terms      map[TermIndex]*Term
	byID       map[string]*Term
	byName     map[string]*Term
	bySynonym  map[string]*Term // first-registered synonym wins, case-insensitive
	ordered    []TermIndex      // ascending index order, for stable iteration
	rootIndex  TermIndex
	rootFound  bool
}

func newStore() *Store {
	return &Store{
		terms:     make(map[TermIndex]*Term),
		byID:      make(map[string]*Term),
		byName:    make(map[string]*Term),
		bySynonym: make(map[string]*Term),
	}
}

// insert adds a freshly parsed term record to the store, assigning its
// dense index from the numeric suffix of its id.
func (s *Store) insert(id, name, definition, comment string, synonyms, altIDs, isA []string, isObsolete bool, replacedBy string) (*Term, error) {
	idx, err := indexFromID(id)
	if err != nil {
		return nil, err
	}
	if _, exists := s.terms[idx]; exists {
		return nil, hpoerr.Invariant("duplicate dense index for " + id)
	}

	t := newTerm(id, idx)
	t.Name = name
	t.Definition = definition
	t.Comment = comment
	t.Synonyms = synonyms
	t.AltIDs = altIDs
	t.IsObsolete = isObsolete
	t.ReplacedBy = replacedBy
	t.parentIDs = isA

	s.terms[idx] = t
	s.byID[id] = t
	for _, alt := range altIDs {
		s.byID[alt] = t
	}
	if !isObsolete {
		if _, taken := s.byName[name]; !taken {
			s.byName[name] = t
		}
		for _, syn := range synonyms {
			key := strings.ToLower(syn)
			if _, taken := s.bySynonym[key]; !taken {
				s.bySynonym[key] = t
			}
		}
	}
	if id == formatID(RootIndex) {
		s.rootIndex = idx
		s.rootFound = true
	}

	return t, nil
}

// finalize resolves is_a references to indices, builds parent/child
// adjacency, verifies the single-root invariant, and freezes iteration
// order.
func (s *Store) finalize() error {
	s.ordered = make([]TermIndex, 0, len(s.terms))
	for idx := range s.terms {
		s.ordered = append(s.ordered, idx)
	}
	sort.Slice(s.ordered, func(i, j int) bool { return s.ordered[i] < s.ordered[j] })

	rootCount := 0
	for _, idx := range s.ordered {
		t := s.terms[idx]
		for _, ref := range t.parentIDs {
			parentIdx, err := indexFromID(ref)
			if err != nil {
				return hpoerr.Parse("hp.obo", 0, "unresolvable is_a target "+ref+" on "+t.ID)
			}
			parent, ok := s.terms[parentIdx]
			if !ok {
				return hpoerr.Parse("hp.obo", 0, "unknown is_a target "+ref+" on "+t.ID)
			}
			if parent.IsObsolete {
				return hpoerr.Invariant("obsolete term " + parent.ID + " appears as is_a target of " + t.ID)
			}
			t.Parents[parentIdx] = struct{}{}
			parent.Children[idx] = struct{}{}
		}
		if len(t.Parents) == 0 && !t.IsObsolete {
			rootCount++
		}
	}
	if !s.rootFound {
		return hpoerr.Invariant("no term with canonical id " + formatID(RootIndex) + " found")
	}
	if rootCount != 1 {
		return hpoerr.Invariant("expected exactly one term with no parents, found " + strconv.Itoa(rootCount))
	}
	return nil
}

// Get returns the term at idx.
func (s *Store) Get(idx TermIndex) (*Term, error) {
	if t, ok := s.terms[idx]; ok {
		return t, nil
	}
	return nil, hpoerr.NotFound("term", formatID(idx))
}

// GetByID returns the term with canonical or alt id.
func (s *Store) GetByID(id string) (*Term, error) {
	if t, ok := s.byID[id]; ok {
		return t, nil
	}
	return nil, hpoerr.NotFound("term", id)
}

// GetByName returns the term with the exact, case-sensitive name.
func (s *Store) GetByName(name string) (*Term, error) {
	if t, ok := s.byName[name]; ok {
		return t, nil
	}
	return nil, hpoerr.NotFound("term", name)
}

// Len returns the number of terms in the store, including obsolete ones.
func (s *Store) Len() int { return len(s.terms) }

// All returns every term in ascending-index order.
func (s *Store) All() []*Term {
	out := make([]*Term, 0, len(s.ordered))
	for _, idx := range s.ordered {
		out = append(out, s.terms[idx])
	}
	return out
}

// indexFromID strips the "HP:" prefix (and any trailing "! name" comment)
// and parses the remainder as the dense TermIndex.
func indexFromID(id string) (TermIndex, error) {
	id = strings.TrimSpace(id)
	if bang := strings.Index(id, "!"); bang >= 0 {
		id = strings.TrimSpace(id[:bang])
	}
	_, numeric, ok := strings.Cut(id, ":")
	if !ok {
		return 0, hpoerr.Parse("hp.obo", 0, "malformed HPO id "+id)
	}
	n, err := strconv.Atoi(numeric)
	if err != nil {
		return 0, hpoerr.Parse("hp.obo", 0, "non-numeric HPO id "+id)
	}
	return TermIndex(n), nil
}
