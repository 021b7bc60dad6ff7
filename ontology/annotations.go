package ontology

import (
	"strconv"

	"github.com/hpokit/gohpo/ontology/hpoerr"
)

// DiseaseSource tags which rare-disease catalog a Disease record belongs
// to; each source maintains an independent id space.
type DiseaseSource string

const (
	SourceOmim     DiseaseSource = "omim"
	SourceOrpha    DiseaseSource = "orpha"
	SourceDecipher DiseaseSource = "decipher"
)

// Gene is a single HGNC-identified gene. Identity is by Id; Symbol is a
// uniqueness hint only, never part of the identity contract.
//
// HPO holds only the term indices to which this gene was *directly*
// linked in the source data — the deliberate asymmetry of §4.4: ancestor
// terms inherit the gene via term-side propagation, but the gene record
// itself never grows an ancestor's index into HPO.
type Gene struct {
	ID     int
	Symbol string
	HPO    map[TermIndex]struct{}
}

// Name is an alias of Symbol, matching the HGNC-symbol-as-name contract
// of §3.
func (g *Gene) Name() string { return g.Symbol }

// Disease is a single rare-disease record from one of the three source
// catalogs. HPO holds direct-only positive links (asymmetric, as for
// Gene); NegativeHPO holds direct-only exclusion links, which never
// propagate and never feed IC or similarity.
type Disease struct {
	ID          int
	Name        string
	Source      DiseaseSource
	HPO         map[TermIndex]struct{}
	NegativeHPO map[TermIndex]struct{}
}

// GeneRegistry is a get-or-insert singleton table of Gene records, keyed
// by HGNC id. The first caller to create a record for an id defines its
// symbol; later calls with the same id and a different symbol are
// idempotent no-ops that return the existing record.
type GeneRegistry struct {
	byID     map[int]*Gene
	bySymbol map[string]*Gene
}

func newGeneRegistry() *GeneRegistry {
	return &GeneRegistry{
		byID:     make(map[int]*Gene),
		bySymbol: make(map[string]*Gene),
	}
}

// GetOrCreate returns the Gene for id, creating it with symbol if it does
// not yet exist.
func (r *GeneRegistry) GetOrCreate(id int, symbol string) *Gene {
	if g, ok := r.byID[id]; ok {
		return g
	}
	g := &Gene{ID: id, Symbol: symbol, HPO: make(map[TermIndex]struct{})}
	r.byID[id] = g
	if _, taken := r.bySymbol[symbol]; !taken {
		r.bySymbol[symbol] = g
	}
	return g
}

// Get looks up a gene by HGNC id.
func (r *GeneRegistry) Get(id int) (*Gene, error) {
	if g, ok := r.byID[id]; ok {
		return g, nil
	}
	return nil, hpoerr.NotFound("gene", formatGeneQuery(id))
}

// GetBySymbol looks up a gene by HUGO symbol.
func (r *GeneRegistry) GetBySymbol(symbol string) (*Gene, error) {
	if g, ok := r.bySymbol[symbol]; ok {
		return g, nil
	}
	return nil, hpoerr.NotFound("gene", symbol)
}

// All returns every registered gene, in no particular order.
func (r *GeneRegistry) All() []*Gene {
	out := make([]*Gene, 0, len(r.byID))
	for _, g := range r.byID {
		out = append(out, g)
	}
	return out
}

func (r *GeneRegistry) Len() int { return len(r.byID) }

// DiseaseRegistry is a get-or-insert singleton table of Disease records
// for one source catalog.
type DiseaseRegistry struct {
	source DiseaseSource
	byID   map[int]*Disease
}

func newDiseaseRegistry(source DiseaseSource) *DiseaseRegistry {
	return &DiseaseRegistry{source: source, byID: make(map[int]*Disease)}
}

// GetOrCreate returns the Disease for id, creating it with name if it
// does not yet exist.
func (r *DiseaseRegistry) GetOrCreate(id int, name string) *Disease {
	if d, ok := r.byID[id]; ok {
		return d
	}
	d := &Disease{
		ID:          id,
		Name:        name,
		Source:      r.source,
		HPO:         make(map[TermIndex]struct{}),
		NegativeHPO: make(map[TermIndex]struct{}),
	}
	r.byID[id] = d
	return d
}

// Get looks up a disease by id.
func (r *DiseaseRegistry) Get(id int) (*Disease, error) {
	if d, ok := r.byID[id]; ok {
		return d, nil
	}
	return nil, hpoerr.NotFound(string(r.source)+" disease", formatGeneQuery(id))
}

// All returns every registered disease, in no particular order.
func (r *DiseaseRegistry) All() []*Disease {
	out := make([]*Disease, 0, len(r.byID))
	for _, d := range r.byID {
		out = append(out, d)
	}
	return out
}

func (r *DiseaseRegistry) Len() int { return len(r.byID) }

func formatGeneQuery(id int) string {
	return "#" + strconv.Itoa(id)
}
