package ontology

import "fmt"

// TermIndex is the dense integer identifier of a Term: the numeric suffix
// of its canonical id, e.g. HP:0002650 has TermIndex 2650.
type TermIndex int

// AnnotationKind selects which annotation population an IC or similarity
// computation is based on.
type AnnotationKind string

const (
	KindGene     AnnotationKind = "gene"
	KindOmim     AnnotationKind = "omim"
	KindOrpha    AnnotationKind = "orpha"
	KindDecipher AnnotationKind = "decipher"
)

// ModifierRoot is the HPO term under which all "Clinical modifier" terms
// live (HP:0012823). This term and its descendants are stripped by
// hposet.Set.RemoveModifier.
const ModifierRoot TermIndex = 12823

// RootIndex is the dense index of the single ontology root, "All"
// (HP:0000001).
const RootIndex TermIndex = 1

// Term is a single node of the phenotype ontology DAG.
//
// Parents, Children, Ancestors, and Descendants hold only the indices of
// other terms, never owning pointers — the Store owns every Term, and all
// cross-references are index-based, per the asymmetric, cycle-free
// ownership model of the ontology.
type Term struct {
	Index      TermIndex
	ID         string
	Name       string
	Definition string
	Comment    string
	Synonyms   []string
	AltIDs     []string
	IsObsolete bool
	ReplacedBy string

	parentIDs []string // raw is_a targets, resolved into Parents at build time

	Parents  map[TermIndex]struct{}
	Children map[TermIndex]struct{}

	// Ancestors/Descendants are the transitive is-a closures, excluding
	// self, computed once during Ontology construction.
	Ancestors   map[TermIndex]struct{}
	Descendants map[TermIndex]struct{}

	// Genes/<Kind>Diseases hold the asymmetric term-side propagated
	// annotation: a gene or disease appears here if it is directly linked
	// to this term or to any of its descendants (see §4.4 of the design).
	Genes            map[int]struct{}
	OmimDiseases     map[int]struct{}
	OrphaDiseases    map[int]struct{}
	DecipherDiseases map[int]struct{}

	// Negative*Diseases record exclusion facts (qualifier "NOT" in the
	// source HPOA). They are direct-only: no propagation in either
	// direction, and they never feed IC or similarity.
	NegativeOmimDiseases     map[int]struct{}
	NegativeOrphaDiseases    map[int]struct{}
	NegativeDecipherDiseases map[int]struct{}

	IC ICSet
}

// newTerm allocates a Term with its index-keyed sets initialized.
func newTerm(id string, index TermIndex) *Term {
	return &Term{
		ID:                       id,
		Index:                    index,
		Parents:                  make(map[TermIndex]struct{}),
		Children:                 make(map[TermIndex]struct{}),
		Ancestors:                make(map[TermIndex]struct{}),
		Descendants:              make(map[TermIndex]struct{}),
		Genes:                    make(map[int]struct{}),
		OmimDiseases:             make(map[int]struct{}),
		OrphaDiseases:            make(map[int]struct{}),
		DecipherDiseases:         make(map[int]struct{}),
		NegativeOmimDiseases:     make(map[int]struct{}),
		NegativeOrphaDiseases:    make(map[int]struct{}),
		NegativeDecipherDiseases: make(map[int]struct{}),
	}
}

// DiseaseSet returns the propagated positive disease-id set for kind.
func (t *Term) DiseaseSet(kind AnnotationKind) map[int]struct{} {
	switch kind {
	case KindOmim:
		return t.OmimDiseases
	case KindOrpha:
		return t.OrphaDiseases
	case KindDecipher:
		return t.DecipherDiseases
	default:
		return nil
	}
}

// AnnotationSet returns the propagated annotation-id set used to compute
// information content and similarity for kind (gene ids for KindGene,
// disease ids otherwise).
func (t *Term) AnnotationSet(kind AnnotationKind) map[int]struct{} {
	if kind == KindGene {
		return t.Genes
	}
	return t.DiseaseSet(kind)
}

// IsModifier reports whether t is HP:0012823 itself or one of its
// descendants.
func (t *Term) IsModifier() bool {
	if t.Index == ModifierRoot {
		return true
	}
	_, ok := t.Ancestors[ModifierRoot]
	return ok
}

func (t *Term) String() string {
	return fmt.Sprintf("%s | %s", t.ID, t.Name)
}

// formatID renders a dense TermIndex back into canonical HP:%07d form.
func formatID(idx TermIndex) string {
	return fmt.Sprintf("HP:%07d", int(idx))
}
