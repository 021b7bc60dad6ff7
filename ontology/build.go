package ontology

import (
	"os"

	"github.com/hpokit/gohpo/ontology/hpoa"
	"github.com/hpokit/gohpo/ontology/hpoerr"
	"github.com/hpokit/gohpo/ontology/obo"
)

// Load builds a fresh Ontology from cfg.DataDir: hp.obo defines the
// terms and is-a edges, phenotype_to_genes.txt and phenotype.hpoa carry
// the gene and disease annotations that get propagated up the graph.
// The build order is fixed: terms and edges first (so propagation has a
// graph to walk), then genes, then diseases, then information content
// over the fully annotated store. On success the new Ontology also
// becomes the process-wide singleton (Global).
func Load(cfg Config) (*Ontology, error) {
	store, err := loadTerms(cfg)
	if err != nil {
		return nil, err
	}

	g := newGraph(store)
	if err := g.build(); err != nil {
		return nil, err
	}

	genes := newGeneRegistry()
	if err := loadGenes(cfg, store, genes); err != nil {
		return nil, err
	}

	omim := newDiseaseRegistry(SourceOmim)
	orpha := newDiseaseRegistry(SourceOrpha)
	decipher := newDiseaseRegistry(SourceDecipher)
	if err := loadDiseases(cfg, store, omim, orpha, decipher); err != nil {
		return nil, err
	}

	computeIC(store, genes.Len(), omim.Len(), orpha.Len(), decipher.Len())

	o := &Ontology{
		store:      store,
		graph:      g,
		Genes:      genes,
		Omim:       omim,
		Orpha:      orpha,
		Decipher:   decipher,
		Generation: generation.Add(1),
	}
	SetGlobal(o)
	return o, nil
}

func loadTerms(cfg Config) (*Store, error) {
	f, err := os.Open(cfg.oboPath())
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := obo.Parse(f)
	if err != nil {
		return nil, err
	}

	store := newStore()
	for _, rec := range records {
		if _, err := store.insert(rec.ID, rec.Name, rec.Definition, rec.Comment,
			rec.Synonyms, rec.AltIDs, rec.IsA, rec.IsObsolete, rec.ReplacedBy); err != nil {
			return nil, err
		}
	}
	if err := store.finalize(); err != nil {
		return nil, err
	}
	return store, nil
}

func loadGenes(cfg Config, store *Store, genes *GeneRegistry) error {
	f, err := os.Open(cfg.genesPath())
	if err != nil {
		return err
	}
	defer f.Close()

	links, err := hpoa.ParseGenes(f)
	if err != nil {
		return err
	}
	for _, link := range links {
		term, err := store.GetByID(link.HPOID)
		if err != nil {
			continue // annotation files may reference terms retired since release
		}
		gene := genes.GetOrCreate(link.HGNCID, link.GeneSymbol)
		propagateGene(store, gene, term)
	}
	return nil
}

func loadDiseases(cfg Config, store *Store, omim, orpha, decipher *DiseaseRegistry) error {
	f, err := os.Open(cfg.diseasePath())
	if err != nil {
		return err
	}
	defer f.Close()

	links, err := hpoa.ParseDiseases(f)
	if err != nil {
		return err
	}
	for _, link := range links {
		term, err := store.GetByID(link.HPOID)
		if err != nil {
			continue
		}

		var (
			registry *DiseaseRegistry
			kind     AnnotationKind
		)
		switch link.Source {
		case hpoa.SourceOmim:
			registry, kind = omim, KindOmim
		case hpoa.SourceOrpha:
			registry, kind = orpha, KindOrpha
		case hpoa.SourceDecipher:
			registry, kind = decipher, KindDecipher
		default:
			return hpoerr.Invariant("unknown disease source from hpoa reader")
		}

		disease := registry.GetOrCreate(link.DiseaseID, link.Name)
		if link.Negative {
			linkNegativeDisease(kind, disease, term)
		} else {
			propagateDisease(store, kind, disease, term)
		}
	}
	return nil
}
