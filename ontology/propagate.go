package ontology

// propagateGene links gene g directly to term t and, per the asymmetric
// term-side rule of §4.4, to every ancestor of t. The walk stops the
// moment an ancestor already carries the gene, which both short-circuits
// diamond-shaped re-visits and bounds the work to O(edges) amortized over
// the whole parse.
func propagateGene(store *Store, g *Gene, t *Term) {
	g.HPO[t.Index] = struct{}{}
	addGeneUpward(store, g, t)
}

func addGeneUpward(store *Store, g *Gene, t *Term) {
	if _, present := t.Genes[g.ID]; present {
		return
	}
	t.Genes[g.ID] = struct{}{}
	for p := range t.Parents {
		addGeneUpward(store, g, store.terms[p])
	}
}

// propagateDisease links disease d directly to term t and to every
// ancestor of t, mirroring propagateGene for the given kind.
func propagateDisease(store *Store, kind AnnotationKind, d *Disease, t *Term) {
	d.HPO[t.Index] = struct{}{}
	addDiseaseUpward(store, kind, d, t)
}

func addDiseaseUpward(store *Store, kind AnnotationKind, d *Disease, t *Term) {
	set := t.DiseaseSet(kind)
	if _, present := set[d.ID]; present {
		return
	}
	set[d.ID] = struct{}{}
	for p := range t.Parents {
		addDiseaseUpward(store, kind, d, store.terms[p])
	}
}

// linkNegativeDisease records a direct-only exclusion fact: disease d is
// explicitly reported absent at term t. Per the resolved Open Question in
// §9, negative links never propagate in either direction and never feed
// IC or similarity.
func linkNegativeDisease(kind AnnotationKind, d *Disease, t *Term) {
	d.NegativeHPO[t.Index] = struct{}{}
	switch kind {
	case KindOmim:
		t.NegativeOmimDiseases[d.ID] = struct{}{}
	case KindOrpha:
		t.NegativeOrphaDiseases[d.ID] = struct{}{}
	case KindDecipher:
		t.NegativeDecipherDiseases[d.ID] = struct{}{}
	}
}
