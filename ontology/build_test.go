package ontology_test

import (
	"math"
	"testing"

	"github.com/hpokit/gohpo/ontology"
)

func loadFixture(t *testing.T) *ontology.Ontology {
	t.Helper()
	o, err := ontology.Load(ontology.Config{DataDir: "testdata"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return o
}

func mustGet(t *testing.T, o *ontology.Ontology, id string) *ontology.Term {
	t.Helper()
	term, err := o.Get(id)
	if err != nil {
		t.Fatalf("Get(%q): %v", id, err)
	}
	return term
}

func TestLoadBuildsGraph(t *testing.T) {
	o := loadFixture(t)
	if o.Len() != 7 {
		t.Fatalf("Len() = %d, want 7", o.Len())
	}

	scoliosis := mustGet(t, o, "HP:0000005")
	spine := mustGet(t, o, "HP:0000003")
	root := mustGet(t, o, "HP:0000001")

	if _, ok := scoliosis.Ancestors[spine.Index]; !ok {
		t.Error("Scoliosis should have Abnormality of the spine as an ancestor")
	}
	if _, ok := scoliosis.Ancestors[root.Index]; !ok {
		t.Error("Scoliosis should have the root as an ancestor")
	}
	if _, ok := spine.Descendants[scoliosis.Index]; !ok {
		t.Error("Abnormality of the spine should have Scoliosis as a descendant")
	}
}

func TestAnnotationPropagationIsAsymmetric(t *testing.T) {
	o := loadFixture(t)
	scoliosis := mustGet(t, o, "HP:0000005")
	spine := mustGet(t, o, "HP:0000003")
	kyphosis := mustGet(t, o, "HP:0000006")

	geneA, err := o.Genes.Get(1)
	if err != nil {
		t.Fatalf("Genes.Get(1): %v", err)
	}
	// Gene side stays direct-link-only: GENEA is linked to Scoliosis, never
	// to its ancestor.
	if _, ok := geneA.HPO[scoliosis.Index]; !ok {
		t.Error("gene 1 should be directly linked to Scoliosis")
	}
	if _, ok := geneA.HPO[spine.Index]; ok {
		t.Error("gene 1 should not carry the ancestor term on its direct link set")
	}

	// Term side propagates upward: the spine term inherits both children's
	// genes.
	if _, ok := spine.Genes[1]; !ok {
		t.Error("Abnormality of the spine should inherit gene 1 from Scoliosis")
	}
	if _, ok := spine.Genes[2]; !ok {
		t.Error("Abnormality of the spine should inherit gene 2 from Kyphosis")
	}
	if _, ok := kyphosis.Genes[1]; ok {
		t.Error("Kyphosis should not inherit gene 1, which is only linked to Scoliosis")
	}
}

func TestNegativeDiseaseDoesNotPropagate(t *testing.T) {
	o := loadFixture(t)
	spine := mustGet(t, o, "HP:0000003")
	root := mustGet(t, o, "HP:0000001")

	if _, ok := spine.NegativeOmimDiseases[300]; !ok {
		t.Error("disease 300 should be directly, negatively linked to the spine term")
	}
	if _, ok := spine.OmimDiseases[300]; ok {
		t.Error("a negative link must never appear in the positive OmimDiseases set")
	}
	if _, ok := root.NegativeOmimDiseases[300]; ok {
		t.Error("negative disease links must not propagate upward")
	}

	disease300, err := o.Omim.Get(300)
	if err != nil {
		t.Fatalf("Omim.Get(300): %v", err)
	}
	if len(disease300.HPO) != 0 {
		t.Error("a purely negative disease record should have an empty positive HPO set")
	}
}

func TestInformationContent(t *testing.T) {
	o := loadFixture(t)
	scoliosis := mustGet(t, o, "HP:0000005")
	spine := mustGet(t, o, "HP:0000003")
	limb := mustGet(t, o, "HP:0000002")

	wantGeneIC := math.Log(2)
	if v, _ := scoliosis.IC.Get("gene"); math.Abs(v-wantGeneIC) > 1e-9 {
		t.Errorf("Scoliosis gene IC = %v, want %v", v, wantGeneIC)
	}
	if v, _ := spine.IC.Get("gene"); math.Abs(v) > 1e-9 {
		t.Errorf("spine gene IC = %v, want 0 (covers every registered gene)", v)
	}

	wantOmimIC := -math.Log(1.0 / 3.0)
	if v, _ := scoliosis.IC.Get("omim"); math.Abs(v-wantOmimIC) > 1e-9 {
		t.Errorf("Scoliosis omim IC = %v, want %v", v, wantOmimIC)
	}

	if v, ok := limb.IC.Get("gene"); !ok || v != 0 {
		t.Errorf("an unannotated term's IC should be the explicit zero sentinel, got %v (ok=%v)", v, ok)
	}
}

func TestCustomICCopyOnWrite(t *testing.T) {
	o := loadFixture(t)
	scoliosis := mustGet(t, o, "HP:0000005")

	if _, ok := scoliosis.IC.Get("cohort-x"); ok {
		t.Fatal("custom IC key should not exist before it is set")
	}
	o.SetCustomIC(scoliosis, "cohort-x", 4.2)
	v, ok := scoliosis.IC.Get("cohort-x")
	if !ok || v != 4.2 {
		t.Errorf("Get(cohort-x) = %v, %v; want 4.2, true", v, ok)
	}

	// Overwriting a key replaces its value without disturbing others.
	o.SetCustomIC(scoliosis, "cohort-x", 9.9)
	v, _ = scoliosis.IC.Get("cohort-x")
	if v != 9.9 {
		t.Errorf("Get(cohort-x) after overwrite = %v, want 9.9", v)
	}
}

func TestPathBetweenSiblings(t *testing.T) {
	o := loadFixture(t)
	result, err := o.Path("HP:0000005", "HP:0000006")
	if err != nil {
		t.Fatalf("Path: %v", err)
	}
	if result.Length != 2 {
		t.Errorf("Length = %d, want 2 (Scoliosis -> spine -> Kyphosis)", result.Length)
	}
	if result.StepsUp != 1 || result.StepsDown != 1 {
		t.Errorf("StepsUp/StepsDown = %d/%d, want 1/1", result.StepsUp, result.StepsDown)
	}
}

func TestSearchIsCaseInsensitiveAndOrdered(t *testing.T) {
	o := loadFixture(t)
	var names []string
	for term := range o.Search("scoli") {
		names = append(names, term.Name)
	}
	if len(names) != 1 || names[0] != "Scoliosis" {
		t.Errorf("Search(scoli) = %v, want [Scoliosis]", names)
	}

	var synHits []string
	for term := range o.SynonymSearch("spinal abnormality") {
		synHits = append(synHits, term.ID)
	}
	if len(synHits) != 1 || synHits[0] != "HP:0000003" {
		t.Errorf("SynonymSearch(spinal abnormality) = %v, want [HP:0000003]", synHits)
	}
}
