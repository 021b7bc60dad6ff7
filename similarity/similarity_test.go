package similarity_test

import (
	"math"
	"testing"

	"github.com/hpokit/gohpo/ontology"
	"github.com/hpokit/gohpo/similarity"
)

func loadFixture(t *testing.T) *ontology.Ontology {
	t.Helper()
	o, err := ontology.Load(ontology.Config{DataDir: "../ontology/testdata"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return o
}

func TestGraphicIsCardinalityRatio(t *testing.T) {
	o := loadFixture(t)
	scoliosis, _ := o.Get("HP:0000005")
	kyphosis, _ := o.Get("HP:0000006")

	score, err := similarity.Score(o, "graphic", scoliosis, kyphosis, "gene")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	// common = {spine, root}, union = {scoliosis, kyphosis, spine, root}: 2/4.
	if math.Abs(score-0.5) > 1e-9 {
		t.Errorf("graphic(Scoliosis, Kyphosis) = %v, want 0.5", score)
	}
}

func TestResnikIsMICAInformationContent(t *testing.T) {
	o := loadFixture(t)
	scoliosis, _ := o.Get("HP:0000005")
	kyphosis, _ := o.Get("HP:0000006")

	score, err := similarity.Score(o, "resnik", scoliosis, kyphosis, "omim")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	want := -math.Log(2.0 / 3.0) // IC of the spine term, their MICA
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("resnik(Scoliosis, Kyphosis, omim) = %v, want %v", score, want)
	}

	// Both common ancestors (spine and root) are uninformative under the
	// gene kind (each covers every registered gene), so resnik collapses to 0.
	geneScore, err := similarity.Score(o, "resnik", scoliosis, kyphosis, "gene")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if geneScore != 0 {
		t.Errorf("resnik(Scoliosis, Kyphosis, gene) = %v, want 0", geneScore)
	}
}

func TestEqualKernel(t *testing.T) {
	o := loadFixture(t)
	scoliosis, _ := o.Get("HP:0000005")
	kyphosis, _ := o.Get("HP:0000006")

	same, _ := similarity.Score(o, "equal", scoliosis, scoliosis, "gene")
	if same != 1 {
		t.Errorf("equal(x, x) = %v, want 1", same)
	}
	diff, _ := similarity.Score(o, "equal", scoliosis, kyphosis, "gene")
	if diff != 0 {
		t.Errorf("equal(x, y) = %v, want 0", diff)
	}
}

func TestDistKernelUsesShortestPath(t *testing.T) {
	o := loadFixture(t)
	scoliosis, _ := o.Get("HP:0000005")
	kyphosis, _ := o.Get("HP:0000006")

	score, err := similarity.Score(o, "dist", scoliosis, kyphosis, "gene")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	want := 1.0 / 3.0 // path length 2: Scoliosis -> spine -> Kyphosis
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("dist(Scoliosis, Kyphosis) = %v, want %v", score, want)
	}
}

func TestUnknownKernelNameFails(t *testing.T) {
	if _, err := similarity.Get("not-a-kernel"); err == nil {
		t.Error("Get(not-a-kernel) should fail")
	}
}

func TestLinKernel(t *testing.T) {
	o := loadFixture(t)
	scoliosis, _ := o.Get("HP:0000005")
	kyphosis, _ := o.Get("HP:0000006")

	score, err := similarity.Score(o, "lin", scoliosis, kyphosis, "omim")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	want := 2 * math.Log(3.0/2.0) / (2 * math.Log(3.0)) // 2*resnik / (IC(a)+IC(b))
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("lin(Scoliosis, Kyphosis, omim) = %v, want %v", score, want)
	}
}

func TestJCIsInverseDistance(t *testing.T) {
	o := loadFixture(t)
	scoliosis, _ := o.Get("HP:0000005")
	kyphosis, _ := o.Get("HP:0000006")

	icA := math.Log(3.0)     // -ln(1/3)
	resnik := math.Log(3.0 / 2.0) // -ln(2/3)
	distance := 2*icA - 2*resnik
	want := 1 / (1 + distance)

	score, err := similarity.Score(o, "jc", scoliosis, kyphosis, "omim")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("jc(Scoliosis, Kyphosis, omim) = %v, want %v", score, want)
	}
}

func TestJC2IsAliasOfJC(t *testing.T) {
	o := loadFixture(t)
	scoliosis, _ := o.Get("HP:0000005")
	kyphosis, _ := o.Get("HP:0000006")

	jc, err := similarity.Score(o, "jc", scoliosis, kyphosis, "omim")
	if err != nil {
		t.Fatalf("Score(jc): %v", err)
	}
	jc2, err := similarity.Score(o, "jc2", scoliosis, kyphosis, "omim")
	if err != nil {
		t.Fatalf("Score(jc2): %v", err)
	}
	if jc != jc2 {
		t.Errorf("jc2 = %v, want it to equal jc = %v", jc2, jc)
	}
}

func TestJCGuardsAgainstZeroInformationContent(t *testing.T) {
	o := loadFixture(t)
	scoliosis, _ := o.Get("HP:0000005")
	limb, _ := o.Get("HP:0000004") // unannotated under every kind

	score, err := similarity.Score(o, "jc", scoliosis, limb, "gene")
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if score != 0 {
		t.Errorf("jc(Scoliosis, unannotated) = %v, want 0", score)
	}
}

func TestICKernelEqualsResnik(t *testing.T) {
	o := loadFixture(t)
	scoliosis, _ := o.Get("HP:0000005")
	kyphosis, _ := o.Get("HP:0000006")

	resnik, err := similarity.Score(o, "resnik", scoliosis, kyphosis, "omim")
	if err != nil {
		t.Fatalf("Score(resnik): %v", err)
	}
	ic, err := similarity.Score(o, "ic", scoliosis, kyphosis, "omim")
	if err != nil {
		t.Fatalf("Score(ic): %v", err)
	}
	if ic != resnik {
		t.Errorf("ic = %v, want it to equal resnik = %v", ic, resnik)
	}
}

func TestRelKernel(t *testing.T) {
	o := loadFixture(t)
	scoliosis, _ := o.Get("HP:0000005")
	kyphosis, _ := o.Get("HP:0000006")

	lin, err := similarity.Score(o, "lin", scoliosis, kyphosis, "omim")
	if err != nil {
		t.Fatalf("Score(lin): %v", err)
	}
	resnik, err := similarity.Score(o, "resnik", scoliosis, kyphosis, "omim")
	if err != nil {
		t.Fatalf("Score(resnik): %v", err)
	}
	want := lin * (1 - math.Exp(-resnik))

	score, err := similarity.Score(o, "rel", scoliosis, kyphosis, "omim")
	if err != nil {
		t.Fatalf("Score(rel): %v", err)
	}
	if math.Abs(score-want) > 1e-9 {
		t.Errorf("rel(Scoliosis, Kyphosis, omim) = %v, want %v", score, want)
	}
}
