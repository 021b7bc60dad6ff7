package hposet_test

import (
	"math"
	"testing"

	"github.com/hpokit/gohpo/hposet"
	"github.com/hpokit/gohpo/ontology"
)

func loadFixture(t *testing.T) *ontology.Ontology {
	t.Helper()
	o, err := ontology.Load(ontology.Config{DataDir: "../ontology/testdata"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return o
}

func TestChildNodesCollapsesAncestors(t *testing.T) {
	o := loadFixture(t)
	set, err := hposet.FromQueries(o, []any{"HP:0000005", "HP:0000003", "HP:0000001"})
	if err != nil {
		t.Fatalf("FromQueries: %v", err)
	}
	reduced := set.ChildNodes()
	if reduced.Len() != 1 {
		t.Fatalf("ChildNodes().Len() = %d, want 1", reduced.Len())
	}
	if reduced.Terms()[0].ID != "HP:0000005" {
		t.Errorf("ChildNodes() kept %s, want HP:0000005 (Scoliosis)", reduced.Terms()[0].ID)
	}
}

func TestBasicSetAppliesAllThreeReductions(t *testing.T) {
	o := loadFixture(t)
	// HP:0000007 is obsolete and replaced by HP:0000005 (Scoliosis), a
	// child of HP:0000003 (spine), which is also queried directly: after
	// ReplaceObsolete+RemoveModifier+ChildNodes only Scoliosis survives.
	set, err := hposet.BasicSet(o, []any{"HP:0000007", "HP:0000003"})
	if err != nil {
		t.Fatalf("BasicSet: %v", err)
	}
	if set.Len() != 1 || set.Terms()[0].ID != "HP:0000005" {
		t.Fatalf("BasicSet(...) = %v, want [HP:0000005]", set.Terms())
	}
}

func TestReplaceObsoleteFollowsChain(t *testing.T) {
	o := loadFixture(t)
	set, err := hposet.FromQueries(o, []any{"HP:0000007"})
	if err != nil {
		t.Fatalf("FromQueries: %v", err)
	}
	resolved := set.ReplaceObsolete()
	if resolved.Len() != 1 || resolved.Terms()[0].ID != "HP:0000005" {
		t.Fatalf("ReplaceObsolete() = %v, want [HP:0000005]", resolved.Terms())
	}
}

func TestSerializeRoundTrips(t *testing.T) {
	o := loadFixture(t)
	set, err := hposet.FromQueries(o, []any{"HP:0000006", "HP:0000005"})
	if err != nil {
		t.Fatalf("FromQueries: %v", err)
	}
	serialized := set.Serialize()
	if serialized != "5+6" {
		t.Errorf("Serialize() = %q, want ascending-index, plus-separated indices", serialized)
	}

	back, err := hposet.FromSerialized(o, serialized)
	if err != nil {
		t.Fatalf("FromSerialized: %v", err)
	}
	if back.Len() != 2 {
		t.Fatalf("FromSerialized round-trip Len() = %d, want 2", back.Len())
	}
}

func TestAllGenesUnion(t *testing.T) {
	o := loadFixture(t)
	set, err := hposet.FromQueries(o, []any{"HP:0000005", "HP:0000006"})
	if err != nil {
		t.Fatalf("FromQueries: %v", err)
	}
	genes := set.AllGenes()
	if len(genes) != 2 {
		t.Fatalf("AllGenes() = %v, want 2 genes", genes)
	}
}

func TestSetSimilarityFunSimAvg(t *testing.T) {
	o := loadFixture(t)
	a, err := hposet.FromQueries(o, []any{"HP:0000005"})
	if err != nil {
		t.Fatalf("FromQueries a: %v", err)
	}
	b, err := hposet.FromQueries(o, []any{"HP:0000006"})
	if err != nil {
		t.Fatalf("FromQueries b: %v", err)
	}
	score, err := hposet.Similarity(o, a, b, "graphic", "gene", "funSimAvg")
	if err != nil {
		t.Fatalf("Similarity: %v", err)
	}
	if math.Abs(score-0.5) > 1e-9 {
		t.Errorf("Similarity(funSimAvg) = %v, want 0.5", score)
	}
}

func TestSetSimilarityBMADiffersFromFunSimAvg(t *testing.T) {
	o := loadFixture(t)
	a, err := hposet.FromQueries(o, []any{"HP:0000005"})
	if err != nil {
		t.Fatalf("FromQueries a: %v", err)
	}
	b, err := hposet.FromQueries(o, []any{"HP:0000005", "HP:0000006"})
	if err != nil {
		t.Fatalf("FromQueries b: %v", err)
	}
	bma, err := hposet.Similarity(o, a, b, "graphic", "gene", "BMA")
	if err != nil {
		t.Fatalf("Similarity(BMA): %v", err)
	}
	funSimAvg, err := hposet.Similarity(o, a, b, "graphic", "gene", "funSimAvg")
	if err != nil {
		t.Fatalf("Similarity(funSimAvg): %v", err)
	}
	if math.Abs(bma-funSimAvg) < 1e-9 {
		t.Errorf("BMA (%v) should differ from funSimAvg (%v) on an asymmetric set pair", bma, funSimAvg)
	}
}

func TestVarianceOfSingleTermIsZero(t *testing.T) {
	o := loadFixture(t)
	set, err := hposet.FromQueries(o, []any{"HP:0000005"})
	if err != nil {
		t.Fatalf("FromQueries: %v", err)
	}
	v, err := set.Variance()
	if err != nil {
		t.Fatalf("Variance: %v", err)
	}
	if v.Mean != 0 || len(v.All) != 0 {
		t.Errorf("Variance of a single-term set = %+v, want a zero-value result", v)
	}
}

func TestVarianceOverPairwiseDistances(t *testing.T) {
	o := loadFixture(t)
	set, err := hposet.FromQueries(o, []any{"HP:0000005", "HP:0000006"})
	if err != nil {
		t.Fatalf("FromQueries: %v", err)
	}
	v, err := set.Variance()
	if err != nil {
		t.Fatalf("Variance: %v", err)
	}
	// Scoliosis -> spine -> Kyphosis: path length 2, the set's only pair.
	if v.Mean != 2 || v.Min != 2 || v.Max != 2 || len(v.All) != 1 || v.All[0] != 2 {
		t.Errorf("Variance = %+v, want mean/min/max 2 over a single distance", v)
	}
}

func TestCombinationsIncludesSelfPairs(t *testing.T) {
	o := loadFixture(t)
	set, err := hposet.FromQueries(o, []any{"HP:0000005", "HP:0000006"})
	if err != nil {
		t.Fatalf("FromQueries: %v", err)
	}
	pairs := set.Combinations()
	if len(pairs) != 4 { // 2x2 ordered pairs including (i,i)
		t.Fatalf("len(Combinations()) = %d, want 4", len(pairs))
	}
	selfPairs := 0
	for _, p := range pairs {
		if p.A.Index == p.B.Index {
			selfPairs++
		}
	}
	if selfPairs != 2 {
		t.Errorf("Combinations() has %d self-pairs, want 2", selfPairs)
	}
}

func TestCombinationsOneWayExcludesSelfPairs(t *testing.T) {
	o := loadFixture(t)
	set, err := hposet.FromQueries(o, []any{"HP:0000005", "HP:0000006"})
	if err != nil {
		t.Fatalf("FromQueries: %v", err)
	}
	pairs := set.CombinationsOneWay()
	if len(pairs) != 1 {
		t.Fatalf("len(CombinationsOneWay()) = %d, want 1", len(pairs))
	}
	if pairs[0].A.Index == pairs[0].B.Index {
		t.Error("CombinationsOneWay() should never yield a self-pair")
	}
}
