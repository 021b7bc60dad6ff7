// Package stats computes hypergeometric enrichment of genes and
// diseases against a query set of HPO terms: for each candidate record,
// how surprising is it that this many of its annotated terms fall
// inside the query set, if terms were drawn at random.
package stats

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/hpokit/gohpo/hposet"
	"github.com/hpokit/gohpo/ontology"
	"github.com/hpokit/gohpo/ontology/hpoerr"
)

// Result is one record's enrichment outcome: how many of its annotated
// terms fall in the query set (X), how many it has in total (K), and
// the resulting p-value.
type Result struct {
	GeneID    int
	DiseaseID int
	Name      string
	X         int
	K         int
	N         int
	M         int
	PValue    float64
}

// Run correlates one enrichment pass across genes or diseases against a
// query HPOSet, tagged with a run id so batch callers can line up
// concurrent runs in logs.
type Run struct {
	ID      uuid.UUID
	Kind    ontology.AnnotationKind
	Results []Result
}

// hypergeomSurvival returns P(X >= x) under a hypergeometric urn of
// populationSize incidences, successStates of which belong to the
// record under test, drawn n times (the incidences falling inside the
// query set). Computed in log space via math.Lgamma rather than
// through gonum's distuv.Hypergeometric, whose draw-count field is
// unexported in the pinned release and so cannot be set from outside
// the package; see the design notes for the full rationale.
func hypergeomSurvival(populationSize, successStates, draws, x float64) float64 {
	if x <= 0 {
		return 1
	}
	upper := math.Min(successStates, draws)
	sum := 0.0
	for i := x; i <= upper; i++ {
		sum += hypergeomPMF(populationSize, successStates, draws, i)
	}
	if sum > 1 {
		sum = 1
	}
	return sum
}

func hypergeomPMF(populationSize, successStates, draws, x float64) float64 {
	if x < 0 || x > successStates || x > draws || draws-x > populationSize-successStates {
		return 0
	}
	logP := logChoose(successStates, x) + logChoose(populationSize-successStates, draws-x) - logChoose(populationSize, draws)
	return math.Exp(logP)
}

func logChoose(n, k float64) float64 {
	if k < 0 || k > n {
		return math.Inf(-1)
	}
	lgN, _ := math.Lgamma(n + 1)
	lgK, _ := math.Lgamma(k + 1)
	lgNK, _ := math.Lgamma(n - k + 1)
	return lgN - lgK - lgNK
}

// GeneEnrichment computes, for every gene in the ontology, the
// probability of observing at least as many of its annotated terms
// inside query by chance. M is the total gene-term incidence count
// across the whole ontology (every (gene,term) pair, propagated); K is
// a specific gene's total incidence count; n is the number of
// incidences that land inside the query terms; x is a specific gene's
// incidence count inside the query.
func GeneEnrichment(o *ontology.Ontology, query *hposet.Set) (Run, error) {
	run := Run{ID: uuid.New(), Kind: ontology.KindGene}

	queryIndices := make(map[ontology.TermIndex]struct{}, query.Len())
	for _, t := range query.Terms() {
		queryIndices[t.Index] = struct{}{}
	}

	totalIncidence := 0
	inQueryIncidence := make(map[int]int)
	totalPerGene := make(map[int]int)
	for _, t := range o.All() {
		for geneID := range t.Genes {
			totalIncidence++
			totalPerGene[geneID]++
			if _, ok := queryIndices[t.Index]; ok {
				inQueryIncidence[geneID]++
			}
		}
	}

	n := 0
	for _, t := range query.Terms() {
		n += len(t.Genes)
	}

	for _, g := range o.Genes.All() {
		x := inQueryIncidence[g.ID]
		k := totalPerGene[g.ID]
		if k == 0 {
			continue
		}
		p := hypergeomSurvival(float64(totalIncidence), float64(k), float64(n), float64(x))
		run.Results = append(run.Results, Result{
			GeneID: g.ID,
			Name:   g.Symbol,
			X:      x,
			K:      k,
			N:      n,
			M:      totalIncidence,
			PValue: p,
		})
	}

	sortResults(run.Results)
	return run, nil
}

// DiseaseEnrichment is GeneEnrichment's disease-registry counterpart.
func DiseaseEnrichment(o *ontology.Ontology, query *hposet.Set, kind ontology.AnnotationKind) (Run, error) {
	registry, err := registryFor(o, kind)
	if err != nil {
		return Run{}, err
	}
	run := Run{ID: uuid.New(), Kind: kind}

	queryIndices := make(map[ontology.TermIndex]struct{}, query.Len())
	for _, t := range query.Terms() {
		queryIndices[t.Index] = struct{}{}
	}

	totalIncidence := 0
	inQueryIncidence := make(map[int]int)
	totalPerDisease := make(map[int]int)
	for _, t := range o.All() {
		for diseaseID := range t.DiseaseSet(kind) {
			totalIncidence++
			totalPerDisease[diseaseID]++
			if _, ok := queryIndices[t.Index]; ok {
				inQueryIncidence[diseaseID]++
			}
		}
	}

	n := 0
	for _, t := range query.Terms() {
		n += len(t.DiseaseSet(kind))
	}

	for _, d := range registry.All() {
		x := inQueryIncidence[d.ID]
		k := totalPerDisease[d.ID]
		if k == 0 {
			continue
		}
		p := hypergeomSurvival(float64(totalIncidence), float64(k), float64(n), float64(x))
		run.Results = append(run.Results, Result{
			DiseaseID: d.ID,
			Name:      d.Name,
			X:         x,
			K:         k,
			N:         n,
			M:         totalIncidence,
			PValue:    p,
		})
	}

	sortResults(run.Results)
	return run, nil
}

func registryFor(o *ontology.Ontology, kind ontology.AnnotationKind) (*ontology.DiseaseRegistry, error) {
	switch kind {
	case ontology.KindOmim:
		return o.Omim, nil
	case ontology.KindOrpha:
		return o.Orpha, nil
	case ontology.KindDecipher:
		return o.Decipher, nil
	default:
		return nil, hpoerr.Domain("unsupported disease kind: " + string(kind))
	}
}

// sortResults orders ascending by p-value, breaking ties by ascending
// record id so a fixed input always yields a fixed, reproducible order.
func sortResults(results []Result) {
	sort.Slice(results, func(i, j int) bool {
		if results[i].PValue != results[j].PValue {
			return results[i].PValue < results[j].PValue
		}
		idI, idJ := results[i].GeneID, results[j].GeneID
		if idI == 0 {
			idI = results[i].DiseaseID
		}
		if idJ == 0 {
			idJ = results[j].DiseaseID
		}
		return idI < idJ
	})
}
