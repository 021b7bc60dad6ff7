package similarity

import (
	"math"

	"github.com/hpokit/gohpo/ontology"
)

func init() {
	Register("resnik", resnik)
	Register("lin", lin)
	Register("jc", jc)
	Register("jc2", jc2)
	Register("rel", rel)
	Register("ic", ic)
	Register("graphic", graphic)
	Register("dist", dist)
	Register("equal", equal)
}

// icOf returns a's information content for kind, treating an unknown or
// unset kind as 0 rather than failing the whole similarity computation.
func icOf(t *ontology.Term, kind string) float64 {
	v, _ := t.IC.Get(kind)
	return v
}

// mica returns the information content of the most informative common
// ancestor of a and b under kind: the maximum IC across their shared
// ancestor set (self-inclusive), per the resnik measure.
func mica(o *ontology.Ontology, a, b *ontology.Term, kind string) (float64, error) {
	common, err := o.Graph().CommonAncestors(a.Index, b.Index)
	if err != nil {
		return 0, err
	}
	best := 0.0
	for idx := range common {
		t, err := o.Get(idx)
		if err != nil {
			return 0, err
		}
		if v := icOf(t, kind); v > best {
			best = v
		}
	}
	return best, nil
}

// resnik is the information content of the most informative common
// ancestor: unbounded above, 0 when the only common ancestor is the
// root.
func resnik(o *ontology.Ontology, a, b *ontology.Term, kind string) (float64, error) {
	return mica(o, a, b, kind)
}

// lin normalizes resnik by the average information of the two terms:
// 2*resnik(a,b) / (IC(a)+IC(b)), bounded to [0,1].
func lin(o *ontology.Ontology, a, b *ontology.Term, kind string) (float64, error) {
	res, err := mica(o, a, b, kind)
	if err != nil {
		return 0, err
	}
	sum := icOf(a, kind) + icOf(b, kind)
	if sum == 0 {
		return 0, nil
	}
	return 2 * res / sum, nil
}

// jc turns the Jiang-Conrath semantic distance IC(a)+IC(b)-2*resnik(a,b)
// into a bounded similarity via 1/(1+distance). Either term carrying no
// information under kind makes the distance meaningless, so it scores 0
// rather than the 1 that an unguarded 1/(1+0) would produce.
func jc(o *ontology.Ontology, a, b *ontology.Term, kind string) (float64, error) {
	icA, icB := icOf(a, kind), icOf(b, kind)
	if icA == 0 || icB == 0 {
		return 0, nil
	}
	res, err := mica(o, a, b, kind)
	if err != nil {
		return 0, err
	}
	distance := icA + icB - 2*res
	if distance < 0 {
		distance = 0
	}
	return 1 / (1 + distance), nil
}

// jc2 is registered as an alias of jc: both names refer to the same
// 1/(1+distance) measure.
func jc2(o *ontology.Ontology, a, b *ontology.Term, kind string) (float64, error) {
	return jc(o, a, b, kind)
}

// rel (relevance) scales lin by the probability the MICA is actually
// informative, 1-exp(-resnik), so two terms sharing only an
// uninformative ancestor score near zero even when lin would not.
func rel(o *ontology.Ontology, a, b *ontology.Term, kind string) (float64, error) {
	res, err := mica(o, a, b, kind)
	if err != nil {
		return 0, err
	}
	l, err := lin(o, a, b, kind)
	if err != nil {
		return 0, err
	}
	return l * (1 - math.Exp(-res)), nil
}

// ic is the most informative common ancestor's information content
// directly, identical to resnik.
func ic(o *ontology.Ontology, a, b *ontology.Term, kind string) (float64, error) {
	return mica(o, a, b, kind)
}

// graphic is the cardinality ratio of the shared to the combined
// self-inclusive ancestor sets: |common ancestors(a,b)| /
// |(ancestors(a) ∪ {a}) ∪ (ancestors(b) ∪ {b})|, a purely structural measure independent of any annotation kind.
func graphic(o *ontology.Ontology, a, b *ontology.Term, kind string) (float64, error) {
	common, err := o.Graph().CommonAncestors(a.Index, b.Index)
	if err != nil {
		return 0, err
	}
	union, err := o.Graph().UnionAncestors(a.Index, b.Index)
	if err != nil {
		return 0, err
	}
	if len(union) == 0 {
		return 0, nil
	}
	return float64(len(common)) / float64(len(union)), nil
}

// dist converts the shortest is-a path length between a and b into a
// bounded similarity, 1/(1+length), so identical terms score 1.
func dist(o *ontology.Ontology, a, b *ontology.Term, kind string) (float64, error) {
	if a.Index == b.Index {
		return 1, nil
	}
	path, err := o.Graph().PathToOther(a.Index, b.Index)
	if err != nil {
		return 0, err
	}
	return 1 / (1 + float64(path.Length)), nil
}

// equal is the degenerate kernel: 1 for identical terms, 0 otherwise.
func equal(_ *ontology.Ontology, a, b *ontology.Term, _ string) (float64, error) {
	if a.Index == b.Index {
		return 1, nil
	}
	return 0, nil
}
