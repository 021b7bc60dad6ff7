package ontology

import (
	"github.com/hpokit/gohpo/ontology/hpoerr"
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Graph owns the is-a adjacency and the cached transitive closures over
// it. Every cross-reference is a TermIndex; the Graph never holds a
// pointer into the Store's term arena.
type Graph struct {
	store    *Store
	root     TermIndex
	directed *simple.DirectedGraph // child -> parent edges, for gonum interop
}

func newGraph(store *Store) *Graph {
	return &Graph{store: store, root: store.rootIndex}
}

// build computes ancestor/descendant closures for every term and a gonum
// graph.Directed view of the is-a edges (directed child -> parent, per
// the glossary's "is-a edge" definition). It detects cycles via
// topological sort before doing any closure work, so a malformed input
// fails fast with an InvariantViolationError rather than recursing
// forever.
func (g *Graph) build() error {
	dg := simple.NewDirectedGraph()
	for _, idx := range g.store.ordered {
		dg.AddNode(simple.Node(int64(idx)))
	}
	for _, idx := range g.store.ordered {
		t := g.store.terms[idx]
		for parent := range t.Parents {
			dg.SetEdge(dg.NewEdge(simple.Node(int64(idx)), simple.Node(int64(parent))))
		}
	}
	if _, err := topo.Sort(dg); err != nil {
		return hpoerr.Invariant("cycle detected in is-a graph: " + err.Error())
	}
	g.directed = dg

	memo := make(map[TermIndex]map[TermIndex]struct{}, len(g.store.terms))
	for _, idx := range g.store.ordered {
		g.ancestorsOf(idx, memo, make(map[TermIndex]bool))
	}
	for idx, anc := range memo {
		g.store.terms[idx].Ancestors = anc
		for a := range anc {
			g.store.terms[a].Descendants[idx] = struct{}{}
		}
	}
	return nil
}

// ancestorsOf computes the transitive closure of parents for idx via
// memoized DFS, detecting cycles with the `visiting` set.
func (g *Graph) ancestorsOf(idx TermIndex, memo map[TermIndex]map[TermIndex]struct{}, visiting map[TermIndex]bool) map[TermIndex]struct{} {
	if cached, ok := memo[idx]; ok {
		return cached
	}
	if visiting[idx] {
		// topo.Sort already rejects cycles before build() gets here; this
		// is an extra guard against re-entrant misuse.
		return map[TermIndex]struct{}{}
	}
	visiting[idx] = true

	result := make(map[TermIndex]struct{})
	t := g.store.terms[idx]
	for p := range t.Parents {
		result[p] = struct{}{}
		for a := range g.ancestorsOf(p, memo, visiting) {
			result[a] = struct{}{}
		}
	}
	visiting[idx] = false
	memo[idx] = result
	return result
}

// Directed returns a gonum graph.Directed view of the is-a edges (child
// -> parent), suitable for running general-purpose gonum/graph
// algorithms (topo.Sort, traverse.BreadthFirst, path.*) against the
// ontology without any conversion step.
func (g *Graph) Directed() graph.Directed { return g.directed }

// CommonAncestors returns the "shared" common-ancestor set of a and b:
// (ancestors(a) ∪ {a}) ∩ (ancestors(b) ∪ {b}). This is the variant used
// by resnik/graphic per §4.6, and includes a itself when a == b.
func (g *Graph) CommonAncestors(a, b TermIndex) (map[TermIndex]struct{}, error) {
	ta, err := g.store.Get(a)
	if err != nil {
		return nil, err
	}
	tb, err := g.store.Get(b)
	if err != nil {
		return nil, err
	}
	left := withSelf(ta.Ancestors, a)
	right := withSelf(tb.Ancestors, b)
	return intersect(left, right), nil
}

// CommonAncestorsStrict returns ancestors(a) ∩ ancestors(b), excluding
// both endpoints even when one is an ancestor of the other.
func (g *Graph) CommonAncestorsStrict(a, b TermIndex) (map[TermIndex]struct{}, error) {
	ta, err := g.store.Get(a)
	if err != nil {
		return nil, err
	}
	tb, err := g.store.Get(b)
	if err != nil {
		return nil, err
	}
	return intersect(ta.Ancestors, tb.Ancestors), nil
}

// UnionAncestors returns (ancestors(a) ∪ {a}) ∪ (ancestors(b) ∪ {b}), the
// denominator set used by the graphic kernel's cardinality ratio.
func (g *Graph) UnionAncestors(a, b TermIndex) (map[TermIndex]struct{}, error) {
	ta, err := g.store.Get(a)
	if err != nil {
		return nil, err
	}
	tb, err := g.store.Get(b)
	if err != nil {
		return nil, err
	}
	out := withSelf(ta.Ancestors, a)
	for k := range withSelf(tb.Ancestors, b) {
		out[k] = struct{}{}
	}
	return out, nil
}

// ShortestPathToRoot returns the minimum number of edges from x up to the
// ontology root.
func (g *Graph) ShortestPathToRoot(x TermIndex) (int, error) {
	t, err := g.store.Get(x)
	if err != nil {
		return 0, err
	}
	if x == g.root {
		return 0, nil
	}
	best := -1
	for _, path := range g.allPathsToRoot(x) {
		steps := len(path) - 1
		if best == -1 || steps < best {
			best = steps
		}
	}
	if best == -1 {
		return 0, hpoerr.Domain("term " + t.ID + " has no path to root")
	}
	return best, nil
}

// LongestPathToRoot returns the maximum number of edges from x up to the
// ontology root.
func (g *Graph) LongestPathToRoot(x TermIndex) (int, error) {
	if _, err := g.store.Get(x); err != nil {
		return 0, err
	}
	if x == g.root {
		return 0, nil
	}
	best := -1
	for _, path := range g.allPathsToRoot(x) {
		steps := len(path) - 1
		if steps > best {
			best = steps
		}
	}
	return best, nil
}

// allPathsToRoot enumerates every is-a path from x to the root, each
// represented as a slice of TermIndex from x to root inclusive. The HPO
// DAG's branching factor keeps this tractable for single-term queries.
func (g *Graph) allPathsToRoot(x TermIndex) [][]TermIndex {
	t := g.store.terms[x]
	if len(t.Parents) == 0 {
		return [][]TermIndex{{x}}
	}
	var out [][]TermIndex
	for p := range t.Parents {
		for _, sub := range g.allPathsToRoot(p) {
			path := make([]TermIndex, 0, len(sub)+1)
			path = append(path, x)
			path = append(path, sub...)
			out = append(out, path)
		}
	}
	return out
}

// ShortestPathToParent returns the shortest path from x up to p, where p
// must be an ancestor of x (or equal to x). The returned path runs from x
// to p inclusive.
func (g *Graph) ShortestPathToParent(x, p TermIndex) ([]TermIndex, error) {
	tx, err := g.store.Get(x)
	if err != nil {
		return nil, err
	}
	if _, err := g.store.Get(p); err != nil {
		return nil, err
	}
	if x == p {
		return []TermIndex{x}, nil
	}
	if _, ok := tx.Ancestors[p]; !ok {
		return nil, hpoerr.Domain(formatID(p) + " is not an ancestor of " + formatID(x))
	}

	var best []TermIndex
	for _, path := range g.allPathsToRoot(x) {
		for i, node := range path {
			if node == p {
				if best == nil || i+1 < len(best) {
					best = path[:i+1]
				}
				break
			}
		}
	}
	if best == nil {
		return nil, hpoerr.Domain("unable to determine path from " + formatID(x) + " to " + formatID(p))
	}
	return best, nil
}

// PathResult is the result of a shortest_path / path_to_other query:
// the total length, the full node sequence from a to b, and the split of
// that length into the upward leg (a to the common ancestor) and the
// downward leg (common ancestor to b).
type PathResult struct {
	Length   int
	Path     []TermIndex
	StepsUp  int
	StepsDown int
}

// PathToOther computes the shortest connection between a and b via any
// common ancestor, per §4.1.
func (g *Graph) PathToOther(a, b TermIndex) (PathResult, error) {
	if a == b {
		return PathResult{Length: 0, Path: []TermIndex{a}}, nil
	}
	common, err := g.CommonAncestors(a, b)
	if err != nil {
		return PathResult{}, err
	}
	if len(common) == 0 {
		return PathResult{}, hpoerr.Domain("no common ancestor between " + formatID(a) + " and " + formatID(b))
	}

	var best PathResult
	found := false
	for c := range common {
		upPath, err := g.ShortestPathToParent(a, c)
		if err != nil {
			continue
		}
		downPath, err := g.ShortestPathToParent(b, c)
		if err != nil {
			continue
		}
		up := len(upPath) - 1
		down := len(downPath) - 1
		total := up + down
		if !found || total < best.Length {
			full := make([]TermIndex, 0, len(upPath)+len(downPath)-1)
			full = append(full, upPath...)
			for i := len(downPath) - 2; i >= 0; i-- {
				full = append(full, downPath[i])
			}
			best = PathResult{Length: total, Path: full, StepsUp: up, StepsDown: down}
			found = true
		}
	}
	if !found {
		return PathResult{}, hpoerr.Domain("no path found between " + formatID(a) + " and " + formatID(b))
	}
	return best, nil
}

func withSelf(set map[TermIndex]struct{}, self TermIndex) map[TermIndex]struct{} {
	out := make(map[TermIndex]struct{}, len(set)+1)
	for k := range set {
		out[k] = struct{}{}
	}
	out[self] = struct{}{}
	return out
}

func intersect(a, b map[TermIndex]struct{}) map[TermIndex]struct{} {
	out := make(map[TermIndex]struct{})
	small, large := a, b
	if len(b) < len(a) {
		small, large = b, a
	}
	for k := range small {
		if _, ok := large[k]; ok {
			out[k] = struct{}{}
		}
	}
	return out
}
